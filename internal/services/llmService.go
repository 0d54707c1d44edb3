package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"

	"tubeideas/internal/apperrors"
	"tubeideas/internal/config"
	"tubeideas/internal/metrics"
	"tubeideas/internal/models"
)

const (
	topicTemperature = 0.3
	ideaTemperature  = 0.7
)

var (
	errEmptyResponse = errors.New("no response from AI")
	errNoArray       = errors.New("model response contains no array")
	errNoIdeas       = errors.New("invalid response format: no ideas")
)

// NewLLMModel builds the chat model selected by cfg.LLMProvider.
func NewLLMModel(ctx context.Context, cfg *config.Config) (llms.Model, error) {
	if cfg.LLMAPIKey == "" {
		return nil, apperrors.Config(cfg.LLMKeyName(), "AI API key is not configured")
	}

	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		llm, err := openai.New(openai.WithToken(cfg.LLMAPIKey), openai.WithModel(cfg.LLMModel))
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI LLM: %w", err)
		}
		return llm, nil
	default:
		llm, err := googleai.New(ctx, googleai.WithAPIKey(cfg.LLMAPIKey), googleai.WithDefaultModel(cfg.LLMModel))
		if err != nil {
			return nil, fmt.Errorf("failed to create Google AI LLM: %w", err)
		}
		return llm, nil
	}
}

// LLMGenerator asks a chat model for topics and ideas and decodes its JSON answers.
type LLMGenerator struct {
	llm llms.Model
}

func NewLLMGenerator(llm llms.Model) *LLMGenerator {
	return &LLMGenerator{llm: llm}
}

func (g *LLMGenerator) GenerateTopics(ctx context.Context, videos []models.VideoSummary) ([]string, error) {
	content, err := g.complete(ctx, "topics", topicSystemPrompt, buildTopicPrompt(videos), topicTemperature)
	if err != nil {
		return nil, err
	}

	raw, err := decodeArray(content, "topics")
	if err != nil {
		log.Error().Err(err).Str("raw_response", content).Msg("Failed to parse topics from LLM response")
		return nil, err
	}

	topics := make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		topics = append(topics, s)
	}
	return topics, nil
}

func (g *LLMGenerator) GenerateIdeas(ctx context.Context, in IdeaInput) ([]models.Idea, error) {
	content, err := g.complete(ctx, "ideas", ideaSystemPrompt, buildIdeaPrompt(in), ideaTemperature)
	if err != nil {
		return nil, err
	}

	raw, err := decodeArray(content, "ideas")
	if err != nil {
		log.Error().Err(err).Str("raw_response", content).Msg("Failed to parse ideas from LLM response")
		return nil, err
	}

	ideas := make([]models.Idea, 0, len(raw))
	for _, item := range raw {
		var obj map[string]any
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			continue
		}
		ideas = append(ideas, models.Idea{
			Title:       stringField(obj, "title", "Untitled Video"),
			ThumbDesign: stringField(obj, "thumbDesign", "Standard thumbnail design"),
			VideoIdea:   stringField(obj, "videoIdea", "Video concept description"),
		})
	}

	if len(ideas) == 0 {
		return nil, errNoIdeas
	}
	return ideas, nil
}

func (g *LLMGenerator) complete(ctx context.Context, op, system, prompt string, temperature float64) (string, error) {
	resp, err := g.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}, llms.WithTemperature(temperature), llms.WithJSONMode())
	if err != nil {
		metrics.LLMCallsTotal.WithLabelValues(op, "error").Inc()
		return "", fmt.Errorf("failed to generate %s from LLM: %w", op, err)
	}

	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		metrics.LLMCallsTotal.WithLabelValues(op, "empty").Inc()
		log.Warn().Str("operation", op).Msg("LLM returned an empty response")
		return "", errEmptyResponse
	}

	metrics.LLMCallsTotal.WithLabelValues(op, "ok").Inc()
	return resp.Choices[0].Content, nil
}

// decodeArray returns the array stored under key. If the response does not have
// that shape, it accepts a top-level array or the first array-valued field in
// document order, and logs that it did so.
func decodeArray(content, key string) ([]json.RawMessage, error) {
	cleaned := stripFences(content)

	var strict map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &strict); err == nil {
		if raw, ok := strict[key]; ok {
			var arr []json.RawMessage
			if err := json.Unmarshal(raw, &arr); err == nil && arr != nil {
				return arr, nil
			}
		}
	}

	arr, err := firstArray(cleaned)
	if err != nil {
		return nil, err
	}

	log.Warn().Str("key", key).Int("items", len(arr)).Msg("LLM response did not match expected schema, using first array found")
	metrics.LLMSecondaryDecodeTotal.WithLabelValues(key).Inc()
	return arr, nil
}

func firstArray(s string) ([]json.RawMessage, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}

	switch tok {
	case json.Delim('['):
		var arr []json.RawMessage
		if err := json.Unmarshal([]byte(s), &arr); err != nil {
			return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
		}
		return arr, nil
	case json.Delim('{'):
		for dec.More() {
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
			}
			var value json.RawMessage
			if err := dec.Decode(&value); err != nil {
				return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
			}
			value = bytes.TrimSpace(value)
			if len(value) == 0 || value[0] != '[' {
				continue
			}
			var arr []json.RawMessage
			if err := json.Unmarshal(value, &arr); err == nil {
				return arr, nil
			}
		}
	}

	return nil, errNoArray
}

// stripFences removes a surrounding markdown code fence.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimPrefix(s, "JSON")
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func stringField(obj map[string]any, key, fallback string) string {
	if v, ok := obj[key].(string); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
