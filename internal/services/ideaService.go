package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"tubeideas/internal/metrics"
	"tubeideas/internal/models"
)

const (
	shortfallTitle = "Latest on %s"
	fallbackTitle  = "Latest Updates on %s"

	templateThumb = "Bold text on gradient background with relevant icon"
	templateIdea  = "A comprehensive video covering the latest developments in %s, incorporating current trends and audience interests."
)

// IdeaInput is everything the synthesizer may draw on.
type IdeaInput struct {
	Topics       []string
	ChannelTitle string
	Videos       []models.VideoSummary
	News         []models.NewsItem
	Discussions  []models.DiscussionItem
}

type IdeaGenerator interface {
	GenerateIdeas(ctx context.Context, in IdeaInput) ([]models.Idea, error)
}

// IdeaService always returns exactly models.IdeaCount ideas.
type IdeaService struct {
	gen IdeaGenerator
}

func NewIdeaService(gen IdeaGenerator) *IdeaService {
	return &IdeaService{gen: gen}
}

func (s *IdeaService) Synthesize(ctx context.Context, in IdeaInput) []models.Idea {
	if len(in.Topics) == 0 || s.gen == nil {
		log.Warn().Int("topics", len(in.Topics)).Msg("Skipping idea generation, using templates")
		metrics.FallbacksTotal.WithLabelValues("ideas", "no_topics").Inc()
		return TemplateIdeas(in.Topics)
	}

	ideas, err := s.gen.GenerateIdeas(ctx, in)
	if err != nil || len(ideas) == 0 {
		log.Warn().Err(err).Str("channel", in.ChannelTitle).Msg("Idea generation failed, using templates")
		metrics.FallbacksTotal.WithLabelValues("ideas", "model_error").Inc()
		return TemplateIdeas(in.Topics)
	}

	for i := range ideas {
		ideas[i] = withDefaults(ideas[i])
	}
	if len(ideas) > models.IdeaCount {
		ideas = ideas[:models.IdeaCount]
	}
	metrics.IdeasGeneratedTotal.WithLabelValues("model").Add(float64(len(ideas)))

	if len(ideas) < models.IdeaCount {
		log.Info().Int("ideas", len(ideas)).Msg("Idea generation came up short, topping up from topics")
		metrics.FallbacksTotal.WithLabelValues("ideas", "shortfall").Inc()
		missing := models.IdeaCount - len(ideas)
		var unused []string
		if len(ideas) < len(in.Topics) {
			unused = in.Topics[len(ideas):]
		}
		ideas = append(ideas, templateFill(unused, in.Topics, shortfallTitle, missing)...)
	}

	return ideas
}

// TemplateIdeas builds the deterministic ideas used when the model is unavailable:
// one per topic for the first models.IdeaCount topics, padded from GenericTopics.
func TemplateIdeas(topics []string) []models.Idea {
	ideas := templateFill(topics, topics, fallbackTitle, models.IdeaCount)
	metrics.IdeasGeneratedTotal.WithLabelValues("template").Add(float64(len(ideas)))
	return ideas
}

// templateFill renders n ideas from candidates, then from GenericTopics entries not
// already in taken.
func templateFill(candidates, taken []string, titleFormat string, n int) []models.Idea {
	used := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		used[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	ideas := make([]models.Idea, 0, n)
	for _, t := range candidates {
		if len(ideas) == n {
			return ideas
		}
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		ideas = append(ideas, templateIdeaFor(t, titleFormat))
	}
	for _, t := range GenericTopics {
		if len(ideas) == n {
			break
		}
		if _, dup := used[t]; dup {
			continue
		}
		ideas = append(ideas, templateIdeaFor(t, titleFormat))
	}
	return ideas
}

func templateIdeaFor(topic, titleFormat string) models.Idea {
	return models.Idea{
		Title:       fmt.Sprintf(titleFormat, topic),
		ThumbDesign: templateThumb,
		VideoIdea:   fmt.Sprintf(templateIdea, topic),
	}
}

func withDefaults(idea models.Idea) models.Idea {
	if strings.TrimSpace(idea.Title) == "" {
		idea.Title = "Untitled Video"
	}
	if strings.TrimSpace(idea.ThumbDesign) == "" {
		idea.ThumbDesign = "Standard thumbnail design"
	}
	if strings.TrimSpace(idea.VideoIdea) == "" {
		idea.VideoIdea = "Video concept description"
	}
	return idea
}
