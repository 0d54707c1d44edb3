package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"tubeideas/internal/apperrors"
	"tubeideas/internal/config"
	"tubeideas/internal/services"
	"tubeideas/internal/sources/discussion"
	"tubeideas/internal/sources/news"
	"tubeideas/internal/sources/youtube"
)

// NewPipeline wires the upstream clients and the generative model into an
// AnalysisService. Missing credentials are not an error here; CheckCredentials
// reports them per request.
func NewPipeline(ctx context.Context, cfg *config.Config) (*services.AnalysisService, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	yt, err := youtube.New(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		return nil, fmt.Errorf("youtube client: %w", err)
	}

	var gen services.Generator
	llm, err := services.NewLLMModel(ctx, cfg)
	switch {
	case err == nil:
		gen = services.NewLLMGenerator(llm)
	case errors.Is(err, apperrors.ErrConfiguration):
		log.Warn().Str("key", cfg.LLMKeyName()).Msg("Generative model credential missing, analyses will be rejected")
	default:
		return nil, err
	}

	boards := []discussion.Board{discussion.NewReddit(cfg.UserAgent, httpClient)}
	if cfg.HackerNewsEnabled {
		boards = append(boards, discussion.NewHackerNews(cfg.UserAgent, httpClient))
	}

	creds := services.Credentials{
		YouTubeAPIKey: cfg.YouTubeAPIKey,
		LLMAPIKey:     cfg.LLMAPIKey,
		LLMKeyName:    cfg.LLMKeyName(),
	}

	log.Info().
		Str("llm_provider", cfg.LLMProvider).
		Str("llm_model", cfg.LLMModel).
		Str("news", cfg.NewsBackend()).
		Int("discussion_boards", len(boards)).
		Msg("Analysis pipeline ready")

	return services.NewAnalysisService(
		creds,
		yt,
		news.New(cfg.NewsAPIKey, cfg.NewsFeedURL, cfg.UserAgent, httpClient),
		discussion.NewAggregator(boards...),
		gen,
	), nil
}
