package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"tubeideas/internal/apperrors"
	"tubeideas/internal/metrics"
	"tubeideas/internal/models"
)

type ChannelSource interface {
	ResolveChannelID(ctx context.Context, rawURL string) (string, error)
	ChannelInfo(ctx context.Context, channelID string) (*models.ChannelRef, error)
	RecentVideos(ctx context.Context, channelID string, limit int) ([]models.VideoSummary, error)
}

type NewsSource interface {
	FetchNews(ctx context.Context, topics []string) ([]models.NewsItem, error)
}

type DiscussionSource interface {
	FetchDiscussions(ctx context.Context, topics []string) ([]models.DiscussionItem, error)
}

// Generator is the generative model behind topic extraction and idea synthesis.
type Generator interface {
	TopicGenerator
	IdeaGenerator
}

// Credentials are the keys the pipeline cannot run without.
type Credentials struct {
	YouTubeAPIKey string
	LLMAPIKey     string
	LLMKeyName    string
}

type AnalysisService struct {
	creds       Credentials
	channels    ChannelSource
	news        NewsSource
	discussions DiscussionSource
	topics      *TopicService
	ideas       *IdeaService
}

// NewAnalysisService wires the pipeline. gen may be nil, in which case every
// generative step takes its fallback.
func NewAnalysisService(creds Credentials, channels ChannelSource, news NewsSource, discussions DiscussionSource, gen Generator) *AnalysisService {
	s := &AnalysisService{
		creds:       creds,
		channels:    channels,
		news:        news,
		discussions: discussions,
		topics:      NewTopicService(nil),
		ideas:       NewIdeaService(nil),
	}
	if gen != nil {
		s.topics = NewTopicService(gen)
		s.ideas = NewIdeaService(gen)
	}
	return s
}

// CheckCredentials reports every missing key, each as its own configuration error.
func (s *AnalysisService) CheckCredentials() error {
	var errs []error
	if s.creds.YouTubeAPIKey == "" {
		errs = append(errs, apperrors.Config("YOUTUBE_API_KEY", "YouTube API key is not configured"))
	}
	if s.creds.LLMAPIKey == "" {
		key := s.creds.LLMKeyName
		if key == "" {
			key = "API_KEY"
		}
		errs = append(errs, apperrors.Config(key, "AI API key is not configured"))
	}
	return errors.Join(errs...)
}

// Analyze runs the whole pipeline for one channel. channelID skips URL resolution
// when set.
func (s *AnalysisService) Analyze(ctx context.Context, channelURL, channelID string) (result *models.AnalysisResult, err error) {
	start := time.Now()
	defer func() {
		metrics.AnalysisDurationSeconds.Observe(time.Since(start).Seconds())
		metrics.AnalysesTotal.WithLabelValues(Outcome(err)).Inc()
	}()

	channelURL = strings.TrimSpace(channelURL)
	if channelURL == "" {
		return nil, apperrors.Input("Valid channel URL is required")
	}
	if !strings.Contains(channelURL, "youtube.com") && !strings.Contains(channelURL, "youtu.be") {
		return nil, apperrors.Input("Invalid YouTube URL format")
	}

	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		channelID, err = s.channels.ResolveChannelID(ctx, channelURL)
		if err != nil {
			return nil, err
		}
	}

	info, videos, err := s.fetchChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	topics := s.topics.Extract(ctx, videos)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis aborted after topic extraction: %w", err)
	}

	news, discussions := s.enrich(ctx, topics)

	ideas := s.ideas.Synthesize(ctx, IdeaInput{
		Topics:       topics,
		ChannelTitle: info.Title,
		Videos:       videos,
		News:         news,
		Discussions:  discussions,
	})
	if len(ideas) == 0 {
		ideas = TemplateIdeas(topics)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis aborted after idea synthesis: %w", err)
	}

	log.Info().
		Str("channelID", info.ID).
		Int("videos", len(videos)).
		Int("topics", len(topics)).
		Int("news", len(news)).
		Int("discussions", len(discussions)).
		Dur("took", time.Since(start)).
		Msg("Channel analysis complete")

	return &models.AnalysisResult{
		Channel:         models.ChannelRef{ID: info.ID, Title: info.Title},
		Videos:          videos,
		Topics:          topics,
		News:            news,
		DiscussionItems: discussions,
		Ideas:           ideas,
	}, nil
}

// fetchChannel loads channel info and uploads together. Either failure fails both.
func (s *AnalysisService) fetchChannel(ctx context.Context, channelID string) (*models.ChannelRef, []models.VideoSummary, error) {
	var (
		info   *models.ChannelRef
		videos []models.VideoSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = s.channels.ChannelInfo(gctx, channelID)
		return err
	})
	g.Go(func() error {
		var err error
		videos, err = s.channels.RecentVideos(gctx, channelID, models.RecentVideoLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if info == nil || len(videos) == 0 {
		return nil, nil, apperrors.NotFound("Could not fetch channel data or no videos found")
	}
	if info.ID == "" {
		info.ID = channelID
	}
	return info, videos, nil
}

// enrich fetches news and discussions concurrently. A failing branch yields an
// empty list and never affects the other.
func (s *AnalysisService) enrich(ctx context.Context, topics []string) ([]models.NewsItem, []models.DiscussionItem) {
	news := []models.NewsItem{}
	discussions := []models.DiscussionItem{}

	var g errgroup.Group
	if s.news != nil {
		g.Go(func() error {
			items, err := s.news.FetchNews(ctx, topics)
			if err != nil {
				log.Warn().Err(err).Msg("News enrichment failed")
				metrics.EnrichmentFailuresTotal.WithLabelValues("news").Inc()
				return nil
			}
			if items != nil {
				news = items
			}
			return nil
		})
	}
	if s.discussions != nil {
		g.Go(func() error {
			items, err := s.discussions.FetchDiscussions(ctx, topics)
			if err != nil {
				log.Warn().Err(err).Msg("Discussion enrichment failed")
				metrics.EnrichmentFailuresTotal.WithLabelValues("discussions").Inc()
				return nil
			}
			if items != nil {
				discussions = items
			}
			return nil
		})
	}
	_ = g.Wait()

	return news, discussions
}

// Outcome labels err for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case !apperrors.IsClassified(err):
		return "error"
	case errors.Is(err, apperrors.ErrInput):
		return "input"
	case errors.Is(err, apperrors.ErrConfiguration):
		return "config"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrRateLimited):
		return "rate_limited"
	default:
		return "error"
	}
}
