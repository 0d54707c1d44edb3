package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"tubeideas/internal/metrics"
	"tubeideas/internal/models"
)

const (
	// MaxTopics caps the topic list handed to enrichment and idea synthesis.
	MaxTopics = 8

	// Keyword fallback sizes. The model-failure path keeps more keywords than the
	// empty-answer path.
	keywordLimitOnError = 8
	keywordLimitOnEmpty = 5

	minKeywordLen = 5
)

// GenericTopics is the last rung of the topic fallback and the padding source for
// template ideas.
var GenericTopics = []string{
	"general content",
	"trending topics",
	"popular videos",
	"engaging content",
	"viral content",
}

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "this": {}, "that": {}, "how": {}, "why": {}, "what": {},
	"when": {}, "where": {},
}

type TopicGenerator interface {
	GenerateTopics(ctx context.Context, videos []models.VideoSummary) ([]string, error)
}

// TopicService derives a channel's topics. It never fails and never returns an
// empty list.
type TopicService struct {
	gen TopicGenerator
}

func NewTopicService(gen TopicGenerator) *TopicService {
	return &TopicService{gen: gen}
}

func (s *TopicService) Extract(ctx context.Context, videos []models.VideoSummary) []string {
	if s.gen == nil {
		metrics.FallbacksTotal.WithLabelValues("topics", "no_generator").Inc()
		return FallbackTopics(videos, keywordLimitOnError)
	}

	topics, err := s.gen.GenerateTopics(ctx, videos)
	if err != nil {
		log.Warn().Err(err).Int("videos", len(videos)).Msg("Topic generation failed, using title keywords")
		metrics.FallbacksTotal.WithLabelValues("topics", "model_error").Inc()
		return FallbackTopics(videos, keywordLimitOnError)
	}

	topics = normalizeTopics(topics)
	if len(topics) == 0 {
		log.Warn().Int("videos", len(videos)).Msg("Topic generation returned no topics, using title keywords")
		metrics.FallbacksTotal.WithLabelValues("topics", "model_empty").Inc()
		return FallbackTopics(videos, keywordLimitOnEmpty)
	}

	return topics
}

// FallbackTopics returns up to limit title keywords, or GenericTopics when the
// titles yield none.
func FallbackTopics(videos []models.VideoSummary, limit int) []string {
	if keywords := KeywordTopics(videos, limit); len(keywords) > 0 {
		return keywords
	}
	return append([]string(nil), GenericTopics...)
}

// KeywordTopics lowercases every title word, drops stop words and short words, and
// keeps the first limit distinct ones in title order.
func KeywordTopics(videos []models.VideoSummary, limit int) []string {
	seen := make(map[string]struct{})
	var keywords []string
	for _, v := range videos {
		for _, word := range strings.Fields(strings.ToLower(v.Title)) {
			if utf8.RuneCountInString(word) < minKeywordLen {
				continue
			}
			if _, stop := stopWords[word]; stop {
				continue
			}
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}
			keywords = append(keywords, word)
			if len(keywords) == limit {
				return keywords
			}
		}
	}
	return keywords
}

func normalizeTopics(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
		if len(out) == MaxTopics {
			break
		}
	}
	return out
}
