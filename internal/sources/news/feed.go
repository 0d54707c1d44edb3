package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"

	"tubeideas/internal/models"
)

// FeedSource reads headlines from an RSS/Atom search feed. The query is appended
// URL-escaped to feedURL, so feedURL should end with the search parameter.
type FeedSource struct {
	feedURL string
	parser  *gofeed.Parser
}

func NewFeedSource(feedURL, userAgent string, httpClient *http.Client) *FeedSource {
	p := gofeed.NewParser()
	p.UserAgent = userAgent
	if httpClient != nil {
		p.Client = httpClient
	}
	return &FeedSource{feedURL: feedURL, parser: p}
}

func (f *FeedSource) FetchNews(ctx context.Context, topics []string) ([]models.NewsItem, error) {
	query := joinTopics(topics)
	if query == "" {
		return []models.NewsItem{}, nil
	}

	feed, err := f.parser.ParseURLWithContext(f.feedURL+url.QueryEscape(query), ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news feed: %w", err)
	}

	items := make([]models.NewsItem, 0, pageSize)
	for _, entry := range feed.Items {
		if entry.Title == "" || entry.Link == "" {
			continue
		}
		title, source := splitPublisher(entry.Title)
		if source == "" {
			source = feed.Title
		}
		if source == "" {
			source = "Unknown"
		}

		published := entry.Published
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed.UTC().Format(time.RFC3339)
		}

		items = append(items, models.NewsItem{
			Title:       title,
			URL:         entry.Link,
			Source:      source,
			PublishedAt: published,
		})
		if len(items) == pageSize {
			break
		}
	}

	log.Debug().Str("query", query).Int("count", len(items)).Msg("Fetched news from feed")
	return items, nil
}

// splitPublisher separates "Headline - Publisher" titles used by news aggregators.
func splitPublisher(title string) (string, string) {
	idx := strings.LastIndex(title, " - ")
	if idx <= 0 {
		return title, ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}
