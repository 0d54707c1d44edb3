package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tubeideas/internal/models"
)

const (
	newsAPIBase = "https://newsapi.org/v2"
	pageSize    = 10
	maxTopics   = 3
)

// Fetcher returns news items relevant to a topic list.
type Fetcher interface {
	FetchNews(ctx context.Context, topics []string) ([]models.NewsItem, error)
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title  string `json:"title"`
		URL    string `json:"url"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// NewsAPI queries newsapi.org's /everything endpoint for today's articles.
type NewsAPI struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

func NewNewsAPI(apiKey string, httpClient *http.Client) *NewsAPI {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &NewsAPI{
		apiKey:     apiKey,
		baseURL:    newsAPIBase,
		httpClient: httpClient,
		now:        time.Now,
	}
}

func (n *NewsAPI) FetchNews(ctx context.Context, topics []string) ([]models.NewsItem, error) {
	query := joinTopics(topics)
	if query == "" {
		return []models.NewsItem{}, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprintf("%d", pageSize))
	params.Set("from", n.now().UTC().Format("2006-01-02"))
	params.Set("apiKey", n.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	defer resp.Body.Close()

	var data newsAPIResponse
	if resp.StatusCode != http.StatusOK {
		// error bodies are JSON from newsapi itself but not from proxies in front of it
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil || data.Message == "" {
			return nil, fmt.Errorf("newsapi returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("newsapi returned status %d: %s", resp.StatusCode, data.Message)
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	items := make([]models.NewsItem, 0, len(data.Articles))
	for _, a := range data.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		source := a.Source.Name
		if source == "" {
			source = "Unknown"
		}
		items = append(items, models.NewsItem{
			Title:       a.Title,
			URL:         a.URL,
			Source:      source,
			PublishedAt: a.PublishedAt,
		})
	}

	log.Debug().Str("query", query).Int("count", len(items)).Msg("Fetched news from NewsAPI")
	return items, nil
}

// Disabled is used when no news backend is configured.
type Disabled struct{}

func (Disabled) FetchNews(context.Context, []string) ([]models.NewsItem, error) {
	return []models.NewsItem{}, nil
}

// New picks NewsAPI when a key is set, then the RSS feed, then nothing.
func New(apiKey, feedURL, userAgent string, httpClient *http.Client) Fetcher {
	switch {
	case apiKey != "":
		return NewNewsAPI(apiKey, httpClient)
	case feedURL != "":
		log.Info().Msg("NEWS_API_KEY not set, using RSS news feed")
		return NewFeedSource(feedURL, userAgent, httpClient)
	default:
		log.Warn().Msg("NEWS_API_KEY not set and no news feed configured, skipping news fetch")
		return Disabled{}
	}
}

func joinTopics(topics []string) string {
	var parts []string
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			parts = append(parts, t)
		}
		if len(parts) == maxTopics {
			break
		}
	}
	return strings.Join(parts, " OR ")
}
