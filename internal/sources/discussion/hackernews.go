package discussion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"tubeideas/internal/models"
)

const hnAlgoliaURL = "https://hn.algolia.com/api/v1/search"

type hnResponse struct {
	Hits []struct {
		ObjectID string `json:"objectID"`
		Title    string `json:"title"`
		URL      string `json:"url"`
		Points   int    `json:"points"`
	} `json:"hits"`
}

// HackerNews searches stories from the past week via the Algolia HN API.
type HackerNews struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	now        func() time.Time
}

func NewHackerNews(userAgent string, httpClient *http.Client) *HackerNews {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HackerNews{baseURL: hnAlgoliaURL, userAgent: userAgent, httpClient: httpClient, now: time.Now}
}

func (h *HackerNews) Name() string { return "hackernews" }

func (h *HackerNews) Search(ctx context.Context, topic string) ([]models.DiscussionItem, error) {
	u, err := url.Parse(h.baseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("query", topic)
	q.Set("tags", "story")
	q.Set("hitsPerPage", fmt.Sprintf("%d", redditPerTopic))
	q.Set("numericFilters", fmt.Sprintf("created_at_i>%d", h.now().Add(-7*24*time.Hour).Unix()))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hackernews request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HN Algolia API returned status %d", resp.StatusCode)
	}

	var data hnResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("hackernews decode: %w", err)
	}

	items := make([]models.DiscussionItem, 0, len(data.Hits))
	for _, hit := range data.Hits {
		if hit.Title == "" {
			continue
		}
		link := hit.URL
		if link == "" {
			link = "https://news.ycombinator.com/item?id=" + hit.ObjectID
		}
		items = append(items, models.DiscussionItem{
			Title:  hit.Title,
			URL:    link,
			Source: h.Name(),
			Score:  hit.Points,
		})
	}

	log.Debug().Str("topic", topic).Int("count", len(items)).Msg("Fetched hackernews stories")
	return items, nil
}
