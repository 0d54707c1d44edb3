package discussion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"tubeideas/internal/models"
)

const (
	redditBase      = "https://www.reddit.com"
	redditPerTopic  = 5
	maxSearchTopics = 3
)

type redditListing struct {
	Data struct {
		Children []struct {
			Data *struct {
				Title     string  `json:"title"`
				Permalink string  `json:"permalink"`
				Subreddit string  `json:"subreddit"`
				Score     int     `json:"score"`
				Stickied  bool    `json:"stickied"`
				Created   float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Reddit searches reddit's public JSON search for hot posts from the past week.
type Reddit struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewReddit(userAgent string, httpClient *http.Client) *Reddit {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Reddit{baseURL: redditBase, userAgent: userAgent, httpClient: httpClient}
}

func (r *Reddit) Name() string { return "reddit" }

func (r *Reddit) Search(ctx context.Context, topic string) ([]models.DiscussionItem, error) {
	query := strings.Join(strings.Fields(topic), "+")

	u := fmt.Sprintf("%s/search.json?q=%s&sort=hot&limit=%d&t=week",
		r.baseURL, url.QueryEscape(query), redditPerTopic)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit search returned status %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("reddit decode: %w", err)
	}

	var items []models.DiscussionItem
	for _, child := range listing.Data.Children {
		post := child.Data
		if post == nil || post.Stickied {
			continue
		}
		title := post.Title
		if title == "" {
			title = "Untitled"
		}
		subreddit := post.Subreddit
		if subreddit == "" {
			subreddit = "unknown"
		}
		items = append(items, models.DiscussionItem{
			Title:     title,
			URL:       "https://reddit.com" + post.Permalink,
			Subreddit: subreddit,
			Source:    r.Name(),
			Score:     post.Score,
		})
	}

	log.Debug().Str("topic", topic).Int("count", len(items)).Msg("Fetched reddit posts")
	return items, nil
}
