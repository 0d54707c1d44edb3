package discussion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubeideas/internal/models"
)

func TestMergeKeepsHigherScoreAndSorts(t *testing.T) {
	items := []models.DiscussionItem{
		{Title: "a", URL: "https://r/a", Score: 10},
		{Title: "b", URL: "https://r/b", Score: 50},
		{Title: "a-again", URL: "https://r/a", Score: 90},
		{Title: "c", URL: "https://r/c", Score: 50},
		{Title: "b-low", URL: "https://r/b", Score: 1},
	}

	merged := Merge(items)

	require.Len(t, merged, 3)
	assert.Equal(t, "a-again", merged[0].Title)
	assert.Equal(t, 90, merged[0].Score)
	assert.Equal(t, "b", merged[1].Title)
	assert.Equal(t, "c", merged[2].Title)
}

func TestMergeCapsAtTen(t *testing.T) {
	var items []models.DiscussionItem
	for i := 0; i < 25; i++ {
		items = append(items, models.DiscussionItem{URL: fmt.Sprintf("https://r/%d", i), Score: i})
	}

	merged := Merge(items)

	require.Len(t, merged, MaxItems)
	assert.Equal(t, 24, merged[0].Score)
	assert.Equal(t, 15, merged[9].Score)
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, Merge(nil))
}

type stubBoard struct {
	name string
	mu   sync.Mutex
	seen []string
	fn   func(topic string) ([]models.DiscussionItem, error)
}

func (s *stubBoard) Name() string { return s.name }

func (s *stubBoard) Search(_ context.Context, topic string) ([]models.DiscussionItem, error) {
	s.mu.Lock()
	s.seen = append(s.seen, topic)
	s.mu.Unlock()
	return s.fn(topic)
}

func TestAggregatorToleratesFailingTopics(t *testing.T) {
	board := &stubBoard{name: "reddit", fn: func(topic string) ([]models.DiscussionItem, error) {
		if topic == "ai" {
			return nil, errors.New("boom")
		}
		return []models.DiscussionItem{
			{Title: topic, URL: "https://r/" + topic, Score: len(topic)},
			{Title: "shared", URL: "https://r/shared", Score: 3},
		}, nil
	}}

	agg := NewAggregator(board)
	items, err := agg.FetchDiscussions(context.Background(), []string{"space", "ai", "robots", "ignored"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"space", "ai", "robots"}, board.seen)
	require.Len(t, items, 3)
	assert.Equal(t, "robots", items[0].Title)
	assert.Equal(t, "space", items[1].Title)
	assert.Equal(t, "shared", items[2].Title)
}

func TestAggregatorCombinesBoards(t *testing.T) {
	reddit := &stubBoard{name: "reddit", fn: func(topic string) ([]models.DiscussionItem, error) {
		return []models.DiscussionItem{{Title: "r-" + topic, URL: "https://r/" + topic, Score: 5}}, nil
	}}
	hn := &stubBoard{name: "hackernews", fn: func(topic string) ([]models.DiscussionItem, error) {
		return []models.DiscussionItem{{Title: "hn-" + topic, URL: "https://hn/" + topic, Score: 7}}, nil
	}}

	items, err := NewAggregator(reddit, hn).FetchDiscussions(context.Background(), []string{"go"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "hn-go", items[0].Title)
	assert.Equal(t, "r-go", items[1].Title)
}

func TestRedditSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "machine+learning", r.URL.Query().Get("q"))
		assert.Equal(t, "hot", r.URL.Query().Get("sort"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "week", r.URL.Query().Get("t"))
		assert.Equal(t, "TubeIdeas/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"data":{"children":[
			{"data":{"title":"Pinned rules","permalink":"/r/ml/rules","subreddit":"ml","score":999,"stickied":true}},
			{"data":{"title":"New model","permalink":"/r/ml/comments/1","subreddit":"MachineLearning","score":42}},
			{"data":{"title":"","permalink":"/r/x/comments/2","score":0}},
			{"kind":"more"}
		]}}`))
	}))
	defer srv.Close()

	r := NewReddit("TubeIdeas/1.0", srv.Client())
	r.baseURL = srv.URL

	items, err := r.Search(context.Background(), "machine learning")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://reddit.com/r/ml/comments/1", items[0].URL)
	assert.Equal(t, "MachineLearning", items[0].Subreddit)
	assert.Equal(t, "reddit", items[0].Source)
	assert.Equal(t, 42, items[0].Score)
	assert.Equal(t, "Untitled", items[1].Title)
	assert.Equal(t, "unknown", items[1].Subreddit)
}

func TestRedditSearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	r := NewReddit("ua", srv.Client())
	r.baseURL = srv.URL

	_, err := r.Search(context.Background(), "go")
	assert.Error(t, err)
}

func TestHackerNewsSearch(t *testing.T) {
	now := time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "rust", q.Get("query"))
		assert.Equal(t, "story", q.Get("tags"))
		assert.Equal(t, fmt.Sprintf("created_at_i>%d", now.Add(-7*24*time.Hour).Unix()), q.Get("numericFilters"))
		w.Write([]byte(`{"hits":[
			{"objectID":"1","title":"Rust 2.0","url":"https://blog/rust","points":300},
			{"objectID":"2","title":"Ask HN: Rust?","points":12},
			{"objectID":"3","title":""}
		]}`))
	}))
	defer srv.Close()

	h := NewHackerNews("ua", srv.Client())
	h.baseURL = srv.URL
	h.now = func() time.Time { return now }

	items, err := h.Search(context.Background(), "rust")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://blog/rust", items[0].URL)
	assert.Equal(t, "hackernews", items[0].Source)
	assert.Equal(t, "https://news.ycombinator.com/item?id=2", items[1].URL)
	assert.Equal(t, "hackernews", items[1].Label())
}
