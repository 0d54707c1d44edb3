package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsAPIFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/everything", r.URL.Path)
		assert.Equal(t, "space OR ai OR robots", q.Get("q"))
		assert.Equal(t, "en", q.Get("language"))
		assert.Equal(t, "publishedAt", q.Get("sortBy"))
		assert.Equal(t, "10", q.Get("pageSize"))
		assert.Equal(t, "2024-05-01", q.Get("from"))
		assert.Equal(t, "secret", q.Get("apiKey"))

		w.Write([]byte(`{"status":"ok","articles":[
			{"title":"Rocket launch","url":"https://n/1","source":{"name":"Wire"},"publishedAt":"2024-05-01T10:00:00Z"},
			{"title":"","url":"https://n/2"},
			{"title":"No url"},
			{"title":"Anonymous","url":"https://n/3","source":{}}
		]}`))
	}))
	defer srv.Close()

	n := NewNewsAPI("secret", srv.Client())
	n.baseURL = srv.URL
	n.now = func() time.Time { return time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC) }

	items, err := n.FetchNews(context.Background(), []string{"space", "ai", "robots", "ignored"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Rocket launch", items[0].Title)
	assert.Equal(t, "Wire", items[0].Source)
	assert.Equal(t, "Unknown", items[1].Source)
}

func TestNewsAPIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"status":"error","message":"rate limited"}`))
	}))
	defer srv.Close()

	n := NewNewsAPI("secret", srv.Client())
	n.baseURL = srv.URL

	_, err := n.FetchNews(context.Background(), []string{"space"})
	require.Error(t, err)
	assert.Equal(t, "newsapi returned status 429: rate limited", err.Error())
}

func TestNewsAPIErrorStatusWithHTMLBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html><body>502 Bad Gateway</body></html>`))
	}))
	defer srv.Close()

	n := NewNewsAPI("secret", srv.Client())
	n.baseURL = srv.URL

	_, err := n.FetchNews(context.Background(), []string{"space"})
	require.Error(t, err)
	assert.Equal(t, "newsapi returned status 502", err.Error())
}

func TestNewsAPIEmptyTopics(t *testing.T) {
	n := NewNewsAPI("secret", nil)
	items, err := n.FetchNews(context.Background(), []string{" ", ""})
	require.NoError(t, err)
	assert.Empty(t, items)
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Search results</title>
  <item>
    <title>Robots learn to walk - Tech Daily</title>
    <link>https://feed/1</link>
    <pubDate>Wed, 01 May 2024 08:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Plain headline</title>
    <link>https://feed/2</link>
  </item>
  <item>
    <title>No link</title>
  </item>
</channel>
</rss>`

func TestFeedSourceFetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "TubeIdeas/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	f := NewFeedSource(srv.URL+"/rss?q=", "TubeIdeas/1.0", srv.Client())
	items, err := f.FetchNews(context.Background(), []string{"robots", "ai"})
	require.NoError(t, err)

	assert.Equal(t, "robots OR ai", gotQuery)
	require.Len(t, items, 2)
	assert.Equal(t, "Robots learn to walk", items[0].Title)
	assert.Equal(t, "Tech Daily", items[0].Source)
	assert.Equal(t, "2024-05-01T08:00:00Z", items[0].PublishedAt)
	assert.Equal(t, "Plain headline", items[1].Title)
	assert.Equal(t, "Search results", items[1].Source)
}

func TestNewPicksBackend(t *testing.T) {
	assert.IsType(t, &NewsAPI{}, New("key", "https://feed?q=", "ua", nil))
	assert.IsType(t, &FeedSource{}, New("", "https://feed?q=", "ua", nil))
	assert.IsType(t, Disabled{}, New("", "", "ua", nil))

	items, err := Disabled{}.FetchNews(context.Background(), []string{"x"})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSplitPublisher(t *testing.T) {
	title, source := splitPublisher("A - B - Publisher")
	assert.Equal(t, "A - B", title)
	assert.Equal(t, "Publisher", source)

	title, source = splitPublisher("No publisher")
	assert.Equal(t, "No publisher", title)
	assert.Empty(t, source)
}
