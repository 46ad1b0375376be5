package rssfeeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdash/observability/logging"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Times</title>
    <link>https://example.com</link>
    <description>Example feed</description>
    <item>
      <title>Rates held steady</title>
      <link>https://example.com/rates</link>
      <description>The central bank kept rates unchanged.</description>
      <author>editor@example.com (Jane Doe)</author>
      <pubDate>Mon, 06 May 2024 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>No link here</title>
      <pubDate>Mon, 06 May 2024 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Undated story</title>
      <link>https://example.com/undated</link>
    </item>
    <item>
      <title>Chip exports rise</title>
      <link>https://example.com/chips</link>
      <description>Semiconductor shipments grew again.</description>
      <pubDate>Sun, 05 May 2024 08:30:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchFeed(t *testing.T) {
	srv := feedServer(t)
	f := NewFetcher(srv.Client(), logging.Discard())

	articles, err := f.FetchFeed(context.Background(), srv.URL, 10)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	first := articles[0]
	assert.Equal(t, "Rates held steady", first.Title)
	assert.Equal(t, "https://example.com/rates", first.URL)
	assert.Equal(t, "The central bank kept rates unchanged.", first.Description)
	assert.Equal(t, "Example Times", first.SourceName)
	assert.True(t, first.PublishedAt.Equal(time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)), first.PublishedAt)

	assert.Equal(t, "Chip exports rise", articles[1].Title)
}

func TestFetchFeedRespectsMax(t *testing.T) {
	srv := feedServer(t)
	f := NewFetcher(srv.Client(), logging.Discard())

	articles, err := f.FetchFeed(context.Background(), srv.URL, 1)
	require.NoError(t, err)
	assert.Len(t, articles, 1)
}

func TestFetchPreset(t *testing.T) {
	srv := feedServer(t)
	f := NewFetcher(srv.Client(), logging.Discard())

	feed := FeedConfig{Name: "Example", URL: srv.URL, SourceID: "example", Category: "business", Country: "us", Language: "en"}
	articles, err := f.FetchPreset(context.Background(), feed, 10)
	require.NoError(t, err)
	require.NotEmpty(t, articles)

	for _, a := range articles {
		assert.Equal(t, "Example", a.SourceName)
		assert.Equal(t, "business", a.Category())
		assert.Equal(t, "us", a.Country)
		require.NotNil(t, a.SourceDetail)
		assert.Equal(t, "example", a.SourceDetail.SourceID)
	}
}

func TestFetchFeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.Client(), logging.Discard()).FetchFeed(context.Background(), srv.URL, 10)
	assert.Error(t, err)
}

func TestResolveFeedURL(t *testing.T) {
	assert.Equal(t, "https://hnrss.org/newest", ResolveFeedURL("hn"))
	assert.Equal(t, "https://example.com/rss", ResolveFeedURL("https://example.com/rss"))
}

func TestSelectFeeds(t *testing.T) {
	feeds := map[string]FeedConfig{
		"b": {Name: "B", Category: "technology", Country: "us"},
		"a": {Name: "A", Category: "general", Country: "us"},
		"c": {Name: "C", Category: "general", Country: "gb"},
	}

	tests := []struct {
		name              string
		category, country string
		want              []string
	}{
		{"all", "", "", []string{"A", "B", "C"}},
		{"category", "general", "", []string{"A", "C"}},
		{"country case-insensitive", "", "GB", []string{"C"}},
		{"both", "general", "us", []string{"A"}},
		{"none", "sports", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var names []string
			for _, f := range SelectFeeds(feeds, tt.category, tt.country) {
				names = append(names, f.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSlugifyAndTitleCase(t *testing.T) {
	assert.Equal(t, "science-tech", Slugify("Science & Tech"))
	assert.Equal(t, "general", Slugify("  General "))
	assert.Equal(t, "", Slugify("--"))
	assert.Equal(t, "Technology", TitleCase("technology"))
	assert.Equal(t, "Science Tech", TitleCase("science-tech"))
}

func TestMatchesQuery(t *testing.T) {
	assert.True(t, MatchesQuery("Chip exports", "", "CHIP"))
	assert.True(t, MatchesQuery("", "semiconductor news", "conductor"))
	assert.True(t, MatchesQuery("anything", "", ""))
	assert.False(t, MatchesQuery("Rates", "bank", "chip"))
}
