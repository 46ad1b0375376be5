package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdash/observability/logging"
	"newsdash/rssfeeds"
	"newsdash/types"
)

const techFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Tech Wire</title>
<item><title>Chip exports rise</title><link>https://wire.example.com/chips</link>
<description>Semiconductor shipments grew.</description><pubDate>Mon, 06 May 2024 10:00:00 GMT</pubDate></item>
<item><title>Cloud outage resolved</title><link>https://wire.example.com/cloud</link>
<description>Services are back.</description><pubDate>Mon, 06 May 2024 09:00:00 GMT</pubDate></item>
</channel></rss>`

func TestFeedIngestor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(techFeed))
	}))
	defer srv.Close()

	feeds := map[string]rssfeeds.FeedConfig{
		"wire":   {Name: "Tech Wire", URL: srv.URL + "/tech", SourceID: "tech-wire", Category: "technology", Country: "us", Language: "en"},
		"broken": {Name: "Broken", URL: srv.URL + "/broken", SourceID: "broken", Category: "technology", Country: "us"},
		"world":  {Name: "World", URL: srv.URL + "/world", SourceID: "world", Category: "general", Country: "gb"},
	}

	store := NewStore()
	ing := NewFeedIngestor(store, rssfeeds.NewFetcher(srv.Client(), logging.Discard()), feeds, 10, logging.Discard())
	ctx := context.Background()

	n, err := ing.Ingest(ctx, types.IngestRequest{Category: "technology", Country: "us", Query: "chip"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = ing.Ingest(ctx, types.IngestRequest{Category: "technology", Country: "us"})
	require.NoError(t, err)
	assert.Equal(t, 1, n, "already stored articles are not counted again")
	assert.Equal(t, 2, store.Len())

	sources := store.Sources()
	require.Len(t, sources, 1)
	assert.Equal(t, "tech-wire", sources[0].SourceID)
	assert.Equal(t, 2, sources[0].ArticleCount)

	categories := store.Categories()
	require.Len(t, categories, 1)
	assert.Equal(t, types.Category{ID: 1, Name: "Technology", Slug: "technology", ArticleCount: 2}, categories[0])

	_, err = ing.Ingest(ctx, types.IngestRequest{Category: "sports", Country: "us"})
	assert.ErrorIs(t, err, ErrNoFeeds)
}

func TestFeedIngestorAllFeedsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	feeds := map[string]rssfeeds.FeedConfig{
		"a": {Name: "A", URL: srv.URL + "/a", SourceID: "a", Category: "general", Country: "us"},
	}
	ing := NewFeedIngestor(NewStore(), rssfeeds.NewFetcher(srv.Client(), logging.Discard()), feeds, 10, logging.Discard())

	_, err := ing.Ingest(context.Background(), types.IngestRequest{Category: "general", Country: "us"})
	assert.Error(t, err)
}

func TestStoreUpsertByURL(t *testing.T) {
	store := NewStore()
	a := types.Article{Title: "One", URL: "https://example.com/1", SourceName: "Example"}

	id, created := store.Upsert(a)
	assert.True(t, created)
	assert.Equal(t, int64(1), id)

	a.Title = "One again"
	id, created = store.Upsert(a)
	assert.False(t, created)
	assert.Equal(t, int64(1), id)

	_, created = store.Upsert(types.Article{Title: "no link"})
	assert.False(t, created)
	assert.Equal(t, 1, store.Len())

	got, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, "One", got.Title)
	require.NotNil(t, got.SourceDetail)
	assert.Equal(t, "example", got.SourceDetail.SourceID)
}
