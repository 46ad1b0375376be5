package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdash/api"
	"newsdash/common"
	"newsdash/config"
	"newsdash/observability/logging"
	"newsdash/tui"
	"newsdash/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type ingestFunc func(ctx context.Context, req types.IngestRequest) (int, error)

func (f ingestFunc) Ingest(ctx context.Context, req types.IngestRequest) (int, error) {
	return f(ctx, req)
}

// newBackend serves n sample articles and returns the API root
func newBackend(t *testing.T, n int, ingest ingestFunc) string {
	t.Helper()
	store := api.NewStore()
	store.Seed(api.SampleArticles(n, time.Now()))

	opts := api.Options{Store: store, Logger: logging.Discard()}
	if ingest != nil {
		opts.Ingestor = ingest
	}
	srv := httptest.NewServer(api.NewRouter(opts))
	t.Cleanup(srv.Close)
	return srv.URL + api.Prefix
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_level: error\n"), 0o644))

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestArticlesJSON(t *testing.T) {
	base := newBackend(t, 125, nil)

	out, err := run(t, "--base-url", base, "articles", "--source", "bbc-news", "--json")
	require.NoError(t, err)

	var got pageJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 1, got.TotalPages)
	assert.Equal(t, 32, got.Count)
	assert.Len(t, got.Results, 32)
	for _, a := range got.Results {
		assert.Equal(t, "BBC News", a.SourceName)
	}
}

func TestArticlesText(t *testing.T) {
	base := newBackend(t, 125, nil)

	out, err := run(t, "--base-url", base, "articles", "--page", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 2 of 3 (125 articles)")

	out, err = run(t, "--base-url", base, "articles", "--category", "science")
	require.NoError(t, err)
	assert.Contains(t, out, "25 articles")
	assert.Contains(t, out, "Science")
}

func TestArticlesEmptyIsNotAFailure(t *testing.T) {
	base := newBackend(t, 125, nil)

	out, err := run(t, "--base-url", base, "articles", "--search", "no-such-headline")
	require.NoError(t, err)
	assert.Contains(t, out, tui.TextNoArticles)
	assert.Contains(t, out, tui.TextNoArticlesTip)
}

func TestArticlesFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	out, err := run(t, "--base-url", base, "articles")
	require.Error(t, err)
	assert.Equal(t, config.LoadErrorMessage, err.Error())
	assert.Empty(t, out)
}

func TestArticlesInvalidPage(t *testing.T) {
	base := newBackend(t, 10, nil)

	_, err := run(t, "--base-url", base, "articles", "--page", "5")
	assert.EqualError(t, err, config.LoadErrorMessage)
}

func TestCategoriesAndSources(t *testing.T) {
	base := newBackend(t, 125, nil)

	out, err := run(t, "--base-url", base, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "SLUG")
	assert.Contains(t, out, "science")

	out, err = run(t, "--base-url", base, "sources")
	require.NoError(t, err)
	assert.Contains(t, out, "bbc-news")
	assert.Contains(t, out, "BBC News")
}

func TestFetch(t *testing.T) {
	var got types.IngestRequest
	base := newBackend(t, 0, func(_ context.Context, req types.IngestRequest) (int, error) {
		got = req
		return 3, nil
	})

	out, err := run(t, "--base-url", base, "fetch", "--category", "technology", "--query", "ai")
	require.NoError(t, err)
	assert.Equal(t, "Successfully fetched and stored 3 articles.\n", out)
	assert.Equal(t, "technology", got.Category)
	assert.Equal(t, "ai", got.Query)
}

func TestFetchFailure(t *testing.T) {
	base := newBackend(t, 0, func(context.Context, types.IngestRequest) (int, error) {
		return 0, errors.New("all feeds failed")
	})

	out, err := run(t, "--base-url", base, "fetch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all feeds failed")
	assert.Equal(t, config.IngestFailedMessage+"\n", out)
}

func TestExportToStdoutAndFile(t *testing.T) {
	base := newBackend(t, 125, nil)

	out, err := run(t, "--base-url", base, "export", "--source", "reuters")
	require.NoError(t, err)

	var snap common.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, common.Filters{Page: 1, Source: "reuters"}, snap.Filters)
	assert.Equal(t, snap.Count, len(snap.Articles))

	path := filepath.Join(t.TempDir(), "page.json")
	out, err = run(t, "--base-url", base, "export", "--page", "3", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, 3, snap.Filters.Page)
	assert.Len(t, snap.Articles, 25)
}

type memStore struct {
	objects map[string][]byte
}

func (m *memStore) Put(_ context.Context, bucket, key string, body io.Reader, _, _ string) error {
	b, err := io.ReadAll(body)
	m.objects[bucket+"/"+key] = b
	return err
}

func (m *memStore) Exists(_ context.Context, bucket, key string) (bool, error) {
	_, ok := m.objects[bucket+"/"+key]
	return ok, nil
}

func TestExportToBucket(t *testing.T) {
	store := &memStore{objects: map[string][]byte{}}
	orig := newObjectStore
	newObjectStore = func(context.Context, config.S3Config) (common.ObjectStore, error) {
		return store, nil
	}
	t.Cleanup(func() { newObjectStore = orig })

	base := newBackend(t, 60, nil)
	out, err := run(t, "--base-url", base, "export", "--page", "2", "--bucket", "news", "--prefix", "daily")
	require.NoError(t, err)
	assert.Equal(t, "s3://news/daily/articles/page-2.json\n", out)

	var snap common.Snapshot
	require.NoError(t, json.Unmarshal(store.objects["news/daily/articles/page-2.json"], &snap))
	assert.Equal(t, 60, snap.Count)
	assert.Len(t, snap.Articles, 10)
}

func TestExportSkipsFailedLoad(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	out, err := run(t, "--base-url", base, "export")
	assert.EqualError(t, err, config.LoadErrorMessage)
	assert.Empty(t, out)
}

func TestServeRouter(t *testing.T) {
	so := serveOptions{seed: 10, maxPerFeed: 5}
	b, err := so.router(config.Default(), logging.Discard())
	require.NoError(t, err)
	assert.Nil(t, b.Cooldown)

	rec := httptest.NewRecorder()
	b.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, api.Prefix+"/articles/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.Page[types.Article]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 10, page.Count)
}

func TestServeRouterBadFeeds(t *testing.T) {
	so := serveOptions{feedsPath: filepath.Join(t.TempDir(), "missing.yaml")}
	_, err := so.router(config.Default(), logging.Discard())
	assert.Error(t, err)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), logging.Discard())
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "today")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "newsdash 1.2.3 (commit: abc, built: today)\n", out)
}

func TestInvalidBaseURL(t *testing.T) {
	_, err := run(t, "--base-url", "not a url", "articles")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRootCountryFlag(t *testing.T) {
	cmd := NewRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--country", "gb"}))

	f := cmd.Flags().Lookup("country")
	require.NotNil(t, f)
	assert.Equal(t, "gb", f.Value.String())
	assert.Nil(t, cmd.PersistentFlags().Lookup("country"), "subcommands keep their own --country")
}

func TestServeUsesConfiguredPageSize(t *testing.T) {
	cfg := config.Default()
	cfg.PageSize = 4
	b, err := serveOptions{seed: 10}.router(cfg, logging.Discard())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	b.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, api.Prefix+"/articles/?page=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.Page[types.Article]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 10, page.Count)
	assert.Len(t, page.Results, 2)
}
