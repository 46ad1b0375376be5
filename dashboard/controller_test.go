package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdash/config"
	"newsdash/observability/logging"
	"newsdash/types"
)

type fakeLoader struct {
	mu      sync.Mutex
	queries []types.ArticleQuery
	ingests []types.IngestRequest

	page       types.Page[types.Article]
	articleErr error
	catErr     error
	ingestMsg  string
	ingestErr  error
}

func (f *fakeLoader) ListArticles(_ context.Context, q types.ArticleQuery) (types.Page[types.Article], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.articleErr != nil {
		return types.EmptyPage[types.Article](), f.articleErr
	}
	return f.page, nil
}

func (f *fakeLoader) ListCategories(context.Context) ([]types.Category, error) {
	if f.catErr != nil {
		return []types.Category{}, f.catErr
	}
	return []types.Category{{ID: 1, Name: "Technology", Slug: "technology", ArticleCount: 3}}, nil
}

func (f *fakeLoader) ListSources(context.Context) ([]types.Source, error) {
	return []types.Source{{ID: 1, SourceID: "bbc-news", Name: "BBC News"}}, nil
}

func (f *fakeLoader) TriggerIngestion(_ context.Context, req types.IngestRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ingests = append(f.ingests, req)
	if f.ingestErr != nil {
		return config.IngestFailedMessage, f.ingestErr
	}
	return f.ingestMsg, nil
}

func TestControllerInit(t *testing.T) {
	loader := &fakeLoader{page: types.Page[types.Article]{Count: 125, Results: articles(50)}}
	c := NewController(loader, 50, logging.Discard())

	s := c.Dispatch(context.Background(), Init{})

	assert.Equal(t, StatusLoaded, s.Status())
	assert.Len(t, s.Articles, 50)
	assert.Equal(t, 3, s.TotalPages)
	assert.Len(t, s.Categories, 1)
	assert.Len(t, s.Sources, 1)
	assert.Equal(t, []types.ArticleQuery{{Page: 1}}, loader.queries)
}

func TestControllerCategoryFailureIsSilent(t *testing.T) {
	loader := &fakeLoader{
		page:   types.Page[types.Article]{Count: 1, Results: articles(1)},
		catErr: errors.New("boom"),
	}
	c := NewController(loader, 50, logging.Discard())

	s := c.Dispatch(context.Background(), Init{})
	assert.Empty(t, s.Categories)
	assert.Len(t, s.Sources, 1)
	assert.Empty(t, s.Error)
	assert.Equal(t, StatusLoaded, s.Status())
}

func TestControllerFailedVersusEmpty(t *testing.T) {
	t.Run("failed", func(t *testing.T) {
		c := NewController(&fakeLoader{articleErr: errors.New("connection refused")}, 50, logging.Discard())
		s := c.Dispatch(context.Background(), Init{})

		assert.Equal(t, 0, s.TotalCount)
		assert.Empty(t, s.Articles)
		assert.Equal(t, config.LoadErrorMessage, s.Error)
	})

	t.Run("empty", func(t *testing.T) {
		c := NewController(&fakeLoader{page: types.EmptyPage[types.Article]()}, 50, logging.Discard())
		s := c.Dispatch(context.Background(), Init{})

		assert.Equal(t, 0, s.TotalCount)
		assert.Empty(t, s.Articles)
		assert.Empty(t, s.Error)
	})
}

func TestControllerFiltersAndPaging(t *testing.T) {
	loader := &fakeLoader{page: types.Page[types.Article]{Count: 500, Results: articles(50)}}
	c := NewController(loader, 50, logging.Discard())
	ctx := context.Background()

	c.Dispatch(ctx, Init{})
	c.Dispatch(ctx, GotoPage{Page: 2})
	c.Dispatch(ctx, SetSource{SourceID: "bbc"})
	c.Dispatch(ctx, SetSearchText{Text: "tech"})
	c.Dispatch(ctx, GotoPage{Page: 2})
	c.Dispatch(ctx, GotoPage{Page: 99})
	s := c.Dispatch(ctx, Search{})

	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, []types.ArticleQuery{
		{Page: 1},
		{Page: 2},
		{Page: 1, Source: "bbc"},
		{Page: 2, Source: "bbc", Search: "tech"},
		{Page: 1, Source: "bbc", Search: "tech"},
	}, loader.queries)
}

func TestControllerIngestion(t *testing.T) {
	loader := &fakeLoader{
		page:      types.Page[types.Article]{Count: 2, Results: articles(2)},
		ingestMsg: "Successfully fetched and stored 2 articles.",
	}
	c := NewController(loader, 50, logging.Discard())
	ctx := context.Background()

	c.Dispatch(ctx, Init{})
	s := c.Dispatch(ctx, TriggerIngestion{Category: "technology"})

	assert.False(t, s.Ingesting)
	assert.Equal(t, "Successfully fetched and stored 2 articles.", s.IngestMessage)
	assert.Equal(t, []types.IngestRequest{{Category: "technology"}}, loader.ingests)
	// init load plus the reload after ingestion
	assert.Len(t, loader.queries, 2)

	loader.ingestErr = errors.New("quota")
	s = c.Dispatch(ctx, TriggerIngestion{})
	assert.Equal(t, config.IngestFailedMessage, s.IngestMessage)
	assert.Len(t, loader.queries, 2)
}

func TestExecuteScrollToTop(t *testing.T) {
	assert.Nil(t, Execute(context.Background(), &fakeLoader{}, logging.Discard(), ScrollToTop{}))
}

func TestExecuteCarriesGeneration(t *testing.T) {
	loader := &fakeLoader{articleErr: errors.New("boom")}
	a := Execute(context.Background(), loader, nil, LoadArticles{Generation: 7, Query: types.ArticleQuery{Page: 1}})

	failed, ok := a.(ArticlesFailed)
	require.True(t, ok)
	assert.Equal(t, uint64(7), failed.Generation)
	assert.Error(t, failed.Err)
}

func TestControllerAtPresetFilters(t *testing.T) {
	loader := &fakeLoader{page: types.Page[types.Article]{Count: 120, Results: articles(50)}}

	s := NewState(50)
	s.CurrentPage = 2
	s.SelectedSource = "bbc-news"
	s.Country = "gb"
	c := NewControllerAt(loader, s, logging.Discard())
	assert.Equal(t, StatusIdle, c.State().Status())
	assert.Empty(t, loader.queries)

	got := c.Dispatch(context.Background(), Refresh{})
	assert.Equal(t, StatusLoaded, got.Status())
	assert.Equal(t, 3, got.TotalPages)
	assert.Equal(t, []types.ArticleQuery{{Page: 2, Source: "bbc-news", Country: "gb"}}, loader.queries)

	got = c.Dispatch(context.Background(), ClearFilters{})
	assert.Equal(t, "gb", got.Country)
	assert.Equal(t, types.ArticleQuery{Page: 1, Country: "gb"}, loader.queries[len(loader.queries)-1])
}
