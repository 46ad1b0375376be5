package dashboard

import (
	"context"
	"log/slog"

	"newsdash/types"
)

// Loader is the part of the news client the dashboard needs.
// Every method returns a usable fallback value alongside its error.
type Loader interface {
	ListArticles(ctx context.Context, q types.ArticleQuery) (types.Page[types.Article], error)
	ListCategories(ctx context.Context) ([]types.Category, error)
	ListSources(ctx context.Context) ([]types.Source, error)
	TriggerIngestion(ctx context.Context, req types.IngestRequest) (string, error)
}

// Execute runs effect against loader and returns the action that completes it.
// ScrollToTop has no I/O and returns nil; the UI handles it.
func Execute(ctx context.Context, loader Loader, logger *slog.Logger, effect Effect) Action {
	if logger == nil {
		logger = slog.Default()
	}

	switch e := effect.(type) {
	case LoadArticles:
		page, err := loader.ListArticles(ctx, e.Query)
		if err != nil {
			return ArticlesFailed{Generation: e.Generation, Err: err}
		}
		return ArticlesLoaded{Generation: e.Generation, Page: page}

	case LoadCategories:
		items, err := loader.ListCategories(ctx)
		if err != nil {
			logger.Warn("categories unavailable", slog.Any("error", err))
		}
		return CategoriesLoaded{Items: items, Err: err}

	case LoadSources:
		items, err := loader.ListSources(ctx)
		if err != nil {
			logger.Warn("sources unavailable", slog.Any("error", err))
		}
		return SourcesLoaded{Items: items, Err: err}

	case Ingest:
		msg, err := loader.TriggerIngestion(ctx, e.Request)
		return IngestionDone{Message: msg, Err: err}
	}

	return nil
}
