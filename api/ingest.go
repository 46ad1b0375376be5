package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"newsdash/rssfeeds"
	"newsdash/types"
)

// WorkerCount bounds concurrent feed downloads during ingestion
const WorkerCount = 4

// ErrNoFeeds is returned when no feed matches the requested category and country
var ErrNoFeeds = errors.New("no feeds configured")

// FeedIngestor fills a Store from RSS feeds
type FeedIngestor struct {
	store      *Store
	fetcher    *rssfeeds.Fetcher
	feeds      map[string]rssfeeds.FeedConfig
	maxPerFeed int
	logger     *slog.Logger
}

// NewFeedIngestor creates an ingestor over feeds; nil feeds use rssfeeds.FeedPresets
func NewFeedIngestor(store *Store, fetcher *rssfeeds.Fetcher, feeds map[string]rssfeeds.FeedConfig, maxPerFeed int, logger *slog.Logger) *FeedIngestor {
	if feeds == nil {
		feeds = rssfeeds.FeedPresets
	}
	if maxPerFeed <= 0 {
		maxPerFeed = rssfeeds.DefaultCount
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedIngestor{
		store:      store,
		fetcher:    fetcher,
		feeds:      feeds,
		maxPerFeed: maxPerFeed,
		logger:     logger,
	}
}

// Ingest fetches every feed matching req's category and country, keeps the
// articles matching req.Query and stores them. It fails only when every feed failed.
func (i *FeedIngestor) Ingest(ctx context.Context, req types.IngestRequest) (int, error) {
	feeds := rssfeeds.SelectFeeds(i.feeds, req.Category, req.Country)
	if len(feeds) == 0 {
		return 0, fmt.Errorf("%w for category=%s, country=%s", ErrNoFeeds, req.Category, req.Country)
	}

	i.logger.Info("fetching feeds",
		slog.String("category", req.Category),
		slog.String("country", req.Country),
		slog.Int("feeds", len(feeds)))

	var (
		mu      sync.Mutex
		fetched []types.Article
		errs    []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(WorkerCount)
	for _, feed := range feeds {
		g.Go(func() error {
			articles, err := i.fetcher.FetchPreset(gctx, feed, i.maxPerFeed)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				i.logger.Warn("feed failed", slog.String("feed", feed.Name), slog.Any("error", err))
				errs = append(errs, err)
				return nil
			}
			fetched = append(fetched, articles...)
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) == len(feeds) {
		return 0, errors.Join(errs...)
	}

	created := 0
	for _, a := range fetched {
		if !rssfeeds.MatchesQuery(a.Title, a.Description, req.Query) {
			continue
		}
		if _, ok := i.store.Upsert(a); ok {
			created++
		}
	}

	i.logger.Info("stored articles",
		slog.String("category", req.Category),
		slog.String("country", req.Country),
		slog.Int("created", created))
	return created, nil
}
