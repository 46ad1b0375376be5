package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"newsdash/api"
	"newsdash/config"
	"newsdash/observability/logging"
	"newsdash/rssfeeds"
)

// shutdownTimeout bounds graceful shutdown of the backend
const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	addr       string
	seed       int
	feedsPath  string
	maxPerFeed int
	rateLimit  float64
	rateBurst  int
}

func newServeCmd(o *rootOptions) *cobra.Command {
	so := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the in-memory news API for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)

			b, err := so.router(cfg, logger)
			if err != nil {
				return err
			}

			cooldown, err := api.NewRedisCooldownFromEnv(cmd.Context())
			if err != nil {
				return err
			}
			if cooldown != nil {
				defer cooldown.Close()
				b.Cooldown = cooldown
				logger.Info("fetch cooldown enabled", slog.String("redis", os.Getenv("REDIS_ADDR")))
			}
			return serve(cmd.Context(), so.addr, b.Router(), logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&so.addr, "addr", ":8000", "listen address")
	f.IntVar(&so.seed, "seed", 0, "number of sample articles to preload")
	f.StringVar(&so.feedsPath, "feeds", "", "YAML file of RSS feeds (default: built-in presets)")
	f.IntVar(&so.maxPerFeed, "max-per-feed", rssfeeds.DefaultCount, "articles taken from each feed per fetch")
	f.Float64Var(&so.rateLimit, "rate-limit", 0, "requests per second across all clients; 0 disables throttling")
	f.IntVar(&so.rateBurst, "rate-burst", 20, "burst allowed by --rate-limit")
	return cmd
}

// router builds the backend options with its store and feed ingestor
func (so serveOptions) router(cfg config.Config, logger *slog.Logger) (*backend, error) {
	feeds := rssfeeds.FeedPresets
	if so.feedsPath != "" {
		loaded, err := rssfeeds.LoadFeeds(so.feedsPath)
		if err != nil {
			return nil, err
		}
		feeds = loaded
	}

	store := api.NewStore()
	if so.seed > 0 {
		n := store.Seed(api.SampleArticles(so.seed, time.Now()))
		logger.Info("seeded store", slog.Int("articles", n))
	}

	fetcher := rssfeeds.NewFetcher(&http.Client{Timeout: cfg.RequestTimeout()}, logger)

	if logging.ParseLevel(cfg.LogLevel) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	return &backend{api.Options{
		Store:     store,
		Ingestor:  api.NewFeedIngestor(store, fetcher, feeds, so.maxPerFeed, logger),
		PageSize:  cfg.PageSize,
		Logger:    logger,
		RateLimit: so.rateLimit,
		RateBurst: so.rateBurst,
	}}, nil
}

// backend is the configured reference API before it is turned into a handler
type backend struct {
	api.Options
}

// Router builds the gin engine
func (b *backend) Router() http.Handler {
	return api.NewRouter(b.Options)
}

// serve runs handler on addr until ctx is cancelled, then shuts down gracefully
func serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("news API listening", slog.String("addr", addr), slog.String("prefix", api.Prefix))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
