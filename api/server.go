// Package api is an in-memory implementation of the news REST API, used by
// `newsdash serve` for local development and as the backend in tests.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"newsdash/config"
	"newsdash/observability/metrics"
	"newsdash/types"
)

// Prefix is where the news routes are mounted
const Prefix = "/api/news"

// Ingestor pulls fresh articles into the store and reports how many were new
type Ingestor interface {
	Ingest(ctx context.Context, req types.IngestRequest) (int, error)
}

// Options configures the router
type Options struct {
	Store    *Store
	Ingestor Ingestor // nil disables POST /fetch/
	Cooldown Cooldown // nil lets every fetch run
	PageSize int
	Logger   *slog.Logger

	// RateLimit throttles all clients together (requests/second); <= 0 disables it
	RateLimit float64
	RateBurst int
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(opts Options) *gin.Engine {
	if opts.Store == nil {
		opts.Store = NewStore()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = config.DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(opts.Logger))
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		r.Use(throttle(rate.NewLimiter(rate.Limit(opts.RateLimit), burst)))
	}

	// Register resource routers
	RegisterHealthRoutes(r)
	news := r.Group(Prefix)
	RegisterArticleRoutes(news, opts.Store, opts.PageSize)
	RegisterCatalogRoutes(news, opts.Store)
	RegisterFetchRoutes(news, opts.Ingestor, opts.Cooldown, opts.Logger)
	return r
}

// requestLogger logs every request and counts it by route and status
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.ServerRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()

		logger.Info("request completed",
			slog.String("request_id", c.GetHeader("X-Request-ID")),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("query", c.Request.URL.RawQuery),
			slog.Int("status", status),
			slog.Int("bytes", c.Writer.Size()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

// throttle rejects requests beyond the limiter's rate with 429
func throttle(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Request was throttled."})
			return
		}
		c.Next()
	}
}
