// Package client talks to the news REST API.
//
// Every call returns the value a UI can render even when the request fails
// (an empty page, an empty list, a fixed acknowledgement) together with the
// error, so callers decide whether a failure is worth surfacing.
package client

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"newsdash/config"
	"newsdash/resilience"
)

// Options configures a NewsClient; zero values fall back to the config defaults
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RateLimit  float64
	RateBurst  int
	Logger     *slog.Logger
	HTTPClient *http.Client
	Breaker    *resilience.Config
}

// NewsClient represents the client for the news API
type NewsClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *resilience.Breaker
	logger     *slog.Logger
}

// NewNewsClient creates a new news API client
func NewNewsClient(opts Options) *NewsClient {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = config.DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Limit(opts.RateLimit)
	burst := opts.RateBurst
	if opts.RateLimit <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = config.DefaultRateBurst
	}

	breakerCfg := resilience.DefaultConfig("news-api")
	if opts.Breaker != nil {
		breakerCfg = *opts.Breaker
	}
	if breakerCfg.IsSuccessful == nil {
		breakerCfg.IsSuccessful = isClientError
	}

	return &NewsClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		breaker:    resilience.NewBreaker(breakerCfg, logger),
		logger:     logger,
	}
}

// FromConfig creates a client from the resolved configuration
func FromConfig(cfg config.Config, logger *slog.Logger) *NewsClient {
	return NewNewsClient(Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.RequestTimeout(),
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
		Logger:    logger,
	})
}

// BaseURL returns the API root the client sends requests to
func (c *NewsClient) BaseURL() string {
	return c.baseURL
}

// isClientError reports a 4xx reply. The backend answered, so the breaker
// treats it as healthy: an invalid page or a fetch cooldown must not trip it.
func isClientError(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode < http.StatusInternalServerError
}
