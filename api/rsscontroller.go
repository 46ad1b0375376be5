package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsdash/rssfeeds"
	"newsdash/types"
)

// RegisterFetchRoutes registers the manual ingestion trigger. cooldown may be nil.
func RegisterFetchRoutes(g *gin.RouterGroup, ingestor Ingestor, cooldown Cooldown, logger *slog.Logger) {
	g.POST("/fetch/", handleFetch(ingestor, cooldown, logger))
}

// handleFetch ingests fresh articles synchronously and reports how many were stored.
// The body is optional; category and country default to general/us.
func handleFetch(ingestor Ingestor, cooldown Cooldown, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ingestor == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ingestion is not configured on this server"})
			return
		}

		var req types.IngestRequest
		if c.Request.Body != nil && c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		if req.Category == "" {
			req.Category = rssfeeds.DefaultCategory
		}
		if req.Country == "" {
			req.Country = rssfeeds.DefaultCountry
		}

		key := cooldownKey(req)
		acquired := false
		if cooldown != nil {
			ok, err := cooldown.Acquire(c.Request.Context(), key)
			switch {
			case err != nil:
				// a cooldown outage does not block ingestion
				logger.Warn("fetch cooldown unavailable", slog.Any("error", err))
			case !ok:
				c.JSON(http.StatusTooManyRequests, gin.H{"error": "These news were fetched recently. Please try again later."})
				return
			default:
				acquired = true
			}
		}

		count, err := ingestor.Ingest(c.Request.Context(), req)
		if err != nil {
			logger.Error("error fetching news",
				slog.String("category", req.Category),
				slog.String("country", req.Country),
				slog.Any("error", err))
			// a failed fetch may be retried straight away
			if acquired {
				if relErr := cooldown.Release(context.WithoutCancel(c.Request.Context()), key); relErr != nil {
					logger.Warn("fetch cooldown release failed", slog.String("key", key), slog.Any("error", relErr))
				}
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.IngestResponse{
			Message: fmt.Sprintf("Successfully fetched and stored %d articles.", count),
		})
	}
}
