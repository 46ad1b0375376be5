package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"newsdash/config"
	"newsdash/types"
)

// TriggerIngestion asks the backend to pull fresh articles.
// On failure it returns config.IngestFailedMessage together with the error.
func (c *NewsClient) TriggerIngestion(ctx context.Context, req types.IngestRequest) (string, error) {
	start := time.Now()

	var resp types.IngestResponse
	err := c.doJSONRequest(ctx, "trigger_ingestion", http.MethodPost, "/fetch/", req, &resp)
	if err == nil && resp.Error != "" {
		err = fmt.Errorf("backend reported: %s", resp.Error)
	}
	c.observe("trigger_ingestion", start, err)
	if err != nil {
		return config.IngestFailedMessage, fmt.Errorf("trigger ingestion: %w", err)
	}
	return resp.Message, nil
}
