package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"newsdash/observability/metrics"
	"newsdash/observability/tracing"
)

// maxErrorBody caps how much of an error response is kept in HTTPError
const maxErrorBody = 4 << 10

// HTTPError is returned for non-2xx responses
type HTTPError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("API returned %d: %s", e.StatusCode, e.Message)
}

// doJSONRequest performs a JSON request with the given method, path, payload, and result.
// The request waits for the rate limiter, runs through the circuit breaker and is traced.
// If result is nil, the response body is not decoded.
func (c *NewsClient) doJSONRequest(ctx context.Context, op, method, path string, payload, result interface{}) error {
	ctx, span := tracing.Tracer().Start(ctx, "newsapi."+op)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("newsapi.path", path),
	)

	err := c.limiter.Wait(ctx)
	if err == nil {
		err = c.breaker.Do(func() error {
			return c.roundTrip(ctx, method, path, payload, result)
		})
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *NewsClient) roundTrip(ctx context.Context, method, path string, payload, result interface{}) error {
	url := c.baseURL + path

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(bodyBytes)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// errorMessage prefers the backend's {"error": ...} or {"detail": ...} field over the raw body
func errorMessage(body []byte) string {
	var parsed struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Detail != "" {
			return parsed.Detail
		}
	}
	return string(bytes.TrimSpace(body))
}

// observe logs a failed call once and records its metrics
func (c *NewsClient) observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "fallback"
		c.logger.Error("news API request failed",
			slog.String("operation", op),
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("error", err))
	}
	metrics.RecordClientRequest(op, outcome, time.Since(start))
}
