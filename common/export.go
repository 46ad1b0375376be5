// Package common holds the article page export and its S3 backend.
package common

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"newsdash/types"
)

// ErrNoBucket is returned when an upload is requested without a bucket
var ErrNoBucket = errors.New("no S3 bucket configured")

// ObjectStore is what Exporter uploads through; *S3 implements it
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType, cacheControl string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)
}

// Filters records the query an exported page was listed with
type Filters struct {
	Page     int    `json:"page"`
	Category string `json:"category,omitempty"`
	Source   string `json:"source,omitempty"`
	Country  string `json:"country,omitempty"`
	Search   string `json:"search,omitempty"`
}

// Snapshot is the exported document
type Snapshot struct {
	ExportedAt time.Time       `json:"exported_at"`
	Filters    Filters         `json:"filters"`
	Count      int             `json:"count"`
	Articles   []types.Article `json:"articles"`
}

// NewSnapshot captures one listed page
func NewSnapshot(q types.ArticleQuery, page types.Page[types.Article], at time.Time) Snapshot {
	articles := page.Results
	if articles == nil {
		articles = []types.Article{}
	}
	return Snapshot{
		ExportedAt: at.UTC(),
		Filters: Filters{
			Page:     max(q.Page, 1),
			Category: q.Category,
			Source:   q.Source,
			Country:  q.Country,
			Search:   q.Search,
		},
		Count:    page.Count,
		Articles: articles,
	}
}

// PageKey is the object key of an exported page
func PageKey(prefix string, page int) string {
	return fmt.Sprintf("%sarticles/page-%d.json", NormalizePrefix(prefix), max(page, 1))
}

// Write encodes snap as indented JSON
func Write(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Exporter uploads snapshots to a bucket
type Exporter struct {
	store  ObjectStore
	bucket string
	prefix string
	logger *slog.Logger
}

// NewExporter creates an exporter writing under prefix in bucket
func NewExporter(store ObjectStore, bucket, prefix string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{store: store, bucket: bucket, prefix: prefix, logger: logger}
}

// Upload writes snap and returns its key. An existing export of the same page is replaced.
func (e *Exporter) Upload(ctx context.Context, snap Snapshot) (string, error) {
	if e.bucket == "" {
		return "", ErrNoBucket
	}

	key := PageKey(e.prefix, snap.Filters.Page)

	exists, err := e.store.Exists(ctx, e.bucket, key)
	if err != nil {
		return "", fmt.Errorf("check s3://%s/%s: %w", e.bucket, key, err)
	}
	if exists {
		e.logger.Info("replacing existing export", slog.String("bucket", e.bucket), slog.String("key", key))
	}

	var buf bytes.Buffer
	if err := Write(&buf, snap); err != nil {
		return "", err
	}
	if err := e.store.Put(ctx, e.bucket, key, &buf, "application/json", "public, max-age=300"); err != nil {
		return "", fmt.Errorf("upload s3://%s/%s: %w", e.bucket, key, err)
	}

	e.logger.Info("exported article page",
		slog.String("bucket", e.bucket),
		slog.String("key", key),
		slog.Int("articles", len(snap.Articles)))
	return key, nil
}
