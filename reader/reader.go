// Package reader turns an article page into plain text for the preview pane.
package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"newsdash/browser"
	"newsdash/config"
	"newsdash/types"
)

// maxPageBytes caps how much of an article page is parsed
const maxPageBytes = 5 << 20

// ErrNoURL is returned for articles without a link
var ErrNoURL = errors.New("article URL is empty")

// Preview is the readable text of an article
type Preview struct {
	Title    string
	Byline   string
	SiteName string
	Excerpt  string
	Text     string
	Image    string

	// FromContent is set when the text came from the article itself rather than a download
	FromContent bool
}

// Extractor downloads article pages and extracts their readable content
type Extractor struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewExtractor creates an extractor; timeout <= 0 uses config.ReaderTimeout
func NewExtractor(timeout time.Duration, logger *slog.Logger) *Extractor {
	if timeout <= 0 {
		timeout = config.ReaderTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Preview returns the readable text of article, using its content when the
// backend already sent one.
func (e *Extractor) Preview(ctx context.Context, article types.Article) (*Preview, error) {
	if content := strings.TrimSpace(article.Content); content != "" {
		return &Preview{
			Title:       article.Title,
			Byline:      article.Author,
			SiteName:    article.SourceName,
			Excerpt:     article.Description,
			Text:        content,
			Image:       article.URLToImage,
			FromContent: true,
		}, nil
	}

	p, err := e.Extract(ctx, article.URL)
	if err != nil {
		return nil, err
	}
	if p.Title == "" {
		p.Title = article.Title
	}
	if p.Byline == "" {
		p.Byline = article.Author
	}
	if p.Image == "" {
		p.Image = article.URLToImage
	}
	return p, nil
}

// Extract downloads rawURL and extracts its readable content
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Preview, error) {
	if rawURL == "" {
		return nil, ErrNoURL
	}
	if err := browser.Validate(rawURL); err != nil {
		return nil, err
	}
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download article: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("article page returned %d", resp.StatusCode)
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body, maxPageBytes), pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability extraction failed: %w", err)
	}

	e.logger.Debug("extracted article",
		slog.String("url", rawURL),
		slog.Int("length", article.Length))

	return &Preview{
		Title:    article.Title,
		Byline:   article.Byline,
		SiteName: article.SiteName,
		Excerpt:  article.Excerpt,
		Text:     strings.TrimSpace(article.TextContent),
		Image:    article.Image,
	}, nil
}
