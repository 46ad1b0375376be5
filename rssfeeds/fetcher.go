package rssfeeds

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"newsdash/types"
)

// Fetcher downloads and parses RSS/Atom feeds
type Fetcher struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewFetcher creates a fetcher; a nil client gets a 30 second timeout
func NewFetcher(httpClient *http.Client, logger *slog.Logger) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{httpClient: httpClient, logger: logger}
}

// FetchFeed retrieves and parses an RSS/Atom feed, returning up to maxCount articles.
// Items without a link or a date are skipped.
func (f *Fetcher) FetchFeed(ctx context.Context, feedURL string, maxCount int) ([]types.Article, error) {
	parser := gofeed.NewParser()
	parser.Client = f.httpClient

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	articles := make([]types.Article, 0, min(len(feed.Items), maxCount))
	for _, item := range feed.Items {
		if len(articles) >= maxCount {
			break
		}

		article, ok := toArticle(item)
		if !ok {
			f.logger.Debug("skipping feed item", slog.String("feed", feedURL), slog.String("title", item.Title))
			continue
		}
		article.SourceName = strings.TrimSpace(feed.Title)
		articles = append(articles, article)
	}

	return articles, nil
}

// FetchPreset fetches feed and attributes its articles to the feed's source, category and country
func (f *Fetcher) FetchPreset(ctx context.Context, feed FeedConfig, maxCount int) ([]types.Article, error) {
	articles, err := f.FetchFeed(ctx, feed.URL, maxCount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", feed.Name, err)
	}

	source := &types.Source{
		SourceID: feed.SourceID,
		Name:     feed.Name,
		URL:      feed.Homepage,
		Country:  feed.Country,
		Language: feed.Language,
	}
	for i := range articles {
		articles[i].SourceName = feed.Name
		articles[i].SourceDetail = source
		articles[i].CategoryName = types.StringPtr(feed.Category)
		articles[i].Country = feed.Country
	}
	return articles, nil
}

func toArticle(item *gofeed.Item) (types.Article, bool) {
	if item.Link == "" {
		return types.Article{}, false
	}

	// Parse published date
	var publishedAt time.Time
	if item.PublishedParsed != nil {
		publishedAt = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		publishedAt = *item.UpdatedParsed
	} else {
		return types.Article{}, false
	}

	// Extract author
	author := ""
	if item.Author != nil {
		author = item.Author.Name
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		author = item.Authors[0].Name
	}

	// Get description/summary
	description := item.Description
	if description == "" {
		description = item.Content
	}

	article := types.Article{
		Author:      author,
		Title:       strings.TrimSpace(item.Title),
		Description: strings.TrimSpace(description),
		URL:         item.Link,
		PublishedAt: publishedAt.UTC(),
		Content:     item.Content,
	}

	// Extract image if available
	if item.Image != nil {
		article.URLToImage = item.Image.URL
	}

	return article, true
}
