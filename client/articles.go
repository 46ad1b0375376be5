package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsdash/types"
)

// ListArticles fetches one page of articles matching q.
// On failure it returns an empty page together with the error.
func (c *NewsClient) ListArticles(ctx context.Context, q types.ArticleQuery) (types.Page[types.Article], error) {
	start := time.Now()

	var page types.Page[types.Article]
	err := c.doJSONRequest(ctx, "list_articles", http.MethodGet, "/articles/?"+EncodeArticleQuery(q), nil, &page)
	c.observe("list_articles", start, err)
	if err != nil {
		return types.EmptyPage[types.Article](), fmt.Errorf("list articles: %w", err)
	}

	if page.Results == nil {
		page.Results = []types.Article{}
	}
	return page, nil
}

// GetArticle fetches the full detail of a single article
func (c *NewsClient) GetArticle(ctx context.Context, id int64) (*types.Article, error) {
	start := time.Now()

	var article types.Article
	err := c.doJSONRequest(ctx, "get_article", http.MethodGet, fmt.Sprintf("/articles/%d/", id), nil, &article)
	c.observe("get_article", start, err)
	if err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	return &article, nil
}

// EncodeArticleQuery builds the query string of an article listing.
// page is always present (at least 1); filters follow in a fixed order and
// are left out entirely when empty.
func EncodeArticleQuery(q types.ArticleQuery) string {
	page := q.Page
	if page < 1 {
		page = 1
	}

	var b strings.Builder
	b.WriteString("page=")
	b.WriteString(strconv.Itoa(page))

	for _, p := range [...]struct{ key, value string }{
		{"category", q.Category},
		{"source", q.Source},
		{"country", q.Country},
		{"search", q.Search},
	} {
		if p.value == "" {
			continue
		}
		b.WriteByte('&')
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}

	return b.String()
}
