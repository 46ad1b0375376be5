package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"newsdash/types"
)

// ListCategories fetches all categories; on failure it returns an empty list and the error
func (c *NewsClient) ListCategories(ctx context.Context) ([]types.Category, error) {
	start := time.Now()

	var categories []types.Category
	err := c.doJSONRequest(ctx, "list_categories", http.MethodGet, "/categories/", nil, &categories)
	c.observe("list_categories", start, err)
	if err != nil {
		return []types.Category{}, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []types.Category{}
	}
	return categories, nil
}

// ListSources fetches all sources; on failure it returns an empty list and the error
func (c *NewsClient) ListSources(ctx context.Context) ([]types.Source, error) {
	start := time.Now()

	var sources []types.Source
	err := c.doJSONRequest(ctx, "list_sources", http.MethodGet, "/sources/", nil, &sources)
	c.observe("list_sources", start, err)
	if err != nil {
		return []types.Source{}, fmt.Errorf("list sources: %w", err)
	}
	if sources == nil {
		sources = []types.Source{}
	}
	return sources, nil
}
