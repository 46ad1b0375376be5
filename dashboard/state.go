// Package dashboard holds the state of the news dashboard and the reducer
// that drives it. Reduce never performs I/O: it returns the effects to run,
// and Execute turns each effect into the action that completes it.
package dashboard

import (
	"newsdash/config"
	"newsdash/types"
)

// Status is the state of the article listing
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusError   Status = "error"
)

// State is everything the dashboard renders
type State struct {
	Articles   []types.Article
	Categories []types.Category
	Sources    []types.Source

	SearchText       string
	SelectedCategory string // category slug
	SelectedSource   string // source_id

	// Country scopes every listing; it is not a user filter and survives ClearFilters
	Country string

	CurrentPage int
	TotalCount  int
	PageSize    int
	TotalPages  int

	Loading bool
	Error   string

	// Generation identifies the latest article load; completions carrying
	// any other generation are stale.
	Generation uint64

	Ingesting     bool
	IngestMessage string
}

// NewState returns the state before Init; pageSize <= 0 uses the backend default
func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}
	return State{
		Articles:    []types.Article{},
		Categories:  []types.Category{},
		Sources:     []types.Source{},
		CurrentPage: 1,
		PageSize:    pageSize,
	}
}

// Status derives the listing status from the flags
func (s State) Status() Status {
	switch {
	case s.Generation == 0:
		return StatusIdle
	case s.Loading:
		return StatusLoading
	case s.Error != "":
		return StatusError
	default:
		return StatusLoaded
	}
}

// HasActiveFilters reports whether search text or a filter selection is set
func (s State) HasActiveFilters() bool {
	return s.SearchText != "" || s.SelectedCategory != "" || s.SelectedSource != ""
}

// Query is the article query for the current filters and page
func (s State) Query() types.ArticleQuery {
	return types.ArticleQuery{
		Page:     s.CurrentPage,
		Category: s.SelectedCategory,
		Source:   s.SelectedSource,
		Country:  s.Country,
		Search:   s.SearchText,
	}
}

// VisiblePages is the page-number window around the current page
func (s State) VisiblePages() []int {
	return PageWindow(s.CurrentPage, s.TotalPages)
}

// CategoryName returns the display name of the selected category, or "" when none is selected
func (s State) CategoryName() string {
	for _, c := range s.Categories {
		if c.Slug == s.SelectedCategory {
			return c.Name
		}
	}
	return s.SelectedCategory
}

// SourceName returns the display name of the selected source
func (s State) SourceName() string {
	for _, src := range s.Sources {
		if src.SourceID == s.SelectedSource {
			return src.Name
		}
	}
	return s.SelectedSource
}
