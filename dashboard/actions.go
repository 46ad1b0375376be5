package dashboard

import "newsdash/types"

// Action is an input to Reduce
type Action interface {
	isAction()
}

// Init loads categories, sources and the first article page
type Init struct{}

// SetSearchText updates the search box without reloading
type SetSearchText struct {
	Text string
}

// Search submits the current search text
type Search struct{}

// SetCategory selects a category by slug; "" selects all
type SetCategory struct {
	Slug string
}

// SetSource selects a source by source_id; "" selects all
type SetSource struct {
	SourceID string
}

// ClearFilters empties search text and both selections
type ClearFilters struct{}

// GotoPage moves to a 1-indexed page
type GotoPage struct {
	Page int
}

// Refresh reloads the current page
type Refresh struct{}

// ArticlesLoaded completes the article load of Generation
type ArticlesLoaded struct {
	Generation uint64
	Page       types.Page[types.Article]
}

// ArticlesFailed completes the article load of Generation with an error
type ArticlesFailed struct {
	Generation uint64
	Err        error
}

// CategoriesLoaded completes the category side load
type CategoriesLoaded struct {
	Items []types.Category
	Err   error
}

// SourcesLoaded completes the source side load
type SourcesLoaded struct {
	Items []types.Source
	Err   error
}

// TriggerIngestion asks the backend to fetch fresh articles
type TriggerIngestion struct {
	Category string
	Country  string
	Query    string
}

// IngestionDone carries the backend acknowledgement
type IngestionDone struct {
	Message string
	Err     error
}

func (Init) isAction()             {}
func (SetSearchText) isAction()    {}
func (Search) isAction()           {}
func (SetCategory) isAction()      {}
func (SetSource) isAction()        {}
func (ClearFilters) isAction()     {}
func (GotoPage) isAction()         {}
func (Refresh) isAction()          {}
func (ArticlesLoaded) isAction()   {}
func (ArticlesFailed) isAction()   {}
func (CategoriesLoaded) isAction() {}
func (SourcesLoaded) isAction()    {}
func (TriggerIngestion) isAction() {}
func (IngestionDone) isAction()    {}

// Effect is work requested by Reduce
type Effect interface {
	isEffect()
}

// LoadArticles fetches one article page for Generation
type LoadArticles struct {
	Generation uint64
	Query      types.ArticleQuery
}

// LoadCategories fetches the category list
type LoadCategories struct{}

// LoadSources fetches the source list
type LoadSources struct{}

// ScrollToTop brings the article list back to its first item
type ScrollToTop struct{}

// Ingest triggers backend ingestion
type Ingest struct {
	Request types.IngestRequest
}

func (LoadArticles) isEffect()   {}
func (LoadCategories) isEffect() {}
func (LoadSources) isEffect()    {}
func (ScrollToTop) isEffect()    {}
func (Ingest) isEffect()         {}
