package dashboard

import (
	"newsdash/config"
	"newsdash/types"
)

// Reduce applies a to s and returns the new state with the effects to run.
// It is pure; s is not modified.
func Reduce(s State, a Action) (State, []Effect) {
	switch a := a.(type) {
	case Init:
		var load Effect
		s, load = reload(s)
		return s, []Effect{LoadCategories{}, LoadSources{}, load}

	case SetSearchText:
		s.SearchText = a.Text
		return s, nil

	case Search:
		s.CurrentPage = 1
		return reloadOnly(s)

	case SetCategory:
		s.SelectedCategory = a.Slug
		s.CurrentPage = 1
		return reloadOnly(s)

	case SetSource:
		s.SelectedSource = a.SourceID
		s.CurrentPage = 1
		return reloadOnly(s)

	case ClearFilters:
		s.SearchText = ""
		s.SelectedCategory = ""
		s.SelectedSource = ""
		s.CurrentPage = 1
		return reloadOnly(s)

	case GotoPage:
		if a.Page < 1 || a.Page > s.TotalPages {
			return s, nil
		}
		s.CurrentPage = a.Page
		var load Effect
		s, load = reload(s)
		return s, []Effect{load, ScrollToTop{}}

	case Refresh:
		return reloadOnly(s)

	case ArticlesLoaded:
		if a.Generation != s.Generation {
			return s, nil
		}
		s.Loading = false
		s.Error = ""
		s.Articles = a.Page.Results
		if s.Articles == nil {
			s.Articles = []types.Article{}
		}
		s.TotalCount = a.Page.Count
		s.TotalPages = TotalPages(a.Page.Count, s.PageSize)
		return s, nil

	case ArticlesFailed:
		if a.Generation != s.Generation {
			return s, nil
		}
		s.Loading = false
		s.Error = config.LoadErrorMessage
		return s, nil

	case CategoriesLoaded:
		if a.Err == nil && a.Items != nil {
			s.Categories = a.Items
		}
		return s, nil

	case SourcesLoaded:
		if a.Err == nil && a.Items != nil {
			s.Sources = a.Items
		}
		return s, nil

	case TriggerIngestion:
		if s.Ingesting {
			return s, nil
		}
		s.Ingesting = true
		s.IngestMessage = ""
		return s, []Effect{Ingest{Request: types.IngestRequest{
			Category: a.Category,
			Country:  a.Country,
			Query:    a.Query,
		}}}

	case IngestionDone:
		s.Ingesting = false
		s.IngestMessage = a.Message
		if a.Err != nil {
			if s.IngestMessage == "" {
				s.IngestMessage = config.IngestFailedMessage
			}
			return s, nil
		}
		// new articles may now match the current filters
		var load Effect
		s, load = reload(s)
		return s, []Effect{LoadCategories{}, LoadSources{}, load}
	}

	return s, nil
}

// reload starts a new article load generation for the current query
func reload(s State) (State, Effect) {
	s.Generation++
	s.Loading = true
	s.Error = ""
	return s, LoadArticles{Generation: s.Generation, Query: s.Query()}
}

func reloadOnly(s State) (State, []Effect) {
	var load Effect
	s, load = reload(s)
	return s, []Effect{load}
}
