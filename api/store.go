package api

import (
	"sort"
	"strings"
	"sync"
	"time"

	"newsdash/observability/metrics"
	"newsdash/rssfeeds"
	"newsdash/types"
)

// ArticleFilter selects articles; empty fields match everything
type ArticleFilter struct {
	Category string // category slug
	Source   string // source_id
	Country  string // case-insensitive
	Search   string // case-insensitive on title and description
}

type storedArticle struct {
	article      types.Article
	categorySlug string
	sourceID     string
}

// Store is an in-memory article database keyed by normalized URL
type Store struct {
	mu         sync.RWMutex
	nextID     int64
	articles   map[int64]*storedArticle
	byKey      map[string]int64 // dedupKey -> ID
	categories map[string]*types.Category
	sources    map[string]*types.Source
	now        func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		articles:   make(map[int64]*storedArticle),
		byKey:      make(map[string]int64),
		categories: make(map[string]*types.Category),
		sources:    make(map[string]*types.Source),
		now:        time.Now,
	}
}

// Upsert stores a unless an article with the same normalized URL exists.
// It returns the article's ID and whether it was created.
// Articles without a URL are ignored.
func (s *Store) Upsert(a types.Article) (int64, bool) {
	key := dedupKey(a.URL)
	if key == "" {
		return 0, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byKey[key]; ok {
		return id, false
	}

	s.nextID++
	a.ID = s.nextID
	created := s.now().UTC()
	a.CreatedAt = &created

	stored := &storedArticle{article: a}

	if name := a.Category(); name != "" {
		slug := rssfeeds.Slugify(name)
		c, ok := s.categories[slug]
		if !ok {
			c = &types.Category{ID: int64(len(s.categories) + 1), Name: rssfeeds.TitleCase(name), Slug: slug}
			s.categories[slug] = c
		}
		stored.categorySlug = slug
		stored.article.CategoryName = types.StringPtr(c.Name)
	}

	if src := sourceOf(a); src.SourceID != "" {
		existing, ok := s.sources[src.SourceID]
		if !ok {
			src.ID = int64(len(s.sources) + 1)
			src.ArticleCount = 0
			existing = &src
			s.sources[src.SourceID] = existing
		}
		stored.sourceID = existing.SourceID
		stored.article.SourceDetail = nil
		if stored.article.SourceName == "" {
			stored.article.SourceName = existing.Name
		}
	}

	s.articles[a.ID] = stored
	s.byKey[key] = a.ID
	metrics.StoredArticles.Set(float64(len(s.articles)))

	return a.ID, true
}

// Seed stores articles and returns how many were new
func (s *Store) Seed(articles []types.Article) int {
	created := 0
	for _, a := range articles {
		if _, ok := s.Upsert(a); ok {
			created++
		}
	}
	return created
}

// List returns the articles matching f, newest first
func (s *Store) List(f ArticleFilter) []types.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Article, 0, len(s.articles))
	for _, st := range s.articles {
		if !st.matches(f) {
			continue
		}
		a := st.article
		a.Content = ""
		a.CreatedAt = nil
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Get returns the full article with its source detail
func (s *Store) Get(id int64) (types.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.articles[id]
	if !ok {
		return types.Article{}, false
	}
	a := st.article
	if src, ok := s.sources[st.sourceID]; ok {
		detail := *src
		detail.ArticleCount = s.countLocked(func(o *storedArticle) bool { return o.sourceID == src.SourceID })
		a.SourceDetail = &detail
	}
	return a, true
}

// Categories returns all categories ordered by name with their article counts
func (s *Store) Categories() []types.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cat := *c
		cat.ArticleCount = s.countLocked(func(o *storedArticle) bool { return o.categorySlug == c.Slug })
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Sources returns all sources ordered by name with their article counts
func (s *Store) Sources() []types.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Source, 0, len(s.sources))
	for _, src := range s.sources {
		cp := *src
		cp.ArticleCount = s.countLocked(func(o *storedArticle) bool { return o.sourceID == src.SourceID })
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].SourceID < out[j].SourceID
	})
	return out
}

// Len returns the number of stored articles
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

func (s *Store) countLocked(match func(*storedArticle) bool) int {
	n := 0
	for _, st := range s.articles {
		if match(st) {
			n++
		}
	}
	return n
}

func (st *storedArticle) matches(f ArticleFilter) bool {
	if f.Category != "" && st.categorySlug != f.Category {
		return false
	}
	if f.Source != "" && st.sourceID != f.Source {
		return false
	}
	if f.Country != "" && !strings.EqualFold(st.article.Country, f.Country) {
		return false
	}
	return rssfeeds.MatchesQuery(st.article.Title, st.article.Description, f.Search)
}

// sourceOf derives the source record of an article from its detail or its source name
func sourceOf(a types.Article) types.Source {
	if a.SourceDetail != nil && a.SourceDetail.SourceID != "" {
		return *a.SourceDetail
	}
	if a.SourceName == "" {
		return types.Source{}
	}
	return types.Source{
		SourceID: rssfeeds.Slugify(a.SourceName),
		Name:     a.SourceName,
		Country:  a.Country,
	}
}
