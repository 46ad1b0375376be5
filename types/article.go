package types

import "time"

// Article represents a single news article as returned by the news API
type Article struct {
	ID           int64      `json:"id"`
	SourceName   string     `json:"source_name"`
	CategoryName *string    `json:"category_name"`
	Author       string     `json:"author"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	URL          string     `json:"url"`
	URLToImage   string     `json:"url_to_image"`
	PublishedAt  time.Time  `json:"published_at"`
	Content      string     `json:"content,omitempty"`
	Country      string     `json:"country"`
	SourceDetail *Source    `json:"source_detail,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// Category returns the category name or an empty string for uncategorised articles
func (a Article) Category() string {
	if a.CategoryName == nil {
		return ""
	}
	return *a.CategoryName
}

// Category is a topic bucket; Slug is what the articles endpoint filters on
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ArticleCount int    `json:"article_count"`
}

// Source is a publisher. SourceID is the external identifier used as the source filter.
type Source struct {
	ID           int64  `json:"id"`
	SourceID     string `json:"source_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	Country      string `json:"country"`
	Language     string `json:"language"`
	ArticleCount int    `json:"article_count"`
}

// StringPtr returns a pointer to s, or nil when s is empty
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
