package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"newsdash/dashboard"
	"newsdash/types"
)

// RegisterArticleRoutes registers article-related routes.
func RegisterArticleRoutes(g *gin.RouterGroup, store *Store, pageSize int) {
	g.GET("/articles/", handleListArticles(store, pageSize))
	g.GET("/articles/:id/", handleGetArticle(store))
}

// handleListArticles returns one page of articles, newest first.
// Filters: category (slug), source (source_id), country, search.
func handleListArticles(store *Store, pageSize int) gin.HandlerFunc {
	return func(c *gin.Context) {
		matches := store.List(ArticleFilter{
			Category: c.Query("category"),
			Source:   c.Query("source"),
			Country:  c.Query("country"),
			Search:   c.Query("search"),
		})

		totalPages := dashboard.TotalPages(len(matches), pageSize)

		page := 1
		if raw := c.Query("page"); raw != "" {
			p, err := strconv.Atoi(raw)
			if err != nil || p < 1 {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Invalid page."})
				return
			}
			page = p
		}
		// an empty listing still has a first page
		if page > max(totalPages, 1) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Invalid page."})
			return
		}

		start := (page - 1) * pageSize
		end := min(start+pageSize, len(matches))

		resp := types.Page[types.Article]{
			Count:   len(matches),
			Results: matches[start:end],
		}
		if page < totalPages {
			resp.Next = pageLink(c, page+1)
		}
		if page > 1 {
			resp.Previous = pageLink(c, page-1)
		}

		c.JSON(http.StatusOK, resp)
	}
}

func handleGetArticle(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		article, ok := store.Get(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		c.JSON(http.StatusOK, article)
	}
}

// pageLink returns the absolute URL of the current listing at page.
// The first page is linked without a page parameter.
func pageLink(c *gin.Context, page int) *string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	q := c.Request.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: q.Encode(),
	}
	link := u.String()
	return &link
}
