package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers the category and source lists.
func RegisterCatalogRoutes(g *gin.RouterGroup, store *Store) {
	g.GET("/categories/", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Categories())
	})
	g.GET("/sources/", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Sources())
	})
}
