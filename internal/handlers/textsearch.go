package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inandout-portal/internal/database"
	"inandout-portal/internal/models"
	"inandout-portal/internal/textsearch"
)

// TextSearchHandler serves free-text listing search backed by Meilisearch.
type TextSearchHandler struct {
	store  *database.Store
	search *textsearch.Client
}

func NewTextSearchHandler(store *database.Store, searchClient *textsearch.Client) *TextSearchHandler {
	return &TextSearchHandler{store: store, search: searchClient}
}

// Search handles GET /api/search?q=... with optional attribute filters
// (city, propertyType, minPrice, maxPrice). Without a query or filters it
// falls back to the database so the endpoint stays usable without an index.
func (h *TextSearchHandler) Search(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 50
	}

	params := textsearch.FilterParams{
		Query:        c.Query("q"),
		Limit:        limit,
		City:         c.Query("city"),
		PropertyType: c.Query("propertyType"),
	}
	if v, err := strconv.Atoi(c.Query("minPrice")); err == nil {
		params.MinPrice = &v
	}
	if v, err := strconv.Atoi(c.Query("maxPrice")); err == nil {
		params.MaxPrice = &v
	}

	unfiltered := params.Query == "" && params.City == "" && params.PropertyType == "" &&
		params.MinPrice == nil && params.MaxPrice == nil
	if unfiltered || h.search == nil {
		properties, err := h.store.GetActiveProperties()
		if err != nil {
			log.Printf("[Search API] active listing query failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
			return
		}
		if int64(len(properties)) > limit {
			properties = properties[:limit]
		}
		c.JSON(http.StatusOK, gin.H{"query": params.Query, "results": properties})
		return
	}

	properties, err := h.search.FilterSearch(params)
	if err != nil {
		log.Printf("[Search API] text search failed for %q: %v", params.Query, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	if properties == nil {
		properties = []models.Property{}
	}
	c.JSON(http.StatusOK, gin.H{"query": params.Query, "results": properties})
}

// Reindex handles POST /api/search/reindex: pushes all active listings
// into the Meilisearch index.
func (h *TextSearchHandler) Reindex(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "text search not configured"})
		return
	}

	properties, err := h.store.GetActiveProperties()
	if err != nil {
		log.Printf("[Search API] reindex fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reindex failed"})
		return
	}

	if err := h.search.IndexProperties(properties); err != nil {
		log.Printf("[Search API] reindex failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reindex failed"})
		return
	}

	log.Printf("[Search API] reindexed %d listings", len(properties))
	c.JSON(http.StatusOK, gin.H{"indexed": len(properties)})
}
