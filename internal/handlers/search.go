package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inandout-portal/internal/cache"
	"inandout-portal/internal/models"
	"inandout-portal/internal/search"
)

// SearchHandler serves filtered property search over the configured
// backend: normalize, cache lookup, backend fetch, post-filter, respond.
type SearchHandler struct {
	backend      search.Backend
	cache        *cache.SearchCache
	demoFallback bool
}

// NewSearchHandler creates a search handler. demoFallback substitutes the
// sample dataset for empty result sets; it is enabled only in document-store
// mode, where a freshly configured project has no real listings yet.
func NewSearchHandler(backend search.Backend, searchCache *cache.SearchCache, demoFallback bool) *SearchHandler {
	return &SearchHandler{
		backend:      backend,
		cache:        searchCache,
		demoFallback: demoFallback,
	}
}

// Search handles POST /api/properties/search with a JSON filter body.
func (h *SearchHandler) Search(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	f, err := search.NormalizeFilter(raw)
	if err != nil {
		respondFilterError(c, err)
		return
	}

	h.run(c, f)
}

// Filter handles GET /api/filter with the same filter as query parameters.
func (h *SearchHandler) Filter(c *gin.Context) {
	f, err := search.NormalizeQuery(c.Request.URL.Query())
	if err != nil {
		respondFilterError(c, err)
		return
	}

	h.run(c, f)
}

func (h *SearchHandler) run(c *gin.Context, f search.Filter) {
	start := time.Now()
	key := cache.Key(f)

	if results, ok := h.cache.Get(c.Request.Context(), key); ok {
		log.Printf("[Search API] cache_hit=true duration_ms=%d results=%d",
			time.Since(start).Milliseconds(), len(results))
		c.JSON(http.StatusOK, h.withFallback(results, f))
		return
	}

	raw, err := h.backend.SearchProperties(c.Request.Context(), f)
	if err != nil {
		// Backend detail stays in the log; the client gets a generic
		// failure.
		log.Printf("[Search API] backend error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	// The reconciler always runs: whatever the backend could not push
	// down is enforced here.
	results := search.ApplyPostFilters(raw, f)
	h.cache.Set(c.Request.Context(), key, results)

	log.Printf("[Search API] cache_hit=false duration_ms=%d fetched=%d results=%d sort=%s limit=%d",
		time.Since(start).Milliseconds(), len(raw), len(results), f.Sort, f.Limit)

	c.JSON(http.StatusOK, h.withFallback(results, f))
}

// withFallback swaps an empty result set for the demo dataset when the
// fallback is enabled, re-filtered so the substitution still honors the
// request. Zero matches is otherwise a valid outcome, returned as an empty
// array rather than an error.
func (h *SearchHandler) withFallback(results []models.Property, f search.Filter) []models.Property {
	if len(results) == 0 && h.demoFallback {
		return search.ApplyPostFilters(search.DemoProperties(), f)
	}
	if results == nil {
		results = []models.Property{}
	}
	return results
}

// respondFilterError surfaces normalizer failures with field-level detail.
func respondFilterError(c *gin.Context, err error) {
	var vErr *search.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
