package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inandout-portal/internal/database"
	"inandout-portal/internal/docstore"
	"inandout-portal/internal/models"
	"inandout-portal/internal/textsearch"
)

// PropertyHandler serves owner CRUD over listings. Deletion is logical:
// listings are deactivated and drop out of default search. Writes are
// mirrored into the document store and the text index when configured, so
// every search backend sees the same inventory.
type PropertyHandler struct {
	store  *database.Store
	docs   *docstore.Store
	search *textsearch.Client
}

// NewPropertyHandler creates a property handler. The document store and the
// text-search client may each be nil when not configured.
func NewPropertyHandler(store *database.Store, docs *docstore.Store, searchClient *textsearch.Client) *PropertyHandler {
	return &PropertyHandler{store: store, docs: docs, search: searchClient}
}

type propertyRequest struct {
	OwnerID          string              `json:"ownerId" binding:"required"`
	Title            string              `json:"title" binding:"required"`
	Description      string              `json:"description"`
	PropertyType     models.PropertyType `json:"propertyType" binding:"required"`
	Price            int                 `json:"price" binding:"required"`
	Country          string              `json:"country"`
	City             string              `json:"city" binding:"required"`
	Zone             string              `json:"zone"`
	Address          string              `json:"address"`
	Latitude         *float64            `json:"latitude"`
	Longitude        *float64            `json:"longitude"`
	SquareMeters     *int                `json:"squareMeters"`
	Bedrooms         int                 `json:"bedrooms"`
	Bathrooms        int                 `json:"bathrooms"`
	Features         []string            `json:"features"`
	IsFurnished      bool                `json:"isFurnished"`
	AllowsPets       bool                `json:"allowsPets"`
	InternetIncluded bool                `json:"internetIncluded"`
}

func (r *propertyRequest) toModel() models.Property {
	country := r.Country
	if country == "" {
		country = "IT"
	}
	features := r.Features
	if features == nil {
		features = []string{}
	}
	return models.Property{
		OwnerID:          r.OwnerID,
		Title:            r.Title,
		Description:      r.Description,
		PropertyType:     r.PropertyType,
		Price:            r.Price,
		Country:          country,
		City:             r.City,
		Zone:             r.Zone,
		Address:          r.Address,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		SquareMeters:     r.SquareMeters,
		Bedrooms:         r.Bedrooms,
		Bathrooms:        r.Bathrooms,
		Features:         features,
		IsFurnished:      r.IsFurnished,
		AllowsPets:       r.AllowsPets,
		InternetIncluded: r.InternetIncluded,
		IsActive:         true,
	}
}

// Create handles POST /api/properties.
func (h *PropertyHandler) Create(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.PropertyType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown property type", "field": "propertyType"})
		return
	}
	if req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "must be non-negative", "field": "price"})
		return
	}

	property := req.toModel()
	if err := h.store.CreateProperty(&property); err != nil {
		log.Printf("[Properties] create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create property"})
		return
	}

	h.index(c, &property)
	c.JSON(http.StatusCreated, property)
}

// Get handles GET /api/properties/:id.
func (h *PropertyHandler) Get(c *gin.Context) {
	property, err := h.store.GetPropertyByID(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch property"})
		return
	}
	c.JSON(http.StatusOK, property)
}

// Update handles PUT /api/properties/:id.
func (h *PropertyHandler) Update(c *gin.Context) {
	existing, err := h.store.GetPropertyByID(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch property"})
		return
	}

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.PropertyType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown property type", "field": "propertyType"})
		return
	}

	property := req.toModel()
	property.ID = existing.ID
	property.IsActive = existing.IsActive
	if err := h.store.UpdateProperty(&property); err != nil {
		log.Printf("[Properties] update failed for %s: %v", property.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update property"})
		return
	}

	h.index(c, &property)
	c.JSON(http.StatusOK, property)
}

// Delete handles DELETE /api/properties/:id (soft delete).
func (h *PropertyHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	err := h.store.DeactivateProperty(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if err != nil {
		log.Printf("[Properties] deactivate failed for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete property"})
		return
	}

	if h.search != nil {
		if err := h.search.RemoveProperties([]string{id}); err != nil {
			log.Printf("[Properties] Warning: failed to remove %s from search index: %v", id, err)
		}
	}
	if h.docs != nil {
		if err := h.docs.RemoveProperty(c.Request.Context(), id); err != nil {
			log.Printf("[Properties] Warning: failed to remove %s from document store: %v", id, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "property deactivated"})
}

// ByOwner handles GET /api/owners/:id/properties, including deactivated
// listings so owners see their full inventory.
func (h *PropertyHandler) ByOwner(c *gin.Context) {
	properties, err := h.store.GetPropertiesByOwner(c.Param("id"))
	if err != nil {
		log.Printf("[Properties] owner query failed for %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch properties"})
		return
	}
	if properties == nil {
		properties = []models.Property{}
	}
	c.JSON(http.StatusOK, properties)
}

// Similar handles GET /api/properties/:id/similar.
func (h *PropertyHandler) Similar(c *gin.Context) {
	property, err := h.store.GetPropertyByID(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch property"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	similar, err := h.store.SimilarProperties(property, limit)
	if err != nil {
		log.Printf("[Properties] similar query failed for %s: %v", property.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch similar properties"})
		return
	}

	if similar == nil {
		similar = []models.Property{}
	}
	c.JSON(http.StatusOK, similar)
}

func (h *PropertyHandler) index(c *gin.Context, p *models.Property) {
	if h.search != nil {
		if err := h.search.IndexProperty(p); err != nil {
			log.Printf("[Properties] Warning: failed to index %s: %v", p.ID, err)
		}
	}
	if h.docs != nil {
		if err := h.docs.IndexProperty(c.Request.Context(), p); err != nil {
			log.Printf("[Properties] Warning: failed to write %s to document store: %v", p.ID, err)
		}
	}
}
