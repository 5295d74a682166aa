package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inandout-portal/internal/models"
	"inandout-portal/internal/search"
)

// ErrNotFound is returned when a property does not exist.
var ErrNotFound = errors.New("property not found")

// CreateProperty inserts a new listing, generating an ID when absent.
func (s *Store) CreateProperty(p *models.Property) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return s.db.Create(p).Error
}

// GetPropertyByID retrieves a property by ID
func (s *Store) GetPropertyByID(id string) (*models.Property, error) {
	var property models.Property
	err := s.db.Where("id = ?", id).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// UpdateProperty saves changes to an existing listing, preserving the
// original owner and creation timestamp.
func (s *Store) UpdateProperty(p *models.Property) error {
	existing, err := s.GetPropertyByID(p.ID)
	if err != nil {
		return err
	}
	p.OwnerID = existing.OwnerID
	p.CreatedAt = existing.CreatedAt
	return s.db.Save(p).Error
}

// DeactivateProperty marks a listing inactive (logical deletion).
func (s *Store) DeactivateProperty(id string) error {
	res := s.db.Model(&models.Property{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateProperties marks multiple listings inactive.
func (s *Store) DeactivateProperties(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.Model(&models.Property{}).
		Where("id IN ?", ids).
		Update("is_active", false).Error
}

// GetPropertiesByOwner retrieves all listings of one owner, newest first.
func (s *Store) GetPropertiesByOwner(ownerID string) ([]models.Property, error) {
	var properties []models.Property
	err := s.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&properties).Error
	return properties, err
}

// GetActiveProperties retrieves all active listings, newest first.
func (s *Store) GetActiveProperties() ([]models.Property, error) {
	var properties []models.Property
	err := s.db.Where("is_active = ?", true).Order("created_at DESC").Find(&properties).Error
	return properties, err
}

// SearchProperties translates the canonical filter into an AND-combined
// predicate list. Every constraint except the geo radius is pushed into the
// query; geo membership has no native index here and is left to the
// post-filter pass.
func (s *Store) SearchProperties(ctx context.Context, f search.Filter) ([]models.Property, error) {
	tx := s.db.WithContext(ctx).Model(&models.Property{}).
		Where("is_active = ?", f.IsActive)

	if f.Country != "" {
		tx = tx.Where("country = ?", f.Country)
	}
	if f.City != "" {
		tx = tx.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(f.City)+"%")
	}
	if f.PropertyType != "" {
		tx = tx.Where("property_type = ?", f.PropertyType)
	}

	switch {
	case f.MinPrice != nil && f.MaxPrice != nil:
		tx = tx.Where("price BETWEEN ? AND ?", *f.MinPrice, *f.MaxPrice)
	case f.MinPrice != nil:
		tx = tx.Where("price >= ?", *f.MinPrice)
	case f.MaxPrice != nil:
		tx = tx.Where("price <= ?", *f.MaxPrice)
	}

	if f.IsFurnished != nil {
		tx = tx.Where("is_furnished = ?", *f.IsFurnished)
	}
	if f.AllowsPets != nil {
		tx = tx.Where("allows_pets = ?", *f.AllowsPets)
	}
	if f.InternetIncluded != nil {
		tx = tx.Where("internet_included = ?", *f.InternetIncluded)
	}

	var properties []models.Property
	err := tx.Order(orderClause(f.Sort)).Limit(f.Limit).Find(&properties).Error
	return properties, err
}

// orderClause maps the sort option to an ORDER BY clause. Relevance has no
// meaning in SQL and falls back to cheapest-first.
func orderClause(sort search.SortOrder) string {
	switch sort {
	case search.SortPriceDesc:
		return "price DESC"
	case search.SortDateDesc:
		return "created_at DESC"
	default:
		return "price ASC"
	}
}

// SimilarProperties returns active listings resembling the given one: same
// city and type, price within ±30%, excluding the listing itself.
func (s *Store) SimilarProperties(p *models.Property, limit int) ([]models.Property, error) {
	if limit <= 0 {
		limit = 6
	}
	minPrice := int(float64(p.Price) * 0.7)
	maxPrice := int(float64(p.Price) * 1.3)

	var properties []models.Property
	err := s.db.
		Where("is_active = ?", true).
		Where("id <> ?", p.ID).
		Where("LOWER(city) = ?", strings.ToLower(p.City)).
		Where("property_type = ?", p.PropertyType).
		Where("price BETWEEN ? AND ?", minPrice, maxPrice).
		Order("price ASC").
		Limit(limit).
		Find(&properties).Error
	return properties, err
}

// ExpiredActiveProperties returns active listings whose expiry date has
// passed, for the daily sweep.
func (s *Store) ExpiredActiveProperties(now time.Time) ([]models.Property, error) {
	var properties []models.Property
	err := s.db.
		Where("is_active = ?", true).
		Where("expires_at IS NOT NULL AND expires_at < ?", now).
		Find(&properties).Error
	return properties, err
}
