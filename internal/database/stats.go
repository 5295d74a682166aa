package database

import (
	"time"

	"inandout-portal/internal/models"
)

// PropertyCounts holds listing counts by state.
type PropertyCounts struct {
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Total    int64 `json:"total"`
}

// CountProperties returns listing counts by active state.
func (s *Store) CountProperties() (PropertyCounts, error) {
	var counts PropertyCounts
	if err := s.db.Model(&models.Property{}).Where("is_active = ?", true).Count(&counts.Active).Error; err != nil {
		return counts, err
	}
	if err := s.db.Model(&models.Property{}).Where("is_active = ?", false).Count(&counts.Inactive).Error; err != nil {
		return counts, err
	}
	counts.Total = counts.Active + counts.Inactive
	return counts, nil
}

// CountCreatedSince returns how many listings were created after t.
func (s *Store) CountCreatedSince(t time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.Property{}).Where("created_at >= ?", t).Count(&count).Error
	return count, err
}

// AreaStat aggregates active listings per city.
type AreaStat struct {
	City     string  `json:"city"`
	Count    int64   `json:"count"`
	AvgPrice float64 `json:"avg_price"`
	MinPrice int     `json:"min_price"`
	MaxPrice int     `json:"max_price"`
}

// AreaStats returns per-city aggregates over active listings, largest
// market first.
func (s *Store) AreaStats(limit int) ([]AreaStat, error) {
	if limit <= 0 {
		limit = 20
	}
	var stats []AreaStat
	err := s.db.Model(&models.Property{}).
		Select("city, count(*) as count, avg(price) as avg_price, min(price) as min_price, max(price) as max_price").
		Where("is_active = ?", true).
		Group("city").
		Order("count DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

// PriceBucket is one bar of the price histogram.
type PriceBucket struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"` // 0 means unbounded
	Count int64  `json:"count"`
}

// PriceDistribution buckets active listings into fixed monthly-rent ranges
// (euro cents).
func (s *Store) PriceDistribution() ([]PriceBucket, error) {
	buckets := []PriceBucket{
		{Label: "0-300", Min: 0, Max: 30000},
		{Label: "300-500", Min: 30000, Max: 50000},
		{Label: "500-800", Min: 50000, Max: 80000},
		{Label: "800-1200", Min: 80000, Max: 120000},
		{Label: "1200+", Min: 120000, Max: 0},
	}

	for i := range buckets {
		tx := s.db.Model(&models.Property{}).
			Where("is_active = ?", true).
			Where("price >= ?", buckets[i].Min)
		if buckets[i].Max > 0 {
			tx = tx.Where("price < ?", buckets[i].Max)
		}
		if err := tx.Count(&buckets[i].Count).Error; err != nil {
			return nil, err
		}
	}
	return buckets, nil
}
