package cleanup

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"inandout-portal/internal/models"
)

// Service handles physical deletion of listings that have been inactive
// longer than the retention period. Soft delete keeps deactivated listings
// queryable for owners; this reclaims the ones nobody will reactivate.
type Service struct {
	db *gorm.DB
}

// NewService creates a new cleanup service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Config holds configuration for cleanup operations
type Config struct {
	RetentionDays    int  // Days to keep deactivated listings before physical deletion
	MaxDeletionCount int  // Maximum number of listings to delete in one run (safety limit)
	DryRun           bool // If true, only log what would be deleted
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		RetentionDays:    90,
		MaxDeletionCount: 10000,
		DryRun:           false,
	}
}

// Result holds the result of a cleanup operation
type Result struct {
	TargetCount  int       `json:"target_count"`
	DeletedCount int       `json:"deleted_count"`
	ErrorCount   int       `json:"error_count"`
	DryRun       bool      `json:"dry_run"`
	ExecutedAt   time.Time `json:"executed_at"`
	DeletedIDs   []string  `json:"deleted_ids"`
	Errors       []string  `json:"errors,omitempty"`
}

// FindStaleListings finds listings eligible for physical deletion:
// inactive, and not updated for longer than retentionDays.
func (s *Service) FindStaleListings(retentionDays int) ([]models.Property, error) {
	var properties []models.Property

	cutoffDate := time.Now().AddDate(0, 0, -retentionDays)

	err := s.db.Where("is_active = ? AND updated_at < ?", false, cutoffDate).
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stale listings: %w", err)
	}

	log.Printf("Found %d inactive listings untouched since %s", len(properties), cutoffDate.Format("2006-01-02"))
	return properties, nil
}

// Run performs physical deletion of stale listings, logging each one.
func (s *Service) Run(config Config) (*Result, error) {
	result := &Result{
		DryRun:     config.DryRun,
		ExecutedAt: time.Now(),
	}

	stale, err := s.FindStaleListings(config.RetentionDays)
	if err != nil {
		return nil, err
	}

	result.TargetCount = len(stale)
	if result.TargetCount == 0 {
		log.Println("No stale listings found for deletion")
		return result, nil
	}

	// Safety check: abort if too many listings would be deleted
	if result.TargetCount > config.MaxDeletionCount {
		return nil, fmt.Errorf("safety check failed: %d listings exceed max deletion limit of %d",
			result.TargetCount, config.MaxDeletionCount)
	}

	log.Printf("Starting cleanup: %d listings to delete (retention: %d days, dry-run: %v)",
		result.TargetCount, config.RetentionDays, config.DryRun)

	for _, prop := range stale {
		if config.DryRun {
			log.Printf("[DRY-RUN] Would delete listing %s (%s, %s)", prop.ID, prop.Title, prop.City)
			result.DeletedIDs = append(result.DeletedIDs, prop.ID)
			result.DeletedCount++
			continue
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			deleteLog := models.DeleteLog{
				PropertyID: prop.ID,
				Title:      prop.Title,
				City:       prop.City,
				Reason:     models.DeleteReasonRetention,
			}
			if err := tx.Create(&deleteLog).Error; err != nil {
				return err
			}
			return tx.Delete(&prop).Error
		})
		if err != nil {
			errMsg := fmt.Sprintf("failed to delete listing %s: %v", prop.ID, err)
			log.Printf("ERROR: %s", errMsg)
			result.Errors = append(result.Errors, errMsg)
			result.ErrorCount++
			continue
		}

		result.DeletedIDs = append(result.DeletedIDs, prop.ID)
		result.DeletedCount++
	}

	log.Printf("Cleanup completed: %d/%d deleted, %d errors (dry-run: %v)",
		result.DeletedCount, result.TargetCount, result.ErrorCount, config.DryRun)

	return result, nil
}

// RecentDeleteLogs returns recent delete log entries
func (s *Service) RecentDeleteLogs(limit int) ([]models.DeleteLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []models.DeleteLog
	err := s.db.Order("deleted_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
