package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"inandout-portal/internal/config"
	"inandout-portal/internal/database"
	"inandout-portal/internal/textsearch"
)

// Scheduler runs the daily expiry sweep: active listings whose expires_at
// has passed are deactivated and dropped from the text index.
type Scheduler struct {
	cron      *cron.Cron
	store     *database.Store
	search    *textsearch.Client
	config    *config.Config
	isRunning bool
}

// New creates a scheduler. The text-search client may be nil; the sweep
// then only touches the database.
func New(store *database.Store, searchClient *textsearch.Client, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		store:  store,
		search: searchClient,
		config: cfg,
	}
}

// Start registers and starts the daily job.
func (s *Scheduler) Start() error {
	if !s.config.Scheduler.ExpirySweepEnabled {
		log.Println("Scheduler: Expiry sweep is disabled in configuration")
		return nil
	}

	cronSpec := s.parseDailyRunTime(s.config.Scheduler.DailyRunTime)

	_, err := s.cron.AddFunc(cronSpec, func() {
		log.Println("Scheduler: Starting expiry sweep...")
		if err := s.runExpirySweep(); err != nil {
			log.Printf("Scheduler: Expiry sweep failed: %v", err)
		} else {
			log.Println("Scheduler: Expiry sweep completed successfully")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Scheduler: Started with daily run at %s (cron: %s)", s.config.Scheduler.DailyRunTime, cronSpec)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

// runExpirySweep deactivates expired listings and removes them from the
// text index.
func (s *Scheduler) runExpirySweep() error {
	expired, err := s.store.ExpiredActiveProperties(time.Now())
	if err != nil {
		return fmt.Errorf("failed to load expired listings: %w", err)
	}
	if len(expired) == 0 {
		log.Println("Scheduler: No expired listings found")
		return nil
	}

	ids := make([]string, len(expired))
	for i, p := range expired {
		ids[i] = p.ID
	}

	if err := s.store.DeactivateProperties(ids); err != nil {
		return fmt.Errorf("failed to deactivate expired listings: %w", err)
	}
	log.Printf("Scheduler: Deactivated %d expired listings", len(ids))

	if s.search != nil {
		if err := s.search.RemoveProperties(ids); err != nil {
			log.Printf("Scheduler: Warning: failed to remove expired listings from search index: %v", err)
		}
	}

	return nil
}

// RunNow immediately executes the expiry sweep (for manual trigger)
func (s *Scheduler) RunNow() error {
	log.Println("Scheduler: Manual trigger - starting expiry sweep...")
	return s.runExpirySweep()
}

// parseDailyRunTime converts HH:MM format to cron specification
// Example: "03:00" -> "0 3 * * *" (run at 3:00 AM every day)
func (s *Scheduler) parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	log.Printf("Scheduler: Failed to parse time '%s', using default 03:00", timeStr)
	return "0 3 * * *"
}
