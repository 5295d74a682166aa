package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"inandout-portal/internal/cleanup"
	"inandout-portal/internal/config"
	"inandout-portal/internal/database"
	"inandout-portal/internal/scheduler"
)

// AdminHandler exposes operational endpoints: portal KPIs, the expiry
// sweep trigger, and the retention cleanup job.
type AdminHandler struct {
	store      *database.Store
	scheduler  *scheduler.Scheduler
	cleanup    *cleanup.Service
	cleanupCfg config.CleanupConfig
}

func NewAdminHandler(store *database.Store, sched *scheduler.Scheduler, cleanupSvc *cleanup.Service, cleanupCfg config.CleanupConfig) *AdminHandler {
	return &AdminHandler{store: store, scheduler: sched, cleanup: cleanupSvc, cleanupCfg: cleanupCfg}
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	counts, err := h.store.CountProperties()
	if err != nil {
		log.Printf("[Admin] stats query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	now := time.Now()
	createdLastDay, err := h.store.CountCreatedSince(now.Add(-24 * time.Hour))
	if err != nil {
		log.Printf("[Admin] stats query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	createdLastWeek, err := h.store.CountCreatedSince(now.AddDate(0, 0, -7))
	if err != nil {
		log.Printf("[Admin] stats query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":           counts.Total,
		"active":          counts.Active,
		"inactive":        counts.Inactive,
		"createdLastDay":  createdLastDay,
		"createdLastWeek": createdLastWeek,
	})
}

// Areas handles GET /api/admin/areas.
func (h *AdminHandler) Areas(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	stats, err := h.store.AreaStats(limit)
	if err != nil {
		log.Printf("[Admin] area stats query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute area stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// PriceDistribution handles GET /api/admin/prices.
func (h *AdminHandler) PriceDistribution(c *gin.Context) {
	buckets, err := h.store.PriceDistribution()
	if err != nil {
		log.Printf("[Admin] price distribution query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute price distribution"})
		return
	}
	c.JSON(http.StatusOK, buckets)
}

// TriggerExpirySweep handles POST /api/admin/expiry-sweep. The sweep runs
// in the background so the request returns immediately.
func (h *AdminHandler) TriggerExpirySweep(c *gin.Context) {
	if h.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not configured"})
		return
	}

	go func() {
		if err := h.scheduler.RunNow(); err != nil {
			log.Printf("[Admin] manual expiry sweep failed: %v", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"message": "expiry sweep started"})
}

// RunCleanup handles POST /api/admin/cleanup. Pass dryRun=true to preview
// without deleting.
func (h *AdminHandler) RunCleanup(c *gin.Context) {
	cfg := cleanup.Config{
		RetentionDays:    h.cleanupCfg.RetentionDays,
		MaxDeletionCount: h.cleanupCfg.MaxDeletionCount,
		DryRun:           c.Query("dryRun") == "true",
	}
	if days, err := strconv.Atoi(c.Query("retentionDays")); err == nil && days > 0 {
		cfg.RetentionDays = days
	}

	result, err := h.cleanup.Run(cfg)
	if err != nil {
		log.Printf("[Admin] cleanup run failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteLogs handles GET /api/admin/delete-logs.
func (h *AdminHandler) DeleteLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := h.cleanup.RecentDeleteLogs(limit)
	if err != nil {
		log.Printf("[Admin] delete log query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch delete logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}
