package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"inandout-portal/internal/cache"
	"inandout-portal/internal/cleanup"
	"inandout-portal/internal/config"
	"inandout-portal/internal/database"
	"inandout-portal/internal/docstore"
	"inandout-portal/internal/handlers"
	"inandout-portal/internal/ratelimit"
	"inandout-portal/internal/scheduler"
	"inandout-portal/internal/search"
	"inandout-portal/internal/textsearch"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	appConfig    *config.Config
	store        *database.Store
	docStore     *docstore.Store
	searchClient *textsearch.Client
	searchCache  *cache.SearchCache
	rateLimiter  *ratelimit.RateLimiter
	appScheduler *scheduler.Scheduler
)

func main() {
	// .env is optional; container deployments set real env vars
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config/portal.yaml")
	var err error
	appConfig, err = config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	// Initialize relational database
	dbCfg := appConfig.Database
	if dbCfg.Type == "" {
		dbCfg.Type = getEnv("DB_TYPE", "postgres")
	}
	log.Printf("Using %s database", dbCfg.Type)

	store, err = database.New(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Select the filtered-search backend
	var searchBackend search.Backend = store
	backendName := getEnvOrConfig(appConfig.Search.Backend, "SEARCH_BACKEND", "relational")
	if backendName == "firestore" {
		fsCfg := appConfig.Firestore
		if fsCfg.ProjectID == "" {
			fsCfg.ProjectID = getEnv("FIRESTORE_PROJECT_ID", "")
		}
		docStore, err = docstore.New(context.Background(), fsCfg)
		if err != nil {
			log.Fatalf("Failed to connect to Firestore: %v", err)
		}
		defer docStore.Close()
		searchBackend = docStore
		log.Printf("Filtered search backed by Firestore collection %q", fsCfg.Collection)
	} else {
		log.Println("Filtered search backed by relational database")
	}

	// Initialize Meilisearch for free-text search
	meilisearchHost := getEnvOrConfig(appConfig.Meilisearch.Host, "MEILISEARCH_HOST", "")
	if meilisearchHost != "" {
		meilisearchKey := getEnvOrConfig(appConfig.Meilisearch.APIKey, "MEILISEARCH_KEY", "")
		searchClient = textsearch.NewClient(meilisearchHost, meilisearchKey)
		if err := searchClient.InitIndex(); err != nil {
			log.Printf("Warning: Failed to initialize search index: %v", err)
		}
	} else {
		log.Println("Meilisearch not configured, free-text search falls back to database")
	}

	// Initialize Redis search-result cache
	redisAddr := getEnvOrConfig(appConfig.Redis.Addr, "REDIS_ADDR", "")
	if redisAddr != "" {
		searchCache = cache.New(redisAddr, appConfig.Redis.Password, appConfig.Redis.CacheTTL())
		log.Printf("Search cache enabled (redis %s, ttl %s)", redisAddr, appConfig.Redis.CacheTTL())
	} else {
		log.Println("Redis not configured, search cache disabled")
	}

	// Initialize rate limiter
	rateLimiter = ratelimit.NewRateLimiter(
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)
	log.Printf("Rate limiter initialized: %d req/min, %d req/hour (enabled: %v)",
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.Enabled,
	)

	// Initialize and start the expiry sweep scheduler
	appScheduler = scheduler.New(store, searchClient, appConfig)
	if err := appScheduler.Start(); err != nil {
		log.Printf("Warning: Failed to start scheduler: %v", err)
	}
	defer appScheduler.Stop()

	cleanupService := cleanup.NewService(store.DB())

	// Handlers
	demoFallback := backendName == "firestore" && appConfig.Firestore.DemoFallback
	searchHandler := handlers.NewSearchHandler(searchBackend, searchCache, demoFallback)
	propertyHandler := handlers.NewPropertyHandler(store, docStore, searchClient)
	textSearchHandler := handlers.NewTextSearchHandler(store, searchClient)
	adminHandler := handlers.NewAdminHandler(store, appScheduler, cleanupService, appConfig.Cleanup)

	// Setup Gin router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	// Routes
	r.GET("/health", healthCheck)

	r.POST("/api/properties/search", rateLimitMiddleware(), searchHandler.Search)
	r.GET("/api/filter", rateLimitMiddleware(), searchHandler.Filter)

	r.POST("/api/properties", propertyHandler.Create)
	r.GET("/api/properties/:id", propertyHandler.Get)
	r.PUT("/api/properties/:id", propertyHandler.Update)
	r.DELETE("/api/properties/:id", propertyHandler.Delete)
	r.GET("/api/properties/:id/similar", propertyHandler.Similar)
	r.GET("/api/owners/:id/properties", propertyHandler.ByOwner)

	r.GET("/api/search", rateLimitMiddleware(), textSearchHandler.Search)
	r.POST("/api/search/reindex", textSearchHandler.Reindex)

	r.GET("/api/ratelimit/stats", getRateLimitStats)

	// Admin API routes (requires authentication in production)
	admin := r.Group("/api/admin")
	{
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/area-stats", adminHandler.Areas)
		admin.GET("/price-distribution", adminHandler.PriceDistribution)

		admin.POST("/expiry-sweep/run", adminHandler.TriggerExpirySweep)

		admin.POST("/cleanup/run", adminHandler.RunCleanup)
		admin.GET("/cleanup/logs", adminHandler.DeleteLogs)
	}
	log.Println("Admin API routes registered at /api/admin/*")

	port := getEnvOrConfig(appConfig.Server.Port, "PORT", "8080")
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

// rateLimitMiddleware returns a Gin middleware that enforces rate limiting
func rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rateLimiter.AllowRequest() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many requests. Please try again later.",
				"stats":   rateLimiter.Stats(),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// getRateLimitStats returns current rate limiter statistics
func getRateLimitStats(c *gin.Context) {
	c.JSON(http.StatusOK, rateLimiter.Stats())
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrConfig returns config value if set, otherwise falls back to environment variable, then default
func getEnvOrConfig(configValue, envKey, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, defaultValue)
}
