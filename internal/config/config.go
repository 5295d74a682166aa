package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Firestore   FirestoreConfig   `yaml:"firestore"`
	Search      SearchConfig      `yaml:"search"`
	Meilisearch MeilisearchConfig `yaml:"meilisearch"`
	Redis       RedisConfig       `yaml:"redis"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Cleanup     CleanupConfig     `yaml:"cleanup"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// DatabaseConfig contains relational database settings
type DatabaseConfig struct {
	Type     string         `yaml:"type"` // "postgres" or "mysql"
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// MySQLConfig contains MySQL connection settings
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// FirestoreConfig contains document-store settings
type FirestoreConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
	Collection      string `yaml:"collection"`
	DemoFallback    bool   `yaml:"demo_fallback"`
}

// SearchConfig selects which backend serves filtered property search
type SearchConfig struct {
	Backend string `yaml:"backend"` // "relational" or "firestore"
}

// MeilisearchConfig contains full-text search engine settings
type MeilisearchConfig struct {
	Host   string `yaml:"host"`
	APIKey string `yaml:"api_key"`
}

// RedisConfig contains search-result cache settings
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// SchedulerConfig contains expiry sweep settings
type SchedulerConfig struct {
	ExpirySweepEnabled bool   `yaml:"expiry_sweep_enabled"`
	DailyRunTime       string `yaml:"daily_run_time"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
	RequestsPerHour   int  `yaml:"requests_per_hour"`
}

// CleanupConfig contains retention settings for deactivated listings
type CleanupConfig struct {
	RetentionDays    int `yaml:"retention_days"`
	MaxDeletionCount int `yaml:"max_deletion_count"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			CORSOrigins: []string{"http://localhost:5173"},
		},
		Database: DatabaseConfig{
			Type: "postgres",
		},
		Firestore: FirestoreConfig{
			Collection:   "listings",
			DemoFallback: true,
		},
		Search: SearchConfig{
			Backend: "relational",
		},
		Redis: RedisConfig{
			TTLSeconds: 600,
		},
		Scheduler: SchedulerConfig{
			ExpirySweepEnabled: true,
			DailyRunTime:       "03:00",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 120,
			RequestsPerHour:   3600,
		},
		Cleanup: CleanupConfig{
			RetentionDays:    90,
			MaxDeletionCount: 10000,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// CacheTTL returns the search-result cache TTL as a duration
func (c *RedisConfig) CacheTTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}
