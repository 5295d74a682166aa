package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"inandout-portal/internal/models"
	"inandout-portal/internal/search"
)

// SearchCache memoizes reconciled search results in Redis, keyed by the
// canonical filter. A cache failure is never a search failure: every error
// degrades to a miss.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr, password string, ttl time.Duration) *SearchCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &SearchCache{client: client, ttl: ttl}
}

// Key derives a deterministic cache key from the canonical filter. Fields
// are serialized in a fixed order so equal filters always collide.
func Key(f search.Filter) string {
	parts := []string{
		fmt.Sprintf("country=%s", f.Country),
		fmt.Sprintf("city=%s", strings.ToLower(f.City)),
		fmt.Sprintf("type=%s", f.PropertyType),
		fmt.Sprintf("min=%s", intPart(f.MinPrice)),
		fmt.Sprintf("max=%s", intPart(f.MaxPrice)),
		fmt.Sprintf("furnished=%s", boolPart(f.IsFurnished)),
		fmt.Sprintf("pets=%s", boolPart(f.AllowsPets)),
		fmt.Sprintf("internet=%s", boolPart(f.InternetIncluded)),
		fmt.Sprintf("lat=%s", floatPart(f.Latitude)),
		fmt.Sprintf("lng=%s", floatPart(f.Longitude)),
		fmt.Sprintf("radius=%s", floatPart(f.RadiusKm)),
		fmt.Sprintf("active=%t", f.IsActive),
		fmt.Sprintf("sort=%s", f.Sort),
		fmt.Sprintf("limit=%d", f.Limit),
	}

	hash := md5.Sum([]byte(strings.Join(parts, "|")))
	return "search:" + hex.EncodeToString(hash[:])
}

// Get returns the cached result set for a key, or a miss.
func (c *SearchCache) Get(ctx context.Context, key string) ([]models.Property, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[Cache] Warning: redis get failed: %v", err)
		return nil, false
	}

	var properties []models.Property
	if err := json.Unmarshal([]byte(data), &properties); err != nil {
		log.Printf("[Cache] Warning: corrupt cache entry %s: %v", key, err)
		return nil, false
	}
	return properties, true
}

// Set stores a result set under a key with the configured TTL.
func (c *SearchCache) Set(ctx context.Context, key string, properties []models.Property) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(properties)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("[Cache] Warning: redis set failed: %v", err)
	}
}

func intPart(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func floatPart(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g", *v)
}

func boolPart(v *bool) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%t", *v)
}
