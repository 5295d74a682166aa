package cache

import (
	"context"
	"strings"
	"testing"

	"inandout-portal/internal/search"
)

func TestKeyDeterministic(t *testing.T) {
	min := 50000
	a := search.Filter{City: "Milano", MinPrice: &min, IsActive: true, Sort: search.SortPriceAsc, Limit: 50}

	minCopy := 50000
	b := search.Filter{City: "Milano", MinPrice: &minCopy, IsActive: true, Sort: search.SortPriceAsc, Limit: 50}

	if Key(a) != Key(b) {
		t.Error("equal filters must produce equal keys")
	}
}

func TestKeyCityCaseInsensitive(t *testing.T) {
	a := search.Filter{City: "Milano", IsActive: true}
	b := search.Filter{City: "MILANO", IsActive: true}
	if Key(a) != Key(b) {
		t.Error("city casing must not change the key")
	}
}

func TestKeyDiverges(t *testing.T) {
	base := search.Filter{City: "Milano", IsActive: true, Sort: search.SortRelevance, Limit: 50}

	variants := []search.Filter{
		{City: "Roma", IsActive: true, Sort: search.SortRelevance, Limit: 50},
		{City: "Milano", IsActive: false, Sort: search.SortRelevance, Limit: 50},
		{City: "Milano", IsActive: true, Sort: search.SortPriceDesc, Limit: 50},
		{City: "Milano", IsActive: true, Sort: search.SortRelevance, Limit: 100},
	}
	for i, v := range variants {
		if Key(base) == Key(v) {
			t.Errorf("variant %d should produce a different key", i)
		}
	}
}

func TestKeyDistinguishesAbsentFromFalse(t *testing.T) {
	no := false
	absent := search.Filter{IsActive: true}
	explicit := search.Filter{IsActive: true, IsFurnished: &no}
	if Key(absent) == Key(explicit) {
		t.Error("absent amenity and explicit false must not share a key")
	}
}

func TestKeyFormat(t *testing.T) {
	key := Key(search.Filter{IsActive: true})
	if !strings.HasPrefix(key, "search:") {
		t.Errorf("expected search: prefix, got %q", key)
	}
	if len(key) != len("search:")+32 {
		t.Errorf("expected md5 hex digest, got %q", key)
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *SearchCache
	ctx := context.Background()

	if _, ok := c.Get(ctx, "search:abc"); ok {
		t.Error("nil cache must always miss")
	}
	// Must not panic.
	c.Set(ctx, "search:abc", nil)
}
