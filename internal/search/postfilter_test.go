package search

import (
	"testing"

	"inandout-portal/internal/models"
)

func makeProperty(id string, mutate func(*models.Property)) models.Property {
	lat, lng := 45.4642, 9.19
	p := models.Property{
		ID:           id,
		Title:        "Listing " + id,
		PropertyType: models.PropertyTypeStudio,
		Price:        65000,
		Country:      "IT",
		City:         "Milano",
		Latitude:     &lat,
		Longitude:    &lng,
		Features:     []string{},
		IsActive:     true,
	}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func TestMatchesFilterActiveState(t *testing.T) {
	active := makeProperty("a", nil)
	inactive := makeProperty("b", func(p *models.Property) { p.IsActive = false })

	f := Filter{IsActive: true}
	if !MatchesFilter(&active, f) {
		t.Error("active listing should match the default filter")
	}
	if MatchesFilter(&inactive, f) {
		t.Error("inactive listing should be rejected by the default filter")
	}

	// Admin override flips the polarity rather than widening it.
	f.IsActive = false
	if MatchesFilter(&active, f) {
		t.Error("active listing should not match isActive=false")
	}
	if !MatchesFilter(&inactive, f) {
		t.Error("inactive listing should match isActive=false")
	}
}

func TestMatchesFilterCitySubstring(t *testing.T) {
	p := makeProperty("a", func(p *models.Property) { p.City = "Sesto San Giovanni" })

	tests := []struct {
		city string
		want bool
	}{
		{"", true},
		{"sesto", true},
		{"SAN GIOVANNI", true},
		{"Sesto San Giovanni", true},
		{"Milano", false},
	}
	for _, tt := range tests {
		f := Filter{IsActive: true, City: tt.city}
		if got := MatchesFilter(&p, f); got != tt.want {
			t.Errorf("city %q: expected %v, got %v", tt.city, tt.want, got)
		}
	}
}

func TestMatchesFilterPriceBounds(t *testing.T) {
	p := makeProperty("a", func(p *models.Property) { p.Price = 65000 })

	tests := []struct {
		name     string
		min, max *int
		want     bool
	}{
		{"no bounds", nil, nil, true},
		{"inside range", intPtr(50000), intPtr(70000), true},
		{"at min", intPtr(65000), nil, true},
		{"at max", nil, intPtr(65000), true},
		{"below min", intPtr(70000), nil, false},
		{"above max", nil, intPtr(60000), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Filter{IsActive: true, MinPrice: tt.min, MaxPrice: tt.max}
			if got := MatchesFilter(&p, f); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMatchesFilterAmenityUnion(t *testing.T) {
	// Amenities are satisfied by the boolean column or the feature tag.
	viaFlag := makeProperty("a", func(p *models.Property) { p.IsFurnished = true })
	viaTag := makeProperty("b", func(p *models.Property) { p.Features = []string{models.FeatureFurnished} })
	neither := makeProperty("c", nil)

	want := Filter{IsActive: true, IsFurnished: boolPtr(true)}
	if !MatchesFilter(&viaFlag, want) {
		t.Error("boolean column should satisfy the furnished filter")
	}
	if !MatchesFilter(&viaTag, want) {
		t.Error("feature tag should satisfy the furnished filter")
	}
	if MatchesFilter(&neither, want) {
		t.Error("unfurnished listing should be rejected")
	}

	// Explicit false excludes listings that have the amenity either way.
	reject := Filter{IsActive: true, IsFurnished: boolPtr(false)}
	if MatchesFilter(&viaTag, reject) {
		t.Error("tagged listing should be rejected by isFurnished=false")
	}
	if !MatchesFilter(&neither, reject) {
		t.Error("unfurnished listing should match isFurnished=false")
	}
}

func TestMatchesFilterGeo(t *testing.T) {
	milanoCenter := makeProperty("a", nil) // 45.4642, 9.19
	bologna := makeProperty("b", func(p *models.Property) {
		lat, lng := 44.4949, 11.3426
		p.Latitude, p.Longitude = &lat, &lng
	})
	noCoords := makeProperty("c", func(p *models.Property) {
		p.Latitude, p.Longitude = nil, nil
	})

	lat, lng, radius := 45.4642, 9.19, 10.0
	f := Filter{IsActive: true, Latitude: &lat, Longitude: &lng, RadiusKm: &radius}

	if !MatchesFilter(&milanoCenter, f) {
		t.Error("listing at the center should match a 10km radius")
	}
	if MatchesFilter(&bologna, f) {
		t.Error("listing ~200km away should not match a 10km radius")
	}
	if MatchesFilter(&noCoords, f) {
		t.Error("listing without coordinates should never match a geo filter")
	}

	// Without a geo filter the coordinate-less listing is fine.
	if !MatchesFilter(&noCoords, Filter{IsActive: true}) {
		t.Error("listing without coordinates should match when no geo filter is set")
	}
}

func TestApplyPostFiltersSubsetAndOrder(t *testing.T) {
	input := []models.Property{
		makeProperty("1", func(p *models.Property) { p.Price = 40000 }),
		makeProperty("2", func(p *models.Property) { p.Price = 80000 }),
		makeProperty("3", func(p *models.Property) { p.Price = 55000 }),
		makeProperty("4", func(p *models.Property) { p.IsActive = false }),
	}

	f := Filter{IsActive: true, MaxPrice: intPtr(60000)}
	out := ApplyPostFilters(input, f)

	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	if out[0].ID != "1" || out[1].ID != "3" {
		t.Errorf("expected backend order preserved, got %s, %s", out[0].ID, out[1].ID)
	}
	if len(input) != 4 {
		t.Error("input slice must not be mutated")
	}
}

func TestApplyPostFiltersEmptyInput(t *testing.T) {
	out := ApplyPostFilters(nil, Filter{IsActive: true})
	if out == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(out) != 0 {
		t.Errorf("expected empty result, got %d", len(out))
	}
}

// Document backends defer the upper price bound and all but one amenity;
// the reconciler must enforce what was deferred.
func TestApplyPostFiltersEnforcesDeferredConstraints(t *testing.T) {
	input := []models.Property{
		// pushed price >= 50000 matched, but exceeds the deferred max
		makeProperty("over", func(p *models.Property) { p.Price = 120000 }),
		// furnished pushed via tag, pets deferred and missing
		makeProperty("no-pets", func(p *models.Property) {
			p.Features = []string{models.FeatureFurnished}
		}),
		// satisfies everything
		makeProperty("ok", func(p *models.Property) {
			p.Price = 70000
			p.Features = []string{models.FeatureFurnished, models.FeaturePets}
		}),
	}

	f := Filter{
		IsActive:    true,
		MinPrice:    intPtr(50000),
		MaxPrice:    intPtr(90000),
		IsFurnished: boolPtr(true),
		AllowsPets:  boolPtr(true),
	}
	out := ApplyPostFilters(input, f)

	if len(out) != 1 || out[0].ID != "ok" {
		t.Fatalf("expected only the fully matching listing, got %d results", len(out))
	}
}

func intPtr(n int) *int { return &n }
