package search

import (
	"math"
	"strings"

	"inandout-portal/internal/models"
)

// kmPerDegree converts a radius in kilometers to an equivalent threshold in
// coordinate degrees. This is the equator approximation the product shipped
// with: it is only accurate near the equator and for small radii, and it is
// kept deliberately rather than replaced with geodesic distance.
const kmPerDegree = 111.0

// ApplyPostFilters re-applies every constraint of the canonical filter to a
// backend result set, guaranteeing the output is a correct subset no matter
// which constraints the backend pushed down. It preserves the input order
// and does not mutate its arguments.
func ApplyPostFilters(results []models.Property, f Filter) []models.Property {
	out := make([]models.Property, 0, len(results))
	for i := range results {
		if MatchesFilter(&results[i], f) {
			out = append(out, results[i])
		}
	}
	return out
}

// MatchesFilter reports whether a single property satisfies the filter.
// Sort order and result limit are not its concern.
func MatchesFilter(p *models.Property, f Filter) bool {
	if p.IsActive != f.IsActive {
		return false
	}
	if f.Country != "" && p.Country != f.Country {
		return false
	}
	// City matching is a case-insensitive substring check, so exact
	// matches pushed by the document backend also pass.
	if f.City != "" && !strings.Contains(strings.ToLower(p.City), strings.ToLower(f.City)) {
		return false
	}
	if f.PropertyType != "" && p.PropertyType != f.PropertyType {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.IsFurnished != nil && p.Furnished() != *f.IsFurnished {
		return false
	}
	if f.AllowsPets != nil && p.PetsAllowed() != *f.AllowsPets {
		return false
	}
	if f.InternetIncluded != nil && p.HasInternet() != *f.InternetIncluded {
		return false
	}
	if f.HasGeoFilter() && !withinRadius(p, f) {
		return false
	}
	return true
}

// withinRadius applies the planar degree approximation. Properties without
// coordinates never match an active geo filter.
func withinRadius(p *models.Property, f Filter) bool {
	if !p.HasCoordinates() {
		return false
	}
	maxDegrees := *f.RadiusKm / kmPerDegree
	dLat := *p.Latitude - *f.Latitude
	dLng := *p.Longitude - *f.Longitude
	return math.Sqrt(dLat*dLat+dLng*dLng) <= maxDegrees
}
