package search

import (
	"fmt"
	"log"
	"net/url"
	"strconv"

	"inandout-portal/internal/models"
)

const (
	// DefaultResultLimit is applied when the request carries no limit.
	DefaultResultLimit = 50
	// MaxResultLimit bounds the response size regardless of the request.
	MaxResultLimit = 200
)

// SortOrder enumerates the supported result orderings.
type SortOrder string

const (
	SortRelevance SortOrder = "relevance"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortDateDesc  SortOrder = "date_desc"
)

// Filter is the canonical, validated search request. Absent optional fields
// mean "don't care": a nil amenity pointer matches both values, which is
// distinct from an explicit false.
type Filter struct {
	Country      string
	City         string
	PropertyType models.PropertyType

	MinPrice *int
	MaxPrice *int

	IsFurnished      *bool
	AllowsPets       *bool
	InternetIncluded *bool

	// Geo filter: either all three are set or none.
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64

	// IsActive defaults to true; an explicit false is an admin override.
	IsActive bool

	Sort  SortOrder
	Limit int
}

// HasGeoFilter reports whether the geo triple is populated.
func (f *Filter) HasGeoFilter() bool {
	return f.Latitude != nil && f.Longitude != nil && f.RadiusKm != nil
}

// ValidationError describes malformed input for a single request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NormalizeFilter converts untyped request input (decoded JSON body or a
// flattened query string) into a canonical Filter.
//
// Numeric fields reject non-numeric input. Boolean fields are lenient:
// anything other than a bool or "true"/"false" is treated as absent. A
// partial geo triple is dropped with a logged warning instead of failing
// the whole request.
func NormalizeFilter(input map[string]interface{}) (Filter, error) {
	f := Filter{
		IsActive: true,
		Sort:     SortRelevance,
		Limit:    DefaultResultLimit,
	}

	f.Country = stringValue(input["country"])
	f.City = stringValue(input["city"])

	if raw := stringValue(input["propertyType"]); raw != "" {
		pt := models.PropertyType(raw)
		if !pt.IsValid() {
			return Filter{}, newValidationError("propertyType", "unknown property type %q", raw)
		}
		f.PropertyType = pt
	}

	minPrice, err := optionalInt(input, "minPrice")
	if err != nil {
		return Filter{}, err
	}
	maxPrice, err := optionalInt(input, "maxPrice")
	if err != nil {
		return Filter{}, err
	}
	if minPrice != nil && *minPrice < 0 {
		return Filter{}, newValidationError("minPrice", "must be non-negative")
	}
	if maxPrice != nil && *maxPrice < 0 {
		return Filter{}, newValidationError("maxPrice", "must be non-negative")
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return Filter{}, newValidationError("minPrice", "must not exceed maxPrice")
	}
	f.MinPrice = minPrice
	f.MaxPrice = maxPrice

	f.IsFurnished = triState(input["isFurnished"])
	f.AllowsPets = triState(input["allowsPets"])
	f.InternetIncluded = triState(input["internetIncluded"])

	if active := triState(input["isActive"]); active != nil {
		f.IsActive = *active
	}

	lat, err := optionalFloat(input, "latitude")
	if err != nil {
		return Filter{}, err
	}
	lng, err := optionalFloat(input, "longitude")
	if err != nil {
		return Filter{}, err
	}
	radius, err := optionalFloat(input, "radius")
	if err != nil {
		return Filter{}, err
	}
	present := 0
	for _, v := range []*float64{lat, lng, radius} {
		if v != nil {
			present++
		}
	}
	switch present {
	case 3:
		f.Latitude, f.Longitude, f.RadiusKm = lat, lng, radius
	case 0:
		// no geo filter
	default:
		// Partial geo input degrades to "no geo filter" rather than
		// failing the whole request.
		log.Printf("[Filter] Warning: incomplete geo input (lat=%v lng=%v radius=%v), dropping geo filter",
			lat != nil, lng != nil, radius != nil)
	}

	limit, err := optionalInt(input, "limit")
	if err != nil {
		return Filter{}, err
	}
	if limit != nil && *limit > 0 {
		f.Limit = *limit
	}
	if f.Limit > MaxResultLimit {
		f.Limit = MaxResultLimit
	}

	if raw := stringValue(input["sort"]); raw != "" {
		switch SortOrder(raw) {
		case SortRelevance, SortPriceAsc, SortPriceDesc, SortDateDesc:
			f.Sort = SortOrder(raw)
		default:
			return Filter{}, newValidationError("sort", "unknown sort order %q", raw)
		}
	}

	return f, nil
}

// NormalizeQuery normalizes from a URL query string, taking the first value
// of each parameter.
func NormalizeQuery(values url.Values) (Filter, error) {
	input := make(map[string]interface{}, len(values))
	for key := range values {
		input[key] = values.Get(key)
	}
	return NormalizeFilter(input)
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

// triState interprets lenient boolean input: native bools and the literal
// strings "true"/"false" are honored, anything else means "don't care".
func triState(v interface{}) *bool {
	switch val := v.(type) {
	case bool:
		b := val
		return &b
	case string:
		if val == "true" {
			b := true
			return &b
		}
		if val == "false" {
			b := false
			return &b
		}
	}
	return nil
}

func optionalInt(input map[string]interface{}, key string) (*int, error) {
	v, ok := input[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch val := v.(type) {
	case int:
		n := val
		return &n, nil
	case int64:
		n := int(val)
		return &n, nil
	case float64:
		n := int(val)
		return &n, nil
	case string:
		if val == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, newValidationError(key, "not a number: %q", val)
		}
		return &n, nil
	default:
		return nil, newValidationError(key, "not a number")
	}
}

func optionalFloat(input map[string]interface{}, key string) (*float64, error) {
	v, ok := input[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch val := v.(type) {
	case float64:
		n := val
		return &n, nil
	case int:
		n := float64(val)
		return &n, nil
	case string:
		if val == "" {
			return nil, nil
		}
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, newValidationError(key, "not a number: %q", val)
		}
		return &n, nil
	default:
		return nil, newValidationError(key, "not a number")
	}
}
