package search

import (
	"context"

	"inandout-portal/internal/models"
)

// Backend retrieves properties matching as much of the filter as the
// underlying store can express. Callers must not assume the result set is
// fully filtered: constraints a backend cannot push down are left to
// ApplyPostFilters, which always runs after the fetch.
//
// An empty result set is a valid outcome, distinct from an error.
type Backend interface {
	SearchProperties(ctx context.Context, f Filter) ([]models.Property, error)
}
