package docstore

import (
	"inandout-portal/internal/models"
	"inandout-portal/internal/search"
)

// condition is one pushed-down Firestore constraint.
type condition struct {
	Path  string
	Op    string
	Value interface{}
}

// queryPlan is the portion of a canonical filter the document store can
// evaluate natively, plus a record of what was deferred to post-filtering.
//
// Firestore allows a single inequality/range field per query and a single
// array-contains clause, so the plan pushes at most one price bound and at
// most one amenity tag; the reconciler re-checks everything else.
type queryPlan struct {
	Conditions []condition
	OrderDesc  bool
	Limit      int

	DeferredUpperPrice *int
	DeferredFeatures   []string
}

// amenityTag pairs a requested tri-state amenity with its feature tag.
type amenityTag struct {
	requested *bool
	tag       string
}

// buildPlan translates a canonical filter into a Firestore query plan.
func buildPlan(f search.Filter) queryPlan {
	plan := queryPlan{Limit: f.Limit}

	// Equality filters can be combined freely.
	plan.push("isActive", "==", f.IsActive)
	if f.City != "" {
		plan.push("city", "==", f.City)
	}
	if f.PropertyType != "" {
		plan.push("propertyType", "==", string(f.PropertyType))
	}
	if f.Country != "" {
		plan.push("country", "==", f.Country)
	}

	// One inequality field per query: with both bounds set, the lower one
	// is pushed and the upper bound re-checked after the fetch.
	switch {
	case f.MinPrice != nil && f.MaxPrice != nil:
		plan.push("price", ">=", *f.MinPrice)
		plan.DeferredUpperPrice = f.MaxPrice
	case f.MinPrice != nil:
		plan.push("price", ">=", *f.MinPrice)
	case f.MaxPrice != nil:
		plan.push("price", "<=", *f.MaxPrice)
	}

	// One array-contains per query: the first amenity requested as true is
	// pushed; the others are deferred. A false amenity ("must not have")
	// cannot be expressed at all and is always deferred.
	amenities := []amenityTag{
		{f.IsFurnished, models.FeatureFurnished},
		{f.AllowsPets, models.FeaturePets},
		{f.InternetIncluded, models.FeatureInternet},
	}
	pushed := false
	for _, a := range amenities {
		if a.requested == nil {
			continue
		}
		if *a.requested && !pushed {
			plan.push("features", "array-contains", a.tag)
			pushed = true
			continue
		}
		plan.DeferredFeatures = append(plan.DeferredFeatures, a.tag)
	}

	if f.Sort == search.SortPriceDesc {
		plan.OrderDesc = true
	}

	return plan
}

func (p *queryPlan) push(path, op string, value interface{}) {
	p.Conditions = append(p.Conditions, condition{Path: path, Op: op, Value: value})
}
