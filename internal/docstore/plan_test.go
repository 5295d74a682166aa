package docstore

import (
	"testing"

	"inandout-portal/internal/models"
	"inandout-portal/internal/search"
)

func findCondition(plan queryPlan, path string) (condition, bool) {
	for _, c := range plan.Conditions {
		if c.Path == path {
			return c, true
		}
	}
	return condition{}, false
}

func countConditions(plan queryPlan, path string) int {
	n := 0
	for _, c := range plan.Conditions {
		if c.Path == path {
			n++
		}
	}
	return n
}

func TestBuildPlanAlwaysPushesActiveState(t *testing.T) {
	plan := buildPlan(search.Filter{IsActive: true})
	c, ok := findCondition(plan, "isActive")
	if !ok {
		t.Fatal("expected isActive condition")
	}
	if c.Op != "==" || c.Value != true {
		t.Errorf("expected isActive == true, got %s %v", c.Op, c.Value)
	}

	plan = buildPlan(search.Filter{IsActive: false})
	c, _ = findCondition(plan, "isActive")
	if c.Value != false {
		t.Errorf("expected isActive == false, got %v", c.Value)
	}
}

func TestBuildPlanEqualityFilters(t *testing.T) {
	f := search.Filter{
		IsActive:     true,
		City:         "Milano",
		Country:      "IT",
		PropertyType: models.PropertyTypeTwoRoom,
	}
	plan := buildPlan(f)

	if c, ok := findCondition(plan, "city"); !ok || c.Op != "==" || c.Value != "Milano" {
		t.Errorf("expected city == Milano, got %+v", c)
	}
	if c, ok := findCondition(plan, "country"); !ok || c.Value != "IT" {
		t.Errorf("expected country == IT, got %+v", c)
	}
	if c, ok := findCondition(plan, "propertyType"); !ok || c.Value != "bilocale" {
		t.Errorf("expected propertyType == bilocale, got %+v", c)
	}
}

func TestBuildPlanSingleInequality(t *testing.T) {
	min, max := 50000, 90000

	// Both bounds: only the lower one is pushed, the upper is deferred.
	plan := buildPlan(search.Filter{IsActive: true, MinPrice: &min, MaxPrice: &max})
	if n := countConditions(plan, "price"); n != 1 {
		t.Fatalf("expected exactly one price condition, got %d", n)
	}
	c, _ := findCondition(plan, "price")
	if c.Op != ">=" || c.Value != min {
		t.Errorf("expected price >= %d, got %s %v", min, c.Op, c.Value)
	}
	if plan.DeferredUpperPrice == nil || *plan.DeferredUpperPrice != max {
		t.Errorf("expected upper bound %d deferred, got %v", max, plan.DeferredUpperPrice)
	}

	// Lower bound only.
	plan = buildPlan(search.Filter{IsActive: true, MinPrice: &min})
	c, _ = findCondition(plan, "price")
	if c.Op != ">=" || plan.DeferredUpperPrice != nil {
		t.Errorf("expected pushed lower bound and no deferral, got %+v", plan)
	}

	// Upper bound only is pushable directly.
	plan = buildPlan(search.Filter{IsActive: true, MaxPrice: &max})
	c, _ = findCondition(plan, "price")
	if c.Op != "<=" || c.Value != max {
		t.Errorf("expected price <= %d, got %s %v", max, c.Op, c.Value)
	}
	if plan.DeferredUpperPrice != nil {
		t.Error("expected no deferred upper bound when it was pushed")
	}
}

func TestBuildPlanSingleArrayContains(t *testing.T) {
	yes := true
	plan := buildPlan(search.Filter{
		IsActive:    true,
		IsFurnished: &yes,
		AllowsPets:  &yes,
	})

	if n := countConditions(plan, "features"); n != 1 {
		t.Fatalf("expected exactly one array-contains condition, got %d", n)
	}
	c, _ := findCondition(plan, "features")
	if c.Op != "array-contains" || c.Value != models.FeatureFurnished {
		t.Errorf("expected first requested amenity pushed, got %s %v", c.Op, c.Value)
	}
	if len(plan.DeferredFeatures) != 1 || plan.DeferredFeatures[0] != models.FeaturePets {
		t.Errorf("expected pets deferred, got %v", plan.DeferredFeatures)
	}
}

func TestBuildPlanNegativeAmenityNeverPushed(t *testing.T) {
	no := false
	yes := true
	plan := buildPlan(search.Filter{
		IsActive:         true,
		IsFurnished:      &no,
		InternetIncluded: &yes,
	})

	// The false amenity cannot be expressed as array-contains; the true one
	// still takes the single slot.
	c, ok := findCondition(plan, "features")
	if !ok {
		t.Fatal("expected the true amenity to be pushed")
	}
	if c.Value != models.FeatureInternet {
		t.Errorf("expected wifi pushed, got %v", c.Value)
	}
	if len(plan.DeferredFeatures) != 1 || plan.DeferredFeatures[0] != models.FeatureFurnished {
		t.Errorf("expected the negative amenity deferred, got %v", plan.DeferredFeatures)
	}
}

func TestBuildPlanSortAndLimit(t *testing.T) {
	plan := buildPlan(search.Filter{IsActive: true, Sort: search.SortPriceDesc, Limit: 25})
	if !plan.OrderDesc {
		t.Error("expected descending order for price_desc")
	}
	if plan.Limit != 25 {
		t.Errorf("expected limit 25, got %d", plan.Limit)
	}

	plan = buildPlan(search.Filter{IsActive: true, Sort: search.SortPriceAsc})
	if plan.OrderDesc {
		t.Error("expected ascending order by default")
	}
}

func TestBuildPlanGeoNeverPushed(t *testing.T) {
	lat, lng, radius := 45.46, 9.19, 5.0
	plan := buildPlan(search.Filter{
		IsActive: true,
		Latitude: &lat, Longitude: &lng, RadiusKm: &radius,
	})
	for _, c := range plan.Conditions {
		if c.Path == "latitude" || c.Path == "longitude" {
			t.Errorf("geo constraint must stay in post-filtering, found %+v", c)
		}
	}
}
