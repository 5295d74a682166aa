package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"inandout-portal/internal/models"
	"inandout-portal/internal/search"
)

// mockBackend returns canned results and records the filter it received.
type mockBackend struct {
	results []models.Property
	err     error
	gotF    search.Filter
	calls   int
}

func (m *mockBackend) SearchProperties(ctx context.Context, f search.Filter) ([]models.Property, error) {
	m.calls++
	m.gotF = f
	return m.results, m.err
}

func newSearchRouter(h *SearchHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/properties/search", h.Search)
	r.GET("/api/filter", h.Filter)
	return r
}

func postSearch(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/properties/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func activeListing(id, city string, price int) models.Property {
	return models.Property{
		ID:           id,
		Title:        "Listing " + id,
		PropertyType: models.PropertyTypeStudio,
		Price:        price,
		Country:      "IT",
		City:         city,
		IsActive:     true,
	}
}

func TestSearchReturnsMatches(t *testing.T) {
	backend := &mockBackend{results: []models.Property{
		activeListing("1", "Milano", 60000),
		activeListing("2", "Milano", 75000),
	}}
	r := newSearchRouter(NewSearchHandler(backend, nil, false))

	w := postSearch(t, r, `{"city":"Milano","maxPrice":80000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var results []models.Property
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if backend.gotF.City != "Milano" {
		t.Errorf("filter not forwarded to backend: %+v", backend.gotF)
	}
}

func TestSearchEnforcesPostFilters(t *testing.T) {
	// The backend over-returns; the handler must re-check every constraint.
	backend := &mockBackend{results: []models.Property{
		activeListing("keep", "Milano", 60000),
		activeListing("too-expensive", "Milano", 150000),
		activeListing("wrong-city", "Roma", 60000),
	}}
	r := newSearchRouter(NewSearchHandler(backend, nil, false))

	w := postSearch(t, r, `{"city":"Milano","maxPrice":80000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var results []models.Property
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(results) != 1 || results[0].ID != "keep" {
		t.Fatalf("expected only the matching listing, got %d results", len(results))
	}
}

func TestSearchValidationErrorHasFieldDetail(t *testing.T) {
	backend := &mockBackend{}
	r := newSearchRouter(NewSearchHandler(backend, nil, false))

	w := postSearch(t, r, `{"minPrice":"abc"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["field"] != "minPrice" {
		t.Errorf("expected field minPrice, got %q", body["field"])
	}
	if backend.calls != 0 {
		t.Error("backend must not be called on invalid input")
	}
}

func TestSearchBackendErrorIsGeneric(t *testing.T) {
	backend := &mockBackend{err: errors.New("dial tcp 10.0.0.5:5432: connection refused")}
	r := newSearchRouter(NewSearchHandler(backend, nil, false))

	w := postSearch(t, r, `{"city":"Milano"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "10.0.0.5") {
		t.Error("backend detail must not leak to the client")
	}
}

func TestSearchEmptyResultIsEmptyArray(t *testing.T) {
	backend := &mockBackend{results: nil}
	r := newSearchRouter(NewSearchHandler(backend, nil, false))

	w := postSearch(t, r, `{"city":"Atlantide"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

func TestSearchDemoFallback(t *testing.T) {
	backend := &mockBackend{results: nil}
	r := newSearchRouter(NewSearchHandler(backend, nil, true))

	w := postSearch(t, r, `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var results []models.Property
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected demo listings when the backend is empty")
	}
}

func TestSearchDemoFallbackStillFiltered(t *testing.T) {
	backend := &mockBackend{results: nil}
	r := newSearchRouter(NewSearchHandler(backend, nil, true))

	// None of the demo listings is this cheap, so the substitution must
	// still come back empty.
	w := postSearch(t, r, `{"maxPrice":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("expected demo fallback to honor the filter, got %q", got)
	}
}

func TestFilterQueryEndpoint(t *testing.T) {
	backend := &mockBackend{results: []models.Property{
		activeListing("1", "Bologna", 45000),
	}}
	r := newSearchRouter(NewSearchHandler(backend, nil, false))

	req := httptest.NewRequest(http.MethodGet, "/api/filter?city=Bologna&maxPrice=50000&sort=price_asc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if backend.gotF.City != "Bologna" || backend.gotF.Sort != search.SortPriceAsc {
		t.Errorf("query parameters not normalized: %+v", backend.gotF)
	}
	if backend.gotF.MaxPrice == nil || *backend.gotF.MaxPrice != 50000 {
		t.Errorf("expected maxPrice 50000, got %v", backend.gotF.MaxPrice)
	}
}

func TestFilterQueryValidation(t *testing.T) {
	backend := &mockBackend{}
	r := newSearchRouter(NewSearchHandler(backend, nil, false))

	req := httptest.NewRequest(http.MethodGet, "/api/filter?sort=sideways", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if backend.calls != 0 {
		t.Error("backend must not be called on invalid input")
	}
}
