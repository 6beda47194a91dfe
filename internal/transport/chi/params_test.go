package chi

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestBindSearchParams_Full(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/search?q=goldman&nl=true&page=2&category=quant_hedge_funds&type=question"+
			"&city=Paris&cities=London,Geneva&banks=b-gs,b-ms&tags=fit,brainteaser"+
			"&date_from=2025-01-01&date_to=2025-01-31&sort=popular", http.NoBody)

	p, err := bindSearchParams(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := p.toBody()

	if body.Query != "goldman" || !body.IsNaturalLanguage || body.PageParam != 2 {
		t.Errorf("unexpected scalars: %+v", body)
	}
	f := body.Filters
	if f.Category != "quant_hedge_funds" || f.Type != "question" || f.City != "Paris" || f.SortBy != "popular" {
		t.Errorf("unexpected filters: %+v", f)
	}
	if !reflect.DeepEqual(f.Cities, []string{"London", "Geneva"}) {
		t.Errorf("cities = %v", f.Cities)
	}
	if !reflect.DeepEqual(f.Banks, []string{"b-gs", "b-ms"}) {
		t.Errorf("banks = %v", f.Banks)
	}
	if !reflect.DeepEqual(f.Tags, []string{"fit", "brainteaser"}) {
		t.Errorf("tags = %v", f.Tags)
	}
	if f.DateFrom != "2025-01-01" || f.DateTo != "2025-01-31" {
		t.Errorf("dates = %q..%q", f.DateFrom, f.DateTo)
	}
}

func TestBindSearchParams_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", http.NoBody)

	p, err := bindSearchParams(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := p.toBody()
	if body.Query != "" || body.IsNaturalLanguage || body.PageParam != 0 {
		t.Errorf("expected zero values, got %+v", body)
	}
	if body.Filters.Banks != nil {
		t.Errorf("expected no banks, got %v", body.Filters.Banks)
	}
}

func TestBindSearchParams_InvalidPage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?page=two", http.NoBody)

	if _, err := bindSearchParams(req); err == nil {
		t.Fatal("expected error for non-numeric page")
	}
}

func TestBindSearchParams_InvalidBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?nl=maybe", http.NoBody)

	if _, err := bindSearchParams(req); err == nil {
		t.Fatal("expected error for non-boolean nl")
	}
}
