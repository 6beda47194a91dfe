package chi

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// searchParams are the query parameters of GET /api/v1/search.
// Lists use the form style without explode: ?tags=a,b.
type searchParams struct {
	Q        *string
	NL       *bool
	Page     *int
	Category *string
	Type     *string
	City     *string
	Cities   *[]string
	Banks    *[]string
	Tags     *[]string
	DateFrom *string
	DateTo   *string
	Sort     *string
}

func bindSearchParams(r *http.Request) (searchParams, error) {
	var p searchParams
	query := r.URL.Query()

	bindings := []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"nl", &p.NL},
		{"page", &p.Page},
		{"category", &p.Category},
		{"type", &p.Type},
		{"city", &p.City},
		{"cities", &p.Cities},
		{"banks", &p.Banks},
		{"tags", &p.Tags},
		{"date_from", &p.DateFrom},
		{"date_to", &p.DateTo},
		{"sort", &p.Sort},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", false, false, b.name, query, b.dest); err != nil {
			return searchParams{}, fmt.Errorf("invalid format for parameter %s: %w", b.name, err)
		}
	}
	return p, nil
}

// toBody maps query parameters onto the POST body shape so both routes
// share one conversion path.
func (p searchParams) toBody() searchRequestBody {
	body := searchRequestBody{
		Query:             deref(p.Q),
		IsNaturalLanguage: deref(p.NL),
		PageParam:         deref(p.Page),
		Filters: &filtersBody{
			Category: deref(p.Category),
			Type:     deref(p.Type),
			City:     deref(p.City),
			Cities:   deref(p.Cities),
			Banks:    deref(p.Banks),
			Tags:     deref(p.Tags),
			DateFrom: deref(p.DateFrom),
			DateTo:   deref(p.DateTo),
			SortBy:   deref(p.Sort),
		},
	}
	return body
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
