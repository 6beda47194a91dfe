package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/v1/posts/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/"+id, http.NoBody)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/posts/{id}", "200"))
	if got < 3 {
		t.Errorf("expected >= 3 requests under the route pattern, got %f", got)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/v1/search", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("fail") != "" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("{}"))
	})

	tests := []struct {
		url    string
		status string
	}{
		{"/api/v1/search?q=x", "200"},
		{"/api/v1/search?fail=1", "503"},
	}
	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.url, http.NoBody))
			val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/search", tc.status))
			if val < 1 {
				t.Errorf("expected requests_total with status %s >= 1, got %f", tc.status, val)
			}
		})
	}
}

func TestMiddleware_InFlightReturnsToZero(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	var during float64
	r.Get("/slow", func(w http.ResponseWriter, _ *http.Request) {
		during = testutil.ToFloat64(httpRequestsInFlight)
		w.WriteHeader(http.StatusNoContent)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/slow", http.NoBody))

	if during < 1 {
		t.Errorf("expected in-flight >= 1 during the request, got %f", during)
	}
	if after := testutil.ToFloat64(httpRequestsInFlight); after != 0 {
		t.Errorf("expected in-flight 0 after the request, got %f", after)
	}
}

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/api/v1/search", "/api/v1/search"},
		{"/health", "/health"},
	}
	for _, tc := range tests {
		if got := routeLabel(tc.input); got != tc.expected {
			t.Errorf("routeLabel(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()

	SearchRequestsTotal.WithLabelValues("keyword", "success").Inc()
	if got := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("keyword", "success")); got < 1 {
		t.Errorf("expected counter >= 1, got %f", got)
	}
}
