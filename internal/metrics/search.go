package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bridgeyou",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"mode", "status"}, // mode: natural/keyword, status: success/error
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bridgeyou",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"mode"},
	)

	InterpreterOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bridgeyou",
			Name:      "interpreter_outcomes_total",
			Help:      "Query interpretations by outcome",
		},
		[]string{"outcome"}, // completion, unconfigured, budget_exhausted, provider_error, parse_error
	)

	CompletionBudgetUsedTokens = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bridgeyou",
			Name:      "completion_budget_used_tokens",
			Help:      "Completion tokens spent today against the daily budget",
		},
	)

	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bridgeyou",
			Name:      "completion_requests_total",
			Help:      "Total number of completion requests",
		},
		[]string{"model", "status"},
	)

	CompletionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bridgeyou",
			Name:      "completion_request_duration_seconds",
			Help:      "Completion request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"model"},
	)

	CompletionTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bridgeyou",
			Name:      "completion_tokens_total",
			Help:      "Total completion tokens consumed",
		},
		[]string{"model", "type"},
	)

	BankResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bridgeyou",
			Name:      "bank_resolutions_total",
			Help:      "Bank name resolutions by result",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	BankDirectoryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bridgeyou",
			Name:      "bank_directory_cache_total",
			Help:      "Bank directory cache hits and misses",
		},
		[]string{"layer", "result"}, // layer: memory/shared
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers the search pipeline metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(InterpreterOutcomesTotal)
	prometheus.MustRegister(CompletionBudgetUsedTokens)
	prometheus.MustRegister(CompletionRequestsTotal)
	prometheus.MustRegister(CompletionRequestDuration)
	prometheus.MustRegister(CompletionTokensTotal)
	prometheus.MustRegister(BankResolutionsTotal)
	prometheus.MustRegister(BankDirectoryCacheTotal)
	searchMetricsRegistered = true
}
