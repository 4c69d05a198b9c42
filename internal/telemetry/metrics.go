package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hiresignal",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"status"},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hiresignal",
			Name:      "search_stage_duration_seconds",
			Help:      "Per-stage pipeline duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"stage"},
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hiresignal",
			Name:      "cache_total",
			Help:      "Cache hits and misses per cache",
		},
		[]string{"cache", "result"}, // cache: "embedding"/"rerank", result: "hit"/"miss"
	)

	RerankFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hiresignal",
			Name:      "rerank_fallback_total",
			Help:      "Requests served with the combined-score fallback ordering",
		},
	)

	BreakerTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hiresignal",
			Name:      "breaker_transitions_total",
			Help:      "Circuit breaker state transitions per dependency",
		},
		[]string{"dependency", "state"},
	)

	TrajectoryDisagreementTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hiresignal",
			Name:      "trajectory_shadow_disagreement_total",
			Help:      "Shadow-mode trajectory predictions disagreeing with the rule-based baseline",
		},
	)
)

var metricsRegistered bool

// RegisterMetrics registers the pipeline metrics. Must be called once from main.
func RegisterMetrics() {
	if metricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(StageDuration)
	prometheus.MustRegister(CacheTotal)
	prometheus.MustRegister(RerankFallbackTotal)
	prometheus.MustRegister(BreakerTransitionsTotal)
	prometheus.MustRegister(TrajectoryDisagreementTotal)
	metricsRegistered = true
}
