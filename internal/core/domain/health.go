package domain

// ComponentStatus describes the availability of one dependency.
type ComponentStatus string

const (
	StatusHealthy     ComponentStatus = "healthy"
	StatusDegraded    ComponentStatus = "degraded"
	StatusUnavailable ComponentStatus = "unavailable"
)

// HealthReport aggregates component statuses plus the rolling performance
// snapshot. Database is the only required dependency; rerank, trajectory and
// the embedding cache degrade the service rather than take it down.
type HealthReport struct {
	Status      ComponentStatus            `json:"status"`
	Components  map[string]ComponentStatus `json:"components"`
	Performance PerformanceSnapshot        `json:"performance"`
}

// PerformanceSnapshot is the rolling-window latency and cache summary
// exposed on the health endpoint.
type PerformanceSnapshot struct {
	WindowSize    int     `json:"windowSize"`
	SampleCount   int     `json:"sampleCount"`
	P50Ms         float64 `json:"p50Ms"`
	P90Ms         float64 `json:"p90Ms"`
	P95Ms         float64 `json:"p95Ms"`
	P99Ms         float64 `json:"p99Ms"`
	CacheHitRatio float64 `json:"cacheHitRatio"`
}

// Overall derives the report-level status from the component map.
// An unavailable database makes the whole service unavailable; any other
// impaired component only degrades it.
func (r *HealthReport) Overall() ComponentStatus {
	if r.Components["database"] == StatusUnavailable {
		return StatusUnavailable
	}
	for _, s := range r.Components {
		if s != StatusHealthy {
			return StatusDegraded
		}
	}
	return StatusHealthy
}
