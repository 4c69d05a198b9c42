// Package telemetry records per-request performance samples in a rolling
// window and exposes both a JSON snapshot (health endpoint) and Prometheus
// metrics.
package telemetry

import (
	"sort"
	"sync"
	"time"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
)

// Sample is one completed request's performance record.
type Sample struct {
	Total     time.Duration
	Embedding time.Duration
	Retrieval time.Duration
	Scoring   time.Duration
	Rerank    time.Duration
	CacheHit  bool
}

// DefaultWindowSize is the number of recent requests kept for percentile
// computation.
const DefaultWindowSize = 500

// Tracker keeps the last N samples in a fixed ring. Safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	samples []Sample
	next    int
	filled  bool
}

// NewTracker creates a tracker with the given window size.
func NewTracker(windowSize int) *Tracker {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &Tracker{samples: make([]Sample, windowSize)}
}

// Record adds one sample, evicting the oldest when the window is full, and
// feeds the Prometheus stage histograms.
func (t *Tracker) Record(s Sample) {
	t.mu.Lock()
	t.samples[t.next] = s
	t.next++
	if t.next == len(t.samples) {
		t.next = 0
		t.filled = true
	}
	t.mu.Unlock()

	StageDuration.WithLabelValues("total").Observe(s.Total.Seconds())
	StageDuration.WithLabelValues("embedding").Observe(s.Embedding.Seconds())
	StageDuration.WithLabelValues("retrieval").Observe(s.Retrieval.Seconds())
	StageDuration.WithLabelValues("scoring").Observe(s.Scoring.Seconds())
	if s.Rerank > 0 {
		StageDuration.WithLabelValues("rerank").Observe(s.Rerank.Seconds())
	}
}

// Snapshot computes latency percentiles and the cache-hit ratio over the
// current window.
func (t *Tracker) Snapshot() domain.PerformanceSnapshot {
	t.mu.Lock()
	count := t.next
	if t.filled {
		count = len(t.samples)
	}
	totals := make([]float64, 0, count)
	hits := 0
	for i := 0; i < count; i++ {
		totals = append(totals, float64(t.samples[i].Total.Milliseconds()))
		if t.samples[i].CacheHit {
			hits++
		}
	}
	t.mu.Unlock()

	snap := domain.PerformanceSnapshot{
		WindowSize:  len(t.samples),
		SampleCount: count,
	}
	if count == 0 {
		return snap
	}

	sort.Float64s(totals)
	snap.P50Ms = percentile(totals, 0.50)
	snap.P90Ms = percentile(totals, 0.90)
	snap.P95Ms = percentile(totals, 0.95)
	snap.P99Ms = percentile(totals, 0.99)
	snap.CacheHitRatio = float64(hits) / float64(count)
	return snap
}

// percentile returns the nearest-rank percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p*float64(len(sorted))+0.5) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
