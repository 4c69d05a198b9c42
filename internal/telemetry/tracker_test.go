package telemetry

import (
	"testing"
	"time"
)

func TestTracker_EmptySnapshot(t *testing.T) {
	tr := NewTracker(10)
	snap := tr.Snapshot()

	if snap.SampleCount != 0 {
		t.Errorf("sample count = %d, want 0", snap.SampleCount)
	}
	if snap.P50Ms != 0 || snap.P99Ms != 0 {
		t.Errorf("empty snapshot has nonzero percentiles: %+v", snap)
	}
}

func TestTracker_Percentiles(t *testing.T) {
	tr := NewTracker(200)
	for i := 1; i <= 100; i++ {
		tr.Record(Sample{Total: time.Duration(i) * time.Millisecond})
	}

	snap := tr.Snapshot()
	if snap.SampleCount != 100 {
		t.Fatalf("sample count = %d, want 100", snap.SampleCount)
	}
	if snap.P50Ms != 50 {
		t.Errorf("p50 = %f, want 50", snap.P50Ms)
	}
	if snap.P90Ms != 90 {
		t.Errorf("p90 = %f, want 90", snap.P90Ms)
	}
	if snap.P99Ms != 99 {
		t.Errorf("p99 = %f, want 99", snap.P99Ms)
	}
}

func TestTracker_WindowEvictsOldest(t *testing.T) {
	tr := NewTracker(5)
	for i := 0; i < 5; i++ {
		tr.Record(Sample{Total: 1000 * time.Millisecond})
	}
	for i := 0; i < 5; i++ {
		tr.Record(Sample{Total: 10 * time.Millisecond})
	}

	snap := tr.Snapshot()
	if snap.SampleCount != 5 {
		t.Fatalf("sample count = %d, want 5", snap.SampleCount)
	}
	if snap.P99Ms != 10 {
		t.Errorf("p99 = %f, want 10 after old samples evicted", snap.P99Ms)
	}
}

func TestTracker_CacheHitRatio(t *testing.T) {
	tr := NewTracker(10)
	for i := 0; i < 4; i++ {
		tr.Record(Sample{Total: time.Millisecond, CacheHit: true})
	}
	for i := 0; i < 6; i++ {
		tr.Record(Sample{Total: time.Millisecond})
	}

	snap := tr.Snapshot()
	if snap.CacheHitRatio != 0.4 {
		t.Errorf("cache hit ratio = %f, want 0.4", snap.CacheHitRatio)
	}
}
