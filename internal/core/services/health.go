package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hiresignal-labs/hiresignal-core/internal/core/domain"
	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driven"
	"github.com/hiresignal-labs/hiresignal-core/internal/core/ports/driving"
	"github.com/hiresignal-labs/hiresignal-core/internal/runtime"
	"github.com/hiresignal-labs/hiresignal-core/internal/telemetry"
)

// Ensure healthService implements HealthService
var _ driving.HealthService = (*healthService)(nil)

// probeTimeout bounds each dependency probe so a hung dependency cannot hang
// the health endpoint.
const probeTimeout = 2 * time.Second

// healthService probes every dependency concurrently and attaches the rolling
// performance snapshot.
type healthService struct {
	db       driven.CandidateRetriever
	cache    driven.Cache
	services *runtime.Services
	tracker  *telemetry.Tracker
}

// NewHealthService creates a new HealthService. cache may be nil.
func NewHealthService(
	db driven.CandidateRetriever,
	cache driven.Cache,
	services *runtime.Services,
	tracker *telemetry.Tracker,
) driving.HealthService {
	return &healthService{
		db:       db,
		cache:    cache,
		services: services,
		tracker:  tracker,
	}
}

// Report probes all dependencies and assembles a health report.
func (s *healthService) Report(ctx context.Context) *domain.HealthReport {
	report := &domain.HealthReport{
		Components: make(map[string]domain.ComponentStatus),
	}

	var mu sync.Mutex
	record := func(name string, status domain.ComponentStatus) {
		mu.Lock()
		report.Components[name] = status
		mu.Unlock()
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		record("database", probe(ctx, s.db.HealthCheck, domain.StatusUnavailable))
		return nil
	})
	g.Go(func() error {
		if s.cache == nil {
			record("cache", domain.StatusDegraded)
			return nil
		}
		record("cache", probe(ctx, s.cache.HealthCheck, domain.StatusDegraded))
		return nil
	})
	g.Go(func() error {
		svc := s.services.EmbeddingService()
		if svc == nil {
			record("embedding", domain.StatusUnavailable)
			return nil
		}
		record("embedding", probe(ctx, svc.HealthCheck, domain.StatusDegraded))
		return nil
	})
	g.Go(func() error {
		svc := s.services.RerankService()
		if svc == nil {
			record("rerank", domain.StatusDegraded)
			return nil
		}
		record("rerank", probe(ctx, svc.HealthCheck, domain.StatusDegraded))
		return nil
	})

	_ = g.Wait()

	report.Performance = s.tracker.Snapshot()
	report.Status = report.Overall()
	return report
}

// probe runs one health check with a bounded timeout, mapping failure to the
// component's failure status.
func probe(ctx context.Context, check func(context.Context) error, onFailure domain.ComponentStatus) domain.ComponentStatus {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := check(probeCtx); err != nil {
		return onFailure
	}
	return domain.StatusHealthy
}
