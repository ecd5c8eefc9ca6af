package metrics

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Xyon15/Hardware-Monitor/internal/config"
	"github.com/Xyon15/Hardware-Monitor/internal/domain"
	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
	"github.com/Xyon15/Hardware-Monitor/internal/logger"
)

// CachedReader owns the service's only mutable state: the last snapshot and
// its timestamps. Hardware queries are comparatively expensive, so reads are
// throttled to one refresh per MinRefreshInterval; within the window every
// caller gets the cached snapshot. A failed refresh never surfaces to the
// caller, it just keeps serving the previous snapshot.
type CachedReader struct {
	provider  hardware.Provider
	extractor *Extractor
	log       logger.Logger

	minInterval  time.Duration
	healthWindow time.Duration

	group singleflight.Group

	mu          sync.Mutex
	snapshot    domain.Snapshot
	lastAttempt time.Time
	lastSuccess time.Time
	lastFailure time.Time
	failures    int

	now func() time.Time
}

func NewCachedReader(provider hardware.Provider, extractor *Extractor, cfg *config.Config, log logger.Logger) *CachedReader {
	return &CachedReader{
		provider:     provider,
		extractor:    extractor,
		log:          log,
		minInterval:  cfg.MinRefreshInterval,
		healthWindow: cfg.HealthWindow,
		now:          time.Now,
	}
}

// Get returns the current snapshot, refreshing the sensors first when the
// minimum interval has elapsed. Concurrent callers during an in-flight
// refresh are collapsed onto it and all receive its result.
func (r *CachedReader) Get(ctx context.Context) domain.Snapshot {
	if snap, ok := r.cached(); ok {
		return snap
	}

	v, _, _ := r.group.Do("refresh", func() (any, error) {
		// A caller that lost the race to a just-finished refresh must not
		// trigger another one.
		if snap, ok := r.cached(); ok {
			return snap, nil
		}
		return r.refresh(ctx), nil
	})

	return v.(domain.Snapshot)
}

// Healthy reports whether the service has usable readings. A success within
// the health window is healthy; an older success still is as long as
// refreshes have not been failing since (slow polling is not an outage).
// Only a service that never produced a reading, or has been failing past the
// window, degrades.
func (r *CachedReader) Healthy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lastSuccess.IsZero() {
		return false
	}
	if r.now().Sub(r.lastSuccess) <= r.healthWindow {
		return true
	}
	return !r.lastFailure.After(r.lastSuccess)
}

func (r *CachedReader) cached() (domain.Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.lastAttempt.IsZero() && r.now().Sub(r.lastAttempt) < r.minInterval {
		return r.snapshot, true
	}
	return domain.Snapshot{}, false
}

func (r *CachedReader) refresh(ctx context.Context) domain.Snapshot {
	now := r.now()

	if err := r.provider.Refresh(ctx); err != nil {
		r.mu.Lock()
		r.lastAttempt = now
		r.lastFailure = now
		r.failures++
		snap := r.snapshot
		failures := r.failures
		r.mu.Unlock()

		r.log.Warn("sensor refresh failed, serving cached snapshot",
			"error", err,
			"consecutive_failures", failures,
		)
		return snap
	}

	snap := r.extractor.Extract(r.provider.Enumerate())

	r.mu.Lock()
	r.snapshot = snap
	r.lastAttempt = now
	r.lastSuccess = now
	r.failures = 0
	r.mu.Unlock()

	return snap
}
