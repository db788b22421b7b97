package data

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anthropics/agent-dashboard/internal/biz/domain"
	"github.com/anthropics/agent-dashboard/internal/biz/repo"
)

const defaultCacheTTL = 5 * time.Second

// CachedBackend wraps a BackendRepo with one bounded-staleness cache
// entry per endpoint. Each entry holds the last good snapshot and the
// time it was retrieved; within the TTL the entry is served without a
// network call. A failed refresh returns domain.ErrUnavailable and
// leaves the previous entry untouched, so a failure never extends the
// life of stale data beyond its original TTL.
type CachedBackend struct {
	backend repo.BackendRepo
	ttl     time.Duration
	now     func() time.Time

	statsMu sync.Mutex
	stats   *domain.StatsSnapshot
	statsAt time.Time

	apptsMu sync.Mutex
	appts   *domain.AppointmentsSnapshot
	apptsAt time.Time
}

// NewCachedBackend wraps a backend with per-endpoint TTL caching
func NewCachedBackend(backend repo.BackendRepo, ttl time.Duration) *CachedBackend {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedBackend{
		backend: backend,
		ttl:     ttl,
		now:     time.Now,
	}
}

// FetchStats returns the cached stats snapshot when fresh, otherwise
// issues one retrieval
func (c *CachedBackend) FetchStats(ctx context.Context) (*domain.StatsSnapshot, error) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()

	if c.stats != nil && c.now().Sub(c.statsAt) < c.ttl {
		return c.stats, nil
	}

	snapshot, err := c.backend.FetchStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	c.stats = snapshot
	c.statsAt = c.now()
	return snapshot, nil
}

// FetchAppointments returns the cached appointments snapshot when fresh,
// otherwise issues one retrieval
func (c *CachedBackend) FetchAppointments(ctx context.Context) (*domain.AppointmentsSnapshot, error) {
	c.apptsMu.Lock()
	defer c.apptsMu.Unlock()

	if c.appts != nil && c.now().Sub(c.apptsAt) < c.ttl {
		return c.appts, nil
	}

	snapshot, err := c.backend.FetchAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	c.appts = snapshot
	c.apptsAt = c.now()
	return snapshot, nil
}

// Healthy is a passthrough; health probes are never cached
func (c *CachedBackend) Healthy(ctx context.Context) bool {
	return c.backend.Healthy(ctx)
}
