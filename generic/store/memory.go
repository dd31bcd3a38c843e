// Package store provides LeaseStore implementations.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/warp/hours-validator/generic"
)

// =============================================================================
// MEMORY STORE - In-memory lease implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu     sync.Mutex
	leases map[generic.WeekID]generic.Lease
	now    func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		leases: make(map[generic.WeekID]generic.Lease),
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests to expire leases.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
	return m
}

// Acquire claims week for owner unless an unexpired lease of another owner exists.
// Re-acquiring an own lease extends it.
func (m *Memory) Acquire(_ context.Context, week generic.WeekID, owner string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if held, ok := m.leases[week]; ok && held.Owner != owner && !held.Expired(now) {
		return &generic.LeaseHeldError{Week: week, Owner: held.Owner}
	}

	m.leases[week] = generic.Lease{
		Week:       week,
		Owner:      owner,
		AcquiredAt: now,
		ExpiresAt:  now.Add(ttl),
	}
	return nil
}

// Release drops the lease if owner holds it.
func (m *Memory) Release(_ context.Context, week generic.WeekID, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if held, ok := m.leases[week]; ok && held.Owner == owner {
		delete(m.leases, week)
	}
	return nil
}

// Held returns the current lease for week, if any.
func (m *Memory) Held(week generic.WeekID) (generic.Lease, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leases[week]
	return l, ok
}
