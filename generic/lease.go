/*
lease.go - Per-week lease interface

PURPOSE:
  Two runs for the same week read the same inputs and overwrite the same
  report files. Instead of letting the last writer win silently, a run holds
  a lease on its week for the duration of the run. A second run for that
  week fails fast with ErrWeekLocked. Runs for different weeks never contend.

EXPIRY:
  Every lease carries a TTL. A run that crashes without releasing its lease
  blocks the week only until the TTL elapses.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: shared between the server and the CLI
  - generic/store/memory.go: in-process, for tests

EXAMPLE:
  if err := leases.Acquire(ctx, week, runID, 5*time.Minute); err != nil {
      return err // *LeaseHeldError when another run owns the week
  }
  defer leases.Release(ctx, week, runID)

SEE ALSO:
  - hours/validation.go: Acquires a lease around every run
*/
package generic

import (
	"context"
	"time"
)

// LeaseStore grants exclusive, expiring ownership of a week.
type LeaseStore interface {
	// Acquire claims week for owner. Returns *LeaseHeldError when another
	// owner holds an unexpired lease.
	Acquire(ctx context.Context, week WeekID, owner string, ttl time.Duration) error

	// Release gives the week back. Releasing a lease owned by someone else
	// (or no lease at all) is a no-op.
	Release(ctx context.Context, week WeekID, owner string) error
}

// Lease is a stored claim on a week.
type Lease struct {
	Week       WeekID
	Owner      string
	AcquiredAt time.Time
	ExpiresAt  time.Time
}

// Expired reports whether the lease no longer blocks other owners at now.
func (l Lease) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}
