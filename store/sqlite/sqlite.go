/*
Package sqlite provides a SQLite-backed implementation of generic.LeaseStore.

PURPOSE:
  The HTTP server and the command-line validator may run the same week at the
  same time. Both open the same database file, so a lease taken by one is
  seen by the other. Nothing else is stored: reconciliation results live only
  in the report files.

KEY TABLES:
  week_leases: one row per week currently being validated

CONCURRENCY:
  Uses sync.Mutex for in-process serialization. Across processes the
  PRIMARY KEY on week makes the insert the arbitration point.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) and a busy timeout so a
  second process waits briefly for the writer instead of failing.

USAGE:
  store, err := sqlite.New("./data/hours.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  validator := hours.NewValidator(paths, store, logger)

SEE ALSO:
  - generic/lease.go: Interface definition
  - generic/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/hours-validator/generic"
)

// Store implements generic.LeaseStore using SQLite.
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

var _ generic.LeaseStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS week_leases (
		week TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		acquired_at TEXT NOT NULL,
		expires_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LEASES
// =============================================================================

// Acquire claims week for owner. An expired lease is taken over; an
// unexpired lease of another owner yields *generic.LeaseHeldError.
// Re-acquiring an own lease extends it.
func (s *Store) Acquire(ctx context.Context, week generic.WeekID, owner string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin lease tx: %w", err)
	}
	defer tx.Rollback()

	held, err := getLease(ctx, tx, week)
	if err != nil {
		return err
	}
	if held != nil && held.Owner != owner && !held.Expired(now) {
		return &generic.LeaseHeldError{Week: week, Owner: held.Owner}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO week_leases (week, owner, acquired_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(week) DO UPDATE SET
			owner = excluded.owner,
			acquired_at = excluded.acquired_at,
			expires_at = excluded.expires_at
	`, string(week), owner, now.Format(time.RFC3339Nano), now.Add(ttl).Format(time.RFC3339Nano))
	if err != nil {
		if isBusyError(err) {
			return &generic.LeaseHeldError{Week: week}
		}
		return fmt.Errorf("insert lease: %w", err)
	}

	return tx.Commit()
}

// Release deletes the lease if owner holds it.
func (s *Store) Release(ctx context.Context, week generic.WeekID, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM week_leases WHERE week = ? AND owner = ?`, string(week), owner)
	if err != nil {
		return fmt.Errorf("delete lease: %w", err)
	}
	return nil
}

// GetLease returns the stored lease for week, expired or not. Nil if none.
func (s *Store) GetLease(ctx context.Context, week generic.WeekID) (*generic.Lease, error) {
	return getLease(ctx, s.db, week)
}

// =============================================================================
// HELPERS
// =============================================================================

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getLease(ctx context.Context, q queryRower, week generic.WeekID) (*generic.Lease, error) {
	var owner, acquired, expires string
	err := q.QueryRowContext(ctx,
		`SELECT owner, acquired_at, expires_at FROM week_leases WHERE week = ?`, string(week),
	).Scan(&owner, &acquired, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query lease: %w", err)
	}

	l := &generic.Lease{Week: week, Owner: owner}
	if l.AcquiredAt, err = time.Parse(time.RFC3339Nano, acquired); err != nil {
		return nil, fmt.Errorf("parse acquired_at: %w", err)
	}
	if l.ExpiresAt, err = time.Parse(time.RFC3339Nano, expires); err != nil {
		return nil, fmt.Errorf("parse expires_at: %w", err)
	}
	return l, nil
}

func isBusyError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}
