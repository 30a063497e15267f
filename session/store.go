package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by [Store.DeleteByID] when no record has the id.
var ErrNotFound = errors.New("session record not found")

// ErrDuplicate is returned by [Store.Create] when the id is already taken.
var ErrDuplicate = errors.New("session record already exists")

// ErrUnavailable wraps connectivity and driver failures from a backend.
var ErrUnavailable = errors.New("session store unavailable")

// ErrCorrupt is returned when a stored record cannot be decoded.
var ErrCorrupt = errors.New("session record corrupt")

// Store is the persistence contract consumed by the session Manager.
//
// Implementations must make each call atomic on its own; the Manager never
// needs multi-call transactions.
//
//	Docs: docs/session.md
type Store interface {
	// Create persists rec. An existing record with the same id yields ErrDuplicate.
	Create(ctx context.Context, rec Record) error
	// FindByID returns the record and true, or a zero Record and false when
	// absent. A missing record is not an error.
	FindByID(ctx context.Context, id string) (Record, bool, error)
	// DeleteByID removes the record. A missing record yields ErrNotFound.
	DeleteByID(ctx context.Context, id string) error
}

// Purger is implemented by stores that can bulk-remove records created
// before a cutoff. It backs explicit expired-record purges.
type Purger interface {
	PurgeCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Pinger is implemented by stores that can report backend reachability.
type Pinger interface {
	Ping(ctx context.Context) (time.Duration, error)
}
