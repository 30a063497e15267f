package goSession

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is the single outcome for every soft validation
	// failure: malformed token, unknown id, secret mismatch or expiry.
	// Callers must not be able to tell these apart.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionNotFound is returned by GetSession for absent or expired
	// sessions. It matches ErrNotAuthenticated under errors.Is.
	ErrSessionNotFound = fmt.Errorf("session not found: %w", ErrNotAuthenticated)
	// ErrEngineNotReady is returned by methods on a nil or unbuilt Manager.
	ErrEngineNotReady = errors.New("session manager not initialized")
	// ErrPurgeUnsupported is returned by PurgeExpired when the store cannot bulk-delete.
	ErrPurgeUnsupported = errors.New("store does not support purging expired sessions")
	// ErrInvalidConfig prefixes every Config.Validate failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrStoreRequired is returned by Build when no store was supplied.
	ErrStoreRequired = errors.New("session store required")
	// ErrBuilderUsed is returned by a second Build on the same Builder.
	ErrBuilderUsed = errors.New("builder already used")
)
