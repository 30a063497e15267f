// Package goSession issues and validates opaque session tokens backed by a pluggable
// store.
//
// A token is "<id>.<secret>". The id locates the record; only a 32-byte digest of the
// secret is persisted, and candidate secrets are compared in constant time. Sessions
// have a fixed lifetime measured from creation and are removed lazily when read after
// expiry, or in bulk through [Manager.PurgeExpired].
//
// Manager methods are safe to call from multiple goroutines after [Builder.Build].
//
// # Architecture boundaries
//
// goSession is the public surface: [Manager], [Builder], [Config], [Session] and the
// metric and audit types. Token parsing, hashing and random generation live under
// internal/. Storage lives in the session sub-package behind [session.Store].
//
// # What this package must NOT do
//
//   - Return anything but [ErrNotAuthenticated] for a token that fails validation.
//   - Persist or log a session secret.
//   - Start background goroutines other than the optional audit dispatcher.
//
// # Performance contract
//
// ValidateSessionToken performs no store call for malformed tokens, one read otherwise,
// and one extra delete only when the session has expired.
package goSession
