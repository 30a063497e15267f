// Package session defines the persistence contract for opaque-token sessions and
// ships the backends that implement it.
//
// # Backends
//
//   - [RedisStore]: one key per session holding a compact binary blob ([Encode]).
//   - [PostgresStore]: pgx, one row per session.
//   - [SQLStore]: database/sql for SQLite and MySQL.
//   - [MemoryStore]: in-process map for tests and single-node use.
//
// # Binary encoding
//
// Key-value backends store [Record] as a fixed 41-byte layout: a version byte, the
// 32-byte secret hash and the creation time in unix nanoseconds. The id is the key.
//
// # Architecture boundaries
//
// This package owns storage only. It does NOT parse tokens, hash secrets or decide
// expiry; those belong to the Manager in the root package.
//
// # What this package must NOT do
//
//   - Import goSession (no upward imports).
//   - Store the raw secret half of a token.
//   - Apply schema migrations to existing tables.
package session
