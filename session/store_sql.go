package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Dialect selects placeholder style and duplicate-key detection for [SQLStore].
type Dialect string

const (
	DialectSQLite Dialect = "sqlite3"
	DialectMySQL  Dialect = "mysql"
)

// SQLiteSchema is the table layout for [SQLStore] on SQLite.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	secret_hash BLOB NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at);
`

// MySQLSchema is the table layout for [SQLStore] on MySQL.
const MySQLSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          VARCHAR(128) PRIMARY KEY,
	secret_hash BINARY(32) NOT NULL,
	created_at  BIGINT NOT NULL,
	INDEX idx_sessions_created_at (created_at)
)`

// SQLStore implements [Store] over database/sql. created_at is stored as
// unix nanoseconds so both dialects round-trip it exactly.
//
// The *sql.DB is owned by the caller. The driver must be registered by the
// importing binary (mattn/go-sqlite3 or go-sql-driver/mysql).
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLStore wraps db for the given dialect.
func NewSQLStore(db *sql.DB, dialect Dialect) (*SQLStore, error) {
	if db == nil {
		return nil, errors.New("session: nil sql.DB")
	}
	switch dialect {
	case DialectSQLite, DialectMySQL:
	default:
		return nil, fmt.Errorf("session: unsupported sql dialect %q", dialect)
	}
	return &SQLStore{db: db, dialect: dialect}, nil
}

// EnsureTable creates the sessions table when missing. It never alters an
// existing table.
func (s *SQLStore) EnsureTable(ctx context.Context) error {
	ddl := SQLiteSchema
	if s.dialect == DialectMySQL {
		ddl = MySQLSchema
	}
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *SQLStore) Create(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, secret_hash, created_at) VALUES (?, ?, ?)`,
		rec.ID, rec.SecretHash[:], rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *SQLStore) FindByID(ctx context.Context, id string) (Record, bool, error) {
	var (
		rec     Record
		hash    []byte
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, secret_hash, created_at FROM sessions WHERE id = ?`, id,
	).Scan(&rec.ID, &hash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(hash) != len(rec.SecretHash) {
		return Record{}, false, fmt.Errorf("%w: secret_hash has %d bytes", ErrCorrupt, len(hash))
	}
	copy(rec.SecretHash[:], hash)
	rec.CreatedAt = time.Unix(0, created).UTC()
	return rec, true, nil
}

func (s *SQLStore) DeleteByID(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) PurgeCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE created_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n, nil
}

func (s *SQLStore) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.db.PingContext(ctx); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return time.Since(start), nil
}

// isDuplicateKey matches the primary key violation text of sqlite3
// ("UNIQUE constraint failed") and MySQL error 1062 ("Duplicate entry").
func isDuplicateKey(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "Error 1062")
}
