package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

var pgIdentRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresSchema is the table layout expected by [PostgresStore] with the
// default table name.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	secret_hash BYTEA NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_created_at_idx ON sessions (created_at);
`

// PgxQuerier is the subset of pgx used by [PostgresStore]. *pgxpool.Pool,
// *pgx.Conn and pgx.Tx all satisfy it.
type PgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements [Store] over PostgreSQL.
//
// The pool is owned by the caller; this store never closes it.
type PostgresStore struct {
	db    PgxQuerier
	table string
}

// PostgresOption configures a [PostgresStore].
type PostgresOption func(*PostgresStore) error

// WithTable sets the (optionally schema-qualified) table name, default
// "sessions". Each dotted part must be a plain identifier.
func WithTable(table string) PostgresOption {
	return func(s *PostgresStore) error {
		table = strings.TrimSpace(table)
		if table == "" {
			return errors.New("session: empty table name")
		}
		parts := strings.Split(table, ".")
		if len(parts) > 2 {
			return errors.New("session: invalid table identifier")
		}
		for _, p := range parts {
			if !pgIdentRe.MatchString(p) {
				return errors.New("session: invalid table identifier")
			}
		}
		s.table = table
		return nil
	}
}

// NewPostgresStore creates a Postgres-backed session store.
func NewPostgresStore(db PgxQuerier, opts ...PostgresOption) (*PostgresStore, error) {
	st := &PostgresStore{db: db, table: "sessions"}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(st); err != nil {
			return nil, err
		}
	}
	if st.db == nil {
		return nil, errors.New("session: nil pool")
	}
	return st, nil
}

func (s *PostgresStore) Create(ctx context.Context, rec Record) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO `+s.table+` (id, secret_hash, created_at) VALUES ($1, $2, $3)`,
		rec.ID, rec.SecretHash[:], rec.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (Record, bool, error) {
	var (
		rec  Record
		hash []byte
	)
	err := s.db.QueryRow(ctx,
		`SELECT id, secret_hash, created_at FROM `+s.table+` WHERE id = $1`,
		id,
	).Scan(&rec.ID, &hash, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(hash) != len(rec.SecretHash) {
		return Record{}, false, fmt.Errorf("%w: secret_hash has %d bytes", ErrCorrupt, len(hash))
	}
	copy(rec.SecretHash[:], hash)
	return rec, true, nil
}

func (s *PostgresStore) DeleteByID(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM `+s.table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) PurgeCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM `+s.table+` WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return tag.RowsAffected(), nil
}
