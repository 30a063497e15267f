package main

import (
	"context"
	"database/sql"
	"fmt"

	goSession "github.com/MrEthical07/goSession"
	"github.com/MrEthical07/goSession/session"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
)

type backend struct {
	store session.Store
	close func()
}

func openBackend(ctx context.Context, driver, dsn string, cfg goSession.Config, ensureTable bool) (*backend, error) {
	switch driver {
	case "postgres":
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if ensureTable {
			if _, err := pool.Exec(ctx, session.PostgresSchema); err != nil {
				pool.Close()
				return nil, fmt.Errorf("create postgres table: %w", err)
			}
		}
		store, err := session.NewPostgresStore(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &backend{store: store, close: pool.Close}, nil

	case string(session.DialectSQLite), string(session.DialectMySQL):
		db, err := sql.Open(driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", driver, err)
		}
		store, err := session.NewSQLStore(db, session.Dialect(driver))
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if ensureTable {
			if err := store.EnsureTable(ctx); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &backend{store: store, close: func() { _ = db.Close() }}, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: dsn})
		store := session.NewRedisStore(rdb, cfg.Redis.Prefix, cfg.Redis.RetentionTTL)
		return &backend{store: store, close: func() { _ = rdb.Close() }}, nil

	default:
		return nil, fmt.Errorf("unknown driver %q", driver)
	}
}
