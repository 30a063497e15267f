// Command gosession-reaper deletes expired sessions from a persistent store.
//
// Usage:
//
//	gosession-reaper -driver postgres -dsn "$DATABASE_URL" -interval 10m
//	gosession-reaper -driver sqlite3 -dsn file:sessions.db -ensure-table
//	gosession-reaper -driver redis -dsn localhost:6379
//
// With -interval 0 the reaper runs a single pass and exits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	goSession "github.com/MrEthical07/goSession"
	"github.com/MrEthical07/goSession/internal/logging"
)

func main() {
	var (
		driver      = flag.String("driver", "postgres", "store backend: postgres, sqlite3, mysql or redis")
		dsn         = flag.String("dsn", os.Getenv("GOSESSION_DSN"), "connection string or redis address")
		configPath  = flag.String("config", "", "optional YAML config file")
		interval    = flag.Duration("interval", 0, "purge interval; 0 runs once")
		ensureTable = flag.Bool("ensure-table", false, "create the sessions table when missing (sql drivers)")
		logLevel    = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Parse()

	logger := logging.New(*logLevel, os.Stderr)

	if err := run(*driver, *dsn, *configPath, *interval, *ensureTable, logger); err != nil {
		logger.Error("reaper failed", "error", err)
		os.Exit(1)
	}
}

func run(driver, dsn, configPath string, interval time.Duration, ensureTable bool, logger *slog.Logger) error {
	if dsn == "" {
		return errors.New("-dsn is required")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openBackend(ctx, driver, dsn, cfg, ensureTable)
	if err != nil {
		return err
	}
	defer backend.close()

	manager, err := goSession.New().
		WithConfig(cfg).
		WithStore(backend.store).
		WithLogger(logger).
		Build()
	if err != nil {
		return fmt.Errorf("build manager: %w", err)
	}
	defer manager.Close()

	if interval <= 0 {
		_, err := purgeOnce(ctx, manager, logger)
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := purgeOnce(ctx, manager, logger); err != nil {
			logger.Warn("purge pass failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func loadConfig(path string) (goSession.Config, error) {
	if path == "" {
		return goSession.LoadConfigFromEnv()
	}
	return goSession.LoadConfigFile(path)
}

func purgeOnce(ctx context.Context, m *goSession.Manager, logger *slog.Logger) (int64, error) {
	start := time.Now()
	n, err := m.PurgeExpired(ctx)
	if err != nil {
		return n, err
	}
	logger.Info("purge pass", "purged", n, "took", time.Since(start).Round(time.Millisecond))
	return n, nil
}
