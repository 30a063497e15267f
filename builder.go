package goSession

import (
	"errors"
	"log/slog"
	"time"

	"github.com/MrEthical07/goSession/session"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a [Manager]. Configure it with the With* methods and
// call Build exactly once.
//
// Builder instances are intended to be configured during initialization and then discarded.
type Builder struct {
	config Config

	store     session.Store
	redis     redis.UniversalClient
	postgres  session.PgxQuerier
	pgOptions []session.PostgresOption

	clock     func() time.Time
	logger    *slog.Logger
	auditSink AuditSink

	built bool
}

// New starts a Builder from [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStore injects any [session.Store] implementation.
//
//	Docs: docs/session.md
func (b *Builder) WithStore(store session.Store) *Builder {
	b.store = store
	return b
}

// WithRedis backs the Manager with a [session.RedisStore] using
// Config.Redis for prefix and retention.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithPostgres backs the Manager with a [session.PostgresStore]. db is
// usually a *pgxpool.Pool.
func (b *Builder) WithPostgres(db session.PgxQuerier, opts ...session.PostgresOption) *Builder {
	b.postgres = db
	b.pgOptions = opts
	return b
}

// WithClock overrides time.Now, for tests and simulations.
func (b *Builder) WithClock(clock func() time.Time) *Builder {
	b.clock = clock
	return b
}

// WithLogger sets the structured logger. The default discards everything.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithAuditSink sets the sink used when Config.Audit.Enabled is true.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, resolves exactly one store and
// returns a ready Manager. A Builder cannot be reused.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := b.resolveStore(cfg)
	if err != nil {
		return nil, err
	}

	clock := b.clock
	if clock == nil {
		clock = time.Now
	}
	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	b.built = true

	return &Manager{
		cfg:     cfg,
		store:   store,
		clock:   clock,
		logger:  logger.With("component", "gosession"),
		metrics: NewMetrics(cfg.Metrics),
		audit:   newAuditDispatcher(cfg.Audit, b.auditSink),
	}, nil
}

func (b *Builder) resolveStore(cfg Config) (session.Store, error) {
	configured := 0
	for _, set := range []bool{b.store != nil, b.redis != nil, b.postgres != nil} {
		if set {
			configured++
		}
	}
	switch {
	case configured == 0:
		return nil, ErrStoreRequired
	case configured > 1:
		return nil, errors.New("exactly one of WithStore, WithRedis or WithPostgres may be set")
	}

	switch {
	case b.store != nil:
		return b.store, nil
	case b.redis != nil:
		return session.NewRedisStore(b.redis, cfg.Redis.Prefix, cfg.Redis.RetentionTTL), nil
	default:
		return session.NewPostgresStore(b.postgres, b.pgOptions...)
	}
}
