package goSession

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/MrEthical07/goSession/internal"
	"github.com/MrEthical07/goSession/internal/audit"
	"github.com/MrEthical07/goSession/session"
)

// Manager issues, validates and revokes opaque session tokens against an
// injected [session.Store]. It is immutable after [Builder.Build] and safe
// for concurrent use.
//
//	Docs: docs/session.md
type Manager struct {
	cfg     Config
	store   session.Store
	clock   func() time.Time
	logger  *slog.Logger
	metrics *Metrics
	audit   *audit.Dispatcher
}

func (m *Manager) now() time.Time {
	return m.clock()
}

func (m *Manager) ready() bool {
	return m != nil && m.store != nil && m.clock != nil
}

// CreateSession issues a new session. The id and secret are drawn
// independently; only the secret's digest is persisted. The returned Token
// is the only copy of the secret.
//
//	Performance: 1 store write.
func (m *Manager) CreateSession(ctx context.Context) (*SessionWithToken, error) {
	if !m.ready() {
		return nil, ErrEngineNotReady
	}

	n := m.cfg.Session.IDBytes
	id := internal.GenerateSecureRandomString(n)
	secret := internal.GenerateSecureRandomString(n)

	out := &SessionWithToken{
		Session: Session{
			ID:         id,
			SecretHash: internal.HashSecret(m.cfg.Session.HashAlgorithm, secret),
			CreatedAt:  m.now(),
		},
		Token: internal.FormatToken(id, secret),
	}

	if err := m.store.Create(ctx, out.Session.record()); err != nil {
		m.storeFailure(ctx, "session.create.store_failed", id, err)
		return nil, err
	}

	m.metrics.Inc(MetricSessionCreated)
	m.emitAudit(ctx, AuditSessionCreated, id, true, "", nil)
	return out, nil
}

// ValidateSessionToken resolves a bearer token to its session. Every soft
// failure returns [ErrNotAuthenticated]; hard store errors are returned
// unchanged. A token that is not exactly two dot-separated parts never
// reaches the store.
//
//	Performance: 0 store calls for malformed tokens, 1 read otherwise,
//	plus 1 delete when the session has expired.
func (m *Manager) ValidateSessionToken(ctx context.Context, token string) (*Session, error) {
	if !m.ready() {
		return nil, ErrEngineNotReady
	}
	if m.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() { m.metrics.Observe(MetricValidateLatency, time.Since(start)) }()
	}

	id, secret, ok := internal.ParseToken(token)
	if !ok {
		m.reject(ctx, MetricValidateMalformed, "", reasonMalformed)
		return nil, ErrNotAuthenticated
	}

	sess, reason, err := m.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		m.reject(ctx, MetricValidateNotFound, id, reason)
		return nil, ErrNotAuthenticated
	}

	hash := internal.HashSecret(m.cfg.Session.HashAlgorithm, secret)
	if !internal.ConstantTimeEqual(hash[:], sess.SecretHash[:]) {
		m.reject(ctx, MetricValidateMismatch, id, reasonMismatch)
		return nil, ErrNotAuthenticated
	}

	m.metrics.Inc(MetricValidateSuccess)
	return sess, nil
}

// GetSession loads the session with the given id. Absent and expired
// sessions both yield [ErrSessionNotFound]; an expired record is deleted
// on the way out.
func (m *Manager) GetSession(ctx context.Context, id string) (*Session, error) {
	if !m.ready() {
		return nil, ErrEngineNotReady
	}
	sess, _, err := m.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// lookup returns the live session, or nil with the reason it is not live.
func (m *Manager) lookup(ctx context.Context, id string) (*Session, string, error) {
	rec, found, err := m.store.FindByID(ctx, id)
	if err != nil {
		m.storeFailure(ctx, "session.lookup.store_failed", id, err)
		return nil, "", err
	}
	if !found {
		return nil, reasonNotFound, nil
	}

	if rec.ExpiredAt(m.now(), m.cfg.Session.Lifetime) {
		m.expire(ctx, id)
		return nil, reasonExpired, nil
	}
	return sessionFromRecord(rec), "", nil
}

// expire deletes an expired record. Failures are logged and counted but
// never change the caller's outcome.
func (m *Manager) expire(ctx context.Context, id string) {
	m.metrics.Inc(MetricSessionExpired)

	err := m.store.DeleteByID(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrNotFound):
		m.logger.DebugContext(ctx, "session.expire.already_deleted", "session_id", id)
	default:
		m.metrics.Inc(MetricExpireCleanupFailed)
		m.logger.WarnContext(ctx, "session.expire.cleanup_failed", "session_id", id, "error", err)
	}

	m.emitAudit(ctx, AuditSessionExpired, id, err == nil, reasonExpired, nil)
}

// DeleteSession revokes the session with the given id. Deleting a session
// that does not exist is a no-op. Other store errors are returned.
func (m *Manager) DeleteSession(ctx context.Context, id string) error {
	if !m.ready() {
		return ErrEngineNotReady
	}

	err := m.store.DeleteByID(ctx, id)
	switch {
	case err == nil:
		m.metrics.Inc(MetricSessionDeleted)
		m.emitAudit(ctx, AuditSessionDeleted, id, true, "", nil)
		return nil
	case errors.Is(err, session.ErrNotFound):
		m.metrics.Inc(MetricDeleteNotFound)
		m.logger.DebugContext(ctx, "session.delete.not_found", "session_id", id)
		return nil
	default:
		m.storeFailure(ctx, "session.delete.store_failed", id, err)
		return err
	}
}

// PurgeExpired removes every record already past its lifetime. It is never
// run automatically; call it from a scheduler or cmd/gosession-reaper.
// Returns [ErrPurgeUnsupported] when the store is not a [session.Purger].
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	if !m.ready() {
		return 0, ErrEngineNotReady
	}
	p, ok := m.store.(session.Purger)
	if !ok {
		return 0, ErrPurgeUnsupported
	}

	// Records whose age equals the lifetime are already expired.
	cutoff := m.now().Add(-m.cfg.Session.Lifetime).Add(time.Nanosecond)

	n, err := p.PurgeCreatedBefore(ctx, cutoff)
	if n > 0 {
		m.metrics.Add(MetricSessionsPurged, uint64(n))
	}
	if err != nil {
		m.storeFailure(ctx, "session.purge.store_failed", "", err)
		return n, err
	}

	m.logger.InfoContext(ctx, "session.purge.done", "purged", n, "cutoff", cutoff)
	m.emitAudit(ctx, AuditSessionsPurged, "", true, "", map[string]string{
		"cutoff": cutoff.UTC().Format(time.RFC3339Nano),
	})
	return n, nil
}

// Ping reports store reachability when the store supports it, and zero
// otherwise.
func (m *Manager) Ping(ctx context.Context) (time.Duration, error) {
	if !m.ready() {
		return 0, ErrEngineNotReady
	}
	p, ok := m.store.(session.Pinger)
	if !ok {
		return 0, nil
	}
	return p.Ping(ctx)
}

// Lifetime returns the configured session lifetime.
func (m *Manager) Lifetime() time.Duration {
	if m == nil {
		return 0
	}
	return m.cfg.Session.Lifetime
}

// CookieConfig returns the cookie settings used by the middleware helpers.
func (m *Manager) CookieConfig() CookieConfig {
	if m == nil {
		return DefaultConfig().Cookie
	}
	return m.cfg.Cookie
}

// MetricsSnapshot returns a copy of the Manager's counters.
func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	if m == nil {
		return (*Metrics)(nil).Snapshot()
	}
	return m.metrics.Snapshot()
}

// Close flushes and stops the audit dispatcher. The store is owned by the
// caller and left open.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	m.audit.Close()
}

func (m *Manager) reject(ctx context.Context, metric MetricID, id, reason string) {
	m.metrics.Inc(metric)
	m.emitAudit(ctx, AuditSessionRejected, id, false, reason, nil)
}

func (m *Manager) storeFailure(ctx context.Context, event, id string, err error) {
	m.metrics.Inc(MetricStoreError)
	m.logger.ErrorContext(ctx, event, "session_id", id, "error", err)
	m.emitAudit(ctx, AuditStoreFailure, id, false, err.Error(), nil)
}
