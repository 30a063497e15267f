package goSession

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MrEthical07/goSession/internal"
	"github.com/MrEthical07/goSession/session"
)

const (
	// DefaultSessionLifetime is the fixed validity window measured from creation.
	DefaultSessionLifetime = 24 * time.Hour
	// DefaultIDBytes is the random byte count behind each token half.
	DefaultIDBytes = internal.DefaultRandomBytes
	// DefaultHashAlgorithm digests the secret half of the token.
	DefaultHashAlgorithm = internal.HashSHA256
	// DefaultCookieName carries the token when the bearer header is absent.
	DefaultCookieName = "__Host-session"

	minIDBytes = 16
	maxIDBytes = 64
)

// Supported values for [SessionConfig.HashAlgorithm].
const (
	HashSHA256     = internal.HashSHA256
	HashSHA3_256   = internal.HashSHA3_256
	HashBLAKE2b256 = internal.HashBLAKE2b256
)

// Config is the full Manager configuration. Start from [DefaultConfig],
// [LoadConfigFromEnv] or [LoadConfigFile] and adjust fields before passing
// it to [Builder.WithConfig].
//
// Config instances are treated as immutable once a Manager is built.
type Config struct {
	Session SessionConfig `yaml:"session"`
	Redis   RedisConfig   `yaml:"redis"`
	Cookie  CookieConfig  `yaml:"cookie"`
	Audit   AuditConfig   `yaml:"audit"`
	Metrics MetricsConfig `yaml:"metrics"`
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls token shape and expiry.
type SessionConfig struct {
	// Lifetime is measured from CreatedAt; sessions never slide.
	Lifetime time.Duration `yaml:"lifetime"`
	// IDBytes is the random byte count for the id and for the secret. One
	// byte becomes one token character.
	IDBytes int `yaml:"id_bytes"`
	// HashAlgorithm is "sha256" (default), "sha3-256" or "blake2b-256".
	// Changing it invalidates every existing session.
	HashAlgorithm string `yaml:"hash_algorithm"`
}

/*
====================================
REDIS CONFIG
====================================
*/

// RedisConfig applies when the Manager is built with [Builder.WithRedis].
type RedisConfig struct {
	Prefix string `yaml:"prefix"`
	// RetentionTTL, when positive, is set as the key TTL so never-read
	// sessions are reclaimed by Redis. Must be >= Session.Lifetime.
	RetentionTTL time.Duration `yaml:"retention_ttl"`
}

/*
====================================
COOKIE CONFIG
====================================
*/

// CookieConfig shapes the session cookie written by the middleware helpers.
type CookieConfig struct {
	Name     string        `yaml:"name"`
	Path     string        `yaml:"path"`
	Domain   string        `yaml:"domain"`
	Secure   bool          `yaml:"secure"`
	SameSite http.SameSite `yaml:"same_site"`
}

/*
====================================
OBSERVABILITY CONFIG
====================================
*/

type AuditConfig struct {
	Enabled    bool `yaml:"enabled"`
	BufferSize int  `yaml:"buffer_size"`
	DropIfFull bool `yaml:"drop_if_full"`
}

type MetricsConfig struct {
	Enabled                 bool `yaml:"enabled"`
	EnableLatencyHistograms bool `yaml:"enable_latency_histograms"`
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the baseline configuration: 24h lifetime, 24-byte
// ids and secrets, sha256, metrics on, audit off.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			Lifetime:      DefaultSessionLifetime,
			IDBytes:       DefaultIDBytes,
			HashAlgorithm: DefaultHashAlgorithm,
		},
		Redis: RedisConfig{
			Prefix: session.DefaultRedisPrefix,
		},
		Cookie: CookieConfig{
			Name:     DefaultCookieName,
			Path:     "/",
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: true,
		},
	}
}

// cloneConfig copies cfg. Config holds no reference types, so a value copy
// is already deep.
func cloneConfig(cfg Config) Config {
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate reports the first invalid field. Every error wraps [ErrInvalidConfig].
func (c *Config) Validate() error {
	// Session
	if c.Session.Lifetime <= 0 {
		return invalidConfig("Session Lifetime must be > 0")
	}
	if c.Session.IDBytes < minIDBytes || c.Session.IDBytes > maxIDBytes {
		return invalidConfig(fmt.Sprintf("Session IDBytes must be in [%d, %d]", minIDBytes, maxIDBytes))
	}
	if !internal.ValidHashAlgorithm(c.Session.HashAlgorithm) {
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, internal.ErrUnknownHashAlgorithm, c.Session.HashAlgorithm)
	}

	// Redis
	if strings.ContainsAny(c.Redis.Prefix, " \t\r\n") {
		return invalidConfig("Redis Prefix must not contain whitespace")
	}
	if c.Redis.RetentionTTL < 0 {
		return invalidConfig("Redis RetentionTTL must be >= 0")
	}
	if c.Redis.RetentionTTL > 0 && c.Redis.RetentionTTL < c.Session.Lifetime {
		return invalidConfig("Redis RetentionTTL must be >= Session Lifetime")
	}

	// Cookie
	if strings.TrimSpace(c.Cookie.Name) == "" {
		return invalidConfig("Cookie Name must not be empty")
	}
	if strings.HasPrefix(c.Cookie.Name, "__Host-") {
		if !c.Cookie.Secure || c.Cookie.Domain != "" || c.Cookie.Path != "/" {
			return invalidConfig("__Host- cookies require Secure, Path \"/\" and no Domain")
		}
	}
	if strings.HasPrefix(c.Cookie.Name, "__Secure-") && !c.Cookie.Secure {
		return invalidConfig("__Secure- cookies require Secure")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return invalidConfig("Audit BufferSize must be > 0 when enabled")
	}

	// Metrics
	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return invalidConfig("Metrics EnableLatencyHistograms requires Metrics Enabled")
	}

	return nil
}

func invalidConfig(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}

/*
====================================
LINT
====================================
*/

// LintWarning is a valid but questionable setting.
type LintWarning struct {
	Code    string
	Message string
}

// LintWarnings is the result of [Config.Lint].
type LintWarnings []LintWarning

// Codes returns the warning codes in order.
func (ws LintWarnings) Codes() []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Code)
	}
	return out
}

// Lint returns advisory warnings for a config that passes [Config.Validate].
func (c Config) Lint() LintWarnings {
	var ws LintWarnings
	add := func(code, msg string) {
		ws = append(ws, LintWarning{Code: code, Message: msg})
	}

	if c.Session.Lifetime > 30*24*time.Hour {
		add("long_lifetime", "Session Lifetime above 30 days widens the window for stolen tokens")
	}
	if c.Session.Lifetime < time.Minute {
		add("short_lifetime", "Session Lifetime under a minute will reject most sessions on first use")
	}
	if c.Session.IDBytes < DefaultIDBytes {
		add("short_secret", "Session IDBytes below 24 reduces secret entropy")
	}
	if c.Redis.RetentionTTL == 0 {
		add("no_redis_retention", "Redis keys never expire; run PurgeExpired periodically")
	}
	if !c.Cookie.Secure {
		add("insecure_cookie", "Cookie Secure is off; tokens may travel over plain HTTP")
	}
	if !c.Audit.Enabled {
		add("audit_disabled", "Audit events are disabled")
	}
	if c.Audit.Enabled && !c.Audit.DropIfFull {
		add("audit_blocking", "Audit DropIfFull is off; a slow sink will block session operations")
	}
	return ws
}
