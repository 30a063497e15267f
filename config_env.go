package goSession

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by [LoadConfigFromEnv].
const (
	EnvLifetime          = "GOSESSION_LIFETIME"
	EnvIDBytes           = "GOSESSION_ID_BYTES"
	EnvHashAlgorithm     = "GOSESSION_HASH_ALGORITHM"
	EnvRedisPrefix       = "GOSESSION_REDIS_PREFIX"
	EnvRedisRetentionTTL = "GOSESSION_REDIS_RETENTION_TTL"
	EnvCookieName        = "GOSESSION_COOKIE_NAME"
	EnvCookieDomain      = "GOSESSION_COOKIE_DOMAIN"
	EnvCookieSecure      = "GOSESSION_COOKIE_SECURE"
	EnvCookieSameSite    = "GOSESSION_COOKIE_SAMESITE"
	EnvAuditEnabled      = "GOSESSION_AUDIT_ENABLED"
	EnvAuditBufferSize   = "GOSESSION_AUDIT_BUFFER_SIZE"
	EnvMetricsEnabled    = "GOSESSION_METRICS_ENABLED"
)

// LoadConfigFromEnv overlays GOSESSION_* variables on [DefaultConfig].
// Unset variables keep their defaults; a set but unparsable variable is
// an error naming the variable. The result is validated.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile decodes a YAML file over [DefaultConfig], then applies
// GOSESSION_* overrides, then validates. Durations use Go syntax ("24h").
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if err := envDuration(EnvLifetime, &cfg.Session.Lifetime); err != nil {
		return err
	}
	if err := envInt(EnvIDBytes, &cfg.Session.IDBytes); err != nil {
		return err
	}
	envString(EnvHashAlgorithm, &cfg.Session.HashAlgorithm)

	envString(EnvRedisPrefix, &cfg.Redis.Prefix)
	if err := envDuration(EnvRedisRetentionTTL, &cfg.Redis.RetentionTTL); err != nil {
		return err
	}

	envString(EnvCookieName, &cfg.Cookie.Name)
	envString(EnvCookieDomain, &cfg.Cookie.Domain)
	if err := envBool(EnvCookieSecure, &cfg.Cookie.Secure); err != nil {
		return err
	}
	if v := strings.TrimSpace(os.Getenv(EnvCookieSameSite)); v != "" {
		ss, err := parseSameSite(v)
		if err != nil {
			return envError(EnvCookieSameSite, err)
		}
		cfg.Cookie.SameSite = ss
	}

	if err := envBool(EnvAuditEnabled, &cfg.Audit.Enabled); err != nil {
		return err
	}
	if err := envInt(EnvAuditBufferSize, &cfg.Audit.BufferSize); err != nil {
		return err
	}
	if err := envBool(EnvMetricsEnabled, &cfg.Metrics.Enabled); err != nil {
		return err
	}
	if !cfg.Metrics.Enabled {
		cfg.Metrics.EnableLatencyHistograms = false
	}
	return nil
}

func envString(key string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func envDuration(key string, dst *time.Duration) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return envError(key, err)
	}
	*dst = d
	return nil
}

func envInt(key string, dst *int) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return envError(key, err)
	}
	*dst = n
	return nil
}

func envBool(key string, dst *bool) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return envError(key, err)
	}
	*dst = b
	return nil
}

func envError(key string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
}

func parseSameSite(v string) (http.SameSite, error) {
	switch strings.ToLower(v) {
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	case "default":
		return http.SameSiteDefaultMode, nil
	default:
		return 0, fmt.Errorf("unknown SameSite %q", v)
	}
}
