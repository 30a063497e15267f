package goSession

import (
	"fmt"
	"time"

	"github.com/MrEthical07/goSession/session"
)

// SecurityReport summarizes the effective security posture of a Manager.
// It holds no secrets and is safe to log or expose on an admin endpoint.
type SecurityReport struct {
	Lifetime       time.Duration
	IDBytes        int
	SecretBits     int
	HashAlgorithm  string
	StoreType      string
	Purgeable      bool
	CookieName     string
	CookieSecure   bool
	CookieHostOnly bool
	AuditEnabled   bool
	MetricsEnabled bool
	LintWarnings   []string
}

// SecurityReport returns the posture of m. Each token half carries
// IDBytes*5 bits of entropy.
func (m *Manager) SecurityReport() SecurityReport {
	if m == nil {
		return SecurityReport{}
	}

	hashAlg := m.cfg.Session.HashAlgorithm
	if hashAlg == "" {
		hashAlg = DefaultHashAlgorithm
	}
	_, purgeable := m.store.(session.Purger)

	return SecurityReport{
		Lifetime:       m.cfg.Session.Lifetime,
		IDBytes:        m.cfg.Session.IDBytes,
		SecretBits:     m.cfg.Session.IDBytes * 5,
		HashAlgorithm:  hashAlg,
		StoreType:      fmt.Sprintf("%T", m.store),
		Purgeable:      purgeable,
		CookieName:     m.cfg.Cookie.Name,
		CookieSecure:   m.cfg.Cookie.Secure,
		CookieHostOnly: m.cfg.Cookie.Domain == "",
		AuditEnabled:   m.audit != nil,
		MetricsEnabled: m.metrics.Enabled(),
		LintWarnings:   m.cfg.Lint().Codes(),
	}
}
