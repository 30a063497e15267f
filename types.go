package goSession

import (
	"time"

	"github.com/MrEthical07/goSession/session"
)

// Session is the server-side view of an authenticated session. SecretHash
// is the digest of the token's secret half; the raw secret is never kept.
type Session struct {
	ID         string
	SecretHash [32]byte
	CreatedAt  time.Time
}

// ExpiresAt is CreatedAt plus lifetime.
func (s *Session) ExpiresAt(lifetime time.Duration) time.Time {
	return s.CreatedAt.Add(lifetime)
}

// SessionWithToken is returned only by CreateSession. Token is the sole
// copy of the secret; hand it to the client and drop it.
type SessionWithToken struct {
	Session
	Token string
}

func sessionFromRecord(r session.Record) *Session {
	return &Session{
		ID:         r.ID,
		SecretHash: r.SecretHash,
		CreatedAt:  r.CreatedAt,
	}
}

func (s *Session) record() session.Record {
	return session.Record{
		ID:         s.ID,
		SecretHash: s.SecretHash,
		CreatedAt:  s.CreatedAt,
	}
}
