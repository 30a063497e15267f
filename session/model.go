package session

import "time"

// Record is the persisted form of a session: the public id, the digest of
// the secret half of the token, and the issuance time. The raw secret is
// never part of a Record.
//
// Records are written once and never updated in place.
type Record struct {
	ID         string
	SecretHash [32]byte
	CreatedAt  time.Time
}

// ExpiredAt reports whether r is past lifetime at now. A record whose age
// equals lifetime is already expired.
func (r Record) ExpiredAt(now time.Time, lifetime time.Duration) bool {
	return now.Sub(r.CreatedAt) >= lifetime
}
