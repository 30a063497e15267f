package goSession

import "context"

type sessionContextKey struct{}

// WithSession attaches a validated session to ctx. The middleware package
// calls it after a successful ValidateSessionToken.
//
//	Docs: docs/middleware.md
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext returns the session stored by [WithSession].
func SessionFromContext(ctx context.Context) (*Session, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	return s, ok && s != nil
}
