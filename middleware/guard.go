package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	goSession "github.com/MrEthical07/goSession"
)

// SessionValidator is the part of *goSession.Manager the guards need.
type SessionValidator interface {
	ValidateSessionToken(ctx context.Context, token string) (*goSession.Session, error)
	CookieConfig() goSession.CookieConfig
}

// RequireSession rejects requests without a valid session token. The
// token is read from "Authorization: Bearer" first and the session cookie
// second. On success the session is attached with goSession.WithSession.
//
// Soft failures answer 401 without detail; store failures answer 503.
func RequireSession(v SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if v == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := TokenFromRequest(r, v.CookieConfig().Name)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			sess, err := v.ValidateSessionToken(r.Context(), token)
			if err != nil {
				status := StatusForError(err)
				http.Error(w, http.StatusText(status), status)
				return
			}

			next.ServeHTTP(w, r.WithContext(goSession.WithSession(r.Context(), sess)))
		})
	}
}

// OptionalSession attaches the session when the request carries a valid
// token and passes every request through. Store failures still answer 503.
func OptionalSession(v SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if v == nil {
				next.ServeHTTP(w, r)
				return
			}
			token, ok := TokenFromRequest(r, v.CookieConfig().Name)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := v.ValidateSessionToken(r.Context(), token)
			switch {
			case err == nil:
				r = r.WithContext(goSession.WithSession(r.Context(), sess))
			case !errors.Is(err, goSession.ErrNotAuthenticated):
				status := StatusForError(err)
				http.Error(w, http.StatusText(status), status)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// StatusForError maps a validation error to an HTTP status.
func StatusForError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, goSession.ErrNotAuthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusServiceUnavailable
	}
}

// TokenFromRequest returns the bearer token, or the value of cookieName
// when no Authorization header is present.
func TokenFromRequest(r *http.Request, cookieName string) (string, bool) {
	if h := r.Header.Get("Authorization"); h != "" {
		return bearerToken(h)
	}
	if cookieName == "" {
		return "", false
	}
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func bearerToken(value string) (string, bool) {
	const bearer = "bearer "
	if len(value) < len(bearer) || !strings.EqualFold(value[:len(bearer)], bearer) {
		return "", false
	}

	token := strings.TrimSpace(value[len(bearer):])
	if token == "" {
		return "", false
	}
	return token, true
}
