package middleware

import (
	"net/http"
	"time"

	goSession "github.com/MrEthical07/goSession"
)

// SetSessionCookie issues the token as an HttpOnly cookie expiring with
// the session.
func SetSessionCookie(w http.ResponseWriter, cfg goSession.CookieConfig, token string, expiresAt time.Time) {
	http.SetCookie(w, sessionCookie(cfg, token, expiresAt, 0))
}

// ClearSessionCookie tells the client to drop the session cookie.
func ClearSessionCookie(w http.ResponseWriter, cfg goSession.CookieConfig) {
	http.SetCookie(w, sessionCookie(cfg, "", time.Time{}, -1))
}

func sessionCookie(cfg goSession.CookieConfig, value string, expires time.Time, maxAge int) *http.Cookie {
	path := cfg.Path
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:     cfg.Name,
		Value:    value,
		Path:     path,
		Domain:   cfg.Domain,
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
	}
}
