package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	goSession "github.com/MrEthical07/goSession"
	"github.com/MrEthical07/goSession/session"
)

func newTestManager(t *testing.T) *goSession.Manager {
	t.Helper()

	m, err := goSession.New().
		WithStore(session.NewMemoryStore()).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

// fakeValidator returns a fixed result for every token.
type fakeValidator struct {
	sess *goSession.Session
	err  error
	got  string
}

func (f *fakeValidator) ValidateSessionToken(_ context.Context, token string) (*goSession.Session, error) {
	f.got = token
	return f.sess, f.err
}

func (f *fakeValidator) CookieConfig() goSession.CookieConfig {
	return goSession.DefaultConfig().Cookie
}

func echoSessionID(w http.ResponseWriter, r *http.Request) {
	sess, ok := goSession.SessionFromContext(r.Context())
	if !ok {
		_, _ = w.Write([]byte("anonymous"))
		return
	}
	_, _ = w.Write([]byte(sess.ID))
}

func TestRequireSessionBearerAndCookie(t *testing.T) {
	m := newTestManager(t)
	created, err := m.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	h := RequireSession(m)(http.HandlerFunc(echoSessionID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+created.Token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != created.ID {
		t.Fatalf("bearer: status=%d body=%q", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: m.CookieConfig().Name, Value: created.Token})
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != created.ID {
		t.Fatalf("cookie: status=%d body=%q", rr.Code, rr.Body.String())
	}
}

func TestRequireSessionRejects(t *testing.T) {
	m := newTestManager(t)
	h := RequireSession(m)(http.HandlerFunc(echoSessionID))

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing"},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "empty bearer", header: "Bearer   "},
		{name: "malformed", header: "Bearer not-a-token"},
		{name: "unknown", header: "Bearer aaaa.bbbb"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rr.Code)
			}
		})
	}
}

func TestRequireSessionStoreFailureIs503(t *testing.T) {
	fv := &fakeValidator{err: errors.New("redis down")}
	h := RequireSession(fv)(http.HandlerFunc(echoSessionID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer abc.def")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	if fv.got != "abc.def" {
		t.Fatalf("token passed = %q", fv.got)
	}
}

func TestRequireSessionNilValidator(t *testing.T) {
	h := RequireSession(nil)(http.HandlerFunc(echoSessionID))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestOptionalSession(t *testing.T) {
	m := newTestManager(t)
	created, err := m.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	h := OptionalSession(m)(http.HandlerFunc(echoSessionID))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "anonymous" {
		t.Fatalf("no token: status=%d body=%q", rr.Code, rr.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+created.ID+".wrongsecret")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != "anonymous" {
		t.Fatalf("bad token: status=%d body=%q", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+created.Token)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Body.String() != created.ID {
		t.Fatalf("good token: body=%q", rr.Body.String())
	}

	fv := &fakeValidator{err: errors.New("boom")}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer a.b")
	rr = httptest.NewRecorder()
	OptionalSession(fv)(http.HandlerFunc(echoSessionID)).ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("store failure: status = %d, want 503", rr.Code)
	}
}

func TestStatusForError(t *testing.T) {
	if got := StatusForError(goSession.ErrNotAuthenticated); got != http.StatusUnauthorized {
		t.Fatalf("ErrNotAuthenticated -> %d", got)
	}
	if got := StatusForError(goSession.ErrSessionNotFound); got != http.StatusUnauthorized {
		t.Fatalf("ErrSessionNotFound -> %d", got)
	}
	if got := StatusForError(session.ErrUnavailable); got != http.StatusServiceUnavailable {
		t.Fatalf("ErrUnavailable -> %d", got)
	}
}

func TestSetAndClearSessionCookie(t *testing.T) {
	cfg := goSession.DefaultConfig().Cookie
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	rr := httptest.NewRecorder()
	SetSessionCookie(rr, cfg, "id.secret", expires)
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != cfg.Name || c.Value != "id.secret" || !c.HttpOnly || !c.Secure || c.Path != "/" {
		t.Fatalf("unexpected cookie %+v", c)
	}
	if !c.Expires.Equal(expires) {
		t.Fatalf("expires = %v", c.Expires)
	}

	rr = httptest.NewRecorder()
	ClearSessionCookie(rr, cfg)
	c = rr.Result().Cookies()[0]
	if c.MaxAge >= 0 || c.Value != "" {
		t.Fatalf("clear cookie %+v", c)
	}
}
