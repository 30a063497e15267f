package goSession

import (
	"context"
	"testing"
	"time"
)

func TestSessionContextRoundTrip(t *testing.T) {
	s := &Session{ID: "abc", CreatedAt: time.Now()}
	ctx := WithSession(context.Background(), s)

	got, ok := SessionFromContext(ctx)
	if !ok || got != s {
		t.Fatalf("expected stored session, got %v %v", got, ok)
	}
}

func TestSessionFromContextMissing(t *testing.T) {
	if _, ok := SessionFromContext(context.Background()); ok {
		t.Fatalf("expected no session")
	}
	if _, ok := SessionFromContext(WithSession(context.Background(), nil)); ok {
		t.Fatalf("nil session must not count as present")
	}
	if _, ok := SessionFromContext(nil); ok {
		t.Fatalf("nil context must not panic or report a session")
	}
}

func TestSessionExpiresAt(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Session{CreatedAt: created}
	if got := s.ExpiresAt(DefaultSessionLifetime); !got.Equal(created.Add(24 * time.Hour)) {
		t.Fatalf("unexpected expiry %v", got)
	}
}
