package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

// runStoreContract checks the behavior every Store backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("create then find", func(t *testing.T) {
		s := newStore(t)
		rec := Record{ID: "sid-create", SecretHash: [32]byte{1, 2, 3}, CreatedAt: created}
		if err := s.Create(ctx, rec); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, ok, err := s.FindByID(ctx, rec.ID)
		if err != nil || !ok {
			t.Fatalf("find: ok=%v err=%v", ok, err)
		}
		if got.ID != rec.ID || got.SecretHash != rec.SecretHash || !got.CreatedAt.Equal(rec.CreatedAt) {
			t.Fatalf("record mismatch: got %+v want %+v", got, rec)
		}
	})

	t.Run("find missing is not an error", func(t *testing.T) {
		s := newStore(t)
		got, ok, err := s.FindByID(ctx, "missing")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if ok || got.ID != "" {
			t.Fatalf("expected not found, got %+v", got)
		}
	})

	t.Run("duplicate create", func(t *testing.T) {
		s := newStore(t)
		rec := Record{ID: "sid-dup", CreatedAt: created}
		if err := s.Create(ctx, rec); err != nil {
			t.Fatalf("first create: %v", err)
		}
		if err := s.Create(ctx, rec); !errors.Is(err, ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("delete then delete again", func(t *testing.T) {
		s := newStore(t)
		rec := Record{ID: "sid-del", CreatedAt: created}
		if err := s.Create(ctx, rec); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := s.DeleteByID(ctx, rec.ID); err != nil {
			t.Fatalf("first delete: %v", err)
		}
		if _, ok, _ := s.FindByID(ctx, rec.ID); ok {
			t.Fatalf("record still present after delete")
		}
		if err := s.DeleteByID(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("purge created before", func(t *testing.T) {
		s := newStore(t)
		p, ok := s.(Purger)
		if !ok {
			t.Skip("store does not implement Purger")
		}
		old := Record{ID: "sid-old", CreatedAt: created.Add(-48 * time.Hour)}
		fresh := Record{ID: "sid-fresh", CreatedAt: created}
		for _, r := range []Record{old, fresh} {
			if err := s.Create(ctx, r); err != nil {
				t.Fatalf("create %s: %v", r.ID, err)
			}
		}
		n, err := p.PurgeCreatedBefore(ctx, created.Add(-24*time.Hour))
		if err != nil {
			t.Fatalf("purge: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected 1 purged, got %d", n)
		}
		if _, ok, _ := s.FindByID(ctx, old.ID); ok {
			t.Fatalf("old record survived purge")
		}
		if _, ok, _ := s.FindByID(ctx, fresh.ID); !ok {
			t.Fatalf("fresh record was purged")
		}
	})
}
