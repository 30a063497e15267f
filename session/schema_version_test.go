package session

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDecodeRejectsUnsupportedSchemaVersion(t *testing.T) {
	_, err := Decode([]byte{99})
	if err == nil || !strings.Contains(err.Error(), "unsupported session schema version") {
		t.Fatalf("expected unsupported schema version error, got %v", err)
	}
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestDecodeRejectsTruncatedBlob(t *testing.T) {
	blob := Encode(Record{CreatedAt: time.Now()})
	if _, err := Decode(blob[:len(blob)-1]); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt for truncated blob, got %v", err)
	}
}

func TestEncodeDecodePreservesHashAndNanos(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 30, 0, 123456789, time.UTC)
	in := Record{ID: "sid", SecretHash: [32]byte{9, 8, 7, 31: 1}, CreatedAt: created}

	blob := Encode(in)
	if blob[0] != CurrentSchemaVersion {
		t.Fatalf("expected version byte %d, got %d", CurrentSchemaVersion, blob[0])
	}

	out, err := Decode(blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != "" {
		t.Fatalf("id must not be encoded, got %q", out.ID)
	}
	if out.SecretHash != in.SecretHash {
		t.Fatalf("hash mismatch")
	}
	if !out.CreatedAt.Equal(created) {
		t.Fatalf("created_at mismatch: %v vs %v", out.CreatedAt, created)
	}
}

func TestRecordExpiredAtBoundary(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := Record{CreatedAt: created}
	lifetime := 24 * time.Hour

	if r.ExpiredAt(created.Add(lifetime-time.Nanosecond), lifetime) {
		t.Fatalf("record must be live just before lifetime")
	}
	if !r.ExpiredAt(created.Add(lifetime), lifetime) {
		t.Fatalf("record must be expired exactly at lifetime")
	}
}
