package goSession

import (
	"io"

	"github.com/MrEthical07/goSession/internal/audit"
)

// AuditEvent is one session lifecycle record delivered to an [AuditSink].
type AuditEvent = audit.Event

// AuditSink receives audit events from the Manager's dispatcher goroutine.
type AuditSink = audit.Sink

// NoOpSink discards every event.
type NoOpSink = audit.NoOpSink

// ChannelSink buffers events on a channel read via Events().
type ChannelSink = audit.ChannelSink

// JSONWriterSink writes one JSON object per line.
type JSONWriterSink = audit.JSONWriterSink

func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}

// Audit event types.
const (
	AuditSessionCreated  = "session_created"
	AuditSessionRejected = "session_rejected"
	AuditSessionExpired  = "session_expired"
	AuditSessionDeleted  = "session_deleted"
	AuditSessionsPurged  = "sessions_purged"
	AuditStoreFailure    = "store_failure"
)

// Reasons attached to rejected events. They stay in the audit trail and
// never reach the caller, which only sees ErrNotAuthenticated.
const (
	reasonMalformed = "malformed_token"
	reasonNotFound  = "not_found"
	reasonMismatch  = "secret_mismatch"
	reasonExpired   = "expired"
)
