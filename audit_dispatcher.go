package goSession

import (
	"context"

	"github.com/MrEthical07/goSession/internal/audit"
	"github.com/google/uuid"
)

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *audit.Dispatcher {
	return audit.NewDispatcher(audit.Config{
		Enabled:    cfg.Enabled,
		BufferSize: cfg.BufferSize,
		DropIfFull: cfg.DropIfFull,
	}, sink)
}

// emitAudit stamps an id and time on the event and queues it. No-op when
// auditing is disabled.
func (m *Manager) emitAudit(ctx context.Context, eventType, sessionID string, success bool, reason string, metadata map[string]string) {
	if m.audit == nil {
		return
	}
	m.audit.Emit(ctx, AuditEvent{
		EventID:   uuid.NewString(),
		Timestamp: m.now(),
		EventType: eventType,
		SessionID: sessionID,
		Success:   success,
		Reason:    reason,
		Metadata:  metadata,
	})
}

// AuditDropped reports events lost to a full buffer or canceled context.
func (m *Manager) AuditDropped() uint64 {
	if m == nil {
		return 0
	}
	return m.audit.Dropped()
}
