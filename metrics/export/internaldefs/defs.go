package internaldefs

import (
	goSession "github.com/MrEthical07/goSession"
)

// CounterDef maps a Manager counter to its exported name.
type CounterDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// HistogramDef maps a Manager histogram to its exported name.
type HistogramDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// AuditDroppedName is the counter for events lost by the audit dispatcher.
const (
	AuditDroppedName = "gosession_audit_dropped_total"
	AuditDroppedHelp = "Dropped audit events due to dispatcher backpressure."
)

var CounterDefs = []CounterDef{
	{ID: goSession.MetricSessionCreated, Name: "gosession_session_created_total", Help: "Created sessions."},
	{ID: goSession.MetricValidateSuccess, Name: "gosession_validate_success_total", Help: "Tokens that resolved to a live session."},
	{ID: goSession.MetricValidateMalformed, Name: "gosession_validate_malformed_total", Help: "Tokens rejected before any store lookup."},
	{ID: goSession.MetricValidateNotFound, Name: "gosession_validate_not_found_total", Help: "Tokens whose session was absent or expired."},
	{ID: goSession.MetricValidateMismatch, Name: "gosession_validate_mismatch_total", Help: "Tokens whose secret did not match."},
	{ID: goSession.MetricSessionExpired, Name: "gosession_session_expired_total", Help: "Sessions found past their lifetime on read."},
	{ID: goSession.MetricExpireCleanupFailed, Name: "gosession_expire_cleanup_failed_total", Help: "Failed deletes of expired sessions."},
	{ID: goSession.MetricSessionDeleted, Name: "gosession_session_deleted_total", Help: "Sessions revoked by DeleteSession."},
	{ID: goSession.MetricDeleteNotFound, Name: "gosession_delete_not_found_total", Help: "DeleteSession calls for absent sessions."},
	{ID: goSession.MetricSessionsPurged, Name: "gosession_sessions_purged_total", Help: "Records removed by PurgeExpired."},
	{ID: goSession.MetricStoreError, Name: "gosession_store_error_total", Help: "Hard store failures returned to callers."},
}

var HistogramDefs = []HistogramDef{
	{ID: goSession.MetricValidateLatency, Name: "gosession_validate_latency_seconds", Help: "ValidateSessionToken latency."},
}

// HistogramBoundsSeconds are the finite upper bounds, matching the
// Manager's millisecond buckets. The eighth bucket is +Inf.
var HistogramBoundsSeconds = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5}

// HistogramBoundSuffix names each bucket in instrument names.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates raw to eight buckets.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into running totals.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
