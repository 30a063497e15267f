package goSession

import (
	"time"

	imetrics "github.com/MrEthical07/goSession/internal/metrics"
)

// MetricID names a Manager counter or histogram.
type MetricID uint16

const (
	// MetricSessionCreated counts successful CreateSession calls.
	MetricSessionCreated MetricID = iota
	// MetricValidateSuccess counts tokens that resolved to a live session.
	MetricValidateSuccess
	// MetricValidateMalformed counts tokens rejected before any store lookup.
	MetricValidateMalformed
	// MetricValidateNotFound counts tokens whose id had no live session.
	MetricValidateNotFound
	// MetricValidateMismatch counts tokens whose secret did not match.
	MetricValidateMismatch
	// MetricSessionExpired counts sessions found past their lifetime.
	MetricSessionExpired
	// MetricExpireCleanupFailed counts failed deletes of expired sessions.
	MetricExpireCleanupFailed
	// MetricSessionDeleted counts DeleteSession calls that removed a record.
	MetricSessionDeleted
	// MetricDeleteNotFound counts DeleteSession calls for absent sessions.
	MetricDeleteNotFound
	// MetricSessionsPurged counts records removed by PurgeExpired.
	MetricSessionsPurged
	// MetricStoreError counts hard store failures surfaced to callers.
	MetricStoreError
	// MetricValidateLatency is the ValidateSessionToken latency histogram.
	MetricValidateLatency
	metricIDCount
)

var metricNames = [metricIDCount]string{
	MetricSessionCreated:      "session_created",
	MetricValidateSuccess:     "validate_success",
	MetricValidateMalformed:   "validate_malformed",
	MetricValidateNotFound:    "validate_not_found",
	MetricValidateMismatch:    "validate_mismatch",
	MetricSessionExpired:      "session_expired",
	MetricExpireCleanupFailed: "expire_cleanup_failed",
	MetricSessionDeleted:      "session_deleted",
	MetricDeleteNotFound:      "delete_not_found",
	MetricSessionsPurged:      "sessions_purged",
	MetricStoreError:          "store_error",
	MetricValidateLatency:     "validate_latency",
}

// String returns the snake_case metric name.
func (id MetricID) String() string {
	if id >= metricIDCount {
		return "unknown"
	}
	return metricNames[id]
}

// Metrics holds the Manager's counters. All methods are nil-safe and
// lock-free.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      *imetrics.Counters
	validateHist  imetrics.Histogram
}

// MetricsSnapshot is a point-in-time copy of every counter and, when
// enabled, the per-bucket latency counts.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
		counters:      imetrics.NewCounters(int(metricIDCount)),
	}
}

func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

func (m *Metrics) Inc(id MetricID) {
	m.Add(id, 1)
}

func (m *Metrics) Add(id MetricID, delta uint64) {
	if m == nil || !m.enabled || id >= metricIDCount || delta == 0 {
		return
	}
	m.counters.Add(int(id), delta)
}

// Observe records d in the histogram for id. Only MetricValidateLatency
// has a histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enableLatency || id != MetricValidateLatency {
		return
	}
	m.validateHist.Observe(d)
}

func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return m.counters.Load(int(id))
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		if id == MetricValidateLatency {
			continue
		}
		s.Counters[id] = m.counters.Load(int(id))
	}
	if m.enableLatency {
		s.Histograms[MetricValidateLatency] = m.validateHist.Snapshot()
	}
	return s
}
