package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goSession "github.com/MrEthical07/goSession"
	"github.com/MrEthical07/goSession/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeSource struct {
	snapshot goSession.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() goSession.MetricsSnapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64                       { return f.dropped }

func TestCollectorDisabledMetricsOnlyAuditDropped(t *testing.T) {
	c := NewCollectorFromSource(fakeSource{
		snapshot: goSession.MetricsSnapshot{
			Counters:   map[goSession.MetricID]uint64{},
			Histograms: map[goSession.MetricID][]uint64{},
		},
	})

	if n := testutil.CollectAndCount(c); n != 1 {
		t.Fatalf("collected %d metrics, want 1", n)
	}
}

func TestCollectorCountersAndHistogram(t *testing.T) {
	c := NewCollectorFromSource(fakeSource{
		snapshot: goSession.MetricsSnapshot{
			Counters: map[goSession.MetricID]uint64{
				goSession.MetricSessionCreated:  7,
				goSession.MetricValidateSuccess: 3,
			},
			Histograms: map[goSession.MetricID][]uint64{
				goSession.MetricValidateLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
		dropped: 2,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(c)

	expected := `
# HELP gosession_session_created_total Created sessions.
# TYPE gosession_session_created_total counter
gosession_session_created_total 7
# HELP gosession_audit_dropped_total Dropped audit events due to dispatcher backpressure.
# TYPE gosession_audit_dropped_total counter
gosession_audit_dropped_total 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"gosession_session_created_total", "gosession_audit_dropped_total"); err != nil {
		t.Fatal(err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	var found bool
	for _, mf := range families {
		if mf.GetName() != "gosession_validate_latency_seconds" {
			continue
		}
		found = true
		h := mf.GetMetric()[0].GetHistogram()
		if h.GetSampleCount() != 36 {
			t.Fatalf("sample count = %d, want 36", h.GetSampleCount())
		}
		if b := h.GetBucket()[0]; b.GetUpperBound() != 0.005 || b.GetCumulativeCount() != 1 {
			t.Fatalf("first bucket = %v/%d", b.GetUpperBound(), b.GetCumulativeCount())
		}
	}
	if !found {
		t.Fatal("latency histogram not gathered")
	}
}

func TestHandlerServesExposition(t *testing.T) {
	c := NewCollectorFromSource(fakeSource{
		snapshot: goSession.MetricsSnapshot{
			Counters: map[goSession.MetricID]uint64{goSession.MetricStoreError: 4},
		},
	})

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), "gosession_store_error_total 4") {
		t.Fatalf("missing store error counter:\n%s", body)
	}
}

func TestCollectorWithManager(t *testing.T) {
	m, err := goSession.New().WithStore(session.NewMemoryStore()).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer m.Close()

	c := NewCollector(m)
	if n := testutil.CollectAndCount(c, "gosession_session_created_total"); n != 1 {
		t.Fatalf("created counter count = %d", n)
	}
}
