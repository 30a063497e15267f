package internaldefs

import (
	"strings"
	"testing"

	goSession "github.com/MrEthical07/goSession"
	imetrics "github.com/MrEthical07/goSession/internal/metrics"
)

func TestCounterDefsCoverEveryCounter(t *testing.T) {
	seen := map[goSession.MetricID]bool{}
	names := map[string]bool{}
	for _, def := range CounterDefs {
		if seen[def.ID] {
			t.Fatalf("duplicate id %v", def.ID)
		}
		if names[def.Name] {
			t.Fatalf("duplicate name %s", def.Name)
		}
		if !strings.HasPrefix(def.Name, "gosession_") || !strings.HasSuffix(def.Name, "_total") {
			t.Fatalf("bad counter name %s", def.Name)
		}
		seen[def.ID] = true
		names[def.Name] = true
	}
	for id := goSession.MetricSessionCreated; id < goSession.MetricValidateLatency; id++ {
		if !seen[id] {
			t.Fatalf("metric %s has no counter definition", id)
		}
	}
}

func TestBoundsMatchManagerBuckets(t *testing.T) {
	if len(HistogramBoundsSeconds) != len(imetrics.BucketBoundsMillis) {
		t.Fatalf("bounds = %d, want %d", len(HistogramBoundsSeconds), len(imetrics.BucketBoundsMillis))
	}
	for i, ms := range imetrics.BucketBoundsMillis {
		if got := HistogramBoundsSeconds[i] * 1000; int64(got+0.5) != ms {
			t.Fatalf("bound %d = %vs, want %dms", i, HistogramBoundsSeconds[i], ms)
		}
	}
	if len(HistogramBoundSuffix) != imetrics.BucketCount {
		t.Fatalf("suffixes = %d", len(HistogramBoundSuffix))
	}
}

func TestCumulativeBuckets(t *testing.T) {
	got := CumulativeBuckets(NormalizeBuckets([]uint64{1, 2, 3}))
	want := [8]uint64{1, 3, 6, 6, 6, 6, 6, 6}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}
