package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestBucketIndex(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{5 * time.Millisecond, 0},
		{6 * time.Millisecond, 1},
		{25 * time.Millisecond, 2},
		{50 * time.Millisecond, 3},
		{100 * time.Millisecond, 4},
		{250 * time.Millisecond, 5},
		{500 * time.Millisecond, 6},
		{501 * time.Millisecond, 7},
		{time.Minute, 7},
	}
	for _, tc := range tests {
		if got := BucketIndex(tc.d); got != tc.want {
			t.Fatalf("BucketIndex(%v) = %d, want %d", tc.d, got, tc.want)
		}
	}
}

func TestCountersConcurrentAdd(t *testing.T) {
	c := NewCounters(3)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				c.Add(1, 1)
			}
		}()
	}
	wg.Wait()

	if got := c.Load(1); got != 8000 {
		t.Fatalf("expected 8000, got %d", got)
	}
	if c.Load(0) != 0 || c.Load(2) != 0 {
		t.Fatalf("unexpected writes to other slots")
	}
}

func TestCountersOutOfRangeIgnored(t *testing.T) {
	c := NewCounters(1)
	c.Add(-1, 1)
	c.Add(5, 1)
	if c.Load(5) != 0 || c.Load(0) != 0 {
		t.Fatalf("out of range access must be ignored")
	}
	var nilCounters *Counters
	nilCounters.Add(0, 1)
	if nilCounters.Len() != 0 {
		t.Fatalf("nil counters must be empty")
	}
}

func TestHistogramSnapshot(t *testing.T) {
	var h Histogram
	h.Observe(time.Millisecond)
	h.Observe(time.Millisecond)
	h.Observe(time.Second)

	snap := h.Snapshot()
	if len(snap) != BucketCount {
		t.Fatalf("expected %d buckets, got %d", BucketCount, len(snap))
	}
	if snap[0] != 2 || snap[BucketCount-1] != 1 {
		t.Fatalf("unexpected snapshot %v", snap)
	}
}
