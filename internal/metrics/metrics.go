package metrics

import (
	"sync/atomic"
	"time"
)

// BucketCount is the number of latency histogram buckets.
const BucketCount = 8

const cacheLineSize = 64

// BucketBoundsMillis are the inclusive upper bounds of the first seven
// buckets; the last bucket is +Inf.
var BucketBoundsMillis = [BucketCount - 1]int64{5, 10, 25, 50, 100, 250, 500}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Counters is a fixed set of padded atomic counters addressed by index.
type Counters struct {
	slots []paddedCounter
}

func NewCounters(n int) *Counters {
	return &Counters{slots: make([]paddedCounter, n)}
}

func (c *Counters) Add(i int, delta uint64) {
	if c == nil || i < 0 || i >= len(c.slots) {
		return
	}
	atomic.AddUint64(&c.slots[i].value, delta)
}

func (c *Counters) Load(i int) uint64 {
	if c == nil || i < 0 || i >= len(c.slots) {
		return 0
	}
	return atomic.LoadUint64(&c.slots[i].value)
}

func (c *Counters) Len() int {
	if c == nil {
		return 0
	}
	return len(c.slots)
}

// Histogram is an allocation-free latency histogram.
type Histogram struct {
	buckets [BucketCount]uint64
}

func (h *Histogram) Observe(d time.Duration) {
	if h == nil {
		return
	}
	atomic.AddUint64(&h.buckets[BucketIndex(d)], 1)
}

// Snapshot returns per-bucket (non-cumulative) counts.
func (h *Histogram) Snapshot() []uint64 {
	out := make([]uint64, BucketCount)
	if h == nil {
		return out
	}
	for i := range out {
		out[i] = atomic.LoadUint64(&h.buckets[i])
	}
	return out
}

func BucketIndex(d time.Duration) int {
	ms := d.Milliseconds()
	for i, bound := range BucketBoundsMillis {
		if ms <= bound {
			return i
		}
	}
	return BucketCount - 1
}
