// Package metrics provides lock-free counters and latency histograms for goSession
// observability.
//
// # Design
//
// Counters are stored in cache-line-padded uint64 slots and incremented
// atomically. Histograms use 8 fixed buckets (≤5ms … +Inf). Both are
// allocation-free on the write path.
//
// # Architecture boundaries
//
// This package owns metric storage only. Metric naming lives in the root package and
// export (Prometheus, OTel) lives in metrics/export/.
//
// # What this package must NOT do
//
//   - Perform I/O or network calls.
//   - Import goSession or any sibling package.
//   - Expose global metric registries.
package metrics
