// Package prometheus exposes Manager counters through client_golang.
//
// [NewCollector] returns a [Collector] that can be registered on any
// prometheus.Registerer, or mounted directly with [Collector.Handler]. Counter names
// are gosession_*_total; the single histogram is gosession_validate_latency_seconds.
//
// # What this package must NOT do
//
//   - Register in prometheus.DefaultRegisterer.
//   - Mutate Manager state.
package prometheus
