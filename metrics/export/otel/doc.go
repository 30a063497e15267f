// Package otel publishes Manager counters through an OpenTelemetry Meter.
//
// [NewExporter] registers an Int64ObservableCounter per counter and an
// Int64ObservableGauge per latency bucket. One callback reads
// Manager.MetricsSnapshot on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the MeterProvider. Callers supply the Meter.
//   - Mutate Manager state.
package otel
