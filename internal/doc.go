// Package internal contains helper utilities that are intentionally private to goSession:
// secure random strings, secret hashing, constant-time comparison and token framing.
//
// # Sub-packages
//
//   - audit: async event dispatch (Dispatcher + Sink implementations)
//   - metrics: lock-free counters and latency histograms
//
// # What this package must NOT do
//
//   - Export types that appear in the public goSession API.
//   - Touch persistence or hold any state between calls.
package internal
