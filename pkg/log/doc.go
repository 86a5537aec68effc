// Package log implements structured event logging for the device tree.
//
// Nodes emit an Event when they attach, when their routes are
// registered, when they serve a display request, and when something is
// silently degraded (a dropped attach, a rejected UUID). Events are
// delivered to a Logger; the tree never blocks on or fails because of
// logging.
//
// Sinks:
//   - NoopLogger: discard everything (the default)
//   - SlogAdapter: forward to a log/slog logger for console output
//   - FileLogger: append CBOR-encoded events to a file
//   - MultiLogger: fan out to several sinks
//
// Reader streams events back out of a CBOR log file, optionally
// filtered by category, node, or time range.
package log
