package log

// Logger is the interface applications implement to receive device
// tree events. Pass nil or NoopLogger to disable logging.
type Logger interface {
	// Log records an event. Logging must never disrupt the control
	// loop; implementations swallow their own failures.
	Log(event Event)
}

// NoopLogger discards all events. Use when logging is disabled.
// NoopLogger is usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
