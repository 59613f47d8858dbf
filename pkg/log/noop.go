package log

// NoopLogger is the Client's logger when none is configured.
type NoopLogger struct{}

// NewNoopLogger returns a logger that drops every event.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

func (NoopLogger) Debug(string, ...Field) {}
func (NoopLogger) Info(string, ...Field)  {}
func (NoopLogger) Warn(string, ...Field)  {}
func (NoopLogger) Error(string, ...Field) {}
