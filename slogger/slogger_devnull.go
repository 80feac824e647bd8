package slogger

var _ Logger = (*DevNullLogger)(nil)

// DevNullLogger discards everything. It is the default for adapters so the
// library stays silent unless a caller opts in.
type DevNullLogger struct{}

// NewDevNullLogger returns a new DevNullLogger instance
func NewDevNullLogger() *DevNullLogger {
	return &DevNullLogger{}
}

func (l *DevNullLogger) Debug(msg string, keysAndValues ...any) {}
func (l *DevNullLogger) Info(msg string, keysAndValues ...any)  {}
func (l *DevNullLogger) Warn(msg string, keysAndValues ...any)  {}
func (l *DevNullLogger) Error(msg string, keysAndValues ...any) {}
func (l *DevNullLogger) With(keysAndValues ...any) Logger       { return l }
