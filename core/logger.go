package core

// Logger is the leveled logging surface the rest of the dashboard codes
// against, so the Rollbar-backed production logger and the console one
// used in tests stay swappable. Implementations may inspect args for
// structured context; the Rollbar one pulls out error values and request
// context to report upstream.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
