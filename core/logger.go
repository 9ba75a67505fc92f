package core

// Logger is implemented by all logging services.
// Implementations may inspect args for values they know how to report
// (eg. errors) and print the rest.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
