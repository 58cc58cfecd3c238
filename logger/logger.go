// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logger provides the leveled, structured logger used by the
// serializer, the circuit simulator and the test benches.
//
// Messages carry key/value pairs:
//
//	logger.Debug("word accepted", "data", 0x10, "width", 8)
//
package logger

// Level indicates the logging severity level.
type Level = int8

const (
	// DebugLevel logs per-event simulation details. Disabled by default.
	DebugLevel Level = iota - 1
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info.
	WarnLevel
	// ErrorLevel logs are high-priority.
	ErrorLevel
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel
)

// Logger is the logging interface used throughout the module.
//
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	// Fatal logs a message at FatalLevel then calls os.Exit(1).
	Fatal(msg string, keysAndValues ...any)
	// With creates a child logger with additional context.
	With(keyValues ...any) Logger
	Level() Level
	SetLevel(level Level)
}

// ParseLevel converts a level name (debug, info, warn, error, fatal) to a
// Level. ok is false for unknown names.
//
func ParseLevel(name string) (l Level, ok bool) {
	switch name {
	case "debug":
		return DebugLevel, true
	case "info":
		return InfoLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	case "fatal":
		return FatalLevel, true
	}
	return InfoLevel, false
}
