package ports

import "io"

// LogLevel selects how much of the log stream is emitted.
type LogLevel int

const (
	// LevelDebug emits everything, including per-step detail.
	LevelDebug LogLevel = iota
	// LevelInfo is the default level.
	LevelInfo
	// LevelSilent suppresses everything except errors.
	LevelSilent
)

// Logger defines the interface for logging.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs a message visible only at LevelDebug.
	Debug(msg string)
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Error logs an error with its cause chain.
	Error(err error)
	// SetOutput updates the logger's output destination.
	SetOutput(w io.Writer)
	// SetLevel updates the minimum emitted level.
	SetLevel(level LogLevel)
}
