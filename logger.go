package hostapi

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger receives debug output as a message plus alternating key/value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// DebugConfig selects which parts of the call lifecycle are logged.
type DebugConfig struct {
	Enabled         bool
	LogRequests     bool
	LogCancellation bool
	RequestIDGen    func() string
}

// DefaultDebugConfig returns a disabled config that logs everything once enabled.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:         false,
		LogRequests:     true,
		LogCancellation: true,
		RequestIDGen:    uuid.NewString,
	}
}

// SimpleLogger writes text records to stderr.
type SimpleLogger struct {
	logger *slog.Logger
}

// NewSimpleLogger returns a console logger that emits every level.
func NewSimpleLogger() *SimpleLogger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &SimpleLogger{logger: slog.New(handler).With("component", "hostapi")}
}

func (l *SimpleLogger) Debug(msg string, keysAndValues ...any) { l.logger.Debug(msg, keysAndValues...) }
func (l *SimpleLogger) Info(msg string, keysAndValues ...any)  { l.logger.Info(msg, keysAndValues...) }
func (l *SimpleLogger) Warn(msg string, keysAndValues ...any)  { l.logger.Warn(msg, keysAndValues...) }
func (l *SimpleLogger) Error(msg string, keysAndValues ...any) { l.logger.Error(msg, keysAndValues...) }
