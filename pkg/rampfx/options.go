package rampfx

import "time"

// DefaultShutdownTimeout is the default timeout for graceful shutdown.
const DefaultShutdownTimeout = 5 * time.Second

// Options configures the Effect instance behavior.
type Options struct {
	// Headless draws on a CPU canvas without creating a window.
	Headless bool

	// WindowTitle overrides the configured window title.
	WindowTitle string

	// FPS overrides the configured tick rate. Zero keeps the config value.
	FPS int

	// ShutdownTimeout sets the maximum time to wait for graceful shutdown.
	// Zero means use DefaultShutdownTimeout.
	ShutdownTimeout time.Duration

	// Logger receives lifecycle and reload messages. If nil, nothing is
	// logged.
	Logger Logger

	// Metrics sets a custom metrics collector. If nil, DefaultMetrics() is
	// used.
	Metrics *Metrics

	// WatchConfig reloads the configuration in place when the file changes
	// on disk. Only file-based instances can be watched.
	WatchConfig bool

	// WatchDebounce sets the debounce interval for file change events.
	// Zero means use DefaultWatchDebounce.
	WatchDebounce time.Duration
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{}
}

// Logger interface for custom logging.
// It follows the slog-style signature for compatibility with Go's structured logging.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}
