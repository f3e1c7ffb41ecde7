package outline

import (
	"log/slog"

	"honnef.co/go/outline/internal/logging"
)

// SetLogger configures the logger for outline and its sub-packages.
// By default nothing is logged. Pass nil to restore that.
//
// Log levels used:
//   - [slog.LevelDebug]: index rebuilds and leaf splits
//   - [slog.LevelWarn]: recoverable errors that were swallowed, such as stale
//     addresses in a selection or segments that couldn't be evaluated
//
// Example:
//
//	outline.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logging.Logger()
}
