package errors

import (
	"github.com/charmbracelet/log"
)

// LogHandler is a Handler that logs errors through a charmbracelet logger.
type LogHandler struct {
	// Logger receives the reported errors. Nil falls back to log.Default().
	Logger *log.Logger
	// Verbose enables stack trace output.
	Verbose bool
}

// HandleError logs a ReconcileError.
func (h *LogHandler) HandleError(err *ReconcileError) {
	if err == nil {
		return
	}
	logger := h.Logger
	if logger == nil {
		logger = log.Default()
	}
	keyvals := []any{"op", err.Op, "kind", err.Kind.String()}
	if err.Node != 0 {
		keyvals = append(keyvals, "node", err.Node)
	}
	keyvals = append(keyvals, "err", err.Err)
	if h.Verbose && err.StackTrace != "" {
		keyvals = append(keyvals, "stack", err.StackTrace)
	}
	logger.Error("reconcile error", keyvals...)
}
