package logging

import (
	"log/slog"
	"strings"
)

// Writer is an io.Writer implementation that forwards child process output to slog.
type Writer struct {
	logger *slog.Logger
	source string
}

// NewWriter constructs a Writer bound to the provided logger. The source label
// identifies which child process produced the output.
func NewWriter(logger *slog.Logger, source string) *Writer {
	return &Writer{logger: logger, source: source}
}

// Write logs each non-empty line at debug level.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger != nil {
		for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
			if line != "" {
				w.logger.Debug("command output", "source", w.source, "line", line)
			}
		}
	}
	return len(p), nil
}
