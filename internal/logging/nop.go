package logging

import (
	"io"
	"log/slog"
)

var _ Logger = (*SlogLogger)(nil)

// NewNop returns a logger that discards everything. Intended for tests and
// for components constructed without an explicit logger.
func NewNop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
