package config

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

// NewLogger writes colored debug output in development and JSON otherwise.
func NewLogger(w io.Writer, development bool) *slog.Logger {
	if development {
		return slog.New(tint.NewHandler(w, &tint.Options{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(w, nil))
}
