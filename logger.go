package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// NewLogger returns a structured slog.Logger with the given level. Output is
// human-readable text on a terminal and JSON otherwise.
func NewLogger(level slog.Leveler) *slog.Logger {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return slog.New(newHandler(os.Stdout, tty, level))
}

func newHandler(w io.Writer, tty bool, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if tty {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
