// Package logging builds the application's slog logger: an in-memory ring
// buffer for the TUI log panel, fanned out to an optional rotating JSON log
// file and an optional console writer.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options is the resolved logging configuration.
type Options struct {
	Level      slog.Level
	File       string // empty disables file logging
	MaxSizeMB  int
	MaxFiles   int
	BufferSize int
	// Console, if set, receives human-readable text records. The TUI leaves
	// it nil because it owns the terminal.
	Console io.Writer
}

// Logger bundles the slog logger with the resources behind it.
type Logger struct {
	*slog.Logger
	Buffer *Buffer
	file   io.Closer
}

// New builds a Logger. The caller must Close it.
func New(opts Options) (*Logger, error) {
	buf := NewBuffer(opts.BufferSize)
	handlers := []slog.Handler{buf.Handler(opts.Level)}

	var file io.Closer
	if opts.File != "" {
		w, err := OpenRotatingFile(opts.File, opts.MaxSizeMB, opts.MaxFiles)
		if err != nil {
			return nil, err
		}
		file = w
		handlers = append(handlers, slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opts.Level}))
	}
	if opts.Console != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Console, &slog.HandlerOptions{Level: opts.Level}))
	}

	return &Logger{
		Logger: slog.New(slogmulti.Fanout(handlers...)),
		Buffer: buf,
		file:   file,
	}, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel accepts debug, info, warn and error (case-insensitive). The
// empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}
