package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// logFormat represents logger output format.
type logFormat string

const (
	formatJSON logFormat = "json"
	formatText logFormat = "text"
)

type loggerOption func(*loggerConfig)

type loggerConfig struct {
	level  slog.Level
	format logFormat
	output io.Writer
	attrs  []slog.Attr
}

func withLevel(l slog.Level) loggerOption {
	return func(c *loggerConfig) { c.level = l }
}

func withFormat(f logFormat) loggerOption {
	return func(c *loggerConfig) { c.format = f }
}

// withOutput sets the destination, ignoring nil writers.
func withOutput(w io.Writer) loggerOption {
	return func(c *loggerConfig) {
		if w != nil {
			c.output = w
		}
	}
}

func withAttr(attrs ...slog.Attr) loggerOption {
	return func(c *loggerConfig) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// newLogger creates a slog.Logger. Logs go to stderr so they never mix with
// the JSON results on stdout.
func newLogger(opts ...loggerOption) *slog.Logger {
	cfg := &loggerConfig{
		level:  slog.LevelWarn,
		format: formatText,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}
	var handler slog.Handler
	if cfg.format == formatJSON {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	}
	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}
	return slog.New(handler)
}

func parseLogFormat(s string) (logFormat, error) {
	switch f := logFormat(strings.ToLower(s)); f {
	case formatJSON, formatText:
		return f, nil
	}
	return "", fmt.Errorf("invalid log format %q: must be %q or %q", s, formatJSON, formatText)
}

func parseLogLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}
