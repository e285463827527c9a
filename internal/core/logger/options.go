package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Format represents the output format for logs
type Format string

const (
	// FormatText outputs human-readable text format
	FormatText Format = "text"
	// FormatJSON outputs structured JSON format
	FormatJSON Format = "json"
)

type config struct {
	level     slog.Level
	output    io.Writer
	format    Format
	component string
}

// Option is a function that configures a logger
type Option func(*config)

// WithLevel sets the minimum log level
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithOutput sets the output writer for logs
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithFormat sets the output format
func WithFormat(format Format) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithComponent tags every record with component=name
func WithComponent(name string) Option {
	return func(c *config) {
		c.component = name
	}
}

// WithDebug is a convenience option to enable debug logging
func WithDebug() Option {
	return WithLevel(slog.LevelDebug)
}

// WithQuiet is a convenience option to only show warnings and errors
func WithQuiet() Option {
	return WithLevel(slog.LevelWarn)
}

// ParseLevel maps debug/info/warn/error to a slog level. Unknown names map
// to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat maps "json" to FormatJSON and anything else to FormatText
func ParseFormat(s string) Format {
	if strings.EqualFold(s, string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}
