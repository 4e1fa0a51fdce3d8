package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

type options struct {
	level   zerolog.Level
	console io.Writer
	file    string
}

// Option configures New.
type Option func(*options) error

// WithLevel sets the logging level.
func WithLevel(level zerolog.Level) Option {
	return func(o *options) error {
		o.level = level
		return nil
	}
}

// WithLevelString sets the logging level by name ("debug", "warn", ...).
func WithLevelString(level string) Option {
	return func(o *options) error {
		l, err := zerolog.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		return WithLevel(l)(o)
	}
}

// WithConsole sends human readable output to w. Pass nil to disable the
// console.
func WithConsole(w io.Writer) Option {
	return func(o *options) error {
		o.console = w
		return nil
	}
}

// WithFile additionally appends plain text logs to path. An empty path is
// ignored.
func WithFile(path string) Option {
	return func(o *options) error {
		o.file = path
		return nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger writing to stderr at warn level unless options say
// otherwise. The returned closer releases the log file, if any.
func New(opts ...Option) (zerolog.Logger, io.Closer, error) {
	o := &options{level: zerolog.WarnLevel, console: os.Stderr}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to apply logger option: %w", err)
		}
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}
	if o.console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: o.console, TimeFormat: time.RFC3339})
	}
	if o.file != "" {
		if err := os.MkdirAll(filepath.Dir(o.file), 0o755); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(o.file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339, NoColor: true})
		closer = f
	}
	if len(writers) == 0 {
		return zerolog.Nop(), closer, nil
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(o.level).
		With().
		Timestamp().
		Logger()
	return log, closer, nil
}
