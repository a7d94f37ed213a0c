package utils

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LoggerOptions configures a Logger.
type LoggerOptions struct {
	Level  zerolog.Level
	Output io.Writer
	// JSON disables the human-readable console writer.
	JSON bool
}

// Logger provides leveled logging throughout the application.
type Logger struct {
	base zerolog.Logger
}

// NewLogger creates a console Logger at info level writing to stderr.
func NewLogger() *Logger {
	return NewLoggerWithOptions(LoggerOptions{Level: zerolog.InfoLevel})
}

// NewLoggerWithOptions creates a Logger from explicit options.
func NewLoggerWithOptions(opts LoggerOptions) *Logger {
	if opts.Level == zerolog.NoLevel {
		opts.Level = zerolog.InfoLevel
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}
	}

	return &Logger{
		base: zerolog.New(out).With().Timestamp().Logger().Level(opts.Level),
	}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(value string) zerolog.Level {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(v)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Info(format string, args ...any) {
	l.base.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.base.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.base.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.base.Debug().Msgf(format, args...)
}
