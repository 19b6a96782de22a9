package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Level is an alias for [slog.Level], the severity type accepted throughout
// this package.
type Level = slog.Level

// Supported severity levels.
const (
	LevelError = slog.LevelError
	LevelWarn  = slog.LevelWarn
	LevelInfo  = slog.LevelInfo
	LevelDebug = slog.LevelDebug
)

// Handler is an alias for [slog.Handler].
type Handler = slog.Handler

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs in logfmt format (key=value pairs).
	FormatLogfmt Format = "logfmt"
	// FormatText outputs logs in a human-readable key=value form. Backed by
	// the same encoder as FormatLogfmt; the two names exist because callers
	// distinguish "machine logfmt" from "console text" even though this
	// package has one text encoder.
	FormatText Format = "text"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// NewHandlerFromStrings creates a [Handler] by level/format strings.
func NewHandlerFromStrings(w io.Writer, logLevel, logFormat string) (Handler, error) {
	return CreateHandlerWithStrings(w, logLevel, logFormat)
}

// CreateHandlerWithStrings creates a [slog.Handler] by strings.
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	logLvl, err := ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	logFmt, err := ParseFormat(logFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return CreateHandler(w, logLvl, logFmt), nil
}

// NewHandler creates a [Handler] with the specified level and format.
func NewHandler(w io.Writer, logLvl Level, logFmt Format) Handler {
	return CreateHandler(w, logLvl, logFmt)
}

// CreateHandler creates a [slog.Handler] with the specified level and format.
func CreateHandler(w io.Writer, logLvl slog.Level, logFmt Format) slog.Handler {
	switch logFmt {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     logLvl,
		})

	case FormatLogfmt, FormatText:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     logLvl,
		})
	}

	return nil
}

// ParseLevel parses a log level string and returns the corresponding
// [Level].
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	}

	return 0, ErrUnknownLogLevel
}

// GetLevel is a deprecated alias for [ParseLevel].
func GetLevel(level string) (Level, error) { return ParseLevel(level) }

// ParseFormat parses a log format string and returns the corresponding
// [Format].
func ParseFormat(format string) (Format, error) {
	logFmt := Format(strings.ToLower(format))
	if slices.Contains([]Format{FormatJSON, FormatLogfmt, FormatText}, logFmt) {
		return logFmt, nil
	}

	return "", ErrUnknownLogFormat
}

// GetFormat is a deprecated alias for [ParseFormat].
func GetFormat(format string) (Format, error) { return ParseFormat(format) }

// GetAllLevelStrings returns the accepted level strings, for use in flag
// help text and shell completion.
func GetAllLevelStrings() []string {
	return []string{"error", "warn", "info", "debug"}
}

// GetAllFormatStrings returns the accepted format strings, for use in flag
// help text and shell completion.
func GetAllFormatStrings() []string {
	return []string{string(FormatJSON), string(FormatLogfmt), string(FormatText)}
}
