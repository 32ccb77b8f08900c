package logging

import (
	"io"
	"log/slog"
	"os"
)

// Level represents a log level.
type Level = slog.Level

// Log levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format represents the log output format.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Environment variables consulted by FromEnv.
const (
	EnvLevel  = "HTTPSTUB_LOG"
	EnvFormat = "HTTPSTUB_LOG_FORMAT"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level Level

	// Format is the output format (text or json).
	Format Format

	// Output is the writer to send logs to. Defaults to os.Stderr.
	Output io.Writer

	// AddSource adds source file and line to log entries.
	AddSource bool
}

// DefaultConfig returns the configuration the engine uses out of the box:
// text to stderr at warn level. The engine logs stub resolutions at debug
// and unmatched requests at warn, so a passing test run stays silent.
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// FromEnv returns DefaultConfig adjusted by the HTTPSTUB_LOG and
// HTTPSTUB_LOG_FORMAT environment variables, so a test run can be made
// verbose without touching code:
//
//	HTTPSTUB_LOG=debug go test ./...
//
// Unrecognized values are ignored.
func FromEnv() Config {
	cfg := DefaultConfig()

	switch os.Getenv(EnvLevel) {
	case "debug":
		cfg.Level = LevelDebug
	case "info":
		cfg.Level = LevelInfo
	case "warn":
		cfg.Level = LevelWarn
	case "error":
		cfg.Level = LevelError
	}

	if Format(os.Getenv(EnvFormat)) == FormatJSON {
		cfg.Format = FormatJSON
	}
	return cfg
}

// New creates a new slog.Logger with the given configuration.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	return slog.New(handler)
}

// Nop returns a logger that discards everything. Used to silence the engine
// entirely, for example in parallel test runs with their own capture.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: LevelError}))
}
