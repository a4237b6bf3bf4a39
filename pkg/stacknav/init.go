// Package stacknav provides a screen stack for interactive applications: an
// ordered chain of screens with a lifecycle for each, deferred activation of
// screens that load content, and ordered release of the bindings a screen owns.
//
// The stack itself lives in the router package. This package wires the ambient
// pieces around it: logging, configuration and localisation.
package stacknav

import (
	"log/slog"
	"os"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/constants"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/internal"
)

// Options configures stacknav initialization.
type Options struct {
	LogPath  string // Full path for log file including filename (creates parent directories)
	LogLevel string // Application log level name ("debug", "info", ...)
	Language string // BCP 47 tag for host strings
	Trace    bool   // Log every screen transition on the internal logger
}

// OptionsFromConfig converts a loaded Config into Options.
func OptionsFromConfig(cfg Config) Options {
	return Options{
		LogPath:  cfg.LogPath,
		LogLevel: cfg.LogLevel,
		Language: cfg.Language,
		Trace:    cfg.Trace,
	}
}

// Init sets up logging. Call it before creating a stack so the router picks up
// the configured internal logger.
func Init(options Options) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}

	if options.Trace || os.Getenv(constants.TraceEnvVar) != "" || constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	internal.GetInternalLogger().Debug("stacknav initialised",
		"log_path", options.LogPath, "language", options.Language)
}

// Close flushes and closes the log file, if any.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
