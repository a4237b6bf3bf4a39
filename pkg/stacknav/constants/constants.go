// Package constants defines shared constants, environment variable names and
// default values used throughout stacknav.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// Environment variables that override values from the config file.
const (
	LogLevelEnvVar = "STACKNAV_LOG_LEVEL" // debug, info, warn, error
	LogPathEnvVar  = "STACKNAV_LOG_PATH"  // Full path of the log file
	LanguageEnvVar = "STACKNAV_LANG"      // BCP 47 tag, e.g. "es"
	ConfigEnvVar   = "STACKNAV_CONFIG"    // Config file used when no path is given
	TraceEnvVar    = "STACKNAV_TRACE"     // Enables internal debug logging when set
)

// Default values for stack configuration.
const (
	DefaultExitLifetime       = 250 * time.Millisecond // Time the host gets to animate an exited screen out
	DefaultMaxConcurrentLoads = 4                      // Screens prepared in parallel
	DefaultLanguage           = "en"
	DefaultLogLevel           = "info"
	DefaultTheme              = "default"
	DefaultConfigFilename     = "stacknav.toml"
)
