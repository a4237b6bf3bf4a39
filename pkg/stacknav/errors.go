package stacknav

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration problems.
var (
	// ErrUnknownKey indicates the config file contains keys stacknav does not read.
	ErrUnknownKey = errors.New("unknown key")

	// ErrInvalidValue indicates a config value the stack cannot run with.
	ErrInvalidValue = errors.New("invalid value")
)

// ConfigError reports a configuration file or value that could not be used.
type ConfigError struct {
	Path string // Config file, empty for environment or defaults
	Key  string // Offending key, if known (e.g., "exit_lifetime")
	Err  error  // Underlying error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Path != "" && e.Key != "":
		return fmt.Sprintf("stacknav: config %s: %s: %v", e.Path, e.Key, e.Err)
	case e.Path != "":
		return fmt.Sprintf("stacknav: config %s: %v", e.Path, e.Err)
	case e.Key != "":
		return fmt.Sprintf("stacknav: config: %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("stacknav: config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError checks if an error came from loading or validating a Config.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

func invalid(key string, format string, args ...any) error {
	return &ConfigError{Key: key, Err: fmt.Errorf("%w: "+format, append([]any{ErrInvalidValue}, args...)...)}
}
