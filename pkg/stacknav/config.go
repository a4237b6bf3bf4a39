package stacknav

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/constants"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/internal"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/teahost"
	"github.com/BurntSushi/toml"
)

// Config is the on-disk configuration, read from a TOML file.
//
//	log_level = "debug"
//	log_path = "/tmp/stacknav/app.log"
//	language = "es"
//	exit_lifetime = "400ms"
//	max_concurrent_loads = 2
//	theme = "cannoli"
type Config struct {
	LogLevel           string        `toml:"log_level"`
	LogPath            string        `toml:"log_path"`
	Language           string        `toml:"language"`
	Trace              bool          `toml:"trace"`
	ExitLifetime       time.Duration `toml:"exit_lifetime"`
	MaxConcurrentLoads int           `toml:"max_concurrent_loads"`
	Theme              string        `toml:"theme"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		LogLevel:           constants.DefaultLogLevel,
		Language:           constants.DefaultLanguage,
		ExitLifetime:       constants.DefaultExitLifetime,
		MaxConcurrentLoads: constants.DefaultMaxConcurrentLoads,
		Theme:              constants.DefaultTheme,
	}
}

// LoadConfig reads path over the defaults, then applies environment overrides.
// An empty path falls back to $STACKNAV_CONFIG. A missing file is not an error,
// unknown keys are.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(constants.ConfigEnvVar)
	}

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, &ConfigError{Path: path, Err: err}
		}
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return cfg, &ConfigError{Path: path, Key: undecoded[0].String(), Err: ErrUnknownKey}
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(constants.LogLevelEnvVar); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(constants.LogPathEnvVar); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv(constants.LanguageEnvVar); v != "" {
		c.Language = v
	}
	if v := os.Getenv(constants.TraceEnvVar); v != "" {
		trace, err := strconv.ParseBool(v)
		if err != nil {
			return &ConfigError{Key: constants.TraceEnvVar, Err: err}
		}
		c.Trace = trace
	}
	return nil
}

// Validate rejects values the stack cannot run with.
func (c Config) Validate() error {
	if c.ExitLifetime < 0 {
		return invalid("exit_lifetime", "must not be negative, got %s", c.ExitLifetime)
	}
	if c.MaxConcurrentLoads < 1 {
		return invalid("max_concurrent_loads", "must be at least 1, got %d", c.MaxConcurrentLoads)
	}
	if _, err := internal.ParseLanguage(c.Language); err != nil {
		return invalid("language", "%v", err)
	}
	if _, err := teahost.ThemeByName(c.Theme); err != nil {
		return invalid("theme", "%v", err)
	}
	return nil
}

// StackOptions converts the config into router options.
func (c Config) StackOptions() []router.Option {
	return []router.Option{
		router.WithExitLifetime(c.ExitLifetime),
		router.WithMaxConcurrentLoads(c.MaxConcurrentLoads),
		router.WithLogger(internal.GetInternalLogger()),
	}
}
