// Package config loads mailtriage settings from .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/csheth/mailtriage/internal/classifier"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "json"
	stateSubdir      = "mailtriage"
	logFileName      = "mailtriage.log"
)

var validate = validator.New()

// Config is the root configuration.
type Config struct {
	Endpoint string        `env:"MAILTRIAGE_ENDPOINT" validate:"required,url"`
	Timeout  time.Duration `env:"MAILTRIAGE_TIMEOUT" validate:"gte=0"`
	Log      LogConfig
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level    string `env:"MAILTRIAGE_LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format   string `env:"MAILTRIAGE_LOG_FORMAT" validate:"oneof=json console"`
	File     string `env:"MAILTRIAGE_LOG_FILE"`
	Disabled bool   `env:"MAILTRIAGE_LOG_DISABLED"`
}

// Load reads the given .env files (".env" when none are given; missing files
// are skipped), then the process environment, and applies defaults.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if _, err := env.UnmarshalFromEnviron(&cfg.Log); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	c.Endpoint = strings.TrimRight(strings.TrimSpace(c.Endpoint), "/")
	if c.Endpoint == "" {
		c.Endpoint = classifier.DefaultEndpoint
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Log.File) == "" {
		c.Log.File = DefaultLogPath()
	}
}

// Validate checks the populated config.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Classifier returns the client settings derived from c.
func (c Config) Classifier() classifier.Config {
	return classifier.Config{Endpoint: c.Endpoint, Timeout: c.Timeout}
}

// DefaultLogPath places the log under the user's state directory.
func DefaultLogPath() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil {
			base = filepath.Join(home, ".local", "state")
		} else {
			base = os.TempDir()
		}
	}
	return filepath.Join(base, stateSubdir, logFileName)
}
