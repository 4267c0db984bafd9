package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Output formats of the read command
const (
	FormatStandard = "standard"
	FormatJSON     = "json"
)

// Config holds the jwtctl settings read from the environment
type Config struct {
	// LogLevel is the level used when neither --verbose nor --debug is given
	LogLevel string `env:"JWTCTL_LOG_LEVEL" envDefault:"warn"`

	// PEMPassword is used for encrypted private keys when --password is not given
	PEMPassword string `env:"JWTCTL_PEM_PASSWORD"`

	// OutputFormat is the default format of the read command: standard or json
	OutputFormat string `env:"JWTCTL_OUTPUT_FORMAT" envDefault:"standard"`
}

// Load reads the configuration from the environment. Variables from the
// given .env files (".env" when none are named) are applied first without
// overriding variables that are already set. Missing files are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the log level and output format
func (c *Config) Validate() error {
	var level zapcore.Level
	if err := level.Set(c.LogLevel); err != nil {
		return fmt.Errorf("invalid JWTCTL_LOG_LEVEL %q: %w", c.LogLevel, err)
	}

	switch c.OutputFormat {
	case FormatStandard, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid JWTCTL_OUTPUT_FORMAT %q: expected %s or %s", c.OutputFormat, FormatStandard, FormatJSON)
	}
}
