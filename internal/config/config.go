package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the client configuration, parsed from PRAKTIS_* environment
// variables with defaults suitable for a local service.
type Config struct {
	// BaseURL is the root of the practice service.
	BaseURL string `env:"PRAKTIS_BASE_URL" envDefault:"http://localhost:8000"`

	// HTTPTimeout bounds every single request.
	HTTPTimeout time.Duration `env:"PRAKTIS_HTTP_TIMEOUT" envDefault:"15s"`

	// PollInterval is the progress refresh cadence.
	PollInterval time.Duration `env:"PRAKTIS_POLL_INTERVAL" envDefault:"2s"`

	// DBPath overrides the local history database location.
	DBPath string `env:"PRAKTIS_DB"`

	// LogFile enables debug logging to the given file. Empty disables.
	LogFile string `env:"PRAKTIS_LOG_FILE"`

	// OpenAIKey enables the hint feature when set.
	OpenAIKey string `env:"OPENAI_API_KEY"`

	// HintModel is the model used for hints.
	HintModel string `env:"PRAKTIS_HINT_MODEL" envDefault:"gpt-4o-mini"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env tags cannot express.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("PRAKTIS_BASE_URL %q is not an absolute URL", c.BaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("PRAKTIS_HTTP_TIMEOUT must be positive")
	}
	if c.PollInterval < 500*time.Millisecond {
		return fmt.Errorf("PRAKTIS_POLL_INTERVAL must be at least 500ms")
	}
	return nil
}

// HintsEnabled reports whether the optional hint feature is usable.
func (c Config) HintsEnabled() bool {
	return c.OpenAIKey != ""
}
