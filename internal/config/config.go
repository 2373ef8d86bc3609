package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultAPIURL is the production endpoint of the empire service.
const DefaultAPIURL = "https://functions.poehali.dev/7fc8d65c-7223-44b0-bea4-ccccee031904"

// Config is the process configuration, read from EMPIRE_* environment variables.
type Config struct {
	APIURL      string        `env:"EMPIRE_API_URL,      default=https://functions.poehali.dev/7fc8d65c-7223-44b0-bea4-ccccee031904"`
	SiteURL     string        `env:"EMPIRE_SITE_URL,     default=https://anarchist-empire.poehali.dev"`
	StateDir    string        `env:"EMPIRE_STATE_DIR"`
	LogLevel    string        `env:"EMPIRE_LOG_LEVEL,    default=info"`
	HTTPTimeout time.Duration `env:"EMPIRE_HTTP_TIMEOUT, default=30s"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l. StateDir defaults to ~/.empire.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: get home dir: %w", err)
		}
		cfg.StateDir = filepath.Join(home, ".empire")
	}
	if cfg.HTTPTimeout < 0 {
		return nil, fmt.Errorf("config: EMPIRE_HTTP_TIMEOUT must not be negative")
	}
	return &cfg, nil
}

// StatePath returns the file holding the persisted session.
func (c *Config) StatePath() string {
	return filepath.Join(c.StateDir, "state.yaml")
}
