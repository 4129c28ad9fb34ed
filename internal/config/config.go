package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL         string `mapstructure:"API_BASE_URL"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`
	StateDir           string `mapstructure:"STATE_DIR"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	Env                string `mapstructure:"ENV"`
	SandboxPort        string `mapstructure:"SANDBOX_PORT"`
	SandboxJWTSecret   string `mapstructure:"SANDBOX_JWT_SECRET"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 30)
	v.SetDefault("STATE_DIR", defaultStateDir())
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENV", "development")
	v.SetDefault("SANDBOX_PORT", "8000")
	v.SetDefault("SANDBOX_JWT_SECRET", "")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("API_BASE_URL")
	v.BindEnv("HTTP_TIMEOUT_SECONDS")
	v.BindEnv("STATE_DIR")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("ENV")
	v.BindEnv("SANDBOX_PORT")
	v.BindEnv("SANDBOX_JWT_SECRET")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// HTTPTimeout returns the configured request timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// SessionPath is the location of the persisted session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.StateDir, "session.json")
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".healthbridge"
	}
	return filepath.Join(home, ".healthbridge")
}
