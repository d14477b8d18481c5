package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL       string `mapstructure:"API_BASE_URL"`
	Env              string `mapstructure:"ENV"`
	AuthMode         string `mapstructure:"AUTH_MODE"`
	SessionFile      string `mapstructure:"SESSION_FILE"`
	HTTPTimeoutSecs  int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`
	DemoPort         string `mapstructure:"DEMO_PORT"`
	DemoResetMinutes int    `mapstructure:"DEMO_RESET_MINUTES"`
	DemoJWTSecret    string `mapstructure:"DEMO_JWT_SECRET"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("AUTH_MODE", "") // auto-detect: "" -> inferred from ENV
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 15)
	v.SetDefault("DEMO_PORT", "8000")
	v.SetDefault("DEMO_RESET_MINUTES", 0)
	v.SetDefault("DEMO_JWT_SECRET", "carelink-demo-secret")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("API_BASE_URL")
	v.BindEnv("ENV")
	v.BindEnv("AUTH_MODE")
	v.BindEnv("SESSION_FILE")
	v.BindEnv("HTTP_TIMEOUT_SECONDS")
	v.BindEnv("DEMO_PORT")
	v.BindEnv("DEMO_RESET_MINUTES")
	v.BindEnv("DEMO_JWT_SECRET")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the client is configured for production use.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ResolvedAuthMode returns the effective auth mode. If AUTH_MODE is explicitly
// set, it is returned. Otherwise, the mode is inferred:
//   - ENV=development → "demo" (fixture credentials, no credential call)
//   - Otherwise       → "api"  (real authentication endpoint)
func (c *Config) ResolvedAuthMode() string {
	if c.AuthMode != "" {
		return c.AuthMode
	}
	if c.IsDev() {
		return "demo"
	}
	return "api"
}

// Validate checks that the configuration is safe to run. The demo
// authenticator is a placeholder fixture and must never be active in
// production.
func (c *Config) Validate() error {
	mode := c.ResolvedAuthMode()
	if mode != "demo" && mode != "api" {
		return fmt.Errorf("AUTH_MODE must be \"demo\" or \"api\", got %q", mode)
	}
	if c.IsProduction() && mode == "demo" {
		return fmt.Errorf(
			"AUTH_MODE=demo uses fixture credentials and is refused in production. " +
				"Set AUTH_MODE=api and point API_BASE_URL at the real backend")
	}
	if c.HTTPTimeoutSecs <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive, got %d", c.HTTPTimeoutSecs)
	}
	if c.DemoResetMinutes < 0 {
		return fmt.Errorf("DEMO_RESET_MINUTES must not be negative, got %d", c.DemoResetMinutes)
	}
	return nil
}
