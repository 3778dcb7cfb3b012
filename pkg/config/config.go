// Package config defines the runtime configuration for the SDK: gateway
// credentials, base URL, token refresh behaviour, debug mode and operation
// timeouts. It also provides validation, defaulting and loading helpers.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the production gateway.
const DefaultBaseURL = "https://api.bazik.io"

// Config holds all SDK settings required to initialize a client.
// Use Validate to fill implicit defaults and to check for required fields.
type Config struct {
	// UserID is the account identifier sent to /token (required).
	UserID string `json:"user_id" yaml:"user_id" env:"BAZIK_USER_ID"`
	// SecretKey is the account secret sent to /token (required).
	SecretKey string `json:"secret_key" yaml:"secret_key" env:"BAZIK_SECRET_KEY"`
	// BaseURL is the gateway root all endpoint paths are relative to.
	// Default: https://api.bazik.io
	BaseURL string `json:"base_url" yaml:"base_url" env:"BAZIK_BASE_URL"`
	// DisableAutoRefresh turns off proactive token renewal and the
	// re-authenticate-and-retry on 401. Integrators then own the refresh cadence.
	DisableAutoRefresh bool `json:"disable_auto_refresh" yaml:"disable_auto_refresh" env:"BAZIK_DISABLE_AUTO_REFRESH"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug" env:"BAZIK_DEBUG"`
	// Timeouts configures per-operation timeouts. See Timeouts.WithDefaults for defaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts"`
	// OnTokenRefresh, when set, is called with every newly issued token.
	// It runs synchronously after the credential is stored; a panic inside it
	// is logged and does not fail the authentication.
	OnTokenRefresh func(token string) `json:"-" yaml:"-"`
}

// Timeouts controls SDK operation deadlines.
// Zero values will be replaced by sane defaults in WithDefaults.
type Timeouts struct {
	// Request bounds one HTTP exchange.
	Request time.Duration `json:"request" yaml:"request" env:"BAZIK_TIMEOUT"`
	// PollInterval is the delay between verify calls while polling a payment.
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval" env:"BAZIK_POLL_INTERVAL"`
	// PollTimeout is the overall polling deadline.
	PollTimeout time.Duration `json:"poll_timeout" yaml:"poll_timeout" env:"BAZIK_POLL_TIMEOUT"`
}

// AutoRefresh reports whether proactive renewal and 401 retry are enabled.
func (c *Config) AutoRefresh() bool {
	return !c.DisableAutoRefresh
}

// Validate normalizes the configuration by applying the default BaseURL and
// timeouts, and verifies that credentials are present and BaseURL is an
// absolute http(s) URL.
func (c *Config) Validate() error {

	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	c.Timeouts = c.Timeouts.WithDefaults()

	if c.UserID == "" {
		return errors.New("user ID is required")
	}

	if c.SecretKey == "" {
		return errors.New("secret key is required")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: must be an absolute http(s) URL", c.BaseURL)
	}

	return nil
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Request:      30s
//	PollInterval: 5s
//	PollTimeout:  5m
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Request <= 0 {
		tt.Request = 30 * time.Second
	}
	if tt.PollInterval <= 0 {
		tt.PollInterval = 5 * time.Second
	}
	if tt.PollTimeout <= 0 {
		tt.PollTimeout = 5 * time.Minute
	}
	return tt
}

// LoadFile reads a YAML configuration file. The result is not validated.
func LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := new(Config)
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv reads the BAZIK_* environment variables. The result is not validated.
func FromEnv() (*Config, error) {
	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
