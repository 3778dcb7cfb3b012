package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestConfigValidate_AppliesDefaults verifies that Validate applies default values
// for BaseURL and Timeouts when they are not explicitly set.
func TestConfigValidate_AppliesDefaults(t *testing.T) {
	cfg := &Config{
		UserID:    "user",
		SecretKey: "secret",
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("unexpected BaseURL: %s", cfg.BaseURL)
	}
	if cfg.Timeouts.Request != 30*time.Second {
		t.Fatalf("unexpected request timeout: %v", cfg.Timeouts.Request)
	}
	if !cfg.AutoRefresh() {
		t.Fatal("auto refresh should be on by default")
	}
}

// TestConfigValidate_RequiresCredentials verifies that Validate returns an error
// when UserID or SecretKey is missing.
func TestConfigValidate_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "empty", cfg: Config{}},
		{name: "missing secret", cfg: Config{UserID: "user"}},
		{name: "missing user", cfg: Config{SecretKey: "secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected error for missing credentials")
			}
		})
	}
}

// TestConfigValidate_BaseURL verifies trailing slash trimming and rejection of
// relative or non-http URLs.
func TestConfigValidate_BaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{name: "https", baseURL: "https://sandbox.bazik.io", want: "https://sandbox.bazik.io"},
		{name: "trailing slash", baseURL: "http://localhost:8080/", want: "http://localhost:8080"},
		{name: "with path", baseURL: "https://gw.example/api/v1/", want: "https://gw.example/api/v1"},
		{name: "relative", baseURL: "/api", wantErr: true},
		{name: "ftp", baseURL: "ftp://gw.example", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{UserID: "user", SecretKey: "secret", BaseURL: tt.baseURL}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.BaseURL != tt.want {
				t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, tt.want)
			}
		})
	}
}

// TestTimeoutsWithDefaults verifies that WithDefaults preserves explicitly set
// timeout values and fills in defaults for zero values.
func TestTimeoutsWithDefaults(t *testing.T) {
	in := Timeouts{
		Request: time.Second,
	}

	out := in.WithDefaults()

	// Provided values should be kept.
	if out.Request != time.Second {
		t.Fatalf("Request overwritten: got %v", out.Request)
	}

	// Zero values filled with defaults.
	if out.PollInterval != 5*time.Second {
		t.Fatalf("PollInterval default mismatch: %v", out.PollInterval)
	}
	if out.PollTimeout != 5*time.Minute {
		t.Fatalf("PollTimeout default mismatch: %v", out.PollTimeout)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bazik.yaml")
	data := []byte(`user_id: "u-1"
secret_key: "s-1"
base_url: "https://sandbox.bazik.io/"
disable_auto_refresh: true
timeouts:
  request: 15s
  poll_interval: 2s
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.UserID != "u-1" || cfg.SecretKey != "s-1" {
		t.Fatalf("unexpected credentials: %+v", cfg)
	}
	if cfg.AutoRefresh() {
		t.Fatal("expected auto refresh disabled")
	}
	if cfg.Timeouts.Request != 15*time.Second || cfg.Timeouts.PollInterval != 2*time.Second {
		t.Fatalf("unexpected timeouts: %+v", cfg.Timeouts)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if cfg.BaseURL != "https://sandbox.bazik.io" {
		t.Fatalf("unexpected BaseURL: %s", cfg.BaseURL)
	}
	if cfg.Timeouts.PollTimeout != 5*time.Minute {
		t.Fatalf("expected default poll timeout, got %v", cfg.Timeouts.PollTimeout)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("BAZIK_USER_ID", "env-user")
	t.Setenv("BAZIK_SECRET_KEY", "env-secret")
	t.Setenv("BAZIK_DEBUG", "true")
	t.Setenv("BAZIK_TIMEOUT", "12s")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}
	if cfg.UserID != "env-user" || cfg.SecretKey != "env-secret" {
		t.Fatalf("unexpected credentials: %+v", cfg)
	}
	if !cfg.Debug {
		t.Fatal("expected debug from env")
	}
	if cfg.Timeouts.Request != 12*time.Second {
		t.Fatalf("unexpected request timeout: %v", cfg.Timeouts.Request)
	}
}

func TestFromEnv_BadDuration(t *testing.T) {
	t.Setenv("BAZIK_TIMEOUT", "soon")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected parse error for malformed duration")
	}
}
