// Package config provides configuration management for the Bazik SDK.
//
// This package defines the Config structure that controls SDK behavior:
// gateway credentials, base URL, token refresh policy, logging and timeouts.
//
// # Basic Configuration
//
// The minimum required configuration is the account identifier and secret:
//
//	cfg := &config.Config{
//		UserID:    "YOUR_USER_ID",
//		SecretKey: "YOUR_SECRET_KEY",
//	}
//
// # Base URL
//
// All endpoint paths are relative to BaseURL, which defaults to the production
// gateway (https://api.bazik.io). Point it elsewhere for sandboxes or tests:
//
//	cfg.BaseURL = "https://sandbox.bazik.io"
//
// A trailing slash is trimmed by Validate.
//
// # Token Refresh
//
// By default the SDK renews the bearer token shortly before it expires and,
// when the gateway answers 401, re-authenticates once and retries the call.
// Set DisableAutoRefresh to take full control of the refresh cadence; a stale
// token is then sent as-is and a 401 is surfaced immediately.
//
// OnTokenRefresh is invoked with every newly issued token:
//
//	cfg.OnTokenRefresh = func(token string) {
//		log.Printf("new token issued (%d bytes)", len(token))
//	}
//
// # Timeouts
//
//	cfg.Timeouts = config.Timeouts{
//		Request:      10 * time.Second, // one HTTP exchange
//		PollInterval: 2 * time.Second,  // delay between payment verify calls
//		PollTimeout:  time.Minute,      // overall polling deadline
//	}
//
// Zero values are replaced with defaults via WithDefaults() (30s, 5s, 5m).
//
// # Loading
//
// LoadFile reads YAML:
//
//	user_id: "YOUR_USER_ID"
//	secret_key: "YOUR_SECRET_KEY"
//	base_url: "https://api.bazik.io"
//	timeouts:
//	  request: 15s
//	  poll_interval: 3s
//
// FromEnv reads BAZIK_USER_ID, BAZIK_SECRET_KEY, BAZIK_BASE_URL,
// BAZIK_DISABLE_AUTO_REFRESH, BAZIK_DEBUG, BAZIK_TIMEOUT,
// BAZIK_POLL_INTERVAL and BAZIK_POLL_TIMEOUT.
//
// Neither loader validates; call Validate() (sdk.NewClient does it for you).
//
// # Thread Safety
//
// Config instances should be created once and not modified after passing to
// sdk.NewClient(). The Config is read-only during SDK operations.
package config
