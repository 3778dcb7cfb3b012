// Package auth owns the bearer credential used for every gateway call. The
// Manager authenticates against /token, caches the issued token with its
// expiry, and hands out a usable token on demand, renewing it shortly before
// it expires.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/bazik-io/bazik-sdk-go/pkg/apierr"
	"github.com/bazik-io/bazik-sdk-go/pkg/config"
	"github.com/bazik-io/bazik-sdk-go/pkg/transport"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// TokenPath is the authentication endpoint, relative to the base URL.
	TokenPath = "/token"
	// RefreshMargin is how long before expiry a token stops being considered valid.
	RefreshMargin = 5 * time.Minute
	// DefaultTokenLifetime applies when the gateway reports no expiry at all.
	DefaultTokenLifetime = time.Hour
)

// Credential is an issued bearer token and its absolute expiry.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

func (c Credential) validAt(now time.Time) bool {
	return c.Token != "" && now.Before(c.ExpiresAt.Add(-RefreshMargin))
}

type tokenRequest struct {
	UserID    string `json:"userID"`
	SecretKey string `json:"secretKey"`
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger (zap.L() by default).
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// Manager is safe for concurrent use. Concurrent authentications are
// collapsed into a single /token exchange.
type Manager struct {
	transport transport.Transport
	cfg       *config.Config
	logger    *zap.Logger
	now       func() time.Time
	group     singleflight.Group

	mu   sync.RWMutex
	cred Credential
}

// NewManager builds a Manager for a validated configuration.
func NewManager(tr transport.Transport, cfg *config.Config, opts ...Option) *Manager {
	m := &Manager{
		transport: tr,
		cfg:       cfg,
		logger:    zap.L(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AutoRefresh reports whether proactive renewal is enabled.
func (m *Manager) AutoRefresh() bool {
	return m.cfg.AutoRefresh()
}

// Authenticate performs the /token exchange unconditionally and, on success,
// replaces the cached credential and calls Config.OnTokenRefresh once.
//
// Failures never touch the cached credential: 401 yields a KindAuth error,
// 429 a KindRateLimit error, any other non-200 answer or a 200 without a
// token a KindGeneric error. Nothing is retried here.
func (m *Manager) Authenticate(ctx context.Context) (*Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, apierr.FromTransport(err)
	}

	// The shared exchange must not die with whichever caller started it; it is
	// still bounded by the request timeout.
	ch := m.group.DoChan("token", func() (any, error) {
		return m.authenticate(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		cred := res.Val.(Credential)
		return &cred, nil
	case <-ctx.Done():
		return nil, apierr.FromTransport(ctx.Err())
	}
}

// IsTokenValid reports whether a token is cached and is not within
// RefreshMargin of its expiry. The gateway remains authoritative.
func (m *Manager) IsTokenValid() bool {
	return m.current().validAt(m.now())
}

// Token returns a bearer token, authenticating first when none is cached or,
// with auto refresh on, when the cached one is no longer valid. With auto
// refresh off a stale token is returned as-is.
func (m *Manager) Token(ctx context.Context) (string, error) {
	cred := m.current()
	if cred.Token != "" && (!m.AutoRefresh() || cred.validAt(m.now())) {
		return cred.Token, nil
	}

	fresh, err := m.Authenticate(ctx)
	if err != nil {
		return "", err
	}
	return fresh.Token, nil
}

func (m *Manager) current() Credential {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cred
}

func (m *Manager) authenticate(ctx context.Context) (Credential, error) {
	body, err := json.Marshal(tokenRequest{UserID: m.cfg.UserID, SecretKey: m.cfg.SecretKey})
	if err != nil {
		return Credential{}, fmt.Errorf("encode token request: %w", err)
	}

	m.logger.Debug("authenticating", zap.String("url", m.cfg.BaseURL+TokenPath))
	resp, err := m.transport.Exchange(ctx, &transport.Request{
		Method: http.MethodPost,
		URL:    m.cfg.BaseURL + TokenPath,
		Header: http.Header{
			"Content-Type": []string{"application/json"},
			"Accept":       []string{"application/json"},
		},
		Body:    body,
		Timeout: m.cfg.Timeouts.Request,
	})
	if err != nil {
		m.logger.Warn("authentication exchange failed", zap.Error(err))
		return Credential{}, apierr.FromTransport(err)
	}

	payload, details := apierr.DecodeBody(resp.Body)
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return Credential{}, apierr.Auth(apierr.MessageFrom(payload), apierr.CodeFrom(payload), details)
	case http.StatusTooManyRequests:
		return Credential{}, apierr.RateLimit(apierr.MessageFrom(payload), details)
	default:
		return Credential{}, apierr.Generic(resp.StatusCode, apierr.CodeFrom(payload), apierr.MessageFrom(payload), details)
	}

	token, _ := payload["token"].(string)
	if token == "" {
		return Credential{}, apierr.Generic(resp.StatusCode, apierr.CodeInvalidResponse,
			"Authentication response did not include a token", details)
	}

	cred := Credential{Token: token, ExpiresAt: m.expiry(payload, token)}

	m.mu.Lock()
	m.cred = cred
	m.mu.Unlock()

	m.logger.Debug("authenticated", zap.Time("expires_at", cred.ExpiresAt))
	m.notify(token)
	return cred, nil
}

// notify runs the refresh hook; a panicking hook is logged and swallowed.
func (m *Manager) notify(token string) {
	hook := m.cfg.OnTokenRefresh
	if hook == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("token refresh hook panicked", zap.Any("panic", r))
		}
	}()
	hook(token)
}

// expiry derives the absolute expiry from the token response: expires_at
// (unix seconds, unix milliseconds or RFC 3339), then expires_in seconds, then
// the JWT exp claim, then DefaultTokenLifetime.
func (m *Manager) expiry(payload map[string]any, token string) time.Time {
	now := m.now()

	switch v := payload["expires_at"].(type) {
	case float64:
		if v > 0 {
			return fromUnix(v)
		}
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return fromUnix(f)
		}
	}

	if v, ok := payload["expires_in"].(float64); ok && v > 0 {
		return now.Add(time.Duration(v * float64(time.Second)))
	}

	if exp, ok := jwtExpiry(token); ok {
		return exp
	}

	m.logger.Debug("token response carries no expiry, using default lifetime",
		zap.Duration("lifetime", DefaultTokenLifetime))
	return now.Add(DefaultTokenLifetime)
}

// fromUnix treats values above 1e12 as milliseconds.
func fromUnix(v float64) time.Time {
	if v > 1e12 {
		return time.UnixMilli(int64(v))
	}
	return time.Unix(int64(v), 0)
}

// jwtExpiry reads the exp claim without verifying the signature; the gateway
// is the only party able to verify it.
func jwtExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
