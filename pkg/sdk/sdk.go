// Package sdk exposes the high-level Bazik client. It wires together the
// credential manager, the request dispatcher and the HTTP transport, and hands
// out the Payments, Transfers and Wallet facades.
package sdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bazik-io/bazik-sdk-go/pkg/auth"
	"github.com/bazik-io/bazik-sdk-go/pkg/config"
	"github.com/bazik-io/bazik-sdk-go/pkg/dispatch"
	"github.com/bazik-io/bazik-sdk-go/pkg/transport"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Option customizes a Client.
type Option func(*options)

type options struct {
	transport      transport.Transport
	httpClient     *http.Client
	logger         *zap.Logger
	tracerProvider trace.TracerProvider
	clock          func() time.Time
}

// WithTransport replaces the HTTP transport entirely, mainly for tests.
func WithTransport(tr transport.Transport) Option {
	return func(o *options) { o.transport = tr }
}

// WithHTTPClient sets the *http.Client used by the default transport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger sets the logger shared by all components.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTracerProvider sets the OpenTelemetry provider used for request spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithClock replaces time.Now for token freshness checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// Client is the Bazik API entry point. It is safe for concurrent use; all
// facades share one credential.
type Client struct {
	cfg        *config.Config
	logger     *zap.Logger
	auth       *auth.Manager
	dispatcher *dispatch.Dispatcher

	payments  *paymentsClient
	transfers *transfersClient
	wallet    *walletClient
}

// NewClient validates cfg (filling defaults in place) and builds a Client. No
// network call is made until the first API call or Authenticate.
func NewClient(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("bazik: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("bazik: invalid config: %w", err)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = newLogger(cfg)
	}

	tr := o.transport
	if tr == nil {
		tr = transport.NewHTTPTransport(o.httpClient, logger)
	}

	authOpts := []auth.Option{auth.WithLogger(logger)}
	if o.clock != nil {
		authOpts = append(authOpts, auth.WithClock(o.clock))
	}
	manager := auth.NewManager(tr, cfg, authOpts...)

	dispatchOpts := []dispatch.Option{dispatch.WithLogger(logger)}
	if o.tracerProvider != nil {
		dispatchOpts = append(dispatchOpts, dispatch.WithTracerProvider(o.tracerProvider))
	}
	d := dispatch.New(tr, manager, cfg, dispatchOpts...)

	if cfg.Debug {
		logger.Debug("bazik client initialized",
			zap.String("base_url", cfg.BaseURL),
			zap.Bool("auto_refresh", cfg.AutoRefresh()),
			zap.Duration("timeout", cfg.Timeouts.Request))
	}

	return &Client{
		cfg:        cfg,
		logger:     logger,
		auth:       manager,
		dispatcher: d,
		payments:   newPaymentsClient(d, cfg, logger),
		transfers:  newTransfersClient(d),
		wallet:     newWalletClient(d),
	}, nil
}

// newLogger returns the global logger, or a development console logger at
// debug level when cfg.Debug is set.
func newLogger(cfg *config.Config) *zap.Logger {
	if !cfg.Debug {
		return zap.L()
	}
	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	logger, err := c.Build()
	if err != nil {
		return zap.L()
	}
	return logger.Named("bazik")
}

// Authenticate obtains a new token unconditionally. Other calls authenticate
// lazily, so calling it is optional.
func (c *Client) Authenticate(ctx context.Context) (*auth.Credential, error) {
	return c.auth.Authenticate(ctx)
}

// IsTokenValid reports whether the cached token is present and not about to
// expire.
func (c *Client) IsTokenValid() bool {
	return c.auth.IsTokenValid()
}

// Token returns a usable bearer token, authenticating if needed.
func (c *Client) Token(ctx context.Context) (string, error) {
	return c.auth.Token(ctx)
}

// Payments returns the MonCash payments facade.
func (c *Client) Payments() Payments {
	return c.payments
}

// Transfers returns the MonCash/NatCash transfers facade.
func (c *Client) Transfers() Transfers {
	return c.transfers
}

// Wallet returns the wallet facade.
func (c *Client) Wallet() Wallet {
	return c.wallet
}
