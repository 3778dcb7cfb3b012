// Package dispatch executes authenticated gateway calls. A Dispatcher attaches
// the bearer token to every exchange, re-authenticates and retries exactly once
// when the gateway answers 401, and turns every failure into an *apierr.Error.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bazik-io/bazik-sdk-go/pkg/apierr"
	"github.com/bazik-io/bazik-sdk-go/pkg/auth"
	"github.com/bazik-io/bazik-sdk-go/pkg/config"
	"github.com/bazik-io/bazik-sdk-go/pkg/transport"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RequestIDHeader carries a fresh UUID on every exchange.
const RequestIDHeader = "X-Request-Id"

const tracerName = "github.com/bazik-io/bazik-sdk-go/pkg/dispatch"

// TokenSource is the part of auth.Manager the Dispatcher relies on.
type TokenSource interface {
	// Token returns a usable bearer token, authenticating if needed.
	Token(ctx context.Context) (string, error)
	// Authenticate obtains a new token unconditionally.
	Authenticate(ctx context.Context) (*auth.Credential, error)
	// AutoRefresh reports whether a 401 may be retried after re-authentication.
	AutoRefresh() bool
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger (zap.L() by default).
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithTracerProvider sets the OpenTelemetry provider (the global one by default).
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(d *Dispatcher) {
		if tp != nil {
			d.tracer = tp.Tracer(tracerName)
		}
	}
}

// Dispatcher is safe for concurrent use; calls share only the TokenSource.
type Dispatcher struct {
	transport transport.Transport
	tokens    TokenSource
	baseURL   string
	timeout   time.Duration
	logger    *zap.Logger
	tracer    trace.Tracer
}

// New builds a Dispatcher for a validated configuration.
func New(tr transport.Transport, tokens TokenSource, cfg *config.Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport: tr,
		tokens:    tokens,
		baseURL:   cfg.BaseURL,
		timeout:   cfg.Timeouts.Request,
		logger:    zap.L(),
		tracer:    otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Do performs one logical call and decodes a successful body into out. out
// may be nil to discard the body.
func (d *Dispatcher) Do(ctx context.Context, method, path string, body, out any) error {
	raw, err := d.Raw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		e := apierr.Wrap(apierr.CodeInvalidResponse, "Failed to decode response body", err)
		e.Details = string(raw)
		return e
	}
	return nil
}

// Raw performs one logical call and returns the successful body verbatim.
//
// The call carries the current token. On 401 with auto refresh enabled the
// token is renewed unconditionally and the call is retried once; a second 401
// is a KindAuth error. 402, 429 and every other status >= 400 are classified
// by apierr.FromResponse. No other status is ever retried.
func (d *Dispatcher) Raw(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	ctx, span := d.tracer.Start(ctx, "bazik.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("bazik.path", path),
		))
	defer span.End()

	raw, err := d.call(ctx, span, method, path, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return raw, err
}

func (d *Dispatcher) call(ctx context.Context, span trace.Span, method, path string, body any) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
	}

	token, err := d.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := d.exchange(ctx, method, path, payload, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if !d.tokens.AutoRefresh() {
			span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
			return nil, apierr.FromResponse(resp.StatusCode, resp.Body)
		}

		d.logger.Warn("unauthorized, refreshing token and retrying once",
			zap.String("method", method), zap.String("path", path))
		span.SetAttributes(attribute.Bool("bazik.retried", true))

		cred, err := d.tokens.Authenticate(ctx)
		if err != nil {
			return nil, err
		}
		if resp, err = d.exchange(ctx, method, path, payload, cred.Token); err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
			obj, details := apierr.DecodeBody(resp.Body)
			return nil, apierr.Auth("authentication failed after token refresh", apierr.CodeFrom(obj), details)
		}
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apierr.FromResponse(resp.StatusCode, resp.Body)
	}
	return json.RawMessage(resp.Body), nil
}

func (d *Dispatcher) exchange(ctx context.Context, method, path string, body []byte, token string) (*transport.Response, error) {
	requestID := uuid.NewString()
	header := make(http.Header, 4)
	header.Set("Authorization", "Bearer "+token)
	header.Set("Content-Type", "application/json")
	header.Set("Accept", "application/json")
	header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := d.transport.Exchange(ctx, &transport.Request{
		Method:  method,
		URL:     d.baseURL + path,
		Header:  header,
		Body:    body,
		Timeout: d.timeout,
	})
	if err != nil {
		d.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, apierr.FromTransport(err)
	}

	d.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(start)))
	return resp, nil
}
