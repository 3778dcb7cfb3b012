// Package transport performs single HTTP exchanges for the SDK. The Transport
// interface is the only seam between the SDK and the network; tests substitute
// it with Func or an httptest server.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrTimeout is returned (wrapped) when an exchange exceeds its timeout.
var ErrTimeout = errors.New("transport: request timed out")

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 << 20

// Request describes one HTTP exchange.
type Request struct {
	Method  string
	URL     string
	Header  http.Header
	Body    []byte
	Timeout time.Duration
}

// Response is the outcome of an exchange that reached the server.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs one HTTP exchange. Implementations return a non-nil
// Response for every answer the server gives, whatever its status, and an
// error only for transport-level failures (network error, timeout, cancel).
type Transport interface {
	Exchange(ctx context.Context, req *Request) (*Response, error)
}

// Func adapts a plain function to Transport.
type Func func(ctx context.Context, req *Request) (*Response, error)

// Exchange calls f.
func (f Func) Exchange(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// HTTPTransport is the production Transport backed by net/http.
type HTTPTransport struct {
	client *http.Client
	logger *zap.Logger
}

// NewHTTPTransport wraps client (http.DefaultClient when nil).
func NewHTTPTransport(client *http.Client, logger *zap.Logger) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.L()
	}
	return &HTTPTransport{client: client, logger: logger}
}

// Exchange sends req and reads the whole response body. When req.Timeout is
// positive the exchange is cancelled after it elapses and the returned error
// wraps ErrTimeout and context.DeadlineExceeded.
func (t *HTTPTransport) Exchange(ctx context.Context, req *Request) (*Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, t.classify(ctx, err)
	}
	defer func(Body io.ReadCloser) {
		if cerr := Body.Close(); cerr != nil {
			t.logger.Debug("failed to close response body", zap.Error(cerr))
		}
	}(resp.Body)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, t.classify(ctx, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

func (t *HTTPTransport) classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, context.DeadlineExceeded)
	}
	return err
}
