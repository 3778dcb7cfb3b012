// Package gateway provides in-process stand-ins for the payment gateway used
// by SDK tests: a Spy transport that records every exchange and answers from a
// handler function, and an httptest-backed Server for end-to-end tests over
// real HTTP.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bazik-io/bazik-sdk-go/pkg/transport"
)

// HandlerFunc answers one recorded exchange.
type HandlerFunc func(req *transport.Request) (*transport.Response, error)

// Spy is a transport.Transport that records requests before delegating to a
// handler.
type Spy struct {
	mu      sync.Mutex
	calls   []*transport.Request
	handler HandlerFunc
}

// NewSpy builds a Spy answering with handler.
func NewSpy(handler HandlerFunc) *Spy {
	return &Spy{handler: handler}
}

// Exchange records req and returns the handler's answer.
func (s *Spy) Exchange(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.handler(req)
}

// Calls returns a copy of the recorded requests.
func (s *Spy) Calls() []*transport.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*transport.Request(nil), s.calls...)
}

// Total returns the number of recorded exchanges.
func (s *Spy) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Count returns the number of recorded exchanges whose URL path equals path.
func (s *Spy) Count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if PathOf(c) == path {
			n++
		}
	}
	return n
}

// PathOf returns the escaped URL path of a recorded request.
func PathOf(req *transport.Request) string {
	u, err := url.Parse(req.URL)
	if err != nil {
		return ""
	}
	return u.EscapedPath()
}

// JSON builds a response with v encoded as the body.
func JSON(status int, v any) *transport.Response {
	body, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("gateway: encode response: %v", err))
	}
	return &transport.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       body,
	}
}

// TokenBody is a successful /token answer.
func TokenBody(token string, expiresAt time.Time) map[string]any {
	return map[string]any{
		"token":      token,
		"expires_at": expiresAt.Unix(),
		"user_id":    "test-user",
	}
}

// Server is an httptest gateway with per-path handlers and hit counters.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	hits   map[string]int
	routes map[string]http.HandlerFunc
}

// NewServer starts a Server; it is closed through t.Cleanup. Tests are skipped
// when the sandbox forbids listening sockets.
func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		hits:   make(map[string]int),
		routes: make(map[string]http.HandlerFunc),
	}
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprint(r)
			if strings.Contains(msg, "operation not permitted") {
				t.Skip("network operations not permitted in sandbox")
			}
			panic(r)
		}
	}()
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle registers h for "METHOD /escaped/path".
func (s *Server) Handle(method, path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = h
}

// Hits returns how many times "METHOD /escaped/path" was requested.
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.EscapedPath()
	s.mu.Lock()
	s.hits[key]++
	h := s.routes[key]
	s.mu.Unlock()

	if h == nil {
		WriteJSON(w, http.StatusNotFound, map[string]any{"message": "no route for " + key})
		return
	}
	h(w, r)
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
