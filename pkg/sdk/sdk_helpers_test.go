package sdk

import (
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/bazik-io/bazik-sdk-go/internal/testutil/gateway"
	"github.com/bazik-io/bazik-sdk-go/pkg/auth"
	"github.com/bazik-io/bazik-sdk-go/pkg/config"
	"github.com/bazik-io/bazik-sdk-go/pkg/transport"
	"go.uber.org/zap"
)

// routes maps an escaped path to its handler; /token is always answered.
type routes map[string]gateway.HandlerFunc

func newSpy(r routes) *gateway.Spy {
	var mu sync.Mutex
	issued := 0
	return gateway.NewSpy(func(req *transport.Request) (*transport.Response, error) {
		path := gateway.PathOf(req)
		if path == auth.TokenPath {
			mu.Lock()
			issued++
			n := issued
			mu.Unlock()
			return gateway.JSON(http.StatusOK, gateway.TokenBody("tok-"+strconv.Itoa(n), time.Now().Add(time.Hour))), nil
		}
		if h, ok := r[path]; ok {
			return h(req)
		}
		return gateway.JSON(http.StatusNotFound, map[string]any{"message": "not found: " + path}), nil
	})
}

func testConfig() *config.Config {
	return &config.Config{UserID: "merchant-1", SecretKey: "secret-1", BaseURL: "https://gw.test"}
}

func newTestClient(t *testing.T, r routes) (*Client, *gateway.Spy) {
	t.Helper()
	spy := newSpy(r)
	client, err := NewClient(testConfig(), WithTransport(spy), WithLogger(zap.NewNop()))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, spy
}

func reply(status int, body any) gateway.HandlerFunc {
	return func(*transport.Request) (*transport.Response, error) {
		return gateway.JSON(status, body), nil
	}
}
