package apierr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFromResponse_Classification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    Kind
		wantCode    string
		wantMessage string
	}{
		{
			name:        "unauthorized with server message",
			status:      401,
			body:        `{"message":"token expired","code":"token_expired"}`,
			wantKind:    KindAuth,
			wantCode:    "token_expired",
			wantMessage: "token expired",
		},
		{
			name:        "unauthorized default",
			status:      401,
			body:        ``,
			wantKind:    KindAuth,
			wantCode:    CodeUnauthorized,
			wantMessage: "Authentication failed.",
		},
		{
			name:        "insufficient funds default message",
			status:      402,
			body:        `{}`,
			wantKind:    KindInsufficientFunds,
			wantCode:    CodeInsufficientFunds,
			wantMessage: "Insufficient funds.",
		},
		{
			name:        "rate limit with nested error",
			status:      429,
			body:        `{"error":{"message":"slow down"}}`,
			wantKind:    KindRateLimit,
			wantCode:    CodeRateLimit,
			wantMessage: "slow down",
		},
		{
			name:        "server error falls back to generated message",
			status:      500,
			body:        `{"foo":"bar"}`,
			wantKind:    KindGeneric,
			wantCode:    "",
			wantMessage: "Request failed with status 500",
		},
		{
			name:        "bad request with string error",
			status:      400,
			body:        `{"error":"invalid_request","code":"bad_amount"}`,
			wantKind:    KindGeneric,
			wantCode:    "bad_amount",
			wantMessage: "invalid_request",
		},
		{
			name:        "not found with error_description",
			status:      404,
			body:        `{"error_description":"order not found"}`,
			wantKind:    KindGeneric,
			wantMessage: "order not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromResponse(tt.status, []byte(tt.body))
			if err.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s", err.Kind, tt.wantKind)
			}
			if err.Code != tt.wantCode {
				t.Fatalf("code = %q, want %q", err.Code, tt.wantCode)
			}
			if err.Message != tt.wantMessage {
				t.Fatalf("message = %q, want %q", err.Message, tt.wantMessage)
			}
			if err.Status != tt.status {
				t.Fatalf("status = %d, want %d", err.Status, tt.status)
			}
		})
	}
}

func TestFromResponse_KeepsDetails(t *testing.T) {
	err := FromResponse(502, []byte("<html>bad gateway</html>"))
	if s, ok := err.Details.(string); !ok || s != "<html>bad gateway</html>" {
		t.Fatalf("expected raw text details, got %#v", err.Details)
	}

	err = FromResponse(402, []byte(`{"balance":10}`))
	m, ok := err.Details.(map[string]any)
	if !ok || m["balance"] != float64(10) {
		t.Fatalf("expected decoded details, got %#v", err.Details)
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "validation",
			err:      Validation("Missing required fields: gdes", nil),
			contains: []string{"[validation]", "Missing required fields: gdes", "status 400", "code validation_error"},
		},
		{
			name:     "wrapped transport failure",
			err:      Wrap(CodeTimeout, "Request timeout", context.DeadlineExceeded),
			contains: []string{"[generic]", "Request timeout", "code timeout", "deadline exceeded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(s, want) {
					t.Errorf("error string %q does not contain %q", s, want)
				}
			}
		})
	}
}

func TestIsHelpers(t *testing.T) {
	wrapped := fmt.Errorf("payments.create: %w", InsufficientFunds("", nil))
	if !IsInsufficientFunds(wrapped) {
		t.Fatal("expected wrapped insufficient funds error to be detected")
	}
	if IsAuth(wrapped) || IsRateLimit(wrapped) || IsValidation(wrapped) {
		t.Fatal("kind helpers must not match other kinds")
	}
	if Is(errors.New("plain"), KindGeneric) {
		t.Fatal("plain errors carry no kind")
	}

	timeout := Wrap(CodeTimeout, "Request timeout", context.DeadlineExceeded)
	if !IsTimeout(timeout) {
		t.Fatal("expected timeout helper to match")
	}
	if !errors.Is(timeout, context.DeadlineExceeded) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
	if IsTimeout(Generic(500, "", "", nil)) {
		t.Fatal("generic 500 is not a timeout")
	}
}

func TestFromTransport(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"deadline", fmt.Errorf("exchange: %w", context.DeadlineExceeded), CodeTimeout},
		{"canceled", context.Canceled, CodeCanceled},
		{"refused", errors.New("dial tcp: connection refused"), CodeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := FromTransport(tt.err)
			if e.Kind != KindGeneric || e.Code != tt.wantCode || e.Status != 0 {
				t.Fatalf("unexpected error: %#v", e)
			}
			if !errors.Is(e, tt.err) {
				t.Fatal("cause must be preserved")
			}
		})
	}
}
