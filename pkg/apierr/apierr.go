// Package apierr defines the structured error values returned by the SDK. Every
// failure surfaced to a caller, whether detected locally (input validation) or
// reported by the gateway (non-2xx response) or the network layer, is an *Error
// tagged with one of a closed set of Kinds.
package apierr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind discriminates the closed set of error variants produced by the SDK.
type Kind string

const (
	// KindGeneric covers any non-2xx response not mapped to a narrower kind,
	// transport failures and polling deadlines.
	KindGeneric Kind = "generic"
	// KindValidation is raised locally before any network call.
	KindValidation Kind = "validation"
	// KindAuth reports rejected credentials (HTTP 401).
	KindAuth Kind = "auth"
	// KindInsufficientFunds reports HTTP 402 responses.
	KindInsufficientFunds Kind = "insufficient_funds"
	// KindRateLimit reports HTTP 429 responses.
	KindRateLimit Kind = "rate_limit"
)

// Machine-readable codes carried in Error.Code.
const (
	CodeValidation        = "validation_error"
	CodeUnauthorized      = "unauthorized"
	CodeInsufficientFunds = "insufficient_funds"
	CodeRateLimit         = "rate_limit_exceeded"
	CodeTimeout           = "timeout"
	CodeNetwork           = "network_error"
	CodeCanceled          = "canceled"
	CodeInvalidResponse   = "invalid_response"
)

// Default messages used when the gateway does not supply one.
const (
	defaultAuthMessage              = "Authentication failed."
	defaultInsufficientFundsMessage = "Insufficient funds."
	defaultRateLimitMessage         = "Rate limit exceeded."
)

// Error is an immutable structured failure.
//
// Status is the HTTP status associated with the failure, or 0 when none applies
// (transport failures, polling deadline). Details usually holds the decoded
// response body; Cause holds the underlying transport error, if any.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Code    string
	Details any
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "bazik: [%s] %s", e.Kind, e.Message)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d", e.Status)
		if e.Code != "" {
			fmt.Fprintf(&b, ", code %s", e.Code)
		}
		b.WriteString(")")
	} else if e.Code != "" {
		fmt.Fprintf(&b, " (code %s)", e.Code)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap exposes the transport cause so errors.Is(err, context.DeadlineExceeded)
// and friends keep working.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Validation builds a KindValidation error (status 400, code "validation_error").
func Validation(message string, details any) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Details: details,
	}
}

// Auth builds a KindAuth error. Empty message and code fall back to defaults.
func Auth(message, code string, details any) *Error {
	if message == "" {
		message = defaultAuthMessage
	}
	if code == "" {
		code = CodeUnauthorized
	}
	return &Error{
		Kind:    KindAuth,
		Message: message,
		Status:  http.StatusUnauthorized,
		Code:    code,
		Details: details,
	}
}

// InsufficientFunds builds a KindInsufficientFunds error (status 402).
func InsufficientFunds(message string, details any) *Error {
	if message == "" {
		message = defaultInsufficientFundsMessage
	}
	return &Error{
		Kind:    KindInsufficientFunds,
		Message: message,
		Status:  http.StatusPaymentRequired,
		Code:    CodeInsufficientFunds,
		Details: details,
	}
}

// RateLimit builds a KindRateLimit error (status 429).
func RateLimit(message string, details any) *Error {
	if message == "" {
		message = defaultRateLimitMessage
	}
	return &Error{
		Kind:    KindRateLimit,
		Message: message,
		Status:  http.StatusTooManyRequests,
		Code:    CodeRateLimit,
		Details: details,
	}
}

// Generic builds a KindGeneric error. A zero status means "no HTTP status".
func Generic(status int, code, message string, details any) *Error {
	if message == "" && status != 0 {
		message = fmt.Sprintf("Request failed with status %d", status)
	}
	return &Error{
		Kind:    KindGeneric,
		Message: message,
		Status:  status,
		Code:    code,
		Details: details,
	}
}

// Wrap builds a status-less KindGeneric error around a transport-level cause.
func Wrap(code, message string, cause error) *Error {
	return &Error{
		Kind:    KindGeneric,
		Message: message,
		Code:    code,
		Cause:   cause,
	}
}

// FromTransport classifies a transport-level failure (no response received).
// Deadlines map to code "timeout", cancellations to "canceled", anything else
// to "network_error".
func FromTransport(err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(CodeTimeout, "Request timeout", err)
	case errors.Is(err, context.Canceled):
		return Wrap(CodeCanceled, "Request canceled", err)
	default:
		return Wrap(CodeNetwork, "Network error", err)
	}
}

// FromResponse classifies a failed (status >= 400) response body into an *Error.
// 401, 402 and 429 map to their dedicated kinds; everything else is generic.
// The body is decoded as JSON when possible and kept as Details; otherwise the
// raw text is kept.
func FromResponse(status int, body []byte) *Error {
	payload, details := DecodeBody(body)
	message := MessageFrom(payload)
	code := CodeFrom(payload)

	switch status {
	case http.StatusUnauthorized:
		return Auth(message, code, details)
	case http.StatusPaymentRequired:
		return InsufficientFunds(message, details)
	case http.StatusTooManyRequests:
		return RateLimit(message, details)
	default:
		return Generic(status, code, message, details)
	}
}

// DecodeBody decodes a JSON object body. It returns the object (nil when the
// body is not an object) and a value suitable for Error.Details: the object,
// any other JSON value, the raw text, or nil for an empty body.
func DecodeBody(body []byte) (map[string]any, any) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, string(body)
	}
	obj, _ := v.(map[string]any)
	return obj, v
}

// MessageFrom picks the human-readable message out of an error payload, trying
// "message", then "error.message", then a string "error", then
// "error_description".
func MessageFrom(payload map[string]any) string {
	if payload == nil {
		return ""
	}
	if s, ok := payload["message"].(string); ok && s != "" {
		return s
	}
	switch v := payload["error"].(type) {
	case map[string]any:
		if s, ok := v["message"].(string); ok && s != "" {
			return s
		}
	case string:
		if v != "" {
			return v
		}
	}
	if s, ok := payload["error_description"].(string); ok && s != "" {
		return s
	}
	return ""
}

// CodeFrom picks the machine-readable code out of an error payload ("code" or
// "error.code").
func CodeFrom(payload map[string]any) string {
	if payload == nil {
		return ""
	}
	if s, ok := payload["code"].(string); ok && s != "" {
		return s
	}
	if inner, ok := payload["error"].(map[string]any); ok {
		if s, ok := inner["code"].(string); ok {
			return s
		}
	}
	return ""
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// Is reports whether err's chain holds an *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

// IsValidation reports whether err is a KindValidation error.
func IsValidation(err error) bool { return Is(err, KindValidation) }

// IsAuth reports whether err is a KindAuth error.
func IsAuth(err error) bool { return Is(err, KindAuth) }

// IsInsufficientFunds reports whether err is a KindInsufficientFunds error.
func IsInsufficientFunds(err error) bool { return Is(err, KindInsufficientFunds) }

// IsRateLimit reports whether err is a KindRateLimit error.
func IsRateLimit(err error) bool { return Is(err, KindRateLimit) }

// IsTimeout reports whether err is a generic error carrying the "timeout" code.
func IsTimeout(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindGeneric && e.Code == CodeTimeout
}
