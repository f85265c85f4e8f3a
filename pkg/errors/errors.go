// Package errors provides the unified error taxonomy for s3kit operations.
//
// Every failure crossing the public API boundary is exactly one of three
// kinds: a network failure from the transport, an API-level failure decoded
// from a service error payload, or a local decode failure. No other error
// type escapes the library un-normalized.
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies which failure class an Error belongs to. The set is
// closed; every consumer switches over all three kinds.
type Kind int

const (
	// KindNetwork covers connection, DNS, TLS, timeout and context
	// cancellation failures raised by the transport.
	KindNetwork Kind = iota

	// KindAPI covers structured error responses from the remote service.
	KindAPI

	// KindDecode covers local parse failures: malformed account documents,
	// listing bodies, or a custom response parser rejecting a body.
	KindDecode
)

// String returns the lowercase name of the kind, suitable for log fields
// and metric labels.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAPI:
		return "api"
	case KindDecode:
		return "decode"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the single error type returned by s3kit. Exactly one Kind is
// populated per failure; StatusCode, Code and RequestID are only set for
// KindAPI, Cause only when an underlying error exists.
type Error struct {
	Kind    Kind
	Op      string // operation name, diagnostic only ("GetObject", "DecodeAccounts", ...)
	Message string

	// API error details, populated for KindAPI.
	StatusCode int
	Code       string
	RequestID  string

	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindAPI:
		if e.Code != "" {
			return fmt.Sprintf("%s: %s (HTTP %d): %s", e.Op, e.Code, e.StatusCode, e.Message)
		}
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, e.Message)
	case KindNetwork:
		if e.Cause != nil {
			return fmt.Sprintf("%s: network: %v", e.Op, e.Cause)
		}
		return fmt.Sprintf("%s: network: %s", e.Op, e.Message)
	default:
		return fmt.Sprintf("%s: decode: %s", e.Op, e.Message)
	}
}

// Unwrap returns the underlying cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches two Errors by kind, and by service code when the target
// carries one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	if t.Code != "" {
		return e.Code == t.Code
	}
	return true
}

// Retryable reports whether retrying the operation could plausibly
// succeed. Network failures are retryable, as are 5xx API responses;
// decode failures never are.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindNetwork:
		return true
	case KindAPI:
		return e.StatusCode >= 500
	case KindDecode:
		return false
	}
	return false
}

// Network creates a network-kind error wrapping the transport failure.
func Network(op string, cause error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Cause: cause}
}

// API creates an API-kind error carrying the service's status, code and
// message.
func API(op string, status int, code, message string) *Error {
	return &Error{Kind: KindAPI, Op: op, StatusCode: status, Code: code, Message: message}
}

// Decode creates a decode-kind error with a human-readable message.
func Decode(op, message string) *Error {
	return &Error{Kind: KindDecode, Op: op, Message: message}
}

// Decodef creates a decode-kind error from a format string.
func Decodef(op, format string, args ...interface{}) *Error {
	return &Error{Kind: KindDecode, Op: op, Message: fmt.Sprintf(format, args...)}
}

// IsNetwork reports whether err is (or wraps) a network-kind Error.
func IsNetwork(err error) bool { return isKind(err, KindNetwork) }

// IsAPI reports whether err is (or wraps) an API-kind Error.
func IsAPI(err error) bool { return isKind(err, KindAPI) }

// IsDecode reports whether err is (or wraps) a decode-kind Error.
func IsDecode(err error) bool { return isKind(err, KindDecode) }

func isKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// AsError extracts the *Error from err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
