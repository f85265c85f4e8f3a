// Package request implements the typed request-construction pipeline: an
// immutable, generic Request value assembling an operation name, HTTP
// method, path, body and response decoders, plus the query/header encoder
// and the catalog of S3 operations built on top of it.
//
// Building or augmenting a Request performs no I/O; requests are plain
// values that may be built once and reused across any number of dispatches
// from any goroutine.
package request

import (
	"net/http"

	"github.com/s3kit/s3kit/pkg/errors"
)

// Metadata carries the response status and headers into a success decoder.
type Metadata struct {
	StatusCode int
	Headers    http.Header
}

// DecodeFunc turns a successful response into the operation's result type.
// A returned error is normalized to a decode-kind failure by the
// dispatcher.
type DecodeFunc[T any] func(Metadata, []byte) (T, error)

// ErrorDecodeFunc turns an error response body into the unified error
// type.
type ErrorDecodeFunc func(Metadata, []byte) *errors.Error

// Request is a fully-specified, immutable description of one operation
// against the service, parameterized by the type of its decoded result.
// The zero value is not useful; build requests with New, String, Parser or
// the operation catalog.
type Request[T any] struct {
	Name   string // diagnostic only
	Method string
	Path   string // leading slash included; segments are not escaped here
	Body   Body

	// Headers and Query accumulate in application order. At dispatch each
	// header pair is applied with Set in order, so the last-applied value
	// for a key wins; query pairs are all sent.
	Headers []KV
	Query   []KV

	Decode      DecodeFunc[T]
	DecodeError ErrorDecodeFunc
}

// New builds a Request from its parts. The path is used verbatim; callers
// are responsible for any escaping of bucket/key segments.
func New[T any](name, method, path string, body Body, decode DecodeFunc[T]) Request[T] {
	return Request[T]{
		Name:        name,
		Method:      method,
		Path:        path,
		Body:        body,
		Decode:      decode,
		DecodeError: DecodeAPIError,
	}
}

// String builds a Request whose result is the raw response body,
// unchanged, ignoring response metadata.
func String(name, method, path string, body Body) Request[string] {
	return New(name, method, path, body, func(_ Metadata, raw []byte) (string, error) {
		return string(raw), nil
	})
}

// Parser builds a Request around a body-only parse function, ignoring
// response metadata.
func Parser[T any](name, method, path string, body Body, parse func([]byte) (T, error)) Request[T] {
	return New(name, method, path, body, func(_ Metadata, raw []byte) (T, error) {
		return parse(raw)
	})
}

// WithHeaders returns a copy of the request with the query's encoded pairs
// appended to its header list. The receiver is never mutated.
func (r Request[T]) WithHeaders(q Query) Request[T] {
	r.Headers = appendPairs(r.Headers, q.Encode())
	return r
}

// WithQuery returns a copy of the request with the query's encoded pairs
// appended to its query-string list. The receiver is never mutated.
func (r Request[T]) WithQuery(q Query) Request[T] {
	r.Query = appendPairs(r.Query, q.Encode())
	return r
}

// appendPairs copies into fresh backing storage so augmented requests
// never alias the original's slices.
func appendPairs(existing, added []KV) []KV {
	out := make([]KV, 0, len(existing)+len(added))
	out = append(out, existing...)
	out = append(out, added...)
	return out
}
