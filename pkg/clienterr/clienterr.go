// Package clienterr defines the single error type returned by the SDK.
//
// Every failure carries a Kind so callers can branch on the category without
// type-switching on concrete error types.
package clienterr

import (
	"errors"
	"fmt"
)

// Kind discriminates the failure category.
type Kind string

const (
	// KindAPI means the remote answered but the envelope reported a failure or was unusable.
	KindAPI Kind = "api"
	// KindHTTP means the remote answered with a non-success HTTP status.
	KindHTTP Kind = "http"
	// KindNetwork means the request could not complete.
	KindNetwork Kind = "network"
	// KindConfig means the client was misconfigured or a required argument was missing.
	KindConfig Kind = "config"
	// KindUnknown means the request could not be routed.
	KindUnknown Kind = "unknown"
)

// Sentinels usable with errors.Is; matching is by Kind only.
var (
	ErrAPI     = &Error{Kind: KindAPI}
	ErrHTTP    = &Error{Kind: KindHTTP}
	ErrNetwork = &Error{Kind: KindNetwork}
	ErrConfig  = &Error{Kind: KindConfig}
	ErrUnknown = &Error{Kind: KindUnknown}
)

// Error is the root error of the SDK.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Details    any
	Cause      error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Config builds a KindConfig error.
func Config(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

// Required builds the KindConfig error for a missing required field.
func Required(field string) *Error {
	return Config(field + " is required")
}

// Unknown builds a KindUnknown error.
func Unknown(message string) *Error {
	return &Error{Kind: KindUnknown, Message: message}
}

// API builds a KindAPI error.
func API(message string) *Error {
	return &Error{Kind: KindAPI, Message: message}
}

// HTTP builds a KindHTTP error for the given status and decoded response body.
func HTTP(statusCode int, details any) *Error {
	return &Error{
		Kind:       KindHTTP,
		Message:    fmt.Sprintf("request failed with status code %d", statusCode),
		StatusCode: statusCode,
		Details:    details,
	}
}

// Network builds a KindNetwork error wrapping cause.
func Network(cause error) *Error {
	msg := "network error"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: KindNetwork, Message: msg, Cause: cause}
}

// KindOf returns the Kind of err, or "" when err is nil or not an *Error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) && ce != nil {
		return ce.Kind
	}
	return ""
}

// StatusCodeOf returns the HTTP status carried by err, or 0.
func StatusCodeOf(err error) int {
	var ce *Error
	if errors.As(err, &ce) && ce != nil {
		return ce.StatusCode
	}
	return 0
}
