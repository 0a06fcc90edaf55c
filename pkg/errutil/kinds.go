// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package errutil

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

// Error kinds. Domain packages wrap these so that the HTTP layer can pick a
// status code with errors.Is regardless of how deep the error was built.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// PublicError pairs an error kind with a message that is safe to return to a client.
type PublicError struct {
	Kind    error
	Message string
}

func (e *PublicError) Error() string { return e.Message }

// Unwrap exposes the kind to errors.Is.
func (e *PublicError) Unwrap() error { return e.Kind }

// NotFound returns a not-found error carrying a client-safe message.
func NotFound(msg string) error { return &PublicError{Kind: ErrNotFound, Message: msg} }

// Unauthorized returns an unauthorized error carrying a client-safe message.
func Unauthorized(msg string) error { return &PublicError{Kind: ErrUnauthorized, Message: msg} }

// Forbidden returns a forbidden error carrying a client-safe message.
func Forbidden(msg string) error { return &PublicError{Kind: ErrForbidden, Message: msg} }

// Conflict returns a conflict error carrying a client-safe message.
func Conflict(msg string) error { return &PublicError{Kind: ErrConflict, Message: msg} }

// ValidationError represents an input validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid returns a ValidationError for field.
func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// Code returns the oops code attached to err, or "" if there is none.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	switch c := any(oopsErr.Code()).(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}

// ErrInternal marks failures whose message is still safe to show.
var ErrInternal = errors.New("internal")

// Internal returns a server-side failure carrying a client-safe message.
func Internal(msg string) error { return &PublicError{Kind: ErrInternal, Message: msg} }
