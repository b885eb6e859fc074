// Package errors provides error handling for semval.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for the CLI
//
// Value-level problems (a user typed "abc" into a Number property) are NOT Go
// errors: they travel on the value as msg.Error entries. This package is for
// infrastructure failures (store, cache, config, database) and for contract
// violations by callers.
//
// Usage:
//
//	if err := store.Save(ctx, c); err != nil {
//	    return errors.Wrapf(err, "save container %s", c.Hash)
//	}
//
//	if errors.Is(err, errors.ErrTypeMismatch) {
//	    // caller passed an item of the wrong kind to Load
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// WithSecondaryError attaches an error for details without changing the
// identity of the primary one.
var WithSecondaryError = crdb.WithSecondaryError

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Assertions
var AssertionFailedf = crdb.AssertionFailedf

// Sentinel errors. Wrap them with Wrap/Wrapf to add context; test with Is.
var (
	// ErrNotFound indicates the requested entity, container or declaration does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates malformed input to an API (not to a value)
	ErrInvalidRequest = New("invalid request")

	// ErrTypeMismatch indicates an item of the wrong kind was handed to Load
	ErrTypeMismatch = New("item kind does not match declared type")

	// ErrUnknownType indicates a type id that is not in the registry
	ErrUnknownType = New("unknown type id")

	// ErrInvalidProperty indicates a property label or key that cannot be resolved
	ErrInvalidProperty = New("invalid property")

	// ErrCacheMiss indicates a cache container was not present
	ErrCacheMiss = New("cache miss")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsTypeMismatch checks if an error is or wraps ErrTypeMismatch.
func IsTypeMismatch(err error) bool {
	return err != nil && Is(err, ErrTypeMismatch)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewTypeMismatchError reports that an item of kind got was offered where want is declared
func NewTypeMismatchError(typeID, want, got string) error {
	return WithDetailf(Wrapf(ErrTypeMismatch, "type %s", typeID), "declared %s, got %s", want, got)
}
