// SPDX-License-Identifier: MIT
// Package engine: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the engine
// package. Constructors, reshapes and composers return these sentinels and
// tests check them via errors.Is. No operation panics on user-triggered error
// conditions; panics are reserved for programmer errors in option
// constructors.

package engine

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "engine: ..." for grep-ability. Call sites
// wrap with method context (e.g. "Storage.Reshape(2,2,3,3): %w"); callers
// still match with errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// nil engine -> literal shape -> length -> reach -> reshape policy.

var (
	// ErrShapeMismatch is returned when a literal is ragged, or when source and
	// destination shapes differ and the destination cannot reshape to fit.
	ErrShapeMismatch = errors.New("engine: shape mismatch")

	// ErrInvalidLength is returned when a requested logical dimension is < 1.
	ErrInvalidLength = errors.New("engine: invalid length")

	// ErrInvalidReach is returned when a requested reach (capacity) is < 0, or
	// when the buffer it implies is too large to address.
	ErrInvalidReach = errors.New("engine: invalid reach")

	// ErrNotReshapeable is returned when a reshape targets an axis that the
	// engine's dimension policy fixes.
	ErrNotReshapeable = errors.New("engine: axis is not reshapeable")

	// ErrIncompatibleView is returned by the composer when a mutable view would
	// wrap a read-only parent.
	ErrIncompatibleView = errors.New("engine: incompatible view composition")

	// ErrUnboundView is returned when an operation needs a bound view.
	ErrUnboundView = errors.New("engine: view is not bound")

	// ErrOutOfRange indicates an index or window outside the logical extent.
	ErrOutOfRange = errors.New("engine: index out of range")

	// ErrNilEngine indicates that a nil engine was passed to a helper.
	ErrNilEngine = errors.New("engine: nil engine")

	// ErrInvalidRule indicates that an expansion rule reported non-positive
	// virtual extents.
	ErrInvalidRule = errors.New("engine: invalid expansion rule")
)

// storageErrorf wraps err with Storage method context and its arguments.
func storageErrorf(method string, err error, args ...int) error {
	return fmt.Errorf("Storage.%s%s: %w", method, formatArgs(args), err)
}

// viewErrorf wraps err with view constructor context.
func viewErrorf(ctor string, err error, args ...int) error {
	return fmt.Errorf("%s%s: %w", ctor, formatArgs(args), err)
}

// formatArgs renders integer call arguments as "(a,b,c)".
func formatArgs(args []int) string {
	if len(args) == 0 {
		return ""
	}
	b := make([]byte, 0, 2+4*len(args))
	b = append(b, '(')
	for i, a := range args {
		if i > 0 {
			b = append(b, ',')
		}
		b = fmt.Appendf(b, "%d", a)
	}

	return string(append(b, ')'))
}
