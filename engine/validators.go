// SPDX-License-Identifier: MIT
// Package: engine
//
// Purpose:
//  - Provide a single, canonical source of truth for shape, reach, literal and
//    index checks.
//  - Return plain sentinel errors (no wrapping) so call sites wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure and allocate nothing.

package engine

import "math"

// maxBufferBytes bounds one storage buffer. It stays below the runtime's
// allocation ceiling on every 64-bit platform.
const maxBufferBytes = min(math.MaxInt, 1<<47)

// validateLength rejects logical dimensions below 1.
// Complexity: O(1).
func validateLength(n int) error {
	if n < 1 {
		return ErrInvalidLength
	}

	return nil
}

// validateReach rejects negative reach.
// Complexity: O(1).
func validateReach(n int) error {
	if n < 0 {
		return ErrInvalidReach
	}

	return nil
}

// validateDims checks a full reshape request in the documented priority:
// lengths first, then reaches.
func validateDims(rows, rowReach, cols, colReach int) error {
	if err := validateLength(rows); err != nil {
		return err
	}
	if err := validateLength(cols); err != nil {
		return err
	}
	if err := validateReach(rowReach); err != nil {
		return err
	}

	return validateReach(colReach)
}

// validateCapacity rejects a max(rows,rowReach)×max(cols,colReach) buffer of
// elemSize-byte cells whose element count overflows int or whose byte size
// exceeds maxBufferBytes. Arguments are assumed non-negative.
// Complexity: O(1).
func validateCapacity(rows, rowReach, cols, colReach int, elemSize uintptr) error {
	r, c := max(rows, rowReach), max(cols, colReach)
	if r == 0 || c == 0 {
		return nil
	}
	limit := maxBufferBytes
	if elemSize > 1 {
		limit /= int(elemSize)
	}
	if r > limit/c {
		return ErrInvalidReach
	}

	return nil
}

// ValidateLiteral checks that every row of lit has the same length and
// returns the literal's shape.
//
// Errors: ErrShapeMismatch for ragged rows, ErrInvalidLength when the literal
// has no rows or empty rows.
// Complexity: O(len(lit)).
func ValidateLiteral[T any](lit [][]T) (rows, cols int, err error) {
	if len(lit) == 0 {
		return 0, 0, ErrInvalidLength
	}
	cols = len(lit[0])
	for i := 1; i < len(lit); i++ {
		if len(lit[i]) != cols {
			return 0, 0, ErrShapeMismatch
		}
	}
	if cols == 0 {
		return 0, 0, ErrInvalidLength
	}

	return len(lit), cols, nil
}

// validateIndex checks 0 ≤ i < rows and 0 ≤ j < cols.
func validateIndex(s Shaped, i, j int) error {
	if i < 0 || i >= s.Rows() || j < 0 || j >= s.Cols() {
		return ErrOutOfRange
	}

	return nil
}

// validateWindow checks that [r0, r0+rows) × [c0, c0+cols) lies inside s and
// has a positive area.
func validateWindow(s Shaped, r0, c0, rows, cols int) error {
	if rows < 1 || cols < 1 {
		return ErrInvalidLength
	}
	if r0 < 0 || c0 < 0 || r0+rows > s.Rows() || c0+cols > s.Cols() {
		return ErrOutOfRange
	}

	return nil
}
