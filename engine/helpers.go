// SPDX-License-Identifier: MIT

// Package engine: engine-agnostic helpers (copy, exact compare, fills,
// iteration, formatting and bounds-checked access).
//
// All helpers work through Readable/Writable only, so they accept storage
// engines and views alike.

package engine

import (
	"fmt"
	"strings"
)

// ---------- Formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// CheckEngine reports ErrNilEngine for a nil engine, including a typed nil
// such as (*Storage[T])(nil), and ErrUnboundView for a zero-value view.
func CheckEngine[T Element](e Readable[T]) error {
	if isNil(e) {
		return ErrNilEngine
	}
	if v, ok := e.(View[T]); ok && !v.HasView() {
		return ErrUnboundView
	}

	return nil
}

// Copy writes src into dst. When shapes differ, dst is reshaped to fit along
// the axes its capabilities allow, keeping its reach; otherwise the copy fails
// with ErrShapeMismatch and dst is untouched. Overlapping src and dst (same
// owner) are handled by snapshotting src first.
//
// Errors: ErrNilEngine, ErrUnboundView, ErrInvalidLength, ErrShapeMismatch.
// Complexity: O(rows*cols).
func Copy[T Element](dst Writable[T], src Readable[T]) error {
	if err := CheckEngine[T](dst); err != nil {
		return fmt.Errorf("Copy: dst: %w", err)
	}
	if err := CheckEngine(src); err != nil {
		return fmt.Errorf("Copy: src: %w", err)
	}
	if s, ok := dst.(*Storage[T]); ok {
		return s.CopyFrom(src)
	}
	if SameOwner[T](dst, src) {
		snap, err := NewFromEngine(src)
		if err != nil {
			return fmt.Errorf("Copy: %w", err)
		}
		src = snap
	}
	if err := fitShape(dst, src.Rows(), src.Cols()); err != nil {
		return fmt.Errorf("Copy(%d,%d): %w", src.Rows(), src.Cols(), err)
	}
	var i, j int
	for i = 0; i < src.Rows(); i++ {
		for j = 0; j < src.Cols(); j++ {
			dst.Set(i, j, src.At(i, j))
		}
	}

	return nil
}

// fitShape reshapes a non-storage engine to rows×cols when its capabilities
// allow it.
func fitShape[T Element](dst Writable[T], rows, cols int) error {
	if err := validateLength(rows); err != nil {
		return err
	}
	if err := validateLength(cols); err != nil {
		return err
	}
	caps := Classify[T](dst)
	rowsDiffer, colsDiffer := rows != dst.Rows(), cols != dst.Cols()
	if (rowsDiffer && !caps.Has(CapReshapeRows)) || (colsDiffer && !caps.Has(CapReshapeCols)) {
		return ErrShapeMismatch
	}
	if rowsDiffer {
		r := dst.(RowReshapeable)
		if err := r.ReshapeRows(rows, r.RowReach()); err != nil {
			return err
		}
	}
	if colsDiffer {
		c := dst.(ColReshapeable)
		if err := c.ReshapeCols(cols, c.ColReach()); err != nil {
			return err
		}
	}

	return nil
}

// Equal reports whether a and b have the same shape and identical elements
// under 2-D indexing. Nil or unbound engines are never equal.
// Complexity: O(rows*cols).
func Equal[T Element](a, b Readable[T]) bool {
	if CheckEngine(a) != nil || CheckEngine(b) != nil {
		return false
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	var i, j int
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			if a.At(i, j) != b.At(i, j) {
				return false
			}
		}
	}

	return true
}

// EqualFlat reports whether a and b have the same size and identical elements
// under 1-D indexing. Shapes may differ (e.g. a row and a column vector).
func EqualFlat[T Element](a, b Readable[T]) bool {
	if CheckEngine(a) != nil || CheckEngine(b) != nil {
		return false
	}
	n := a.Size()
	if n != b.Size() {
		return false
	}
	for k := 0; k < n; k++ {
		if a.AtFlat(k) != b.AtFlat(k) {
			return false
		}
	}

	return true
}

// EqualLiteral reports whether e holds exactly the rectangular literal lit.
func EqualLiteral[T Element](e Readable[T], lit [][]T) bool {
	if CheckEngine(e) != nil {
		return false
	}
	rows, cols, err := ValidateLiteral(lit)
	if err != nil || rows != e.Rows() || cols != e.Cols() {
		return false
	}
	var i, j int
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if e.At(i, j) != lit[i][j] {
				return false
			}
		}
	}

	return true
}

// FillRows assigns v to every cell of rows [r0, r1).
//
// Errors: ErrNilEngine, ErrUnboundView, ErrOutOfRange.
func FillRows[T Element](dst Writable[T], r0, r1 int, v T) error {
	if err := CheckEngine[T](dst); err != nil {
		return fmt.Errorf("FillRows(%d,%d): %w", r0, r1, err)
	}
	if r0 < 0 || r1 > dst.Rows() || r0 > r1 {
		return fmt.Errorf("FillRows(%d,%d): %w", r0, r1, ErrOutOfRange)
	}
	var i, j int
	for i = r0; i < r1; i++ {
		for j = 0; j < dst.Cols(); j++ {
			dst.Set(i, j, v)
		}
	}

	return nil
}

// FillCols assigns v to every cell of columns [c0, c1).
//
// Errors: ErrNilEngine, ErrUnboundView, ErrOutOfRange.
func FillCols[T Element](dst Writable[T], c0, c1 int, v T) error {
	if err := CheckEngine[T](dst); err != nil {
		return fmt.Errorf("FillCols(%d,%d): %w", c0, c1, err)
	}
	if c0 < 0 || c1 > dst.Cols() || c0 > c1 {
		return fmt.Errorf("FillCols(%d,%d): %w", c0, c1, ErrOutOfRange)
	}
	var i, j int
	for i = 0; i < dst.Rows(); i++ {
		for j = c0; j < c1; j++ {
			dst.Set(i, j, v)
		}
	}

	return nil
}

// Each visits every element of e in row order; stops when f returns false.
// Nil and unbound engines are not visited.
func Each[T Element](e Readable[T], f func(i, j int, v T) bool) {
	if CheckEngine(e) != nil {
		return
	}
	var i, j int
	for i = 0; i < e.Rows(); i++ {
		for j = 0; j < e.Cols(); j++ {
			if !f(i, j, e.At(i, j)) {
				return
			}
		}
	}
}

// Format renders e row by row ("[a, b]\n" per row) for diagnostics.
// Nil and unbound engines render as "".
func Format[T Element](e Readable[T]) string {
	if CheckEngine(e) != nil {
		return ""
	}
	var b strings.Builder
	var i, j int
	for i = 0; i < e.Rows(); i++ {
		b.WriteString(_fmtRowOpen)
		for j = 0; j < e.Cols(); j++ {
			fmt.Fprintf(&b, "%v", e.At(i, j))
			if j+1 < e.Cols() {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// CheckedAt returns e.At(i,j) after validating the index against e's logical
// extent.
//
// Errors: ErrNilEngine, ErrUnboundView, ErrOutOfRange.
func CheckedAt[T Element](e Readable[T], i, j int) (T, error) {
	var zero T
	if err := CheckEngine(e); err != nil {
		return zero, fmt.Errorf("CheckedAt(%d,%d): %w", i, j, err)
	}
	if err := validateIndex(e, i, j); err != nil {
		return zero, fmt.Errorf("CheckedAt(%d,%d): %w", i, j, err)
	}

	return e.At(i, j), nil
}

// CheckedSet stores v at (i,j) after validating the index against e's
// logical extent.
//
// Errors: ErrNilEngine, ErrUnboundView, ErrOutOfRange.
func CheckedSet[T Element](e Writable[T], i, j int, v T) error {
	if err := CheckEngine[T](e); err != nil {
		return fmt.Errorf("CheckedSet(%d,%d): %w", i, j, err)
	}
	if err := validateIndex(e, i, j); err != nil {
		return fmt.Errorf("CheckedSet(%d,%d): %w", i, j, err)
	}
	e.Set(i, j, v)

	return nil
}
