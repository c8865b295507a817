// SPDX-License-Identifier: MIT

// Package engine - Storage: the owning engine (row- or column-major buffer
// with reach).
//
// Purpose:
//   - Own a contiguous buffer sized RowReach*ColReach; the only allocator in
//     the package.
//   - Compute offsets from reach, never from logical size, so shrinking and
//     regrowing within reach keeps every surviving cell in place.
//   - Enforce the dimension policy (Extents) at reshape time.
//
// AI-Hints:
//   - Reserve reach (WithReach) when growing in steps; in-place reshapes do no
//     allocation.
//   - Views hold the *Storage, not the buffer: a reallocating reshape leaves
//     every view valid, but window views (Row/Col/Box) may now address cells
//     outside a shrunk extent.
//
// Complexity quicksheet:
//   - New*: O(reach); At/Set: O(1); Reshape in place: O(cells filled);
//     Reshape with reallocation: O(reach + overlap); Clone: O(reach).

package engine

import (
	"fmt"
	"log/slog"
	"unsafe"
)

// ---------- error context tags ----------

const (
	ctxReshape     = "Reshape"
	ctxReshapeRows = "ReshapeRows"
	ctxReshapeCols = "ReshapeCols"
	ctxNew         = "New"
	ctxAssign      = "Assign"
	ctxCopyFrom    = "CopyFrom"
)

// Storage is the owning engine.
//   - rows, cols: logical extent.
//   - rowReach, colReach: allocated capacity per axis (reach ≥ extent).
//   - data: len == rowReach*colReach, laid out per layout.
//
// The zero value is a usable zero-sized, fully dynamic, row-major engine.
type Storage[T Element] struct {
	data               []T
	rows, cols         int
	rowReach, colReach int
	layout             Layout
	extents            Extents
	observer           Observer
	logger             *slog.Logger
}

// Compile-time assertions for interface conformance.
var (
	_ Writable[float64] = (*Storage[float64])(nil)
	_ Reshapeable       = (*Storage[float64])(nil)
	_ Oriented          = (*Storage[float64])(nil)
	_ fmt.Stringer      = (*Storage[float64])(nil)
)

// newStorage builds an engine with the given policy and configuration and
// allocates rowReach*colReach zeroed cells. Reach below the extent is raised
// to the extent. Arguments are assumed validated.
func newStorage[T Element](ext Extents, o options, rows, rowReach, cols, colReach int) *Storage[T] {
	rowReach = max(rows, rowReach)
	colReach = max(cols, colReach)

	return &Storage[T]{
		data:     make([]T, rowReach*colReach),
		rows:     rows,
		cols:     cols,
		rowReach: rowReach,
		colReach: colReach,
		layout:   o.layout,
		extents:  ext,
		observer: o.observer,
		logger:   o.logger,
	}
}

// validateAlloc checks a request with validateDims, then checks that the
// resulting buffer of T is addressable.
func validateAlloc[T Element](rows, rowReach, cols, colReach int) error {
	if err := validateDims(rows, rowReach, cols, colReach); err != nil {
		return err
	}

	return capacityFor[T](rows, rowReach, cols, colReach)
}

func capacityFor[T Element](rows, rowReach, cols, colReach int) error {
	var zero T

	return validateCapacity(rows, rowReach, cols, colReach, unsafe.Sizeof(zero))
}

// resolveReach picks the configured reach or falls back to the extent.
func resolveReach(n, configured int) int {
	if configured == DefaultReach {
		return n
	}

	return configured
}

// New returns a zero-sized, fully dynamic engine.
// Complexity: O(1).
func New[T Element](opts ...Option) *Storage[T] {
	o := gatherOptions(opts...)

	return newStorage[T](DynamicBoth, o, 0, 0, 0, 0)
}

// NewSized creates a fully dynamic rows×cols zero engine.
// Reach comes from WithReach when given, otherwise equals the extent.
//
// Errors: ErrInvalidLength (rows<1 or cols<1), ErrInvalidReach (negative reach
// or a buffer too large to address).
// Complexity: O(rowReach*colReach).
func NewSized[T Element](rows, cols int, opts ...Option) (*Storage[T], error) {
	o := gatherOptions(opts...)
	rr := resolveReach(rows, o.rowReach)
	cr := resolveReach(cols, o.colReach)
	if err := validateAlloc[T](rows, rr, cols, cr); err != nil {
		return nil, storageErrorf(ctxNew, err, rows, cols)
	}

	return newStorage[T](DynamicBoth, o, rows, rr, cols, cr), nil
}

// NewWithReach creates a fully dynamic engine with explicit logical/reach pairs.
//
// Errors: ErrInvalidLength, ErrInvalidReach.
// Complexity: O(max(rows,rowReach)*max(cols,colReach)).
func NewWithReach[T Element](rows, rowReach, cols, colReach int, opts ...Option) (*Storage[T], error) {
	if err := validateAlloc[T](rows, rowReach, cols, colReach); err != nil {
		return nil, storageErrorf(ctxNew, err, rows, rowReach, cols, colReach)
	}

	return newStorage[T](DynamicBoth, gatherOptions(opts...), rows, rowReach, cols, colReach), nil
}

// NewFixed creates a rows×cols engine whose extents never change.
// WithReach is ignored: a fixed engine's reach equals its size.
//
// Errors: ErrInvalidLength, ErrInvalidReach (size too large to address).
func NewFixed[T Element](rows, cols int, opts ...Option) (*Storage[T], error) {
	if err := validateAlloc[T](rows, rows, cols, cols); err != nil {
		return nil, storageErrorf(ctxNew, err, rows, cols)
	}

	return newStorage[T](FixedBoth, gatherOptions(opts...), rows, rows, cols, cols), nil
}

// NewRowDynamic creates an engine with a dynamic row axis and a fixed column
// count.
//
// Errors: ErrInvalidLength, ErrInvalidReach.
func NewRowDynamic[T Element](rows, rowReach, cols int, opts ...Option) (*Storage[T], error) {
	if err := validateAlloc[T](rows, rowReach, cols, cols); err != nil {
		return nil, storageErrorf(ctxNew, err, rows, rowReach, cols)
	}

	return newStorage[T](DynamicRows, gatherOptions(opts...), rows, rowReach, cols, cols), nil
}

// NewColDynamic creates an engine with a fixed row count and a dynamic column
// axis.
//
// Errors: ErrInvalidLength, ErrInvalidReach.
func NewColDynamic[T Element](rows, cols, colReach int, opts ...Option) (*Storage[T], error) {
	if err := validateAlloc[T](rows, rows, cols, colReach); err != nil {
		return nil, storageErrorf(ctxNew, err, rows, cols, colReach)
	}

	return newStorage[T](DynamicCols, gatherOptions(opts...), rows, rows, cols, colReach), nil
}

// NewFromLiteral builds a fully dynamic engine from a rectangular literal.
// Implementation:
//   - Stage 1: validate the literal (equal row lengths, non-empty).
//   - Stage 2: allocate with the literal's shape (reach from WithReach).
//   - Stage 3: copy row by row.
//
// Errors: ErrShapeMismatch (ragged), ErrInvalidLength (empty), ErrInvalidReach.
// Complexity: O(rows*cols).
func NewFromLiteral[T Element](lit [][]T, opts ...Option) (*Storage[T], error) {
	rows, cols, err := ValidateLiteral(lit)
	if err != nil {
		return nil, storageErrorf(ctxNew, err)
	}
	s, err := NewSized[T](rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	s.copyLiteral(lit)

	return s, nil
}

// NewFromEngine copies any readable engine into a new fully dynamic engine.
//
// Errors: ErrNilEngine, ErrInvalidLength (empty or unbound source), ErrInvalidReach.
// Complexity: O(rows*cols).
func NewFromEngine[T Element](src Readable[T], opts ...Option) (*Storage[T], error) {
	if src == nil {
		return nil, storageErrorf(ctxNew, ErrNilEngine)
	}
	s, err := NewSized[T](src.Rows(), src.Cols(), opts...)
	if err != nil {
		return nil, err
	}
	s.copyEngine(src)

	return s, nil
}

// Convert copies a real-valued engine into a new engine of another real
// element type using Go conversion rules.
func Convert[T, U Real](src Readable[U], opts ...Option) (*Storage[T], error) {
	if src == nil {
		return nil, storageErrorf(ctxNew, ErrNilEngine)
	}
	s, err := NewSized[T](src.Rows(), src.Cols(), opts...)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < s.rows; i++ {
		for j = 0; j < s.cols; j++ {
			s.data[s.offset(i, j)] = T(src.At(i, j))
		}
	}

	return s, nil
}

// ToComplex promotes a real-valued engine to a complex engine with zero
// imaginary parts.
func ToComplex[T Complex, U Real](src Readable[U], opts ...Option) (*Storage[T], error) {
	if src == nil {
		return nil, storageErrorf(ctxNew, ErrNilEngine)
	}
	s, err := NewSized[T](src.Rows(), src.Cols(), opts...)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < s.rows; i++ {
		for j = 0; j < s.cols; j++ {
			s.data[s.offset(i, j)] = T(complex(float64(src.At(i, j)), 0))
		}
	}

	return s, nil
}

// ---------- shape & capacity ----------

// Rows returns the logical row count. Complexity: O(1).
func (s *Storage[T]) Rows() int { return s.rows }

// Cols returns the logical column count. Complexity: O(1).
func (s *Storage[T]) Cols() int { return s.cols }

// Size returns Rows()*Cols().
func (s *Storage[T]) Size() int { return s.rows * s.cols }

// RowReach returns the allocated row capacity.
func (s *Storage[T]) RowReach() int { return s.rowReach }

// ColReach returns the allocated column capacity.
func (s *Storage[T]) ColReach() int { return s.colReach }

// Reach returns RowReach()*ColReach(), the buffer length.
func (s *Storage[T]) Reach() int { return s.rowReach * s.colReach }

// Layout returns the buffer layout.
func (s *Storage[T]) Layout() Layout { return s.layout }

// Extents returns the dimension policy.
func (s *Storage[T]) Extents() Extents { return s.extents }

// Capabilities reports the engine's capability set; reshape bits follow the
// dimension policy rather than the method set.
func (s *Storage[T]) Capabilities() Capability {
	c := CapReadable | CapWritable | CapOwning
	if s.extents.rowsDynamic() {
		c |= CapReshapeRows
	}
	if s.extents.colsDynamic() {
		c |= CapReshapeCols
	}

	return c
}

// ---------- element access ----------

// offset maps (i,j) to the buffer offset using reach-based strides.
func (s *Storage[T]) offset(i, j int) int {
	if s.layout == ColMajor {
		return i + j*s.rowReach
	}

	return j + i*s.colReach
}

// flatOffset maps a logical linear index (layout order) to a buffer offset.
// When the minor reach equals the minor extent the two coincide.
func (s *Storage[T]) flatOffset(k int) int {
	if s.layout == ColMajor {
		if s.rowReach == s.rows {
			return k
		}

		return s.offset(k%s.rows, k/s.rows)
	}
	if s.colReach == s.cols {
		return k
	}

	return s.offset(k/s.cols, k%s.cols)
}

// At returns the element at (i,j). Indices are not checked against the
// logical extent; use CheckedAt at untrusted boundaries.
// Complexity: O(1).
func (s *Storage[T]) At(i, j int) T { return s.data[s.offset(i, j)] }

// AtFlat returns the element at logical linear index k (layout order).
func (s *Storage[T]) AtFlat(k int) T { return s.data[s.flatOffset(k)] }

// Set stores v at (i,j). Unchecked, like At.
func (s *Storage[T]) Set(i, j int, v T) { s.data[s.offset(i, j)] = v }

// SetFlat stores v at logical linear index k.
func (s *Storage[T]) SetFlat(k int, v T) { s.data[s.flatOffset(k)] = v }

// ---------- reshape ----------

// Reshape changes both axes (fully dynamic engines only).
// Implementation:
//   - Stage 1: enforce the dimension policy (ErrNotReshapeable).
//   - Stage 2: validate lengths (≥1) then reaches (≥0).
//   - Stage 3: reallocate when a length exceeds the current reach or a
//     requested reach differs from the current one; otherwise resize in place.
//
// Behavior highlights:
//   - On error the engine is untouched.
//   - New reach is max(length, requested reach).
//   - Reallocation preserves the overlap [0,min rows)×[0,min cols).
//   - In place: cells leaving the extent are zeroed before it shrinks; cells
//     entering the extent are zeroed as it grows. Stale values never surface.
//
// Complexity: O(reach + overlap) with reallocation, O(filled) in place.
func (s *Storage[T]) Reshape(rows, rowReach, cols, colReach int) error {
	if s.extents != DynamicBoth {
		return storageErrorf(ctxReshape, ErrNotReshapeable, rows, rowReach, cols, colReach)
	}
	if err := validateAlloc[T](rows, rowReach, cols, colReach); err != nil {
		return storageErrorf(ctxReshape, err, rows, rowReach, cols, colReach)
	}
	s.reshape(rows, rowReach, cols, colReach)

	return nil
}

// ReshapeRows changes the row axis only (DynamicBoth or DynamicRows engines).
//
// Errors: ErrNotReshapeable, ErrInvalidLength, ErrInvalidReach.
func (s *Storage[T]) ReshapeRows(rows, rowReach int) error {
	if !s.extents.rowsDynamic() {
		return storageErrorf(ctxReshapeRows, ErrNotReshapeable, rows, rowReach)
	}
	if err := validateLength(rows); err != nil {
		return storageErrorf(ctxReshapeRows, err, rows, rowReach)
	}
	if err := validateReach(rowReach); err != nil {
		return storageErrorf(ctxReshapeRows, err, rows, rowReach)
	}
	if err := capacityFor[T](rows, rowReach, s.cols, s.colReach); err != nil {
		return storageErrorf(ctxReshapeRows, err, rows, rowReach)
	}
	s.reshape(rows, rowReach, s.cols, s.colReach)

	return nil
}

// ReshapeCols changes the column axis only (DynamicBoth or DynamicCols engines).
//
// Errors: ErrNotReshapeable, ErrInvalidLength, ErrInvalidReach.
func (s *Storage[T]) ReshapeCols(cols, colReach int) error {
	if !s.extents.colsDynamic() {
		return storageErrorf(ctxReshapeCols, ErrNotReshapeable, cols, colReach)
	}
	if err := validateLength(cols); err != nil {
		return storageErrorf(ctxReshapeCols, err, cols, colReach)
	}
	if err := validateReach(colReach); err != nil {
		return storageErrorf(ctxReshapeCols, err, cols, colReach)
	}
	if err := capacityFor[T](s.rows, s.rowReach, cols, colReach); err != nil {
		return storageErrorf(ctxReshapeCols, err, cols, colReach)
	}
	s.reshape(s.rows, s.rowReach, cols, colReach)

	return nil
}

// reshape dispatches between reallocation and in-place resize.
// Arguments are assumed validated.
func (s *Storage[T]) reshape(rows, rowReach, cols, colReach int) {
	if rows > s.rowReach || cols > s.colReach || rowReach != s.rowReach || colReach != s.colReach {
		s.reallocate(rows, rowReach, cols, colReach)

		return
	}
	s.resizeInPlace(rows, cols)
}

// reallocate allocates a new buffer at the new strides, copies the overlapping
// rectangle and swaps the buffer in.
func (s *Storage[T]) reallocate(rows, rowReach, cols, colReach int) {
	rowReach = max(rows, rowReach)
	colReach = max(cols, colReach)
	buf := make([]T, rowReach*colReach)

	keepR := min(rows, s.rows)
	keepC := min(cols, s.cols)
	var k, src, dst int
	if s.layout == ColMajor {
		for k = 0; k < keepC; k++ { // whole column segments
			src = k * s.rowReach
			dst = k * rowReach
			copy(buf[dst:dst+keepR], s.data[src:src+keepR])
		}
	} else {
		for k = 0; k < keepR; k++ { // whole row segments
			src = k * s.colReach
			dst = k * colReach
			copy(buf[dst:dst+keepC], s.data[src:src+keepC])
		}
	}

	s.data = buf
	s.rows, s.cols = rows, cols
	s.rowReach, s.colReach = rowReach, colReach

	if s.logger != nil { // nil for a zero-value Storage
		s.logger.Debug("engine: storage reallocated",
			slog.Int("rows", rows),
			slog.Int("cols", cols),
			slog.Int("row_reach", rowReach),
			slog.Int("col_reach", colReach),
			slog.Int("elements", len(buf)),
		)
	}
	s.notify(ReshapeEvent{
		Rows: rows, Cols: cols, RowReach: rowReach, ColReach: colReach,
		Reallocated: true, Moved: keepR * keepC,
	})
}

// resizeInPlace changes the logical extent within the current reach.
// Order matters: zero what leaves the extent, then zero what enters it, then
// publish the new extent.
func (s *Storage[T]) resizeInPlace(rows, cols int) {
	oldR, oldC := s.rows, s.cols
	keepR := min(rows, oldR)
	filled := 0

	// cells leaving the extent
	filled += s.fillRect(rows, oldR, 0, oldC)
	filled += s.fillRect(0, keepR, cols, oldC)
	// cells entering the extent
	filled += s.fillRect(oldR, rows, 0, cols)
	filled += s.fillRect(0, keepR, oldC, cols)

	s.rows, s.cols = rows, cols
	s.notify(ReshapeEvent{
		Rows: rows, Cols: cols, RowReach: s.rowReach, ColReach: s.colReach,
		Filled: filled,
	})
}

// fillRect zeroes [r0,r1)×[c0,c1) inside the buffer and returns the cell
// count. Empty ranges are a no-op.
func (s *Storage[T]) fillRect(r0, r1, c0, c1 int) int {
	if r0 >= r1 || c0 >= c1 {
		return 0
	}
	var zero T
	var i, j int
	for i = r0; i < r1; i++ {
		for j = c0; j < c1; j++ {
			s.data[s.offset(i, j)] = zero
		}
	}

	return (r1 - r0) * (c1 - c0)
}

// notify forwards ev to the configured observer, if any.
func (s *Storage[T]) notify(ev ReshapeEvent) {
	if s.observer != nil {
		s.observer.OnReshape(ev)
	}
}

// ---------- assignment ----------

// fit makes the logical extent equal rows×cols, reshaping along the axes the
// dimension policy allows. Reach is kept unless the new extent exceeds it.
//
// Errors: ErrInvalidLength, ErrShapeMismatch (a fixed axis differs).
func (s *Storage[T]) fit(rows, cols int) error {
	if err := validateLength(rows); err != nil {
		return err
	}
	if err := validateLength(cols); err != nil {
		return err
	}
	if (!s.extents.rowsDynamic() && rows != s.rows) || (!s.extents.colsDynamic() && cols != s.cols) {
		return ErrShapeMismatch
	}
	if err := capacityFor[T](rows, s.rowReach, cols, s.colReach); err != nil {
		return err
	}
	if rows != s.rows || cols != s.cols {
		s.reshape(rows, s.rowReach, cols, s.colReach)
	}

	return nil
}

// Assign replaces the content with a rectangular literal, reshaping to fit
// when the dimension policy allows.
//
// Errors: ErrShapeMismatch (ragged literal or fixed axis differs),
// ErrInvalidLength (empty literal), ErrInvalidReach (size too large to
// address). On error the engine is untouched.
func (s *Storage[T]) Assign(lit [][]T) error {
	rows, cols, err := ValidateLiteral(lit)
	if err != nil {
		return storageErrorf(ctxAssign, err)
	}
	if err = s.fit(rows, cols); err != nil {
		return storageErrorf(ctxAssign, err, rows, cols)
	}
	s.copyLiteral(lit)

	return nil
}

// CopyFrom replaces the content with src's logical extent, reshaping to fit
// when the dimension policy allows. A source that views this engine is
// materialized first, so self-referencing copies (e.g. a transpose of s into
// s) are well defined.
//
// Errors: ErrNilEngine, ErrShapeMismatch, ErrInvalidLength.
func (s *Storage[T]) CopyFrom(src Readable[T]) error {
	if src == nil {
		return storageErrorf(ctxCopyFrom, ErrNilEngine)
	}
	if isOwnedBy[T](src, s) {
		snap, err := NewFromEngine[T](src)
		if err != nil {
			return storageErrorf(ctxCopyFrom, err)
		}
		src = snap
	}
	if err := s.fit(src.Rows(), src.Cols()); err != nil {
		return storageErrorf(ctxCopyFrom, err, src.Rows(), src.Cols())
	}
	s.copyEngine(src)

	return nil
}

// copyLiteral writes a validated literal of matching shape.
func (s *Storage[T]) copyLiteral(lit [][]T) {
	var i, j int
	for i = 0; i < s.rows; i++ {
		if s.layout == RowMajor {
			copy(s.data[i*s.colReach:i*s.colReach+s.cols], lit[i])
			continue
		}
		for j = 0; j < s.cols; j++ {
			s.data[s.offset(i, j)] = lit[i][j]
		}
	}
}

// copyEngine writes src cell by cell; shapes are assumed equal.
func (s *Storage[T]) copyEngine(src Readable[T]) {
	var i, j int
	for i = 0; i < s.rows; i++ {
		for j = 0; j < s.cols; j++ {
			s.data[s.offset(i, j)] = src.At(i, j)
		}
	}
}

// ---------- whole-engine operations ----------

// Clone returns a deep copy with identical extent, reach, layout and policy.
// The observer and logger are shared.
// Complexity: O(reach).
func (s *Storage[T]) Clone() *Storage[T] {
	cp := *s
	cp.data = make([]T, len(s.data))
	copy(cp.data, s.data)

	return &cp
}

// Swap exchanges the complete state of two engines. Views over either engine
// keep pointing at the same *Storage and therefore observe the swapped data.
func (s *Storage[T]) Swap(other *Storage[T]) {
	if s == other {
		return
	}
	*s, *other = *other, *s
}

// Fill assigns v to every cell of the logical extent.
func (s *Storage[T]) Fill(v T) {
	var i, j int
	for i = 0; i < s.rows; i++ {
		for j = 0; j < s.cols; j++ {
			s.data[s.offset(i, j)] = v
		}
	}
}

// Do visits each logical cell in row order and calls f(i,j,v).
// Stops early when f returns false.
// Complexity: O(rows*cols).
func (s *Storage[T]) Do(f func(i, j int, v T) bool) {
	var i, j int
	for i = 0; i < s.rows; i++ {
		for j = 0; j < s.cols; j++ {
			if !f(i, j, s.data[s.offset(i, j)]) {
				return
			}
		}
	}
}

// Apply replaces each logical cell with f(i,j,v) in row order.
func (s *Storage[T]) Apply(f func(i, j int, v T) T) {
	var i, j, off int
	for i = 0; i < s.rows; i++ {
		for j = 0; j < s.cols; j++ {
			off = s.offset(i, j)
			s.data[off] = f(i, j, s.data[off])
		}
	}
}

// String renders the logical extent row by row for diagnostics.
// Complexity: O(rows*cols).
func (s *Storage[T]) String() string { return Format[T](s) }
