// SPDX-License-Identifier: MIT

// Package engine: element constraints, layout tags and the engine interface
// hierarchy. Errors and options live in dedicated files (errors.go,
// options.go).
package engine

import "golang.org/x/exp/constraints"

// Real is the set of element types with an ordered, real value.
type Real interface {
	constraints.Integer | constraints.Float
}

// Complex is the set of complex element types.
type Complex interface {
	constraints.Complex
}

// Element is the set of element types an engine may hold.
// Every Element supports unary minus and ==, which the negation view and the
// exact-compare helpers rely on.
type Element interface {
	Real | Complex
}

// Layout fixes how a 2-D index maps to a 1-D buffer offset.
type Layout uint8

const (
	// RowMajor stores rows contiguously: offset(i,j) = j + i*colReach.
	RowMajor Layout = iota
	// ColMajor stores columns contiguously: offset(i,j) = i + j*rowReach.
	ColMajor
	// LayoutNone marks engines without a physical layout (virtual expansion).
	LayoutNone
)

// String implements fmt.Stringer.
func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "col-major"
	default:
		return "none"
	}
}

// Transposed returns the layout observed through a transpose view.
func (l Layout) Transposed() Layout {
	switch l {
	case RowMajor:
		return ColMajor
	case ColMajor:
		return RowMajor
	default:
		return LayoutNone
	}
}

// Extents is the dimension policy of a storage engine: which axes may be
// reshaped after construction.
type Extents uint8

const (
	// DynamicBoth allows Reshape, ReshapeRows and ReshapeCols.
	DynamicBoth Extents = iota
	// DynamicRows fixes the column count; only ReshapeRows is allowed.
	DynamicRows
	// DynamicCols fixes the row count; only ReshapeCols is allowed.
	DynamicCols
	// FixedBoth fixes both axes; reach always equals the logical size.
	FixedBoth
)

// String implements fmt.Stringer.
func (e Extents) String() string {
	switch e {
	case DynamicBoth:
		return "dynamic"
	case DynamicRows:
		return "dynamic-rows"
	case DynamicCols:
		return "dynamic-cols"
	default:
		return "fixed"
	}
}

func (e Extents) rowsDynamic() bool { return e == DynamicBoth || e == DynamicRows }
func (e Extents) colsDynamic() bool { return e == DynamicBoth || e == DynamicCols }

// Shaped exposes the only shape queries consumers may rely on.
type Shaped interface {
	// Rows returns the logical row count.
	Rows() int
	// Cols returns the logical column count.
	Cols() int
	// Size returns Rows()*Cols().
	Size() int
}

// Readable engines expose immutable element access by 2-D and flat index.
//
// AtFlat addresses the engine's logical linear order (its layout order);
// for a storage engine whose reach equals its size this is the buffer offset.
type Readable[T Element] interface {
	Shaped
	At(i, j int) T
	AtFlat(i int) T
}

// Writable engines additionally accept element writes through the same
// indices.
type Writable[T Element] interface {
	Readable[T]
	Set(i, j int, v T)
	SetFlat(i int, v T)
}

// RowReshapeable engines can change their row extent and reach.
type RowReshapeable interface {
	RowReach() int
	ReshapeRows(rows, rowReach int) error
}

// ColReshapeable engines can change their column extent and reach.
type ColReshapeable interface {
	ColReach() int
	ReshapeCols(cols, colReach int) error
}

// Reshapeable engines can change both axes in a single operation.
type Reshapeable interface {
	RowReshapeable
	ColReshapeable
	Reach() int
	Reshape(rows, rowReach, cols, colReach int) error
}

// Oriented engines report the layout observed through them.
type Oriented interface {
	Layout() Layout
}

// View is a non-owning engine over a parent engine.
type View[T Element] interface {
	Readable[T]
	// HasView reports whether the view is bound to a parent.
	HasView() bool
	// Kind returns the view kind.
	Kind() ViewKind
	// Mutable reports whether writes are accepted through the view.
	Mutable() bool
	// Parent returns the directly wrapped engine (nil when unbound).
	Parent() Readable[T]
	// Owner returns the ultimate owning engine, resolved through any
	// nesting depth (nil when unbound).
	Owner() Readable[T]
}

// ViewKind identifies the index/value transformation of a view.
type ViewKind uint8

const (
	// KindNone is reported by owning engines and the zero Step.
	KindNone ViewKind = iota
	// KindTransparent passes indices and values through.
	KindTransparent
	// KindTranspose swaps (i,j).
	KindTranspose
	// KindConjugate complex-conjugates values.
	KindConjugate
	// KindNegation negates values.
	KindNegation
	// KindScale multiplies values by a fixed scalar.
	KindScale
	// KindRow fixes the row index.
	KindRow
	// KindCol fixes the column index.
	KindCol
	// KindBox offsets into a rectangular window.
	KindBox
	// KindExpand synthesizes a virtual extent through a Rule.
	KindExpand
)

var viewKindNames = [...]string{
	KindNone:        "none",
	KindTransparent: "transparent",
	KindTranspose:   "transpose",
	KindConjugate:   "conjugate",
	KindNegation:    "negation",
	KindScale:       "scale",
	KindRow:         "row",
	KindCol:         "col",
	KindBox:         "box",
	KindExpand:      "expand",
}

// String implements fmt.Stringer.
func (k ViewKind) String() string {
	if int(k) < len(viewKindNames) {
		return viewKindNames[k]
	}

	return "unknown"
}

// IsValueTransform reports whether the kind changes values but not indices.
func (k ViewKind) IsValueTransform() bool {
	return k == KindConjugate || k == KindNegation || k == KindScale
}

// IsIndexTransform reports whether the kind remaps indices without changing
// values.
func (k ViewKind) IsIndexTransform() bool {
	return k == KindTranspose || k == KindRow || k == KindCol || k == KindBox
}

// AlwaysReadOnly reports whether every view of this kind is read-only.
func (k ViewKind) AlwaysReadOnly() bool {
	return k.IsValueTransform() || k == KindExpand
}
