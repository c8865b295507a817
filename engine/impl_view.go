// SPDX-License-Identifier: MIT

// Package engine - view engines: shared plumbing and the transparent view.
//
// Purpose:
//   - Provide the non-owning parent reference every view kind embeds
//     (HasView / Parent / Owner).
//   - Provide the transparent view (pass-through of indices and values).
//
// Contract (all view kinds):
//   - Zero value is unbound: HasView()==false, Rows()==Cols()==Size()==0.
//     Element access on an unbound view panics (nil parent), like At on a
//     zero-sized Storage.
//   - Views never own memory; they keep the parent engine, not its buffer.
//     A Storage parent may reallocate underneath a view and the view keeps
//     reading the live buffer.
//   - Views are small values: copy them freely. Swap exchanges the parent
//     reference and the view's own parameters only.
//   - Mutable views (Transparent, Transpose, Row, Col, Box) need a
//     Writable[T] parent; their Const* counterparts accept any Readable[T]
//     and have no Set methods, so a mutable view over a read-only one does
//     not compile.

package engine

// viewBase holds the parent reference shared by every view kind.
type viewBase[T Element] struct {
	p Readable[T]
}

// bindParent drops typed-nil parents so HasView stays honest.
func bindParent[T Element](p Readable[T]) viewBase[T] {
	if isNil(p) {
		return viewBase[T]{}
	}

	return viewBase[T]{p: p}
}

// HasView reports whether the view is bound to a parent.
func (b viewBase[T]) HasView() bool { return b.p != nil }

// Parent returns the directly wrapped engine, or nil when unbound.
func (b viewBase[T]) Parent() Readable[T] { return b.p }

// Owner returns the ultimate owning engine, or nil when unbound.
func (b viewBase[T]) Owner() Readable[T] {
	if b.p == nil {
		return nil
	}

	return ownerOf(b.p)
}

func (b viewBase[T]) parentRows() int {
	if b.p == nil {
		return 0
	}

	return b.p.Rows()
}

func (b viewBase[T]) parentCols() int {
	if b.p == nil {
		return 0
	}

	return b.p.Cols()
}

// parentLayout reports the layout observed through the parent, LayoutNone
// when the parent does not report one.
func (b viewBase[T]) parentLayout() Layout {
	if o, ok := b.p.(Oriented); ok {
		return o.Layout()
	}

	return LayoutNone
}

// ---------- transparent ----------

type transparentCore[T Element] struct{ viewBase[T] }

func (v transparentCore[T]) Rows() int      { return v.parentRows() }
func (v transparentCore[T]) Cols() int      { return v.parentCols() }
func (v transparentCore[T]) Size() int      { return v.parentRows() * v.parentCols() }
func (v transparentCore[T]) At(i, j int) T  { return v.p.At(i, j) }
func (v transparentCore[T]) AtFlat(k int) T { return v.p.AtFlat(k) }
func (v transparentCore[T]) Kind() ViewKind { return KindTransparent }
func (v transparentCore[T]) Layout() Layout { return v.parentLayout() }

// Transparent is a mutable pass-through view.
type Transparent[T Element] struct {
	transparentCore[T]
	w Writable[T]
}

// NewTransparent binds a mutable pass-through view to p.
// A nil p yields an unbound view.
func NewTransparent[T Element](p Writable[T]) Transparent[T] {
	b := bindParent[T](p)
	if !b.HasView() {
		return Transparent[T]{}
	}

	return Transparent[T]{transparentCore: transparentCore[T]{b}, w: p}
}

// Mutable reports true: writes pass through to the parent.
func (v Transparent[T]) Mutable() bool { return true }

// Set writes through to the parent.
func (v Transparent[T]) Set(i, j int, x T) { v.w.Set(i, j, x) }

// SetFlat writes through to the parent's flat index.
func (v Transparent[T]) SetFlat(k int, x T) { v.w.SetFlat(k, x) }

// Swap exchanges the parent references of v and o.
func (v *Transparent[T]) Swap(o *Transparent[T]) { *v, *o = *o, *v }

// ConstTransparent is a read-only pass-through view.
type ConstTransparent[T Element] struct{ transparentCore[T] }

// NewConstTransparent binds a read-only pass-through view to p.
func NewConstTransparent[T Element](p Readable[T]) ConstTransparent[T] {
	return ConstTransparent[T]{transparentCore[T]{bindParent(p)}}
}

// Mutable reports false.
func (v ConstTransparent[T]) Mutable() bool { return false }

// Swap exchanges the parent references of v and o.
func (v *ConstTransparent[T]) Swap(o *ConstTransparent[T]) { *v, *o = *o, *v }
