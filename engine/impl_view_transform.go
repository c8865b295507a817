// SPDX-License-Identifier: MIT

// Package engine - transform views: transpose (index swap) and the value
// views conjugate, negation and scale.
//
// Behavior highlights:
//   - Transpose swaps shape and indices, and reports the flipped layout.
//     AtFlat forwards the flat index unchanged: the parent's k-th element in
//     its layout order is the view's k-th element in the flipped order.
//   - Value views keep shape, indices and layout; they are always read-only.
//   - Conjugate is the identity on real element types.
//
// Complexity: every accessor is O(1) plus the parent's access cost.

package engine

import (
	"math/cmplx"
	"reflect"
)

// ---------- transpose ----------

type transposeCore[T Element] struct{ viewBase[T] }

func (v transposeCore[T]) Rows() int      { return v.parentCols() }
func (v transposeCore[T]) Cols() int      { return v.parentRows() }
func (v transposeCore[T]) Size() int      { return v.parentRows() * v.parentCols() }
func (v transposeCore[T]) At(i, j int) T  { return v.p.At(j, i) }
func (v transposeCore[T]) AtFlat(k int) T { return v.p.AtFlat(k) }
func (v transposeCore[T]) Kind() ViewKind { return KindTranspose }
func (v transposeCore[T]) Layout() Layout { return v.parentLayout().Transposed() }

// Transpose is a mutable view with swapped indices: At(i,j) == parent.At(j,i).
type Transpose[T Element] struct {
	transposeCore[T]
	w Writable[T]
}

// NewTranspose binds a mutable transpose view to p.
// A nil p yields an unbound view.
func NewTranspose[T Element](p Writable[T]) Transpose[T] {
	b := bindParent[T](p)
	if !b.HasView() {
		return Transpose[T]{}
	}

	return Transpose[T]{transposeCore: transposeCore[T]{b}, w: p}
}

// Mutable reports true.
func (v Transpose[T]) Mutable() bool { return true }

// Set writes parent (j,i).
func (v Transpose[T]) Set(i, j int, x T) { v.w.Set(j, i, x) }

// SetFlat writes the parent's flat index k.
func (v Transpose[T]) SetFlat(k int, x T) { v.w.SetFlat(k, x) }

// Swap exchanges the parent references of v and o.
func (v *Transpose[T]) Swap(o *Transpose[T]) { *v, *o = *o, *v }

// ConstTranspose is the read-only transpose view.
type ConstTranspose[T Element] struct{ transposeCore[T] }

// NewConstTranspose binds a read-only transpose view to p.
func NewConstTranspose[T Element](p Readable[T]) ConstTranspose[T] {
	return ConstTranspose[T]{transposeCore[T]{bindParent(p)}}
}

// Mutable reports false.
func (v ConstTranspose[T]) Mutable() bool { return false }

// Swap exchanges the parent references of v and o.
func (v *ConstTranspose[T]) Swap(o *ConstTranspose[T]) { *v, *o = *o, *v }

// ---------- value views ----------

type valueCore[T Element] struct{ viewBase[T] }

func (v valueCore[T]) Rows() int      { return v.parentRows() }
func (v valueCore[T]) Cols() int      { return v.parentCols() }
func (v valueCore[T]) Size() int      { return v.parentRows() * v.parentCols() }
func (v valueCore[T]) Layout() Layout { return v.parentLayout() }
func (v valueCore[T]) Mutable() bool  { return false }

// Negation is a read-only view with At(i,j) == -parent.At(i,j).
type Negation[T Element] struct{ valueCore[T] }

// NewNegation binds a negation view to p.
func NewNegation[T Element](p Readable[T]) Negation[T] {
	return Negation[T]{valueCore[T]{bindParent(p)}}
}

// At returns -parent.At(i,j).
func (v Negation[T]) At(i, j int) T { return -v.p.At(i, j) }

// AtFlat returns -parent.AtFlat(k).
func (v Negation[T]) AtFlat(k int) T { return -v.p.AtFlat(k) }

// Kind reports KindNegation.
func (v Negation[T]) Kind() ViewKind { return KindNegation }

// Swap exchanges the parent references of v and o.
func (v *Negation[T]) Swap(o *Negation[T]) { *v, *o = *o, *v }

// Conjugate is a read-only view with At(i,j) == conj(parent.At(i,j)).
// For real element types it is the identity.
type Conjugate[T Element] struct{ valueCore[T] }

// NewConjugate binds a conjugate view to p.
func NewConjugate[T Element](p Readable[T]) Conjugate[T] {
	return Conjugate[T]{valueCore[T]{bindParent(p)}}
}

// At returns conj(parent.At(i,j)).
func (v Conjugate[T]) At(i, j int) T { return conj(v.p.At(i, j)) }

// AtFlat returns conj(parent.AtFlat(k)).
func (v Conjugate[T]) AtFlat(k int) T { return conj(v.p.AtFlat(k)) }

// Kind reports KindConjugate.
func (v Conjugate[T]) Kind() ViewKind { return KindConjugate }

// Swap exchanges the parent references of v and o.
func (v *Conjugate[T]) Swap(o *Conjugate[T]) { *v, *o = *o, *v }

// Scale is a read-only view with At(i,j) == a*parent.At(i,j).
type Scale[T Element] struct {
	valueCore[T]
	a T
}

// NewScale binds a scale view with factor a to p.
func NewScale[T Element](p Readable[T], a T) Scale[T] {
	return Scale[T]{valueCore: valueCore[T]{bindParent(p)}, a: a}
}

// Factor returns the scale factor.
func (v Scale[T]) Factor() T { return v.a }

// At returns a*parent.At(i,j).
func (v Scale[T]) At(i, j int) T { return v.a * v.p.At(i, j) }

// AtFlat returns a*parent.AtFlat(k).
func (v Scale[T]) AtFlat(k int) T { return v.a * v.p.AtFlat(k) }

// Kind reports KindScale.
func (v Scale[T]) Kind() ViewKind { return KindScale }

// Swap exchanges parent references and factors of v and o.
func (v *Scale[T]) Swap(o *Scale[T]) { *v, *o = *o, *v }

// NewHermitian returns the conjugate transpose of p: a conjugate view over a
// read-only transpose view.
func NewHermitian[T Element](p Readable[T]) Conjugate[T] {
	if isNil(p) {
		return Conjugate[T]{}
	}

	return NewConjugate[T](NewConstTranspose(p))
}

// conj complex-conjugates v; real values are returned unchanged.
// Named complex types fall back to reflection.
func conj[T Element](v T) T {
	switch x := any(v).(type) {
	case complex128:
		return any(cmplx.Conj(x)).(T)
	case complex64:
		return any(complex(real(x), -imag(x))).(T)
	}
	rv := reflect.ValueOf(v)
	if k := rv.Kind(); k != reflect.Complex64 && k != reflect.Complex128 {
		return v
	}
	out := reflect.New(rv.Type()).Elem()
	out.SetComplex(cmplx.Conj(rv.Complex()))

	return out.Interface().(T)
}
