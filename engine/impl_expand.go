// SPDX-License-Identifier: MIT

// Package engine - virtual expansion.
//
// An Expand view reports extents chosen by a Rule, which may exceed the
// parent's physical extent. Every element is synthesized by Rule.Eval from
// the parent and the virtual index: either by mapping the index back into the
// parent (periodic wraparound) or by producing a value with no physical
// counterpart (a pad outside a band). Expand views are always read-only.
//
// Rules may carry their own constructed state (widths, pad values, target
// extents); any value implementing Rule[T] is accepted.

package engine

const ctxExpand = "NewExpand"

// Rule synthesizes the elements of an Expand view.
//   - Rows/Cols return the virtual extents for parent p; they are evaluated
//     once, when the view is built.
//   - Eval returns the value at virtual index (i,j).
type Rule[T Element] interface {
	Rows(p Readable[T]) int
	Cols(p Readable[T]) int
	Eval(p Readable[T], i, j int) T
}

// Expand is the read-only virtual expansion view.
type Expand[T Element] struct {
	viewBase[T]
	rule       Rule[T]
	rows, cols int
}

// NewExpand binds an expansion of p driven by rule.
//
// Errors: ErrNilEngine (nil parent or rule), ErrUnboundView (zero-value view
// parent), ErrInvalidLength (empty parent), ErrInvalidRule (non-positive
// virtual extents or a RuleFunc without Fn).
// Complexity: O(1) plus the rule's extent computation.
func NewExpand[T Element](p Readable[T], rule Rule[T]) (Expand[T], error) {
	if err := CheckEngine(p); err != nil {
		return Expand[T]{}, viewErrorf(ctxExpand, err)
	}
	if isNil(rule) {
		return Expand[T]{}, viewErrorf(ctxExpand, ErrNilEngine)
	}
	if f, ok := rule.(RuleFunc[T]); ok && f.Fn == nil {
		return Expand[T]{}, viewErrorf(ctxExpand, ErrInvalidRule)
	}
	if p.Size() == 0 {
		return Expand[T]{}, viewErrorf(ctxExpand, ErrInvalidLength, p.Rows(), p.Cols())
	}
	rows, cols := rule.Rows(p), rule.Cols(p)
	if rows < 1 || cols < 1 {
		return Expand[T]{}, viewErrorf(ctxExpand, ErrInvalidRule, rows, cols)
	}

	return Expand[T]{viewBase: viewBase[T]{p: p}, rule: rule, rows: rows, cols: cols}, nil
}

// Rows returns the virtual row count.
func (v Expand[T]) Rows() int { return v.rows }

// Cols returns the virtual column count.
func (v Expand[T]) Cols() int { return v.cols }

// Size returns Rows()*Cols().
func (v Expand[T]) Size() int { return v.rows * v.cols }

// At evaluates the rule at virtual index (i,j).
func (v Expand[T]) At(i, j int) T { return v.rule.Eval(v.p, i, j) }

// AtFlat evaluates the rule at virtual row-major index k.
func (v Expand[T]) AtFlat(k int) T { return v.rule.Eval(v.p, k/v.cols, k%v.cols) }

// Kind reports KindExpand.
func (v Expand[T]) Kind() ViewKind { return KindExpand }

// Mutable reports false.
func (v Expand[T]) Mutable() bool { return false }

// Layout reports LayoutNone: the view has no physical layout.
func (v Expand[T]) Layout() Layout { return LayoutNone }

// Rule returns the bound rule.
func (v Expand[T]) Rule() Rule[T] { return v.rule }

// Swap exchanges parents, rules and virtual extents of v and o.
func (v *Expand[T]) Swap(o *Expand[T]) { *v, *o = *o, *v }

// ---------- built-in rules ----------

// Periodic tiles the parent over NumRows×NumCols: Eval(i,j) reads parent
// (i mod rows, j mod cols).
type Periodic[T Element] struct {
	NumRows, NumCols int
}

// Rows returns NumRows.
func (r Periodic[T]) Rows(Readable[T]) int { return r.NumRows }

// Cols returns NumCols.
func (r Periodic[T]) Cols(Readable[T]) int { return r.NumCols }

// Eval reads the parent at (i mod rows, j mod cols).
func (r Periodic[T]) Eval(p Readable[T], i, j int) T {
	return p.At(i%p.Rows(), j%p.Cols())
}

// Band repeats the parent periodically inside the diagonal band |i-j| < Width
// and returns Pad outside it.
type Band[T Element] struct {
	NumRows, NumCols int
	Width            int
	Pad              T
}

// Rows returns NumRows.
func (r Band[T]) Rows(Readable[T]) int { return r.NumRows }

// Cols returns NumCols.
func (r Band[T]) Cols(Readable[T]) int { return r.NumCols }

// Eval returns Pad off the band and the periodic parent value on it.
func (r Band[T]) Eval(p Readable[T], i, j int) T {
	d := i - j
	if d < 0 {
		d = -d
	}
	if d >= r.Width {
		return r.Pad
	}

	return p.At(i%p.Rows(), j%p.Cols())
}

// RowRepeat stacks NumRows copies of the parent's first row.
type RowRepeat[T Element] struct {
	NumRows int
}

// Rows returns NumRows.
func (r RowRepeat[T]) Rows(Readable[T]) int { return r.NumRows }

// Cols returns the parent's column count.
func (r RowRepeat[T]) Cols(p Readable[T]) int { return p.Cols() }

// Eval reads row 0 of the parent at column j.
func (r RowRepeat[T]) Eval(p Readable[T], _, j int) T { return p.At(0, j) }

// ColRepeat places NumCols copies of the parent's first column side by side.
type ColRepeat[T Element] struct {
	NumCols int
}

// Rows returns the parent's row count.
func (r ColRepeat[T]) Rows(p Readable[T]) int { return p.Rows() }

// Cols returns NumCols.
func (r ColRepeat[T]) Cols(Readable[T]) int { return r.NumCols }

// Eval reads column 0 of the parent at row i.
func (r ColRepeat[T]) Eval(p Readable[T], i, _ int) T { return p.At(i, 0) }

// Transposer derives its extents from the parent and reads it transposed.
type Transposer[T Element] struct{}

// Rows returns the parent's column count.
func (Transposer[T]) Rows(p Readable[T]) int { return p.Cols() }

// Cols returns the parent's row count.
func (Transposer[T]) Cols(p Readable[T]) int { return p.Rows() }

// Eval reads the parent at (j,i).
func (Transposer[T]) Eval(p Readable[T], i, j int) T { return p.At(j, i) }

// RuleFunc adapts a function to a Rule with fixed virtual extents.
type RuleFunc[T Element] struct {
	NumRows, NumCols int
	Fn               func(p Readable[T], i, j int) T
}

// Rows returns NumRows.
func (r RuleFunc[T]) Rows(Readable[T]) int { return r.NumRows }

// Cols returns NumCols.
func (r RuleFunc[T]) Cols(Readable[T]) int { return r.NumCols }

// Eval calls Fn.
func (r RuleFunc[T]) Eval(p Readable[T], i, j int) T {
	return r.Fn(p, i, j)
}
