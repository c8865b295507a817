// SPDX-License-Identifier: MIT

// Package engine: runtime composition of view chains.
//
// Compose builds a chain from a description (a slice of Step), consulting
// Classify at every step: a mutable step over a parent that is not writable
// fails with ErrIncompatibleView. This mirrors, at run time, the compile-time
// rule enforced by the typed constructors (mutable views take Writable[T]).

package engine

import "fmt"

// Step describes one view layer of a chain.
type Step struct {
	Kind    ViewKind
	Mutable bool

	// Index is the parent row (KindRow) or column (KindCol).
	Index int

	// Row0, Col0, Rows, Cols describe the KindBox window.
	Row0, Col0 int
	Rows, Cols int

	// Scalar is the KindScale factor; its dynamic type must be the chain's T.
	Scalar any

	// Rule is the KindExpand rule; it must implement Rule[T].
	Rule any
}

// String renders the step for diagnostics, e.g. "box(1,1,2,2)" or "transpose(ro)".
func (s Step) String() string {
	mode := "ro"
	if s.Mutable {
		mode = "rw"
	}
	switch s.Kind {
	case KindRow, KindCol:
		return fmt.Sprintf("%s[%d](%s)", s.Kind, s.Index, mode)
	case KindBox:
		return fmt.Sprintf("%s[%d,%d,%d,%d](%s)", s.Kind, s.Row0, s.Col0, s.Rows, s.Cols, mode)
	case KindScale:
		return fmt.Sprintf("%s[%v](%s)", s.Kind, s.Scalar, mode)
	default:
		return fmt.Sprintf("%s(%s)", s.Kind, mode)
	}
}

// TransparentStep describes a pass-through view.
func TransparentStep(mutable bool) Step { return Step{Kind: KindTransparent, Mutable: mutable} }

// TransposeStep describes a transpose view.
func TransposeStep(mutable bool) Step { return Step{Kind: KindTranspose, Mutable: mutable} }

// NegationStep describes a negation view (always read-only).
func NegationStep() Step { return Step{Kind: KindNegation} }

// ConjugateStep describes a conjugate view (always read-only).
func ConjugateStep() Step { return Step{Kind: KindConjugate} }

// ScaleStep describes a scale view with factor a (always read-only).
func ScaleStep[T Element](a T) Step { return Step{Kind: KindScale, Scalar: a} }

// RowStep describes a view of parent row r.
func RowStep(r int, mutable bool) Step { return Step{Kind: KindRow, Index: r, Mutable: mutable} }

// ColStep describes a view of parent column c.
func ColStep(c int, mutable bool) Step { return Step{Kind: KindCol, Index: c, Mutable: mutable} }

// BoxStep describes a rows×cols window at (r0,c0).
func BoxStep(r0, c0, rows, cols int, mutable bool) Step {
	return Step{Kind: KindBox, Row0: r0, Col0: c0, Rows: rows, Cols: cols, Mutable: mutable}
}

// ExpandStep describes a virtual expansion driven by rule (always read-only).
func ExpandStep[T Element](rule Rule[T]) Step { return Step{Kind: KindExpand, Rule: rule} }

// Compose applies steps to base in order (steps[0] wraps base) and returns
// the outermost engine.
//
// Errors:
//   - ErrNilEngine, ErrUnboundView: base is nil or an unbound view.
//   - ErrIncompatibleView: a mutable step over a non-writable parent, a
//     mutable value or expand step, a Scalar/Rule of the wrong element type,
//     or an unknown kind.
//   - Constructor errors of row/col/box/expand steps (ErrOutOfRange, ...).
//
// Every error names the failing step index.
// Complexity: O(len(steps)).
func Compose[T Element](base Readable[T], steps ...Step) (Readable[T], error) {
	if err := CheckEngine(base); err != nil {
		return nil, fmt.Errorf("Compose: %w", err)
	}
	cur := base
	for i, s := range steps {
		next, err := applyStep(cur, s)
		if err != nil {
			return nil, fmt.Errorf("Compose: step %d %s: %w", i, s, err)
		}
		cur = next
	}

	return cur, nil
}

// asReadable erases a concrete view type, propagating constructor errors.
func asReadable[T Element, V Readable[T]](v V, err error) (Readable[T], error) {
	if err != nil {
		return nil, err
	}

	return v, nil
}

// applyStep wraps p in the view described by s.
func applyStep[T Element](p Readable[T], s Step) (Readable[T], error) {
	if s.Mutable {
		if s.Kind.AlwaysReadOnly() || !Classify[T](p).Has(CapWritable) {
			return nil, ErrIncompatibleView
		}
		w := p.(Writable[T])
		switch s.Kind {
		case KindTransparent:
			return NewTransparent(w), nil
		case KindTranspose:
			return NewTranspose(w), nil
		case KindRow:
			return asReadable[T](NewRow(w, s.Index))
		case KindCol:
			return asReadable[T](NewCol(w, s.Index))
		case KindBox:
			return asReadable[T](NewBox(w, s.Row0, s.Col0, s.Rows, s.Cols))
		}

		return nil, ErrIncompatibleView
	}

	switch s.Kind {
	case KindTransparent:
		return NewConstTransparent(p), nil
	case KindTranspose:
		return NewConstTranspose(p), nil
	case KindNegation:
		return NewNegation(p), nil
	case KindConjugate:
		return NewConjugate(p), nil
	case KindScale:
		a, ok := s.Scalar.(T)
		if !ok {
			return nil, ErrIncompatibleView
		}

		return NewScale(p, a), nil
	case KindRow:
		return asReadable[T](NewConstRow(p, s.Index))
	case KindCol:
		return asReadable[T](NewConstCol(p, s.Index))
	case KindBox:
		return asReadable[T](NewConstBox(p, s.Row0, s.Col0, s.Rows, s.Cols))
	case KindExpand:
		rule, ok := s.Rule.(Rule[T])
		if !ok {
			return nil, ErrIncompatibleView
		}

		return asReadable[T](NewExpand(p, rule))
	}

	return nil, ErrIncompatibleView
}

// CheckCommute composes base with a then b, and with b then a, and reports
// whether both chains expose the same shape and elements. Steps are applied
// read-only so that the order never trips the mutability rule.
//
// Errors: any Compose error from either order.
func CheckCommute[T Element](base Readable[T], a, b Step) (bool, error) {
	a.Mutable, b.Mutable = false, false
	ab, err := Compose(base, a, b)
	if err != nil {
		return false, err
	}
	ba, err := Compose(base, b, a)
	if err != nil {
		return false, err
	}

	return Equal(ab, ba), nil
}
