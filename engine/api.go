// SPDX-License-Identifier: MIT
// Package engine: public API facades.
//
// Purpose:
//   - Provide thin, intention-revealing entry points for common tasks.
//   - Avoid logic duplication: each facade delegates to the canonical
//     constructor or helper.
//
// AI-Hints:
//   - Materialize a view chain with Materialize before handing it to code
//     that reshapes or stores it.
//   - Use ZerosLike to allocate a staging buffer of another engine's shape.

package engine

// NewZeros returns a zero-initialized, fully dynamic rows×cols engine.
// It is a thin alias of NewSized with an intention-revealing name.
//
// Errors: ErrInvalidLength, ErrInvalidReach.
func NewZeros[T Element](rows, cols int, opts ...Option) (*Storage[T], error) {
	return NewSized[T](rows, cols, opts...)
}

// NewIdentity returns the n×n identity (ones on the diagonal).
// Complexity: O(n²) zeroing + O(n) diagonal writes.
func NewIdentity[T Element](n int, opts ...Option) (*Storage[T], error) {
	id, err := NewSized[T](n, n, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		id.Set(i, i, T(1))
	}

	return id, nil
}

// ZerosLike returns a zero engine with the same logical shape as e.
//
// Errors: ErrInvalidLength when e is empty (e.g. an unbound view).
func ZerosLike[T Element](e Shaped, opts ...Option) (*Storage[T], error) {
	if isNil(e) {
		return nil, storageErrorf(ctxNew, ErrNilEngine)
	}

	return NewSized[T](e.Rows(), e.Cols(), opts...)
}

// Materialize copies any engine (typically a view chain) into a new storage
// engine. Thin alias of NewFromEngine.
func Materialize[T Element](e Readable[T], opts ...Option) (*Storage[T], error) {
	if err := CheckEngine(e); err != nil {
		return nil, storageErrorf(ctxNew, err)
	}

	return NewFromEngine(e, opts...)
}
