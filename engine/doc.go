// Package engine provides strongly-typed element access to rectangular numeric
// data through a family of cooperating engines.
//
// The engine package provides:
//
//   - Storage, the only owning engine: a contiguous buffer with a logical
//     extent (Rows × Cols) and a reach (RowReach × ColReach) that amortizes
//     growth. Reshape reuses the buffer whenever the reach allows.
//   - A view family (Transparent, Transpose, Conjugate, Negation, Scale, Row,
//     Col, Box, Expand) that reinterprets a parent engine without copying.
//     Mutable views require a Writable parent; read-only views accept any
//     Readable parent. Views nest to arbitrary depth and always resolve the
//     ultimate owning engine via Owner.
//   - A capability classifier (Classify) that decides readable, writable,
//     reshapeable and owning for any engine value.
//   - A composer (Compose) and a commutation table (Commutes, Canonicalize)
//     that rewrite view chains into a minimal canonical form.
//   - Virtual expansion (Expand + Rule) for views larger than their parent.
//
// Access is unchecked on the hot path (At/Set); CheckedAt and CheckedSet
// return ErrOutOfRange instead of panicking. Nothing in this package locks:
// callers sharing one Storage between goroutines serialize externally.
//
// See the examples in this package for usage patterns.
package engine
