// SPDX-License-Identifier: MIT

// Package lvengine is a generic matrix data-access layer: owning storage
// engines with reserved reach, and lightweight views that remap indices or
// values without copying.
//
// Everything is organized under three subpackages:
//
//	engine/   storage engines, the view family (transpose, negation,
//	          conjugate, scale, row, col, box, expand), capability
//	          classification, composition and the commutation table
//	codec/    deterministic CBOR encoding, BLAKE3 fingerprints and YAML
//	          fixtures for storage engines
//	metrics/  a Prometheus observer for reshape activity
//
// Quick example:
//
//	s, _ := engine.NewFromLiteral([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
//	h := engine.NewNegation[float64](engine.NewTranspose[float64](s))
//	h.At(0, 2) // -7
//
// Engines are not safe for concurrent mutation; concurrent reads of an engine
// that nobody reshapes are safe.
package lvengine
