// SPDX-License-Identifier: MIT

// Package codec serializes and fingerprints lvengine storage engines.
//
// Wire format:
//   - CBOR with Core Deterministic Encoding (RFC 8949 §4.2): the same engine
//     content always encodes to identical bytes.
//   - A storage document is a map {layout, extents, rows, cols, row_reach,
//     col_reach, cells}. Cells hold the logical extent only, in the engine's
//     flat (layout) order. Complex cells are encoded as [re, im] pairs.
//
// Fingerprints:
//   - Fingerprint hashes shape plus row-major cells with a keyed BLAKE3 hash.
//     Two engines with equal logical content share a fingerprint regardless
//     of layout, reach or view nesting.
//
// YAML:
//   - LiteralFromYAML and LoadYAML read hand-written fixtures, either a bare
//     sequence of rows or a {layout, reach, cells} mapping.
package codec
