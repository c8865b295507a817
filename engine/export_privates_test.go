// SPDX-License-Identifier: MIT

package engine

// Test-Bridge (White-Box) for private helpers and the options snapshot.
//
// Purpose:
//   - Expose unexported helpers and internal state to engine_test ONLY.
//   - The file ends in _test.go, so nothing here widens the production API.
//
// Maintenance:
//   - Keep OptionsSnapshot in sync with the options struct; tests catch drift.

// OptionsSnapshot is a read-only copy of the effective options.
type OptionsSnapshot struct {
	Layout      Layout
	RowReach    int
	ColReach    int
	HasObserver bool
	HasLogger   bool
}

// GatherOptionsSnapshot_TestOnly applies opts over the defaults.
func GatherOptionsSnapshot_TestOnly(opts ...Option) OptionsSnapshot {
	o := gatherOptions(opts...)

	return OptionsSnapshot{
		Layout:      o.layout,
		RowReach:    o.rowReach,
		ColReach:    o.colReach,
		HasObserver: o.observer != nil,
		HasLogger:   o.logger != nil,
	}
}

// BufferOf_TestOnly returns the storage buffer (shared, not copied).
func BufferOf_TestOnly[T Element](s *Storage[T]) []T { return s.data }

// FlatOffset_TestOnly maps a logical flat index to a buffer offset.
func FlatOffset_TestOnly[T Element](s *Storage[T], k int) int { return s.flatOffset(k) }

// Conj_TestOnly exposes the generic conjugation helper.
func Conj_TestOnly[T Element](v T) T { return conj(v) }

var (
	ExportedValidateDims   = validateDims
	ExportedValidateWindow = validateWindow
	ExportedIsNil          = isNil
)
