// SPDX-License-Identifier: MIT

// Package engine: capability classification and owner resolution.
//
// Purpose:
//   - Derive the readable / writable / reshapeable / owning capability set of
//     any value from its method set (and, for storage engines, from their
//     dimension policy).
//   - Resolve the ultimate owning engine behind any view chain.
//
// The classifier is consulted by Compose at every step; the typed view
// constructors enforce the same rules at compile time.

package engine

import (
	"reflect"
	"strings"
)

// Capability is a bit set of engine capabilities.
type Capability uint8

const (
	// CapReadable marks engines with element reads (Readable[T]).
	CapReadable Capability = 1 << iota
	// CapWritable marks engines that accept element writes.
	CapWritable
	// CapReshapeRows marks engines whose row axis may be reshaped.
	CapReshapeRows
	// CapReshapeCols marks engines whose column axis may be reshaped.
	CapReshapeCols
	// CapOwning marks engines that own their buffer (not views).
	CapOwning
)

var capabilityNames = [...]struct {
	bit  Capability
	name string
}{
	{CapReadable, "readable"},
	{CapWritable, "writable"},
	{CapReshapeRows, "reshape-rows"},
	{CapReshapeCols, "reshape-cols"},
	{CapOwning, "owning"},
}

// Has reports whether every bit of want is set in c.
func (c Capability) Has(want Capability) bool { return c&want == want }

// String renders the set as "readable|writable|...", or "none".
func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	parts := make([]string, 0, len(capabilityNames))
	for _, n := range capabilityNames {
		if c.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}

	return strings.Join(parts, "|")
}

// capabilityReporter is implemented by engines that know their reshape
// capabilities better than their method set does (e.g. a fixed Storage still
// has Reshape methods, which always fail).
type capabilityReporter interface {
	Capabilities() Capability
}

// Classify returns the capability set of e for element type T.
//
// Rules:
//   - readable iff e implements Readable[T];
//   - writable iff e implements Writable[T] and, when e is a view, Mutable();
//   - reshape bits from Capabilities() when reported, else from the
//     RowReshapeable / ColReshapeable method sets;
//   - owning iff e is readable and not a View[T].
//
// A nil value or a non-engine classifies as 0.
// Complexity: O(1).
func Classify[T Element](e any) Capability {
	if isNil(e) {
		return 0
	}
	if _, ok := e.(Readable[T]); !ok {
		return 0
	}
	c := CapReadable

	v, isView := e.(View[T])
	if _, ok := e.(Writable[T]); ok && (!isView || v.Mutable()) {
		c |= CapWritable
	}

	if rep, ok := e.(capabilityReporter); ok {
		c |= rep.Capabilities() & (CapReshapeRows | CapReshapeCols)
	} else {
		if _, ok := e.(RowReshapeable); ok {
			c |= CapReshapeRows
		}
		if _, ok := e.(ColReshapeable); ok {
			c |= CapReshapeCols
		}
	}

	if !isView {
		c |= CapOwning
	}

	return c
}

// IsReadable reports Classify[T](e).Has(CapReadable).
func IsReadable[T Element](e any) bool { return Classify[T](e).Has(CapReadable) }

// IsWritable reports Classify[T](e).Has(CapWritable).
func IsWritable[T Element](e any) bool { return Classify[T](e).Has(CapWritable) }

// IsReshapeable reports whether both axes of e may be reshaped.
func IsReshapeable[T Element](e any) bool {
	return Classify[T](e).Has(CapReshapeRows | CapReshapeCols)
}

// IsOwning reports Classify[T](e).Has(CapOwning).
func IsOwning[T Element](e any) bool { return Classify[T](e).Has(CapOwning) }

// IsView reports whether e is a view engine over T.
func IsView[T Element](e any) bool {
	_, ok := e.(View[T])

	return ok && !isNil(e)
}

// ownerOf resolves p to its ultimate owning engine.
func ownerOf[T Element](p Readable[T]) Readable[T] {
	if v, ok := p.(View[T]); ok {
		return v.Owner()
	}

	return p
}

// OwningEngine returns the engine that owns e's data: e itself when e is not
// a view, otherwise the owner resolved through every nesting level.
// Returns nil for nil input and unbound views.
func OwningEngine[T Element](e Readable[T]) Readable[T] {
	if isNil(e) {
		return nil
	}

	return ownerOf(e)
}

// StorageOf returns the *Storage[T] owning e, if the owner is a storage
// engine.
func StorageOf[T Element](e Readable[T]) (*Storage[T], bool) {
	s, ok := OwningEngine(e).(*Storage[T])

	return s, ok && s != nil
}

// SameOwner reports whether a and b resolve to the same owning engine.
// Owners of non-comparable dynamic types never compare equal.
func SameOwner[T Element](a, b Readable[T]) bool {
	oa, ob := OwningEngine(a), OwningEngine(b)
	if oa == nil || ob == nil {
		return false
	}
	ta, tb := reflect.TypeOf(oa), reflect.TypeOf(ob)
	if ta != tb || !ta.Comparable() {
		return false
	}

	return oa == ob
}

// isOwnedBy reports whether e's data lives in s.
func isOwnedBy[T Element](e Readable[T], s *Storage[T]) bool {
	o, ok := StorageOf(e)

	return ok && o == s
}

// IsRowVector reports whether s has exactly one row.
func IsRowVector(s Shaped) bool { return !isNil(s) && s.Rows() == 1 }

// IsColVector reports whether s has exactly one column.
func IsColVector(s Shaped) bool { return !isNil(s) && s.Cols() == 1 }

// isNil reports whether v is nil or an interface holding a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
