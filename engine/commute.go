// SPDX-License-Identifier: MIT

// Package engine: commutation facts between view kinds and canonical
// rewriting of view chains.
//
// Chains are ordered innermost first: steps[0] wraps the base engine.
//
// Commutation facts (symmetric):
//   - transparent commutes with every kind;
//   - value kinds (negation, conjugate, scale) commute with each other and
//     with every index kind (transpose, row, col, box), except conjugate with
//     scale: conj(a*x) differs from a*conj(x) for a non-real factor;
//   - transpose commutes with itself, transparent and value kinds only;
//   - row, col and box commute with transparent and value kinds only: their
//     indices are axis-specific, so swapping them with a transpose or with
//     each other changes which cells are selected;
//   - expand commutes only with transparent: a rule may synthesize values
//     (pads) that a value transform would otherwise alter.

package engine

const numKinds = int(KindExpand) + 1

// commuteTable[a][b] is the commutation fact for kinds a and b.
var commuteTable = buildCommuteTable()

func buildCommuteTable() (t [numKinds][numKinds]bool) {
	value := []ViewKind{KindNegation, KindConjugate, KindScale}
	index := []ViewKind{KindTranspose, KindRow, KindCol, KindBox}

	set := func(a, b ViewKind) { t[a][b], t[b][a] = true, true }

	var k ViewKind
	for k = KindTransparent; k <= KindExpand; k++ {
		set(KindTransparent, k)
	}
	for _, a := range value {
		for _, b := range value {
			set(a, b)
		}
		for _, b := range index {
			set(a, b)
		}
	}
	t[KindConjugate][KindScale], t[KindScale][KindConjugate] = false, false
	set(KindTranspose, KindTranspose)

	return t
}

// Commutes reports whether views of kinds a and b may be swapped in a chain
// without changing the observed element mapping. Unknown kinds never commute.
// Complexity: O(1).
func Commutes(a, b ViewKind) bool {
	if int(a) >= numKinds || int(b) >= numKinds {
		return false
	}

	return commuteTable[a][b]
}

// cancels reports whether two adjacent steps annihilate each other.
func cancels(a, b Step) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindTranspose, KindNegation, KindConjugate:
		return true
	default:
		return false
	}
}

// Canonicalize rewrites a view chain into its normal form:
//   - Stage 1: demote every step above the first read-only step to read-only.
//   - Stage 2: drop transparent steps.
//   - Stage 3: move value steps innermost across commuting neighbours; the
//     relative order of value steps is kept, and expand steps are barriers.
//   - Stage 4: cancel adjacent transpose, negation and conjugate pairs,
//     repeatedly, so nested pairs vanish too.
//   - Stage 5: demote again, since value steps may now sit below steps that
//     were mutable.
//
// The input slice is not modified. Composing the canonical chain yields the
// same elements as composing the input.
// Complexity: O(n²) in the chain length.
func Canonicalize(steps []Step) []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	demote(out)

	// Stage 2: drop transparent.
	kept := out[:0]
	for _, s := range out {
		if s.Kind != KindTransparent {
			kept = append(kept, s)
		}
	}
	out = kept

	// Stage 3: stable bubble of value steps toward the base.
	var i, j int
	for i = 1; i < len(out); i++ {
		if !out[i].Kind.IsValueTransform() {
			continue
		}
		for j = i; j > 0; j-- {
			left := out[j-1].Kind
			if left.IsValueTransform() || !Commutes(left, out[j].Kind) {
				break
			}
			out[j-1], out[j] = out[j], out[j-1]
		}
	}

	// Stage 4: stack-based pair cancellation.
	stack := make([]Step, 0, len(out))
	for _, s := range out {
		if n := len(stack); n > 0 && cancels(stack[n-1], s) {
			stack = stack[:n-1]
			continue
		}
		stack = append(stack, s)
	}

	demote(stack)

	return stack
}

// demote clears Mutable on every step at or above the first read-only step.
func demote(steps []Step) {
	readOnly := false
	for i := range steps {
		if !steps[i].Mutable || steps[i].Kind.AlwaysReadOnly() {
			readOnly = true
		}
		if readOnly {
			steps[i].Mutable = false
		}
	}
}
