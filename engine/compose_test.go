package engine_test

import (
	"testing"

	"github.com/katalvlaran/lvengine/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComposeLegal builds writable and read-only chains.
func TestComposeLegal(t *testing.T) {
	s := mustLiteral(t, seq(3, 3))

	chain, err := engine.Compose[float64](s, engine.TransposeStep(true), engine.RowStep(0, true))
	require.NoError(t, err)
	require.True(t, engine.IsWritable[float64](chain))
	require.Equal(t, [][]float64{{1, 4, 7}}, toLiteral(chain))

	chain.(engine.Writable[float64]).Set(0, 1, 40)
	require.Equal(t, 40.0, s.At(1, 0))

	ro, err := engine.Compose[float64](s,
		engine.BoxStep(1, 1, 2, 2, false),
		engine.ScaleStep(2.0),
		engine.NegationStep(),
	)
	require.NoError(t, err)
	require.False(t, engine.IsWritable[float64](ro))
	require.Equal(t, [][]float64{{-10, -12}, {-16, -18}}, toLiteral(ro))
	require.Same(t, s, engine.OwningEngine(ro))

	ex, err := engine.Compose[float64](s, engine.ExpandStep[float64](engine.Transposer[float64]{}))
	require.NoError(t, err)
	require.Equal(t, engine.KindExpand, ex.(engine.View[float64]).Kind())

	same, err := engine.Compose[float64](s)
	require.NoError(t, err)
	require.Same(t, s, same)
}

// TestComposeIllegal rejects mutable steps over read-only parents.
func TestComposeIllegal(t *testing.T) {
	s := mustLiteral(t, seq(3, 3))

	tests := []struct {
		name  string
		steps []engine.Step
		want  error
	}{
		{"mutable over value view", []engine.Step{engine.NegationStep(), engine.TransposeStep(true)}, engine.ErrIncompatibleView},
		{"mutable over const transpose", []engine.Step{engine.TransposeStep(false), engine.RowStep(0, true)}, engine.ErrIncompatibleView},
		{"mutable over expand", []engine.Step{engine.ExpandStep[float64](engine.Periodic[float64]{NumRows: 4, NumCols: 4}), engine.BoxStep(0, 0, 1, 1, true)}, engine.ErrIncompatibleView},
		{"mutable value step", []engine.Step{{Kind: engine.KindNegation, Mutable: true}}, engine.ErrIncompatibleView},
		{"scale factor of wrong type", []engine.Step{engine.ScaleStep(2)}, engine.ErrIncompatibleView},
		{"rule of wrong type", []engine.Step{engine.ExpandStep[int](engine.Transposer[int]{})}, engine.ErrIncompatibleView},
		{"unknown kind", []engine.Step{{Kind: engine.KindNone}}, engine.ErrIncompatibleView},
		{"row out of range", []engine.Step{engine.RowStep(5, false)}, engine.ErrOutOfRange},
		{"invalid rule", []engine.Step{engine.ExpandStep[float64](engine.Periodic[float64]{})}, engine.ErrInvalidRule},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Compose[float64](s, tc.steps...)
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err := engine.Compose[float64](nil, engine.TransposeStep(false))
	require.ErrorIs(t, err, engine.ErrNilEngine)
	_, err = engine.Compose[float64](engine.Transpose[float64]{}, engine.TransposeStep(false))
	require.ErrorIs(t, err, engine.ErrUnboundView)
}

// TestCommutesTable checks the documented facts and symmetry.
func TestCommutesTable(t *testing.T) {
	tests := []struct {
		a, b engine.ViewKind
		want bool
	}{
		{engine.KindTransparent, engine.KindExpand, true},
		{engine.KindTranspose, engine.KindNegation, true},
		{engine.KindTranspose, engine.KindConjugate, true},
		{engine.KindRow, engine.KindNegation, true},
		{engine.KindBox, engine.KindScale, true},
		{engine.KindNegation, engine.KindConjugate, true},
		{engine.KindTranspose, engine.KindTranspose, true},
		{engine.KindConjugate, engine.KindScale, false},
		{engine.KindBox, engine.KindTranspose, false},
		{engine.KindRow, engine.KindTranspose, false},
		{engine.KindRow, engine.KindCol, false},
		{engine.KindNegation, engine.KindExpand, false},
		{engine.KindExpand, engine.KindExpand, false},
		{engine.KindNone, engine.KindTransparent, false},
		{engine.ViewKind(200), engine.KindTransparent, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, engine.Commutes(tc.a, tc.b), "%s/%s", tc.a, tc.b)
	}

	for a := engine.KindNone; a <= engine.KindExpand; a++ {
		for b := engine.KindNone; b <= engine.KindExpand; b++ {
			assert.Equal(t, engine.Commutes(a, b), engine.Commutes(b, a), "%s/%s", a, b)
		}
	}
}

// TestCommutesAgreesWithElements: every pair the table declares commuting
// yields identical elements in both orders.
func TestCommutesAgreesWithElements(t *testing.T) {
	base := mustLiteral(t, complexFixture())
	steps := []engine.Step{
		engine.TransparentStep(false),
		engine.TransposeStep(false),
		engine.NegationStep(),
		engine.ConjugateStep(),
		engine.ScaleStep(complex128(2 + 1i)),
		engine.RowStep(1, false),
		engine.ColStep(1, false),
		engine.BoxStep(0, 1, 2, 2, false),
		engine.ExpandStep[complex128](engine.Periodic[complex128]{NumRows: 5, NumCols: 4}),
	}
	for _, a := range steps {
		for _, b := range steps {
			if !engine.Commutes(a.Kind, b.Kind) {
				continue
			}
			ok, err := engine.CheckCommute[complex128](base, a, b)
			require.NoError(t, err, "%s/%s", a, b)
			require.True(t, ok, "%s/%s", a, b)
		}
	}
}

// TestCheckCommuteCounterexamples: non-commuting kinds differ on real data.
func TestCheckCommuteCounterexamples(t *testing.T) {
	base := mustLiteral(t, complexFixture())
	band := engine.ExpandStep[complex128](engine.Band[complex128]{NumRows: 4, NumCols: 4, Width: 1, Pad: 9})

	tests := []struct {
		name string
		a, b engine.Step
	}{
		{"transpose/row", engine.TransposeStep(false), engine.RowStep(1, false)},
		{"transpose/box", engine.TransposeStep(false), engine.BoxStep(0, 1, 2, 2, false)},
		{"conjugate/complex scale", engine.ConjugateStep(), engine.ScaleStep(complex128(2 + 1i))},
		{"negation/band pad", engine.NegationStep(), band},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := engine.CheckCommute[complex128](base, tc.a, tc.b)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

// TestCanonicalize covers dropping, reordering, cancellation and demotion.
func TestCanonicalize(t *testing.T) {
	s := mustLiteral(t, seq(3, 3))

	kinds := func(steps []engine.Step) []engine.ViewKind {
		out := make([]engine.ViewKind, len(steps))
		for i, st := range steps {
			out[i] = st.Kind
		}

		return out
	}

	tests := []struct {
		name  string
		in    []engine.Step
		kinds []engine.ViewKind
	}{
		{
			"transpose pair cancels around a value step",
			[]engine.Step{engine.TransparentStep(true), engine.TransposeStep(true), engine.NegationStep(), engine.TransposeStep(false)},
			[]engine.ViewKind{engine.KindNegation},
		},
		{
			"value step moves innermost",
			[]engine.Step{engine.RowStep(0, true), engine.ConjugateStep(), engine.TransposeStep(false)},
			[]engine.ViewKind{engine.KindConjugate, engine.KindRow, engine.KindTranspose},
		},
		{
			"negation pair cancels",
			[]engine.Step{engine.NegationStep(), engine.TransposeStep(false), engine.NegationStep()},
			[]engine.ViewKind{engine.KindTranspose},
		},
		{
			"expand is a barrier",
			[]engine.Step{engine.ExpandStep[float64](engine.Periodic[float64]{NumRows: 4, NumCols: 4}), engine.NegationStep()},
			[]engine.ViewKind{engine.KindExpand, engine.KindNegation},
		},
		{
			"value steps keep their order",
			[]engine.Step{engine.BoxStep(0, 0, 2, 2, true), engine.ScaleStep(3.0), engine.NegationStep()},
			[]engine.ViewKind{engine.KindScale, engine.KindNegation, engine.KindBox},
		},
		{"empty", nil, []engine.ViewKind{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := append([]engine.Step(nil), tc.in...)
			out := engine.Canonicalize(tc.in)
			require.Equal(t, tc.kinds, kinds(out))
			require.Equal(t, in, tc.in, "input must not be modified")

			want, err := engine.Compose[float64](s, tc.in...)
			require.NoError(t, err)
			got, err := engine.Compose[float64](s, out...)
			require.NoError(t, err)
			require.True(t, engine.Equal(want, got))
		})
	}
}

// TestCanonicalizeDemotes: everything above a read-only step is read-only,
// which also repairs an illegal input chain.
func TestCanonicalizeDemotes(t *testing.T) {
	in := []engine.Step{engine.TransposeStep(true), engine.BoxStep(0, 0, 1, 1, false), engine.RowStep(0, true)}
	out := engine.Canonicalize(in)
	require.Len(t, out, 3)
	require.True(t, out[0].Mutable)
	require.False(t, out[1].Mutable)
	require.False(t, out[2].Mutable)

	s := mustLiteral(t, seq(2, 2))
	_, err := engine.Compose[float64](s, in...)
	require.ErrorIs(t, err, engine.ErrIncompatibleView)
	_, err = engine.Compose[float64](s, out...)
	require.NoError(t, err)
}

// TestStepString renders steps for diagnostics.
func TestStepString(t *testing.T) {
	assert.Equal(t, "transpose(rw)", engine.TransposeStep(true).String())
	assert.Equal(t, "box[1,2,3,4](ro)", engine.BoxStep(1, 2, 3, 4, false).String())
	assert.Equal(t, "row[2](rw)", engine.RowStep(2, true).String())
	assert.Equal(t, "scale[2](ro)", engine.ScaleStep(2.0).String())
}
