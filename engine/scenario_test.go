// SPDX-License-Identifier: MIT
package engine_test

import (
	"testing"

	"github.com/katalvlaran/lvengine/engine"
	"github.com/stretchr/testify/require"
)

// TestScenario_TransposeNegateGrow runs the end-to-end flow twice: once with a
// tight buffer (reallocation) and once with reserved reach (in place).
func TestScenario_TransposeNegateGrow(t *testing.T) {
	lit := [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}

	tests := []struct {
		name        string
		opts        []engine.Option
		reallocated bool
	}{
		{"reallocating", nil, true},
		{"in place", []engine.Option{engine.WithReach(4, 4)}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			obs := &recordingObserver{}
			s := mustLiteral(t, lit, append(tc.opts, engine.WithObserver(obs))...)

			tr := engine.NewTranspose[float64](s)
			require.Equal(t, 3, tr.Rows())
			require.Equal(t, 3, tr.Cols())
			require.Equal(t, 7.0, tr.At(0, 2))

			neg := engine.NewNegation[float64](tr)
			require.Equal(t, -7.0, neg.At(0, 2))

			require.NoError(t, s.Reshape(4, 4, 4, 4))
			ev := obs.last(t)
			require.Equal(t, tc.reallocated, ev.Reallocated)
			require.Equal(t, 4, ev.RowReach)

			require.Equal(t, 4, tr.Rows())
			require.Equal(t, 7.0, tr.At(0, 2))
			require.Equal(t, -7.0, neg.At(0, 2))
			for k := 0; k < 4; k++ {
				require.Zero(t, s.At(3, k), "row 3, col %d", k)
				require.Zero(t, s.At(k, 3), "row %d, col 3", k)
			}
			require.Equal(t, 9.0, tr.At(2, 2))
		})
	}
}

// TestScenario_ShrinkThenGrowInPlace: values dropped by a shrink never
// reappear when the extent grows back inside the same reach.
func TestScenario_ShrinkThenGrowInPlace(t *testing.T) {
	obs := &recordingObserver{}
	s := mustLiteral(t, seq(3, 3), engine.WithObserver(obs))

	require.NoError(t, s.Reshape(2, 3, 2, 3))
	require.Equal(t, 5, obs.last(t).Filled)
	require.NoError(t, s.Reshape(3, 3, 3, 3))
	require.False(t, obs.last(t).Reallocated)
	require.Equal(t, [][]float64{{1, 2, 0}, {4, 5, 0}, {0, 0, 0}}, toLiteral[float64](s))
}

// TestScenario_ComposedChainCopy materializes a composed chain and copies it
// back into a box of the source.
func TestScenario_ComposedChainCopy(t *testing.T) {
	s := mustLiteral(t, seq(4, 4))

	chain, err := engine.Compose[float64](s,
		engine.BoxStep(0, 0, 2, 2, false),
		engine.TransposeStep(false),
		engine.ScaleStep(10.0),
	)
	require.NoError(t, err)

	m, err := engine.Materialize(chain)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{10, 50}, {20, 60}}, toLiteral[float64](m))

	dst, err := engine.NewBox[float64](s, 2, 2, 2, 2)
	require.NoError(t, err)
	require.NoError(t, engine.Copy[float64](dst, chain))
	require.Equal(t, []float64{9, 10, 10, 50}, toLiteral[float64](s)[2])
	require.Equal(t, []float64{13, 14, 20, 60}, toLiteral[float64](s)[3])
}
