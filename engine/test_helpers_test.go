// SPDX-License-Identifier: MIT
// Package engine_test contains test helpers.
//
// Purpose:
//   - Provide small, deterministic fixtures (sequential literals, recording
//     observers) shared by the engine tests.

package engine_test

import (
	"testing"

	"github.com/katalvlaran/lvengine/engine"
	"github.com/stretchr/testify/require"
)

// seq returns a rows×cols literal holding 1..rows*cols in row order.
func seq(rows, cols int) [][]float64 {
	lit := make([][]float64, rows)
	v := 1.0
	for i := range lit {
		lit[i] = make([]float64, cols)
		for j := range lit[i] {
			lit[i][j] = v
			v++
		}
	}

	return lit
}

// complexFixture returns a 3×3 complex literal whose imaginary parts are all
// non-zero, so conjugation changes every element.
func complexFixture() [][]complex128 {
	lit := make([][]complex128, 3)
	for i := range lit {
		lit[i] = make([]complex128, 3)
		for j := range lit[i] {
			lit[i][j] = complex(float64(3*i+j+1), float64(2*i-j)+0.5)
		}
	}

	return lit
}

// mustLiteral builds a storage engine from lit or fails the test.
func mustLiteral[T engine.Element](tb testing.TB, lit [][]T, opts ...engine.Option) *engine.Storage[T] {
	tb.Helper()
	s, err := engine.NewFromLiteral(lit, opts...)
	require.NoError(tb, err)

	return s
}

// toLiteral reads e back into a literal (row order).
func toLiteral[T engine.Element](e engine.Readable[T]) [][]T {
	out := make([][]T, e.Rows())
	for i := range out {
		out[i] = make([]T, e.Cols())
		for j := range out[i] {
			out[i][j] = e.At(i, j)
		}
	}

	return out
}

// recordingObserver keeps every reshape event in order.
type recordingObserver struct {
	events []engine.ReshapeEvent
}

func (r *recordingObserver) OnReshape(ev engine.ReshapeEvent) { r.events = append(r.events, ev) }

func (r *recordingObserver) last(tb testing.TB) engine.ReshapeEvent {
	tb.Helper()
	require.NotEmpty(tb, r.events)

	return r.events[len(r.events)-1]
}
