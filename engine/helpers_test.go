package engine_test

import (
	"testing"

	"github.com/katalvlaran/lvengine/engine"
	"github.com/stretchr/testify/require"
)

// TestCopyIntoViews writes through mutable views and reshapes storage.
func TestCopyIntoViews(t *testing.T) {
	src := mustLiteral(t, [][]float64{{1, 2}, {3, 4}})

	dst, err := engine.NewSized[float64](2, 2)
	require.NoError(t, err)
	require.NoError(t, engine.Copy[float64](engine.NewTranspose[float64](dst), src))
	require.Equal(t, [][]float64{{1, 3}, {2, 4}}, toLiteral[float64](dst))

	grow := engine.New[float64]()
	require.NoError(t, engine.Copy[float64](grow, src))
	require.True(t, engine.Equal[float64](grow, src))

	big := mustLiteral(t, seq(3, 3))
	box, err := engine.NewBox[float64](big, 1, 1, 2, 2)
	require.NoError(t, err)
	require.NoError(t, engine.Copy[float64](box, src))
	require.Equal(t, [][]float64{{1, 2, 3}, {4, 1, 2}, {7, 3, 4}}, toLiteral[float64](big))

	row, err := engine.NewRow[float64](big, 0)
	require.NoError(t, err)
	err = engine.Copy[float64](row, src)
	require.ErrorIs(t, err, engine.ErrShapeMismatch)
	require.Equal(t, []float64{1, 2, 3}, toLiteral[float64](big)[0])
}

// TestCopyOverlapping: src and dst sharing an owner are handled.
func TestCopyOverlapping(t *testing.T) {
	s := mustLiteral(t, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, engine.Copy[float64](engine.NewTranspose[float64](s), s))
	require.Equal(t, [][]float64{{1, 3}, {2, 4}}, toLiteral[float64](s))
}

// TestCopyErrors covers nil and unbound engines.
func TestCopyErrors(t *testing.T) {
	s := mustLiteral(t, seq(2, 2))
	require.ErrorIs(t, engine.Copy[float64](nil, s), engine.ErrNilEngine)
	require.ErrorIs(t, engine.Copy[float64](s, nil), engine.ErrNilEngine)
	require.ErrorIs(t, engine.Copy[float64](engine.Transpose[float64]{}, s), engine.ErrUnboundView)
	require.ErrorIs(t, engine.Copy[float64](s, engine.ConstRow[float64]{}), engine.ErrUnboundView)
}

// TestEqualVariants covers 2-D, 1-D and literal comparison.
func TestEqualVariants(t *testing.T) {
	s := mustLiteral(t, [][]int{{1, 2, 3}})
	col := mustLiteral(t, [][]int{{1}, {2}, {3}})

	require.False(t, engine.Equal[int](s, col))
	require.True(t, engine.EqualFlat[int](s, col))
	require.True(t, engine.Equal[int](engine.NewConstTranspose[int](col), s))
	require.True(t, engine.EqualLiteral[int](s, [][]int{{1, 2, 3}}))
	require.False(t, engine.EqualLiteral[int](s, [][]int{{1, 2, 4}}))
	require.False(t, engine.EqualLiteral[int](s, [][]int{{1, 2}, {3}}))
	require.False(t, engine.Equal[int](s, nil))
	require.False(t, engine.EqualFlat[int](s, mustLiteral(t, [][]int{{1, 2}})))
}

// TestFillRowsCols fills row and column ranges.
func TestFillRowsCols(t *testing.T) {
	s, err := engine.NewSized[int](3, 3)
	require.NoError(t, err)

	require.NoError(t, engine.FillRows[int](s, 0, 1, 7))
	require.NoError(t, engine.FillCols[int](s, 2, 3, 9))
	require.Equal(t, [][]int{{7, 7, 9}, {0, 0, 9}, {0, 0, 9}}, toLiteral[int](s))

	require.ErrorIs(t, engine.FillRows[int](s, 2, 4, 1), engine.ErrOutOfRange)
	require.ErrorIs(t, engine.FillCols[int](s, -1, 1, 1), engine.ErrOutOfRange)
	require.ErrorIs(t, engine.FillRows[int](nil, 0, 1, 1), engine.ErrNilEngine)
}

// TestEachAndFormat iterates and renders any engine.
func TestEachAndFormat(t *testing.T) {
	s := mustLiteral(t, [][]int{{1, 2}, {3, 4}})
	tr := engine.NewConstTranspose[int](s)

	var got []int
	engine.Each[int](tr, func(i, j int, v int) bool {
		got = append(got, v)

		return len(got) < 3
	})
	require.Equal(t, []int{1, 3, 2}, got)

	require.Equal(t, "[1, 3]\n[2, 4]\n", engine.Format[int](tr))
	require.Equal(t, "", engine.Format[int](engine.Negation[int]{}))
}

// TestCheckedAccess returns errors instead of panicking.
func TestCheckedAccess(t *testing.T) {
	s := mustLiteral(t, seq(2, 2))

	v, err := engine.CheckedAt[float64](s, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 4.0, v)

	_, err = engine.CheckedAt[float64](s, 2, 0)
	require.ErrorIs(t, err, engine.ErrOutOfRange)
	_, err = engine.CheckedAt[float64](engine.Negation[float64]{}, 0, 0)
	require.ErrorIs(t, err, engine.ErrUnboundView)

	require.NoError(t, engine.CheckedSet[float64](s, 0, 1, 20))
	require.Equal(t, 20.0, s.At(0, 1))
	require.ErrorIs(t, engine.CheckedSet[float64](s, 0, -1, 1), engine.ErrOutOfRange)
	require.ErrorIs(t, engine.CheckedSet[float64](nil, 0, 0, 1), engine.ErrNilEngine)
}

// TestValidateLiteral reports shape or the first problem found.
func TestValidateLiteral(t *testing.T) {
	r, c, err := engine.ValidateLiteral([][]string{{"a", "b"}, {"c", "d"}})
	require.NoError(t, err)
	require.Equal(t, [2]int{2, 2}, [2]int{r, c})

	_, _, err = engine.ValidateLiteral([][]int{{1}, {}})
	require.ErrorIs(t, err, engine.ErrShapeMismatch)
	_, _, err = engine.ValidateLiteral[int](nil)
	require.ErrorIs(t, err, engine.ErrInvalidLength)

	require.ErrorIs(t, engine.ExportedValidateDims(1, -1, 1, 1), engine.ErrInvalidReach)
	s := mustLiteral(t, seq(2, 2))
	require.ErrorIs(t, engine.ExportedValidateWindow(s, 1, 1, 2, 1), engine.ErrOutOfRange)
	require.True(t, engine.ExportedIsNil((*engine.Storage[int])(nil)))
}

// TestFacades covers the thin constructors in api.go.
func TestFacades(t *testing.T) {
	id, err := engine.NewIdentity[complex64](3)
	require.NoError(t, err)
	require.Equal(t, complex64(1), id.At(2, 2))
	require.Zero(t, id.At(0, 2))

	z, err := engine.ZerosLike[int](engine.NewConstTranspose[complex64](id))
	require.NoError(t, err)
	require.Equal(t, 9, z.Size())

	_, err = engine.ZerosLike[int](engine.Transpose[int]{})
	require.ErrorIs(t, err, engine.ErrInvalidLength)

	s := mustLiteral(t, seq(2, 3))
	m, err := engine.Materialize[float64](engine.NewNegation[float64](s))
	require.NoError(t, err)
	require.True(t, engine.IsOwning[float64](m))
	require.Equal(t, -6.0, m.At(1, 2))

	_, err = engine.Materialize[float64](engine.Box[float64]{})
	require.ErrorIs(t, err, engine.ErrUnboundView)

	zs, err := engine.NewZeros[float64](2, 2)
	require.NoError(t, err)
	require.Equal(t, 4, zs.Size())
}
