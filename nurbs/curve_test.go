package nurbs

import (
	"testing"

	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/geom"
	"github.com/stretchr/testify/require"
)

func linearPoints(t *testing.T, xs ...float64) geom.CoordArray {
	t.Helper()
	engine := endian.GetLittleEndianEngine()
	c := geom.NewCoordArray(len(xs), false, false)
	for i, x := range xs {
		c.Set(i, geom.Point4D{X: x, Y: 0}, engine)
	}
	return c
}

func TestNewRejectsBadDegree(t *testing.T) {
	pts := linearPoints(t, 0, 1, 2)
	_, err := New(0, 0, pts, nil, nil)
	require.ErrorIs(t, err, errs.ErrInvalidDegree)

	_, err = New(0, 11, pts, nil, nil)
	require.ErrorIs(t, err, errs.ErrInvalidDegree)
}

func TestNewRejectsWeightsLengthMismatch(t *testing.T) {
	pts := linearPoints(t, 0, 1, 2)
	_, err := New(0, 1, pts, []float64{1, 2}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidWeights)
}

func TestNewRejectsNonPositiveWeight(t *testing.T) {
	pts := linearPoints(t, 0, 1, 2)
	_, err := New(0, 1, pts, []float64{1, 0, 1}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidWeights)
}

func TestNewRejectsKnotsWrongLength(t *testing.T) {
	pts := linearPoints(t, 0, 1, 2)
	_, err := New(0, 1, pts, nil, []float64{0, 0, 1})
	require.ErrorIs(t, err, errs.ErrInvalidKnots)
}

func TestNewRejectsNonMonotoneKnots(t *testing.T) {
	pts := linearPoints(t, 0, 1, 2)
	_, err := New(0, 2, pts, nil, []float64{0, 0, 0.6, 0.3, 1, 1})
	require.ErrorIs(t, err, errs.ErrInvalidKnots)
}

func TestUniformClampedTooFewPoints(t *testing.T) {
	_, err := UniformClamped(2, 3)
	require.ErrorIs(t, err, errs.ErrTooFewControlPoints)
}

func TestUniformClampedClampsEnds(t *testing.T) {
	knots, err := UniformClamped(4, 2)
	require.NoError(t, err)
	require.Len(t, knots, 4+2+1)
	for i := 0; i <= 2; i++ {
		require.Equal(t, 0.0, knots[i])
		require.Equal(t, 1.0, knots[len(knots)-1-i])
	}
}

func TestBasisPartitionOfUnity(t *testing.T) {
	knots, err := UniformClamped(5, 2)
	require.NoError(t, err)

	for _, u := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		sum := 0.0
		for i := 0; i < 5; i++ {
			sum += Basis(knots, i, 2, u)
		}
		require.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestIsValid(t *testing.T) {
	pts := linearPoints(t, 0, 1, 2)
	g, err := New(0, 1, pts, nil, nil)
	require.NoError(t, err)
	require.True(t, IsValid(g))

	require.False(t, IsValid(nil))
	require.False(t, IsValid(&geom.Geometry{Type: geom.Point}))
}
