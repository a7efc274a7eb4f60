package nurbs

import (
	"testing"

	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/geom"
	"github.com/stretchr/testify/require"
)

func TestEvalEmptyCurveIsEmptyPoint(t *testing.T) {
	g := &geom.Geometry{
		Type: geom.NurbsCurveType,
		Nurbs: &geom.NurbsCurve{
			Degree: 1,
			Points: geom.NewCoordArray(0, false, false),
		},
	}

	pt, err := Eval(g, 0.5)
	require.NoError(t, err)
	require.True(t, pt.IsEmpty())
}

func TestEvalEndpointsMatchControlPoints(t *testing.T) {
	pts := linearPoints(t, 0, 10, 20, 30)
	g, err := New(0, 2, pts, nil, nil)
	require.NoError(t, err)

	engine := endian.GetLittleEndianEngine()

	start, err := Eval(g, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, start.Coords.At(0, engine).X)

	end, err := Eval(g, 1)
	require.NoError(t, err)
	require.Equal(t, 30.0, end.Coords.At(0, engine).X)
}

func TestEvalMidpointOfLinearDegreeOneCurve(t *testing.T) {
	// A degree-1 curve through two points is a straight line; at u=0.5 the
	// evaluated point must be the arithmetic midpoint (S4).
	pts := linearPoints(t, 0, 10)
	g, err := New(0, 1, pts, nil, nil)
	require.NoError(t, err)

	mid, err := Eval(g, 0.5)
	require.NoError(t, err)

	engine := endian.GetLittleEndianEngine()
	require.InDelta(t, 5.0, mid.Coords.At(0, engine).X, 1e-9)
}

func TestEvalWeightedMidpointPullsTowardHeavierPoint(t *testing.T) {
	// S5: a rational curve with an unevenly weighted midpoint should skew
	// the evaluated point away from the unweighted arithmetic midpoint.
	pts := linearPoints(t, 0, 10, 100)
	unweighted, err := New(0, 2, pts, nil, nil)
	require.NoError(t, err)

	weighted, err := New(0, 2, pts, []float64{1, 1, 5}, nil)
	require.NoError(t, err)

	engine := endian.GetLittleEndianEngine()

	a, err := Eval(unweighted, 0.5)
	require.NoError(t, err)
	b, err := Eval(weighted, 0.5)
	require.NoError(t, err)

	require.Greater(t, b.Coords.At(0, engine).X, a.Coords.At(0, engine).X)
}

func TestEvalIsDeterministic(t *testing.T) {
	pts := linearPoints(t, 0, 10, 20, 30, 15)
	g, err := New(0, 3, pts, nil, nil)
	require.NoError(t, err)

	engine := endian.GetLittleEndianEngine()

	a, err := Eval(g, 0.37)
	require.NoError(t, err)
	b, err := Eval(g, 0.37)
	require.NoError(t, err)

	require.Equal(t, a.Coords.At(0, engine).X, b.Coords.At(0, engine).X)
}

func TestEvalClampsOutOfRangeParameter(t *testing.T) {
	pts := linearPoints(t, 0, 10, 20)
	g, err := New(0, 2, pts, nil, nil)
	require.NoError(t, err)

	engine := endian.GetLittleEndianEngine()

	below, err := Eval(g, -5)
	require.NoError(t, err)
	require.Equal(t, 0.0, below.Coords.At(0, engine).X)

	above, err := Eval(g, 5)
	require.NoError(t, err)
	require.Equal(t, 20.0, above.Coords.At(0, engine).X)
}
