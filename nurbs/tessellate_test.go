package nurbs

import (
	"testing"

	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/geom"
	"github.com/stretchr/testify/require"
)

func TestToLineStringRejectsOutOfRangeSegments(t *testing.T) {
	pts := linearPoints(t, 0, 1, 2)
	g, err := New(0, 1, pts, nil, nil)
	require.NoError(t, err)

	_, err = ToLineString(g, 1)
	require.ErrorIs(t, err, errs.ErrInvalidSegmentCount)

	_, err = ToLineString(g, MaxSegments+1)
	require.ErrorIs(t, err, errs.ErrInvalidSegmentCount)
}

func TestToLineStringProducesSegmentsPlusOnePoints(t *testing.T) {
	pts := linearPoints(t, 0, 10, 20)
	g, err := New(0, 2, pts, nil, nil)
	require.NoError(t, err)

	line, err := ToLineString(g, 8)
	require.NoError(t, err)
	require.Equal(t, geom.LineString, line.Type)
	require.Equal(t, 9, line.Coords.NPoints())
}

func TestToLineStringEndpointsMatchCurveEndpoints(t *testing.T) {
	pts := linearPoints(t, 0, 10, 20, 5)
	g, err := New(0, 2, pts, nil, nil)
	require.NoError(t, err)

	line, err := ToLineString(g, 10)
	require.NoError(t, err)

	engine := endian.GetLittleEndianEngine()
	first := line.Coords.At(0, engine)
	last := line.Coords.At(line.Coords.NPoints()-1, engine)

	require.Equal(t, 0.0, first.X)
	require.Equal(t, 5.0, last.X)
}
