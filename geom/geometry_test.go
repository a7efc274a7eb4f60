package geom

import (
	"testing"

	"github.com/nullform/gscore/flags"
	"github.com/stretchr/testify/require"
)

func TestAdmitsChild(t *testing.T) {
	require.True(t, AdmitsChild(MultiPoint, Point))
	require.False(t, AdmitsChild(MultiPoint, LineString))
	require.True(t, AdmitsChild(MultiPolygon, Triangle))
	require.True(t, AdmitsChild(GeometryCollection, NurbsCurveType))
	require.False(t, AdmitsChild(Point, Point))
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "Point", Point.String())
	require.Equal(t, "NurbsCurve", NurbsCurveType.String())
	require.Equal(t, "Unknown", Type(9999).String())
}

func TestGeometryIsEmpty(t *testing.T) {
	p := &Geometry{Type: Point, Coords: NewCoordArray(0, false, false)}
	require.True(t, p.IsEmpty())

	p2 := &Geometry{Type: Point, Coords: NewCoordArray(1, false, false)}
	require.False(t, p2.IsEmpty())

	coll := &Geometry{Type: MultiPoint}
	require.True(t, coll.IsEmpty())
}

func TestGeometryCloneIsDeep(t *testing.T) {
	inner := &Geometry{Type: Point, Coords: NewCoordArray(1, false, false)}
	outer := &Geometry{Type: MultiPoint, Geometries: []*Geometry{inner}, Flags: flags.Flags{}}

	cloned := outer.Clone()
	require.Len(t, cloned.Geometries, 1)
	require.NotSame(t, outer.Geometries[0], cloned.Geometries[0])
}
