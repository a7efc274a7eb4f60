package gs2

import (
	"bytes"
	"testing"

	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/flags"
	"github.com/nullform/gscore/geom"
	"github.com/nullform/gscore/nurbs"
	"github.com/stretchr/testify/require"
)

func pointGeom(x, y float64) *geom.Geometry {
	engine := endian.GetLittleEndianEngine()
	coords := geom.NewCoordArray(1, false, false)
	coords.Set(0, geom.Point4D{X: x, Y: y}, engine)

	return &geom.Geometry{Type: geom.Point, SRID: 4326, Coords: coords}
}

func lineStringGeom(pts ...[2]float64) *geom.Geometry {
	engine := endian.GetLittleEndianEngine()
	coords := geom.NewCoordArray(len(pts), false, false)
	for i, p := range pts {
		coords.Set(i, geom.Point4D{X: p[0], Y: p[1]}, engine)
	}

	return &geom.Geometry{Type: geom.LineString, SRID: 4326, Coords: coords}
}

func TestEncodeDecodePointRoundTrip(t *testing.T) {
	g := pointGeom(121.5, 25.0)

	data, err := Encode(g)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, geom.Point, got.Type)
	require.Equal(t, int32(4326), got.SRID)

	p := got.Coords.At(0, endian.GetLittleEndianEngine())
	require.InDelta(t, 121.5, p.X, 1e-9)
	require.InDelta(t, 25.0, p.Y, 1e-9)
}

func TestEncodeDecodeEmptyPoint(t *testing.T) {
	g := &geom.Geometry{Type: geom.Point, SRID: flags.UnknownSRID, Coords: geom.NewCoordArray(0, false, false)}

	data, err := Encode(g)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}

func TestEncodeDecodeLineStringRoundTrip(t *testing.T) {
	g := lineStringGeom([2]float64{0, 0}, [2]float64{1, 1}, [2]float64{2, 4})

	data, err := Encode(g)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, 3, got.Coords.NPoints())

	engine := endian.GetLittleEndianEngine()
	for i := 0; i < 3; i++ {
		require.Equal(t, g.Coords.At(i, engine), got.Coords.At(i, engine))
	}
}

func TestEncodeDecodeWithBBox(t *testing.T) {
	g := lineStringGeom([2]float64{0, 0}, [2]float64{10, -5})
	g.Flags.HasBBox = true

	data, err := Encode(g)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.NotNil(t, got.BBox)
	require.LessOrEqual(t, float64(got.BBox.Min[0]), 0.0)
	require.GreaterOrEqual(t, float64(got.BBox.Max[0]), 10.0)
}

func TestEncodeDecodePolygonRoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	outer := geom.NewCoordArray(4, false, false)
	for i, p := range [][2]float64{{0, 0}, {4, 0}, {4, 4}, {0, 0}} {
		outer.Set(i, geom.Point4D{X: p[0], Y: p[1]}, engine)
	}
	hole := geom.NewCoordArray(3, false, false)
	for i, p := range [][2]float64{{1, 1}, {2, 1}, {1, 1}} {
		hole.Set(i, geom.Point4D{X: p[0], Y: p[1]}, engine)
	}

	g := &geom.Geometry{Type: geom.Polygon, SRID: 4326, Rings: []geom.CoordArray{outer, hole}}

	data, err := Encode(g)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, got.Rings, 2)
	require.Equal(t, 4, got.Rings[0].NPoints())
	require.Equal(t, 3, got.Rings[1].NPoints())
}

func TestEncodeDecodeOddRingCountPolygon(t *testing.T) {
	// Odd ring count forces the 4-byte alignment pad (§4.D).
	engine := endian.GetLittleEndianEngine()
	ring := geom.NewCoordArray(3, false, false)
	for i, p := range [][2]float64{{0, 0}, {1, 0}, {0, 0}} {
		ring.Set(i, geom.Point4D{X: p[0], Y: p[1]}, engine)
	}

	g := &geom.Geometry{Type: geom.Polygon, SRID: 4326, Rings: []geom.CoordArray{ring}}

	data, err := Encode(g)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, got.Rings, 1)
}

func TestEncodeDecodeMultiPointCollection(t *testing.T) {
	mp := &geom.Geometry{
		Type: geom.MultiPoint,
		SRID: 4326,
		Geometries: []*geom.Geometry{
			pointGeom(1, 1),
			pointGeom(2, 2),
		},
	}

	data, err := Encode(mp)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, got.Geometries, 2)
	require.Equal(t, geom.Point, got.Geometries[0].Type)
}

func TestEncodeRejectsDisallowedChildType(t *testing.T) {
	mp := &geom.Geometry{
		Type: geom.MultiPoint,
		SRID: 4326,
		Geometries: []*geom.Geometry{
			lineStringGeom([2]float64{0, 0}, [2]float64{1, 1}),
		},
	}

	_, err := Encode(mp)
	require.ErrorIs(t, err, errs.ErrDisallowedChildType)
}

func TestEncodeNilGeometry(t *testing.T) {
	_, err := Encode(nil)
	require.ErrorIs(t, err, errs.ErrNilGeometry)
}

func TestDecodeTruncatedBuffer(t *testing.T) {
	_, err := Decode([]byte{0, 1, 2})
	require.ErrorIs(t, err, errs.ErrTruncatedBuffer)
}

func TestEncodeDecodeBigEndianEngine(t *testing.T) {
	g := pointGeom(3.5, -7.25)
	be := endian.GetBigEndianEngine()

	data, err := EncodeWithEngine(g, be)
	require.NoError(t, err)

	got, err := DecodeWithEngine(data, be)
	require.NoError(t, err)

	p := got.Coords.At(0, endian.GetLittleEndianEngine())
	require.InDelta(t, 3.5, p.X, 1e-9)
	require.InDelta(t, -7.25, p.Y, 1e-9)
}

func TestSizeMatchesEncodedLength(t *testing.T) {
	g := lineStringGeom([2]float64{0, 0}, [2]float64{1, 1})

	size, err := Size(g)
	require.NoError(t, err)

	data, err := Encode(g)
	require.NoError(t, err)
	require.Equal(t, size, len(data))
}

func TestEncodeToStreamsSameBytesAsEncode(t *testing.T) {
	g := lineStringGeom([2]float64{0, 0}, [2]float64{5, 5}, [2]float64{9, 1})

	want, err := Encode(g)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := EncodeTo(&buf, g)
	require.NoError(t, err)
	require.Equal(t, len(want), n)
	require.Equal(t, want, buf.Bytes())
}

func TestPeekBBoxPointFastPath(t *testing.T) {
	g := pointGeom(10, 20)

	data, err := Encode(g)
	require.NoError(t, err)

	box, err := PeekBBox(data)
	require.NoError(t, err)
	require.LessOrEqual(t, float64(box.Min[0]), 10.0)
	require.GreaterOrEqual(t, float64(box.Max[0]), 10.0)
}

func TestPeekBBoxTwoPointLineStringFastPath(t *testing.T) {
	g := lineStringGeom([2]float64{0, 0}, [2]float64{3, 4})

	data, err := Encode(g)
	require.NoError(t, err)

	box, err := PeekBBox(data)
	require.NoError(t, err)
	require.LessOrEqual(t, float64(box.Min[0]), 0.0)
	require.GreaterOrEqual(t, float64(box.Max[0]), 3.0)
}

func TestPeekBBoxDeclinesOnLongerLineString(t *testing.T) {
	g := lineStringGeom([2]float64{0, 0}, [2]float64{1, 1}, [2]float64{2, 2})

	data, err := Encode(g)
	require.NoError(t, err)

	_, err = PeekBBox(data)
	require.ErrorIs(t, err, errs.ErrCannotPeek)
}

func TestPeekBBoxDeclinesWhenBBoxStored(t *testing.T) {
	g := pointGeom(1, 1)
	g.Flags.HasBBox = true

	data, err := Encode(g)
	require.NoError(t, err)

	_, err = PeekBBox(data)
	require.ErrorIs(t, err, errs.ErrCannotPeek)
}

func TestPeekBBoxAgreesWithComputeBBox(t *testing.T) {
	g := lineStringGeom([2]float64{-1, 2}, [2]float64{5, -3})

	data, err := Encode(g)
	require.NoError(t, err)

	peeked, err := PeekBBox(data)
	require.NoError(t, err)

	computed := ComputeBBox(g)
	require.Equal(t, computed.Min, peeked.Min)
	require.Equal(t, computed.Max, peeked.Max)
}

func TestEncodeWithHashRoundTripVerifies(t *testing.T) {
	g := lineStringGeom([2]float64{0, 0}, [2]float64{1, 1})

	data, hash, err := EncodeWithHash(g)
	require.NoError(t, err)

	got, err := DecodeVerifyHash(data, hash)
	require.NoError(t, err)
	require.Equal(t, 2, got.Coords.NPoints())
}

func TestDecodeVerifyHashRejectsTamperedPayload(t *testing.T) {
	g := lineStringGeom([2]float64{0, 0}, [2]float64{1, 1})

	data, hash, err := EncodeWithHash(g)
	require.NoError(t, err)

	tampered := append([]byte(nil), data...)
	tampered[len(tampered)-1] ^= 0xFF

	_, err = DecodeVerifyHash(tampered, hash)
	require.ErrorIs(t, err, errs.ErrHashMismatch)
}

func TestEncodeDecodeNurbsCurveRoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	points := geom.NewCoordArray(4, false, false)
	for i, p := range [][2]float64{{0, 0}, {1, 3}, {3, 3}, {4, 0}} {
		points.Set(i, geom.Point4D{X: p[0], Y: p[1]}, engine)
	}

	g, err := nurbs.New(4326, 3, points, []float64{1, 2, 2, 1}, nil)
	require.NoError(t, err)

	data, err := Encode(g)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, geom.NurbsCurveType, got.Type)
	require.Equal(t, 3, got.Nurbs.Degree)
	require.Equal(t, 4, got.Nurbs.Points.NPoints())
	require.Equal(t, []float64{1, 2, 2, 1}, got.Nurbs.Weights)
	require.Nil(t, got.Nurbs.Knots)
}

func TestDecodeRejectsNestingBeyondMaxDepth(t *testing.T) {
	var g *geom.Geometry = pointGeom(0, 0)
	wrap := func(child *geom.Geometry) *geom.Geometry {
		return &geom.Geometry{Type: geom.GeometryCollection, SRID: 4326, Geometries: []*geom.Geometry{child}}
	}
	for i := 0; i <= MaxDepth+1; i++ {
		g = wrap(g)
	}

	data, err := Encode(g)
	require.NoError(t, err)

	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrMaxDepthExceeded)
}
