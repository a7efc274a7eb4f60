package gs2

import (
	"fmt"
	"math"

	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/flags"
	"github.com/nullform/gscore/geom"
)

// Encode serializes g into a freshly allocated GS2 record (§4.D). It sizes
// the buffer first via Size, writes into it exactly once, and fails loudly
// if the number of bytes actually written does not match the prediction —
// a sizer/writer mismatch is a fatal internal error, never a partial write.
func Encode(g *geom.Geometry) ([]byte, error) {
	return EncodeWithEngine(g, endian.GetLittleEndianEngine())
}

// EncodeWithEngine is Encode with an explicit byte order, used by callers
// that need big-endian GS2 records for interoperability testing.
func EncodeWithEngine(g *geom.Geometry, engine endian.EndianEngine) ([]byte, error) {
	if g == nil {
		return nil, errs.ErrNilGeometry
	}

	size, err := Size(g)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	n, err := encodeInto(buf, g, engine)
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, fmt.Errorf("%w: predicted %d, wrote %d", errs.ErrSizeMismatch, size, n)
	}

	return buf, nil
}

func encodeInto(buf []byte, g *geom.Geometry, engine endian.EndianEngine) (int, error) {
	offset := 0

	// varsize is the full record length, header included; buf was sized by
	// Size, so len(buf) is that length.
	engine.PutUint32(buf[offset:offset+4], uint32(len(buf)))
	offset += 4

	srid := g.SRID
	if srid == flags.UnknownSRID {
		g.Flags.HasSRID = false
	} else {
		g.Flags.HasSRID = true
	}
	sridBytes := flags.PackSRID(srid)
	copy(buf[offset:offset+3], sridBytes[:])
	offset += 3

	buf[offset] = flags.Encode(g.Flags)
	offset++

	if g.Flags.Extended {
		engine.PutUint64(buf[offset:offset+8], flags.EncodeExt(g.Flags))
		offset += 8
	}

	if g.Flags.HasBBox {
		box := g.BBox
		if box == nil {
			box = ComputeBBox(g)
		}
		writeBBox(buf[offset:], *box, engine)
		offset += 2 * box.Dims * 4
	}

	n, err := writePayload(buf[offset:], g, engine)
	if err != nil {
		return 0, err
	}

	return offset + n, nil
}

func writeBBox(buf []byte, box geom.Box, engine endian.EndianEngine) {
	off := 0
	for i := 0; i < box.Dims; i++ {
		engine.PutUint32(buf[off:off+4], math.Float32bits(box.Min[i]))
		off += 4
	}
	for i := 0; i < box.Dims; i++ {
		engine.PutUint32(buf[off:off+4], math.Float32bits(box.Max[i]))
		off += 4
	}
}

// writePayload writes g's payload (no record header) into buf and returns
// the number of bytes written. Used both at the top level and recursively
// for collection children, which carry no header of their own.
func writePayload(buf []byte, g *geom.Geometry, engine endian.EndianEngine) (int, error) {
	switch g.Type {
	case geom.Point, geom.LineString, geom.CircularString:
		return writeSimpleCoords(buf, uint32(g.Type), g.Coords, engine)

	case geom.Triangle:
		if len(g.Rings) != 1 {
			return 0, fmt.Errorf("%w: triangle must have exactly one ring", errs.ErrDimensionalityMismatch)
		}
		return writeSimpleCoords(buf, uint32(g.Type), g.Rings[0], engine)

	case geom.Polygon:
		return writePolygon(buf, g, engine)

	case geom.NurbsCurveType:
		return writeNurbs(buf, g, engine)

	default:
		if !g.Type.IsCollection() {
			return 0, fmt.Errorf("%w: %s", errs.ErrUnsupportedGeometryType, g.Type)
		}
		return writeCollection(buf, g, engine)
	}
}

func writeSimpleCoords(buf []byte, typ uint32, coords geom.CoordArray, engine endian.EndianEngine) (int, error) {
	offset := 0
	engine.PutUint32(buf[offset:offset+4], typ)
	offset += 4
	engine.PutUint32(buf[offset:offset+4], uint32(coords.NPoints())) //nolint:gosec
	offset += 4

	offset += coords.WriteTo(buf[offset:], engine)

	return offset, nil
}

func writePolygon(buf []byte, g *geom.Geometry, engine endian.EndianEngine) (int, error) {
	offset := 0
	engine.PutUint32(buf[offset:offset+4], uint32(g.Type))
	offset += 4
	engine.PutUint32(buf[offset:offset+4], uint32(len(g.Rings))) //nolint:gosec
	offset += 4

	for _, r := range g.Rings {
		engine.PutUint32(buf[offset:offset+4], uint32(r.NPoints())) //nolint:gosec
		offset += 4
	}

	if len(g.Rings)%2 != 0 {
		engine.PutUint32(buf[offset:offset+4], 0)
		offset += 4
	}

	for _, r := range g.Rings {
		offset += r.WriteTo(buf[offset:], engine)
	}

	return offset, nil
}

func writeCollection(buf []byte, g *geom.Geometry, engine endian.EndianEngine) (int, error) {
	offset := 0
	engine.PutUint32(buf[offset:offset+4], uint32(g.Type))
	offset += 4
	engine.PutUint32(buf[offset:offset+4], uint32(len(g.Geometries))) //nolint:gosec
	offset += 4

	for _, child := range g.Geometries {
		if g.Type != geom.GeometryCollection && !geom.AdmitsChild(g.Type, child.Type) {
			return 0, fmt.Errorf("%w: %s cannot contain %s", errs.ErrDisallowedChildType, g.Type, child.Type)
		}

		n, err := writePayload(buf[offset:], child, engine)
		if err != nil {
			return 0, err
		}
		offset += n
	}

	return offset, nil
}

func writeNurbs(buf []byte, g *geom.Geometry, engine endian.EndianEngine) (int, error) {
	n := g.Nurbs
	if n == nil {
		return 0, errs.ErrNilGeometry
	}

	offset := 0
	engine.PutUint32(buf[offset:offset+4], uint32(geom.NurbsCurveType))
	offset += 4
	engine.PutUint32(buf[offset:offset+4], uint32(n.Points.NPoints())) //nolint:gosec
	offset += 4
	engine.PutUint32(buf[offset:offset+4], uint32(n.Degree)) //nolint:gosec
	offset += 4
	engine.PutUint32(buf[offset:offset+4], uint32(len(n.Weights))) //nolint:gosec
	offset += 4
	engine.PutUint32(buf[offset:offset+4], uint32(len(n.Knots))) //nolint:gosec
	offset += 4

	for _, w := range n.Weights {
		engine.PutUint64(buf[offset:offset+8], math.Float64bits(w))
		offset += 8
	}
	for _, k := range n.Knots {
		engine.PutUint64(buf[offset:offset+8], math.Float64bits(k))
		offset += 8
	}

	offset += n.Points.WriteTo(buf[offset:], engine)

	return offset, nil
}
