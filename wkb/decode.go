package wkb

import (
	"fmt"
	"math"

	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/geom"
)

// MaxDepth bounds WKB collection recursion, mirroring gs2.MaxDepth.
const MaxDepth = geom.MaxNestingDepth

// Decode parses a WKB buffer into a Geometry tree. Every node, including
// nested ones, carries its own endian marker and self-describing type
// code (§4.G), so byte order and dialect are recovered from the bytes
// themselves; only WithHex (controlling whether data is first hex-decoded)
// has any effect on decode among the dialect/endian options.
func Decode(data []byte, opts ...Option) (*geom.Geometry, error) {
	cfg, err := resolveConfig(opts...)
	if err != nil {
		return nil, err
	}

	if cfg.hex {
		data, err = decodeHex(data)
		if err != nil {
			return nil, err
		}
	}

	g, n, err := decodeNode(data, true, 0)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: trailing bytes after root WKB record", errs.ErrTruncatedBuffer)
	}

	propagateSRID(g, g.SRID)

	return g, nil
}

// propagateSRID assigns srid to g and every descendant. Sub-geometries
// never carry their own SRID on the wire (§3), so the outer shell's value
// is the only one decode ever reads off the buffer.
func propagateSRID(g *geom.Geometry, srid int32) {
	g.SRID = srid
	for _, child := range g.Geometries {
		propagateSRID(child, srid)
	}
}

func decodeNode(buf []byte, isRoot bool, depth int) (*geom.Geometry, int, error) {
	if depth > MaxDepth {
		return nil, 0, errs.ErrMaxDepthExceeded
	}
	if len(buf) < headerBaseSize {
		return nil, 0, errs.ErrTruncatedBuffer
	}

	engine := endian.GetLittleEndianEngine()
	if buf[0] == xdrByte {
		engine = endian.GetBigEndianEngine()
	}

	offset := 1
	code := engine.Uint32(buf[offset : offset+4])
	offset += 4

	typ, hasZ, hasM, hasSRIDFlag := decodeTypeCode(code)

	var srid int32
	if hasSRIDFlag {
		if len(buf) < offset+4 {
			return nil, 0, errs.ErrTruncatedBuffer
		}
		srid = int32(engine.Uint32(buf[offset : offset+4])) //nolint:gosec
		offset += 4
	}

	g := &geom.Geometry{Type: typ, SRID: srid}
	g.Flags.HasZ = hasZ
	g.Flags.HasM = hasM
	g.Flags.HasSRID = hasSRIDFlag

	n, err := readPayload(buf[offset:], g, engine, hasZ, hasM, isRoot, depth)
	if err != nil {
		return nil, 0, err
	}

	return g, offset + n, nil
}

func readPayload(buf []byte, g *geom.Geometry, engine endian.EndianEngine, hasZ, hasM bool, isRoot bool, depth int) (int, error) {
	switch g.Type {
	case geom.Point:
		return readPointPayload(buf, g, engine, hasZ, hasM, isRoot)

	case geom.LineString, geom.CircularString:
		return readLineStringPayload(buf, g, engine, hasZ, hasM)

	case geom.Triangle, geom.Polygon:
		return readPolygonPayload(buf, g, engine, hasZ, hasM)

	case geom.NurbsCurveType:
		return readNurbsPayload(buf, g, engine)

	default:
		if !g.Type.IsCollection() {
			return 0, fmt.Errorf("%w: %s", errs.ErrUnsupportedGeometryType, g.Type)
		}
		return readCollectionPayload(buf, g, engine, depth)
	}
}

// readPointPayload mirrors sizePointPayload/writePointPayload's
// emptiness convention: at the root, a remaining length of exactly 4 is
// the legacy npoints=0 marker; otherwise the payload is exactly
// wireDims*8 bytes of coordinates, empty iff the first coordinate is NaN.
func readPointPayload(buf []byte, g *geom.Geometry, engine endian.EndianEngine, hasZ, hasM bool, isRoot bool) (int, error) {
	ndims := wireDims(hasZ, hasM)
	coordLen := ndims * 8

	if isRoot && len(buf) == 4 {
		if engine.Uint32(buf[0:4]) != 0 {
			return 0, fmt.Errorf("%w: unexpected root point marker", errs.ErrInvalidHeader)
		}
		g.Coords = geom.NewCoordArray(0, hasZ, hasM)
		return 4, nil
	}

	if len(buf) < coordLen {
		return 0, errs.ErrTruncatedBuffer
	}

	x := math.Float64frombits(engine.Uint64(buf[0:8]))
	if math.IsNaN(x) {
		g.Coords = geom.NewCoordArray(0, hasZ, hasM)
		return coordLen, nil
	}

	c, err := geom.DecodeCoordArray(buf[:coordLen], 1, hasZ, hasM, engine)
	if err != nil {
		return 0, err
	}
	g.Coords = c

	return coordLen, nil
}

func readLineStringPayload(buf []byte, g *geom.Geometry, engine endian.EndianEngine, hasZ, hasM bool) (int, error) {
	if len(buf) < 4 {
		return 0, errs.ErrTruncatedBuffer
	}
	npoints := int(engine.Uint32(buf[0:4]))
	offset := 4

	want := npoints * geom.PointSize(hasZ, hasM)
	if len(buf) < offset+want {
		return 0, errs.ErrTruncatedBuffer
	}

	c, err := geom.DecodeCoordArray(buf[offset:offset+want], npoints, hasZ, hasM, engine)
	if err != nil {
		return 0, err
	}
	g.Coords = c
	offset += want

	return offset, nil
}

func readPolygonPayload(buf []byte, g *geom.Geometry, engine endian.EndianEngine, hasZ, hasM bool) (int, error) {
	if len(buf) < 4 {
		return 0, errs.ErrTruncatedBuffer
	}
	nrings := int(engine.Uint32(buf[0:4]))
	offset := 4

	rings := make([]geom.CoordArray, nrings)
	for i := 0; i < nrings; i++ {
		if len(buf) < offset+4 {
			return 0, errs.ErrTruncatedBuffer
		}
		npoints := int(engine.Uint32(buf[offset : offset+4]))
		offset += 4

		want := npoints * geom.PointSize(hasZ, hasM)
		if len(buf) < offset+want {
			return 0, errs.ErrTruncatedBuffer
		}
		r, err := geom.DecodeCoordArray(buf[offset:offset+want], npoints, hasZ, hasM, engine)
		if err != nil {
			return 0, err
		}
		rings[i] = r
		offset += want
	}

	if g.Type == geom.Triangle && nrings != 1 {
		return 0, fmt.Errorf("%w: triangle must have exactly one ring", errs.ErrDimensionalityMismatch)
	}
	g.Rings = rings

	return offset, nil
}

func readCollectionPayload(buf []byte, g *geom.Geometry, engine endian.EndianEngine, depth int) (int, error) {
	if len(buf) < 4 {
		return 0, errs.ErrTruncatedBuffer
	}
	n := int(engine.Uint32(buf[0:4]))
	offset := 4

	children := make([]*geom.Geometry, n)
	for i := 0; i < n; i++ {
		child, consumed, err := decodeNode(buf[offset:], false, depth+1)
		if err != nil {
			return 0, err
		}
		if g.Type != geom.GeometryCollection && !geom.AdmitsChild(g.Type, child.Type) {
			return 0, fmt.Errorf("%w: %s cannot contain %s", errs.ErrDisallowedChildType, g.Type, child.Type)
		}
		children[i] = child
		offset += consumed
	}
	g.Geometries = children

	return offset, nil
}

func readNurbsPayload(buf []byte, g *geom.Geometry, engine endian.EndianEngine) (int, error) {
	if len(buf) < 8 {
		return 0, errs.ErrTruncatedBuffer
	}
	degree := int(engine.Uint32(buf[0:4]))
	npoints := int(engine.Uint32(buf[4:8]))
	offset := 8

	if npoints == 0 {
		g.Nurbs = &geom.NurbsCurve{Degree: degree}
		return offset, nil
	}

	var hasZ, hasM bool
	weights := make([]float64, npoints)
	allDefault := true
	var points geom.CoordArray

	for i := 0; i < npoints; i++ {
		if len(buf) < offset+1 {
			return 0, errs.ErrTruncatedBuffer
		}
		ptEngine := endian.GetLittleEndianEngine()
		if buf[offset] == xdrByte {
			ptEngine = endian.GetBigEndianEngine()
		}
		offset++

		if i == 0 {
			// Dimensionality was already decoded from the node's type code.
			hasZ, hasM = g.Flags.HasZ, g.Flags.HasM
			points = geom.NewCoordArray(npoints, hasZ, hasM)
		}

		step := geom.PointSize(hasZ, hasM)
		if len(buf) < offset+step {
			return 0, errs.ErrTruncatedBuffer
		}
		c, err := geom.DecodeCoordArray(buf[offset:offset+step], 1, hasZ, hasM, ptEngine)
		if err != nil {
			return 0, err
		}
		native := endian.GetLittleEndianEngine()
		points.Set(i, c.At(0, native), native)
		offset += step

		if len(buf) < offset+1 {
			return 0, errs.ErrTruncatedBuffer
		}
		hasWeight := buf[offset]
		offset++

		w := 1.0
		if hasWeight != 0 {
			if len(buf) < offset+8 {
				return 0, errs.ErrTruncatedBuffer
			}
			w = math.Float64frombits(engine.Uint64(buf[offset : offset+8]))
			offset += 8
			allDefault = false
		}
		weights[i] = w
	}

	if len(buf) < offset+4 {
		return 0, errs.ErrTruncatedBuffer
	}
	nknots := int(engine.Uint32(buf[offset : offset+4]))
	offset += 4

	knots := make([]float64, nknots)
	for i := 0; i < nknots; i++ {
		if len(buf) < offset+8 {
			return 0, errs.ErrTruncatedBuffer
		}
		knots[i] = math.Float64frombits(engine.Uint64(buf[offset : offset+8]))
		offset += 8
	}

	n := &geom.NurbsCurve{Degree: degree, Points: points, Knots: knots}
	if !allDefault {
		n.Weights = weights
	}
	g.Nurbs = n

	return offset, nil
}
