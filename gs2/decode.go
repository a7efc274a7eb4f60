package gs2

import (
	"fmt"
	"math"

	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/flags"
	"github.com/nullform/gscore/geom"
)

// MaxDepth bounds collection nesting during decode (§5), guarding against
// adversarial input without risking stack exhaustion.
const MaxDepth = geom.MaxNestingDepth

// Decode reconstructs a geometry tree from a GS2 record assuming the
// common little-endian producer order. Coordinate blocks borrow directly
// from data (zero-copy); the returned tree must not outlive data and must
// not be mutated in place.
func Decode(data []byte) (*geom.Geometry, error) {
	return DecodeWithEngine(data, endian.GetLittleEndianEngine())
}

// DecodeWithEngine is Decode with an explicit source byte order.
func DecodeWithEngine(data []byte, engine endian.EndianEngine) (*geom.Geometry, error) {
	if len(data) < 8 {
		return nil, errs.ErrTruncatedBuffer
	}

	var sridBytes [3]byte
	copy(sridBytes[:], data[4:7])
	srid := flags.UnpackSRID(sridBytes)

	f := flags.Decode(data[7])
	offset := 8

	if f.Extended {
		if len(data) < offset+8 {
			return nil, errs.ErrTruncatedBuffer
		}
		ext := engine.Uint64(data[offset : offset+8])
		if err := flags.ValidateExtended(ext); err != nil {
			return nil, err
		}
		extFields := flags.DecodeExt(ext)
		f.SolidRing = extFields.SolidRing
		f.CheckedOK = extFields.CheckedOK
		f.IsValidFlag = extFields.IsValidFlag
		f.HasHash = extFields.HasHash
		offset += 8
	}

	var box *geom.Box
	if f.HasBBox {
		dims := flags.NdimsBox(f)
		need := 2 * dims * 4
		if len(data) < offset+need {
			return nil, errs.ErrTruncatedBuffer
		}
		b := readBBox(data[offset:offset+need], dims, engine)
		box = &b
		offset += need
	}

	g, _, err := readPayload(data[offset:], f, srid, engine, 0)
	if err != nil {
		return nil, err
	}
	g.BBox = box

	return g, nil
}

func readBBox(buf []byte, dims int, engine endian.EndianEngine) geom.Box {
	var b geom.Box
	b.Dims = dims
	off := 0
	for i := 0; i < dims; i++ {
		b.Min[i] = math.Float32frombits(engine.Uint32(buf[off : off+4]))
		off += 4
	}
	for i := 0; i < dims; i++ {
		b.Max[i] = math.Float32frombits(engine.Uint32(buf[off : off+4]))
		off += 4
	}

	return b
}

// readPayload dispatches on the leading 4-byte type field and returns the
// decoded geometry plus the number of bytes consumed from buf (§4.E).
// depth guards against adversarial nesting.
func readPayload(buf []byte, f flags.Flags, srid int32, engine endian.EndianEngine, depth int) (*geom.Geometry, int, error) {
	if depth > MaxDepth {
		return nil, 0, errs.ErrMaxDepthExceeded
	}
	if len(buf) < 8 {
		return nil, 0, errs.ErrTruncatedBuffer
	}

	typ := geom.Type(engine.Uint32(buf[0:4]))

	switch typ {
	case geom.Point, geom.LineString, geom.CircularString:
		return readSimpleCoords(buf, typ, f, srid, engine)

	case geom.Triangle:
		g, n, err := readSimpleCoords(buf, typ, f, srid, engine)
		if err != nil {
			return nil, 0, err
		}
		g.Rings = []geom.CoordArray{g.Coords}
		g.Coords = geom.CoordArray{}
		return g, n, nil

	case geom.Polygon:
		return readPolygon(buf, f, srid, engine)

	case geom.NurbsCurveType:
		return readNurbs(buf, f, srid, engine)

	default:
		if !typ.IsCollection() {
			return nil, 0, fmt.Errorf("%w: code %d", errs.ErrUnknownGeometryType, uint32(typ))
		}
		return readCollection(buf, typ, f, srid, engine, depth)
	}
}

func readSimpleCoords(buf []byte, typ geom.Type, f flags.Flags, srid int32, engine endian.EndianEngine) (*geom.Geometry, int, error) {
	npoints := int(engine.Uint32(buf[4:8]))
	offset := 8

	coords, err := geom.DecodeCoordArray(buf[offset:], npoints, f.HasZ, f.HasM, engine)
	if err != nil {
		return nil, 0, err
	}
	offset += npoints * geom.PointSize(f.HasZ, f.HasM)

	return &geom.Geometry{Type: typ, SRID: srid, Flags: f, Coords: coords}, offset, nil
}

func readPolygon(buf []byte, f flags.Flags, srid int32, engine endian.EndianEngine) (*geom.Geometry, int, error) {
	if len(buf) < 8 {
		return nil, 0, errs.ErrTruncatedBuffer
	}
	nrings := int(engine.Uint32(buf[4:8]))
	offset := 8

	if len(buf) < offset+4*nrings {
		return nil, 0, errs.ErrTruncatedBuffer
	}
	ringLens := make([]int, nrings)
	for i := 0; i < nrings; i++ {
		ringLens[i] = int(engine.Uint32(buf[offset : offset+4]))
		offset += 4
	}

	if nrings%2 != 0 {
		offset += 4 // alignment pad
	}

	rings := make([]geom.CoordArray, nrings)
	for i, n := range ringLens {
		c, err := geom.DecodeCoordArray(buf[offset:], n, f.HasZ, f.HasM, engine)
		if err != nil {
			return nil, 0, err
		}
		rings[i] = c
		offset += n * geom.PointSize(f.HasZ, f.HasM)
	}

	return &geom.Geometry{Type: geom.Polygon, SRID: srid, Flags: f, Rings: rings}, offset, nil
}

func readCollection(buf []byte, typ geom.Type, f flags.Flags, srid int32, engine endian.EndianEngine, depth int) (*geom.Geometry, int, error) {
	if len(buf) < 8 {
		return nil, 0, errs.ErrTruncatedBuffer
	}
	ngeoms := int(engine.Uint32(buf[4:8]))
	offset := 8

	children := make([]*geom.Geometry, 0, ngeoms)
	for i := 0; i < ngeoms; i++ {
		child, n, err := readPayload(buf[offset:], f, srid, engine, depth+1)
		if err != nil {
			return nil, 0, err
		}
		if typ != geom.GeometryCollection && !geom.AdmitsChild(typ, child.Type) {
			return nil, 0, fmt.Errorf("%w: %s cannot contain %s", errs.ErrDisallowedChildType, typ, child.Type)
		}
		children = append(children, child)
		offset += n
	}

	return &geom.Geometry{Type: typ, SRID: srid, Flags: f, Geometries: children}, offset, nil
}

func readNurbs(buf []byte, f flags.Flags, srid int32, engine endian.EndianEngine) (*geom.Geometry, int, error) {
	if len(buf) < 20 {
		return nil, 0, errs.ErrTruncatedBuffer
	}

	npoints := int(engine.Uint32(buf[4:8]))
	degree := int(engine.Uint32(buf[8:12]))
	nweights := int(engine.Uint32(buf[12:16]))
	nknots := int(engine.Uint32(buf[16:20]))
	offset := 20

	weights := make([]float64, nweights)
	for i := 0; i < nweights; i++ {
		weights[i] = math.Float64frombits(engine.Uint64(buf[offset : offset+8]))
		offset += 8
	}
	if nweights == 0 {
		weights = nil
	}

	knots := make([]float64, nknots)
	for i := 0; i < nknots; i++ {
		knots[i] = math.Float64frombits(engine.Uint64(buf[offset : offset+8]))
		offset += 8
	}
	if nknots == 0 {
		knots = nil
	}

	points, err := geom.DecodeCoordArray(buf[offset:], npoints, f.HasZ, f.HasM, engine)
	if err != nil {
		return nil, 0, err
	}
	offset += npoints * geom.PointSize(f.HasZ, f.HasM)

	g := &geom.Geometry{
		Type:  geom.NurbsCurveType,
		SRID:  srid,
		Flags: f,
		Nurbs: &geom.NurbsCurve{
			Degree:  degree,
			Points:  points,
			Weights: weights,
			Knots:   knots,
		},
	}

	return g, offset, nil
}
