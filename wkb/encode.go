package wkb

import (
	"fmt"
	"math"

	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/geom"
	"github.com/nullform/gscore/nurbs"
)

// ndrByte and xdrByte are the standard WKB byte-order marker values: 1 for
// little-endian (NDR), 0 for big-endian (XDR).
const (
	ndrByte byte = 1
	xdrByte byte = 0
)

// Encode serializes g to WKB under the given options. It sizes the buffer
// first via Size, writes into it exactly once, and treats a sizer/writer
// mismatch as a fatal internal error (§4.G, §7). With WithHex, the
// returned bytes are the ASCII hex encoding of the binary record rather
// than the binary record itself.
func Encode(g *geom.Geometry, opts ...Option) ([]byte, error) {
	cfg, err := resolveConfig(opts...)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, errs.ErrNilGeometry
	}

	size, err := sizeNode(g, cfg, true)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	n, err := encodeNode(buf, g, cfg, true)
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, fmt.Errorf("%w: predicted %d, wrote %d", errs.ErrSizeMismatch, size, n)
	}

	if cfg.hex {
		return encodeHex(buf), nil
	}

	return buf, nil
}

func encodeNode(buf []byte, g *geom.Geometry, cfg *config, isRoot bool) (int, error) {
	hasZ, hasM := dialectDims(cfg.dialect, g.Type, g.Flags.HasZ, g.Flags.HasM)
	srid := isRoot && needsSRID(cfg, g.SRID, g.Flags.HasSRID)

	offset := 0
	buf[offset] = endianByte(cfg.engine)
	offset++

	code := typeCode(cfg.dialect, g.Type, hasZ, hasM, srid)
	cfg.engine.PutUint32(buf[offset:offset+4], code)
	offset += 4

	if srid {
		cfg.engine.PutUint32(buf[offset:offset+4], uint32(g.SRID)) //nolint:gosec
		offset += 4
	}

	n, err := writePayload(buf[offset:], g, cfg, hasZ, hasM, isRoot)
	if err != nil {
		return 0, err
	}

	return offset + n, nil
}

func endianByte(engine endian.EndianEngine) byte {
	if engine == endian.GetBigEndianEngine() {
		return xdrByte
	}

	return ndrByte
}

func writePayload(buf []byte, g *geom.Geometry, cfg *config, hasZ, hasM bool, isRoot bool) (int, error) {
	switch g.Type {
	case geom.Point:
		return writePointPayload(buf, g, cfg, hasZ, hasM, isRoot)

	case geom.LineString, geom.CircularString:
		return writeLineStringPayload(buf, g.Coords, cfg, hasZ, hasM)

	case geom.Triangle:
		if len(g.Rings) != 1 {
			return 0, fmt.Errorf("%w: triangle must have exactly one ring", errs.ErrDimensionalityMismatch)
		}
		return writePolygonPayload(buf, g.Rings, cfg, hasZ, hasM)

	case geom.Polygon:
		return writePolygonPayload(buf, g.Rings, cfg, hasZ, hasM)

	case geom.NurbsCurveType:
		return writeNurbsPayload(buf, g, cfg)

	default:
		if !g.Type.IsCollection() {
			return 0, fmt.Errorf("%w: %s", errs.ErrUnsupportedGeometryType, g.Type)
		}
		return writeCollectionPayload(buf, g, cfg)
	}
}

func writePointPayload(buf []byte, g *geom.Geometry, cfg *config, hasZ, hasM bool, isRoot bool) (int, error) {
	ndims := wireDims(hasZ, hasM)

	if !g.IsEmpty() {
		return writeCoords(buf, g.Coords, hasZ, hasM, cfg.engine), nil
	}

	if isRoot && cfg.dialect != Extended && !cfg.noNPoints {
		cfg.engine.PutUint32(buf[0:4], 0)
		return 4, nil
	}

	offset := 0
	for i := 0; i < ndims; i++ {
		cfg.engine.PutUint64(buf[offset:offset+8], math.Float64bits(math.NaN()))
		offset += 8
	}

	return offset, nil
}

func writeLineStringPayload(buf []byte, coords geom.CoordArray, cfg *config, hasZ, hasM bool) (int, error) {
	offset := 0
	cfg.engine.PutUint32(buf[offset:offset+4], uint32(coords.NPoints())) //nolint:gosec
	offset += 4
	offset += writeCoords(buf[offset:], coords, hasZ, hasM, cfg.engine)

	return offset, nil
}

func writePolygonPayload(buf []byte, rings []geom.CoordArray, cfg *config, hasZ, hasM bool) (int, error) {
	offset := 0
	cfg.engine.PutUint32(buf[offset:offset+4], uint32(len(rings))) //nolint:gosec
	offset += 4

	for _, r := range rings {
		cfg.engine.PutUint32(buf[offset:offset+4], uint32(r.NPoints())) //nolint:gosec
		offset += 4
		offset += writeCoords(buf[offset:], r, hasZ, hasM, cfg.engine)
	}

	return offset, nil
}

func writeCollectionPayload(buf []byte, g *geom.Geometry, cfg *config) (int, error) {
	offset := 0
	cfg.engine.PutUint32(buf[offset:offset+4], uint32(len(g.Geometries))) //nolint:gosec
	offset += 4

	for _, child := range g.Geometries {
		if g.Type != geom.GeometryCollection && !geom.AdmitsChild(g.Type, child.Type) {
			return 0, fmt.Errorf("%w: %s cannot contain %s", errs.ErrDisallowedChildType, g.Type, child.Type)
		}
		n, err := encodeNode(buf[offset:], child, cfg, false)
		if err != nil {
			return 0, err
		}
		offset += n
	}

	return offset, nil
}

// writeNurbsPayload writes the NURBS-specific ISO per-control-point
// structure (§4.G): degree, npoints, then for each control point its own
// endian marker, coordinates, and an optional weight (omitted when it
// equals the 1.0 default), then the knot count and knot vector. Knots are
// always serialized, synthesizing a clamped uniform vector when none is
// stored.
func writeNurbsPayload(buf []byte, g *geom.Geometry, cfg *config) (int, error) {
	n := g.Nurbs
	if n == nil {
		return 0, errs.ErrNilGeometry
	}

	hasZ, hasM := n.Points.HasZ(), n.Points.HasM()
	npoints := n.Points.NPoints()
	native := endian.GetLittleEndianEngine()

	offset := 0
	cfg.engine.PutUint32(buf[offset:offset+4], uint32(n.Degree)) //nolint:gosec
	offset += 4
	cfg.engine.PutUint32(buf[offset:offset+4], uint32(npoints)) //nolint:gosec
	offset += 4

	for i := 0; i < npoints; i++ {
		buf[offset] = endianByte(cfg.engine)
		offset++

		p := n.Points.At(i, native)
		cfg.engine.PutUint64(buf[offset:offset+8], math.Float64bits(p.X))
		offset += 8
		cfg.engine.PutUint64(buf[offset:offset+8], math.Float64bits(p.Y))
		offset += 8
		if hasZ {
			cfg.engine.PutUint64(buf[offset:offset+8], math.Float64bits(p.Z))
			offset += 8
		}
		if hasM {
			cfg.engine.PutUint64(buf[offset:offset+8], math.Float64bits(p.M))
			offset += 8
		}

		w := 1.0
		if i < len(n.Weights) {
			w = n.Weights[i]
		}
		if w != 1.0 {
			buf[offset] = 1
			offset++
			cfg.engine.PutUint64(buf[offset:offset+8], math.Float64bits(w))
			offset += 8
		} else {
			buf[offset] = 0
			offset++
		}
	}

	knots := n.Knots
	if len(knots) == 0 {
		k, err := nurbs.UniformClamped(npoints, n.Degree)
		if err != nil {
			return 0, err
		}
		knots = k
	}

	cfg.engine.PutUint32(buf[offset:offset+4], uint32(len(knots))) //nolint:gosec
	offset += 4
	for _, k := range knots {
		cfg.engine.PutUint64(buf[offset:offset+8], math.Float64bits(k))
		offset += 8
	}

	return offset, nil
}

// writeCoords writes c's points into buf honoring hasZ/hasM (which may
// truncate Z/M relative to c's own dimensionality under the SFSQL
// dialect). When c's dimensionality already matches and engine is native,
// this degenerates to CoordArray.WriteTo's bulk copy (§4.G's fast path);
// otherwise each coordinate is assembled one double at a time.
func writeCoords(buf []byte, c geom.CoordArray, hasZ, hasM bool, engine endian.EndianEngine) int {
	if hasZ == c.HasZ() && hasM == c.HasM() {
		return c.WriteTo(buf, engine)
	}

	native := endian.GetLittleEndianEngine()
	offset := 0
	for i := 0; i < c.NPoints(); i++ {
		p := c.At(i, native)
		engine.PutUint64(buf[offset:offset+8], math.Float64bits(p.X))
		offset += 8
		engine.PutUint64(buf[offset:offset+8], math.Float64bits(p.Y))
		offset += 8
		if hasZ {
			engine.PutUint64(buf[offset:offset+8], math.Float64bits(p.Z))
			offset += 8
		}
		if hasM {
			engine.PutUint64(buf[offset:offset+8], math.Float64bits(p.M))
			offset += 8
		}
	}

	return offset
}
