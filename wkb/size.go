package wkb

import (
	"fmt"

	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/geom"
	"github.com/nullform/gscore/nurbs"
)

const headerBaseSize = 1 + 4 // endian byte + type code

// wireDims returns the number of coordinate dimensions actually written to
// the wire for a point with the given Z/M flags: 2 (XY), 3 (XYZ or XYM), or
// 4 (XYZM).
func wireDims(hasZ, hasM bool) int {
	n := 2
	if hasZ {
		n++
	}
	if hasM {
		n++
	}

	return n
}

// Size predicts the exact byte length Encode will produce for g under the
// given options (§4.G's "compute size first" sizer style). If WithHex is
// set, Size reports the doubled hex-character length.
func Size(g *geom.Geometry, opts ...Option) (int, error) {
	cfg, err := resolveConfig(opts...)
	if err != nil {
		return 0, err
	}
	if g == nil {
		return 0, errs.ErrNilGeometry
	}

	n, err := sizeNode(g, cfg, true)
	if err != nil {
		return 0, err
	}
	if cfg.hex {
		return 2 * n, nil
	}

	return n, nil
}

func sizeNode(g *geom.Geometry, cfg *config, isRoot bool) (int, error) {
	hasZ, hasM := dialectDims(cfg.dialect, g.Type, g.Flags.HasZ, g.Flags.HasM)

	header := headerBaseSize
	if isRoot && needsSRID(cfg, g.SRID, g.Flags.HasSRID) {
		header += 4
	}

	payload, err := sizePayload(g, cfg, hasZ, hasM, isRoot)
	if err != nil {
		return 0, err
	}

	return header + payload, nil
}

func sizePayload(g *geom.Geometry, cfg *config, hasZ, hasM bool, isRoot bool) (int, error) {
	switch g.Type {
	case geom.Point:
		return sizePointPayload(g, cfg, hasZ, hasM, isRoot), nil

	case geom.LineString, geom.CircularString:
		return 4 + g.Coords.NPoints()*wireDims(hasZ, hasM)*8, nil

	case geom.Triangle:
		if len(g.Rings) != 1 {
			return 0, fmt.Errorf("%w: triangle must have exactly one ring", errs.ErrDimensionalityMismatch)
		}
		return sizePolygonRings(g.Rings, hasZ, hasM), nil

	case geom.Polygon:
		return sizePolygonRings(g.Rings, hasZ, hasM), nil

	case geom.NurbsCurveType:
		return sizeNurbsPayload(g)

	default:
		if !g.Type.IsCollection() {
			return 0, fmt.Errorf("%w: %s", errs.ErrUnsupportedGeometryType, g.Type)
		}
		return sizeCollectionPayload(g, cfg)
	}
}

// sizePointPayload implements the Point emptiness encoding from §4.G. A
// non-empty point is always just its raw coordinates (no count field,
// matching S1). An empty point nested inside a collection always uses
// NaN-coordinate padding (the only shape a generic recursive decoder can
// tell apart from real coordinates without a surrounding length prefix);
// only the outermost record — which has no siblings after it, so its
// length is exactly the emptiness signal — may use the shorter legacy
// npoints=0 marker, and only for the SFSQL/ISO dialects. WithNoNPoints
// forces the NaN form even at the root.
func sizePointPayload(g *geom.Geometry, cfg *config, hasZ, hasM bool, isRoot bool) int {
	ndims := wireDims(hasZ, hasM)
	if !g.IsEmpty() {
		return ndims * 8
	}
	if !isRoot {
		return ndims * 8
	}
	if cfg.dialect == Extended || cfg.noNPoints {
		return ndims * 8
	}

	return 4 // npoints=0 marker, root-only legacy SFSQL/ISO form
}

func sizePolygonRings(rings []geom.CoordArray, hasZ, hasM bool) int {
	ndims := wireDims(hasZ, hasM)
	size := 4
	for _, r := range rings {
		size += 4 + r.NPoints()*ndims*8
	}

	return size
}

func sizeCollectionPayload(g *geom.Geometry, cfg *config) (int, error) {
	size := 4
	for _, child := range g.Geometries {
		if g.Type != geom.GeometryCollection && !geom.AdmitsChild(g.Type, child.Type) {
			return 0, fmt.Errorf("%w: %s cannot contain %s", errs.ErrDisallowedChildType, g.Type, child.Type)
		}
		n, err := sizeNode(child, cfg, false)
		if err != nil {
			return 0, err
		}
		size += n
	}

	return size, nil
}

// sizeNurbsPayload sizes the NURBS wire payload (§4.G): degree, npoints,
// then per-control-point [endian][coords][has_weight][weight?], then
// [nknots][knots]. Knots are always serialized, synthesizing a clamped
// uniform vector when none is stored.
func sizeNurbsPayload(g *geom.Geometry) (int, error) {
	n := g.Nurbs
	if n == nil {
		return 0, errs.ErrNilGeometry
	}

	ndims := wireDims(n.Points.HasZ(), n.Points.HasM())
	npoints := n.Points.NPoints()

	size := 4 + 4 // degree, npoints
	perPoint := 1 + ndims*8 + 1
	size += npoints * perPoint
	for _, w := range n.Weights {
		if w != 1.0 {
			size += 8
		}
	}

	nknots := len(n.Knots)
	if nknots == 0 {
		knots, err := nurbs.UniformClamped(npoints, n.Degree)
		if err != nil {
			return 0, err
		}
		nknots = len(knots)
	}
	size += 4 + nknots*8

	return size, nil
}
