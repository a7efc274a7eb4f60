package gs2

import (
	"fmt"

	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/flags"
	"github.com/nullform/gscore/geom"
)

// Size computes the exact byte count Encode will produce for g: header
// (8 bytes, +8 if EXTENDED, +bbox if present) plus the recursive payload
// (§4.C).
func Size(g *geom.Geometry) (int, error) {
	payload, err := payloadSize(g)
	if err != nil {
		return 0, err
	}

	return flags.HeaderSize(g.Flags) + payload, nil
}

// payloadSize computes the size of g's payload only, excluding the GS2
// record header. Collection children call this recursively since nested
// geometries carry no header of their own (§4.D).
func payloadSize(g *geom.Geometry) (int, error) {
	switch g.Type {
	case geom.Point, geom.LineString, geom.CircularString:
		return 4 + 4 + coordBytes(g.Coords), nil

	case geom.Triangle:
		if len(g.Rings) != 1 {
			return 0, fmt.Errorf("%w: triangle must have exactly one ring", errs.ErrDimensionalityMismatch)
		}
		return 4 + 4 + coordBytes(g.Rings[0]), nil

	case geom.Polygon:
		size := 4 + 4 + 4*len(g.Rings)
		if len(g.Rings)%2 != 0 {
			size += 4 // alignment pad
		}
		for _, r := range g.Rings {
			size += coordBytes(r)
		}
		return size, nil

	case geom.NurbsCurveType:
		return nurbsPayloadSize(g)

	default:
		if !g.Type.IsCollection() {
			return 0, fmt.Errorf("%w: %s", errs.ErrUnsupportedGeometryType, g.Type)
		}

		size := 4 + 4
		for _, child := range g.Geometries {
			childSize, err := payloadSize(child)
			if err != nil {
				return 0, err
			}
			size += childSize
		}
		return size, nil
	}
}

func nurbsPayloadSize(g *geom.Geometry) (int, error) {
	if g.Nurbs == nil {
		return 0, errs.ErrNilGeometry
	}
	n := g.Nurbs

	size := 4 + 4 + 4 + 4 + 4 // type, npoints, degree, nweights, nknots
	size += 8 * len(n.Weights)
	size += 8 * len(n.Knots)
	size += coordBytes(n.Points)

	return size, nil
}

func coordBytes(c geom.CoordArray) int {
	return c.NPoints() * c.PointSize()
}
