package geom

import (
	"fmt"

	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/errs"
)

// MaxNestingDepth bounds collection nesting depth so a decoder walking an
// adversarial buffer cannot exhaust the stack (§5). 32 matches the spec's
// suggested floor; it is generous for any geometry a real caller would
// construct.
const MaxNestingDepth = 32

// Validate checks the structural invariants from §3: a geometry's Z/M
// flags must match every contained coordinate block's flags, polygon rings
// must share the polygon's dimensionality, triangles must carry exactly
// one ring, and NURBS weights/knots must have the expected lengths.
func (g *Geometry) Validate() error {
	return g.validate(0)
}

func (g *Geometry) validate(depth int) error {
	if depth > MaxNestingDepth {
		return errs.ErrMaxDepthExceeded
	}

	switch g.Type {
	case Point, LineString, CircularString:
		return g.checkCoordDims(g.Coords)
	case Triangle:
		if len(g.Rings) != 1 {
			return fmt.Errorf("%w: triangle must have exactly one ring, got %d", errs.ErrDimensionalityMismatch, len(g.Rings))
		}

		return g.checkRingClosedAndDims(g.Rings[0])
	case Polygon:
		for i, r := range g.Rings {
			if err := g.checkCoordDims(r); err != nil {
				return fmt.Errorf("ring %d: %w", i, err)
			}
		}

		return nil
	case NurbsCurveType:
		return validateNurbsShape(g.Nurbs)
	default:
		if !g.Type.IsCollection() {
			return fmt.Errorf("%w: %s", errs.ErrUnknownGeometryType, g.Type)
		}
		for i, child := range g.Geometries {
			if !AdmitsChild(g.Type, child.Type) {
				return fmt.Errorf("%w: %s cannot contain %s (child %d)", errs.ErrDisallowedChildType, g.Type, child.Type, i)
			}
			if err := child.validate(depth + 1); err != nil {
				return err
			}
		}

		return nil
	}
}

func (g *Geometry) checkCoordDims(c CoordArray) error {
	if c.HasZ() != g.Flags.HasZ || c.HasM() != g.Flags.HasM {
		return fmt.Errorf("%w: geometry flags Z=%v M=%v, coords Z=%v M=%v",
			errs.ErrDimensionalityMismatch, g.Flags.HasZ, g.Flags.HasM, c.HasZ(), c.HasM())
	}

	return nil
}

func (g *Geometry) checkRingClosedAndDims(r CoordArray) error {
	if err := g.checkCoordDims(r); err != nil {
		return err
	}

	n := r.NPoints()
	if n == 0 {
		return nil
	}

	engine := endian.GetLittleEndianEngine()
	first, last := r.At(0, engine), r.At(n-1, engine)
	if first != last {
		return fmt.Errorf("%w: first=%v, last=%v", errs.ErrRingNotClosed, first, last)
	}

	return nil
}

func validateNurbsShape(n *NurbsCurve) error {
	if n == nil {
		return errs.ErrNilGeometry
	}
	npoints := n.Points.NPoints()
	if n.Weights != nil && len(n.Weights) != npoints {
		return fmt.Errorf("%w: expected %d weights, got %d", errs.ErrInvalidWeights, npoints, len(n.Weights))
	}
	if n.Knots != nil {
		want := npoints + n.Degree + 1
		if len(n.Knots) != want {
			return fmt.Errorf("%w: expected %d knots, got %d", errs.ErrInvalidKnots, want, len(n.Knots))
		}
		for i := 1; i < len(n.Knots); i++ {
			if n.Knots[i] < n.Knots[i-1] {
				return fmt.Errorf("%w: knot[%d]=%v < knot[%d]=%v", errs.ErrInvalidKnots, i, n.Knots[i], i-1, n.Knots[i-1])
			}
		}
	}

	return nil
}
