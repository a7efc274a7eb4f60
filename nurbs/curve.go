package nurbs

import (
	"fmt"

	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/flags"
	"github.com/nullform/gscore/geom"
)

// MinDegree and MaxDegree bound a valid NURBS degree (§4.H).
const (
	MinDegree = 1
	MaxDegree = 10
)

// New constructs a NurbsCurve geometry from srid, degree, control points,
// and optional weights/knots. Points are moved in (the returned geometry
// takes ownership of the CoordArray passed in); weights and knots are
// deep-copied so the caller's slices remain theirs.
func New(srid int32, degree int, points geom.CoordArray, weights, knots []float64) (*geom.Geometry, error) {
	if degree < MinDegree || degree > MaxDegree {
		return nil, fmt.Errorf("%w: got %d", errs.ErrInvalidDegree, degree)
	}

	npoints := points.NPoints()
	if weights != nil && len(weights) != npoints {
		return nil, fmt.Errorf("%w: expected %d, got %d", errs.ErrInvalidWeights, npoints, len(weights))
	}
	for i, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("%w: weight[%d]=%v is not positive", errs.ErrInvalidWeights, i, w)
		}
	}

	if knots != nil {
		want := npoints + degree + 1
		if len(knots) != want {
			return nil, fmt.Errorf("%w: expected %d, got %d", errs.ErrInvalidKnots, want, len(knots))
		}
		for i := 1; i < len(knots); i++ {
			if knots[i] < knots[i-1] {
				return nil, fmt.Errorf("%w: not non-decreasing at index %d", errs.ErrInvalidKnots, i)
			}
		}
	}

	g := &geom.Geometry{
		Type: geom.NurbsCurveType,
		SRID: srid,
		Flags: flags.Flags{
			HasZ: points.HasZ(),
			HasM: points.HasM(),
		},
		Nurbs: &geom.NurbsCurve{
			Degree: degree,
			Points: points,
			Weights: append([]float64(nil), weights...),
			Knots:   append([]float64(nil), knots...),
		},
	}

	return g, nil
}

// UniformClamped synthesizes a clamped uniform knot vector for npoints
// control points and the given degree (§4.H): the first degree+1 entries
// are 0.0, the last degree+1 are 1.0, and the K = npoints-degree-1 interior
// entries are i/(K+1) for i = 1..K.
//
// Requires npoints >= degree+1; otherwise returns ErrTooFewControlPoints.
func UniformClamped(npoints, degree int) ([]float64, error) {
	if npoints < degree+1 {
		return nil, errs.ErrTooFewControlPoints
	}

	total := npoints + degree + 1
	knots := make([]float64, total)
	for i := 0; i <= degree; i++ {
		knots[i] = 0.0
		knots[total-1-i] = 1.0
	}

	k := npoints - degree - 1
	for i := 1; i <= k; i++ {
		knots[degree+i] = float64(i) / float64(k+1)
	}

	return knots, nil
}

// knotsFor returns n's stored knot vector, synthesizing a clamped uniform
// one if none is stored.
func knotsFor(n *geom.NurbsCurve) ([]float64, error) {
	if n.Knots != nil {
		return n.Knots, nil
	}

	return UniformClamped(n.Points.NPoints(), n.Degree)
}

// Basis evaluates the Cox-de-Boor B-spline basis function N(i, p, u) for
// the given knot vector.
func Basis(knots []float64, i, p int, u float64) float64 {
	if p == 0 {
		if knots[i] <= u && u < knots[i+1] {
			return 1.0
		}

		return 0.0
	}

	var alpha, beta float64

	denomA := knots[i+p] - knots[i]
	if denomA != 0 {
		alpha = (u - knots[i]) / denomA * Basis(knots, i, p-1, u)
	}

	denomB := knots[i+p+1] - knots[i+1]
	if denomB != 0 {
		beta = (knots[i+p+1] - u) / denomB * Basis(knots, i+1, p-1, u)
	}

	return alpha + beta
}

// IsValid implements the "is-valid" predicate from §4.H: degree in
// [1,10], npoints >= degree+1, all weights > 0 when present, and a knot
// vector that is non-decreasing and of the exact expected length when
// present.
func IsValid(g *geom.Geometry) bool {
	if g == nil || g.Type != geom.NurbsCurveType || g.Nurbs == nil {
		return false
	}

	n := g.Nurbs
	if n.Degree < MinDegree || n.Degree > MaxDegree {
		return false
	}
	npoints := n.Points.NPoints()
	if npoints < n.Degree+1 {
		return false
	}
	for _, w := range n.Weights {
		if w <= 0 {
			return false
		}
	}
	if n.Weights != nil && len(n.Weights) != npoints {
		return false
	}
	if n.Knots != nil {
		if len(n.Knots) != npoints+n.Degree+1 {
			return false
		}
		for i := 1; i < len(n.Knots); i++ {
			if n.Knots[i] < n.Knots[i-1] {
				return false
			}
		}
	}

	return true
}
