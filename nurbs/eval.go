package nurbs

import (
	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/geom"
)

// Eval evaluates the curve at parameter u (§4.H). u is clamped to [0,1]:
// u<=0 returns the first control point, u>=1 returns the last, mirroring
// the clamped-knot-vector convention rather than erroring on out-of-range
// input.
//
// An empty curve (zero control points) evaluates to an empty Point.
func Eval(g *geom.Geometry, u float64) (*geom.Geometry, error) {
	n := g.Nurbs
	npoints := n.Points.NPoints()

	result := &geom.Geometry{
		Type:  geom.Point,
		SRID:  g.SRID,
		Flags: g.Flags,
	}

	if npoints == 0 {
		result.Coords = geom.NewCoordArray(0, g.Flags.HasZ, g.Flags.HasM)
		return result, nil
	}

	engine := endian.GetLittleEndianEngine()

	if u <= 0 {
		result.Coords = geom.NewCoordArray(1, g.Flags.HasZ, g.Flags.HasM)
		result.Coords.Set(0, n.Points.At(0, engine), engine)
		return result, nil
	}
	if u >= 1 {
		result.Coords = geom.NewCoordArray(1, g.Flags.HasZ, g.Flags.HasM)
		result.Coords.Set(0, n.Points.At(npoints-1, engine), engine)
		return result, nil
	}

	knots, err := knotsFor(n)
	if err != nil {
		return nil, err
	}

	var sumX, sumY, sumZ, sumM, sumW float64

	for i := 0; i < npoints; i++ {
		b := Basis(knots, i, n.Degree, u)
		if b == 0 {
			continue
		}

		w := 1.0
		if n.Weights != nil {
			w = n.Weights[i]
		}

		p := n.Points.At(i, engine)
		weighted := b * w
		sumX += weighted * p.X
		sumY += weighted * p.Y
		sumZ += weighted * p.Z
		sumM += weighted * p.M
		sumW += weighted
	}

	if sumW == 0 {
		// u landed exactly on the last knot span boundary; fall back to
		// the endpoint the clamped knot vector guarantees.
		result.Coords = geom.NewCoordArray(1, g.Flags.HasZ, g.Flags.HasM)
		result.Coords.Set(0, n.Points.At(npoints-1, engine), engine)
		return result, nil
	}

	pt := geom.Point4D{X: sumX / sumW, Y: sumY / sumW}
	if g.Flags.HasZ {
		pt.Z = sumZ / sumW
	}
	if g.Flags.HasM {
		pt.M = sumM / sumW
	}

	result.Coords = geom.NewCoordArray(1, g.Flags.HasZ, g.Flags.HasM)
	result.Coords.Set(0, pt, engine)

	return result, nil
}
