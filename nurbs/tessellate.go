package nurbs

import (
	"fmt"

	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/geom"
)

// MinSegments and MaxSegments bound the segment count accepted by
// ToLineString (§4.H).
const (
	MinSegments = 2
	MaxSegments = 10000
)

// ToLineString flattens the curve into a LineString geometry by evaluating
// it at segments+1 evenly spaced parameter values from 0 to 1 inclusive.
func ToLineString(g *geom.Geometry, segments int) (*geom.Geometry, error) {
	if segments < MinSegments || segments > MaxSegments {
		return nil, fmt.Errorf("%w: got %d, want [%d,%d]", errs.ErrInvalidSegmentCount, segments, MinSegments, MaxSegments)
	}

	engine := endian.GetLittleEndianEngine()
	npoints := segments + 1
	coords := geom.NewCoordArray(npoints, g.Flags.HasZ, g.Flags.HasM)

	for i := 0; i < npoints; i++ {
		u := float64(i) / float64(segments)

		pt, err := Eval(g, u)
		if err != nil {
			return nil, err
		}

		coords.Set(i, pt.Coords.At(0, engine), engine)
	}

	return &geom.Geometry{
		Type:   geom.LineString,
		SRID:   g.SRID,
		Flags:  g.Flags,
		Coords: coords,
	}, nil
}
