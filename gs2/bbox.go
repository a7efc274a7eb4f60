package gs2

import (
	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/geom"
	"github.com/nullform/gscore/internal/pool"
)

// ComputeBBox walks the full geometry tree and returns its outward-rounded
// bounding box (§3, §8 property 6). This is the "full decode and
// recompute" fallback PeekBBox's callers use when the fast path declines.
func ComputeBBox(g *geom.Geometry) *geom.Box {
	dims := flagsBoxDims(g)
	box := geom.NewBox(dims)
	engine := endian.GetLittleEndianEngine()

	extendBBox(&box, g, engine)

	return &box
}

func flagsBoxDims(g *geom.Geometry) int {
	n := 2
	if g.Flags.HasZ {
		n++
	}
	if g.Flags.HasM {
		n++
	}
	if g.Flags.Geodetic {
		return 3
	}

	return n
}

func extendBBox(box *geom.Box, g *geom.Geometry, engine endian.EndianEngine) {
	extendFromCoords(box, g.Coords, engine)
	for _, r := range g.Rings {
		extendFromCoords(box, r, engine)
	}
	for _, child := range g.Geometries {
		extendBBox(box, child, engine)
	}
	if g.Nurbs != nil {
		extendFromCoords(box, g.Nurbs.Points, engine)
	}
}

func extendFromCoords(box *geom.Box, c geom.CoordArray, engine endian.EndianEngine) {
	dims := box.Dims
	coord, cleanup := pool.GetFloat64Slice(dims)
	defer cleanup()

	for i := 0; i < c.NPoints(); i++ {
		p := c.At(i, engine)
		coord[0] = p.X
		coord[1] = p.Y
		idx := 2
		if c.HasZ() && idx < dims {
			coord[idx] = p.Z
			idx++
		}
		if c.HasM() && idx < dims {
			coord[idx] = p.M
		}
		box.Extend(coord)
	}
}
