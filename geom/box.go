package geom

import (
	"math"

	"github.com/nullform/gscore/internal/bits"
)

// Box is an axis-aligned bounding box stored as 32-bit floats, rounded
// outward (Min rounds down, Max rounds up) so the box always contains every
// coordinate it was built from even after the float64->float32 narrowing.
//
// Slots are ordered X, Y, Z, M; Dims reports how many leading slots are
// meaningful (2, 3, or 4), matching flags.NdimsBox. A geodetic box always
// has Dims == 3, holding Earth-centered X, Y, Z rather than lon/lat/M.
type Box struct {
	Min, Max [4]float32
	Dims     int
}

// NewBox builds an empty Box (Min=+Inf, Max=-Inf per dimension) ready for
// Extend calls; an empty Box with no points extended into it is not valid
// and should not be stored.
func NewBox(dims int) Box {
	var b Box
	b.Dims = dims
	for i := range dims {
		b.Min[i] = float32Inf(1)
		b.Max[i] = float32Inf(-1)
	}

	return b
}

func float32Inf(sign int) float32 {
	return float32(math.Inf(sign))
}

// Extend grows the box outward to contain coord, a Dims-length slice of
// coordinate values in Min/Max slot order (X, Y, Z, M). Rounding is applied
// per §3: mins floor outward, maxes ceil outward to the next representable
// float32.
func (b *Box) Extend(coord []float64) {
	for i := 0; i < b.Dims && i < len(coord); i++ {
		v := float32(coord[i])
		if v < b.Min[i] {
			b.Min[i] = bits.NextFloat32Down(v)
		}
		if v > b.Max[i] {
			b.Max[i] = bits.NextFloat32Up(v)
		}
	}
}

// Contains reports whether coord (a Dims-length slice in Min/Max slot
// order) lies within [Min, Max] on every active dimension, after rounding.
// Used by the round-trip and bbox-correctness test properties.
func (b Box) Contains(coord []float64) bool {
	for i := 0; i < b.Dims && i < len(coord); i++ {
		v := float32(coord[i])
		if v < b.Min[i] || v > b.Max[i] {
			return false
		}
	}

	return true
}
