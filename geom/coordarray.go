package geom

import (
	"math"

	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/errs"
)

// Point4D is the fully expanded coordinate tuple returned by CoordArray.At.
// Z and M are zeroed when the array does not carry that dimension.
type Point4D struct {
	X, Y, Z, M float64
}

// PointSize returns the byte size of a single coordinate in a block with
// the given dimensionality: (2 + hasZ + hasM) * 8.
func PointSize(hasZ, hasM bool) int {
	n := 2
	if hasZ {
		n++
	}
	if hasM {
		n++
	}

	return n * 8
}

// CoordArray is a contiguous coordinate buffer of known dimensionality.
// It either owns its backing bytes (constructed by value) or borrows them
// from a decode source buffer (constructed by reference); Owned reports
// which.
type CoordArray struct {
	data    []byte
	npoints int
	hasZ    bool
	hasM    bool
	owned   bool
}

// NewCoordArray allocates an owned, zero-filled CoordArray for npoints
// points of the given dimensionality.
func NewCoordArray(npoints int, hasZ, hasM bool) CoordArray {
	return CoordArray{
		data:    make([]byte, npoints*PointSize(hasZ, hasM)),
		npoints: npoints,
		hasZ:    hasZ,
		hasM:    hasM,
		owned:   true,
	}
}

// BorrowCoordArray constructs a CoordArray that references data in place
// without copying. The returned array must not outlive data and must not
// be mutated; use Clone first if an owned, mutable copy is required.
func BorrowCoordArray(data []byte, npoints int, hasZ, hasM bool) (CoordArray, error) {
	want := npoints * PointSize(hasZ, hasM)
	if len(data) < want {
		return CoordArray{}, errs.ErrTruncatedBuffer
	}

	return CoordArray{data: data[:want], npoints: npoints, hasZ: hasZ, hasM: hasM, owned: false}, nil
}

// DecodeCoordArray reads npoints coordinates from data written in the given
// byte order. CoordArray's backing bytes are always little-endian
// internally; when engine is little-endian this is a zero-copy borrow
// (BorrowCoordArray), otherwise each coordinate is byte-swapped once into a
// freshly owned array.
func DecodeCoordArray(data []byte, npoints int, hasZ, hasM bool, engine endian.EndianEngine) (CoordArray, error) {
	if engine == endian.GetLittleEndianEngine() {
		return BorrowCoordArray(data, npoints, hasZ, hasM)
	}

	want := npoints * PointSize(hasZ, hasM)
	if len(data) < want {
		return CoordArray{}, errs.ErrTruncatedBuffer
	}

	src, err := BorrowCoordArray(data, npoints, hasZ, hasM)
	if err != nil {
		return CoordArray{}, err
	}

	owned := NewCoordArray(npoints, hasZ, hasM)
	native := endian.GetLittleEndianEngine()
	for i := 0; i < npoints; i++ {
		owned.Set(i, src.At(i, engine), native)
	}

	return owned, nil
}

// NPoints returns the number of coordinates in the array.
func (c CoordArray) NPoints() int { return c.npoints }

// HasZ reports whether the array carries a Z dimension.
func (c CoordArray) HasZ() bool { return c.hasZ }

// HasM reports whether the array carries an M dimension.
func (c CoordArray) HasM() bool { return c.hasM }

// Owned reports whether the array owns its backing bytes (constructed by
// value) as opposed to borrowing them from a decode source buffer.
func (c CoordArray) Owned() bool { return c.owned }

// Bytes returns the raw coordinate bytes. The caller must not retain or
// mutate the slice beyond the lifetime rules documented on CoordArray.
func (c CoordArray) Bytes() []byte { return c.data }

// PointSize returns the byte size of one coordinate in this array.
func (c CoordArray) PointSize() int { return PointSize(c.hasZ, c.hasM) }

// At returns the i-th point, expanded to 4D with Z/M zeroed when absent.
// Panics if i is out of range, matching the teacher corpus's index-access
// conventions for fixed-layout binary data.
func (c CoordArray) At(i int, engine endian.EndianEngine) Point4D {
	if i < 0 || i >= c.npoints {
		panic("geom: coordinate index out of range")
	}

	step := c.PointSize()
	off := i * step
	p := Point4D{
		X: math.Float64frombits(engine.Uint64(c.data[off : off+8])),
		Y: math.Float64frombits(engine.Uint64(c.data[off+8 : off+16])),
	}
	next := off + 16
	if c.hasZ {
		p.Z = math.Float64frombits(engine.Uint64(c.data[next : next+8]))
		next += 8
	}
	if c.hasM {
		p.M = math.Float64frombits(engine.Uint64(c.data[next : next+8]))
	}

	return p
}

// Set writes the i-th point into an owned array. Panics if the array is
// borrowed (mutation in place is forbidden for referenced data) or i is
// out of range.
func (c CoordArray) Set(i int, p Point4D, engine endian.EndianEngine) {
	if !c.owned {
		panic("geom: cannot mutate a borrowed CoordArray in place")
	}
	if i < 0 || i >= c.npoints {
		panic("geom: coordinate index out of range")
	}

	step := c.PointSize()
	off := i * step
	engine.PutUint64(c.data[off:off+8], math.Float64bits(p.X))
	engine.PutUint64(c.data[off+8:off+16], math.Float64bits(p.Y))
	next := off + 16
	if c.hasZ {
		engine.PutUint64(c.data[next:next+8], math.Float64bits(p.Z))
		next += 8
	}
	if c.hasM {
		engine.PutUint64(c.data[next:next+8], math.Float64bits(p.M))
	}
}

// Clone returns an owned deep copy of the array, safe to outlive any
// source buffer the receiver may have borrowed from.
func (c CoordArray) Clone() CoordArray {
	cp := make([]byte, len(c.data))
	copy(cp, c.data)

	return CoordArray{data: cp, npoints: c.npoints, hasZ: c.hasZ, hasM: c.hasM, owned: true}
}

// WriteTo writes the array's points into buf using engine's byte order,
// returning the number of bytes written. CoordArray bytes are always
// stored little-endian internally; when engine is also little-endian this
// degenerates to a single bulk copy, otherwise each coordinate is
// re-encoded one double at a time (§4.G's byte-swap fallback).
func (c CoordArray) WriteTo(buf []byte, engine endian.EndianEngine) int {
	n := c.NPoints() * c.PointSize()
	native := endian.GetLittleEndianEngine()
	if engine == native {
		copy(buf[:n], c.data)
		return n
	}

	off := 0
	for i := 0; i < c.npoints; i++ {
		p := c.At(i, native)
		engine.PutUint64(buf[off:off+8], math.Float64bits(p.X))
		engine.PutUint64(buf[off+8:off+16], math.Float64bits(p.Y))
		next := off + 16
		if c.hasZ {
			engine.PutUint64(buf[next:next+8], math.Float64bits(p.Z))
			next += 8
		}
		if c.hasM {
			engine.PutUint64(buf[next:next+8], math.Float64bits(p.M))
			next += 8
		}
		off = next
	}

	return n
}

// BulkCopy copies src's coordinate bytes into dst, byte-for-byte, when both
// arrays share the same dimensionality and the caller has already ensured
// a matching byte order (the fast wire-format path for §4.G). It returns
// false, doing nothing, if the dimensionalities differ so the caller can
// fall back to a per-coordinate, endian-aware copy.
func BulkCopy(dst, src CoordArray) bool {
	if dst.hasZ != src.hasZ || dst.hasM != src.hasM || dst.npoints != src.npoints {
		return false
	}
	if !dst.owned {
		panic("geom: cannot bulk-copy into a borrowed CoordArray")
	}

	copy(dst.data, src.data)

	return true
}
