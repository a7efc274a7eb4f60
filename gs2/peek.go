package gs2

import (
	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/flags"
	"github.com/nullform/gscore/geom"
	"github.com/nullform/gscore/internal/pool"
)

// PeekBBox extracts a bounding box from a handful of trivial GS2 shapes
// without building an in-memory tree (§4.F): a non-empty Point, a
// two-point LineString, a MultiPoint with exactly one sub-point, or a
// MultiLineString with exactly one two-point line. Anything else — or a
// geometry that already carries a stored bbox, or a geodetic geometry —
// returns ErrCannotPeek; the caller should fall back to reading the stored
// bbox or to a full Decode + ComputeBBox.
func PeekBBox(data []byte) (*geom.Box, error) {
	return PeekBBoxWithEngine(data, endian.GetLittleEndianEngine())
}

// PeekBBoxWithEngine is PeekBBox with an explicit source byte order.
func PeekBBoxWithEngine(data []byte, engine endian.EndianEngine) (*geom.Box, error) {
	if len(data) < 8 {
		return nil, errs.ErrTruncatedBuffer
	}

	f := flags.Decode(data[7])
	offset := 8

	if f.Extended {
		offset += 8
	}
	if f.HasBBox || f.Geodetic {
		return nil, errs.ErrCannotPeek
	}

	if len(data) < offset+8 {
		return nil, errs.ErrTruncatedBuffer
	}

	box, _, err := peekPayload(data[offset:], f, engine)
	if err != nil {
		return nil, err
	}

	return box, nil
}

func peekPayload(buf []byte, f flags.Flags, engine endian.EndianEngine) (*geom.Box, int, error) {
	typ := geom.Type(engine.Uint32(buf[0:4]))
	count := int(engine.Uint32(buf[4:8]))

	switch typ {
	case geom.Point:
		if count != 1 {
			return nil, 0, errs.ErrCannotPeek
		}
		return peekCoordsBox(buf[8:], f, 1, engine)

	case geom.LineString:
		if count != 2 {
			return nil, 0, errs.ErrCannotPeek
		}
		return peekCoordsBox(buf[8:], f, 2, engine)

	case geom.MultiPoint:
		if count != 1 {
			return nil, 0, errs.ErrCannotPeek
		}
		box, n, err := peekPayload(buf[8:], f, engine)
		if err != nil {
			return nil, 0, err
		}
		return box, 8 + n, nil

	case geom.MultiLineString:
		if count != 1 {
			return nil, 0, errs.ErrCannotPeek
		}
		box, n, err := peekPayload(buf[8:], f, engine)
		if err != nil {
			return nil, 0, err
		}
		return box, 8 + n, nil

	default:
		return nil, 0, errs.ErrCannotPeek
	}
}

func peekCoordsBox(buf []byte, f flags.Flags, npoints int, engine endian.EndianEngine) (*geom.Box, int, error) {
	coords, err := geom.DecodeCoordArray(buf, npoints, f.HasZ, f.HasM, engine)
	if err != nil {
		return nil, 0, err
	}

	dims := flags.NdimsBox(f)
	box := geom.NewBox(dims)
	coord, cleanup := pool.GetFloat64Slice(dims)
	defer cleanup()

	for i := 0; i < npoints; i++ {
		p := coords.At(i, endian.GetLittleEndianEngine())
		coord[0] = p.X
		coord[1] = p.Y
		idx := 2
		if f.HasZ && idx < dims {
			coord[idx] = p.Z
			idx++
		}
		if f.HasM && idx < dims {
			coord[idx] = p.M
		}
		box.Extend(coord)
	}

	consumed := 8 + npoints*geom.PointSize(f.HasZ, f.HasM)

	return &box, consumed, nil
}
