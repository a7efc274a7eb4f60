package gs2

import (
	"fmt"
	"io"

	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/geom"
	"github.com/nullform/gscore/internal/pool"
)

// EncodeTo writes g's GS2 encoding to w without returning an owned copy of
// the record. The staging buffer is drawn from a pool, so repeated calls
// (writing many records to a file or socket) avoid one allocation per
// record for the common case where the caller only needs the bytes on the
// wire, not a []byte they keep around.
func EncodeTo(w io.Writer, g *geom.Geometry) (int, error) {
	return EncodeToWithEngine(w, g, endian.GetLittleEndianEngine())
}

// EncodeToWithEngine is EncodeTo with an explicit byte order.
func EncodeToWithEngine(w io.Writer, g *geom.Geometry, engine endian.EndianEngine) (int, error) {
	if g == nil {
		return 0, errs.ErrNilGeometry
	}

	size, err := Size(g)
	if err != nil {
		return 0, err
	}

	bb := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(bb)

	bb.SetLength(0)
	bb.ExtendOrGrow(size)

	n, err := encodeInto(bb.Bytes(), g, engine)
	if err != nil {
		return 0, err
	}
	if n != size {
		return 0, fmt.Errorf("%w: predicted %d, wrote %d", errs.ErrSizeMismatch, size, n)
	}

	return w.Write(bb.Bytes())
}
