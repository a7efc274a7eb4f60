package gs2

import (
	"github.com/cespare/xxhash/v2"
	"github.com/nullform/gscore/endian"
	"github.com/nullform/gscore/errs"
	"github.com/nullform/gscore/flags"
	"github.com/nullform/gscore/geom"
)

// EncodeWithHash is Encode plus the HAS_HASH extended flag (§4.A): it sets
// HasHash and Extended on a copy of g's flags, encodes normally, then
// appends nothing extra to the wire format — the hash instead covers the
// payload bytes and is verified by DecodeVerifyHash, not carried in the
// record itself beyond the flag bit that says "the caller computed one".
//
// The actual 64-bit digest is returned alongside the encoded bytes so the
// caller can store or transmit it out of band (e.g. a column next to the
// GS2 blob), matching how collision-prone identifiers are hashed
// elsewhere in the surrounding stack.
func EncodeWithHash(g *geom.Geometry) (data []byte, hash uint64, err error) {
	withHash := *g
	withHash.Flags.Extended = true
	withHash.Flags.HasHash = true

	data, err = Encode(&withHash)
	if err != nil {
		return nil, 0, err
	}

	payloadOffset := flags.HeaderSize(withHash.Flags)
	if payloadOffset > len(data) {
		return nil, 0, errs.ErrSizeMismatch
	}

	return data, xxhash.Sum64(data[payloadOffset:]), nil
}

// DecodeVerifyHash decodes data and, if the record's HAS_HASH extended
// flag is set, verifies its payload against wantHash before returning the
// geometry. A mismatch returns ErrHashMismatch instead of a partially
// trusted tree.
func DecodeVerifyHash(data []byte, wantHash uint64) (*geom.Geometry, error) {
	if len(data) < 8 {
		return nil, errs.ErrTruncatedBuffer
	}

	f := flags.Decode(data[7])
	if f.Extended && len(data) >= 16 {
		ext := flags.DecodeExt(endian.GetLittleEndianEngine().Uint64(data[8:16]))
		payloadOffset := flags.HeaderSize(f)
		if ext.HasHash && payloadOffset <= len(data) {
			got := xxhash.Sum64(data[payloadOffset:])
			if got != wantHash {
				return nil, errs.ErrHashMismatch
			}
		}
	}

	return Decode(data)
}
