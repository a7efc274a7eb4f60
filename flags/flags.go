// Package flags implements the geometry flag algebra shared by the GS2 and
// WKB codecs: the 1-byte on-disk geometry flags (gflags), the richer
// in-memory Flags type they decode to, and the companion 64-bit extended
// flags field.
package flags

import "github.com/nullform/gscore/errs"

// Flags bits (bit 0 is least significant).
const (
	zBit = 1 << iota
	mBit
	geodeticBit
	bboxBit
	extendedBit
	_ // reserved, keep bit5 free of the 2-bit version field below
	versionLowBit
	versionHighBit
)

const versionMask = versionLowBit | versionHighBit

// Flags is the in-memory counterpart of the single on-disk gflags byte.
// It is deliberately a superset: GS2 and WKB each read/write only the bits
// relevant to their wire format.
type Flags struct {
	HasZ        bool
	HasM        bool
	Geodetic    bool
	HasBBox     bool
	Extended    bool
	Version     uint8 // 2-bit version, 0-3
	HasSRID     bool  // derived, not stored in gflags; tracked for convenience
	SolidRing   bool  // extended-only: SOLID bit
	HasHash     bool  // extended-only: HAS_HASH bit
	CheckedOK   bool  // extended-only: CHECKED_VALID bit
	IsValidFlag bool  // extended-only: IS_VALID bit
}

// ExtFlags bit positions within the 64-bit extended flags field.
const (
	ExtSolid        uint64 = 1 << 0
	ExtCheckedValid uint64 = 1 << 1
	ExtIsValid      uint64 = 1 << 2
	ExtHasHash      uint64 = 1 << 3
)

// Decode converts a single on-disk gflags byte into the richer Flags type.
func Decode(b byte) Flags {
	return Flags{
		HasZ:     b&zBit != 0,
		HasM:     b&mBit != 0,
		Geodetic: b&geodeticBit != 0,
		HasBBox:  b&bboxBit != 0,
		Extended: b&extendedBit != 0,
		Version:  (b & versionMask) >> 6,
	}
}

// Encode packs a Flags value back into the single on-disk gflags byte.
// Extended-only sub-fields (SolidRing, HasHash, ...) are not representable
// here; use DecodeExt/EncodeExt for the companion 64-bit field.
func Encode(f Flags) byte {
	var b byte
	if f.HasZ {
		b |= zBit
	}
	if f.HasM {
		b |= mBit
	}
	if f.Geodetic {
		b |= geodeticBit
	}
	if f.HasBBox {
		b |= bboxBit
	}
	if f.Extended {
		b |= extendedBit
	}
	b |= (f.Version << 6) & versionMask

	return b
}

// DecodeExt unpacks the 64-bit extended flags field into a Flags value,
// filling in only the extended-only sub-fields. Callers should first call
// Decode on the gflags byte and then merge in DecodeExt's result when
// f.Extended is set.
func DecodeExt(ext uint64) Flags {
	return Flags{
		SolidRing:   ext&ExtSolid != 0,
		CheckedOK:   ext&ExtCheckedValid != 0,
		IsValidFlag: ext&ExtIsValid != 0,
		HasHash:     ext&ExtHasHash != 0,
	}
}

// EncodeExt packs a Flags value's extended-only sub-fields into the 64-bit
// extended flags field.
func EncodeExt(f Flags) uint64 {
	var ext uint64
	if f.SolidRing {
		ext |= ExtSolid
	}
	if f.CheckedOK {
		ext |= ExtCheckedValid
	}
	if f.IsValidFlag {
		ext |= ExtIsValid
	}
	if f.HasHash {
		ext |= ExtHasHash
	}

	return ext
}

// Ndims returns the number of active coordinate dimensions (2, 3, or 4)
// implied by the flags: X,Y always present, +1 for Z, +1 for M.
func Ndims(f Flags) int {
	n := 2
	if f.HasZ {
		n++
	}
	if f.HasM {
		n++
	}

	return n
}

// NdimsBox returns the number of dimensions stored in the bounding box.
// Geodetic boxes are always 3D (Earth-centered X,Y,Z) regardless of M.
func NdimsBox(f Flags) int {
	if f.Geodetic {
		return 3
	}

	return Ndims(f)
}

// HeaderSize computes the byte size of the GS2 header for the given flags:
// 8 bytes (varsize+srid+gflags) + 8 if EXTENDED + 2*ndims_box*4 if BBOX.
func HeaderSize(f Flags) int {
	size := 8
	if f.Extended {
		size += 8
	}
	if f.HasBBox {
		size += 2 * NdimsBox(f) * 4
	}

	return size
}

// srid sentinel: on-disk 0 means "unknown" SRID.
const UnknownSRID int32 = 0

// PackSRID packs a signed SRID value into the 3 on-disk header bytes,
// taking only the low 21 bits as the spec requires. SRID == 0 is the
// on-disk representation of "unknown".
func PackSRID(srid int32) [3]byte {
	u := uint32(srid) & 0x1FFFFF // 21 bits
	return [3]byte{byte(u), byte(u >> 8), byte(u >> 16)}
}

// UnpackSRID reverses PackSRID, sign-extending the 21-bit field back to a
// signed int32 and remapping on-disk 0 to UnknownSRID (itself 0, kept as a
// distinct named constant for readability at call sites).
func UnpackSRID(b [3]byte) int32 {
	u := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	// sign-extend bit 20
	if u&0x100000 != 0 {
		u |= 0xFFE00000
	}

	return int32(u)
}

// ValidateExtended returns an error if ext carries bits outside the known
// ExtSolid/ExtCheckedValid/ExtIsValid/ExtHasHash set. Reserved bits must be
// zero on input; this is a structural check, not a value-range check.
func ValidateExtended(ext uint64) error {
	const known = ExtSolid | ExtCheckedValid | ExtIsValid | ExtHasHash
	if ext&^known != 0 {
		return errs.ErrInvalidHeader
	}

	return nil
}
