// Package wkb implements the Well-Known Binary family of geometry
// encodings: the original SFSQL dialect, the ISO 13249-3 dialect (Z/M via
// additive type-code offsets), and an extended dialect carrying SRID and
// Z/M via high-bit flags in the type code, plus a hex-encoded flavor of
// any of the three.
//
// Size and Encode follow the sizer-before-encoder split used throughout
// gscore: Size predicts the exact output length, Encode allocates once and
// writes, and a mismatch between the two is a fatal internal error rather
// than a silent truncation.
package wkb

import (
	"unsafe"

	"github.com/nullform/gscore/errs"
)

func init() {
	if unsafe.Sizeof(uint32(0)) != 4 || unsafe.Sizeof(float64(0)) != 8 {
		panic(errs.ErrWordSizeAssumption)
	}
}
