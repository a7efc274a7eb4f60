package wkb

import "github.com/nullform/gscore/geom"

// Extended dialect high-bit flags within the 4-byte type code.
const (
	extFlagZ    uint32 = 0x80000000
	extFlagM    uint32 = 0x40000000
	extFlagSRID uint32 = 0x20000000
)

// ISO dialect additive type-code offsets.
const (
	isoOffsetZ  uint32 = 1000
	isoOffsetM  uint32 = 2000
	isoOffsetZM uint32 = 3000
)

// dialectDims reports the Z/M flags actually honored on the wire for typ
// under dialect: SFSQL always drops Z/M (2D only, per the historical
// SFSQL-is-2D-only asymmetry — the writer discards them even if the
// in-memory geometry carries them); NurbsCurve always uses ISO offsets
// regardless of the outer dialect; everything else honors the geometry's
// own flags under ISO/Extended.
func dialectDims(dialect Dialect, typ geom.Type, hasZ, hasM bool) (bool, bool) {
	if typ == geom.NurbsCurveType {
		return hasZ, hasM
	}
	if dialect == SFSQL {
		return false, false
	}

	return hasZ, hasM
}

// needsSRID implements the "needs SRID iff EXTENDED ∧ has_srid ∧ ¬NO_SRID"
// rule (§9 Open Questions).
func needsSRID(cfg *config, srid int32, hasSRID bool) bool {
	return cfg.dialect == Extended && hasSRID && srid != 0 && !cfg.noSRID
}

// typeCode computes the 4-byte WKB type code for typ under dialect, given
// the Z/M flags actually honored (post dialectDims) and whether an SRID
// flag must be set (Extended only). NurbsCurve always takes the ISO-offset
// branch for Z/M regardless of dialect, per the dialect dimension rule,
// but still sets the Extended SRID high bit on top of that ISO offset when
// srid is requested — SRID presence and the Z/M encoding are independent
// concerns, and NurbsCurveType (100) sits well below extFlagSRID, so the
// two never collide.
func typeCode(dialect Dialect, typ geom.Type, hasZ, hasM, srid bool) uint32 {
	base := uint32(typ)

	if dialect == Extended && typ != geom.NurbsCurveType {
		code := base
		if hasZ {
			code |= extFlagZ
		}
		if hasM {
			code |= extFlagM
		}
		if srid {
			code |= extFlagSRID
		}

		return code
	}

	var code uint32
	switch {
	case hasZ && hasM:
		code = base + isoOffsetZM
	case hasZ:
		code = base + isoOffsetZ
	case hasM:
		code = base + isoOffsetM
	default:
		code = base
	}

	if typ == geom.NurbsCurveType && dialect == Extended && srid {
		code |= extFlagSRID
	}

	return code
}

// decodeTypeCode reverses typeCode, recovering the base geometry type, the
// Z/M flags honored on the wire, and whether an SRID field follows the
// type code.
//
// Four disjoint shapes cover every code this package produces:
//   - extFlagZ or extFlagM set: a non-NURBS Extended code: base type plus
//     Z/M/SRID high bits.
//   - extFlagSRID set alone, remainder >= NurbsCurveType: a NURBS ISO
//     offset with the Extended SRID bit layered on top (typeCode's NURBS
//     branch); the remainder still decodes via the ISO additive offsets.
//   - extFlagSRID set alone, remainder < NurbsCurveType: a non-NURBS 2D
//     Extended code with SRID and no Z/M.
//   - no high bits set: plain ISO/SFSQL additive offset, NURBS or not.
func decodeTypeCode(code uint32) (typ geom.Type, hasZ, hasM, hasSRIDFlag bool) {
	const extFlagsMask = extFlagZ | extFlagM | extFlagSRID

	if code&(extFlagZ|extFlagM) != 0 {
		return geom.Type(code &^ extFlagsMask), code&extFlagZ != 0, code&extFlagM != 0, code&extFlagSRID != 0
	}

	if code&extFlagSRID != 0 {
		rest := code &^ extFlagSRID
		if rest >= uint32(geom.NurbsCurveType) {
			switch {
			case rest >= uint32(geom.NurbsCurveType)+isoOffsetZM:
				return geom.Type(rest - isoOffsetZM), true, true, true
			case rest >= uint32(geom.NurbsCurveType)+isoOffsetM:
				return geom.Type(rest - isoOffsetM), false, true, true
			case rest >= uint32(geom.NurbsCurveType)+isoOffsetZ:
				return geom.Type(rest - isoOffsetZ), true, false, true
			default:
				return geom.Type(rest), false, false, true
			}
		}

		return geom.Type(rest), false, false, true
	}

	switch {
	case code >= isoOffsetZM:
		return geom.Type(code - isoOffsetZM), true, true, false
	case code >= isoOffsetM:
		return geom.Type(code - isoOffsetM), false, true, false
	case code >= isoOffsetZ:
		return geom.Type(code - isoOffsetZ), true, false, false
	default:
		return geom.Type(code), false, false, false
	}
}
