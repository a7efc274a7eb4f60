// Package gs2 implements the GS2 wire format: a compact,
// PostgreSQL-VARLENA-compatible on-disk layout with an inline bounding box,
// optional extended flags, and a recursive geometry payload (§4.C-F).
//
// Size predicts the exact byte length of a geometry before allocation,
// Encode writes it into a freshly sized buffer, Decode reconstructs a
// geometry tree whose coordinate blocks borrow the decode buffer
// (zero-copy), and PeekBBox answers "what is this geometry's bounding box"
// for a handful of trivial shapes without building the tree at all.
//
//	size, err := gs2.Size(g)
//	buf, err := gs2.Encode(g)
//	g2, err := gs2.Decode(buf)
//	box, err := gs2.PeekBBox(buf)
package gs2
