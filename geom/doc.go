// Package geom defines the in-memory geometry model shared by the GS2 and
// WKB codecs and the NURBS engine: a tagged-union Geometry type, the
// CoordArray contiguous coordinate block, and the outward-rounded Box
// bounding box.
//
// Geometry values are produced by decoders, constructors, or computation
// (nurbs.ToLineString). Ownership is exclusive; Geometry.Clone deep-copies
// every buffer. A geometry decoded "by reference" (CoordArray.Owned reports false)
// shares memory with the byte buffer it was decoded from and must not
// outlive that buffer or be mutated in place.
package geom
