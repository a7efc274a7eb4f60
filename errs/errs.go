// Package errs collects the sentinel errors returned by gscore's codecs.
//
// Callers should use errors.Is against these sentinels rather than comparing
// error strings; call sites wrap them with fmt.Errorf("%w: detail", ...) to
// add context such as an index or an offending value.
package errs

import "errors"

var (
	// ErrUnknownGeometryType is returned when a type discriminant in a
	// serialized buffer does not match any known geometry variant.
	ErrUnknownGeometryType = errors.New("gscore: unknown geometry type")

	// ErrUnsupportedGeometryType is returned when an operation is asked to
	// handle a geometry variant it does not support (e.g. a GS2 or WKB
	// codec given a Type that is neither a known shape nor a collection).
	ErrUnsupportedGeometryType = errors.New("gscore: unsupported geometry type")

	// ErrDisallowedChildType is returned by the GS2/WKB decoders when a
	// collection contains a child geometry type its parent does not admit.
	ErrDisallowedChildType = errors.New("gscore: disallowed child geometry type for collection")

	// ErrDimensionalityMismatch is returned when a geometry's Z/M flags do
	// not match the dimensionality of one of its coordinate arrays, or when
	// a polygon ring's dimensionality does not match its polygon.
	ErrDimensionalityMismatch = errors.New("gscore: dimensionality mismatch")

	// ErrSizeMismatch is a structural/fatal error: the encoder wrote a
	// different number of bytes than the sizer predicted. It signals a bug
	// in the sizer or the encoder, not bad input.
	ErrSizeMismatch = errors.New("gscore: internal size mismatch between sizer and writer")

	// ErrTruncatedBuffer is returned when a decode operation runs past the
	// end of the supplied byte buffer.
	ErrTruncatedBuffer = errors.New("gscore: truncated buffer")

	// ErrInvalidHeader is returned when a header cannot be parsed (reserved
	// GS2 extended-flag bits set, or a WKB root point marker that is not 0).
	ErrInvalidHeader = errors.New("gscore: invalid GS2 header")

	// ErrHashMismatch is returned when a decoded payload's xxhash extended
	// flag does not match the recomputed hash of the payload bytes.
	ErrHashMismatch = errors.New("gscore: payload content hash mismatch")

	// ErrCannotPeek is the explicit "cannot peek" signal from the bbox
	// peeker: the caller should fall back to reading a stored bbox or doing
	// a full decode-and-recompute.
	ErrCannotPeek = errors.New("gscore: geometry shape not eligible for bbox peek")

	// ErrNilGeometry is returned when an operation is given a NULL/zero
	// geometry where a concrete shape is required.
	ErrNilGeometry = errors.New("gscore: nil geometry")

	// ErrInvalidDegree is returned when a NURBS degree is outside [1, 10].
	ErrInvalidDegree = errors.New("gscore: NURBS degree out of range [1, 10]")

	// ErrInvalidWeights is returned when a NURBS weights array has the
	// wrong length or contains a non-positive weight.
	ErrInvalidWeights = errors.New("gscore: invalid NURBS weights")

	// ErrInvalidKnots is returned when a NURBS knot vector has the wrong
	// length or is not non-decreasing.
	ErrInvalidKnots = errors.New("gscore: invalid NURBS knot vector")

	// ErrTooFewControlPoints is returned when a NURBS curve has fewer
	// control points than degree+1, so no clamped uniform knot vector can
	// be synthesized.
	ErrTooFewControlPoints = errors.New("gscore: too few NURBS control points for degree")

	// ErrInvalidSegmentCount is returned when a polyline tessellation is
	// asked for fewer than 2 segments or more than the configured cap.
	ErrInvalidSegmentCount = errors.New("gscore: invalid tessellation segment count")

	// ErrInvalidDialectOption is returned when WKB encode options specify
	// more than one dialect, or more than one endianness.
	ErrInvalidDialectOption = errors.New("gscore: invalid WKB dialect/endianness option combination")

	// ErrWordSizeAssumption is a fatal, build-time-class error: it signals
	// that the host platform does not satisfy the codec's assumption that
	// uint32 is 4 bytes and float64 is 8 bytes on the wire.
	ErrWordSizeAssumption = errors.New("gscore: machine word size assumption violated")

	// ErrMaxDepthExceeded is returned when a geometry tree's collection
	// nesting depth exceeds the configured recursion guard.
	ErrMaxDepthExceeded = errors.New("gscore: geometry nesting depth exceeds limit")

	// ErrOutOfMemory is the sentinel for an allocator out-of-memory report.
	// No code path in this module returns it; there is no allocator hook.
	ErrOutOfMemory = errors.New("gscore: allocator reported out of memory")

	// ErrInvalidHex is returned when a WKB hex-flavor buffer has an odd
	// length or contains a non-hex-digit byte.
	ErrInvalidHex = errors.New("gscore: invalid hex-encoded WKB input")

	// ErrRingNotClosed is returned when a ring's first and last coordinates
	// do not match (e.g. a Triangle's single ring, §3).
	ErrRingNotClosed = errors.New("gscore: ring is not closed (first != last coordinate)")
)
