package geom

import "github.com/nullform/gscore/flags"

// Type is the 4-byte wire type discriminant shared by the GS2 payload
// grammar (§4.D) and the WKB numeric type codes (§6). Values 1-17 follow
// the conventional OGC/PostGIS numbering; NurbsCurve uses a reserved
// numeric code outside that range, as the spec requires.
type Type uint32

const (
	Point Type = 1 + iota
	LineString
	Polygon
	MultiPoint
	MultiLineString
	MultiPolygon
	GeometryCollection
	CircularString
	CompoundCurve
	CurvePolygon
	MultiCurve
	MultiSurface
	_ // 13: reserved (OGC leaves 13-14 unused before PolyhedralSurface)
	_ // 14: reserved
	PolyhedralSurface
	TIN
	Triangle
)

// NurbsCurveType is the reserved numeric type code for NurbsCurve, used on
// both the GS2 and WKB wire formats. It intentionally falls outside the
// 1-17 OGC range.
const NurbsCurveType Type = 100

// String returns the type's name, used in error messages and in the WKB
// unsupported-type error (§4.G).
func (t Type) String() string {
	switch t {
	case Point:
		return "Point"
	case LineString:
		return "LineString"
	case Polygon:
		return "Polygon"
	case MultiPoint:
		return "MultiPoint"
	case MultiLineString:
		return "MultiLineString"
	case MultiPolygon:
		return "MultiPolygon"
	case GeometryCollection:
		return "GeometryCollection"
	case CircularString:
		return "CircularString"
	case CompoundCurve:
		return "CompoundCurve"
	case CurvePolygon:
		return "CurvePolygon"
	case MultiCurve:
		return "MultiCurve"
	case MultiSurface:
		return "MultiSurface"
	case PolyhedralSurface:
		return "PolyhedralSurface"
	case TIN:
		return "TIN"
	case Triangle:
		return "Triangle"
	case NurbsCurveType:
		return "NurbsCurve"
	default:
		return "Unknown"
	}
}

// IsCollection reports whether t is one of the sequence-of-children
// variants, as opposed to a leaf coordinate-bearing shape.
func (t Type) IsCollection() bool {
	_, ok := admissibleChildren[t]
	return ok
}

// admissibleChildren encodes the collection admissibility table from §6:
// which child Types a parent collection Type may contain.
var admissibleChildren = map[Type]map[Type]bool{
	MultiPoint:         {Point: true},
	MultiLineString:    {LineString: true},
	MultiPolygon:       {Polygon: true, Triangle: true},
	MultiCurve:         {LineString: true, CircularString: true, CompoundCurve: true},
	MultiSurface:       {Polygon: true, CurvePolygon: true},
	CurvePolygon:       {LineString: true, CircularString: true, CompoundCurve: true},
	CompoundCurve:      {LineString: true, CircularString: true},
	PolyhedralSurface:  {Polygon: true},
	TIN:                {Triangle: true},
	GeometryCollection: nil, // any type admitted; checked specially below
}

// AdmitsChild reports whether parent may contain a child of type child, per
// the collection admissibility table in §6. GeometryCollection admits any
// type. Non-collection parents admit nothing.
func AdmitsChild(parent, child Type) bool {
	if parent == GeometryCollection {
		return true
	}

	set, ok := admissibleChildren[parent]
	if !ok {
		return false
	}

	return set[child]
}

// NurbsCurve is the NURBS variant's payload: a degree, a control-point
// coordinate array, and optional weights/knots. See package nurbs for
// construction, validation, and evaluation.
type NurbsCurve struct {
	Degree  int
	Points  CoordArray // control points, dimensionality per Degree/HasZ/HasM
	Weights []float64  // optional, len == Points.NPoints() when present
	Knots   []float64  // optional, len == Points.NPoints()+Degree+1 when present
}

// Clone deep-copies a NurbsCurve's control points, weights, and knots.
func (n NurbsCurve) Clone() NurbsCurve {
	out := NurbsCurve{Degree: n.Degree, Points: n.Points.Clone()}
	if n.Weights != nil {
		out.Weights = append([]float64(nil), n.Weights...)
	}
	if n.Knots != nil {
		out.Knots = append([]float64(nil), n.Knots...)
	}

	return out
}

// Geometry is the tagged-union in-memory geometry tree (§3). Exactly the
// fields relevant to Type are populated; see the comment on each field.
type Geometry struct {
	Type  Type
	SRID  int32
	Flags flags.Flags
	BBox  *Box // optional cached bounding box

	// Coords holds the coordinate sequence for Point, LineString, and
	// CircularString. Point carries 0 or 1 coordinates.
	Coords CoordArray

	// Rings holds ring 0 (outer) plus holes for Polygon, and the single
	// closed ring (first == last) for Triangle.
	Rings []CoordArray

	// Geometries holds the ordered children of a collection variant
	// (MultiPoint, MultiLineString, MultiPolygon, MultiCurve, MultiSurface,
	// CompoundCurve, CurvePolygon, GeometryCollection, PolyhedralSurface,
	// TIN).
	Geometries []*Geometry

	// Nurbs holds the NurbsCurve payload when Type == NurbsCurveType.
	Nurbs *NurbsCurve
}

// IsEmpty reports whether the geometry carries no coordinates: a Point
// with 0 coordinates, a LineString/CircularString/Triangle with 0 points,
// a Polygon with 0 rings, a collection with 0 children, or a NurbsCurve
// with 0 control points.
func (g *Geometry) IsEmpty() bool {
	switch g.Type {
	case Point, LineString, CircularString:
		return g.Coords.NPoints() == 0
	case Polygon:
		return len(g.Rings) == 0
	case Triangle:
		return len(g.Rings) == 0 || g.Rings[0].NPoints() == 0
	case NurbsCurveType:
		return g.Nurbs == nil || g.Nurbs.Points.NPoints() == 0
	default:
		return len(g.Geometries) == 0
	}
}

// Clone deep-copies the geometry tree: every coordinate block, ring,
// child, and NURBS buffer is copied, so the result shares no memory with
// any source byte buffer the receiver may have been decoded from.
func (g *Geometry) Clone() *Geometry {
	if g == nil {
		return nil
	}

	out := &Geometry{Type: g.Type, SRID: g.SRID, Flags: g.Flags, Coords: g.Coords.Clone()}
	if g.BBox != nil {
		b := *g.BBox
		out.BBox = &b
	}
	if g.Rings != nil {
		out.Rings = make([]CoordArray, len(g.Rings))
		for i, r := range g.Rings {
			out.Rings[i] = r.Clone()
		}
	}
	if g.Geometries != nil {
		out.Geometries = make([]*Geometry, len(g.Geometries))
		for i, c := range g.Geometries {
			out.Geometries[i] = c.Clone()
		}
	}
	if g.Nurbs != nil {
		n := g.Nurbs.Clone()
		out.Nurbs = &n
	}

	return out
}
