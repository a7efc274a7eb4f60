// Package nurbs implements NURBS curve construction, validation, uniform
// knot-vector synthesis, Cox-de-Boor basis evaluation, rational point
// evaluation, and polyline tessellation (§4.H).
//
// A typical pipeline: construct a curve with New, evaluate a point with
// Eval, or flatten the whole curve to a LineString geometry with
// ToLineString for rendering or further GS2/WKB encoding.
//
//	g, err := nurbs.New(srid, 2, points, nil, nil)
//	mid, err := nurbs.Eval(g, 0.5)
//	line, err := nurbs.ToLineString(g, 32)
package nurbs
