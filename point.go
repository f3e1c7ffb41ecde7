package outline

import (
	"fmt"
	"math"

	"honnef.co/go/outline/kdtree"
)

// Point is a position in glyph space.
type Point struct {
	X float64
	Y float64
}

// IPoint is a truncated Point, used as the coordinate type of the point index.
type IPoint = kdtree.Point

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

func (pt Point) Translate(o Vec2) Point {
	return Point{
		X: pt.X + o.X,
		Y: pt.Y + o.Y,
	}
}

func (pt Point) Transform(aff Affine) Point {
	return Point{
		X: aff.N0*pt.X + aff.N2*pt.Y + aff.N4,
		Y: aff.N1*pt.X + aff.N3*pt.Y + aff.N5,
	}
}

// Sub computes pt−o.
// To subtract a vector from pt, use Translate and negate the vector.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Lerp linearly interpolates between two points.
func (pt Point) Lerp(o Point, t float64) Point {
	return Point(Vec2(pt).Lerp(Vec2(o), t))
}

// Midpoint returns the midpoint of two points.
func (pt Point) Midpoint(o Point) Point {
	return Point{
		X: 0.5 * (pt.X + o.X),
		Y: 0.5 * (pt.Y + o.Y),
	}
}

// Mirror reflects pt through center.
func (pt Point) Mirror(center Point) Point {
	return Point{
		X: 2*center.X - pt.X,
		Y: 2*center.Y - pt.Y,
	}
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return math.Hypot(x, y)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point) DistanceSquared(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return x*x + y*y
}

// Quantize truncates pt towards zero. Coordinates outside the int64 range
// saturate and NaN becomes 0.
func (pt Point) Quantize() IPoint {
	return IPoint{X: truncInt64(pt.X), Y: truncInt64(pt.Y)}
}

func truncInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}

// Collinear reports whether a, b and c lie on one line. The test compares the
// sine of the angle between b−a and c−b against tol, so it doesn't depend on
// the scale of the points. Coincident points are collinear with anything.
func Collinear(a, b, c Point, tol float64) bool {
	u := b.Sub(a)
	v := c.Sub(b)
	lu, lv := u.Hypot(), v.Hypot()
	if lu == 0 || lv == 0 {
		return true
	}
	return math.Abs(u.Cross(v)) <= tol*lu*lv
}
