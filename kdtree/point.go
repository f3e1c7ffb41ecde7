package kdtree

import (
	"fmt"
	"math"
)

// Point is an integer position in the index.
type Point struct {
	X int64
	Y int64
}

// Pt returns the point (x, y).
func Pt(x, y int64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%d, %d)", pt.X, pt.Y)
}

// Coord returns the coordinate of pt on the given axis.
func (pt Point) Coord(axis Axis) int64 {
	if axis == AxisY {
		return pt.Y
	}
	return pt.X
}

// Axis selects a coordinate.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

func (a Axis) next() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

func axisForDepth(depth int) Axis {
	if depth%2 == 0 {
		return AxisX
	}
	return AxisY
}

// box is the exact cover of a set of points. The empty box has min > max so
// that it neither intersects nor is contained in anything.
type box struct {
	min Point
	max Point
}

var emptyBox = box{
	min: Point{math.MaxInt64, math.MaxInt64},
	max: Point{math.MinInt64, math.MinInt64},
}

// newBox returns the box spanned by two corners given in any order.
func newBox(a, b Point) box {
	return box{
		min: Point{min(a.X, b.X), min(a.Y, b.Y)},
		max: Point{max(a.X, b.X), max(a.Y, b.Y)},
	}
}

func (b box) isEmpty() bool {
	return b.min.X > b.max.X || b.min.Y > b.max.Y
}

func (b box) extend(pt Point) box {
	return box{
		min: Point{min(b.min.X, pt.X), min(b.min.Y, pt.Y)},
		max: Point{max(b.max.X, pt.X), max(b.max.Y, pt.Y)},
	}
}

func (b box) union(o box) box {
	return box{
		min: Point{min(b.min.X, o.min.X), min(b.min.Y, o.min.Y)},
		max: Point{max(b.max.X, o.max.X), max(b.max.Y, o.max.Y)},
	}
}

func (b box) contains(pt Point) bool {
	return pt.X >= b.min.X && pt.X <= b.max.X &&
		pt.Y >= b.min.Y && pt.Y <= b.max.Y
}

func (b box) containsBox(o box) bool {
	return !o.isEmpty() && b.contains(o.min) && b.contains(o.max)
}

func (b box) intersects(o box) bool {
	if b.isEmpty() || o.isEmpty() {
		return false
	}
	return b.min.X <= o.max.X && b.max.X >= o.min.X &&
		b.min.Y <= o.max.Y && b.max.Y >= o.min.Y
}
