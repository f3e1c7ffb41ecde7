package outline

import (
	"fmt"
	"iter"
)

type PathElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// contour.
	MoveToKind PathElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a quadratic Bézier using the current location and the two points.
	QuadToKind
	// Draw a cubic Bézier using the current location and the three points.
	CubicToKind
	// Close off the contour.
	ClosePathKind
)

// PathElement is a drawing command. A valid sequence has a MoveTo at the
// beginning of each contour.
type PathElement struct {
	Kind PathElementKind
	P0   Point
	P1   Point
	P2   Point
}

func (el PathElement) String() string {
	var kind string
	switch el.Kind {
	case MoveToKind:
		kind = "MoveTo"
	case LineToKind:
		kind = "LineTo"
	case QuadToKind:
		kind = "QuadTo"
	case CubicToKind:
		kind = "CubicTo"
	case ClosePathKind:
		kind = "ClosePath"
	default:
		kind = "InvalidPathElement"
	}
	return fmt.Sprintf("%s(%s, %s, %s)", kind, el.P0, el.P1, el.P2)
}

func (el PathElement) Transform(aff Affine) PathElement {
	switch el.Kind {
	case MoveToKind:
		return MoveTo(el.P0.Transform(aff))
	case LineToKind:
		return LineTo(el.P0.Transform(aff))
	case QuadToKind:
		return QuadTo(el.P0.Transform(aff), el.P1.Transform(aff))
	case CubicToKind:
		return CubicTo(el.P0.Transform(aff), el.P1.Transform(aff), el.P2.Transform(aff))
	case ClosePathKind:
		return ClosePath()
	default:
		return PathElement{}
	}
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func QuadTo(p0, p1 Point) PathElement {
	return PathElement{Kind: QuadToKind, P0: p0, P1: p1}
}

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

// Pen builds contours from drawing commands. Every new point gets a fresh
// identifier from the process-wide supply; joints are shared between the
// segments meeting there.
//
// The zero value is ready to use.
type Pen struct {
	// Smooth is the authoring intent recorded on segments drawn from now on.
	Smooth bool

	contours []*Contour
	cur      *Contour
	start    CurvePoint
	last     CurvePoint
}

// Push executes a drawing command.
func (p *Pen) Push(el PathElement) {
	switch el.Kind {
	case MoveToKind:
		p.MoveTo(el.P0)
	case LineToKind:
		p.LineTo(el.P0)
	case QuadToKind:
		p.QuadTo(el.P0, el.P1)
	case CubicToKind:
		p.CubicTo(el.P0, el.P1, el.P2)
	case ClosePathKind:
		p.ClosePath()
	}
}

// MoveTo finishes the current contour, leaving it open, and starts a new one
// at pt.
func (p *Pen) MoveTo(pt Point) {
	p.finish()
	p.cur = &Contour{Open: true}
	p.start = NewCurvePoint(pt)
	p.last = p.start
}

// LineTo draws a line from the current point to pt.
//
// Drawing without a current contour starts one at the end of the previous
// contour, or at the origin.
func (p *Pen) LineTo(pt Point) { p.segment(pt) }

// QuadTo draws a quadratic Bézier with control point p1, ending at p2.
func (p *Pen) QuadTo(p1, p2 Point) { p.segment(p1, p2) }

// CubicTo draws a cubic Bézier with control points p1 and p2, ending at p3.
func (p *Pen) CubicTo(p1, p2, p3 Point) { p.segment(p1, p2, p3) }

// ClosePath closes the current contour. If the current point coincides with
// the contour's start, the last segment is joined to the first one;
// otherwise a line back to the start is drawn first.
func (p *Pen) ClosePath() {
	if p.cur == nil {
		return
	}
	if n := len(p.cur.curves); n > 0 {
		if p.last.Position == p.start.Position {
			b := p.cur.curves[n-1]
			b.points[len(b.points)-1].ID = p.start.ID
		} else {
			p.cur.PushCurve(NewBezierFromPoints(p.Smooth, p.last, p.start))
		}
		p.cur.Open = false
	}
	p.last = p.start
	p.finish()
}

// Contours finishes the current contour and returns all contours built so
// far. The pen is empty afterwards.
func (p *Pen) Contours() []*Contour {
	p.finish()
	out := p.contours
	p.contours = nil
	return out
}

func (p *Pen) segment(pts ...Point) {
	if p.cur == nil {
		pos := p.last.Position
		p.MoveTo(pos)
	}
	cps := make([]CurvePoint, 0, len(pts)+1)
	cps = append(cps, p.last)
	for _, pt := range pts {
		cps = append(cps, NewCurvePoint(pt))
	}
	p.cur.PushCurve(NewBezierFromPoints(p.Smooth, cps...))
	p.last = cps[len(cps)-1]
}

func (p *Pen) finish() {
	if p.cur == nil {
		return
	}
	if len(p.cur.curves) == 0 {
		p.cur.PushCurve(NewBezierFromPoints(false, p.start))
	}
	p.cur.RecalcContinuities()
	p.contours = append(p.contours, p.cur)
	p.cur = nil
}

// ContoursFromElements builds contours from a sequence of drawing commands.
func ContoursFromElements(els iter.Seq[PathElement]) []*Contour {
	var p Pen
	for el := range els {
		p.Push(el)
	}
	return p.Contours()
}

// Elements returns the drawing commands tracing c. Segments of degree 0 draw
// nothing. Segments of unsupported degree are skipped.
func (c *Contour) Elements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		for i, b := range c.curves {
			pts := b.points
			if len(pts) == 0 {
				continue
			}
			if i == 0 {
				if !yield(MoveTo(pts[0].Position)) {
					return
				}
			}
			var el PathElement
			switch len(pts) {
			case 1:
				continue
			case 2:
				el = LineTo(pts[1].Position)
			case 3:
				el = QuadTo(pts[1].Position, pts[2].Position)
			case 4:
				el = CubicTo(pts[1].Position, pts[2].Position, pts[3].Position)
			default:
				Logger().Warn("outline: skipping segment", "segment", i, "degree", len(pts)-1)
				continue
			}
			if !yield(el) {
				return
			}
		}
		if !c.Open && len(c.curves) > 0 {
			yield(ClosePath())
		}
	}
}
