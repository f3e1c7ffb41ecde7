package outline

import (
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ContoursFromSegments builds closed contours from an outline loaded with
// [sfnt.Font.LoadGlyph]. Coordinates are converted from 26.6 fixed point
// without changing the orientation of the y axis.
func ContoursFromSegments(segs sfnt.Segments) []*Contour {
	var p Pen
	open := false
	for _, seg := range segs {
		a := seg.Args
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.ClosePath()
			}
			p.MoveTo(fromFixed(a[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			p.LineTo(fromFixed(a[0]))
			open = true
		case sfnt.SegmentOpQuadTo:
			p.QuadTo(fromFixed(a[0]), fromFixed(a[1]))
			open = true
		case sfnt.SegmentOpCubeTo:
			p.CubicTo(fromFixed(a[0]), fromFixed(a[1]), fromFixed(a[2]))
			open = true
		}
	}
	if open {
		p.ClosePath()
	}
	return p.Contours()
}

// SegmentsFromContours converts contours to sfnt segments, rounding to 26.6
// fixed point. sfnt outlines are implicitly closed, so open contours come
// back closed by a straight line.
func SegmentsFromContours(contours []*Contour) sfnt.Segments {
	var out sfnt.Segments
	for _, c := range contours {
		for el := range c.Elements() {
			var seg sfnt.Segment
			switch el.Kind {
			case MoveToKind:
				seg = sfnt.Segment{Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{toFixed(el.P0)}}
			case LineToKind:
				seg = sfnt.Segment{Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{toFixed(el.P0)}}
			case QuadToKind:
				seg = sfnt.Segment{Op: sfnt.SegmentOpQuadTo, Args: [3]fixed.Point26_6{toFixed(el.P0), toFixed(el.P1)}}
			case CubicToKind:
				seg = sfnt.Segment{Op: sfnt.SegmentOpCubeTo, Args: [3]fixed.Point26_6{toFixed(el.P0), toFixed(el.P1), toFixed(el.P2)}}
			default:
				continue
			}
			out = append(out, seg)
		}
	}
	return out
}

func toFixed(pt Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(pt.X * 64)),
		Y: fixed.Int26_6(math.Round(pt.Y * 64)),
	}
}

func fromFixed(pt fixed.Point26_6) Point {
	return Point{
		X: float64(pt.X) / 64,
		Y: float64(pt.Y) / 64,
	}
}
