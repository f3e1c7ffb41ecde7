package outline

import "fmt"

// PointType is the role of a point in the flat on/off-curve representation
// used by font files.
type PointType uint8

const (
	// OffCurve points are handles of the next on-curve point's segment.
	OffCurve PointType = iota
	// Move starts an open contour.
	Move
	// Line ends a straight segment.
	Line
	// Curve ends a cubic segment, preceded by two handles.
	Curve
	// QCurve ends a quadratic segment. Runs of several handles imply
	// on-curve points halfway between consecutive handles.
	QCurve
)

func (t PointType) String() string {
	switch t {
	case OffCurve:
		return "offcurve"
	case Move:
		return "move"
	case Line:
		return "line"
	case Curve:
		return "curve"
	case QCurve:
		return "qcurve"
	default:
		return fmt.Sprintf("PointType(%d)", t)
	}
}

// FlatPoint is a point of a contour in file order.
type FlatPoint struct {
	// ID is the point's identifier. NilID gets a fresh one on import.
	ID       PointID
	Position Point
	Type     PointType
	Smooth   bool
}

// ContourFromFlat builds a contour from points in file order. A contour that
// starts with a Move point is open, any other is closed; a closed contour
// starts after its last on-curve point, which is where [Contour.Flat] puts
// the start of the first segment.
func ContourFromFlat(pts []FlatPoint) (*Contour, error) {
	if len(pts) == 0 {
		return &Contour{}, nil
	}
	pts = withIDs(pts)

	c := &Contour{Open: pts[0].Type == Move}
	var (
		order []FlatPoint
		start FlatPoint
	)
	if c.Open {
		start = pts[0]
		order = pts[1:]
	} else {
		k := -1
		for i := len(pts) - 1; i >= 0; i-- {
			if pts[i].Type != OffCurve {
				k = i
				break
			}
		}
		if k < 0 {
			return nil, fmt.Errorf("%w: closed contour without on-curve points", ErrMalformedContour)
		}
		start = pts[k]
		order = append(append(order, pts[k+1:]...), pts[:k+1]...)
	}

	if len(order) == 0 {
		c.PushCurve(NewBezierFromPoints(false, flatCurvePoint(start)))
		return c, nil
	}

	cur := start
	var handles []FlatPoint
	for i, p := range order {
		switch p.Type {
		case OffCurve:
			handles = append(handles, p)
			continue
		case Move:
			return nil, fmt.Errorf("%w: move at position %d", ErrMalformedContour, i)
		case Line:
			if len(handles) > 0 {
				return nil, fmt.Errorf("%w: line preceded by %d off-curve points", ErrMalformedContour, len(handles))
			}
			c.PushCurve(flatSegment(p.Smooth, cur, p))
		case Curve:
			if len(handles) > 2 {
				return nil, fmt.Errorf("%w: curve with %d off-curve points", ErrUnsupportedDegree, len(handles))
			}
			c.PushCurve(flatSegment(p.Smooth, append(append([]FlatPoint{cur}, handles...), p)...))
		case QCurve:
			for _, b := range quadSegments(cur, handles, p) {
				c.PushCurve(b)
			}
		default:
			return nil, fmt.Errorf("%w: unknown point type %s", ErrMalformedContour, p.Type)
		}
		cur = p
		handles = handles[:0]
	}
	if len(handles) > 0 {
		return nil, fmt.Errorf("%w: open contour ends with %d off-curve points", ErrMalformedContour, len(handles))
	}

	c.RecalcContinuities()
	return c, nil
}

// Flat returns the contour's points in file order. It is the inverse of
// [ContourFromFlat] for contours of segments of degree 3 or less. Segments of
// degree 0 only contribute to single-point contours.
func (c *Contour) Flat() []FlatPoint {
	if len(c.curves) == 0 {
		return nil
	}
	var out []FlatPoint
	first := c.curves[0].points
	if c.Open || (len(c.curves) == 1 && len(first) == 1) {
		if len(first) > 0 {
			out = append(out, FlatPoint{ID: first[0].ID, Position: first[0].Position, Type: Move})
		}
	}
	for i, b := range c.curves {
		pts := b.points
		if len(pts) < 2 {
			continue
		}
		var typ PointType
		switch len(pts) {
		case 2:
			typ = Line
		case 3:
			typ = QCurve
		default:
			typ = Curve
		}
		for _, h := range pts[1 : len(pts)-1] {
			out = append(out, FlatPoint{ID: h.ID, Position: h.Position, Type: OffCurve})
		}
		end := pts[len(pts)-1]
		if len(pts) > 4 {
			Logger().Warn("outline: exporting segment as a curve", "segment", i, "degree", len(pts)-1)
		}
		out = append(out, FlatPoint{ID: end.ID, Position: end.Position, Type: typ, Smooth: b.Smooth})
	}
	return out
}

func withIDs(pts []FlatPoint) []FlatPoint {
	var out []FlatPoint
	for i, p := range pts {
		if p.ID != NilID {
			continue
		}
		if out == nil {
			out = append([]FlatPoint(nil), pts...)
		}
		out[i].ID = NewPointID()
	}
	if out == nil {
		return pts
	}
	return out
}

func flatCurvePoint(p FlatPoint) CurvePoint {
	return CurvePoint{ID: p.ID, Position: p.Position, Degree: -1}
}

func flatSegment(smooth bool, pts ...FlatPoint) *Bezier {
	cps := make([]CurvePoint, len(pts))
	for i, p := range pts {
		cps[i] = flatCurvePoint(p)
	}
	return NewBezierFromPoints(smooth, cps...)
}

// quadSegments splits a run of quadratic handles between from and to into
// quadratic segments, inserting the implied on-curve points.
func quadSegments(from FlatPoint, handles []FlatPoint, to FlatPoint) []*Bezier {
	switch len(handles) {
	case 0:
		return []*Bezier{flatSegment(to.Smooth, from, to)}
	case 1:
		return []*Bezier{flatSegment(to.Smooth, from, handles[0], to)}
	}
	out := make([]*Bezier, 0, len(handles))
	cur := flatCurvePoint(from)
	for i, h := range handles {
		var end CurvePoint
		smooth := true
		if i == len(handles)-1 {
			end = flatCurvePoint(to)
			smooth = to.Smooth
		} else {
			end = NewCurvePoint(h.Position.Midpoint(handles[i+1].Position))
		}
		out = append(out, NewBezierFromPoints(smooth, cur, flatCurvePoint(h), end))
		cur = end
	}
	return out
}
