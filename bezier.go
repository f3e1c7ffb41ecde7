package outline

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

// DefaultLUTSteps is the number of samples in a lookup table when the caller
// doesn't ask for a specific count.
const DefaultLUTSteps = 100

// DefaultHitTolerance is the distance within which a point counts as being on
// a curve.
const DefaultHitTolerance = 5.0

// CurvePoint is a control point of a Bezier segment.
type CurvePoint struct {
	ID       PointID
	Position Point
	// Degree is the degree of the owning segment, or -1 while the point isn't
	// part of one.
	Degree int
	// Continuity is the classification of the join at this point. It is only
	// set on the first and last point of a segment.
	Continuity Continuity
}

// NewCurvePoint returns a detached point at pos with a fresh identifier.
func NewCurvePoint(pos Point) CurvePoint {
	return CurvePoint{ID: NewPointID(), Position: pos, Degree: -1}
}

// Bezier is a segment of degree 0 to 3: a single point, a line, a quadratic
// or a cubic curve. Its first and last points are on the curve, the points in
// between are off-curve handles.
type Bezier struct {
	// Smooth records that the author wants the join at the end of this
	// segment to be smooth. Joins after segments that aren't smooth are
	// always classified as Positional.
	Smooth bool

	points        []CurvePoint
	continuityIn  Continuity
	continuityOut Continuity
	// lut caches LookupTable; nil when stale.
	lut []Point
}

// NewBezier returns a segment through pts, giving each point a fresh
// identifier.
func NewBezier(smooth bool, pts ...Point) *Bezier {
	b := &Bezier{Smooth: smooth}
	for _, pt := range pts {
		b.PushPoint(NewCurvePoint(pt))
	}
	return b
}

// NewBezierFromPoints returns a segment made of existing points, keeping
// their identifiers.
func NewBezierFromPoints(smooth bool, pts ...CurvePoint) *Bezier {
	b := &Bezier{Smooth: smooth}
	for _, cp := range pts {
		b.PushPoint(cp)
	}
	return b
}

func (b *Bezier) String() string {
	d, _ := b.Degree()
	return fmt.Sprintf("Bezier{degree: %d, smooth: %t, points: %v, in: %s, out: %s}",
		d, b.Smooth, b.positions(), b.continuityIn, b.continuityOut)
}

// Degree returns the segment's degree, which is one less than its number of
// points. It returns false for a segment without points.
func (b *Bezier) Degree() (int, bool) {
	if len(b.points) == 0 {
		return 0, false
	}
	return len(b.points) - 1, true
}

// Len returns the number of points.
func (b *Bezier) Len() int {
	return len(b.points)
}

// Point returns the i-th point.
func (b *Bezier) Point(i int) (CurvePoint, bool) {
	if i < 0 || i >= len(b.points) {
		return CurvePoint{}, false
	}
	return b.points[i], true
}

// Points returns a copy of the segment's points.
func (b *Bezier) Points() []CurvePoint {
	return slices.Clone(b.points)
}

// All iterates over the segment's points.
func (b *Bezier) All() iter.Seq2[int, CurvePoint] {
	return func(yield func(int, CurvePoint) bool) {
		for i, cp := range b.points {
			if !yield(i, cp) {
				return
			}
		}
	}
}

// ContinuityIn returns the classification of the join at the first point.
func (b *Bezier) ContinuityIn() Continuity { return b.continuityIn }

// ContinuityOut returns the classification of the join at the last point.
func (b *Bezier) ContinuityOut() Continuity { return b.continuityOut }

// First returns the first point.
func (b *Bezier) First() (CurvePoint, bool) {
	return b.Point(0)
}

// Last returns the last point.
func (b *Bezier) Last() (CurvePoint, bool) {
	return b.Point(len(b.points) - 1)
}

// PushPoint appends cp, raising the segment's degree by one.
func (b *Bezier) PushPoint(cp CurvePoint) {
	b.points = append(b.points, cp)
	b.syncDegree()
	b.invalidate()
}

// SetPosition moves the i-th point and reports whether it exists.
func (b *Bezier) SetPosition(i int, pt Point) bool {
	if i < 0 || i >= len(b.points) {
		return false
	}
	b.points[i].Position = pt
	b.invalidate()
	return true
}

// TransformPoint applies aff to the i-th point and returns the result.
func (b *Bezier) TransformPoint(i int, aff Affine) (CurvePoint, bool) {
	if i < 0 || i >= len(b.points) {
		return CurvePoint{}, false
	}
	b.SetPosition(i, b.points[i].Position.Transform(aff))
	return b.points[i], true
}

// Reverse reverses the order of the points. The incoming and outgoing
// continuities trade places, and so do the near and far handles of a
// Tangent join.
func (b *Bezier) Reverse() {
	slices.Reverse(b.points)
	in, out := b.continuityIn, b.continuityOut
	b.setContinuityIn(out.reversed())
	b.setContinuityOut(in.reversed())
	b.invalidate()
}

// CleanUp lowers degenerate curves to lines: a cubic whose handles sit on
// their endpoints, or a quadratic whose handle sits on either endpoint. It
// reports whether the segment changed.
func (b *Bezier) CleanUp() bool {
	pts := b.points
	switch len(pts) {
	case 4:
		if pts[0].Position != pts[1].Position || pts[2].Position != pts[3].Position {
			return false
		}
		b.points = []CurvePoint{pts[0], pts[3]}
	case 3:
		if pts[0].Position != pts[1].Position && pts[1].Position != pts[2].Position {
			return false
		}
		b.points = []CurvePoint{pts[0], pts[2]}
	default:
		return false
	}
	b.syncDegree()
	b.invalidate()
	return true
}

// Elevate turns a line or quadratic into a cubic tracing the same curve. The
// new handles of a line sit at a third and two thirds of it. A quadratic's
// handle keeps its identifier on the first new handle. It reports whether the
// segment changed.
func (b *Bezier) Elevate() bool {
	pts := b.points
	switch len(pts) {
	case 2:
		h1 := NewCurvePoint(pts[0].Position.Lerp(pts[1].Position, 1.0/3.0))
		h2 := NewCurvePoint(pts[0].Position.Lerp(pts[1].Position, 2.0/3.0))
		b.points = []CurvePoint{pts[0], h1, h2, pts[1]}
	case 3:
		a, c, e := pts[0].Position, pts[1].Position, pts[2].Position
		h1 := pts[1]
		h1.Position = Pt(2.0/3.0*c.X+1.0/3.0*a.X, 2.0/3.0*c.Y+1.0/3.0*a.Y)
		h2 := NewCurvePoint(Pt(2.0/3.0*c.X+1.0/3.0*e.X, 2.0/3.0*c.Y+1.0/3.0*e.Y))
		b.points = []CurvePoint{pts[0], h1, h2, pts[2]}
	default:
		return false
	}
	b.syncDegree()
	b.invalidate()
	return true
}

// Compute evaluates the segment at t ∈ [0, 1].
func (b *Bezier) Compute(t float64) (Point, error) {
	p := b.points
	switch len(p) {
	case 0:
		return Point{}, ErrEmptyCurve
	case 1:
		return p[0].Position, nil
	}
	if len(p) > 4 {
		return Point{}, fmt.Errorf("%w: %d", ErrUnsupportedDegree, len(p)-1)
	}
	switch t {
	case 0:
		return p[0].Position, nil
	case 1:
		return p[len(p)-1].Position, nil
	}

	mt := 1 - t
	switch len(p) {
	case 2:
		return p[0].Position.Lerp(p[1].Position, t), nil
	case 3:
		a := mt * mt
		bb := 2 * mt * t
		c := t * t
		return Point(Vec2(p[0].Position).Mul(a).
			Add(Vec2(p[1].Position).Mul(bb)).
			Add(Vec2(p[2].Position).Mul(c))), nil
	default:
		a := mt * mt * mt
		bb := 3 * mt * mt * t
		c := 3 * mt * t * t
		d := t * t * t
		return Point(Vec2(p[0].Position).Mul(a).
			Add(Vec2(p[1].Position).Mul(bb)).
			Add(Vec2(p[2].Position).Mul(c)).
			Add(Vec2(p[3].Position).Mul(d))), nil
	}
}

// Tangent returns the first derivative of the segment at t ∈ [0, 1].
func (b *Bezier) Tangent(t float64) (Vec2, error) {
	p := b.points
	switch len(p) {
	case 0:
		return Vec2{}, ErrEmptyCurve
	case 1:
		return Vec2{}, nil
	case 2:
		return p[1].Position.Sub(p[0].Position), nil
	case 3:
		d0 := p[1].Position.Sub(p[0].Position).Mul(2)
		d1 := p[2].Position.Sub(p[1].Position).Mul(2)
		return d0.Lerp(d1, t), nil
	case 4:
		mt := 1 - t
		d0 := p[1].Position.Sub(p[0].Position).Mul(3)
		d1 := p[2].Position.Sub(p[1].Position).Mul(3)
		d2 := p[3].Position.Sub(p[2].Position).Mul(3)
		return d0.Mul(mt * mt).Add(d1.Mul(2 * mt * t)).Add(d2.Mul(t * t)), nil
	default:
		return Vec2{}, fmt.Errorf("%w: %d", ErrUnsupportedDegree, len(p)-1)
	}
}

// LookupTable returns steps evenly spaced samples of the segment, t = 0 and
// t = 1 included. A non-positive steps selects DefaultLUTSteps. The table is
// cached until the sample count changes or a point moves. The returned slice
// must not be modified.
func (b *Bezier) LookupTable(steps int) ([]Point, error) {
	if steps <= 0 {
		steps = DefaultLUTSteps
	}
	if b.lut != nil && len(b.lut) == steps {
		return b.lut, nil
	}

	lut := make([]Point, steps)
	for i := range lut {
		var t float64
		if steps > 1 {
			t = float64(i) / float64(steps-1)
		}
		pt, err := b.Compute(t)
		if err != nil {
			b.lut = nil
			return nil, err
		}
		lut[i] = pt
	}
	b.lut = lut
	return lut, nil
}

// ApproxLength returns the length of the polyline through the default lookup
// table, or 0 for segments that can't be evaluated.
func (b *Bezier) ApproxLength() float64 {
	lut, err := b.LookupTable(DefaultLUTSteps)
	if err != nil {
		return 0
	}
	var l float64
	for i := 1; i < len(lut); i++ {
		l += lut[i-1].Distance(lut[i])
	}
	return l
}

// OnCurveQuery reports whether pt lies within tol of a sample of the curve.
func (b *Bezier) OnCurveQuery(pt Point, tol float64) bool {
	_, _, ok := b.NearestSample(pt, tol)
	return ok
}

// NearestSample returns the parameter and distance of the lookup table sample
// closest to pt, provided it is within tol.
func (b *Bezier) NearestSample(pt Point, tol float64) (t, dist float64, ok bool) {
	lut, err := b.LookupTable(DefaultLUTSteps)
	if err != nil {
		if len(b.points) > 0 {
			Logger().Warn("outline: can't hit-test segment", "err", err)
		}
		return 0, 0, false
	}
	best := -1
	bestDist := tol * tol
	for i, s := range lut {
		if d := s.DistanceSquared(pt); d <= bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	if len(lut) > 1 {
		t = float64(best) / float64(len(lut)-1)
	}
	return t, math.Sqrt(bestDist), true
}

// ControlBox returns the bounding box of the segment's points, which
// encloses the curve.
func (b *Bezier) ControlBox() Rect {
	r := emptyRect
	for _, cp := range b.points {
		r = r.UnionPoint(cp.Position)
	}
	return r
}

// Transform applies aff to every point.
func (b *Bezier) Transform(aff Affine) {
	for i := range b.points {
		b.points[i].Position = b.points[i].Position.Transform(aff)
	}
	b.invalidate()
}

// Clone returns a deep copy of b. Identifiers are kept.
func (b *Bezier) Clone() *Bezier {
	return &Bezier{
		Smooth:        b.Smooth,
		points:        slices.Clone(b.points),
		continuityIn:  b.continuityIn,
		continuityOut: b.continuityOut,
	}
}

func (b *Bezier) indexOf(id PointID) int {
	return slices.IndexFunc(b.points, func(cp CurvePoint) bool { return cp.ID == id })
}

func (b *Bezier) positions() []Point {
	out := make([]Point, len(b.points))
	for i, cp := range b.points {
		out[i] = cp.Position
	}
	return out
}

func (b *Bezier) syncDegree() {
	d := len(b.points) - 1
	for i := range b.points {
		b.points[i].Degree = d
	}
}

func (b *Bezier) invalidate() {
	b.lut = nil
}

// setContinuityIn records the join classification at the first point. A
// single point segment has no join to record on its point.
func (b *Bezier) setContinuityIn(c Continuity) {
	b.continuityIn = c
	if len(b.points) > 1 {
		b.points[0].Continuity = c
	}
}

func (b *Bezier) setContinuityOut(c Continuity) {
	b.continuityOut = c
	if len(b.points) > 1 {
		b.points[len(b.points)-1].Continuity = c
	}
}
