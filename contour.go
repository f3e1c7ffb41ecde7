package outline

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

// Contour is a sequence of Bezier segments, each starting where the previous
// one ends. The joint between two segments appears in both of them, with the
// same ID. A closed contour's last segment ends at the first segment's start.
//
// The zero value is an empty closed contour.
type Contour struct {
	Open bool

	curves []*Bezier

	// Cached dominant segment, valid if dominantOK.
	dominant    int
	dominantLen float64
	dominantOK  bool
}

// NewContour returns a contour made of curves. It classifies all joins.
func NewContour(open bool, curves ...*Bezier) *Contour {
	c := &Contour{Open: open}
	for _, b := range curves {
		c.PushCurve(b)
	}
	c.RecalcContinuities()
	return c
}

// Len returns the number of segments.
func (c *Contour) Len() int {
	return len(c.curves)
}

// Segment returns the i-th segment.
func (c *Contour) Segment(i int) (*Bezier, bool) {
	if i < 0 || i >= len(c.curves) {
		return nil, false
	}
	return c.curves[i], true
}

// Segments iterates over the contour's segments.
func (c *Contour) Segments() iter.Seq2[int, *Bezier] {
	return func(yield func(int, *Bezier) bool) {
		for i, b := range c.curves {
			if !yield(i, b) {
				return
			}
		}
	}
}

// Point returns the point at addr. addr.Contour is not checked; the caller
// picks the contour.
func (c *Contour) Point(addr GlyphPointIndex) (CurvePoint, error) {
	s, i, err := c.locate(addr)
	if err != nil {
		return CurvePoint{}, err
	}
	return c.curves[s].points[i], nil
}

// ControlBox returns the bounding box of all points.
func (c *Contour) ControlBox() Rect {
	r := emptyRect
	for _, b := range c.curves {
		r = r.Union(b.ControlBox())
	}
	return r
}

// Clone returns a deep copy of c. Identifiers are kept.
func (c *Contour) Clone() *Contour {
	out := &Contour{
		Open:        c.Open,
		curves:      make([]*Bezier, len(c.curves)),
		dominant:    c.dominant,
		dominantLen: c.dominantLen,
		dominantOK:  c.dominantOK,
	}
	for i, b := range c.curves {
		out.curves[i] = b.Clone()
	}
	return out
}

// Transform applies aff to every point, without regard for continuity. Use it
// to place whole contours, such as those of components.
func (c *Contour) Transform(aff Affine) {
	for _, b := range c.curves {
		b.Transform(aff)
	}
	c.dominantOK = false
}

// PushCurve appends b and classifies its join with the previous segment.
func (c *Contour) PushCurve(b *Bezier) {
	c.curves = append(c.curves, b)
	n := len(c.curves)
	if n > 1 {
		c.classifyJoin(n-2, n-1)
	}

	l := b.ApproxLength()
	switch {
	case n == 1:
		c.dominant, c.dominantLen, c.dominantOK = 0, l, true
	case !c.dominantOK:
		// Stays stale until DominantSegment rescans.
	case l > c.dominantLen+DominantTieThreshold:
		c.dominant, c.dominantLen = n-1, l
	case math.Abs(l-c.dominantLen) <= DominantTieThreshold:
		c.dominantOK = false
	}
}

// DominantSegment returns the index of the longest segment, which is where
// renderers place the direction indicator. Segments within
// DominantTieThreshold of the longest tie with it, and the earliest of them
// wins.
func (c *Contour) DominantSegment() (int, bool) {
	if len(c.curves) == 0 {
		return 0, false
	}
	if !c.dominantOK {
		lengths := make([]float64, len(c.curves))
		longest := math.Inf(-1)
		for i, b := range c.curves {
			lengths[i] = b.ApproxLength()
			longest = max(longest, lengths[i])
		}
		for i, l := range lengths {
			if l >= longest-DominantTieThreshold {
				c.dominant, c.dominantLen, c.dominantOK = i, l, true
				break
			}
		}
	}
	return c.dominant, true
}

// RecalcContinuities classifies every join from the current geometry. Pinned
// classifications are kept. The free ends of an open contour are reset to
// Unclassified unless pinned.
func (c *Contour) RecalcContinuities() {
	n := len(c.curves)
	if n == 0 {
		return
	}
	for i := range n {
		j := i + 1
		if j == n {
			if c.Open {
				break
			}
			j = 0
		}
		c.classifyJoin(i, j)
	}
	if c.Open {
		if first := c.curves[0]; !first.continuityIn.Pinned {
			first.setContinuityIn(Continuity{})
		}
		if last := c.curves[n-1]; !last.continuityOut.Pinned {
			last.setContinuityOut(Continuity{})
		}
	}
}

// ControlPoints returns the handles on either side of the on-curve point at
// addr. A neighbor that doesn't exist, such as beyond the end of an open
// contour, is nil.
func (c *Contour) ControlPoints(addr GlyphPointIndex) (prev, next *PointRef, err error) {
	s, i, err := c.locate(addr)
	if err != nil {
		return nil, nil, err
	}
	seg := c.curves[s]
	last := len(seg.points) - 1
	if i != 0 && i != last {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotOnCurve, addr)
	}

	ref := func(s, i int) *PointRef {
		cp := c.curves[s].points[i]
		return &PointRef{
			Index:    GlyphPointIndex{Contour: addr.Contour, Segment: s, ID: cp.ID},
			Position: cp.Position,
		}
	}

	if i == last && last > 0 {
		prev = ref(s, last-1)
	} else if p := c.prevIndex(s); p >= 0 {
		if pl := len(c.curves[p].points); pl >= 2 {
			prev = ref(p, pl-2)
		}
	}

	if i == 0 && last > 0 {
		next = ref(s, 1)
	} else if q := c.nextIndex(s); q >= 0 {
		if len(c.curves[q].points) >= 2 {
			next = ref(q, 1)
		}
	}
	return prev, next, nil
}

// ChangeContinuity pins k on the join at addr and returns the previous
// classification.
func (c *Contour) ChangeContinuity(addr GlyphPointIndex, k Continuity) (Continuity, error) {
	a, b, err := c.joinOf(addr)
	if err != nil {
		return Continuity{}, err
	}
	old := c.curves[a].continuityOut
	c.setJoin(a, b, k.Pin())
	return old, nil
}

// ResetContinuity unpins the join at addr and classifies it from the current
// geometry.
func (c *Contour) ResetContinuity(addr GlyphPointIndex) (Continuity, error) {
	a, b, err := c.joinOf(addr)
	if err != nil {
		return Continuity{}, err
	}
	c.setJoin(a, b, Continuity{})
	c.classifyJoin(a, b)
	return c.curves[a].continuityOut, nil
}

// ReverseDirection reverses the order of the segments and of the points in
// each segment.
func (c *Contour) ReverseDirection() {
	slices.Reverse(c.curves)
	for _, b := range c.curves {
		b.Reverse()
	}
	if c.dominantOK {
		c.dominant = len(c.curves) - 1 - c.dominant
	}
}

func (c *Contour) prevIndex(s int) int {
	switch {
	case s > 0:
		return s - 1
	case c.Open:
		return -1
	default:
		return len(c.curves) - 1
	}
}

func (c *Contour) nextIndex(s int) int {
	switch {
	case s < len(c.curves)-1:
		return s + 1
	case c.Open:
		return -1
	default:
		return 0
	}
}

// locate resolves addr to a segment and a point index.
func (c *Contour) locate(addr GlyphPointIndex) (int, int, error) {
	if addr.Segment < 0 || addr.Segment >= len(c.curves) {
		return 0, 0, fmt.Errorf("%w: %s", ErrStaleAddress, addr)
	}
	i := c.curves[addr.Segment].indexOf(addr.ID)
	if i < 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrStaleAddress, addr)
	}
	return addr.Segment, i, nil
}

// joinOf returns the segments meeting at the on-curve point at addr.
func (c *Contour) joinOf(addr GlyphPointIndex) (a, b int, err error) {
	s, i, err := c.locate(addr)
	if err != nil {
		return 0, 0, err
	}
	switch i {
	case 0:
		a, b = c.prevIndex(s), s
	case len(c.curves[s].points) - 1:
		a, b = s, c.nextIndex(s)
	default:
		return 0, 0, fmt.Errorf("%w: %s", ErrNotOnCurve, addr)
	}
	if a < 0 || b < 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrNoJoin, addr)
	}
	return a, b, nil
}

// classifyJoin derives the classification of the join between segments a and
// b, where a ends where b starts.
func (c *Contour) classifyJoin(a, b int) {
	sa, sb := c.curves[a], c.curves[b]
	if sa.continuityOut.Pinned || sb.continuityIn.Pinned {
		return
	}
	k := Continuity{Kind: Positional}
	if len(sa.points) >= 2 && len(sb.points) >= 2 {
		k = classify(
			sa.points[len(sa.points)-2].Position,
			sa.points[len(sa.points)-1].Position,
			sb.points[1].Position,
			sa.Smooth)
	}
	c.setJoin(a, b, k)
}

func (c *Contour) setJoin(a, b int, k Continuity) {
	c.curves[a].setContinuityOut(k)
	c.curves[b].setContinuityIn(k)
}
