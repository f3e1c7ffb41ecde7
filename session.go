package outline

import (
	"bytes"
	"cmp"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"honnef.co/go/outline/kdtree"
)

// SelectionModifier says how [Session.SetSelection] combines new addresses
// with the current selection.
type SelectionModifier int

const (
	SelectReplace SelectionModifier = iota
	SelectAdd
	SelectRemove
)

// DefaultHitRadius is the distance, per axis, within which [Session.PointsNear]
// and [Session.Snap] find points.
const DefaultHitRadius = DefaultHitTolerance

// SessionOption configures a Session during creation.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	hitRadius    float64
	leafCapacity int
	recalc       bool
}

func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		hitRadius:    DefaultHitRadius,
		leafCapacity: kdtree.DefaultLeafCapacity,
	}
}

// WithHitRadius sets the search radius of PointsNear and Snap. Negative values
// are ignored.
func WithHitRadius(r float64) SessionOption {
	return func(o *sessionOptions) {
		if r >= 0 {
			o.hitRadius = r
		}
	}
}

// WithLeafCapacity sets the leaf capacity of the session's spatial index.
func WithLeafCapacity(n int) SessionOption {
	return func(o *sessionOptions) {
		o.leafCapacity = n
	}
}

// WithRecalcAfterTransform makes TransformPoints reclassify the joins of every
// contour it touched. By default classifications only change when asked to.
func WithRecalcAfterTransform(enabled bool) SessionOption {
	return func(o *sessionOptions) {
		o.recalc = enabled
	}
}

// Session is the editing state of one glyph: the glyph itself, a spatial
// index of its points and the current selection. Session keeps the index in
// sync with edits made through its methods. Edits made to the glyph directly
// require a call to Rebuild.
//
// A Session must only be used from one goroutine.
type Session struct {
	glyph     *Glyph
	index     *kdtree.Tree[PointID]
	addrs     map[PointID][]GlyphPointIndex
	selection mapset.Set[GlyphPointIndex]
	opts      sessionOptions
}

// NewSession returns a session editing g.
func NewSession(g *Glyph, opts ...SessionOption) *Session {
	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Session{
		glyph:     g,
		selection: mapset.NewThreadUnsafeSet[GlyphPointIndex](),
		opts:      o,
	}
	s.Rebuild()
	return s
}

// Glyph returns the edited glyph.
func (s *Session) Glyph() *Glyph {
	return s.glyph
}

// Rebuild recreates the spatial index and the address table from the glyph,
// and drops selected addresses that no longer resolve.
func (s *Session) Rebuild() {
	s.addrs = make(map[PointID][]GlyphPointIndex)
	var entries []kdtree.Entry[PointID]
	for addr, cp := range s.glyph.Points() {
		if _, ok := s.addrs[addr.ID]; !ok {
			entries = append(entries, kdtree.Entry[PointID]{ID: addr.ID, Point: cp.Position.Quantize()})
		}
		s.record(addr)
	}
	s.index = kdtree.Build(entries, kdtree.WithLeafCapacity(s.opts.leafCapacity))
	s.pruneSelection()
	Logger().Debug("outline: rebuilt session index", "glyph", s.glyph.Name, "points", len(entries))
}

// Len returns the number of distinct indexed points.
func (s *Session) Len() int {
	return s.index.Len()
}

// PointsNear returns the addresses of all points within the hit radius of pt
// on both axes.
func (s *Session) PointsNear(pt Point) []GlyphPointIndex {
	r := truncInt64(2 * s.opts.hitRadius)
	return s.resolve(s.index.QueryPoint(pt.Quantize(), r))
}

// PointsInRect returns the addresses of all points inside the rectangle
// spanned by a and b, as dragged by a marquee.
func (s *Session) PointsInRect(a, b Point) []GlyphPointIndex {
	return s.resolve(s.index.QueryRegion(NewRectFromPoints(a, b).Quantize()))
}

// Snap returns the addresses of all points whose coordinate on axis lies
// within the hit radius of v, for snapping to guides.
func (s *Session) Snap(axis kdtree.Axis, v float64) []GlyphPointIndex {
	return s.resolve(s.index.QueryOnAxis(axis, truncInt64(v), truncInt64(s.opts.hitRadius)))
}

// SetSelection changes the selection.
func (s *Session) SetSelection(idxs []GlyphPointIndex, mod SelectionModifier) {
	switch mod {
	case SelectReplace:
		s.selection.Clear()
		s.selection.Append(idxs...)
	case SelectAdd:
		s.selection.Append(idxs...)
	case SelectRemove:
		s.selection.RemoveAll(idxs...)
	}
}

// Selection returns the selected addresses, sorted.
func (s *Session) Selection() []GlyphPointIndex {
	out := s.selection.ToSlice()
	sortAddrs(out)
	return out
}

// IsSelected reports whether addr is selected.
func (s *Session) IsSelected(addr GlyphPointIndex) bool {
	return s.selection.Contains(addr)
}

// TransformPoints moves points as described by [Contour.TransformPoints] and
// updates the index. Stale addresses are logged and ignored.
func (s *Session) TransformPoints(idxs []GlyphPointIndex, aff Affine) []PointUpdate {
	valid := make([]GlyphPointIndex, 0, len(idxs))
	for _, idx := range idxs {
		if _, err := s.glyph.Point(idx); err != nil {
			Logger().Warn("outline: ignoring point", "addr", idx, "err", err)
			continue
		}
		valid = append(valid, idx)
	}

	updates := s.glyph.TransformPoints(valid, aff)
	touched := mapset.NewThreadUnsafeSet[int]()
	for _, u := range updates {
		s.index.Add(u.Index.ID, u.Position.Quantize())
		touched.Add(u.Index.Contour)
	}
	if s.opts.recalc {
		for _, ci := range touched.ToSlice() {
			s.glyph.Contours[ci].RecalcContinuities()
		}
	}
	return updates
}

// TransformSelection applies TransformPoints to the selection.
func (s *Session) TransformSelection(aff Affine) []PointUpdate {
	return s.TransformPoints(s.Selection(), aff)
}

// SelectionBounds returns the bounding box of the selected points. It is empty
// if nothing is selected.
func (s *Session) SelectionBounds() Rect {
	r := emptyRect
	for _, addr := range s.Selection() {
		if cp, err := s.glyph.Point(addr); err == nil {
			r = r.UnionPoint(cp.Position)
		}
	}
	return r
}

// ScaleSelection scales the selection by (x, y) about the center of its
// bounding box.
func (s *Session) ScaleSelection(x, y float64) []PointUpdate {
	r := s.SelectionBounds()
	if r.IsEmpty() {
		return nil
	}
	return s.TransformSelection(ScaleAbout(x, y, r.Center()))
}

// ChangeContinuity pins the classification of the join at addr and returns
// the previous one.
func (s *Session) ChangeContinuity(addr GlyphPointIndex, k Continuity) (Continuity, error) {
	c, err := s.glyph.Contour(addr.Contour)
	if err != nil {
		return Continuity{}, err
	}
	return c.ChangeContinuity(addr, k)
}

// ResetContinuity unpins the classification of the join at addr.
func (s *Session) ResetContinuity(addr GlyphPointIndex) (Continuity, error) {
	c, err := s.glyph.Contour(addr.Contour)
	if err != nil {
		return Continuity{}, err
	}
	return c.ResetContinuity(addr)
}

// ReverseContour reverses the direction of a contour. Selected points of the
// contour stay selected.
func (s *Session) ReverseContour(ci int) error {
	c, err := s.glyph.Contour(ci)
	if err != nil {
		return err
	}
	c.ReverseDirection()
	n := c.Len()
	s.remapSelection(func(addr GlyphPointIndex) (GlyphPointIndex, bool) {
		if addr.Contour == ci {
			addr.Segment = n - 1 - addr.Segment
		}
		return addr, true
	})
	s.Rebuild()
	return nil
}

// AddContour appends c to the glyph and returns its index.
func (s *Session) AddContour(c *Contour) int {
	ci := len(s.glyph.Contours)
	s.glyph.Contours = append(s.glyph.Contours, c)
	for si, b := range c.curves {
		for _, cp := range b.points {
			s.index.Add(cp.ID, cp.Position.Quantize())
			s.record(GlyphPointIndex{Contour: ci, Segment: si, ID: cp.ID})
		}
	}
	return ci
}

// RemoveContour removes a contour from the glyph. Selected points of later
// contours stay selected.
func (s *Session) RemoveContour(ci int) error {
	if _, err := s.glyph.Contour(ci); err != nil {
		return err
	}
	s.glyph.Contours = slices.Delete(s.glyph.Contours, ci, ci+1)
	s.remapSelection(func(addr GlyphPointIndex) (GlyphPointIndex, bool) {
		switch {
		case addr.Contour == ci:
			return addr, false
		case addr.Contour > ci:
			addr.Contour--
		}
		return addr, true
	})
	s.Rebuild()
	return nil
}

func (s *Session) record(addr GlyphPointIndex) {
	if !slices.Contains(s.addrs[addr.ID], addr) {
		s.addrs[addr.ID] = append(s.addrs[addr.ID], addr)
	}
}

func (s *Session) resolve(entries []kdtree.Entry[PointID]) []GlyphPointIndex {
	var out []GlyphPointIndex
	for _, e := range entries {
		out = append(out, s.addrs[e.ID]...)
	}
	sortAddrs(out)
	return out
}

func (s *Session) remapSelection(fn func(GlyphPointIndex) (GlyphPointIndex, bool)) {
	old := s.selection.ToSlice()
	s.selection.Clear()
	for _, addr := range old {
		if addr, ok := fn(addr); ok {
			s.selection.Add(addr)
		}
	}
}

func (s *Session) pruneSelection() {
	for _, addr := range s.selection.ToSlice() {
		if _, err := s.glyph.Point(addr); err != nil {
			Logger().Warn("outline: dropping selected point", "addr", addr, "err", err)
			s.selection.Remove(addr)
		}
	}
}

func sortAddrs(addrs []GlyphPointIndex) {
	slices.SortFunc(addrs, func(a, b GlyphPointIndex) int {
		if c := cmp.Compare(a.Contour, b.Contour); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Segment, b.Segment); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
}
