package outline

import (
	"testing"

	"honnef.co/go/outline/kdtree"
)

func TestSessionQueries(t *testing.T) {
	g := &Glyph{Name: "o", Contours: []*Contour{circle(100)}}
	s := NewSession(g)
	if s.Len() != 12 {
		t.Errorf("indexed %d points, want 12", s.Len())
	}

	joint := []GlyphPointIndex{addr(t, g, 0, 0, 0), addr(t, g, 0, 3, 3)}
	sortAddrs(joint)
	diff(t, joint, s.PointsNear(Pt(101, 1)))
	diff(t, joint, s.PointsInRect(Pt(110, 10), Pt(90, -10)))

	want := []GlyphPointIndex{
		addr(t, g, 0, 0, 0),
		addr(t, g, 0, 0, 1),
		addr(t, g, 0, 3, 2),
		addr(t, g, 0, 3, 3),
	}
	sortAddrs(want)
	diff(t, want, s.Snap(kdtree.AxisX, 100))

	if got := s.PointsNear(Pt(50, 50)); len(got) != 0 {
		t.Errorf("got %v, want nothing", got)
	}
}

func TestSessionHitRadius(t *testing.T) {
	g := &Glyph{Contours: []*Contour{circle(100)}}
	if got := NewSession(g).PointsNear(Pt(100, 8)); len(got) != 0 {
		t.Errorf("got %v with the default radius, want nothing", got)
	}
	if got := NewSession(g, WithHitRadius(10)).PointsNear(Pt(100, 8)); len(got) != 2 {
		t.Errorf("got %v with a radius of 10, want the joint", got)
	}
	if got := NewSession(g, WithLeafCapacity(1)).Snap(kdtree.AxisY, 0); len(got) != 4 {
		t.Errorf("got %d addresses on the x axis, want 4", len(got))
	}
}

func TestSessionSelection(t *testing.T) {
	g := &Glyph{Contours: []*Contour{circle(100)}}
	s := NewSession(g)
	a := addr(t, g, 0, 0, 1)
	b := addr(t, g, 0, 1, 1)
	c := addr(t, g, 0, 2, 1)

	s.SetSelection([]GlyphPointIndex{a, b}, SelectReplace)
	s.SetSelection([]GlyphPointIndex{c}, SelectAdd)
	s.SetSelection([]GlyphPointIndex{a}, SelectRemove)
	want := []GlyphPointIndex{b, c}
	sortAddrs(want)
	diff(t, want, s.Selection())
	if s.IsSelected(a) || !s.IsSelected(b) {
		t.Error("IsSelected disagrees with Selection")
	}

	s.SetSelection([]GlyphPointIndex{a}, SelectReplace)
	diff(t, []GlyphPointIndex{a}, s.Selection())
}

func TestSessionTransformSelection(t *testing.T) {
	g := &Glyph{Contours: []*Contour{circle(100)}}
	s := NewSession(g)
	handle := addr(t, g, 0, 0, 1)
	mirror := addr(t, g, 0, 3, 2)
	s.SetSelection([]GlyphPointIndex{handle}, SelectReplace)

	updates := s.TransformSelection(Translate(Vec(0, 10)))
	if len(updates) != 2 {
		t.Fatalf("got %d updates, want 2", len(updates))
	}

	// The index follows every moved point.
	for _, u := range updates {
		got, ok := s.index.Position(u.Index.ID)
		if !ok || got != u.Position.Quantize() {
			t.Errorf("%s indexed at %s, want %s", u.Index, got, u.Position.Quantize())
		}
	}
	if got := s.PointsNear(Pt(100, 55)); len(got) != 0 {
		t.Errorf("found %v at the handle's old position", got)
	}
	diff(t, []GlyphPointIndex{handle}, s.PointsNear(Pt(100, 65)))
	diff(t, []GlyphPointIndex{mirror}, s.PointsNear(Pt(100, -65)))
	if s.Len() != 12 {
		t.Errorf("indexed %d points, want 12", s.Len())
	}
}

func TestSessionMarqueeJointAndHandle(t *testing.T) {
	c := join(Pt(-10, 0), Pt(10, 0))
	s := NewSession(&Glyph{Contours: []*Contour{c}})
	s.SetSelection(s.PointsInRect(Pt(-12, -2), Pt(2, 2)), SelectReplace)
	// The joint is selected through both of its segments.
	if n := len(s.Selection()); n != 3 {
		t.Fatalf("selected %d addresses, want 3", n)
	}
	s.TransformSelection(Translate(Vec(5, 5)))
	diff(t, [][]Point{
		{Pt(-30, -10), Pt(-20, -10), Pt(-5, 5), Pt(5, 5)},
		{Pt(5, 5), Pt(15, 5), Pt(20, -10), Pt(30, -10)},
	}, positions(c))
	diff(t, []GlyphPointIndex{addr(t, s.Glyph(), 0, 1, 1)}, s.PointsNear(Pt(15, 5)))
}

func TestSessionScaleSelection(t *testing.T) {
	g := &Glyph{Contours: []*Contour{square(500, 500, 20)}}
	s := NewSession(g)
	if got := s.ScaleSelection(2, 2); got != nil {
		t.Errorf("scaling an empty selection moved %d points", len(got))
	}

	s.SetSelection(s.PointsInRect(Pt(490, 490), Pt(530, 530)), SelectReplace)
	diff(t, Rect{500, 500, 520, 520}, s.SelectionBounds())
	s.ScaleSelection(2, 0.5)
	diff(t, Rect{490, 505, 530, 515}, s.SelectionBounds())
	diff(t, Rect{490, 505, 530, 515}, g.ControlBox())
	if got := s.PointsNear(Pt(490, 505)); len(got) == 0 {
		t.Error("index doesn't follow the scaled points")
	}
}

func TestSessionRecalcAfterTransform(t *testing.T) {
	for _, recalc := range []bool{false, true} {
		c := join(Pt(-10, 0), Pt(10, 0))
		g := &Glyph{Contours: []*Contour{c}}
		s := NewSession(g, WithRecalcAfterTransform(recalc))
		s.TransformPoints([]GlyphPointIndex{addr(t, g, 0, 0, 2), addr(t, g, 0, 1, 1)}, Translate(Vec(0, 4)))

		want := Continuity{Kind: Velocity}
		if recalc {
			want = Continuity{Kind: Positional}
		}
		diff(t, want, c.curves[0].ContinuityOut())
	}
}

func TestSessionStaleAddresses(t *testing.T) {
	g := &Glyph{Contours: []*Contour{circle(100)}}
	s := NewSession(g)
	stale := []GlyphPointIndex{
		{Contour: 3, Segment: 0, ID: addr(t, g, 0, 0, 0).ID},
		{Contour: 0, Segment: 0, ID: NewPointID()},
	}
	s.SetSelection(stale, SelectReplace)
	if updates := s.TransformSelection(Translate(Vec(1, 1))); len(updates) != 0 {
		t.Errorf("got updates %v, want none", updates)
	}
	s.Rebuild()
	if sel := s.Selection(); len(sel) != 0 {
		t.Errorf("stale addresses survived a rebuild: %v", sel)
	}
	if _, err := s.ChangeContinuity(stale[0], Continuity{Kind: Positional}); err == nil {
		t.Error("changed continuity through a stale address")
	}
}

func TestSessionContinuity(t *testing.T) {
	g := &Glyph{Contours: []*Contour{circle(100)}}
	s := NewSession(g)
	joint := addr(t, g, 0, 2, 0)
	old, err := s.ChangeContinuity(joint, TangentContinuity(3))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Continuity{Kind: Velocity}, old)
	got, err := s.ResetContinuity(joint)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Continuity{Kind: Velocity}, got)
}

func TestSessionReverseContour(t *testing.T) {
	g := &Glyph{Contours: []*Contour{circle(100)}}
	s := NewSession(g)
	handle := addr(t, g, 0, 0, 1)
	s.SetSelection([]GlyphPointIndex{handle}, SelectReplace)

	if err := s.ReverseContour(0); err != nil {
		t.Fatal(err)
	}
	moved := GlyphPointIndex{Contour: 0, Segment: 3, ID: handle.ID}
	diff(t, []GlyphPointIndex{moved}, s.Selection())
	if _, err := g.Point(moved); err != nil {
		t.Error(err)
	}
	diff(t, []GlyphPointIndex{moved}, s.PointsNear(Pt(100, 55)))

	if err := s.ReverseContour(1); err == nil {
		t.Error("reversed a contour that doesn't exist")
	}
}

func TestSessionAddRemoveContour(t *testing.T) {
	g := &Glyph{Contours: []*Contour{circle(100)}}
	s := NewSession(g)

	small := circle(40)
	small.Transform(Translate(Vec(500, 500)))
	if ci := s.AddContour(small); ci != 1 {
		t.Errorf("got contour index %d, want 1", ci)
	}
	if s.Len() != 24 {
		t.Errorf("indexed %d points, want 24", s.Len())
	}
	hits := s.PointsNear(Pt(540, 500))
	if len(hits) != 2 || hits[0].Contour != 1 {
		t.Errorf("got %v, want the joint of the new contour", hits)
	}

	handle := addr(t, g, 1, 0, 1)
	s.SetSelection([]GlyphPointIndex{addr(t, g, 0, 0, 1), handle}, SelectReplace)
	if err := s.RemoveContour(0); err != nil {
		t.Fatal(err)
	}
	shifted := GlyphPointIndex{Contour: 0, Segment: 0, ID: handle.ID}
	diff(t, []GlyphPointIndex{shifted}, s.Selection())
	if s.Len() != 12 {
		t.Errorf("indexed %d points, want 12", s.Len())
	}
	if got := s.PointsNear(Pt(100, 0)); len(got) != 0 {
		t.Errorf("found %v in a removed contour", got)
	}
	if err := s.RemoveContour(5); err == nil {
		t.Error("removed a contour that doesn't exist")
	}
}
