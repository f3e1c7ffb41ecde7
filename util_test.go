package outline

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon || math.IsNaN(d) {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

// approx compares floats with an absolute tolerance suitable for geometry
// built from small integers.
var approx = cmpopts.EquateApprox(0, 1e-9)

// useSequentialIDs makes identifiers deterministic for the duration of the
// test.
func useSequentialIDs(t *testing.T) {
	t.Helper()
	SetIDSupply(NewSequentialSupply(t.Name()))
	t.Cleanup(func() { SetIDSupply(nil) })
}

// positions returns the positions of all points of c, segment by segment.
func positions(c *Contour) [][]Point {
	var out [][]Point
	for _, b := range c.Segments() {
		out = append(out, b.positions())
	}
	return out
}

// addr returns the address of the i-th point of segment s of contour ci.
func addr(t *testing.T, g *Glyph, ci, s, i int) GlyphPointIndex {
	t.Helper()
	b, ok := g.Contours[ci].Segment(s)
	if !ok {
		t.Fatalf("no segment %d in contour %d", s, ci)
	}
	cp, ok := b.Point(i)
	if !ok {
		t.Fatalf("no point %d in segment %d of contour %d", i, s, ci)
	}
	return GlyphPointIndex{Contour: ci, Segment: s, ID: cp.ID}
}

// kappa is the handle length of a unit circle approximated by four cubics.
const kappa = 0.5522847498307936

// circle returns a closed, smooth contour of four cubics approximating a
// circle of radius r around the origin.
func circle(r float64) *Contour {
	k := kappa * r
	var p Pen
	p.Smooth = true
	p.MoveTo(Pt(r, 0))
	p.CubicTo(Pt(r, k), Pt(k, r), Pt(0, r))
	p.CubicTo(Pt(-k, r), Pt(-r, k), Pt(-r, 0))
	p.CubicTo(Pt(-r, -k), Pt(-k, -r), Pt(0, -r))
	p.CubicTo(Pt(k, -r), Pt(r, -k), Pt(r, 0))
	p.ClosePath()
	return p.Contours()[0]
}
