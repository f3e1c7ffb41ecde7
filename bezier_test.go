package outline

import (
	"errors"
	"testing"
)

func TestBezierDegree(t *testing.T) {
	var empty Bezier
	if d, ok := empty.Degree(); ok {
		t.Errorf("empty segment has degree %d", d)
	}
	for n := 1; n <= 5; n++ {
		pts := make([]Point, n)
		b := NewBezier(false, pts...)
		d, ok := b.Degree()
		if !ok || d != n-1 {
			t.Errorf("got degree (%d, %t) for %d points, want %d", d, ok, n, n-1)
		}
		for _, cp := range b.All() {
			if cp.Degree != n-1 {
				t.Errorf("point records degree %d, want %d", cp.Degree, n-1)
			}
		}
	}
}

func TestBezierEmpty(t *testing.T) {
	var b Bezier
	if _, err := b.Compute(0.5); !errors.Is(err, ErrEmptyCurve) {
		t.Errorf("got error %v, want %v", err, ErrEmptyCurve)
	}
	if b.OnCurveQuery(Pt(0, 0), 1e9) {
		t.Error("empty segment hit")
	}
	if l := b.ApproxLength(); l != 0 {
		t.Errorf("got length %v, want 0", l)
	}
}

func TestBezierCompute(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		t    float64
		want Point
	}{
		{"point", []Point{Pt(3, 4)}, 0.7, Pt(3, 4)},
		{"line", []Point{Pt(0, 0), Pt(10, 0)}, 0.5, Pt(5, 0)},
		{"quad", []Point{Pt(0, 0), Pt(10, 20), Pt(20, 0)}, 0.5, Pt(10, 10)},
		{"cubic", []Point{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}, 0.5, Pt(5, 7.5)},
		{"cubic start", []Point{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}, 0, Pt(0, 0)},
		{"cubic end", []Point{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}, 1, Pt(10, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewBezier(false, tt.pts...).Compute(tt.t)
			if err != nil {
				t.Fatal(err)
			}
			assertNear(t, got, tt.want, 1e-12)
		})
	}
}

func TestBezierUnsupportedDegree(t *testing.T) {
	b := NewBezier(false, Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(3, 3), Pt(4, 4))
	if _, err := b.Compute(0.5); !errors.Is(err, ErrUnsupportedDegree) {
		t.Errorf("Compute: got error %v, want %v", err, ErrUnsupportedDegree)
	}
	if _, err := b.Tangent(0.5); !errors.Is(err, ErrUnsupportedDegree) {
		t.Errorf("Tangent: got error %v, want %v", err, ErrUnsupportedDegree)
	}
	if _, err := b.LookupTable(10); !errors.Is(err, ErrUnsupportedDegree) {
		t.Errorf("LookupTable: got error %v, want %v", err, ErrUnsupportedDegree)
	}
	if b.OnCurveQuery(Pt(2, 2), DefaultHitTolerance) {
		t.Error("segment of unsupported degree hit")
	}
}

func TestBezierTangent(t *testing.T) {
	b := NewBezier(false, Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0))
	for _, tt := range []struct {
		t    float64
		want Vec2
	}{
		{0, Vec(0, 30)},
		{0.5, Vec(15, 0)},
		{1, Vec(0, -30)},
	} {
		got, err := b.Tangent(tt.t)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, tt.want, got, approx)
	}

	q := NewBezier(false, Pt(0, 0), Pt(10, 20), Pt(20, 0))
	got, err := q.Tangent(0.5)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Vec(20, 0), got, approx)
}

func TestLookupTable(t *testing.T) {
	b := NewBezier(false, Pt(0, 0), Pt(8, 0))
	lut, err := b.LookupTable(5)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{Pt(0, 0), Pt(2, 0), Pt(4, 0), Pt(6, 0), Pt(8, 0)}, lut)

	again, _ := b.LookupTable(5)
	if &again[0] != &lut[0] {
		t.Error("table was rebuilt without a reason")
	}

	dflt, _ := b.LookupTable(0)
	if len(dflt) != DefaultLUTSteps {
		t.Errorf("got %d samples, want %d", len(dflt), DefaultLUTSteps)
	}

	// Moving a point must not serve the old samples.
	b.SetPosition(1, Pt(0, 8))
	lut, _ = b.LookupTable(5)
	diff(t, []Point{Pt(0, 0), Pt(0, 2), Pt(0, 4), Pt(0, 6), Pt(0, 8)}, lut)

	one, _ := b.LookupTable(1)
	diff(t, []Point{Pt(0, 0)}, one)
}

func TestApproxLength(t *testing.T) {
	line := NewBezier(false, Pt(0, 0), Pt(30, 40))
	if l := line.ApproxLength(); l < 50-1e-9 || l > 50+1e-9 {
		t.Errorf("got length %v, want 50", l)
	}

	// A quarter circle of radius 100 is about 157.08 long. The cubic bulges
	// slightly outside it.
	k := kappa * 100
	arc := NewBezier(false, Pt(100, 0), Pt(100, k), Pt(k, 100), Pt(0, 100))
	if l := arc.ApproxLength(); l < 157.08 || l > 157.2 {
		t.Errorf("got length %v, want about 157.1", l)
	}
}

func TestOnCurveQuery(t *testing.T) {
	b := NewBezier(false, Pt(0, 0), Pt(100, 0))
	if !b.OnCurveQuery(Pt(50, 3), DefaultHitTolerance) {
		t.Error("missed point within tolerance")
	}
	if b.OnCurveQuery(Pt(50, 6), DefaultHitTolerance) {
		t.Error("hit point outside tolerance")
	}

	tt, dist, ok := b.NearestSample(Pt(0, 2), DefaultHitTolerance)
	if !ok || tt != 0 || dist != 2 {
		t.Errorf("got (%v, %v, %t), want (0, 2, true)", tt, dist, ok)
	}
	tt, dist, ok = b.NearestSample(Pt(101, 0), DefaultHitTolerance)
	if !ok || tt != 1 || dist != 1 {
		t.Errorf("got (%v, %v, %t), want (1, 1, true)", tt, dist, ok)
	}
	if _, _, ok := b.NearestSample(Pt(200, 0), DefaultHitTolerance); ok {
		t.Error("found a sample outside tolerance")
	}

	// Hit testing follows the segment when it moves.
	b.SetPosition(1, Pt(0, 100))
	if b.OnCurveQuery(Pt(50, 0), DefaultHitTolerance) {
		t.Error("hit the segment's old position")
	}
	if !b.OnCurveQuery(Pt(0, 50), DefaultHitTolerance) {
		t.Error("missed the segment's new position")
	}
}

func TestBezierCleanUp(t *testing.T) {
	cubic := NewBezier(false, Pt(0, 0), Pt(0, 0), Pt(10, 10), Pt(10, 10))
	first, _ := cubic.First()
	last, _ := cubic.Last()
	if !cubic.CleanUp() {
		t.Fatal("degenerate cubic wasn't cleaned up")
	}
	if d, _ := cubic.Degree(); d != 1 {
		t.Errorf("got degree %d, want 1", d)
	}
	gotFirst, _ := cubic.First()
	gotLast, _ := cubic.Last()
	if gotFirst.ID != first.ID || gotLast.ID != last.ID {
		t.Error("endpoints lost their identity")
	}

	quad := NewBezier(false, Pt(0, 0), Pt(10, 10), Pt(10, 10))
	if !quad.CleanUp() {
		t.Error("degenerate quadratic wasn't cleaned up")
	}
	diff(t, []Point{Pt(0, 0), Pt(10, 10)}, quad.positions())

	fine := NewBezier(false, Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0))
	if fine.CleanUp() {
		t.Error("proper cubic was cleaned up")
	}
}

func TestBezierElevate(t *testing.T) {
	line := NewBezier(false, Pt(0, 0), Pt(3, 0))
	if !line.Elevate() {
		t.Fatal("line wasn't elevated")
	}
	diff(t, []Point{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0)}, line.positions(), approx)

	quad := NewBezier(false, Pt(0, 0), Pt(10, 20), Pt(20, 0))
	handle, _ := quad.Point(1)
	want := make([]Point, 11)
	for i := range want {
		want[i], _ = quad.Compute(float64(i) / 10)
	}
	if !quad.Elevate() {
		t.Fatal("quadratic wasn't elevated")
	}
	if h, _ := quad.Point(1); h.ID != handle.ID {
		t.Error("handle lost its identity")
	}
	for i, w := range want {
		got, err := quad.Compute(float64(i) / 10)
		if err != nil {
			t.Fatal(err)
		}
		assertNear(t, got, w, 1e-9)
	}

	if NewBezier(false, Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(3, 3)).Elevate() {
		t.Error("elevated a cubic")
	}
}

func TestBezierReverse(t *testing.T) {
	b := NewBezier(true, Pt(0, 0), Pt(1, 1), Pt(2, 1), Pt(3, 0))
	ids := make([]PointID, 0, 4)
	for _, cp := range b.All() {
		ids = append(ids, cp.ID)
	}
	b.setContinuityIn(Continuity{Kind: Velocity})
	b.setContinuityOut(TangentContinuity(2))

	b.Reverse()
	diff(t, []Point{Pt(3, 0), Pt(2, 1), Pt(1, 1), Pt(0, 0)}, b.positions())
	for i, cp := range b.All() {
		if cp.ID != ids[len(ids)-1-i] {
			t.Errorf("point %d has the wrong ID", i)
		}
	}
	diff(t, TangentContinuity(0.5), b.ContinuityIn())
	diff(t, Continuity{Kind: Velocity}, b.ContinuityOut())
	first, _ := b.First()
	diff(t, TangentContinuity(0.5), first.Continuity)
}

func TestBezierControlBox(t *testing.T) {
	b := NewBezier(false, Pt(0, 0), Pt(-5, 10), Pt(20, 10), Pt(10, 0))
	diff(t, Rect{-5, 0, 20, 10}, b.ControlBox())
}
