package geom

import (
	"errors"
	"math"
	"testing"
)

func TestSegmentPoints(t *testing.T) {
	seg := Segment{From: Point{X: 1, Y: 2}, To: Point{X: 5, Y: 2}}
	pts, err := seg.Points(Resolution{})
	if err != nil {
		t.Fatalf("Points() error: %v", err)
	}
	got := pts.All()
	if len(got) != 2 {
		t.Fatalf("point count = %d, want 2", len(got))
	}
	if got[0] != seg.From || got[1] != seg.To {
		t.Errorf("points = %v, want [%v %v]", got, seg.From, seg.To)
	}
}

func TestSegmentSubdivision(t *testing.T) {
	seg := Segment{From: Point{}, To: Point{X: 10}, Divisions: 4}
	pts, err := seg.Points(Resolution{})
	if err != nil {
		t.Fatalf("Points() error: %v", err)
	}
	got := pts.All()
	if len(got) != 5 {
		t.Fatalf("point count = %d, want 5", len(got))
	}
	for i, want := range []float64{0, 2.5, 5, 7.5, 10} {
		if math.Abs(got[i].X-want) > 1e-12 {
			t.Errorf("point %d X = %g, want %g", i, got[i].X, want)
		}
	}
}

func TestZeroLengthSegmentCollapses(t *testing.T) {
	p := Point{X: 3, Y: 4}
	seg := Segment{From: p, To: p, Divisions: 8}
	pts, err := seg.Points(Resolution{})
	if err != nil {
		t.Fatalf("Points() error: %v", err)
	}
	got := pts.All()
	if len(got) != 1 || got[0] != p {
		t.Errorf("points = %v, want single point %v", got, p)
	}
}

func TestPolylineClosesAutomatically(t *testing.T) {
	poly := Polyline{Vertices: []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}, {X: 0, Y: 5}}}
	pts, err := poly.Points(Resolution{})
	if err != nil {
		t.Fatalf("Points() error: %v", err)
	}
	got := pts.All()
	if len(got) != 5 {
		t.Fatalf("point count = %d, want 5", len(got))
	}
	if got[4] != got[0] {
		t.Errorf("closing point = %v, want %v", got[4], got[0])
	}
}

func TestOpenPolylineDoesNotClose(t *testing.T) {
	poly := Polyline{Vertices: []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}}, Open: true}
	pts, err := poly.Points(Resolution{})
	if err != nil {
		t.Fatalf("Points() error: %v", err)
	}
	if got := pts.All(); len(got) != 3 {
		t.Errorf("point count = %d, want 3", len(got))
	}
}

func TestEmptyPolylineFails(t *testing.T) {
	_, err := Polyline{}.Points(Resolution{})
	var gerr InvalidGeometryError
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %v, want InvalidGeometryError", err)
	}
}

func TestArcSegmentCountFromTolerance(t *testing.T) {
	// For radius r and tolerance tol the chord step angle is
	// 2*acos(1 - tol/r); N is the sweep divided by that, rounded up.
	a := Arc{Radius: 5, Sweep: 2 * math.Pi}
	n, err := a.SegmentCount(Resolution{ChordTolerance: 0.01})
	if err != nil {
		t.Fatalf("SegmentCount() error: %v", err)
	}
	want := int(math.Ceil(2 * math.Pi / (2 * math.Acos(1-0.01/5))))
	if n != want {
		t.Errorf("segment count = %d, want %d", n, want)
	}
	if n < 1 {
		t.Errorf("segment count = %d, want >= 1", n)
	}
}

func TestArcSegmentCountFixed(t *testing.T) {
	a := Arc{Radius: 5, Sweep: math.Pi}
	n, err := a.SegmentCount(Resolution{SegmentCount: 7})
	if err != nil {
		t.Fatalf("SegmentCount() error: %v", err)
	}
	if n != 7 {
		t.Errorf("segment count = %d, want 7", n)
	}
}

func TestArcChordDeviationWithinTolerance(t *testing.T) {
	const tol = 0.01
	a := Arc{Radius: 5, Sweep: 2 * math.Pi}
	pts, err := a.Points(Resolution{ChordTolerance: tol})
	if err != nil {
		t.Fatalf("Points() error: %v", err)
	}
	got := pts.All()
	for i := 1; i < len(got); i++ {
		mid := got[i-1].Add(got[i]).MulScalar(0.5)
		dev := a.Radius - mid.Sub(a.Center).Length()
		if dev > tol+1e-12 {
			t.Errorf("chord %d midpoint deviation = %g, want <= %g", i, dev, tol)
		}
	}
}

func TestArcEndpoints(t *testing.T) {
	a := Arc{Center: Point{X: 1, Y: 1}, Radius: 2, StartAngle: 0, Sweep: math.Pi / 2}
	start, end := a.Start(), a.End()
	if math.Abs(start.X-3) > 1e-12 || math.Abs(start.Y-1) > 1e-12 {
		t.Errorf("start = %v, want (3, 1)", start)
	}
	if math.Abs(end.X-1) > 1e-12 || math.Abs(end.Y-3) > 1e-12 {
		t.Errorf("end = %v, want (1, 3)", end)
	}
	off := a.CenterOffset()
	if math.Abs(off.X+2) > 1e-12 || math.Abs(off.Y) > 1e-12 {
		t.Errorf("center offset = %v, want (-2, 0)", off)
	}
}

func TestArcInvalidGeometry(t *testing.T) {
	tests := []struct {
		name string
		arc  Arc
		res  Resolution
	}{
		{"zero radius", Arc{Radius: 0, Sweep: 1}, Resolution{ChordTolerance: 0.1}},
		{"negative radius", Arc{Radius: -2, Sweep: 1}, Resolution{ChordTolerance: 0.1}},
		{"zero tolerance", Arc{Radius: 5, Sweep: 1}, Resolution{}},
		{"negative tolerance", Arc{Radius: 5, Sweep: 1}, Resolution{ChordTolerance: -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.arc.Points(tt.res)
			var gerr InvalidGeometryError
			if !errors.As(err, &gerr) {
				t.Fatalf("error = %v, want InvalidGeometryError", err)
			}
		})
	}
}

func TestSeqIsRestartable(t *testing.T) {
	seg := Segment{From: Point{}, To: Point{X: 4}, Divisions: 2}
	pts, err := seg.Points(Resolution{})
	if err != nil {
		t.Fatalf("Points() error: %v", err)
	}
	first := pts.All()
	pts.Reset()
	second := pts.All()
	if len(first) != len(second) {
		t.Fatalf("lengths differ after Reset: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("point %d differs after Reset: %v vs %v", i, first[i], second[i])
		}
	}
	if pts.Len() != 3 {
		t.Errorf("Len() = %d, want 3", pts.Len())
	}
}
