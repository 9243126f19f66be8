package geom

import "math"

// Curve is the closed set of path primitives. Each variant produces sample
// points tracing its path; new variants must be handled everywhere a Curve
// is consumed.
type Curve interface {
	// Points samples the curve at the given resolution.
	Points(res Resolution) (*Seq, error)

	curve() // marker method restricting implementations to this package
}

// Compile-time variant checks.
var (
	_ Curve = Segment{}
	_ Curve = Polyline{}
	_ Curve = Arc{}
)

// ---------------------------------------------------------------------------
// Segment
// ---------------------------------------------------------------------------

// Segment is a straight path between two endpoints. Divisions optionally
// subdivides the segment into that many equal chords; zero means the two
// endpoints only. A zero-length segment collapses to a single point.
type Segment struct {
	From, To  Point
	Divisions int
}

func (Segment) curve() {}

// Points returns the segment endpoints, subdivided when Divisions is set.
// The resolution parameter is ignored; segments have no curvature.
func (s Segment) Points(Resolution) (*Seq, error) {
	if !finite(s.From) || !finite(s.To) {
		return nil, InvalidGeometryError{Curve: "segment", Message: "endpoint is not finite"}
	}
	if s.From == s.To {
		return newSeq(1, func(int) Point { return s.From }), nil
	}
	n := s.Divisions
	if n < 1 {
		n = 1
	}
	step := s.To.Sub(s.From).DivScalar(float64(n))
	return newSeq(n+1, func(i int) Point {
		if i == n {
			return s.To // avoid accumulated float drift on the endpoint
		}
		return s.From.Add(step.MulScalar(float64(i)))
	}), nil
}

// ---------------------------------------------------------------------------
// Polyline
// ---------------------------------------------------------------------------

// Polyline is an ordered vertex path. Unless Open is set, the path is
// closed automatically by connecting the last vertex back to the first.
type Polyline struct {
	Vertices []Point
	Open     bool
}

func (Polyline) curve() {}

// Points returns the vertices in order, with a closing point appended for
// closed polylines. The resolution parameter is ignored.
func (p Polyline) Points(Resolution) (*Seq, error) {
	if len(p.Vertices) == 0 {
		return nil, InvalidGeometryError{Curve: "polyline", Message: "no vertices"}
	}
	for _, v := range p.Vertices {
		if !finite(v) {
			return nil, InvalidGeometryError{Curve: "polyline", Message: "vertex is not finite"}
		}
	}
	n := len(p.Vertices)
	closed := !p.Open && n > 1 && p.Vertices[0] != p.Vertices[n-1]
	total := n
	if closed {
		total++
	}
	return newSeq(total, func(i int) Point {
		if i == n {
			return p.Vertices[0]
		}
		return p.Vertices[i]
	}), nil
}

// ---------------------------------------------------------------------------
// Arc
// ---------------------------------------------------------------------------

// Arc is a circular arc around Center. Angles are in radians; a positive
// Sweep runs counter-clockwise, a negative one clockwise. A full circle is
// an arc with |Sweep| = 2π.
type Arc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	Sweep      float64
}

func (Arc) curve() {}

// Start returns the arc's start point.
func (a Arc) Start() Point { return a.pointAt(0) }

// End returns the arc's end point.
func (a Arc) End() Point { return a.pointAt(1) }

// CenterOffset returns the arc center relative to the start point, the
// form arc motion words (I/J) are expressed in.
func (a Arc) CenterOffset() Point { return a.Center.Sub(a.Start()) }

// pointAt evaluates the arc at sweep fraction t in [0, 1].
func (a Arc) pointAt(t float64) Point {
	ang := a.StartAngle + t*a.Sweep
	return a.Center.Add(Point{X: math.Cos(ang), Y: math.Sin(ang)}.MulScalar(a.Radius))
}

// SegmentCount returns the number of chords used to linearize the arc at
// the given resolution. For a chord tolerance the count is the minimum N
// such that the chord deviation stays within the tolerance, never less
// than one.
func (a Arc) SegmentCount(res Resolution) (int, error) {
	if a.Radius <= 0 {
		return 0, InvalidGeometryError{Curve: "arc", Message: "radius must be positive"}
	}
	if res.SegmentCount > 0 {
		return res.SegmentCount, nil
	}
	tol := res.ChordTolerance
	if tol <= 0 {
		return 0, InvalidGeometryError{Curve: "arc", Message: "chord tolerance must be positive"}
	}
	// For chord step angle θ the sagitta is r*(1 - cos(θ/2)), so the
	// largest admissible step is 2*acos(1 - tol/r).
	x := 1 - tol/a.Radius
	if x < -1 {
		x = -1
	}
	step := 2 * math.Acos(x)
	n := 1
	if step > 0 {
		n = int(math.Ceil(math.Abs(a.Sweep) / step))
	}
	if n < 1 {
		n = 1
	}
	return n, nil
}

// Points samples the arc into n+1 points for n chords.
func (a Arc) Points(res Resolution) (*Seq, error) {
	if !finite(a.Center) {
		return nil, InvalidGeometryError{Curve: "arc", Message: "center is not finite"}
	}
	n, err := a.SegmentCount(res)
	if err != nil {
		return nil, err
	}
	return newSeq(n+1, func(i int) Point {
		return a.pointAt(float64(i) / float64(n))
	}), nil
}
