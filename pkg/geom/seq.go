package geom

// Seq is a lazy, finite, restartable sequence of sample points produced by
// sampling a primitive. The points are computed on demand; Reset rewinds
// to the first point without resampling.
type Seq struct {
	n  int
	i  int
	at func(i int) Point
}

func newSeq(n int, at func(int) Point) *Seq {
	return &Seq{n: n, at: at}
}

// Len returns the total number of points in the sequence.
func (s *Seq) Len() int { return s.n }

// Next returns the next point, or false when the sequence is exhausted.
func (s *Seq) Next() (Point, bool) {
	if s.i >= s.n {
		return Point{}, false
	}
	p := s.at(s.i)
	s.i++
	return p, true
}

// Reset rewinds the sequence to its first point.
func (s *Seq) Reset() { s.i = 0 }

// All drains the remaining points into a slice.
func (s *Seq) All() []Point {
	pts := make([]Point, 0, s.n-s.i)
	for {
		p, ok := s.Next()
		if !ok {
			return pts
		}
		pts = append(pts, p)
	}
}
