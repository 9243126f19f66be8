// Package geom provides the planar primitives used to trace toolpaths.
// A primitive is parameterized once and then sampled into a finite point
// sequence at a caller-chosen resolution. Sampling never mutates the
// primitive, so the same primitive can be sampled any number of times.
package geom

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Point is a planar coordinate.
type Point = v2.Vec

// InvalidGeometryError reports a degenerate or mathematically undefined
// primitive, such as a non-positive radius or chord tolerance.
type InvalidGeometryError struct {
	Curve   string // which primitive ("arc", "polyline", ...)
	Message string
}

func (e InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: %s: %s", e.Curve, e.Message)
}

// Resolution selects how densely curved primitives are linearized.
// Exactly one field may be set: SegmentCount forces a fixed number of
// chords, ChordTolerance bounds the maximum chord deviation instead.
type Resolution struct {
	SegmentCount   int
	ChordTolerance float64
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
