package spec

import (
	"fmt"

	"github.com/Hutch-Bros/gcode-sample-generator/pkg/geom"
)

// ShapeKind enumerates the shapes a spec can ask for.
type ShapeKind int

const (
	ShapeLine ShapeKind = iota
	ShapeRect
	ShapeCircle
	ShapeArc
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeLine:
		return "line"
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	case ShapeArc:
		return "arc"
	case ShapePolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is one entry in a spec's shape list.
type Shape struct {
	Kind ShapeKind
	Name string // optional; used in the shape's comment line
	Data ShapeData
}

// ShapeData is the interface for kind-specific shape parameters.
type ShapeData interface {
	shapeData() // marker method restricting implementations to this package
}

// LineData traces a straight path between two points.
type LineData struct {
	From, To geom.Point
}

func (LineData) shapeData() {}

// Line is shorthand for a line from the start position along +X.
func Line(length float64) Shape {
	return Shape{Kind: ShapeLine, Data: LineData{To: geom.Point{X: length}}}
}

// RectData traces an axis-aligned rectangle with its lower-left corner at
// the start position, counter-clockwise, closed.
type RectData struct {
	Width, Height float64
}

func (RectData) shapeData() {}

// Rect is shorthand for a rectangle shape.
func Rect(width, height float64) Shape {
	return Shape{Kind: ShapeRect, Data: RectData{Width: width, Height: height}}
}

// CircleData traces a full circle counter-clockwise, starting at the
// rightmost point. Center is relative to the start position.
type CircleData struct {
	Center geom.Point
	Radius float64
}

func (CircleData) shapeData() {}

// Circle is shorthand for a circle centered on the start position.
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Data: CircleData{Radius: radius}}
}

// ArcData traces a circular arc. Angles are in radians; a positive Sweep
// runs counter-clockwise. Center is relative to the start position.
type ArcData struct {
	Center     geom.Point
	Radius     float64
	StartAngle float64
	Sweep      float64
}

func (ArcData) shapeData() {}

// PolygonData traces an ordered vertex path, closed unless Open is set.
// Vertices are relative to the start position.
type PolygonData struct {
	Vertices []geom.Point
	Open     bool
}

func (PolygonData) shapeData() {}

// Label returns the comment text used to introduce the shape's motions:
// the shape's Name when set, otherwise a short description.
func (s Shape) Label() string {
	if s.Name != "" {
		return s.Name
	}
	switch d := s.Data.(type) {
	case LineData:
		return "line"
	case RectData:
		return fmt.Sprintf("rect %gx%g", d.Width, d.Height)
	case CircleData:
		return fmt.Sprintf("circle r%g", d.Radius)
	case ArcData:
		return fmt.Sprintf("arc r%g", d.Radius)
	case PolygonData:
		return fmt.Sprintf("polygon %d", len(d.Vertices))
	default:
		return s.Kind.String()
	}
}
