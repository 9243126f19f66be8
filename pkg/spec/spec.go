// Package spec defines the generation spec: the immutable, declarative
// description of a G-code program to synthesize. A spec is validated once
// at entry; generation never begins on an invalid spec.
package spec

import (
	"github.com/Hutch-Bros/gcode-sample-generator/pkg/geom"
	"github.com/Hutch-Bros/gcode-sample-generator/pkg/tool"
)

// DefaultPrecision is the number of decimal places used for coordinate and
// feed words when the spec does not set one.
const DefaultPrecision = 3

// Units selects the measurement system of the generated program.
type Units int

const (
	Millimeter Units = iota
	Inch
)

func (u Units) String() string {
	switch u {
	case Millimeter:
		return "millimeter"
	case Inch:
		return "inch"
	default:
		return "unknown"
	}
}

// ArcMode selects whether arc primitives emit native arc words (G2/G3) or
// are linearized into chord moves.
type ArcMode int

const (
	ArcNative ArcMode = iota
	ArcLinearized
)

func (m ArcMode) String() string {
	switch m {
	case ArcNative:
		return "native"
	case ArcLinearized:
		return "linearized"
	default:
		return "unknown"
	}
}

// CutComMode selects cutter compensation for the spindle's tool. When set,
// the compensation word brackets the program's cutting motion: G41/G42
// after the spindle starts, G40 before it stops.
type CutComMode int

const (
	CutComNone CutComMode = iota
	CutComLeft
	CutComRight
)

func (m CutComMode) String() string {
	switch m {
	case CutComNone:
		return "none"
	case CutComLeft:
		return "left"
	case CutComRight:
		return "right"
	default:
		return "unknown"
	}
}

// Jitter perturbs feed-move targets by a seeded pseudo-random offset, for
// generating noisy test fixtures. The same seed reproduces the same
// program byte for byte.
type Jitter struct {
	Seed      int64
	Magnitude float64 // maximum offset per axis, program units
}

// Spindle adds tool-change and spindle-on words to the program prologue.
type Spindle struct {
	Tool   *tool.Tool // optional; emits a tool change when set
	RPM    float64
	CutCom CutComMode // requires a Tool that supports compensation
}

// Approach wraps every shape in approach, plunge, and retract motion: the
// tool arrives above the shape's first point at the clearance height,
// drops to just above the cut, plunges at the plunge feed, and retracts
// back to the clearance height after the shape's last motion.
type Approach struct {
	Clearance  float64 // Z standoff for positioning moves above the cut plane
	PlungeFeed float64 // feed for the final plunge; defaults to FeedRate
}

// Spec is the full description of one generated program. Build specs with
// New so defaults are in place, then set fields directly; a Spec is
// treated as immutable once handed to the generator.
type Spec struct {
	Shapes []Shape

	Units      Units
	FeedRate   float64
	TravelRate float64 // defaults to FeedRate; used for travel moves in extrusion mode
	Resolution geom.Resolution

	Layers      int     // repetitions of the full shape list, stacked on Z
	LayerHeight float64 // Z offset per layer; required when Layers > 1

	ArcMode  ArcMode
	Jitter   *Jitter
	Spindle  *Spindle
	Approach *Approach

	// Start is where the machine is assumed to begin; shape geometry is
	// authored relative to this point.
	StartX, StartY, StartZ float64

	Precision       int  // decimal places for emitted numbers; 0 emits integer words
	MaxInstructions int  // 0 = unlimited
	FullWords       bool // emit every active axis word on every motion

	// ExtrudeFactor > 0 enables the E axis: extrusion accumulates as path
	// length times this factor over feed moves.
	ExtrudeFactor float64
}

// New returns a Spec with defaults applied: millimeter units, a single
// layer, native arcs, DefaultPrecision.
func New() *Spec {
	return &Spec{
		Units:     Millimeter,
		Layers:    1,
		ArcMode:   ArcNative,
		Precision: DefaultPrecision,
	}
}

// Normalized returns a copy with remaining defaults filled in: zero Layers
// becomes one, zero TravelRate becomes FeedRate. Precision is left as-is;
// zero is a valid setting (integer words) and the default comes from New.
// The receiver is not modified.
func (s *Spec) Normalized() *Spec {
	n := *s
	n.Shapes = append([]Shape(nil), s.Shapes...)
	if n.Layers == 0 {
		n.Layers = 1
	}
	if n.TravelRate == 0 {
		n.TravelRate = n.FeedRate
	}
	if n.Approach != nil && n.Approach.PlungeFeed == 0 {
		a := *n.Approach
		a.PlungeFeed = n.FeedRate
		n.Approach = &a
	}
	return &n
}
