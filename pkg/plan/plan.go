// Package plan converts a validated generation spec into the ordered
// motion steps a program will perform. The planner owns its pseudo-random
// source and running position, so every generation is independent and a
// fixed seed reproduces the same plan.
package plan

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Mode is the motion mode of a single step.
type Mode int

const (
	Rapid Mode = iota // positioning move, no controlled feed
	Linear
	ArcCW
	ArcCCW
)

func (m Mode) String() string {
	switch m {
	case Rapid:
		return "rapid"
	case Linear:
		return "linear"
	case ArcCW:
		return "arc-cw"
	case ArcCCW:
		return "arc-ccw"
	default:
		return "unknown"
	}
}

// IsArc reports whether the mode is an arc interpolation.
func (m Mode) IsArc() bool { return m == ArcCW || m == ArcCCW }

// Position is an absolute machine position over the full axis set. E is
// the accumulated extrusion amount and stays zero outside extrusion mode.
type Position struct {
	X, Y, Z, E float64
}

// Planar returns the in-plane component of the position.
func (p Position) Planar() v2.Vec { return v2.Vec{X: p.X, Y: p.Y} }

// Step is one planned move. Feed is zero for rapids outside extrusion
// mode. Center is the arc center offset from the step's start point and
// is meaningful only for arc modes.
type Step struct {
	Mode   Mode
	Target Position
	Feed   float64
	Center v2.Vec
}

// Group is the motion sequence of one shape at one layer, with the
// descriptive text used for its comment line.
type Group struct {
	Desc  string
	Steps []Step
}
