package gcode

import (
	"github.com/Hutch-Bros/gcode-sample-generator/pkg/plan"
	"github.com/Hutch-Bros/gcode-sample-generator/pkg/spec"
)

// Emitter walks a motion step sequence against a running machine state and
// produces instruction records. State-dependent words (feed, axis values)
// are emitted only when their rounded value actually changes. An Emitter
// is single-use: one program per instance.
type Emitter struct {
	units     spec.Units
	precision int
	fullWords bool
	axisZ     bool // Z is part of the active axis set
	axisE     bool // E is part of the active axis set

	ins       []Instruction
	began     bool
	ended     bool
	havePos   bool
	pos       plan.Position // last emitted position
	feed      float64
	haveFeed  bool
	spindleOn bool
	cutComOn  bool
}

// NewEmitter creates an emitter configured from the normalized spec. The
// machine state starts fresh; nothing is shared between generations.
func NewEmitter(s *spec.Spec) *Emitter {
	return &Emitter{
		units:     s.Units,
		precision: s.Precision,
		fullWords: s.FullWords,
		axisZ:     s.Layers > 1 || s.StartZ != 0 || s.Approach != nil,
		axisE:     s.ExtrudeFactor > 0,
		pos:       plan.Position{X: s.StartX, Y: s.StartY, Z: s.StartZ},
	}
}

// Begin emits the one-time program prologue: the units word, absolute
// positioning, and the optional tool-change and spindle-on words. Repeated
// calls are ignored so a program has exactly one start.
func (e *Emitter) Begin(sp *spec.Spindle) {
	if e.began {
		return
	}
	e.began = true

	units := OpUnitsMM
	if e.units == spec.Inch {
		units = OpUnitsInch
	}
	e.ins = append(e.ins, Instruction{Op: units})
	e.ins = append(e.ins, Instruction{Op: OpAbsolute})

	if sp != nil {
		if sp.Tool != nil {
			e.ins = append(e.ins, Instruction{
				Op:   OpToolChange,
				Args: []Arg{{Letter: 'T', Value: float64(sp.Tool.Code)}},
			})
		}
		e.ins = append(e.ins, Instruction{
			Op:   OpSpindleOn,
			Args: []Arg{{Letter: 'S', Value: sp.RPM}},
		})
		e.spindleOn = true

		switch sp.CutCom {
		case spec.CutComLeft:
			e.ins = append(e.ins, Instruction{Op: OpCutComLeft})
			e.cutComOn = true
		case spec.CutComRight:
			e.ins = append(e.ins, Instruction{Op: OpCutComRight})
			e.cutComOn = true
		}
	}
}

// Comment emits a comment record.
func (e *Emitter) Comment(text string) {
	e.ins = append(e.ins, Instruction{Op: OpComment, Comment: text})
}

// Move emits the instruction for one motion step. Axis words are emitted
// only for axes whose rounded value changed since the last emitted
// position (the first motion carries every active axis; FullWords always
// carries them). A non-arc step whose every axis is unchanged after
// rounding emits nothing.
func (e *Emitter) Move(st plan.Step) {
	r := func(v float64) float64 { return Round(v, e.precision) }
	first := !e.havePos

	var args []Arg
	if e.fullWords || first || r(st.Target.X) != r(e.pos.X) {
		args = append(args, Arg{Letter: 'X', Value: r(st.Target.X)})
	}
	if e.fullWords || first || r(st.Target.Y) != r(e.pos.Y) {
		args = append(args, Arg{Letter: 'Y', Value: r(st.Target.Y)})
	}
	if e.axisZ && (e.fullWords || first || r(st.Target.Z) != r(e.pos.Z)) {
		args = append(args, Arg{Letter: 'Z', Value: r(st.Target.Z)})
	}
	if e.axisE && (e.fullWords || first || r(st.Target.E) != r(e.pos.E)) {
		args = append(args, Arg{Letter: 'E', Value: r(st.Target.E)})
	}

	if st.Mode.IsArc() {
		// Arcs carry the in-plane center offset, never the absolute center.
		args = append(args,
			Arg{Letter: 'I', Value: r(st.Center.X)},
			Arg{Letter: 'J', Value: r(st.Center.Y)},
		)
	} else if len(args) == 0 {
		return // sub-precision move, suppressed
	}

	if st.Feed > 0 && (st.Mode != plan.Rapid || e.axisE) {
		f := r(st.Feed)
		if !e.haveFeed || f != r(e.feed) {
			args = append(args, Arg{Letter: 'F', Value: f})
			e.feed = st.Feed
			e.haveFeed = true
		}
	}

	var op Opcode
	switch st.Mode {
	case plan.Rapid:
		op = OpRapid
	case plan.Linear:
		op = OpLinear
	case plan.ArcCW:
		op = OpArcCW
	case plan.ArcCCW:
		op = OpArcCCW
	}

	e.ins = append(e.ins, Instruction{Op: op, Args: args})
	e.pos = st.Target
	e.havePos = true
}

// End emits the program epilogue: compensation off when it was applied,
// spindle off when it was turned on, then the program stop word. Repeated
// calls are ignored.
func (e *Emitter) End() {
	if e.ended {
		return
	}
	e.ended = true
	if e.cutComOn {
		e.ins = append(e.ins, Instruction{Op: OpCutComOff})
		e.cutComOn = false
	}
	if e.spindleOn {
		e.ins = append(e.ins, Instruction{Op: OpSpindleOff})
		e.spindleOn = false
	}
	e.ins = append(e.ins, Instruction{Op: OpProgramEnd})
}

// Instructions returns the emitted records.
func (e *Emitter) Instructions() []Instruction { return e.ins }
