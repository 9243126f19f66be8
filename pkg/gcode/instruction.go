// Package gcode turns planned motion into instruction records and renders
// them in the canonical one-instruction-per-line wire format. The dialect
// is a minimal common subset: units, absolute positioning, rapid/linear/
// arc motion, comments, spindle words, and program end.
package gcode

// Opcode enumerates the instruction families the generator emits.
type Opcode int

const (
	OpComment Opcode = iota
	OpUnitsMM
	OpUnitsInch
	OpAbsolute
	OpRapid
	OpLinear
	OpArcCW
	OpArcCCW
	OpToolChange
	OpSpindleOn
	OpSpindleOff
	OpCutComLeft
	OpCutComRight
	OpCutComOff
	OpProgramEnd
)

// Token returns the opcode's command word. Comments have no token; they
// render in their own parenthesized form.
func (op Opcode) Token() string {
	switch op {
	case OpUnitsMM:
		return "G21"
	case OpUnitsInch:
		return "G20"
	case OpAbsolute:
		return "G90"
	case OpRapid:
		return "G0"
	case OpLinear:
		return "G1"
	case OpArcCW:
		return "G2"
	case OpArcCCW:
		return "G3"
	case OpToolChange:
		return "M6"
	case OpSpindleOn:
		return "M3"
	case OpSpindleOff:
		return "M5"
	case OpCutComLeft:
		return "G41"
	case OpCutComRight:
		return "G42"
	case OpCutComOff:
		return "G40"
	case OpProgramEnd:
		return "M2"
	default:
		return ""
	}
}

func (op Opcode) String() string {
	if op == OpComment {
		return "comment"
	}
	return op.Token()
}

// IsMotion reports whether the opcode moves an axis.
func (op Opcode) IsMotion() bool {
	switch op {
	case OpRapid, OpLinear, OpArcCW, OpArcCCW:
		return true
	}
	return false
}

// Arg is one letter/value word of an instruction.
type Arg struct {
	Letter byte
	Value  float64
}

// Instruction is one record of the program. Instructions are immutable
// once created; their ordered sequence is the program.
type Instruction struct {
	Op      Opcode
	Args    []Arg
	Comment string // OpComment only
}

// argRank is the canonical word order within a line. Arguments always
// render in this order, never in insertion order.
const argRank = "XYZEIJFST"

func rankOf(letter byte) int {
	for i := 0; i < len(argRank); i++ {
		if argRank[i] == letter {
			return i
		}
	}
	return len(argRank) + int(letter)
}
