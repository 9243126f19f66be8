package gcode

import (
	"sort"
	"strings"
)

// Serialize renders instructions into the textual wire format, one record
// per line-break-terminated line. The function is pure: byte-identical
// input yields byte-identical output.
func Serialize(ins []Instruction, precision int) string {
	var b strings.Builder
	for _, in := range ins {
		writeLine(&b, in, precision)
	}
	return b.String()
}

func writeLine(b *strings.Builder, in Instruction, precision int) {
	if in.Op == OpComment {
		b.WriteString("( ")
		b.WriteString(in.Comment)
		b.WriteString(" )\n")
		return
	}
	b.WriteString(in.Op.Token())
	for _, a := range canonicalArgs(in.Args) {
		b.WriteByte(' ')
		b.WriteByte(a.Letter)
		b.WriteString(Number(a.Value, precision))
	}
	b.WriteByte('\n')
}

// canonicalArgs returns the arguments sorted into canonical word order.
// The input slice is never modified.
func canonicalArgs(args []Arg) []Arg {
	if len(args) < 2 {
		return args
	}
	sorted := append([]Arg(nil), args...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rankOf(sorted[i].Letter) < rankOf(sorted[j].Letter)
	})
	return sorted
}
