// Package tool models cutting tools and the synthetic tool libraries used
// to parameterize generated sample programs. Feed and spindle values are
// derived from a tool's surface-speed (SFM) and chip-load (IPT) ranges the
// way a machinist would pick them, which keeps generated fixtures in
// plausible numeric ranges.
package tool

import (
	"math"
	"math/rand"
)

// Range is a closed numeric interval.
type Range struct {
	Min, Max float64
}

// draw picks a value from the range using the supplied source.
func (r Range) draw(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Tool describes a single cutting tool. Dimensions are in inches, matching
// the catalog conventions the ranges were taken from.
type Tool struct {
	Code      int    // tool-change number (T word)
	Type      string // e.g. "endmill"
	Diameter  float64
	Flutes    int
	Length    float64
	CutLength float64
	IPT       Range // chip load, inches per tooth
	SFM       Range // surface speed, surface feet per minute
	Indexable bool
	Coolant   bool
	Air       bool
	CutCom    bool // supports cutter compensation
}

// SpindleRPM converts a surface speed to spindle RPM for this tool.
func (t Tool) SpindleRPM(sfm float64) float64 {
	return round2(sfm * 3.82 / t.Diameter)
}

// Feedrate computes a feed rate from a chip load and spindle RPM.
func (t Tool) Feedrate(ipt, rpm float64) float64 {
	return round2(ipt * rpm)
}

// RandomRPM draws a surface speed from the tool's SFM range and converts
// it to RPM. The rng is supplied by the caller so generation stays
// reproducible for a fixed seed.
func (t Tool) RandomRPM(rng *rand.Rand) float64 {
	return t.SpindleRPM(t.SFM.draw(rng))
}

// RandomFeedrate draws a chip load from the tool's IPT range and converts
// it to a feed rate at the given RPM.
func (t Tool) RandomFeedrate(rng *rand.Rand, rpm float64) float64 {
	return t.Feedrate(t.IPT.draw(rng), rpm)
}

// commonDiameters are stocked endmill diameters in 1/8" increments.
var commonDiameters = []float64{
	0.25, 0.375, 0.5, 0.625, 0.75, 0.875, 1.0, 1.125, 1.25, 1.375, 1.5,
	1.625, 1.75, 1.875, 2.0, 2.125, 2.25, 2.375, 2.5, 2.625, 2.75, 2.875, 3.0,
}

// RandomTool generates a synthetic endmill with plausible catalog values.
func RandomTool(rng *rand.Rand) Tool {
	length := round4(3.0 + rng.Float64()*5.0)
	iptMin := round4(0.0005 + rng.Float64()*0.0195)
	iptMax := math.Min(round4(iptMin*(1.0+rng.Float64()*4.0)), 0.02)
	sfmMin := round4(50 + rng.Float64()*950)
	sfmMax := math.Min(round4(sfmMin*(1.0+rng.Float64()*2.0)), 1000)

	return Tool{
		Code:      100000 + rng.Intn(900000),
		Type:      "endmill",
		Diameter:  commonDiameters[rng.Intn(len(commonDiameters))],
		Flutes:    2 + rng.Intn(5),
		Length:    length,
		CutLength: round4((0.1 + rng.Float64()*0.5) * length),
		IPT:       Range{Min: iptMin, Max: iptMax},
		SFM:       Range{Min: sfmMin, Max: sfmMax},
		Indexable: rng.Intn(2) == 0,
		Coolant:   rng.Intn(2) == 0,
		Air:       rng.Intn(2) == 0,
		CutCom:    rng.Intn(2) == 0,
	}
}

// RandomLibrary generates n synthetic tools from the same source.
func RandomLibrary(rng *rand.Rand, n int) []Tool {
	tools := make([]Tool, n)
	for i := range tools {
		tools[i] = RandomTool(rng)
	}
	return tools
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
