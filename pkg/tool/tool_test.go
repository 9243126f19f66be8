package tool

import (
	"math/rand"
	"testing"
)

func TestSpindleRPM(t *testing.T) {
	tests := []struct {
		diameter float64
		sfm      float64
		want     float64
	}{
		{0.5, 600, 4584},
		{1.0, 382, 1459.24},
		{0.25, 100, 1528},
	}
	for _, tt := range tests {
		tl := Tool{Diameter: tt.diameter}
		if got := tl.SpindleRPM(tt.sfm); got != tt.want {
			t.Errorf("SpindleRPM(%g) with diameter %g = %g, want %g",
				tt.sfm, tt.diameter, got, tt.want)
		}
	}
}

func TestFeedrate(t *testing.T) {
	tl := Tool{Diameter: 0.5}
	if got := tl.Feedrate(0.003, 4584); got != 13.75 {
		t.Errorf("Feedrate(0.003, 4584) = %g, want 13.75", got)
	}
}

func TestRandomValuesWithinRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tl := Tool{
		Diameter: 0.5,
		IPT:      Range{Min: 0.001, Max: 0.005},
		SFM:      Range{Min: 200, Max: 800},
	}
	for i := 0; i < 50; i++ {
		rpm := tl.RandomRPM(rng)
		lo, hi := tl.SpindleRPM(tl.SFM.Min), tl.SpindleRPM(tl.SFM.Max)
		if rpm < lo || rpm > hi {
			t.Fatalf("RandomRPM = %g, want within [%g, %g]", rpm, lo, hi)
		}
		feed := tl.RandomFeedrate(rng, rpm)
		if feed < tl.Feedrate(tl.IPT.Min, rpm)-0.01 || feed > tl.Feedrate(tl.IPT.Max, rpm)+0.01 {
			t.Fatalf("RandomFeedrate = %g out of range at rpm %g", feed, rpm)
		}
	}
}

func TestRandomToolPlausible(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		tl := RandomTool(rng)
		if tl.Code < 100000 || tl.Code > 999999 {
			t.Errorf("Code = %d, want six digits", tl.Code)
		}
		if tl.Type != "endmill" {
			t.Errorf("Type = %q, want endmill", tl.Type)
		}
		if tl.Diameter < 0.25 || tl.Diameter > 3.0 {
			t.Errorf("Diameter = %g, want within [0.25, 3]", tl.Diameter)
		}
		if tl.Flutes < 2 || tl.Flutes > 6 {
			t.Errorf("Flutes = %d, want within [2, 6]", tl.Flutes)
		}
		if tl.CutLength <= 0 || tl.CutLength > tl.Length {
			t.Errorf("CutLength = %g with Length %g", tl.CutLength, tl.Length)
		}
		if tl.IPT.Min > tl.IPT.Max || tl.IPT.Max > 0.02 {
			t.Errorf("IPT range = %+v", tl.IPT)
		}
		if tl.SFM.Min > tl.SFM.Max || tl.SFM.Max > 1000 {
			t.Errorf("SFM range = %+v", tl.SFM)
		}
	}
}

func TestRandomLibraryDeterministic(t *testing.T) {
	a := RandomLibrary(rand.New(rand.NewSource(42)), 8)
	b := RandomLibrary(rand.New(rand.NewSource(42)), 8)
	if len(a) != 8 || len(b) != 8 {
		t.Fatalf("library sizes = %d, %d, want 8", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("tool %d differs for same seed: %+v vs %+v", i, a[i], b[i])
		}
	}
}
