package gcode

import "testing"

func TestNumber(t *testing.T) {
	tests := []struct {
		v    float64
		prec int
		want string
	}{
		{10, 3, "10"},
		{10.0004, 3, "10"},
		{10.0005, 3, "10.001"},
		{0.25, 3, "0.25"},
		{-0.0001, 3, "0"},
		{-2.5, 3, "-2.5"},
		{1.23456, 2, "1.23"},
		{1.5, 0, "2"},
		{0, 3, "0"},
	}
	for _, tt := range tests {
		if got := Number(tt.v, tt.prec); got != tt.want {
			t.Errorf("Number(%g, %d) = %q, want %q", tt.v, tt.prec, got, tt.want)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		v    float64
		prec int
		want float64
	}{
		{1.0004, 3, 1.0},
		{1.0006, 3, 1.001},
		{-1.0006, 3, -1.001},
		{2.345, 2, 2.35},
	}
	for _, tt := range tests {
		if got := Round(tt.v, tt.prec); got != tt.want {
			t.Errorf("Round(%g, %d) = %g, want %g", tt.v, tt.prec, got, tt.want)
		}
	}
}
