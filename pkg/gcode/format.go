package gcode

import (
	"math"
	"strconv"
	"strings"
)

// Round returns v rounded to prec decimal places. All coordinate and feed
// comparisons happen on rounded values, so positions differing only below
// the precision are treated as equal.
func Round(v float64, prec int) float64 {
	m := math.Pow10(prec)
	return math.Round(v*m) / m
}

// Number renders v rounded to prec decimals with trailing zeros trimmed,
// so "10.000" becomes "10" and "0.250" becomes "0.25".
func Number(v float64, prec int) string {
	s := strconv.FormatFloat(Round(v, prec), 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
