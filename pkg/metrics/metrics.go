// Package metrics derives the scalar quantities that drive a supernova plot
// from a set of trait measurements.
//
// All sums iterate [trait.All] so results are reproducible bit for bit.
// Callers are expected to have run [trait.Measurements.Validate]; missing
// traits contribute zero here.
package metrics

import (
	"math"

	"github.com/matzehuels/supernova/pkg/trait"
)

// Angle is the rotation step in degrees: the sum of every percentile
// divided by five.
func Angle(m trait.Measurements) float64 {
	var a float64
	for _, t := range trait.All {
		a += m[t].Percentile / 5
	}
	return a
}

// NumFlips maps a percentile to its flip count in the range 1..5.
//
//	p <= 19 -> 1, p <= 39 -> 2, p <= 59 -> 3, p <= 79 -> 4, otherwise 5
//
// Values outside 0..100 follow the same bands.
func NumFlips(percentile float64) int {
	switch {
	case percentile <= 19:
		return 1
	case percentile <= 39:
		return 2
	case percentile <= 59:
		return 3
	case percentile <= 79:
		return 4
	default:
		return 5
	}
}

// Flips returns the flip count of every trait in m.
func Flips(m trait.Measurements) map[trait.Trait]int {
	out := make(map[trait.Trait]int, len(trait.All))
	for _, t := range trait.All {
		out[t] = NumFlips(m[t].Percentile)
	}
	return out
}

// OverallFlipCycles rounds the sum of all scores half away from zero.
func OverallFlipCycles(m trait.Measurements) int {
	var s float64
	for _, t := range trait.All {
		s += m[t].Score
	}
	return int(math.Round(s))
}

// Summary bundles the derived metrics of one measurement set.
type Summary struct {
	Angle  float64             `json:"angle"`
	Cycles int                 `json:"cycles"`
	Flips  map[trait.Trait]int `json:"flips"`
}

// Compute derives all metrics for m.
func Compute(m trait.Measurements) Summary {
	return Summary{
		Angle:  Angle(m),
		Cycles: OverallFlipCycles(m),
		Flips:  Flips(m),
	}
}

// Triangles returns how many triangles a full draw of s emits.
func (s Summary) Triangles() int {
	n := 0
	if s.Cycles <= 0 {
		return 0
	}
	for _, t := range trait.All {
		n += s.Cycles * s.Flips[t]
	}
	return n
}
