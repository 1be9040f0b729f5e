// Package plot turns trait measurements into an ordered list of filled
// triangles.
//
// # Algorithm
//
// For each trait in canonical order the builder sizes one right triangle
// from the trait's score (width) and percentile (height), finds its pivot
// with a [center.Calculator] and then emits cycles*flips copies of it,
// each rotated by a further multiple of the shared angle and placed so the
// pivot sits on the canvas center. Trait i starts at angle*i so the five
// groups are staggered around the center.
//
// Coordinates are integer device units with the origin at the top-left
// corner and y growing downward. Rotated vertices are truncated toward
// zero before translation, and y is flipped as H - y + 1.
//
// # Drawing
//
// A [Plot] is immutable once built. [Plot.Draw] replays it onto any
// [Canvas]: background first, then every instruction in order. Order
// matters because fills are translucent and composite over each other.
package plot

import (
	"image"
	"image/color"
	"math"

	"github.com/matzehuels/supernova/pkg/metrics"
	"github.com/matzehuels/supernova/pkg/trait"
)

// Instruction fills one triangle.
type Instruction struct {
	Trait  trait.Trait    `json:"trait"`
	Points [3]image.Point `json:"points"`
	Fill   color.NRGBA    `json:"fill"`
}

// Plot is the complete, ordered drawing of one measurement set.
type Plot struct {
	Width        int
	Height       int
	Background   color.NRGBA
	Summary      metrics.Summary
	Instructions []Instruction
}

// Canvas is a drawing surface sized to the plot.
type Canvas interface {
	FillBackground(c color.NRGBA)
	SetColor(c color.NRGBA)
	FillTriangle(p1, p2, p3 image.Point)
}

// Draw paints the background and every instruction onto c.
// The current color is only changed when it differs from the previous fill.
func (p *Plot) Draw(c Canvas) {
	c.FillBackground(p.Background)
	var (
		current color.NRGBA
		set     bool
	)
	for _, in := range p.Instructions {
		if !set || in.Fill != current {
			c.SetColor(in.Fill)
			current, set = in.Fill, true
		}
		c.FillTriangle(in.Points[0], in.Points[1], in.Points[2])
	}
}

// CountByTrait returns how many instructions each trait contributed.
func (p *Plot) CountByTrait() map[trait.Trait]int {
	out := make(map[trait.Trait]int, len(trait.All))
	for _, in := range p.Instructions {
		out[in.Trait]++
	}
	return out
}

// Vec is a point in continuous plot space (y up).
type Vec struct {
	X, Y float64
}

// Rotate turns p counter-clockwise about pivot by degrees.
func Rotate(p, pivot Vec, degrees float64) Vec {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	x := p.X - pivot.X
	y := p.Y - pivot.Y
	return Vec{
		X: x*cos - y*sin + pivot.X,
		Y: x*sin + y*cos + pivot.Y,
	}
}
