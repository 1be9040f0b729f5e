// Package style holds the color palette of a supernova plot.
//
// A [Style] assigns one color per trait. Colors are always stored opaque;
// the render opacity is applied by the plot builder through [WithAlpha].
// Colors are parsed leniently: [ParseColor] never fails and returns the
// caller's default for input it cannot decode.
package style

import (
	"image/color"

	"github.com/matzehuels/supernova/pkg/trait"
)

// Style maps traits to their fill color.
type Style map[trait.Trait]color.NRGBA

// DefaultStyle returns the built-in palette:
// openness orange, extraversion yellow, agreeableness green,
// conscientiousness blue, neuroticism red.
func DefaultStyle() Style {
	return Style{
		trait.Openness:          Orange,
		trait.Extraversion:      Yellow,
		trait.Agreeableness:     Green,
		trait.Conscientiousness: Blue,
		trait.Neuroticism:       Red,
	}
}

// Color returns the color of t, falling back to the default palette and
// finally to black.
func (s Style) Color(t trait.Trait) color.NRGBA {
	if c, ok := s[t]; ok {
		return c
	}
	if c, ok := DefaultStyle()[t]; ok {
		return c
	}
	return Black
}

// With returns a copy of s with t set to c.
func (s Style) With(t trait.Trait, c color.NRGBA) Style {
	out := s.Clone()
	out[t] = c
	return out
}

// Merge returns a copy of s with every entry of specs parsed on top.
// Spec strings that fail to parse keep the current color. Keys that are
// not traits are ignored.
func (s Style) Merge(specs map[string]string) Style {
	out := s.Clone()
	for k, v := range specs {
		t, ok := trait.Parse(k)
		if !ok {
			continue
		}
		out[t] = ParseColor(v, out.Color(t))
	}
	return out
}

// Clone returns an independent copy of s.
func (s Style) Clone() Style {
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
