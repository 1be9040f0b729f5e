// Package center computes the rotation pivot of a plot triangle.
//
// Every triangle is right-angled with legs along the axes. For leg lengths
// w (horizontal) and h (vertical) the vertices are
//
//	A = (0, h), B = (w, 0), C = (w, h)
//
// with the right angle at C. A [Calculator] returns a point associated with
// that triangle; the plot builder rotates the vertices around it.
//
// Calculators are looked up by name through [Lookup]. The registry is
// fixed at init time and safe for concurrent reads.
package center

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/supernova/pkg/errors"
)

// Point is a position in plot coordinates.
type Point struct {
	X, Y float64
}

// Calculator maps a triangle's leg lengths to a pivot point.
// Implementations must be pure and must not return NaN for w = h = 0.
type Calculator interface {
	Name() string
	Center(w, h int) Point
}

// Incenter is the intersection of the angle bisectors.
//
// With side lengths a = h (opposite A), b = w (opposite B) and hypotenuse
// c = sqrt(a*a + b*b) (opposite C) the incenter is the side-weighted mean
// of the vertices.
type Incenter struct{}

func (Incenter) Name() string { return "incenter" }

func (Incenter) Center(w, h int) Point {
	a := float64(h)
	b := float64(w)
	c := math.Sqrt(a*a + b*b)
	p := a + b + c
	if p == 0 {
		return Point{}
	}
	// A=(0,h) B=(w,0) C=(w,h)
	x := (a*0 + b*float64(w) + c*float64(w)) / p
	y := (a*float64(h) + b*0 + c*float64(h)) / p
	return Point{X: x, Y: y}
}

// Centroid is the mean of the three vertices.
type Centroid struct{}

func (Centroid) Name() string { return "centroid" }

func (Centroid) Center(w, h int) Point {
	return Point{X: 2 * float64(w) / 3, Y: 2 * float64(h) / 3}
}

// Circumcenter is the midpoint of the hypotenuse.
type Circumcenter struct{}

func (Circumcenter) Name() string { return "circumcenter" }

func (Circumcenter) Center(w, h int) Point {
	return Point{X: float64(w) / 2, Y: float64(h) / 2}
}

// DefaultName is the calculator used when none is configured.
const DefaultName = "incenter"

var registry = map[string]Calculator{
	"incenter":     Incenter{},
	"centroid":     Centroid{},
	"circumcenter": Circumcenter{},
}

// Lookup returns the calculator registered under name (case-insensitive).
// An unknown name yields an UNKNOWN_CENTER error.
func Lookup(name string) (Calculator, error) {
	if c, ok := registry[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c, nil
	}
	return nil, errors.New(errors.ErrCodeUnknownCenter,
		"unknown center %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Default returns the incenter calculator.
func Default() Calculator { return Incenter{} }

// Names lists registered calculator names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
