// Package config defines the per-render configuration of a supernova plot.
//
// A [Config] is built once per render from functional options applied over
// [Default] and is passed by value afterwards. Options never fail: values
// outside their valid range are ignored and the previous value is kept, so
// a bad --opacity leaves the default in place rather than aborting a batch.
//
// Configuration files use TOML; see [Load].
package config

import (
	"image/color"

	"github.com/matzehuels/supernova/pkg/center"
	"github.com/matzehuels/supernova/pkg/style"
)

// Default values.
const (
	DefaultOpacity = 0.1
	DefaultMargin  = 0.1
	DefaultWidth   = 2000
	DefaultHeight  = 2000
)

// Config is the immutable render configuration.
type Config struct {
	Background         color.NRGBA
	Opacity            float64 // triangle fill opacity in [0,1]
	Margin             float64 // fraction of the canvas kept free on each side, in [0,1]
	Width, Height      int     // canvas size in device units
	Center             string  // triangle center algorithm, see center.Lookup
	OnlyFirstIteration bool    // emit one triangle per trait (debug)
}

// Option modifies a Config under construction.
type Option func(*Config)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Background: style.Black,
		Opacity:    DefaultOpacity,
		Margin:     DefaultMargin,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Center:     center.DefaultName,
	}
}

// New applies opts over [Default].
func New(opts ...Option) Config {
	return Default().With(opts...)
}

// With returns a copy of c with opts applied.
func (c Config) With(opts ...Option) Config {
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// WithBackground sets the background color.
func WithBackground(bg color.NRGBA) Option {
	return func(c *Config) { c.Background = bg }
}

// WithOpacity sets the fill opacity. Values outside [0,1] are ignored.
func WithOpacity(v float64) Option {
	return func(c *Config) {
		if v >= 0 && v <= 1 {
			c.Opacity = v
		}
	}
}

// WithMargin sets the margin fraction. Values outside [0,1] are ignored.
func WithMargin(v float64) Option {
	return func(c *Config) {
		if v >= 0 && v <= 1 {
			c.Margin = v
		}
	}
}

// WithWidth sets the canvas width. Non-positive values are ignored.
func WithWidth(w int) Option {
	return func(c *Config) {
		if w > 0 {
			c.Width = w
		}
	}
}

// WithHeight sets the canvas height. Non-positive values are ignored.
func WithHeight(h int) Option {
	return func(c *Config) {
		if h > 0 {
			c.Height = h
		}
	}
}

// WithCenter selects the triangle center algorithm by name. Empty names
// are ignored; unknown names are reported when the plot is built.
func WithCenter(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.Center = name
		}
	}
}

// WithOnlyFirstIteration toggles the single-triangle debug mode.
func WithOnlyFirstIteration(on bool) Option {
	return func(c *Config) { c.OnlyFirstIteration = on }
}

// CenterCalculator resolves c.Center.
func (c Config) CenterCalculator() (center.Calculator, error) {
	return center.Lookup(c.Center)
}
