package style

import (
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Named colors accepted by [ParseColor]. Keys are lower case.
var named = map[string]color.NRGBA{
	"black":     {0, 0, 0, 255},
	"blue":      {0, 0, 255, 255},
	"cyan":      {0, 255, 255, 255},
	"darkgray":  {64, 64, 64, 255},
	"darkgrey":  {64, 64, 64, 255},
	"gray":      {128, 128, 128, 255},
	"grey":      {128, 128, 128, 255},
	"green":     {0, 255, 0, 255},
	"lightgray": {192, 192, 192, 255},
	"lightgrey": {192, 192, 192, 255},
	"magenta":   {255, 0, 255, 255},
	"orange":    {255, 200, 0, 255},
	"pink":      {255, 175, 175, 255},
	"red":       {255, 0, 0, 255},
	"white":     {255, 255, 255, 255},
	"yellow":    {255, 255, 0, 255},
}

// Common palette entries.
var (
	Black  = named["black"]
	Orange = named["orange"]
	Yellow = named["yellow"]
	Green  = named["green"]
	Blue   = named["blue"]
	Red    = named["red"]
)

// ParseColor decodes s as "#RRGGBB", "#AARRGGBB" (alpha first) or a named
// color, case-insensitively. The leading '#' is optional. Input that cannot
// be decoded yields def.
func ParseColor(s string, def color.NRGBA) color.NRGBA {
	c, ok := LookupColor(s)
	if !ok {
		return def
	}
	return c
}

// LookupColor is [ParseColor] without the fallback.
func LookupColor(s string) (color.NRGBA, bool) {
	s = strings.TrimSpace(s)
	hex := strings.TrimPrefix(s, "#")

	switch len(hex) {
	case 6:
		if c, err := colorful.Hex("#" + hex); err == nil {
			r, g, b := c.RGB255()
			return color.NRGBA{r, g, b, 255}, true
		}
	case 8:
		a, err := strconv.ParseUint(hex[:2], 16, 8)
		if err != nil {
			break
		}
		if c, err := colorful.Hex("#" + hex[2:]); err == nil {
			r, g, b := c.RGB255()
			return color.NRGBA{r, g, b, uint8(a)}, true
		}
	}

	c, ok := named[strings.ToLower(s)]
	return c, ok
}

// Hex formats c as "#RRGGBB", or "#AARRGGBB" when c is not fully opaque.
func Hex(c color.NRGBA) string {
	if c.A < 255 {
		return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// WithAlpha returns c with its alpha channel replaced by round(255*opacity).
func WithAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = Alpha(opacity)
	return c
}

// Alpha converts an opacity in [0,1] to an 8-bit alpha, rounding half up.
// Values outside the interval saturate.
func Alpha(opacity float64) uint8 {
	v := 255*opacity + 0.5
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// ColorNames lists the accepted color names, sorted.
func ColorNames() []string {
	out := make([]string, 0, len(named))
	for n := range named {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
