package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

// SVG writes markup where each color change opens a new <g> carrying the
// fill, and triangles are emitted as <polygon> elements inside it.
type SVG struct {
	buf    bytes.Buffer
	canvas *svg.SVG
	w, h   int
	open   bool
}

// NewSVG creates a markup surface.
func NewSVG(width, height int) *SVG {
	s := &SVG{w: width, h: height}
	s.canvas = svg.New(&s.buf)
	s.canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))
	s.canvas.Title("supernova")
	return s
}

func (s *SVG) FillBackground(c color.NRGBA) {
	s.canvas.Rect(0, 0, s.w, s.h, fillAttrs(c)...)
}

func (s *SVG) SetColor(c color.NRGBA) {
	if s.open {
		s.canvas.Gend()
	}
	s.canvas.Group(fillAttrs(c)...)
	s.open = true
}

func (s *SVG) FillTriangle(p1, p2, p3 image.Point) {
	s.canvas.Polygon([]int{p1.X, p2.X, p3.X}, []int{p1.Y, p2.Y, p3.Y})
}

func (s *SVG) Finish() (Artifact, error) {
	if s.open {
		s.canvas.Gend()
		s.open = false
	}
	s.canvas.End()
	return Markup{Language: FormatSVG, Text: s.buf.String()}, nil
}

func fillAttrs(c color.NRGBA) []string {
	attrs := []string{fmt.Sprintf(`fill="rgb(%d,%d,%d)"`, c.R, c.G, c.B)}
	if c.A < 255 {
		attrs = append(attrs, `fill-opacity="`+strconv.FormatFloat(float64(c.A)/255, 'f', 4, 64)+`"`)
	}
	return attrs
}
