package sink

import (
	"bytes"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/supernova/pkg/errors"
)

// PNG rasterizes onto an in-memory RGBA bitmap.
type PNG struct {
	dc *gg.Context
}

// NewPNG creates a width x height bitmap surface.
func NewPNG(width, height int) *PNG {
	return &PNG{dc: gg.NewContext(width, height)}
}

func (s *PNG) FillBackground(c color.NRGBA) {
	s.dc.SetColor(c)
	s.dc.DrawRectangle(0, 0, float64(s.dc.Width()), float64(s.dc.Height()))
	s.dc.Fill()
}

func (s *PNG) SetColor(c color.NRGBA) { s.dc.SetColor(c) }

func (s *PNG) FillTriangle(p1, p2, p3 image.Point) {
	s.dc.MoveTo(float64(p1.X), float64(p1.Y))
	s.dc.LineTo(float64(p2.X), float64(p2.Y))
	s.dc.LineTo(float64(p3.X), float64(p3.Y))
	s.dc.ClosePath()
	s.dc.Fill()
}

// Image exposes the bitmap drawn so far.
func (s *PNG) Image() image.Image { return s.dc.Image() }

func (s *PNG) Finish() (Artifact, error) {
	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "failed to encode png")
	}
	return Raster{Encoding: FormatPNG, Data: buf.Bytes()}, nil
}
