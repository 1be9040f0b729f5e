package sink

import (
	"encoding/json"
	"image"
	"image/color"

	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/style"
)

// JSON records the draw calls it receives. Colors are written with
// [style.Hex] so the dump can be fed back through the color parser.
type JSON struct {
	out     jsonOutput
	current string
}

type jsonOutput struct {
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Background string         `json:"background"`
	Triangles  []jsonTriangle `json:"triangles"`
}

type jsonTriangle struct {
	Fill   string    `json:"fill"`
	Points [3][2]int `json:"points"`
}

// NewJSON creates an instruction-recording surface.
func NewJSON(width, height int) *JSON {
	return &JSON{out: jsonOutput{Width: width, Height: height, Triangles: []jsonTriangle{}}}
}

func (s *JSON) FillBackground(c color.NRGBA) { s.out.Background = style.Hex(c) }

func (s *JSON) SetColor(c color.NRGBA) { s.current = style.Hex(c) }

func (s *JSON) FillTriangle(p1, p2, p3 image.Point) {
	s.out.Triangles = append(s.out.Triangles, jsonTriangle{
		Fill:   s.current,
		Points: [3][2]int{{p1.X, p1.Y}, {p2.X, p2.Y}, {p3.X, p3.Y}},
	})
}

func (s *JSON) Finish() (Artifact, error) {
	data, err := json.MarshalIndent(s.out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "failed to encode json")
	}
	return Markup{Language: FormatJSON, Text: string(data) + "\n"}, nil
}
