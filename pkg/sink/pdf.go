package sink

import (
	"bytes"
	"image"
	"image/color"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/supernova/pkg/buildinfo"
	"github.com/matzehuels/supernova/pkg/errors"
)

// epoch is stamped as creation and modification date so equal plots
// produce byte-identical documents.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// PDF draws onto a single page sized width x height points.
type PDF struct {
	doc *fpdf.Fpdf
	w   float64
	h   float64
}

// NewPDF creates a one-page document surface.
func NewPDF(width, height int) *PDF {
	w, h := float64(width), float64(height)
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreationDate(epoch)
	doc.SetModificationDate(epoch)
	doc.SetProducer(buildinfo.Producer(), true)
	doc.AddPage()
	return &PDF{doc: doc, w: w, h: h}
}

func (s *PDF) FillBackground(c color.NRGBA) {
	s.SetColor(c)
	s.doc.Rect(0, 0, s.w, s.h, "F")
}

func (s *PDF) SetColor(c color.NRGBA) {
	s.doc.SetFillColor(int(c.R), int(c.G), int(c.B))
	s.doc.SetAlpha(float64(c.A)/255, "Normal")
}

func (s *PDF) FillTriangle(p1, p2, p3 image.Point) {
	s.doc.Polygon([]fpdf.PointType{
		{X: float64(p1.X), Y: float64(p1.Y)},
		{X: float64(p2.X), Y: float64(p2.Y)},
		{X: float64(p3.X), Y: float64(p3.Y)},
	}, "F")
}

func (s *PDF) Finish() (Artifact, error) {
	var buf bytes.Buffer
	if err := s.doc.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "failed to encode pdf")
	}
	return Document{Encoding: FormatPDF, Data: buf.Bytes()}, nil
}
