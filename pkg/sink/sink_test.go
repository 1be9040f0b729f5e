package sink

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/supernova/pkg/config"
	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/plot"
	"github.com/matzehuels/supernova/pkg/style"
	"github.com/matzehuels/supernova/pkg/trait"
)

var _ plot.Canvas = (*PNG)(nil)
var _ Surface = (*PDF)(nil)
var _ Surface = (*SVG)(nil)
var _ Surface = (*JSON)(nil)

func samplePlot(t *testing.T) *plot.Plot {
	t.Helper()
	m := trait.Measurements{
		trait.Openness:          {Score: 4.3, Percentile: 59},
		trait.Extraversion:      {Score: 2.2, Percentile: 18},
		trait.Agreeableness:     {Score: 4.2, Percentile: 63},
		trait.Conscientiousness: {Score: 3.5, Percentile: 52},
		trait.Neuroticism:       {Score: 2.4, Percentile: 25},
	}
	cfg := config.New(config.WithWidth(200), config.WithHeight(150))
	p, err := plot.NewBuilder(cfg, style.DefaultStyle()).Build(m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"png", "png", false},
		{"PDF", "pdf", false},
		{" svg ", "svg", false},
		{"json", "json", false},
		{"gif", "", true},
	}

	for _, tt := range tests {
		f, err := Lookup(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("Lookup(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, errors.ErrCodeUnknownFormat) {
				t.Errorf("Lookup(%q) code = %s, want UNKNOWN_FORMAT", tt.name, errors.GetCode(err))
			}
			continue
		}
		if f.Name != tt.want {
			t.Errorf("Lookup(%q).Name = %q, want %q", tt.name, f.Name, tt.want)
		}
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"out/a.png", "png", true},
		{"A.SVG", "svg", true},
		{"report.pdf", "pdf", true},
		{"plain", "", false},
		{"photo.jpeg", "", false},
	}

	for _, tt := range tests {
		f, ok := FormatForPath(tt.path)
		if ok != tt.wantOK || f.Name != tt.want {
			t.Errorf("FormatForPath(%q) = (%q, %v), want (%q, %v)", tt.path, f.Name, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNames(t *testing.T) {
	want := []string{"json", "pdf", "png", "svg"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if len(Formats()) != len(want) {
		t.Errorf("len(Formats()) = %d, want %d", len(Formats()), len(want))
	}
}

func TestPNGPixels(t *testing.T) {
	s := NewPNG(10, 10)
	s.FillBackground(color.NRGBA{0, 0, 0, 255})
	s.SetColor(color.NRGBA{255, 0, 0, 255})
	s.FillTriangle(image.Pt(0, 0), image.Pt(10, 0), image.Pt(0, 10))

	img := s.Image()
	if got := color.RGBAModel.Convert(img.At(2, 2)); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("inside pixel = %v, want red", got)
	}
	if got := color.RGBAModel.Convert(img.At(9, 9)); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("outside pixel = %v, want black", got)
	}
}

func TestPNGArtifact(t *testing.T) {
	p := samplePlot(t)
	a, err := Render(p, FormatPNG)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	r, ok := a.(Raster)
	if !ok {
		t.Fatalf("artifact = %T, want Raster", a)
	}

	img, err := png.Decode(bytes.NewReader(r.Data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("bounds = %v, want 200x150", b)
	}
}

func TestPDFArtifact(t *testing.T) {
	p := samplePlot(t)

	a, err := Render(p, FormatPDF)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	d, ok := a.(Document)
	if !ok {
		t.Fatalf("artifact = %T, want Document", a)
	}
	if !bytes.HasPrefix(d.Data, []byte("%PDF-")) {
		t.Errorf("document does not start with a PDF header: %q", d.Data[:min(len(d.Data), 16)])
	}

	again, err := Render(p, FormatPDF)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(d.Data, again.Bytes()) {
		t.Error("PDF output should be deterministic")
	}
}

func TestSVGArtifact(t *testing.T) {
	s := NewSVG(100, 100)
	s.FillBackground(color.NRGBA{0, 0, 0, 255})
	s.SetColor(color.NRGBA{255, 200, 0, 26})
	s.FillTriangle(image.Pt(25, 1), image.Pt(75, 101), image.Pt(75, 1))
	s.SetColor(color.NRGBA{255, 0, 0, 26})
	s.FillTriangle(image.Pt(0, 0), image.Pt(1, 1), image.Pt(2, 0))

	a, err := s.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	m, ok := a.(Markup)
	if !ok {
		t.Fatalf("artifact = %T, want Markup", a)
	}

	for _, want := range []string{
		`width="100" height="100"`,
		`fill="rgb(0,0,0)"`,
		`<g fill="rgb(255,200,0)" fill-opacity="0.1020" >`,
		`<polygon points="25,1 75,101 75,1"`,
		"</svg>",
	} {
		if !strings.Contains(m.Text, want) {
			t.Errorf("svg missing %q:\n%s", want, m.Text)
		}
	}
	if n := strings.Count(m.Text, "<g "); n != strings.Count(m.Text, "</g>") || n != 2 {
		t.Errorf("groups open/close mismatch: %d opened", n)
	}
}

func TestJSONArtifact(t *testing.T) {
	p := samplePlot(t)
	a, err := Render(p, FormatJSON)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var got jsonOutput
	if err := json.Unmarshal(a.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got.Width != 200 || got.Height != 150 || got.Background != "#000000" {
		t.Errorf("header = %dx%d %s", got.Width, got.Height, got.Background)
	}
	if len(got.Triangles) != len(p.Instructions) {
		t.Fatalf("len(Triangles) = %d, want %d", len(got.Triangles), len(p.Instructions))
	}
	first := p.Instructions[0]
	want := jsonTriangle{
		Fill: style.Hex(first.Fill),
		Points: [3][2]int{
			{first.Points[0].X, first.Points[0].Y},
			{first.Points[1].X, first.Points[1].Y},
			{first.Points[2].X, first.Points[2].Y},
		},
	}
	if diff := cmp.Diff(want, got.Triangles[0]); diff != "" {
		t.Errorf("first triangle mismatch (-want +got):\n%s", diff)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.svg")

	if err := Save(Markup{Language: FormatSVG, Text: "<svg/>"}, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("content = %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestSaveMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	err := Save(Raster{Encoding: FormatPNG, Data: []byte{1}}, path)
	if !errors.Is(err, errors.ErrCodeWriteFailed) {
		t.Errorf("Save() error = %v, want WRITE_FAILED", err)
	}
}

func TestFromBytes(t *testing.T) {
	for _, name := range Names() {
		a, err := FromBytes(name, []byte("x"))
		if err != nil {
			t.Fatalf("FromBytes(%q) error = %v", name, err)
		}
		if a.Format() != name || string(a.Bytes()) != "x" {
			t.Errorf("FromBytes(%q) = %#v", name, a)
		}
	}
	if _, err := FromBytes("bmp", nil); err == nil {
		t.Error("FromBytes(bmp) should fail")
	}
}
