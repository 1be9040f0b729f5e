package plot

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/supernova/pkg/center"
	"github.com/matzehuels/supernova/pkg/config"
	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/style"
	"github.com/matzehuels/supernova/pkg/trait"
)

func sample() trait.Measurements {
	return trait.Measurements{
		trait.Openness:          {Score: 4.3, Percentile: 59},
		trait.Extraversion:      {Score: 2.2, Percentile: 18},
		trait.Agreeableness:     {Score: 4.2, Percentile: 63},
		trait.Conscientiousness: {Score: 3.5, Percentile: 52},
		trait.Neuroticism:       {Score: 2.4, Percentile: 25},
	}
}

func TestRotate(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)
	tests := []struct {
		name    string
		p       Vec
		pivot   Vec
		degrees float64
		want    Vec
	}{
		{"zero", Vec{3, 4}, Vec{1, 1}, 0, Vec{3, 4}},
		{"quarter about origin", Vec{1, 0}, Vec{}, 90, Vec{0, 1}},
		{"half about pivot", Vec{2, 1}, Vec{1, 1}, 180, Vec{0, 1}},
		{"full turn", Vec{17.5, -3}, Vec{4.2, 8.8}, 360, Vec{17.5, -3}},
		{"negative", Vec{0, 1}, Vec{}, -90, Vec{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotate(tt.p, tt.pivot, tt.degrees)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Rotate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildInstructionCount(t *testing.T) {
	p, err := NewBuilder(config.New(), style.DefaultStyle()).Build(sample())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if p.Summary.Cycles != 17 {
		t.Fatalf("Cycles = %d, want 17", p.Summary.Cycles)
	}

	// flips: 59->3, 18->1, 63->4, 52->3, 25->2
	want := map[trait.Trait]int{
		trait.Openness:          17 * 3,
		trait.Extraversion:      17 * 1,
		trait.Agreeableness:     17 * 4,
		trait.Conscientiousness: 17 * 3,
		trait.Neuroticism:       17 * 2,
	}
	if diff := cmp.Diff(want, p.CountByTrait()); diff != "" {
		t.Errorf("CountByTrait() mismatch (-want +got):\n%s", diff)
	}
	if len(p.Instructions) != 221 {
		t.Errorf("len(Instructions) = %d, want 221", len(p.Instructions))
	}
}

func TestBuildOrderAndColor(t *testing.T) {
	p, err := NewBuilder(config.New(), style.DefaultStyle()).Build(sample())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	last := -1
	for i, in := range p.Instructions {
		idx := in.Trait.Index()
		if idx < last {
			t.Fatalf("instruction %d: trait %s painted after a later trait", i, in.Trait)
		}
		last = idx
		if in.Fill.A != 26 {
			t.Fatalf("instruction %d: alpha = %d, want 26", i, in.Fill.A)
		}
	}
	if got := p.Instructions[0].Fill; got != (color.NRGBA{255, 200, 0, 26}) {
		t.Errorf("first fill = %v, want translucent orange", got)
	}
}

func TestBuildGeometry(t *testing.T) {
	cfg := config.New(config.WithWidth(100), config.WithHeight(100), config.WithMargin(0),
		config.WithOnlyFirstIteration(true))
	m := trait.Measurements{
		trait.Openness:          {Score: 5, Percentile: 100},
		trait.Extraversion:      {Score: 0, Percentile: 0},
		trait.Agreeableness:     {Score: 0, Percentile: 0},
		trait.Conscientiousness: {Score: 0, Percentile: 0},
		trait.Neuroticism:       {Score: 0, Percentile: 0},
	}

	p, err := NewBuilder(cfg, style.DefaultStyle(), WithCalculator(center.Circumcenter{})).Build(m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// w=50 h=100, pivot (25,50), offset (25,0), no rotation for the first trait.
	want := [3]image.Point{{25, 1}, {75, 101}, {75, 1}}
	if diff := cmp.Diff(want, p.Instructions[0].Points); diff != "" {
		t.Errorf("openness triangle mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRotatedIncenterGolden(t *testing.T) {
	p, err := NewBuilder(config.New(), style.DefaultStyle()).Build(sample())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Default 2000x2000 canvas, margin 0.1, incenter pivot, step angle 43.4.
	tests := []struct {
		name  string
		index int
		trait trait.Trait
		want  [3]image.Point
	}{
		// w=352 h=288, first iteration at 43.4 degrees
		{"first extraversion", 51, trait.Extraversion, [3]image.Point{{747, 1113}, {1200, 1080}, {1003, 871}}},
		// w=384 h=400, offset (730,714), 173.6 degrees
		{"first neuroticism", 187, trait.Neuroticism, [3]image.Point{{1254, 1146}, {916, 706}, {872, 1104}}},
		// one step later at 217.0 degrees
		{"second neuroticism", 188, trait.Neuroticism, [3]image.Point{{1283, 932}, {735, 844}, {976, 1163}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := p.Instructions[tt.index]
			if in.Trait != tt.trait {
				t.Fatalf("instruction %d trait = %s, want %s", tt.index, in.Trait, tt.trait)
			}
			if diff := cmp.Diff(tt.want, in.Points); diff != "" {
				t.Errorf("points mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildOnlyFirstIteration(t *testing.T) {
	cfg := config.New(config.WithOnlyFirstIteration(true))
	p, err := NewBuilder(cfg, style.DefaultStyle()).Build(sample())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(p.Instructions) != len(trait.All) {
		t.Fatalf("len(Instructions) = %d, want %d", len(p.Instructions), len(trait.All))
	}
	for i, in := range p.Instructions {
		if in.Trait != trait.All[i] {
			t.Errorf("instruction %d trait = %s, want %s", i, in.Trait, trait.All[i])
		}
	}
}

func TestBuildStaggersTraits(t *testing.T) {
	// Identical measurements per trait: only the start angle differs.
	m := trait.Measurements{}
	for _, tr := range trait.All {
		m[tr] = trait.Measurement{Score: 2, Percentile: 40}
	}
	cfg := config.New(config.WithOnlyFirstIteration(true))
	p, err := NewBuilder(cfg, style.DefaultStyle()).Build(m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if p.Summary.Angle != 40 {
		t.Fatalf("Angle = %v, want 40", p.Summary.Angle)
	}
	if p.Instructions[0].Points == p.Instructions[1].Points {
		t.Error("second trait should start rotated relative to the first")
	}
}

func TestBuildZeroCycles(t *testing.T) {
	m := trait.Measurements{}
	for _, tr := range trait.All {
		m[tr] = trait.Measurement{Score: 0, Percentile: 90}
	}
	p, err := NewBuilder(config.New(), style.DefaultStyle()).Build(m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(p.Instructions) != 0 {
		t.Errorf("len(Instructions) = %d, want 0", len(p.Instructions))
	}
}

func TestBuildErrors(t *testing.T) {
	missing := sample()
	delete(missing, trait.Conscientiousness)

	nan := sample()
	nan[trait.Openness] = trait.Measurement{Score: math.NaN(), Percentile: 1}

	tests := []struct {
		name string
		cfg  config.Config
		m    trait.Measurements
		code errors.Code
	}{
		{"missing trait", config.New(), missing, errors.ErrCodeMissingTrait},
		{"NaN score", config.New(), nan, errors.ErrCodeInvalidMeasurement},
		{"unknown center", config.New(config.WithCenter("orthocenter")), sample(), errors.ErrCodeUnknownCenter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewBuilder(tt.cfg, style.DefaultStyle()).Build(tt.m)
			if p != nil {
				t.Error("Build() should not return a partial plot")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestBuildIgnoresUnknownTraits(t *testing.T) {
	base, err := NewBuilder(config.New(), style.DefaultStyle()).Build(sample())
	if err != nil {
		t.Fatal(err)
	}
	m := sample()
	m["honesty"] = trait.Measurement{Score: 5, Percentile: 100}
	extra, err := NewBuilder(config.New(), style.DefaultStyle()).Build(m)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(base.Instructions, extra.Instructions); diff != "" {
		t.Errorf("unknown trait changed the plot (-want +got):\n%s", diff)
	}
}

type recorder struct {
	calls []string
	bg    color.NRGBA
	tris  int
}

func (r *recorder) FillBackground(c color.NRGBA) {
	r.calls = append(r.calls, "bg")
	r.bg = c
}

func (r *recorder) SetColor(color.NRGBA) { r.calls = append(r.calls, "color") }

func (r *recorder) FillTriangle(_, _, _ image.Point) {
	r.calls = append(r.calls, "tri")
	r.tris++
}

func TestDraw(t *testing.T) {
	p, err := NewBuilder(config.New(), style.DefaultStyle()).Build(sample())
	if err != nil {
		t.Fatal(err)
	}

	var r recorder
	p.Draw(&r)

	if r.calls[0] != "bg" || r.bg != style.Black {
		t.Errorf("first call = %s with %v, want black background", r.calls[0], r.bg)
	}
	if r.tris != len(p.Instructions) {
		t.Errorf("triangles drawn = %d, want %d", r.tris, len(p.Instructions))
	}
	colors := 0
	for _, c := range r.calls {
		if c == "color" {
			colors++
		}
	}
	if colors != len(trait.All) {
		t.Errorf("SetColor calls = %d, want one per trait", colors)
	}
}
