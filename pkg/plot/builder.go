package plot

import (
	"image"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/supernova/pkg/center"
	"github.com/matzehuels/supernova/pkg/config"
	"github.com/matzehuels/supernova/pkg/metrics"
	"github.com/matzehuels/supernova/pkg/style"
	"github.com/matzehuels/supernova/pkg/trait"
)

// Builder computes plots for a fixed configuration and palette.
// A Builder holds no mutable state and may be shared between goroutines.
type Builder struct {
	cfg    config.Config
	style  style.Style
	calc   center.Calculator
	logger *log.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for debug output of triangle geometry.
func WithLogger(l *log.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithCalculator overrides the center algorithm named by the config.
func WithCalculator(c center.Calculator) BuilderOption {
	return func(b *Builder) {
		if c != nil {
			b.calc = c
		}
	}
}

// NewBuilder creates a builder for cfg and s. The center algorithm is
// resolved from cfg.Center unless [WithCalculator] is given; an unknown
// name is reported by [Builder.Build].
func NewBuilder(cfg config.Config, s style.Style, opts ...BuilderOption) *Builder {
	b := &Builder{
		cfg:    cfg,
		style:  s,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build validates m and computes its plot.
func (b *Builder) Build(m trait.Measurements) (*Plot, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	calc := b.calc
	if calc == nil {
		var err error
		if calc, err = b.cfg.CenterCalculator(); err != nil {
			return nil, err
		}
	}

	sum := metrics.Compute(m)
	b.logger.Debug("metrics", "angle", sum.Angle, "flips", sum.Flips, "cycles", sum.Cycles)

	W, H := b.cfg.Width, b.cfg.Height
	cx, cy := W/2, H/2
	usable := 1 - 2*b.cfg.Margin

	p := &Plot{
		Width:        W,
		Height:       H,
		Background:   b.cfg.Background,
		Summary:      sum,
		Instructions: make([]Instruction, 0, sum.Triangles()),
	}

	for i, t := range trait.All {
		fill := style.WithAlpha(b.style.Color(t), b.cfg.Opacity)
		angle := sum.Angle * float64(i)

		w := int(math.Round(float64(W) * usable * (m[t].Score / 10)))
		h := int(math.Round(float64(H) * usable * (m[t].Percentile / 100)))
		c := calc.Center(w, h)
		pivot := Vec{X: c.X, Y: c.Y}
		b.logger.Debug("triangle", "trait", t, "w", w, "h", h, "center", pivot)

		dx := int(float64(cx) - pivot.X)
		dy := int(float64(cy) - pivot.Y)
		verts := [3]Vec{{0, float64(h)}, {float64(w), 0}, {float64(w), float64(h)}}

	cycles:
		for range sum.Cycles {
			for range sum.Flips[t] {
				var pts [3]image.Point
				for k, v := range verts {
					r := Rotate(v, pivot, angle)
					pts[k] = image.Point{
						X: int(r.X) + dx,
						Y: H - (int(r.Y) + dy) + 1,
					}
				}
				p.Instructions = append(p.Instructions, Instruction{Trait: t, Points: pts, Fill: fill})
				angle += sum.Angle

				if b.cfg.OnlyFirstIteration {
					break cycles
				}
			}
		}
	}

	return p, nil
}
