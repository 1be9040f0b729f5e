// Package pipeline is the render entry point shared by every supernova
// command.
//
// One render runs metrics → geometry → draw → encode → write as a single
// blocking call. [Runner] wraps that sequence with an artifact cache and
// observability hooks; [Runner.Batch] repeats it for every identifier group
// of a CSV stream.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Generate(ctx, pipeline.Request{
//	    Measurements: m,
//	    Config:       config.New(config.WithOpacity(0.2)),
//	    Output:       "out/p7.svg",
//	})
//	if err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	}
//
// The output format comes from [Request.Format], then from the output
// extension, then [sink.DefaultFormat].
package pipeline

import (
	"time"

	"github.com/matzehuels/supernova/pkg/cache"
	"github.com/matzehuels/supernova/pkg/config"
	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/plot"
	"github.com/matzehuels/supernova/pkg/sink"
	"github.com/matzehuels/supernova/pkg/style"
	"github.com/matzehuels/supernova/pkg/trait"
)

// =============================================================================
// Request
// =============================================================================

// Request describes one render.
type Request struct {
	Measurements trait.Measurements
	Style        style.Style   // nil uses style.DefaultStyle
	Config       config.Config // zero value is not usable; start from config.New
	Format       string        // empty: infer from Output
	Output       string        // destination path; required by Generate
	ID           string        // label for logs and hooks; defaults to Output
}

// ResolveFormat picks the output format for the request.
func (r Request) ResolveFormat() (sink.Format, error) {
	if r.Format != "" {
		return sink.Lookup(r.Format)
	}
	if f, ok := sink.FormatForPath(r.Output); ok {
		return f, nil
	}
	return sink.Lookup(sink.DefaultFormat)
}

func (r Request) label() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Output
}

func (r Request) style() style.Style {
	if r.Style == nil {
		return style.DefaultStyle()
	}
	return r.Style
}

// validate rejects canvases that could never render. Measurement problems
// are reported by the builder.
func (r Request) validate() error {
	if r.Config.Width <= 0 || r.Config.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"canvas size must be positive, got %dx%d", r.Config.Width, r.Config.Height)
	}
	return nil
}

// keyOpts lists every input that influences the artifact. Unknown traits
// are left out since they never reach the plot.
func (r Request) keyOpts(format string) cache.ArtifactKeyOpts {
	s := r.style()
	opts := cache.ArtifactKeyOpts{
		Traits:     make(map[string][2]float64, len(trait.All)),
		Colors:     make(map[string]string, len(trait.All)),
		Background: style.Hex(r.Config.Background),
		Opacity:    r.Config.Opacity,
		Margin:     r.Config.Margin,
		Width:      r.Config.Width,
		Height:     r.Config.Height,
		Center:     r.Config.Center,
		FirstOnly:  r.Config.OnlyFirstIteration,
		Format:     format,
	}
	for _, t := range trait.All {
		m := r.Measurements[t]
		opts.Traits[string(t)] = [2]float64{m.Score, m.Percentile}
		opts.Colors[string(t)] = style.Hex(s.Color(t))
	}
	return opts
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of a successful render.
type Result struct {
	Plot     *plot.Plot
	Artifact sink.Artifact
	Format   string
	Path     string // empty when nothing was written
	CacheHit bool
	Stats    Stats
}

// Stats holds timing and size information.
type Stats struct {
	BuildTime  time.Duration
	EncodeTime time.Duration // zero on a cache hit
	Triangles  int
	Bytes      int
}
