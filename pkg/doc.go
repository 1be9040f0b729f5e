// Package pkg provides the core libraries for supernova personality infographics.
//
// # Overview
//
// Supernova turns the five trait measurements of a Big Five assessment
// (score 0-5, percentile 0-100) into a radial burst of rotated,
// semi-transparent right triangles. The pkg directory is organized into
// three areas:
//
//  1. Domain: [trait], [metrics], [center], [plot]
//  2. Presentation: [style], [config], [sink]
//  3. Orchestration and support: [pipeline], [batch], [io], [cache],
//     [observability], [errors], [buildinfo]
//
// # Architecture
//
// The data flow of one render:
//
//	measurements (flags, JSON/TOML file or CSV group)
//	         ↓
//	    [metrics] package (angle, flips, cycles)
//	         ↓
//	    [plot] package (triangle geometry, draw instructions)
//	         ↓
//	    [sink] package (PNG, PDF, SVG or JSON artifact)
//	         ↓
//	    file on disk
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/supernova/pkg/config"
//	    "github.com/matzehuels/supernova/pkg/pipeline"
//	    "github.com/matzehuels/supernova/pkg/trait"
//	)
//
//	m := trait.Measurements{
//	    trait.Openness:          {Score: 4.3, Percentile: 59},
//	    trait.Extraversion:      {Score: 2.2, Percentile: 18},
//	    trait.Agreeableness:     {Score: 4.2, Percentile: 63},
//	    trait.Conscientiousness: {Score: 3.5, Percentile: 52},
//	    trait.Neuroticism:       {Score: 2.4, Percentile: 25},
//	}
//	runner := pipeline.NewRunner(nil, nil, nil)
//	_, err := runner.Generate(context.Background(), pipeline.Request{
//	    Measurements: m,
//	    Config:       config.New(),
//	    Output:       "p7.png",
//	})
//
// # Main Packages
//
// [trait] - The five trait identifiers in canonical order and measurement
// validation.
//
// [metrics] - Rotation step angle, flips per trait and the overall cycle
// count derived from a measurement set.
//
// [center] - Pivot algorithms for the trait triangles: incenter (default),
// centroid and circumcenter.
//
// [plot] - The builder that turns measurements into an ordered list of
// filled triangles, and the [plot.Canvas] they are drawn on.
//
// [sink] - Canvas implementations that encode a plot as PNG, PDF, SVG or a
// JSON instruction dump, and atomic saving of the result.
//
// [pipeline] - Render entry point with artifact caching, plus batch
// rendering of CSV tables.
//
// [trait]: github.com/matzehuels/supernova/pkg/trait
// [metrics]: github.com/matzehuels/supernova/pkg/metrics
// [center]: github.com/matzehuels/supernova/pkg/center
// [plot]: github.com/matzehuels/supernova/pkg/plot
// [plot.Canvas]: github.com/matzehuels/supernova/pkg/plot.Canvas
// [style]: github.com/matzehuels/supernova/pkg/style
// [config]: github.com/matzehuels/supernova/pkg/config
// [sink]: github.com/matzehuels/supernova/pkg/sink
// [pipeline]: github.com/matzehuels/supernova/pkg/pipeline
// [batch]: github.com/matzehuels/supernova/pkg/batch
// [io]: github.com/matzehuels/supernova/pkg/io
// [cache]: github.com/matzehuels/supernova/pkg/cache
// [observability]: github.com/matzehuels/supernova/pkg/observability
// [errors]: github.com/matzehuels/supernova/pkg/errors
// [buildinfo]: github.com/matzehuels/supernova/pkg/buildinfo
package pkg
