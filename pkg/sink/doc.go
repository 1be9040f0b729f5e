// Package sink provides the drawing surfaces a supernova plot is rendered
// onto, and the artifacts they produce.
//
// # Overview
//
// Every sink implements [plot.Canvas] (fill background, set color, fill
// triangle) plus [Surface.Finish], which encodes what was drawn. Sinks never
// reorder or alter instructions. This package provides:
//
//   - PNG: raster bitmap via github.com/fogleman/gg
//   - PDF: vector document via github.com/go-pdf/fpdf
//   - SVG: vector markup via github.com/ajstarks/svgo
//   - JSON: the raw instruction stream, for inspection and regression tests
//
// # Artifacts
//
// [Surface.Finish] returns an [Artifact], which is exactly one of [Raster],
// [Document] or [Markup]. [Save] writes any artifact to disk atomically:
//
//	s, _ := sink.New("svg", p.Width, p.Height)
//	p.Draw(s)
//	a, err := s.Finish()
//	if err != nil {
//	    return err
//	}
//	return sink.Save(a, "out.svg")
//
// # Formats
//
// Formats are resolved by name through [Lookup] or from an output path's
// extension through [FormatForPath]. [Formats] lists them for help text.
//
// [plot.Canvas]: github.com/matzehuels/supernova/pkg/plot.Canvas
package sink
