package sink

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/plot"
)

// Format name constants.
const (
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// DefaultFormat is used when neither a format nor a known extension is given.
const DefaultFormat = FormatPNG

// Surface is a canvas that can encode what has been drawn on it.
// A surface is single-use: Finish must be called exactly once, last.
type Surface interface {
	plot.Canvas
	Finish() (Artifact, error)
}

// Format describes one registered output format.
type Format struct {
	Name        string
	Extension   string // without the leading dot
	Description string
	New         func(width, height int) Surface
}

var registry = map[string]Format{
	FormatPNG: {
		Name: FormatPNG, Extension: "png", Description: "raster image",
		New: func(w, h int) Surface { return NewPNG(w, h) },
	},
	FormatPDF: {
		Name: FormatPDF, Extension: "pdf", Description: "vector document",
		New: func(w, h int) Surface { return NewPDF(w, h) },
	},
	FormatSVG: {
		Name: FormatSVG, Extension: "svg", Description: "vector markup",
		New: func(w, h int) Surface { return NewSVG(w, h) },
	},
	FormatJSON: {
		Name: FormatJSON, Extension: "json", Description: "draw instructions",
		New: func(w, h int) Surface { return NewJSON(w, h) },
	},
}

// Lookup returns the format registered under name (case-insensitive).
func Lookup(name string) (Format, error) {
	if f, ok := registry[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return Format{}, errors.New(errors.ErrCodeUnknownFormat,
		"unknown format %q (available: %s)", name, strings.Join(Names(), ", "))
}

// New creates a surface for the named format.
func New(name string, width, height int) (Surface, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f.New(width, height), nil
}

// FormatForPath infers the format from path's extension.
func FormatForPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return Format{}, false
	}
	f, err := Lookup(ext)
	return f, err == nil
}

// Names lists registered format names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Formats lists registered formats sorted by name.
func Formats() []Format {
	out := make([]Format, 0, len(registry))
	for _, n := range Names() {
		out = append(out, registry[n])
	}
	return out
}

// Render draws p onto a fresh surface of the named format and encodes it.
func Render(p *plot.Plot, format string) (Artifact, error) {
	s, err := New(format, p.Width, p.Height)
	if err != nil {
		return nil, err
	}
	p.Draw(s)
	return s.Finish()
}
