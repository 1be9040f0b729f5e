package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/matzehuels/supernova/pkg/errors"
)

// Artifact is an encoded rendering. It is one of [Raster], [Document] or
// [Markup]; the unexported method keeps the set closed.
type Artifact interface {
	// Format is the registered format name that produced the artifact.
	Format() string
	// Bytes returns the encoded content.
	Bytes() []byte
	isArtifact()
}

// Raster is an encoded bitmap image.
type Raster struct {
	Encoding string // "png"
	Data     []byte
}

// Document is an encoded page-description document.
type Document struct {
	Encoding string // "pdf"
	Data     []byte
}

// Markup is a textual rendering.
type Markup struct {
	Language string // "svg" or "json"
	Text     string
}

func (r Raster) Format() string   { return r.Encoding }
func (r Raster) Bytes() []byte    { return r.Data }
func (Raster) isArtifact()        {}
func (d Document) Format() string { return d.Encoding }
func (d Document) Bytes() []byte  { return d.Data }
func (Document) isArtifact()      {}
func (m Markup) Format() string   { return m.Language }
func (m Markup) Bytes() []byte    { return []byte(m.Text) }
func (Markup) isArtifact()        {}

// FromBytes reconstructs an artifact of the given format from its encoded
// content, e.g. after a cache lookup.
func FromBytes(format string, data []byte) (Artifact, error) {
	switch format {
	case FormatPNG:
		return Raster{Encoding: format, Data: data}, nil
	case FormatPDF:
		return Document{Encoding: format, Data: data}, nil
	case FormatSVG, FormatJSON:
		return Markup{Language: format, Text: string(data)}, nil
	}
	return nil, errors.New(errors.ErrCodeUnknownFormat, "unknown format %q", format)
}

// Save writes a to path. The content goes to a temporary file in the same
// directory first and is renamed into place, so a failed write never
// leaves a truncated file behind.
func Save(a Artifact, path string) error {
	var data []byte
	switch v := a.(type) {
	case Raster:
		data = v.Data
	case Document:
		data = v.Data
	case Markup:
		data = []byte(v.Text)
	default:
		return errors.New(errors.ErrCodeInternal, "unsupported artifact %T", a)
	}
	if err := writeAtomic(path, data); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "failed to write %s", path)
	}
	return nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
