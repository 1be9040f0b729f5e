package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/trait"
)

// Record is one decoded measurement file.
type Record struct {
	ID     string
	Traits trait.Measurements
}

type document struct {
	ID     string                       `json:"id" toml:"id"`
	Traits map[string]trait.Measurement `json:"traits" toml:"traits"`
}

func (d document) record() Record {
	r := Record{ID: d.ID, Traits: make(trait.Measurements, len(d.Traits))}
	for name, m := range d.Traits {
		if t, ok := trait.Parse(name); ok {
			r.Traits[t] = m
		} else {
			r.Traits[trait.Trait(strings.ToLower(name))] = m
		}
	}
	return r
}

// ReadJSON decodes a JSON measurement document from r.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Record, error) {
	var d document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return Record{}, fmt.Errorf("decode: %w", err)
	}
	return d.record(), nil
}

// ReadTOML decodes a TOML measurement document from r.
func ReadTOML(r io.Reader) (Record, error) {
	var d document
	md, err := toml.NewDecoder(r).Decode(&d)
	if err != nil {
		return Record{}, fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Record{}, fmt.Errorf("decode: unknown key %q", undecoded[0].String())
	}
	return d.record(), nil
}

// ImportMeasurements reads the measurement file at path. The decoder is
// chosen by extension.
func ImportMeasurements(path string) (Record, error) {
	var read func(io.Reader) (Record, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		read = ReadJSON
	case ".toml":
		read = ReadTOML
	default:
		return Record{}, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported measurement file %s (want .json or .toml)", path)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "measurement file not found: %s", path)
		}
		return Record{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rec, err := read(f)
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid measurement file %s", path)
	}
	return rec, nil
}
