// Package batch reads measurements for many people from one delimited
// table and groups them for rendering.
//
// # Input
//
// The table has a header row (its content is ignored) followed by one row
// per trait result. Four columns are used, located by 1-based index:
//
//	id,trait,score,percentile
//	p1,openness,4.3,59
//	p1,extraversion,2.2,18
//	...
//
// Rows with fewer than four fields are skipped.
//
// # Grouping
//
// Rows are grouped by contiguous runs of the same identifier. This is not a
// group-by: an identifier that reappears after a different one starts a new
// group, and the renderer will overwrite the earlier output file. Each
// group is returned as soon as the run ends, so memory stays bounded by
// the size of one group.
//
// Groups that contain unparseable values carry the first problem in
// [Group.Err]; the reader itself only fails on malformed CSV.
package batch

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/trait"
)

// minFields is the number of fields a row needs to be considered.
const minFields = 4

// Columns locates the four logical fields, 1-based.
type Columns struct {
	ID         int
	Trait      int
	Score      int
	Percentile int
}

// DefaultColumns returns columns 1 through 4 in id, trait, score,
// percentile order.
func DefaultColumns() Columns {
	return Columns{ID: 1, Trait: 2, Score: 3, Percentile: 4}
}

// Validate checks that every index is at least 1.
func (c Columns) Validate() error {
	for _, f := range []struct {
		name string
		v    int
	}{{"id", c.ID}, {"trait", c.Trait}, {"score", c.Score}, {"percentile", c.Percentile}} {
		if f.v < 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s column must be 1 or greater, got %d", f.name, f.v)
		}
	}
	return nil
}

// Group is one contiguous run of rows sharing an identifier.
type Group struct {
	ID     string
	Line   int // line of the first row in the input
	Rows   int
	Traits trait.Measurements
	Err    error // first row problem, if any
}

// Reader yields groups from a CSV stream.
type Reader struct {
	csv     *csv.Reader
	cols    Columns
	pending *Group
	skipped int
}

// NewReader consumes the header row of r and returns a reader positioned
// at the first data row.
func NewReader(r io.Reader, cols Columns) (*Reader, error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidInput, "missing header row")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read header")
	}
	return &Reader{csv: cr, cols: cols}, nil
}

// Skipped reports how many rows had too few fields so far.
func (r *Reader) Skipped() int { return r.skipped }

// Next returns the next group, or io.EOF once the input is exhausted.
func (r *Reader) Next() (Group, error) {
	for {
		rec, err := r.csv.Read()
		if err == io.EOF {
			if r.pending == nil {
				return Group{}, io.EOF
			}
			g := *r.pending
			r.pending = nil
			return g, nil
		}
		if err != nil {
			return Group{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed csv")
		}
		if len(rec) < minFields {
			r.skipped++
			continue
		}

		line, _ := r.csv.FieldPos(0)
		id := strings.TrimSpace(field(rec, r.cols.ID))

		if r.pending != nil && r.pending.ID != id {
			done := *r.pending
			r.pending = newGroup(id, line)
			r.add(rec, line)
			return done, nil
		}
		if r.pending == nil {
			r.pending = newGroup(id, line)
		}
		r.add(rec, line)
	}
}

func newGroup(id string, line int) *Group {
	return &Group{ID: id, Line: line, Traits: trait.Measurements{}}
}

func (r *Reader) add(rec []string, line int) {
	g := r.pending
	g.Rows++

	m, name, err := r.parse(rec)
	if err != nil {
		if g.Err == nil {
			g.Err = errors.Wrap(errors.ErrCodeInvalidMeasurement, err, "line %d", line)
		}
		return
	}
	g.Traits[name] = m
}

func (r *Reader) parse(rec []string) (trait.Measurement, trait.Trait, error) {
	for _, col := range []int{r.cols.ID, r.cols.Trait, r.cols.Score, r.cols.Percentile} {
		if col > len(rec) {
			return trait.Measurement{}, "", fmt.Errorf("column %d out of range (row has %d fields)", col, len(rec))
		}
	}

	raw := strings.TrimSpace(field(rec, r.cols.Trait))
	name, ok := trait.Parse(raw)
	if !ok {
		name = trait.Trait(strings.ToLower(raw))
	}

	score, err := parseFloat("score", field(rec, r.cols.Score))
	if err != nil {
		return trait.Measurement{}, "", err
	}
	pct, err := parseFloat("percentile", field(rec, r.cols.Percentile))
	if err != nil {
		return trait.Measurement{}, "", err
	}
	return trait.Measurement{Score: score, Percentile: pct}, name, nil
}

func parseFloat(what, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		var ne *strconv.NumError
		if stderrors.As(err, &ne) {
			err = ne.Err
		}
		return 0, fmt.Errorf("invalid %s %q: %w", what, s, err)
	}
	return v, nil
}

func field(rec []string, col int) string {
	if col < 1 || col > len(rec) {
		return ""
	}
	return rec[col-1]
}

// ReadAll collects every group from r.
func ReadAll(r io.Reader, cols Columns) ([]Group, error) {
	br, err := NewReader(r, cols)
	if err != nil {
		return nil, err
	}
	var out []Group
	for {
		g, err := br.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, g)
	}
}
