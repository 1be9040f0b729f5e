package pipeline

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/supernova/pkg/batch"
	"github.com/matzehuels/supernova/pkg/config"
	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/observability"
	"github.com/matzehuels/supernova/pkg/sink"
	"github.com/matzehuels/supernova/pkg/style"
)

// BatchRequest describes a batch run over a CSV stream.
type BatchRequest struct {
	Input   io.Reader
	Columns batch.Columns
	OutDir  string
	Format  string // empty: sink.DefaultFormat
	Style   style.Style
	Config  config.Config
}

// BatchItem is the outcome for one identifier group.
type BatchItem struct {
	ID       string
	Line     int
	Path     string
	CacheHit bool
	Err      error
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	RunID    string
	Items    []BatchItem
	Skipped  int // rows with too few fields
	Duration time.Duration
}

// Rendered counts the groups that produced a file.
func (b *BatchResult) Rendered() int {
	n := 0
	for _, it := range b.Items {
		if it.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts the groups that did not.
func (b *BatchResult) Failed() int { return len(b.Items) - b.Rendered() }

// Batch renders one file per contiguous identifier group, named
// "<identifier>.<extension>" inside req.OutDir. A failing group is logged
// and recorded in the result; the loop continues with the next group.
// onItem, if non-nil, is called after each group.
//
// Only malformed input, a bad column layout, an unknown format or
// cancellation abort the run.
func (r *Runner) Batch(ctx context.Context, req BatchRequest, onItem func(BatchItem)) (*BatchResult, error) {
	name := req.Format
	if name == "" {
		name = sink.DefaultFormat
	}
	format, err := sink.Lookup(name)
	if err != nil {
		return nil, err
	}
	br, err := batch.NewReader(req.Input, req.Columns)
	if err != nil {
		return nil, err
	}

	res := &BatchResult{RunID: uuid.NewString()}
	logger := r.Logger.With("run", res.RunID[:8])
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	for {
		if err := ctx.Err(); err != nil {
			res.Skipped = br.Skipped()
			return res, err
		}
		g, err := br.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped = br.Skipped()
			return res, err
		}

		item := r.renderGroup(ctx, req, format, g)
		if item.Err != nil {
			logger.Error("Failed to generate output for ID: "+g.ID, "line", g.Line, "err", errors.UserMessage(item.Err))
		} else {
			logger.Debug("generated output", "id", g.ID, "path", item.Path, "cached", item.CacheHit)
		}
		observability.Pipeline().OnGroupComplete(ctx, g.ID, item.Err)

		res.Items = append(res.Items, item)
		if onItem != nil {
			onItem(item)
		}
	}

	res.Skipped = br.Skipped()
	if res.Skipped > 0 {
		logger.Warn("skipped rows with too few fields", "count", res.Skipped)
	}
	return res, nil
}

func (r *Runner) renderGroup(ctx context.Context, req BatchRequest, format sink.Format, g batch.Group) BatchItem {
	item := BatchItem{ID: g.ID, Line: g.Line}
	if g.Err != nil {
		item.Err = g.Err
		return item
	}
	if err := errors.ValidateIdentifier(g.ID); err != nil {
		item.Err = err
		return item
	}
	if unknown := g.Traits.Unknown(); len(unknown) > 0 {
		r.Logger.Warn("ignoring unknown traits", "id", g.ID, "traits", strings.Join(unknown, ","))
	}

	path := filepath.Join(req.OutDir, g.ID+"."+format.Extension)
	res, err := r.Generate(ctx, Request{
		Measurements: g.Traits,
		Style:        req.Style,
		Config:       req.Config,
		Format:       format.Name,
		Output:       path,
		ID:           g.ID,
	})
	if err != nil {
		item.Err = err
		return item
	}
	item.Path = res.Path
	item.CacheHit = res.CacheHit
	return item
}
