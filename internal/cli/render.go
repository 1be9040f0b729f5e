package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/io"
	"github.com/matzehuels/supernova/pkg/pipeline"
	"github.com/matzehuels/supernova/pkg/trait"
)

// defaultBaseName names the output when neither --output nor a record id is given.
const defaultBaseName = appName

// traitFlags holds the per-trait measurement flags.
type traitFlags struct {
	score      float64
	percentile float64
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	*styleOpts
	scores string // measurement file (.json or .toml)
	output string
	traits map[trait.Trait]*traitFlags
}

// renderCommand creates the render command for drawing one profile.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		styleOpts: newStyleOpts(),
		traits:    make(map[trait.Trait]*traitFlags, len(trait.All)),
	}
	for _, t := range trait.All {
		opts.traits[t] = &traitFlags{}
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one personality profile",
		Long: `Render one personality profile.

Measurements come from --scores (a JSON or TOML file), from the per-trait
flags, or both; flags override the file. Every trait needs a score and a
percentile.`,
		Example: `  supernova render --scores p7.toml -o p7.svg
  supernova render \
    --openness-score 4.3 --openness-percentile 59 \
    --extraversion-score 2.2 --extraversion-percentile 18 \
    --agreeableness-score 4.2 --agreeableness-percentile 63 \
    --conscientiousness-score 3.5 --conscientiousness-percentile 52 \
    --neuroticism-score 2.4 --neuroticism-percentile 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.scores, "scores", "s", "", "measurement file (.json or .toml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <id>.<format>)")
	_ = cmd.MarkFlagFilename("scores", "json", "toml")
	for _, t := range trait.All {
		name := string(t)
		cmd.Flags().Float64Var(&opts.traits[t].score, name+"-score", 0, name+" score (0-5)")
		cmd.Flags().Float64Var(&opts.traits[t].percentile, name+"-percentile", 0, name+" percentile (0-100)")
	}

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
	s, err := opts.resolve(cmd, c.Logger)
	if err != nil {
		return err
	}
	rec, err := opts.measurements(cmd)
	if err != nil {
		return err
	}
	if unknown := rec.Traits.Unknown(); len(unknown) > 0 {
		c.Logger.Warn("ignoring unknown traits", "traits", unknown)
	}

	req := pipeline.Request{
		Measurements: rec.Traits,
		Style:        s.style,
		Config:       s.cfg,
		Format:       s.format,
		Output:       opts.output,
		ID:           rec.ID,
	}
	if req.Output == "" {
		f, err := req.ResolveFormat()
		if err != nil {
			return err
		}
		base := rec.ID
		if errors.ValidateIdentifier(base) != nil {
			base = defaultBaseName
		}
		req.Output = base + "." + f.Extension
	}

	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	return generate(cmd.Context(), runner, req)
}

func generate(ctx context.Context, runner *pipeline.Runner, req pipeline.Request) error {
	res, err := runner.Generate(ctx, req)
	if err != nil {
		return err
	}

	path := res.Path
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	printSuccess("Rendered %s", req.Output)
	printFile(path)
	printStats(res.Stats.Triangles, res.Stats.Bytes, res.CacheHit)
	return nil
}

// measurements reads --scores, if given, and applies the per-trait flags
// on top. A trait set by flags alone needs both its score and percentile.
func (o *renderOpts) measurements(cmd *cobra.Command) (io.Record, error) {
	rec := io.Record{Traits: trait.Measurements{}}
	if o.scores != "" {
		var err error
		if rec, err = io.ImportMeasurements(o.scores); err != nil {
			return io.Record{}, err
		}
	}

	changed := cmd.Flags().Changed
	for _, t := range trait.All {
		name := string(t)
		hasScore, hasPct := changed(name+"-score"), changed(name+"-percentile")
		if !hasScore && !hasPct {
			continue
		}
		m, ok := rec.Traits[t]
		if !ok && hasScore != hasPct {
			return io.Record{}, errors.New(errors.ErrCodeInvalidInput,
				"%s needs both --%s-score and --%s-percentile", name, name, name)
		}
		if hasScore {
			m.Score = o.traits[t].score
		}
		if hasPct {
			m.Percentile = o.traits[t].percentile
		}
		rec.Traits[t] = m
	}
	return rec, nil
}
