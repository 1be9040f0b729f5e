package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/supernova/pkg/batch"
	"github.com/matzehuels/supernova/pkg/errors"
	"github.com/matzehuels/supernova/pkg/pipeline"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	*styleOpts
	outDir string
	cols   batch.Columns
}

// batchCommand creates the batch command for rendering a CSV table.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{styleOpts: newStyleOpts(), cols: batch.DefaultColumns()}

	cmd := &cobra.Command{
		Use:   "batch <file.csv>",
		Short: "Render one profile per identifier of a CSV table",
		Long: `Render one profile per identifier of a CSV table.

The table needs a header row and one row per trait measurement. Rows are
grouped by contiguous runs of the same identifier; every group is written to
<output-dir>/<identifier>.<format>. Groups that fail to render are reported
and skipped.`,
		Example: `  supernova batch scores.csv -d out --format svg
  supernova batch export.csv --id-col 5 --trait-col 3 --score-col 1 --percentile-col 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.outDir, "output-dir", "d", ".", "directory for the rendered files")
	cmd.Flags().IntVar(&opts.cols.ID, "id-col", opts.cols.ID, "1-based column of the identifier")
	cmd.Flags().IntVar(&opts.cols.Trait, "trait-col", opts.cols.Trait, "1-based column of the trait name")
	cmd.Flags().IntVar(&opts.cols.Score, "score-col", opts.cols.Score, "1-based column of the score")
	cmd.Flags().IntVar(&opts.cols.Percentile, "percentile-col", opts.cols.Percentile, "1-based column of the percentile")

	return cmd
}

func (c *CLI) runBatch(cmd *cobra.Command, input string, opts *batchOpts) error {
	s, err := opts.resolve(cmd, c.Logger)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "batch file not found: %s", input)
		}
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer f.Close()

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "failed to create %s", opts.outDir)
	}

	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	c.Logger.Infof("Rendering %s", input)
	prog := newProgress(c.Logger)

	// Verbose runs log every group; the spinner would interleave with them.
	var onItem func(pipeline.BatchItem)
	stop := func() {}
	if c.Logger.GetLevel() > LogDebug {
		sp := newSpinner(cmd.Context(), os.Stderr, "Rendering "+input)
		sp.Start()
		stop = sp.Stop
		n := 0
		onItem = func(it pipeline.BatchItem) {
			n++
			sp.Update("Processed %d groups (last: %s)", n, it.ID)
		}
	}
	res, err := runner.Batch(cmd.Context(), batchRequest(f, opts, s), onItem)
	stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d of %d profiles", res.Rendered(), len(res.Items)))

	printBatchSummary(res)
	if res.Rendered() == 0 && len(res.Items) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no profile could be rendered from %s", input)
	}
	return nil
}

func batchRequest(in io.Reader, opts *batchOpts, s settings) pipeline.BatchRequest {
	return pipeline.BatchRequest{
		Input:   in,
		Columns: opts.cols,
		OutDir:  opts.outDir,
		Format:  s.format,
		Style:   s.style,
		Config:  s.cfg,
	}
}

func printBatchSummary(res *pipeline.BatchResult) {
	cached := 0
	for _, it := range res.Items {
		if it.Err == nil && it.CacheHit {
			cached++
		}
	}

	switch {
	case len(res.Items) == 0:
		printWarning("No rows found")
	case res.Failed() == 0:
		printSuccess("Rendered %d profiles", res.Rendered())
	default:
		printWarning("Rendered %d profiles, %d failed", res.Rendered(), res.Failed())
	}
	for _, it := range res.Items {
		if it.Err != nil {
			printError("%s (line %d): %s", it.ID, it.Line, errors.UserMessage(it.Err))
		}
	}
	if cached > 0 {
		printKeyValue("cached", fmt.Sprintf("%d", cached))
	}
	if res.Skipped > 0 {
		printKeyValue("skipped", fmt.Sprintf("%d short rows", res.Skipped))
	}
	printKeyValue("run", res.RunID)
}
