package cli

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	cerrors "github.com/matzehuels/cyclecut/pkg/errors"
	"github.com/matzehuels/cyclecut/pkg/geom"
	cyio "github.com/matzehuels/cyclecut/pkg/io"
)

// generateOpts holds the flags of the generate command.
type generateOpts struct {
	count     int
	size      float64
	seed      int64
	integral  bool
	threshold float64
	output    string
	format    string
}

// generateCommand creates the generate command for random instances.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{count: 500, size: 1000, seed: 1, integral: true}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random point set",
		Long: `Write n points drawn uniformly from a size × size square.

The output is text unless --output ends in .json or --format json is given.
--threshold is stored in JSON output so later commands can omit it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", opts.count, "number of points")
	cmd.Flags().Float64Var(&opts.size, "size", opts.size, "side length of the square")
	cmd.Flags().Int64Var(&opts.seed, "seed", opts.seed, "random seed")
	cmd.Flags().BoolVar(&opts.integral, "integral", opts.integral, "round coordinates down to integers")
	cmd.Flags().Float64VarP(&opts.threshold, "threshold", "t", 0, "threshold to store with the points (JSON only)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text, json (default from extension)")

	return cmd
}

func (c *CLI) runGenerate(opts generateOpts) error {
	if opts.count < 0 || opts.count > cerrors.MaxPoints {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "count must be between 0 and %d, got %d", cerrors.MaxPoints, opts.count)
	}
	if !(opts.size > 0) {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "size must be positive, got %v", opts.size)
	}
	if err := cerrors.ValidateThreshold(opts.threshold); err != nil {
		return err
	}

	format := opts.format
	if format == "" {
		format = cyio.FormatText
		if opts.output != "" {
			format = cyio.FormatFromPath(opts.output)
		}
	}
	if err := cerrors.ValidateFormat(format, cyio.FormatText, cyio.FormatJSON); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{opts.size, opts.size}}
	inst := &cyio.Instance{
		Threshold: opts.threshold,
		Points:    geom.RandomPoints(opts.count, bound, opts.integral, rand.New(rand.NewSource(opts.seed))),
	}

	if opts.output == "" {
		if err := cyio.WriteInstance(inst, os.Stdout, format); err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Generated %d points", opts.count))
		return nil
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.output, err)
	}
	if err := cyio.WriteInstance(inst, f, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d points", opts.count))
	printFile(opts.output)
	return nil
}
