package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cyclecut/pkg/fvs"
	cyio "github.com/matzehuels/cyclecut/pkg/io"
	"github.com/matzehuels/cyclecut/pkg/pipeline"
	"github.com/matzehuels/cyclecut/pkg/render"
)

// renderCommand creates the render command for drawing an existing solution.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		thresholdFlag float64
		formatsStr    string
		output        string
		noCache       bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [points] [solution]",
		Short: "Draw a point set with its feedback vertex set",
		Long: `Draw a point set with its feedback vertex set.

Removed points are filled red, the remaining forest is drawn in white and
edges that touch a removed point are dashed. Points are pinned to their
coordinates; the drawing is scaled to --width inches.

The threshold is taken from --threshold, the solution file or the points
file, in that order. SVG is the default format.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadInstance(args[0])
			if err != nil {
				return err
			}
			sol, err := cyio.ImportSolution(args[1])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[1], err)
			}
			t, ok := resolveThreshold(cmd, thresholdFlag, sol.Threshold, inst.Threshold)
			if !ok {
				return requireThreshold()
			}
			opts.Threshold = t
			opts.Formats = parseFormats(formatsStr)
			c.cfg().Render.applyRender(cmd, &opts)
			if len(opts.Formats) == 0 {
				opts.Formats = []string{render.FormatSVG}
			}
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			res := &fvs.Result{Solution: sol.Points, Indices: sol.Indices}
			return c.runRender(cmd.Context(), args[0], inst, res, opts, output, noCache)
		},
	}

	cmd.Flags().Float64VarP(&thresholdFlag, "threshold", "t", 0, "edge distance threshold")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addRenderFlags(cmd, &opts, &formatsStr)

	return cmd
}

// runRender renders and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, inst *cyio.Instance, res *fvs.Result, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, inst.Points, res, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
	})
}
