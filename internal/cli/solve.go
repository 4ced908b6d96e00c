package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	cerrors "github.com/matzehuels/cyclecut/pkg/errors"
	"github.com/matzehuels/cyclecut/pkg/fvs"
	cyio "github.com/matzehuels/cyclecut/pkg/io"
	"github.com/matzehuels/cyclecut/pkg/pipeline"
)

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		thresholdFlag float64
		formatsStr    string
		output        string
		noCache       bool
		useTUI        bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "solve [points]",
		Short: "Compute a feedback vertex set for a point file",
		Long: `Compute a small feedback vertex set of the geometric graph on a point set.

Points within --threshold of each other (strictly closer) are joined by an
edge. The result is a set of points whose removal leaves no cycle.

Input is a text file with one "x y" pair per line, or JSON
({"threshold": 55, "points": [{"x": 1, "y": 2}]}). Use "-" to read text
from stdin.

The solution is written to --output (default <input>.fvs.json); "-" prints
the removed points to stdout. Add --format to draw the result as well.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadInstance(args[0])
			if err != nil {
				return err
			}
			t, ok := resolveThreshold(cmd, thresholdFlag, inst.Threshold)
			if !ok {
				return requireThreshold()
			}
			opts.Threshold = t
			opts.Formats = parseFormats(formatsStr)

			cfg := c.cfg()
			cfg.Solver.applySolver(cmd, &opts)
			cfg.Render.applyRender(cmd, &opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runSolve(cmd.Context(), args[0], inst, opts, output, noCache, useTUI)
		},
	}

	cmd.Flags().Float64VarP(&thresholdFlag, "threshold", "t", 0, "edge distance threshold (overrides the input file)")
	cmd.Flags().StringVarP(&output, "output", "o", "", `solution file (.json or text); "-" for stdout`)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached solution exists")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "show live solver progress")
	addSolverFlags(cmd, &opts)
	addRenderFlags(cmd, &opts, &formatsStr)

	return cmd
}

// runSolve executes the pipeline and writes the solution and drawings.
func (c *CLI) runSolve(ctx context.Context, input string, inst *cyio.Instance, opts pipeline.Options, output string, noCache, useTUI bool) error {
	if output == stdinPath {
		uiOut = os.Stderr
		defer func() { uiOut = os.Stdout }()
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var result *pipeline.Result
	if useTUI {
		result, err = runSolveTUI(ctx, runner, inst.Points, opts)
	} else {
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Solving %d points...", len(inst.Points)))
		logged, track := logEvents(c.Logger), spinner.Track()
		opts.Progress = func(e fvs.Event) {
			logged(e)
			track(e)
		}
		spinner.Start()
		result, err = runner.Execute(ctx, inst.Points, opts)
		spinner.Stop()
	}

	if err != nil {
		if result == nil || result.Solve == nil {
			return err
		}
		// Interrupted: keep the best solution found so far.
		if cerrors.Is(err, cerrors.ErrCodeTimeout) {
			printWarning("Timed out after %s, keeping best solution so far", opts.Timeout)
			err = nil
		} else if errors.Is(err, context.Canceled) {
			printWarning("Interrupted, keeping best solution so far")
		} else {
			return err
		}
	}

	res := result.Solve
	printSuccess("Removed %s of %d points", styleRemoved.Render(strconv.Itoa(len(res.Solution))), len(inst.Points))
	printStats(res.Stats.Points, res.Stats.Edges, len(res.Solution), result.CacheInfo.SolveHit)
	printDetail("greedy %d → local search %d → final %d", res.Stats.GreedySize, res.Stats.LocalSearchSize, res.Stats.FinalSize)
	if result.Stats.Restarts > 1 {
		printDetail("best of %d restarts: #%d (seed %d)", result.Stats.Restarts, result.Stats.BestRestart, res.Stats.Seed)
	}
	if !result.Report.Valid() {
		printError("Verification failed: %d edges, %d components", result.Report.Edges, result.Report.Components)
	}

	sol := cyio.NewSolution(res, opts.Threshold)
	switch output {
	case stdinPath:
		if err := cyio.WriteSolution(sol, os.Stdout, cyio.FormatText); err != nil {
			return err
		}
	default:
		path := output
		if path == "" {
			path = basePath(input) + ".fvs.json"
		}
		if err := cyio.ExportSolution(sol, path); err != nil {
			return fmt.Errorf("write solution: %w", err)
		}
		printFile(path)
	}

	if len(result.Artifacts) > 0 {
		return writeArtifacts(artifactWriteParams{
			artifacts: result.Artifacts,
			formats:   opts.Formats,
			input:     input,
			cacheHit:  result.CacheInfo.RenderHit,
		})
	}
	return err
}
