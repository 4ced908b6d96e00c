package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	cerrors "github.com/matzehuels/cyclecut/pkg/errors"
	"github.com/matzehuels/cyclecut/pkg/geom"
	"github.com/matzehuels/cyclecut/pkg/pipeline"
)

// benchRun is one seeded solve of a benchmark.
type benchRun struct {
	Seed     int64
	Size     int
	Greedy   int
	Duration time.Duration
}

// benchSummary aggregates benchmark runs.
type benchSummary struct {
	Runs         []benchRun
	Mean, StdDev float64
	Min, Max     int
	MeanDuration time.Duration
}

// benchCommand creates the bench command.
func (c *CLI) benchCommand() *cobra.Command {
	var (
		thresholdFlag float64
		runs          int
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "bench [points]",
		Short: "Solve with several seeds and summarize solution sizes",
		Long: `Solve the same instance once per seed and report the mean, standard
deviation and range of the solution sizes. Seeds run from --seed upward.
Nothing is cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs < 1 {
				return cerrors.New(cerrors.ErrCodeInvalidOptions, "runs must be positive, got %d", runs)
			}
			inst, err := loadInstance(args[0])
			if err != nil {
				return err
			}
			t, ok := resolveThreshold(cmd, thresholdFlag, inst.Threshold)
			if !ok {
				return requireThreshold()
			}
			opts.Threshold = t
			c.cfg().Solver.applySolver(cmd, &opts)
			if err := opts.ValidateForSolve(); err != nil {
				return err
			}

			spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Running %d solves...", runs))
			spinner.Start()
			summary, err := runBench(cmd.Context(), pipeline.NewRunner(nil, nil, c.Logger), inst.Points, opts, runs)
			spinner.Stop()
			if err != nil {
				return err
			}
			printBench(summary, len(inst.Points))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&thresholdFlag, "threshold", "t", 0, "edge distance threshold")
	cmd.Flags().IntVarP(&runs, "runs", "n", 10, "number of seeds")
	addSolverFlags(cmd, &opts)

	return cmd
}

// runBench solves once per seed, starting at opts.Seed. opts must be
// validated for solving.
func runBench(ctx context.Context, runner *pipeline.Runner, points []geom.Point, opts pipeline.Options, runs int) (*benchSummary, error) {
	summary := &benchSummary{}
	sizes := make([]float64, 0, runs)
	var total time.Duration

	for i := range runs {
		o := opts
		o.Seed = opts.Seed + int64(i)
		res, err := runner.Solve(ctx, points, o)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", o.Seed, err)
		}
		summary.Runs = append(summary.Runs, benchRun{
			Seed:     o.Seed,
			Size:     len(res.Solution),
			Greedy:   res.Stats.GreedySize,
			Duration: res.Stats.Duration,
		})
		sizes = append(sizes, float64(len(res.Solution)))
		total += res.Stats.Duration
	}

	summary.Mean, summary.StdDev = stat.MeanStdDev(sizes, nil)
	if runs == 1 {
		summary.StdDev = 0
	}
	summary.Min = int(slices.Min(sizes))
	summary.Max = int(slices.Max(sizes))
	summary.MeanDuration = total / time.Duration(runs)
	return summary, nil
}

// printBench prints the per-seed table and the summary.
func printBench(s *benchSummary, points int) {
	rows := make([][]string, len(s.Runs))
	for i, r := range s.Runs {
		rows[i] = []string{
			strconv.FormatInt(r.Seed, 10),
			strconv.Itoa(r.Greedy),
			strconv.Itoa(r.Size),
			r.Duration.Round(time.Millisecond).String(),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Seed", "Greedy", "Final", "Time").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if col == 2 && s.Runs[row].Size == s.Min {
				return style.Foreground(colorGreen).Bold(true)
			}
			return style.Foreground(colorWhite)
		})
	fmt.Fprintln(uiOut, t.Render())

	printSuccess("%d runs on %d points", len(s.Runs), points)
	printKeyValue("mean", strconv.FormatFloat(s.Mean, 'f', 2, 64))
	printKeyValue("stddev", strconv.FormatFloat(s.StdDev, 'f', 2, 64))
	printKeyValue("min", strconv.Itoa(s.Min))
	printKeyValue("max", strconv.Itoa(s.Max))
	printKeyValue("mean time", s.MeanDuration.Round(time.Millisecond).String())
}
