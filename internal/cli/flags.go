package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cyclecut/pkg/pipeline"
)

// addSolverFlags binds the solver flags to opts.
func addSolverFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "greedy strategy: impact (default), degree")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (default 42)")
	cmd.Flags().Float64Var(&opts.Temperature, "temperature", 0, "initial annealing temperature (default 200)")
	cmd.Flags().Float64Var(&opts.CoolingRate, "cooling-rate", 0, "annealing cooling rate in (0, 1) (default 0.99)")
	cmd.Flags().Float64Var(&opts.MinTemperature, "min-temperature", 0, "annealing stop temperature (default 1)")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "iteration budget per annealing run (default 300)")
	cmd.Flags().IntVar(&opts.MaxRounds, "max-rounds", 0, "cap on local-search and annealing rounds (default 1000)")
	cmd.Flags().IntVar(&opts.Restarts, "restarts", 0, "independent solves run in parallel, best kept (default 1)")
	cmd.Flags().BoolVar(&opts.SkipAnnealing, "skip-annealing", false, "stop after greedy construction and local search")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "stop solving after this long and keep the best solution so far")
}

// addRenderFlags binds the drawing flags to opts. Formats are parsed from
// formats by the caller.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	cmd.Flags().StringVarP(formats, "format", "f", "", "output format(s): dot, svg, png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "drawing width in inches (default 8)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG resolution multiplier (default 2)")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "label points with their input position")
	cmd.Flags().BoolVar(&opts.HideEdges, "hide-edges", false, "draw points only")
}

// resolveThreshold resolves the edge threshold: the flag wins, then the input
// file. ok is false when neither sets one.
func resolveThreshold(cmd *cobra.Command, flag float64, fromFile ...float64) (float64, bool) {
	if f := cmd.Flags().Lookup("threshold"); f != nil && f.Changed {
		return flag, true
	}
	for _, t := range fromFile {
		if t != 0 {
			return t, true
		}
	}
	return 0, false
}
