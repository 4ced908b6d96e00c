package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cerrors "github.com/matzehuels/cyclecut/pkg/errors"
	cyio "github.com/matzehuels/cyclecut/pkg/io"
	"github.com/matzehuels/cyclecut/pkg/verify"
)

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	var thresholdFlag float64

	cmd := &cobra.Command{
		Use:   "verify [points] [solution]",
		Short: "Check that a solution is a feedback vertex set",
		Long: `Check that a solution is a feedback vertex set.

The check builds the graph that remains after removing every solution point
and confirms it is a forest (edges = vertices - components). It shares no
code with the solver. Exits non-zero when the check fails.`,
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
			if err := cerrors.ValidateThreshold(t); err != nil {
				return err
			}

			report := verify.Check(inst.Points, sol.Points, t)
			printReport(report, t)
			if !report.Valid() {
				return cerrors.New(cerrors.ErrCodeInvalidInput, "%s is not a feedback vertex set of %s", args[1], args[0])
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&thresholdFlag, "threshold", "t", 0, "edge distance threshold")
	return cmd
}

// printReport shows a verification report.
func printReport(r verify.Report, threshold float64) {
	if r.Valid() {
		printSuccess("Valid feedback vertex set")
	} else {
		printError("Not a feedback vertex set")
	}
	printKeyValue("threshold", strconv.FormatFloat(threshold, 'g', -1, 64))
	printKeyValue("points", strconv.Itoa(r.Points))
	printKeyValue("removed", strconv.Itoa(r.Removed))
	printKeyValue("remaining", strconv.Itoa(r.Remaining))
	printKeyValue("edges", strconv.Itoa(r.Edges))
	printKeyValue("components", strconv.Itoa(r.Components))
	if !r.Acyclic {
		printDetail("remaining graph has %d independent cycles", r.Edges-r.Remaining+r.Components)
	}
	for _, p := range r.Missing {
		printDetail("%s is not in the point set", p)
	}
}
