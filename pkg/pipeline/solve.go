package pipeline

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cyclecut/pkg/fvs"
	"github.com/matzehuels/cyclecut/pkg/geom"
)

// SolveRestarts runs opts.Restarts independent solves in parallel, each with
// its own seed, and returns the smallest solution together with the index of
// the restart that found it. Ties go to the lowest index, so the outcome
// does not depend on scheduling.
//
// Progress events are forwarded from restart 0 only. If ctx ends, every
// restart stops and the best partial result is returned with the error.
// opts must be validated.
func SolveRestarts(ctx context.Context, points []geom.Point, opts Options) (*fvs.Result, int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	restarts := max(opts.Restarts, 1)

	results := make([]*fvs.Result, restarts)

	g, gctx := errgroup.WithContext(ctx)
	for i := range restarts {
		g.Go(func() error {
			fo := opts.FVSOptions(i)
			if i == 0 {
				fo.Progress = opts.Progress
			}
			res, err := fvs.Solve(gctx, points, opts.Threshold, fo)
			results[i] = res
			if res != nil {
				logger.Debug("restart finished",
					"restart", i,
					"seed", res.Stats.Seed,
					"fvs", len(res.Solution),
					"duration", res.Stats.Duration)
			}
			return err
		})
	}
	groupErr := g.Wait()

	best := -1
	for i, res := range results {
		if res == nil {
			continue
		}
		if best < 0 || len(res.Solution) < len(results[best].Solution) {
			best = i
		}
	}
	if best < 0 {
		return nil, -1, groupErr
	}
	return results[best], best, groupErr
}
