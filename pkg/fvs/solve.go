package fvs

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	cerrors "github.com/matzehuels/cyclecut/pkg/errors"
	"github.com/matzehuels/cyclecut/pkg/geom"
)

// Phase names a solver stage in progress events.
type Phase string

const (
	PhaseGreedy      Phase = "greedy"
	PhaseLocalSearch Phase = "local_search"
	PhaseAnneal      Phase = "anneal"
	PhasePrune       Phase = "prune"
	PhaseDone        Phase = "done"
)

// Event reports the end of a solver stage.
type Event struct {
	Phase       Phase         // stage that just finished
	Round       int           // annealing round, 0 before annealing starts
	Size        int           // solution size after the stage
	Best        int           // smallest solution size so far
	CycleChecks int           // cycle checks run so far
	Elapsed     time.Duration // time since the solve started
}

// Result is the outcome of a solve.
type Result struct {
	// Solution is the feedback vertex set, as distinct points in input order.
	Solution geom.PointSet `json:"solution"`

	// Indices are the input positions of the removed vertices, ascending.
	// Every copy of a solution point is listed.
	Indices []int `json:"indices"`

	Stats Stats `json:"stats"`
}

// Stats describes how a solve went.
type Stats struct {
	Points            int           `json:"points"`
	Edges             int           `json:"edges"`
	GreedySize        int           `json:"greedy_size"`
	LocalSearchSize   int           `json:"local_search_size"`
	FinalSize         int           `json:"final_size"`
	LocalSearchRounds int           `json:"local_search_rounds"`
	AnnealRounds      int           `json:"anneal_rounds"`
	AnnealIterations  int           `json:"anneal_iterations"`
	AnnealAccepted    int           `json:"anneal_accepted"`
	CycleChecks       int           `json:"cycle_checks"`
	Seed              int64         `json:"seed"`
	Duration          time.Duration `json:"duration"`
}

// ComputeFeedbackVertexSet returns a small feedback vertex set of the
// geometric graph on points with the given edge threshold, using default
// options. The result is a subset of points whose removal leaves no cycle.
func ComputeFeedbackVertexSet(points []geom.Point, threshold float64) []geom.Point {
	res, err := Solve(context.Background(), points, threshold, DefaultOptions())
	if err != nil {
		// Default options are valid and the context never ends.
		panic(err)
	}
	return res.Solution
}

// Solve computes a feedback vertex set: greedy construction, local search,
// then annealing rounds until a round stops shrinking the solution.
//
// Solve fails only on invalid options. If ctx ends mid-solve, Solve returns
// the best valid solution found so far together with the context's error.
func Solve(ctx context.Context, points []geom.Point, threshold float64, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.SetDefaults()

	start := time.Now()
	in := newInstance(points, threshold)
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	res := &Result{Stats: Stats{Points: len(points), Edges: in.edges, Seed: opts.Seed}}
	best := -1
	emit := func(phase Phase, round, size int) {
		if best < 0 || size < best {
			best = size
		}
		if opts.Progress == nil {
			return
		}
		opts.Progress(Event{
			Phase:       phase,
			Round:       round,
			Size:        size,
			Best:        best,
			CycleChecks: in.checks,
			Elapsed:     time.Since(start),
		})
	}

	fvs := in.construct(opts.Strategy)
	res.Stats.GreedySize = len(fvs)
	emit(PhaseGreedy, 0, len(fvs))

	fvs, rounds, err := in.refine(ctx, fvs, opts.MaxRounds)
	res.Stats.LocalSearchRounds += rounds
	res.Stats.LocalSearchSize = len(fvs)
	emit(PhaseLocalSearch, 0, len(fvs))

	if err == nil && !opts.SkipAnnealing {
		fvs, err = in.annealRounds(ctx, fvs, opts, rng, &res.Stats, emit)
	}
	if err == nil {
		var settled int
		fvs, settled, err = in.settle(ctx, fvs, opts.MaxRounds)
		res.Stats.LocalSearchRounds += settled
	} else {
		fvs = in.closure(fvs)
	}

	res.Indices = fvs
	res.Solution = in.pointsOf(fvs)
	res.Stats.FinalSize = len(res.Solution)
	res.Stats.CycleChecks = in.checks
	res.Stats.Duration = time.Since(start)
	emit(PhaseDone, res.Stats.AnnealRounds, len(res.Solution))

	if err != nil {
		return res, interrupted(err)
	}
	return res, nil
}

// annealRounds alternates annealing, pruning and local search until a round
// does not shrink the solution or MaxRounds rounds ran.
func (in *instance) annealRounds(ctx context.Context, fvs []int, opts Options, rng *rand.Rand, stats *Stats, emit func(Phase, int, int)) ([]int, error) {
	for round := 1; round <= opts.MaxRounds && len(fvs) > 0; round++ {
		before := len(fvs)

		next, st, err := in.anneal(ctx, fvs, opts.Schedule, rng)
		stats.AnnealRounds = round
		stats.AnnealIterations += st.iterations
		stats.AnnealAccepted += st.accepted
		emit(PhaseAnneal, round, len(next))
		if err != nil {
			return next, err
		}

		next = in.prune(next)
		emit(PhasePrune, round, len(next))

		next, rounds, err := in.refine(ctx, next, opts.MaxRounds)
		stats.LocalSearchRounds += rounds
		fvs = next
		emit(PhaseLocalSearch, round, len(fvs))
		if err != nil {
			return fvs, err
		}

		if len(fvs) >= before {
			break
		}
	}
	return fvs, nil
}

func interrupted(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return cerrors.Wrap(cerrors.ErrCodeTimeout, err, "solve timed out")
	}
	return fmt.Errorf("solve interrupted: %w", err)
}
