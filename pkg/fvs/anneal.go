package fvs

import (
	"context"
	"math"
	"math/rand"
	"slices"
)

// Schedule is a geometric cooling schedule for simulated annealing.
type Schedule struct {
	// Temperature is the starting temperature.
	Temperature float64 `json:"temperature" toml:"temperature"`

	// CoolingRate multiplies the temperature after every iteration; 0 < r < 1.
	CoolingRate float64 `json:"cooling_rate" toml:"cooling_rate"`

	// MinTemperature stops the run once the temperature drops to it.
	MinTemperature float64 `json:"min_temperature" toml:"min_temperature"`

	// Iterations is the hard iteration budget of one run.
	Iterations int `json:"iterations" toml:"iterations"`
}

// Default annealing schedule.
const (
	DefaultTemperature    = 200.0
	DefaultCoolingRate    = 0.99
	DefaultMinTemperature = 1.0
	DefaultIterations     = 300
)

// DefaultSchedule returns the default annealing schedule.
func DefaultSchedule() Schedule {
	return Schedule{
		Temperature:    DefaultTemperature,
		CoolingRate:    DefaultCoolingRate,
		MinTemperature: DefaultMinTemperature,
		Iterations:     DefaultIterations,
	}
}

// annealState is the explicit state of one annealing run.
type annealState struct {
	current     []int
	best        []int
	temperature float64
	remaining   int

	iterations int
	accepted   int
}

// anneal runs simulated annealing from a valid solution and returns the
// smallest valid solution it visited, which is never larger than start.
//
// Each iteration proposes removing a random solution vertex or adding a
// random outside vertex (about half each; an empty pool switches the move).
// Removals are kept only when the result is still valid. A valid proposal is
// accepted outright when smaller and otherwise with probability
// exp((|S| − |S'|) / T).
func (in *instance) anneal(ctx context.Context, start []int, sched Schedule, rng *rand.Rand) ([]int, annealState, error) {
	n := len(in.points)
	st := annealState{
		current:     slices.Clone(start),
		best:        slices.Clone(start),
		temperature: sched.Temperature,
		remaining:   sched.Iterations,
	}

	inSet := make([]bool, n)
	for _, v := range st.current {
		inSet[v] = true
	}
	outside := make([]int, 0, n)

	for st.temperature > sched.MinTemperature && st.remaining > 0 {
		if err := ctx.Err(); err != nil {
			return st.best, st, err
		}

		outside = outside[:0]
		for v := 0; v < n; v++ {
			if !inSet[v] {
				outside = append(outside, v)
			}
		}

		remove := rng.Float64() < 0.5
		if remove && len(st.current) == 0 {
			remove = false
		}
		if !remove && len(outside) == 0 {
			remove = true
		}

		switch {
		case remove && len(st.current) > 0:
			k := rng.Intn(len(st.current))
			v := st.current[k]
			inSet[v] = false
			// A smaller set is always accepted, so validity decides alone.
			if in.hasCycle(inSet) {
				inSet[v] = true
			} else {
				st.current = append(st.current[:k], st.current[k+1:]...)
				st.accepted++
			}
		case !remove:
			v := outside[rng.Intn(len(outside))]
			// Supersets of a valid set stay valid; only the size test applies.
			delta := -1.0
			if math.Exp(delta/st.temperature) > rng.Float64() {
				inSet[v] = true
				st.current = append(st.current, v)
				st.accepted++
			}
		}

		if len(st.current) < len(st.best) {
			st.best = slices.Clone(st.current)
		}

		st.temperature *= sched.CoolingRate
		st.remaining--
		st.iterations++
	}
	return st.best, st, nil
}
