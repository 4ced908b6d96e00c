package fvs

import (
	"context"
	"fmt"

	"github.com/matzehuels/cyclecut/pkg/geom"
)

// DefaultMaxRounds caps local-search rounds and annealing rounds. Each
// accepted round shrinks the solution, so the cap only matters for inputs
// large enough that the solver would otherwise run for a very long time.
const DefaultMaxRounds = 1000

// LocalSearch shrinks a valid feedback vertex set with single-vertex elision
// and two-for-one replacement until a round finds no improvement or
// maxRounds rounds ran (maxRounds <= 0 means DefaultMaxRounds).
//
// The input must be valid; LocalSearch returns an error otherwise. Running
// LocalSearch on its own output returns it unchanged.
func LocalSearch(points, fvs []geom.Point, threshold float64, maxRounds int) (geom.PointSet, error) {
	in := newInstance(points, threshold)
	set := in.indicesOf(fvs)
	if !in.valid(set) {
		return nil, fmt.Errorf("local search: input is not a feedback vertex set")
	}
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	out, _, err := in.settle(context.Background(), set, maxRounds)
	if err != nil {
		return nil, err
	}
	return in.pointsOf(out), nil
}

// refine alternates elision and two-for-one passes until neither improves
// the solution. It returns the refined solution and the number of rounds run.
// On cancellation the best solution so far is returned with the context error.
func (in *instance) refine(ctx context.Context, fvs []int, maxRounds int) ([]int, int, error) {
	rounds := 0
	for rounds < maxRounds {
		if err := ctx.Err(); err != nil {
			return fvs, rounds, err
		}
		rounds++

		next, improved := in.elide(fvs)
		if !improved {
			next, improved = in.twoForOne(next)
		}
		fvs = next
		if !improved {
			break
		}
	}
	return fvs, rounds, nil
}

// settle refines fvs until the number of distinct removed points stops
// falling, then returns a set that holds every copy of each of its points.
// The result is a fixed point: settling it again returns it unchanged, so
// the value-level solution survives a round trip through points.
func (in *instance) settle(ctx context.Context, fvs []int, maxRounds int) ([]int, int, error) {
	cur := in.elideGroups(in.closure(fvs))
	total := 0
	for {
		next, rounds, err := in.refine(ctx, cur, maxRounds)
		total += rounds
		if err != nil {
			return cur, total, err
		}
		next = in.elideGroups(in.closure(next))
		if in.distinct(next) >= in.distinct(cur) {
			return cur, total, nil
		}
		cur = next
	}
}

// elideGroups is elide over coordinates: all copies of a point are restored
// together and kept out of the solution when the graph stays acyclic. fvs
// must hold every copy of its points; the result is ascending.
func (in *instance) elideGroups(fvs []int) []int {
	removed := make([]bool, len(in.points))
	members := make(map[int][]int)
	var order []int
	for _, v := range fvs {
		removed[v] = true
		g := in.group[v]
		if _, ok := members[g]; !ok {
			order = append(order, g)
		}
		members[g] = append(members[g], v)
	}

	for _, g := range order {
		for _, v := range members[g] {
			removed[v] = false
		}
		if in.hasCycle(removed) {
			for _, v := range members[g] {
				removed[v] = true
			}
		}
	}

	out := make([]int, 0, len(fvs))
	for v, r := range removed {
		if r {
			out = append(out, v)
		}
	}
	return out
}

// elide scans fvs left to right and drops every vertex whose removal keeps
// the solution valid. Because restoring a vertex to the graph can only add
// cycles, a vertex kept earlier in the scan stays necessary.
func (in *instance) elide(fvs []int) ([]int, bool) {
	removed := make([]bool, len(in.points))
	for _, v := range fvs {
		removed[v] = true
	}

	kept := make([]int, 0, len(fvs))
	for _, v := range fvs {
		removed[v] = false
		if in.hasCycle(removed) {
			removed[v] = true
			kept = append(kept, v)
		}
	}
	return kept, len(kept) < len(fvs)
}

// twoForOne looks for two solution vertices a, b and one outside vertex c such
// that fvs − {a, b} + {c} is valid, and adopts the first one found. Pairs are
// tried in solution order and replacements in input order.
//
// A valid replacement c must break every cycle of the graph with a restored,
// so it lies in the 2-core of that graph, and likewise for b. Only vertices
// in both cores are checked. When neither a nor b is needed on its own and
// the graph without both is already acyclic, the pair is dropped outright.
func (in *instance) twoForOne(fvs []int) ([]int, bool) {
	if len(fvs) < 2 {
		return fvs, false
	}
	n := len(in.points)

	base := make([]bool, n)
	for _, v := range fvs {
		base[v] = true
	}
	cores := make([][]int, len(fvs))
	for k, v := range fvs {
		base[v] = false
		cores[k] = in.core(base)
		base[v] = true
	}

	for i := 0; i < len(fvs); i++ {
		for j := i + 1; j < len(fvs); j++ {
			trial := without(fvs, i, j)
			removed := in.removedMask(trial)
			pool := candidates(cores[i], cores[j])
			if len(cores[i]) == 0 && len(cores[j]) == 0 {
				// Both vertices are redundant on their own; any cycle left
				// runs through both of them.
				pool = in.core(removed)
				if len(pool) == 0 {
					return trial, true
				}
			}

			for _, c := range pool {
				if base[c] {
					continue
				}
				removed[c] = true
				ok := !in.hasCycle(removed)
				removed[c] = false
				if ok {
					return append(trial, c), true
				}
			}
		}
	}
	return fvs, false
}

// candidates intersects two ascending core lists. An empty core places no
// constraint, so the other list is returned as is.
func candidates(a, b []int) []int {
	switch {
	case len(a) == 0:
		return b
	case len(b) == 0:
		return a
	}
	var out []int
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// prune runs one elision sweep. It is the cheap step between annealing
// rounds; the full refinement follows it.
func (in *instance) prune(fvs []int) []int {
	out, _ := in.elide(fvs)
	return out
}
