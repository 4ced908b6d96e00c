package fvs

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cyclecut/pkg/geom"
)

// Strategy selects how the greedy constructor picks the next vertex.
type Strategy string

const (
	// StrategyImpact scores a vertex by its degree plus the degrees of its
	// neighbors and never considers vertices that start with fewer than two
	// neighbors.
	StrategyImpact Strategy = "impact"

	// StrategyDegree picks the vertex with the most neighbors.
	StrategyDegree Strategy = "degree"
)

// DefaultStrategy is the constructor used when Options.Strategy is empty.
const DefaultStrategy = StrategyImpact

// ParseStrategy converts a name to a Strategy. Matching is case-insensitive;
// the empty string yields DefaultStrategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultStrategy, nil
	case StrategyImpact:
		return StrategyImpact, nil
	case StrategyDegree:
		return StrategyDegree, nil
	}
	return "", fmt.Errorf("unknown strategy %q (must be one of: impact, degree)", s)
}

// Construct builds an initial feedback vertex set with the given strategy and
// no refinement. The result is always valid.
func Construct(points []geom.Point, threshold float64, strategy Strategy) geom.PointSet {
	in := newInstance(points, threshold)
	return in.pointsOf(in.construct(strategy))
}

func (in *instance) construct(strategy Strategy) []int {
	if strategy == StrategyDegree {
		return in.greedyDegree()
	}
	return in.greedyImpact()
}

// greedyDegree repeatedly removes the vertex of maximum degree within the
// remaining graph until no cycle is left. Ties go to the lowest position.
func (in *instance) greedyDegree() []int {
	n := len(in.points)
	removed := make([]bool, n)
	var fvs []int

	for in.hasCycle(removed) {
		best, bestDeg := -1, -1
		for v := 0; v < n; v++ {
			if removed[v] {
				continue
			}
			if d := in.degree(v, removed); d > bestDeg {
				best, bestDeg = v, d
			}
		}
		if best < 0 {
			break
		}
		removed[best] = true
		fvs = append(fvs, best)
	}
	return fvs
}

// greedyImpact removes the vertex with the largest impact
// deg(v) + Σ deg(w), w ∈ N(v), measured in the remaining graph, until no cycle
// is left. Vertices with fewer than two neighbors in the full graph cannot lie
// on a cycle and are never candidates. Ties go to the lowest position.
func (in *instance) greedyImpact() []int {
	n := len(in.points)
	removed := make([]bool, n)

	var pool []int
	for v := 0; v < n; v++ {
		if len(in.adj[v]) >= 2 {
			pool = append(pool, v)
		}
	}

	deg := make([]int, n)
	var fvs []int
	for len(pool) > 0 && in.hasCycle(removed) {
		for v := 0; v < n; v++ {
			if !removed[v] {
				deg[v] = in.degree(v, removed)
			}
		}

		bestAt, bestImpact := -1, -1
		for k, v := range pool {
			impact := deg[v]
			for _, w := range in.adj[v] {
				if !removed[w] {
					impact += deg[w]
				}
			}
			if impact > bestImpact {
				bestAt, bestImpact = k, impact
			}
		}

		v := pool[bestAt]
		removed[v] = true
		fvs = append(fvs, v)
		pool = append(pool[:bestAt], pool[bestAt+1:]...)
	}
	return fvs
}
