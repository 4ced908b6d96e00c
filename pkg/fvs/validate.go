package fvs

import "github.com/matzehuels/cyclecut/pkg/geom"

// IsValid reports whether fvs is a feedback vertex set of the geometric graph
// on all: the points of all that are not in fvs (compared by value) must not
// contain a cycle.
func IsValid(all, fvs []geom.Point, threshold float64) bool {
	remaining := geom.PointSet(all).Difference(fvs)
	return !HasCycle(remaining, threshold)
}

// Neighbors returns the points of set adjacent to p, in set order. Points
// equal to p are never returned because a point is not its own neighbor.
// This differs from HasCycle and Solve, which treat coincident input points
// as separate, adjacent vertices.
func Neighbors(p geom.Point, set []geom.Point, threshold float64) []geom.Point {
	var out []geom.Point
	for _, q := range set {
		if geom.Adjacent(p, q, threshold) {
			out = append(out, q)
		}
	}
	return out
}
