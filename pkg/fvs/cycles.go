package fvs

import "github.com/matzehuels/cyclecut/pkg/geom"

// HasCycle reports whether the geometric graph on points contains a cycle.
//
// Every unordered pair of vertices closer than threshold is an edge; two
// entries with equal coordinates are distinct vertices at distance zero, so
// three coincident points already form a triangle. The check unions the
// endpoints of every edge and stops at the first edge whose endpoints are
// already connected.
//
// Complexity: O(n²) distance evaluations.
func HasCycle(points []geom.Point, threshold float64) bool {
	uf := newUnionFind(len(points))
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if geom.Within(points[i], points[j], threshold) && !uf.union(i, j) {
				return true
			}
		}
	}
	return false
}

// hasCycle is HasCycle restricted to the vertices whose removed flag is
// false, evaluated over the cached neighbor lists.
func (in *instance) hasCycle(removed []bool) bool {
	in.checks++
	in.uf.reset(len(in.points))
	for i, nbrs := range in.adj {
		if removed[i] {
			continue
		}
		for _, j := range nbrs {
			if j <= i || removed[j] {
				continue
			}
			if !in.uf.union(i, j) {
				return true
			}
		}
	}
	return false
}

// core returns the 2-core of the graph induced by the vertices not marked
// removed, as an ascending vertex list. Every cycle of the graph lies inside
// its 2-core, so a forest has an empty core.
func (in *instance) core(removed []bool) []int {
	n := len(in.points)
	deg := in.degBuf[:n]
	gone := in.goneBuf[:n]
	queue := in.queueBuf[:0]

	for i := 0; i < n; i++ {
		gone[i] = removed[i]
		deg[i] = 0
	}
	for i := 0; i < n; i++ {
		if gone[i] {
			continue
		}
		for _, j := range in.adj[i] {
			if !gone[j] {
				deg[i]++
			}
		}
		if deg[i] < 2 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		v := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if gone[v] {
			continue
		}
		gone[v] = true
		for _, w := range in.adj[v] {
			if gone[w] {
				continue
			}
			deg[w]--
			if deg[w] == 1 {
				queue = append(queue, w)
			}
		}
	}
	in.queueBuf = queue

	var out []int
	for i := 0; i < n; i++ {
		if !gone[i] {
			out = append(out, i)
		}
	}
	return out
}
