package fvs

import (
	"slices"

	"github.com/matzehuels/cyclecut/pkg/geom"
)

// instance is the immutable input of one solve plus the scratch space its
// checks reuse. Vertices are positions in points; solutions are ascending or
// insertion-ordered slices of positions.
type instance struct {
	points    []geom.Point
	threshold float64
	adj       [][]int
	edges     int
	group     []int // lowest position with the same coordinates

	uf       *unionFind
	checks   int
	mask     []bool
	degBuf   []int
	goneBuf  []bool
	queueBuf []int
}

func newInstance(points []geom.Point, threshold float64) *instance {
	adj := geom.NewIndex(points).NeighborLists(threshold)
	edges := 0
	for _, nbrs := range adj {
		edges += len(nbrs)
	}
	n := len(points)
	group := make([]int, n)
	first := make(map[geom.Point]int, n)
	for i, p := range points {
		if j, ok := first[p]; ok {
			group[i] = j
		} else {
			first[p] = i
			group[i] = i
		}
	}
	return &instance{
		points:    points,
		threshold: threshold,
		adj:       adj,
		edges:     edges / 2,
		group:     group,
		uf:        newUnionFind(n),
		mask:      make([]bool, n),
		degBuf:    make([]int, n),
		goneBuf:   make([]bool, n),
		queueBuf:  make([]int, 0, n),
	}
}

// removedMask returns the shared scratch mask with exactly the vertices of
// set marked. The mask is overwritten by the next call.
func (in *instance) removedMask(set []int) []bool {
	clear(in.mask)
	for _, v := range set {
		in.mask[v] = true
	}
	return in.mask
}

// valid reports whether removing set leaves the graph acyclic.
func (in *instance) valid(set []int) bool {
	return !in.hasCycle(in.removedMask(set))
}

// degree counts the neighbors of v that are not marked removed.
func (in *instance) degree(v int, removed []bool) int {
	d := 0
	for _, w := range in.adj[v] {
		if !removed[w] {
			d++
		}
	}
	return d
}

// pointsOf maps vertex positions back to points, dropping repeated
// coordinates and keeping input order.
func (in *instance) pointsOf(set []int) geom.PointSet {
	sorted := slices.Clone(set)
	slices.Sort(sorted)
	out := make(geom.PointSet, 0, len(sorted))
	for _, v := range sorted {
		out = append(out, in.points[v])
	}
	return out.Dedup()
}

// indicesOf maps points back to vertex positions. Every vertex whose
// coordinates appear in set is returned, in ascending order.
func (in *instance) indicesOf(set []geom.Point) []int {
	want := make(map[geom.Point]struct{}, len(set))
	for _, p := range set {
		want[p] = struct{}{}
	}
	var out []int
	for i, p := range in.points {
		if _, ok := want[p]; ok {
			out = append(out, i)
		}
	}
	return out
}

// closure returns every vertex sharing coordinates with a vertex of set, in
// ascending order. Removing a point by value removes all of these.
func (in *instance) closure(set []int) []int {
	marked := make(map[int]bool, len(set))
	for _, v := range set {
		marked[in.group[v]] = true
	}
	out := make([]int, 0, len(set))
	for v, g := range in.group {
		if marked[g] {
			out = append(out, v)
		}
	}
	return out
}

// distinct counts the different coordinates among the vertices of set.
func (in *instance) distinct(set []int) int {
	seen := make(map[int]struct{}, len(set))
	for _, v := range set {
		seen[in.group[v]] = struct{}{}
	}
	return len(seen)
}

// without returns set minus the vertices at positions i and j of set (j may
// be -1), as a fresh slice.
func without(set []int, i, j int) []int {
	out := make([]int, 0, len(set))
	for k, v := range set {
		if k != i && k != j {
			out = append(out, v)
		}
	}
	return out
}
