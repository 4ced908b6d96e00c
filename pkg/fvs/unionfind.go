package fvs

// unionFind is a disjoint-set forest over vertex indices with path
// compression and union by rank. One instance is reused as an arena across
// the cycle checks of a solve; reset restores n singleton sets.
type unionFind struct {
	parent []int
	rank   []uint8
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{}
	uf.reset(n)
	return uf
}

func (uf *unionFind) reset(n int) {
	if cap(uf.parent) < n {
		uf.parent = make([]int, n)
		uf.rank = make([]uint8, n)
	}
	uf.parent = uf.parent[:n]
	uf.rank = uf.rank[:n]
	for i := range uf.parent {
		uf.parent[i] = i
		uf.rank[i] = 0
	}
}

func (uf *unionFind) find(x int) int {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[x] != root {
		next := uf.parent[x]
		uf.parent[x] = root
		x = next
	}
	return root
}

// union merges the sets of x and y. It returns false when they were already
// in the same set, which for an edge (x, y) means the edge closes a cycle.
func (uf *unionFind) union(x, y int) bool {
	rx, ry := uf.find(x), uf.find(y)
	if rx == ry {
		return false
	}
	switch {
	case uf.rank[rx] < uf.rank[ry]:
		uf.parent[rx] = ry
	case uf.rank[rx] > uf.rank[ry]:
		uf.parent[ry] = rx
	default:
		uf.parent[ry] = rx
		uf.rank[rx]++
	}
	return true
}
