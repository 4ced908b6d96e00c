package verify

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/cyclecut/pkg/geom"
)

// Node is a graph vertex carrying its input position.
type Node struct {
	id int64
	geom.Point
}

// ID implements graph.Node.
func (n Node) ID() int64 { return n.id }

// Report describes a feedback vertex set checked against its input.
type Report struct {
	Points     int  `json:"points"`     // input vertices
	Removed    int  `json:"removed"`    // vertices dropped by the set, copies included
	Remaining  int  `json:"remaining"`  // vertices left after removal
	Edges      int  `json:"edges"`      // edges among the remaining vertices
	Components int  `json:"components"` // connected components of the remaining graph
	Acyclic    bool `json:"acyclic"`    // remaining graph is a forest
	Subset     bool `json:"subset"`     // every set point occurs in the input

	// Missing lists set points that do not occur in the input.
	Missing []geom.Point `json:"missing,omitempty"`
}

// Valid reports whether the set is a feedback vertex set of the input.
func (r Report) Valid() bool { return r.Acyclic && r.Subset }

// Check removes every copy of every point in fvs from points and reports
// whether the geometric graph on the rest is acyclic.
func Check(points, fvs []geom.Point, threshold float64) Report {
	all := geom.PointSet(points)
	remaining := all.Difference(fvs)

	var missing []geom.Point
	for _, p := range geom.PointSet(fvs).Dedup() {
		if !all.Contains(p) {
			missing = append(missing, p)
		}
	}

	g := Graph(remaining, threshold)
	edges := g.Edges().Len()
	components := len(topo.ConnectedComponents(g))

	return Report{
		Points:     len(points),
		Removed:    len(points) - len(remaining),
		Remaining:  len(remaining),
		Edges:      edges,
		Components: components,
		Acyclic:    edges == len(remaining)-components,
		Subset:     len(missing) == 0,
		Missing:    missing,
	}
}

// Graph builds the geometric graph on points as a gonum undirected graph.
// Node IDs are input positions.
func Graph(points []geom.Point, threshold float64) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	nodes := make([]graph.Node, len(points))
	for i, p := range points {
		nodes[i] = Node{id: int64(i), Point: p}
		g.AddNode(nodes[i])
	}
	for i, nbrs := range geom.NewIndex(points).NeighborLists(threshold) {
		for _, j := range nbrs {
			if j > i {
				g.SetEdge(g.NewEdge(nodes[i], nodes[j]))
			}
		}
	}
	return g
}

// Components returns the connected components of the geometric graph on
// points as lists of input positions, largest first.
func Components(points []geom.Point, threshold float64) [][]int {
	cc := topo.ConnectedComponents(Graph(points, threshold))
	out := make([][]int, len(cc))
	for i, comp := range cc {
		ids := make([]int, len(comp))
		for k, n := range comp {
			ids[k] = int(n.ID())
		}
		slices.Sort(ids)
		out[i] = ids
	}
	slices.SortFunc(out, func(a, b []int) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a[0], b[0])
	})
	return out
}
