package geom

import (
	"math"
	"slices"

	"github.com/dhconnelly/rtreego"
)

// R-tree fan-out. Point sets here are small to medium sized, so a narrow
// tree keeps inserts cheap.
const (
	indexMinChildren = 4
	indexMaxChildren = 16
	pointTolerance   = 1e-9
)

// indexEntry stores one vertex of the indexed slice in the R-tree.
type indexEntry struct {
	id   int
	rect rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *indexEntry) Bounds() rtreego.Rect {
	return e.rect
}

// Index answers radius queries over a fixed point slice. Vertex identities
// are slice positions, so coincident points stay distinct vertices.
//
// An Index is read-only after construction and safe for concurrent use.
type Index struct {
	points []Point
	tree   *rtreego.Rtree
}

// NewIndex builds a spatial index over points. The slice is not copied and
// must not be mutated while the index is in use.
func NewIndex(points []Point) *Index {
	tree := rtreego.NewTree(2, indexMinChildren, indexMaxChildren)
	for i, p := range points {
		if !p.IsFinite() {
			continue
		}
		tree.Insert(&indexEntry{
			id:   i,
			rect: rtreego.Point{p.X, p.Y}.ToRect(pointTolerance),
		})
	}
	return &Index{points: points, tree: tree}
}

// Len returns the number of indexed vertices.
func (x *Index) Len() int {
	return len(x.points)
}

// Point returns vertex i.
func (x *Index) Point(i int) Point {
	return x.points[i]
}

// Within returns the vertices strictly closer than threshold to vertex i,
// excluding i itself, in ascending order.
func (x *Index) Within(i int, threshold float64) []int {
	if !(threshold > 0) || i < 0 || i >= len(x.points) {
		return nil
	}
	p := x.points[i]
	if !p.IsFinite() {
		return nil
	}

	side := 2 * threshold
	if math.IsInf(side, 1) {
		return x.scan(i, threshold)
	}
	query, err := rtreego.NewRect(rtreego.Point{p.X - threshold, p.Y - threshold}, []float64{side, side})
	if err != nil {
		return x.scan(i, threshold)
	}

	var out []int
	for _, hit := range x.tree.SearchIntersect(query) {
		j := hit.(*indexEntry).id
		if j != i && Within(p, x.points[j], threshold) {
			out = append(out, j)
		}
	}
	slices.Sort(out)
	return out
}

// scan is the linear fallback for thresholds the R-tree cannot express.
func (x *Index) scan(i int, threshold float64) []int {
	var out []int
	for j, q := range x.points {
		if j != i && Within(x.points[i], q, threshold) {
			out = append(out, j)
		}
	}
	return out
}

// NeighborLists returns, for every vertex, the ascending list of vertices
// strictly closer than threshold.
func (x *Index) NeighborLists(threshold float64) [][]int {
	adj := make([][]int, len(x.points))
	for i := range x.points {
		adj[i] = x.Within(i, threshold)
	}
	return adj
}
