package fvs

import (
	"math"
	"math/rand"

	"github.com/paulmach/orb"

	"github.com/matzehuels/cyclecut/pkg/geom"
)

func triangle(x, y float64) []geom.Point {
	return []geom.Point{
		geom.Pt(x, y),
		geom.Pt(x+1, y),
		geom.Pt(x+0.5, y+math.Sqrt(3)/2),
	}
}

func unitSquare() []geom.Point {
	return []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}
}

// bowtie is two triangles sharing the vertex at index 0.
func bowtie() []geom.Point {
	return []geom.Point{
		geom.Pt(0, 0),
		geom.Pt(-1, 0.5), geom.Pt(-1, -0.5),
		geom.Pt(1, 0.5), geom.Pt(1, -0.5),
	}
}

func randomInstance(seed int64, n int, size float64) []geom.Point {
	rng := rand.New(rand.NewSource(seed))
	return geom.RandomPoints(n, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{size, size}}, true, rng)
}

func containsAll(all, sub []geom.Point) bool {
	return geom.PointSet(sub).SubsetOf(all)
}
