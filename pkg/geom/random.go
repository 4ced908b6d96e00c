package geom

import (
	"math/rand"

	"github.com/paulmach/orb"
)

// RandomPoints returns n points drawn uniformly from bound. When integral is
// true the coordinates are rounded down to whole numbers, matching point files
// produced by integer-grid generators. A nil rng uses a fixed seed.
func RandomPoints(n int, bound orb.Bound, integral bool, rng *rand.Rand) PointSet {
	if n <= 0 {
		return PointSet{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	w := bound.Max.X() - bound.Min.X()
	h := bound.Max.Y() - bound.Min.Y()

	out := make(PointSet, n)
	for i := range out {
		x := bound.Min.X() + rng.Float64()*w
		y := bound.Min.Y() + rng.Float64()*h
		if integral {
			x, y = float64(int64(x)), float64(int64(y))
		}
		out[i] = Point{X: x, Y: y}
	}
	return out
}
