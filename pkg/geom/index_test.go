package geom

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bruteWithin(points []Point, i int, threshold float64) []int {
	var out []int
	for j := range points {
		if j != i && Within(points[i], points[j], threshold) {
			out = append(out, j)
		}
	}
	return out
}

func TestIndexMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	points := RandomPoints(200, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}, true, rng)
	idx := NewIndex(points)
	require.Equal(t, len(points), idx.Len())

	for _, threshold := range []float64{1, 5, 12.5, 40} {
		for i := range points {
			assert.Equal(t, bruteWithin(points, i, threshold), idx.Within(i, threshold),
				"vertex %d threshold %v", i, threshold)
		}
	}
}

func TestIndexStrictThreshold(t *testing.T) {
	points := []Point{Pt(0, 0), Pt(10, 0), Pt(0, 9.999)}
	idx := NewIndex(points)

	assert.Equal(t, []int{2}, idx.Within(0, 10))
	assert.Nil(t, idx.Within(0, 0))
	assert.Nil(t, idx.Within(5, 10))
}

func TestIndexCoincidentPoints(t *testing.T) {
	points := []Point{Pt(1, 1), Pt(1, 1), Pt(1, 1)}
	adj := NewIndex(points).NeighborLists(0.5)

	assert.Equal(t, [][]int{{1, 2}, {0, 2}, {0, 1}}, adj)
}

func TestRandomPointsDeterministic(t *testing.T) {
	b := orb.Bound{Min: orb.Point{10, 20}, Max: orb.Point{30, 40}}
	a := RandomPoints(50, b, false, rand.New(rand.NewSource(3)))
	c := RandomPoints(50, b, false, rand.New(rand.NewSource(3)))

	require.Equal(t, a, c)
	for _, p := range a {
		assert.True(t, b.Contains(p.Orb()), "%v outside %v", p, b)
	}
	assert.Empty(t, RandomPoints(0, b, false, nil))
}
