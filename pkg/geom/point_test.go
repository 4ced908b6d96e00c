package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Pt(0, 0), Pt(3, 4)), 1e-12)
	assert.Equal(t, 0.0, Distance(Pt(2, 2), Pt(2, 2)))
	assert.InDelta(t, math.Sqrt2, Distance(Pt(0, 0), Pt(1, 1)), 1e-12)
}

func TestAdjacent(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Point
		threshold float64
		want      bool
	}{
		{"closer than threshold", Pt(0, 0), Pt(1, 0), 2, true},
		{"exactly at threshold", Pt(0, 0), Pt(2, 0), 2, false},
		{"farther than threshold", Pt(0, 0), Pt(3, 0), 2, false},
		{"same point", Pt(1, 1), Pt(1, 1), 2, false},
		{"zero threshold", Pt(0, 0), Pt(0.5, 0), 0, false},
		{"negative threshold", Pt(0, 0), Pt(0.5, 0), -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Adjacent(tt.a, tt.b, tt.threshold))
		})
	}
}

func TestWithinCoincident(t *testing.T) {
	// Distinct vertices at the same coordinates are adjacent even though
	// Adjacent treats them as one point.
	assert.True(t, Within(Pt(3, 3), Pt(3, 3), 1))
	assert.False(t, Adjacent(Pt(3, 3), Pt(3, 3), 1))
}

func TestPointSetDifference(t *testing.T) {
	s := PointSet{Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(1, 1)}
	got := s.Difference(PointSet{Pt(1, 1)})
	require.Equal(t, PointSet{Pt(0, 0), Pt(2, 2)}, got)

	// Receiver is untouched.
	assert.Len(t, s, 4)
	assert.Equal(t, s, s.Difference(nil))
}

func TestPointSetHelpers(t *testing.T) {
	s := PointSet{Pt(0, 0), Pt(1, 1), Pt(0, 0)}

	assert.True(t, s.Contains(Pt(1, 1)))
	assert.False(t, s.Contains(Pt(2, 2)))
	assert.Equal(t, PointSet{Pt(0, 0), Pt(1, 1)}, s.Dedup())
	assert.True(t, PointSet{Pt(1, 1)}.SubsetOf(s))
	assert.False(t, PointSet{Pt(5, 5)}.SubsetOf(s))
	assert.Equal(t, 3, s.CountEdges(2))

	b := PointSet{Pt(-1, 2), Pt(4, -3)}.Bound()
	assert.Equal(t, -1.0, b.Min.X())
	assert.Equal(t, -3.0, b.Min.Y())
	assert.Equal(t, 4.0, b.Max.X())
	assert.Equal(t, 2.0, b.Max.Y())
}

func TestPointIsFinite(t *testing.T) {
	assert.True(t, Pt(1, 2).IsFinite())
	assert.False(t, Pt(math.NaN(), 0).IsFinite())
	assert.False(t, Pt(0, math.Inf(-1)).IsFinite())
}
