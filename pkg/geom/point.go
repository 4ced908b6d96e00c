package geom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is an immutable 2-D coordinate. Two points are the same point iff
// their coordinates are equal.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Orb converts p to an orb.Point.
func (p Point) Orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

// FromOrb converts an orb.Point to a Point.
func FromOrb(p orb.Point) Point {
	return Point{X: p.X(), Y: p.Y()}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// String formats p as "(x, y)" using the shortest exact representation.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return planar.Distance(a.Orb(), b.Orb())
}

// Within reports whether a and b are strictly closer than threshold.
// Points exactly at the threshold distance are not within it.
func Within(a, b Point, threshold float64) bool {
	return Distance(a, b) < threshold
}

// Adjacent reports whether a and b are joined by an edge of the geometric
// graph with the given threshold: they must be different points and strictly
// closer than threshold.
func Adjacent(a, b Point, threshold float64) bool {
	return a != b && Within(a, b, threshold)
}
