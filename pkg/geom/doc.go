// Package geom provides the planar geometry behind cyclecut's implicit graphs.
//
// A geometric graph is never stored as an edge list. Its vertices are a slice
// of [Point] values and its edges are re-derived on demand from a distance
// threshold: two points are adjacent iff they are distinct and their
// Euclidean distance is strictly less than the threshold.
//
// # Predicates
//
//	geom.Distance(a, b)       // Euclidean distance
//	geom.Adjacent(a, b, t)    // a != b && Distance(a, b) < t
//	geom.Within(a, b, t)      // Distance(a, b) < t, for distinct vertices
//
// [Adjacent] compares points by value, so it is the right predicate whenever a
// point's identity is its coordinates. [Within] is the predicate for two
// distinct vertices of an indexed point slice, where coincident input points
// are separate vertices at distance zero and therefore adjacent.
//
// # Spatial Index
//
// [Index] wraps an R-tree (github.com/dhconnelly/rtreego) over a fixed point
// slice and answers "which vertices lie strictly within t of vertex i" without
// a full O(n²) scan. The solver uses it once per instance to build cached
// neighbor lists; distances never change during a solve so the cache is
// observably identical to re-deriving adjacency from coordinates.
//
// # Point Sets
//
// [PointSet] is a thin slice type with value-based set helpers ([PointSet.Contains],
// [PointSet.Difference], [PointSet.Dedup]) and a bounding box computed through
// github.com/paulmach/orb.
package geom
