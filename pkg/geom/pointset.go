package geom

import "github.com/paulmach/orb"

// PointSet is an unordered collection of points. Methods never mutate the
// receiver; they return fresh slices.
type PointSet []Point

// Clone returns a copy of s.
func (s PointSet) Clone() PointSet {
	if s == nil {
		return nil
	}
	out := make(PointSet, len(s))
	copy(out, s)
	return out
}

// Contains reports whether p is in s.
func (s PointSet) Contains(p Point) bool {
	for _, q := range s {
		if q == p {
			return true
		}
	}
	return false
}

// Difference returns the points of s that are not in other, preserving the
// order of s. Every copy of a point listed in other is removed.
func (s PointSet) Difference(other PointSet) PointSet {
	if len(other) == 0 {
		return s.Clone()
	}
	drop := make(map[Point]struct{}, len(other))
	for _, p := range other {
		drop[p] = struct{}{}
	}
	out := make(PointSet, 0, len(s))
	for _, p := range s {
		if _, ok := drop[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// Dedup returns s without repeated points, keeping first occurrences.
func (s PointSet) Dedup() PointSet {
	seen := make(map[Point]struct{}, len(s))
	out := make(PointSet, 0, len(s))
	for _, p := range s {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// SubsetOf reports whether every point of s also appears in other.
func (s PointSet) SubsetOf(other PointSet) bool {
	have := make(map[Point]struct{}, len(other))
	for _, p := range other {
		have[p] = struct{}{}
	}
	for _, p := range s {
		if _, ok := have[p]; !ok {
			return false
		}
	}
	return true
}

// Bound returns the axis-aligned bounding box of s. An empty set yields the
// zero bound.
func (s PointSet) Bound() orb.Bound {
	if len(s) == 0 {
		return orb.Bound{}
	}
	mp := make(orb.MultiPoint, len(s))
	for i, p := range s {
		mp[i] = p.Orb()
	}
	return mp.Bound()
}

// CountEdges returns the number of unordered vertex pairs of s that are
// strictly closer than threshold. Coincident points count as adjacent.
func (s PointSet) CountEdges(threshold float64) int {
	edges := 0
	for i := range s {
		for j := i + 1; j < len(s); j++ {
			if Within(s[i], s[j], threshold) {
				edges++
			}
		}
	}
	return edges
}
