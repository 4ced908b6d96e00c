// Package verify independently checks feedback vertex sets.
//
// The solver in package fvs runs its own union-find cycle checks. This
// package rebuilds the remaining geometric graph with gonum and counts its
// connected components instead: an undirected graph is a forest exactly when
// its edge count equals its vertex count minus its component count. The two
// checks share no code beyond the distance predicate, which makes Check a
// useful second opinion for CLI output, API responses and tests.
package verify
