// Package fvs computes small feedback vertex sets of geometric graphs.
//
// The graph is implicit: its vertices are a slice of [geom.Point] values and
// two vertices are adjacent iff their distance is strictly less than an edge
// threshold. A feedback vertex set (FVS) is a subset of the vertices whose
// removal leaves the remaining vertices free of cycles, i.e. a forest.
// Finding a minimum FVS is NP-hard, so [Solve] trades optimality for speed.
//
// # Pipeline
//
// A solve runs three stages over one immutable input:
//
//  1. Greedy construction ([StrategyImpact] or [StrategyDegree]) removes
//     high-impact vertices until the remainder is acyclic.
//  2. Local search drops redundant vertices one at a time and replaces pairs
//     of vertices by a single better-placed one, until a full round finds
//     nothing to improve.
//  3. Simulated annealing perturbs the solution with random add/remove moves,
//     followed by a pruning sweep and another local search. Rounds repeat
//     until one of them no longer shrinks the solution.
//
// Every accepted mutation is validated, so the solution handed from stage to
// stage is always a valid FVS and never grows.
//
// # Oracles
//
// [HasCycle] and [IsValid] implement the reference semantics on plain point
// slices with a union-find over all O(n²) vertex pairs. Internally the solver
// caches each vertex's neighbor list once per instance (built with a
// [geom.Index]) and runs the same union-find over the cached edges.
//
// # Usage
//
//	points := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0.5, 0.8)}
//	fvs := fvs.ComputeFeedbackVertexSet(points, 2)
//	// fvs has exactly one of the three triangle corners
//
// Use [Solve] for control over the random seed, the annealing schedule and
// progress reporting:
//
//	opts := fvs.DefaultOptions()
//	opts.Seed = 7
//	opts.Progress = func(e fvs.Event) { log.Info(e.Phase, "size", e.Size) }
//	res, err := fvs.Solve(ctx, points, threshold, opts)
//
// # Determinism
//
// All randomness flows through one *rand.Rand per solve, seeded from
// [Options.Seed] or supplied through [Options.Rand]. Equal inputs and seeds
// produce equal results.
package fvs
