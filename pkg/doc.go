// Package pkg provides the core libraries for cyclecut.
//
// # Overview
//
// cyclecut finds small feedback vertex sets of geometric graphs: given points
// in the plane and a distance threshold, where two points are joined when
// they are closer than the threshold, it picks points whose removal leaves
// no cycles. The pkg directory is organized into three areas:
//
//  1. Domain logic: [geom], [fvs], [verify]
//  2. Orchestration: [pipeline], [io], [render]
//  3. Infrastructure: [cache], [store], [api], [observability], [errors]
//
// # Architecture
//
// The typical data flow through cyclecut:
//
//	Point file (text or JSON)
//	         ↓
//	    [io] package (parse and validate points)
//	         ↓
//	    [fvs] package (greedy → local search → annealing)
//	         ↓
//	    [verify] package (independent forest check)
//	         ↓
//	    [render/nodelink] package (DOT/SVG/PNG/PDF drawing)
//
// # Quick Start
//
// Solve an instance directly:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/cyclecut/pkg/fvs"
//	    "github.com/matzehuels/cyclecut/pkg/geom"
//	)
//
//	points := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}
//	res, err := fvs.Solve(context.Background(), points, 1.1, fvs.DefaultOptions())
//	// res.Solution holds one corner of the square
//
// Or run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, points, pipeline.Options{
//	    Threshold: 1.1,
//	    Formats:   []string{"svg"},
//	})
//
// # Main Packages
//
// [geom] - Points, point sets and the adjacency predicate. Backed by
// paulmach/orb for planar math and an rtreego R-tree for neighbor queries.
//
// [fvs] - The solver: cycle detection with union-find, greedy construction,
// local search and simulated annealing. Reports progress through
// [fvs.Event] callbacks.
//
// [verify] - Forest check on the remaining graph built with gonum, sharing
// no code with the solver.
//
// [pipeline] - Solve → verify → render with cached results and parallel
// restarts. Used by both the CLI and the HTTP API.
//
// [cache] - File, Redis and null caches keyed by content hashes.
//
// [store] - Solve run history in memory or MongoDB.
//
// [api] - HTTP API served with chi.
//
// [observability] - Hooks for solve, cache and HTTP events with a Prometheus
// adapter.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/fvs/...       # Specific package
//	go test -run Example ./...  # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/cyclecut/pkg/geom
// [fvs]: https://pkg.go.dev/github.com/matzehuels/cyclecut/pkg/fvs
// [fvs.Event]: https://pkg.go.dev/github.com/matzehuels/cyclecut/pkg/fvs#Event
// [verify]: https://pkg.go.dev/github.com/matzehuels/cyclecut/pkg/verify
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cyclecut/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/cyclecut/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/cyclecut/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/cyclecut/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/matzehuels/cyclecut/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/cyclecut/pkg/store
// [api]: https://pkg.go.dev/github.com/matzehuels/cyclecut/pkg/api
// [observability]: https://pkg.go.dev/github.com/matzehuels/cyclecut/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/cyclecut/pkg/errors
package pkg
