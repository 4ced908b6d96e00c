package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cyclecut/pkg/cache"
	"github.com/matzehuels/cyclecut/pkg/errors"
	"github.com/matzehuels/cyclecut/pkg/fvs"
	"github.com/matzehuels/cyclecut/pkg/geom"
	cyio "github.com/matzehuels/cyclecut/pkg/io"
	"github.com/matzehuels/cyclecut/pkg/observability"
	"github.com/matzehuels/cyclecut/pkg/verify"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, log output is discarded.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// solveEntry is the cached form of a solve.
type solveEntry struct {
	Result      *fvs.Result `json:"result"`
	Restarts    int         `json:"restarts"`
	BestRestart int         `json:"best_restart"`
}

// Execute runs the complete solve → verify → render pipeline with caching.
//
// If the solve is cut short by ctx or opts.Timeout, Execute returns the
// partial result (best solution so far, verified, nothing rendered) together
// with the error.
func (r *Runner) Execute(ctx context.Context, points []geom.Point, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		PointsHash: cache.HashPoints(points),
		Artifacts:  make(map[string][]byte),
	}

	// Stage 1: Solve
	solveStart := time.Now()
	entry, solveHit, solveErr := r.solveWithCacheInfo(ctx, points, opts)
	if entry == nil {
		return nil, fmt.Errorf("solve: %w", solveErr)
	}
	result.Solve = entry.Result
	result.Stats.SolveTime = time.Since(solveStart)
	result.Stats.Restarts = entry.Restarts
	result.Stats.BestRestart = entry.BestRestart
	result.CacheInfo.SolveHit = solveHit

	r.Logger.Info("solved",
		"points", len(points),
		"edges", entry.Result.Stats.Edges,
		"fvs", len(entry.Result.Solution),
		"cached", solveHit,
		"duration", result.Stats.SolveTime)

	// Stage 2: Verify
	verifyStart := time.Now()
	result.Report = verify.Check(points, entry.Result.Solution, opts.Threshold)
	result.Stats.VerifyTime = time.Since(verifyStart)
	if !result.Report.Valid() {
		r.Logger.Error("solution failed verification",
			"acyclic", result.Report.Acyclic,
			"subset", result.Report.Subset,
			"missing", len(result.Report.Missing))
	} else {
		r.Logger.Debug("verified",
			"remaining", result.Report.Remaining,
			"components", result.Report.Components,
			"duration", result.Stats.VerifyTime)
	}

	if solveErr != nil {
		return result, fmt.Errorf("solve: %w", solveErr)
	}

	// Stage 3: Render
	if len(opts.Formats) == 0 {
		return result, nil
	}
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, points, entry.Result, opts)
	if err != nil {
		return result, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo computes a feedback vertex set with caching and
// returns cache hit info. Partial results of interrupted solves are
// returned with the error but never cached.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, points []geom.Point, opts Options) (*fvs.Result, bool, error) {
	if err := opts.ValidateForSolve(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	entry, hit, err := r.solveWithCacheInfo(ctx, points, opts)
	if entry == nil {
		return nil, false, err
	}
	return entry.Result, hit, err
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards the cache hit info.
func (r *Runner) Solve(ctx context.Context, points []geom.Point, opts Options) (*fvs.Result, error) {
	res, _, err := r.SolveWithCacheInfo(ctx, points, opts)
	return res, err
}

// solveWithCacheInfo expects validated options.
func (r *Runner) solveWithCacheInfo(ctx context.Context, points []geom.Point, opts Options) (*solveEntry, bool, error) {
	cacheKey := r.Keyer.SolutionKey(cache.HashPoints(points), opts.SolutionKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		var entry solveEntry
		hit, err := cache.GetJSON(ctx, r.Cache, cacheKey, &entry)
		if err != nil {
			opts.Logger.Warn("cache read failed", "key", cacheKey, "error", err)
		}
		if hit && entry.Result != nil {
			observability.Cache().OnCacheHit(ctx, "solution")
			return &entry, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "solution")
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	hooks := observability.Solve()
	hooks.OnSolveStart(ctx, len(points), opts.Threshold)
	start := time.Now()
	res, best, err := SolveRestarts(ctx, points, opts)
	size := 0
	if res != nil {
		size = len(res.Solution)
	}
	hooks.OnSolveComplete(ctx, len(points), size, time.Since(start), err)

	if res == nil {
		return nil, false, err
	}
	entry := &solveEntry{Result: res, Restarts: opts.Restarts, BestRestart: best}
	if err != nil {
		return entry, false, err
	}

	if err := cache.SetJSON(ctx, r.Cache, cacheKey, entry, cache.SolutionTTL); err != nil {
		opts.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "solution", size)
	}
	return entry, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, points []geom.Point, res *fvs.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	if err := errors.ValidateThreshold(opts.Threshold); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	solutionHash := SolutionHash(points, res, opts.Threshold)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(solutionHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	hooks := observability.Solve()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, points, res, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(solutionHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, points []geom.Point, res *fvs.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, points, res, opts)
	return artifacts, err
}

// SolutionHash identifies a solution to a particular instance. Artifact
// cache keys derive from it.
func SolutionHash(points []geom.Point, res *fvs.Result, threshold float64) string {
	sol := cyio.NewSolution(res, threshold)
	sol.Stats = nil
	data, _ := json.Marshal(struct {
		Points   string         `json:"points"`
		Solution *cyio.Solution `json:"solution"`
	}{cache.HashPoints(points), sol})
	return cache.Hash(data)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
