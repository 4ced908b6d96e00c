package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/cyclecut/pkg/cache"
	cerrors "github.com/matzehuels/cyclecut/pkg/errors"
	"github.com/matzehuels/cyclecut/pkg/fvs"
	"github.com/matzehuels/cyclecut/pkg/geom"
)

// memCache is an in-memory cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[key]
	return data, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func square() []geom.Point {
	return []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}
}

func twoTriangles() []geom.Point {
	return []geom.Point{
		geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0.5, 0.8),
		geom.Pt(10, 0), geom.Pt(11, 0), geom.Pt(10.5, 0.8),
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !cerrors.Is(err, cerrors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %q", tt.format, cerrors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Threshold: 1.5}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}

	if opts.Strategy != string(fvs.DefaultStrategy) {
		t.Errorf("Strategy = %q, want %q", opts.Strategy, fvs.DefaultStrategy)
	}
	if opts.Restarts != DefaultRestarts {
		t.Errorf("Restarts = %d, want %d", opts.Restarts, DefaultRestarts)
	}
	if opts.Seed != fvs.DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, fvs.DefaultSeed)
	}
	if opts.MaxRounds != fvs.DefaultMaxRounds {
		t.Errorf("MaxRounds = %d, want %d", opts.MaxRounds, fvs.DefaultMaxRounds)
	}
	if opts.Temperature != fvs.DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", opts.Temperature, fvs.DefaultTemperature)
	}
	if opts.Width != 8 {
		t.Errorf("Width = %v, want 8", opts.Width)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}

	// Idempotent
	before := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults() error: %v", err)
	}
	if opts.SolutionKeyOpts() != before.SolutionKeyOpts() {
		t.Error("second call changed solver options")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code cerrors.Code
	}{
		{"nan threshold", Options{Threshold: math.NaN()}, cerrors.ErrCodeInvalidThreshold},
		{"infinite threshold", Options{Threshold: math.Inf(1)}, cerrors.ErrCodeInvalidThreshold},
		{"unknown strategy", Options{Threshold: 1, Strategy: "fastest"}, cerrors.ErrCodeInvalidOptions},
		{"too many restarts", Options{Threshold: 1, Restarts: MaxRestarts + 1}, cerrors.ErrCodeInvalidOptions},
		{"negative restarts", Options{Threshold: 1, Restarts: -1}, cerrors.ErrCodeInvalidOptions},
		{"cooling rate", Options{Threshold: 1, CoolingRate: 1.5}, cerrors.ErrCodeInvalidOptions},
		{"negative timeout", Options{Threshold: 1, Timeout: -time.Second}, cerrors.ErrCodeInvalidOptions},
		{"negative width", Options{Threshold: 1, Width: -1}, cerrors.ErrCodeInvalidOptions},
		{"bad format", Options{Threshold: 1, Formats: []string{"gif"}}, cerrors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if code := cerrors.GetCode(err); code != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", code, tt.code, err)
			}
		})
	}
}

func TestFVSOptionsSeeds(t *testing.T) {
	opts := Options{Threshold: 1, Seed: 7}
	if got := opts.FVSOptions(0).Seed; got != 7 {
		t.Errorf("restart 0 seed = %d, want 7", got)
	}

	seen := map[int64]bool{7: true}
	for i := 1; i < 32; i++ {
		seed := opts.FVSOptions(i).Seed
		if seed == 0 {
			t.Fatalf("restart %d got seed 0", i)
		}
		if seen[seed] {
			t.Fatalf("restart %d reuses seed %d", i, seed)
		}
		seen[seed] = true
	}

	if opts.FVSOptions(3).Seed != opts.FVSOptions(3).Seed {
		t.Error("derived seeds are not deterministic")
	}
}

func TestSolveRestarts(t *testing.T) {
	tests := []struct {
		name     string
		points   []geom.Point
		restarts int
		want     int
	}{
		{"square single", square(), 1, 1},
		{"square parallel", square(), 4, 1},
		{"two triangles", twoTriangles(), 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Threshold: 1.1, Restarts: tt.restarts}
			if err := opts.ValidateForSolve(); err != nil {
				t.Fatal(err)
			}
			res, best, err := SolveRestarts(context.Background(), tt.points, opts)
			if err != nil {
				t.Fatalf("SolveRestarts() error: %v", err)
			}
			if len(res.Solution) != tt.want {
				t.Errorf("len(Solution) = %d, want %d", len(res.Solution), tt.want)
			}
			if best != 0 {
				// Every restart reaches the optimum here; ties go to restart 0.
				t.Errorf("best restart = %d, want 0", best)
			}
			if !fvs.IsValid(tt.points, res.Solution, 1.1) {
				t.Error("solution is not a feedback vertex set")
			}
		})
	}
}

func TestSolveRestartsProgressFromFirstOnly(t *testing.T) {
	var mu sync.Mutex
	var events int

	opts := Options{Threshold: 1.1, Restarts: 4, Seed: 9}
	opts.Progress = func(fvs.Event) {
		mu.Lock()
		events++
		mu.Unlock()
	}
	if err := opts.ValidateForSolve(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := SolveRestarts(context.Background(), square(), opts); err != nil {
		t.Fatal(err)
	}

	single := opts
	single.Restarts = 1
	var singleEvents int
	single.Progress = func(fvs.Event) { singleEvents++ }
	if _, _, err := SolveRestarts(context.Background(), square(), single); err != nil {
		t.Fatal(err)
	}

	if events != singleEvents {
		t.Errorf("got %d events with 4 restarts, want %d (restart 0 only)", events, singleEvents)
	}
}

func TestRunnerExecute(t *testing.T) {
	c := newMemCache()
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()

	opts := Options{Threshold: 1.1, Formats: []string{"dot", "json"}}
	result, err := runner.Execute(ctx, square(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if len(result.Solve.Solution) != 1 {
		t.Errorf("len(Solution) = %d, want 1", len(result.Solve.Solution))
	}
	if !result.Report.Valid() {
		t.Errorf("report not valid: %+v", result.Report)
	}
	if result.Report.Edges != 2 {
		t.Errorf("Report.Edges = %d, want 2", result.Report.Edges)
	}
	if result.PointsHash != cache.HashPoints(square()) {
		t.Error("PointsHash does not match the input")
	}
	if result.CacheInfo.SolveHit || result.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	dot := string(result.Artifacts["dot"])
	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("dot artifact = %q", dot)
	}
	var sol struct {
		Solution []geom.Point `json:"solution"`
		Indices  []int        `json:"indices"`
	}
	if err := json.Unmarshal(result.Artifacts["json"], &sol); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(sol.Solution) != 1 || len(sol.Indices) != 1 {
		t.Errorf("json artifact = %+v", sol)
	}

	// Second run is served from cache.
	again, err := runner.Execute(ctx, square(), opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !again.CacheInfo.SolveHit {
		t.Error("second run should hit the solve cache")
	}
	if !again.CacheInfo.RenderHit {
		t.Error("second run should hit the render cache")
	}
	if again.Solve.Solution[0] != result.Solve.Solution[0] {
		t.Error("cached solution differs")
	}
}

func TestRunnerRefresh(t *testing.T) {
	c := newMemCache()
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()

	if _, _, err := runner.SolveWithCacheInfo(ctx, square(), Options{Threshold: 1.1}); err != nil {
		t.Fatal(err)
	}
	_, hit, err := runner.SolveWithCacheInfo(ctx, square(), Options{Threshold: 1.1, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("refresh should bypass the cache")
	}

	// A different threshold is a different key.
	_, hit, err = runner.SolveWithCacheInfo(ctx, square(), Options{Threshold: 1.2})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("different threshold should miss the cache")
	}
}

func TestRunnerCancelledNotCached(t *testing.T) {
	c := newMemCache()
	runner := NewRunner(c, nil, nil)
	points := geom.RandomPoints(60, geom.PointSet{geom.Pt(0, 0), geom.Pt(50, 50)}.Bound(), true, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := runner.Execute(ctx, points, Options{Threshold: 12, Formats: []string{"dot"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v, want context.Canceled", err)
	}
	if result == nil || result.Solve == nil {
		t.Fatal("expected a partial result")
	}
	if !result.Report.Valid() {
		t.Error("partial result should still be valid")
	}
	if len(result.Artifacts) != 0 {
		t.Error("interrupted run should not render")
	}
	if c.sets != 0 {
		t.Errorf("interrupted run wrote %d cache entries", c.sets)
	}
}

func TestRunnerTimeout(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	points := geom.RandomPoints(60, geom.PointSet{geom.Pt(0, 0), geom.Pt(50, 50)}.Bound(), true, nil)

	_, err := runner.Solve(context.Background(), points, Options{Threshold: 12, Timeout: time.Nanosecond})
	if err == nil {
		// The solve may legitimately finish before the first check.
		return
	}
	if code := cerrors.GetCode(err); code != cerrors.ErrCodeTimeout {
		t.Errorf("code = %q, want %q", code, cerrors.ErrCodeTimeout)
	}
}

func TestSolutionHash(t *testing.T) {
	res := &fvs.Result{Solution: geom.PointSet{geom.Pt(1, 0)}, Indices: []int{1}}
	other := &fvs.Result{Solution: geom.PointSet{geom.Pt(0, 0)}, Indices: []int{0}}

	a := SolutionHash(square(), res, 1.1)
	if a != SolutionHash(square(), res, 1.1) {
		t.Error("hash is not deterministic")
	}
	if a == SolutionHash(square(), other, 1.1) {
		t.Error("different solutions share a hash")
	}
	if a == SolutionHash(square(), res, 1.2) {
		t.Error("different thresholds share a hash")
	}

	// Stats do not affect the hash.
	withStats := *res
	withStats.Stats.Duration = time.Hour
	if a != SolutionHash(square(), &withStats, 1.1) {
		t.Error("stats changed the hash")
	}
}
