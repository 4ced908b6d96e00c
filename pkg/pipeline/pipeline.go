// Package pipeline provides the solve pipeline shared by the CLI and the API.
//
// This package implements the complete solve → verify → render pipeline. By
// centralizing it, both entry points cache, log and validate in the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Solve: Compute a feedback vertex set, optionally as several restarts
//     with different seeds run in parallel
//  2. Verify: Check the result independently of the solver
//  3. Render: Draw the point set and the solution (DOT, SVG, PNG, PDF, JSON)
//
// Solve and render results are cached. Each stage can also run on its own.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Threshold: 55,
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, points, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Solve only
//	res, err := runner.Solve(ctx, points, opts)
//
//	// Render an existing solution
//	artifacts, err := runner.Render(ctx, points, res, opts)
package pipeline

import (
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cyclecut/pkg/cache"
	"github.com/matzehuels/cyclecut/pkg/errors"
	"github.com/matzehuels/cyclecut/pkg/fvs"
	"github.com/matzehuels/cyclecut/pkg/render"
	"github.com/matzehuels/cyclecut/pkg/render/nodelink"
	"github.com/matzehuels/cyclecut/pkg/verify"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultRestarts runs a single solve.
	DefaultRestarts = 1

	// MaxRestarts bounds parallel restarts per request.
	MaxRestarts = 64

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// FormatJSON renders the solution itself as JSON. The drawing formats are
// listed in package render.
const FormatJSON = "json"

// Formats lists every supported output format.
var Formats = append(slices.Clone(render.Formats), FormatJSON)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Threshold is the edge distance: points strictly closer are adjacent.
	Threshold float64 `json:"threshold"`

	// Solver options
	Strategy       string  `json:"strategy,omitempty"`
	Seed           int64   `json:"seed,omitempty"`
	Temperature    float64 `json:"temperature,omitempty"`
	CoolingRate    float64 `json:"cooling_rate,omitempty"`
	MinTemperature float64 `json:"min_temperature,omitempty"`
	Iterations     int     `json:"iterations,omitempty"`
	MaxRounds      int     `json:"max_rounds,omitempty"`
	SkipAnnealing  bool    `json:"skip_annealing,omitempty"`
	Restarts       int     `json:"restarts,omitempty"`
	Refresh        bool    `json:"refresh,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Width     float64  `json:"width,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	Labels    bool     `json:"labels,omitempty"`
	HideEdges bool     `json:"hide_edges,omitempty"`

	// Runtime options (not serialized)
	Timeout  time.Duration   `json:"-"`
	Logger   *log.Logger     `json:"-"`
	Progress func(fvs.Event) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Solve is the solver result of the best restart.
	Solve *fvs.Result

	// PointsHash is the content hash of the input points.
	PointsHash string

	// Report is the independent check of the solution.
	Report verify.Report

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SolveTime   time.Duration
	VerifyTime  time.Duration
	RenderTime  time.Duration
	Restarts    int
	BestRestart int
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the solution came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, Formats...)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSolve checks the threshold and solver options and applies
// solver defaults.
func (o *Options) ValidateForSolve() error {
	if err := errors.ValidateThreshold(o.Threshold); err != nil {
		return err
	}
	strategy, err := fvs.ParseStrategy(o.Strategy)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOptions, err, "invalid strategy")
	}
	o.Strategy = string(strategy)

	if o.Restarts == 0 {
		o.Restarts = DefaultRestarts
	}
	if o.Restarts < 0 || o.Restarts > MaxRestarts {
		return errors.New(errors.ErrCodeInvalidOptions, "restarts must be between 1 and %d, got %d", MaxRestarts, o.Restarts)
	}
	if o.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "timeout must not be negative")
	}

	fo := o.FVSOptions(0)
	if err := fo.Validate(); err != nil {
		return err
	}
	fo.SetDefaults()
	o.Seed = fo.Seed
	o.Temperature = fo.Schedule.Temperature
	o.CoolingRate = fo.Schedule.CoolingRate
	o.MinTemperature = fo.Schedule.MinTemperature
	o.Iterations = fo.Schedule.Iterations
	o.MaxRounds = fo.MaxRounds
	return nil
}

// ValidateForRender checks render options and applies render defaults.
// An empty Formats list is valid and renders nothing.
func (o *Options) ValidateForRender() error {
	if o.Width == 0 {
		o.Width = nodelink.DefaultWidth
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Width < 0 || math.IsInf(o.Width, 0) || math.IsNaN(o.Width) {
		return errors.New(errors.ErrCodeInvalidOptions, "width must be positive, got %v", o.Width)
	}
	if o.Scale < 0 || math.IsInf(o.Scale, 0) || math.IsNaN(o.Scale) {
		return errors.New(errors.ErrCodeInvalidOptions, "scale must be positive, got %v", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// FVSOptions returns solver options for the restart with the given index.
// Restart 0 uses Seed itself; later restarts derive their seeds from it.
func (o *Options) FVSOptions(restart int) fvs.Options {
	seed := o.Seed
	if restart > 0 {
		seed = deriveSeed(o.Seed, restart)
	}
	return fvs.Options{
		Strategy: fvs.Strategy(o.Strategy),
		Schedule: fvs.Schedule{
			Temperature:    o.Temperature,
			CoolingRate:    o.CoolingRate,
			MinTemperature: o.MinTemperature,
			Iterations:     o.Iterations,
		},
		MaxRounds:     o.MaxRounds,
		SkipAnnealing: o.SkipAnnealing,
		Seed:          seed,
	}
}

// deriveSeed spreads restart seeds with a 64-bit mix so neighboring base
// seeds do not share restarts. The result is never zero, which would select
// the default seed.
func deriveSeed(base int64, restart int) int64 {
	z := uint64(base) + uint64(restart)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		z = 1
	}
	return int64(z)
}

// SolutionKeyOpts returns cache key options for the solve stage.
func (o *Options) SolutionKeyOpts() cache.SolutionKeyOpts {
	return cache.SolutionKeyOpts{
		Threshold:      o.Threshold,
		Strategy:       o.Strategy,
		Seed:           o.Seed,
		Temperature:    o.Temperature,
		CoolingRate:    o.CoolingRate,
		MinTemperature: o.MinTemperature,
		Iterations:     o.Iterations,
		MaxRounds:      o.MaxRounds,
		Restarts:       o.Restarts,
		SkipAnnealing:  o.SkipAnnealing,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Width:  o.Width,
		Scale:  o.Scale,
		Labels: o.Labels,
		Edges:  !o.HideEdges,
	}
}

// NodelinkOptions returns the drawing options.
func (o *Options) NodelinkOptions() nodelink.Options {
	return nodelink.Options{
		Width:     o.Width,
		Labels:    o.Labels,
		HideEdges: o.HideEdges,
	}
}
