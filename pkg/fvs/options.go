package fvs

import (
	"math/rand"

	cerrors "github.com/matzehuels/cyclecut/pkg/errors"
)

// DefaultSeed seeds the solver's random source when Options.Seed is zero.
const DefaultSeed int64 = 42

// Options configures a solve. The zero value is usable: every zero field is
// replaced by its default.
type Options struct {
	// Strategy selects the greedy constructor (default StrategyImpact).
	Strategy Strategy `json:"strategy,omitempty" toml:"strategy"`

	// Schedule is the annealing schedule (default DefaultSchedule()).
	Schedule Schedule `json:"schedule" toml:"schedule"`

	// MaxRounds caps both local-search rounds and annealing rounds
	// (default DefaultMaxRounds).
	MaxRounds int `json:"max_rounds,omitempty" toml:"max_rounds"`

	// SkipAnnealing stops after greedy construction and local search.
	SkipAnnealing bool `json:"skip_annealing,omitempty" toml:"skip_annealing"`

	// Seed seeds the random source (default DefaultSeed).
	Seed int64 `json:"seed,omitempty" toml:"seed"`

	// Rand overrides Seed with a caller-owned random source. It must not be
	// shared with a concurrent solve.
	Rand *rand.Rand `json:"-" toml:"-"`

	// Progress, if set, receives an Event after every stage.
	Progress func(Event) `json:"-" toml:"-"`
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	var o Options
	o.SetDefaults()
	return o
}

// SetDefaults replaces zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.Schedule.Temperature == 0 {
		o.Schedule.Temperature = DefaultTemperature
	}
	if o.Schedule.CoolingRate == 0 {
		o.Schedule.CoolingRate = DefaultCoolingRate
	}
	if o.Schedule.MinTemperature == 0 {
		o.Schedule.MinTemperature = DefaultMinTemperature
	}
	if o.Schedule.Iterations == 0 {
		o.Schedule.Iterations = DefaultIterations
	}
	if o.MaxRounds == 0 {
		o.MaxRounds = DefaultMaxRounds
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
}

// Validate checks option ranges. Zero values are valid because SetDefaults
// replaces them.
func (o Options) Validate() error {
	if _, err := ParseStrategy(string(o.Strategy)); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidOptions, err, "invalid strategy")
	}
	s := o.Schedule
	switch {
	case s.Temperature < 0:
		return cerrors.New(cerrors.ErrCodeInvalidOptions, "temperature must be positive, got %v", s.Temperature)
	case s.CoolingRate < 0 || s.CoolingRate >= 1:
		return cerrors.New(cerrors.ErrCodeInvalidOptions, "cooling rate must be in (0, 1), got %v", s.CoolingRate)
	case s.MinTemperature < 0:
		return cerrors.New(cerrors.ErrCodeInvalidOptions, "minimum temperature must be positive, got %v", s.MinTemperature)
	case s.Iterations < 0:
		return cerrors.New(cerrors.ErrCodeInvalidOptions, "iterations must not be negative, got %d", s.Iterations)
	case o.MaxRounds < 0:
		return cerrors.New(cerrors.ErrCodeInvalidOptions, "max rounds must not be negative, got %d", o.MaxRounds)
	}
	return nil
}
