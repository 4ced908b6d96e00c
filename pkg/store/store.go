// Package store keeps a history of solver runs for the API server.
//
// This package defines the Run record and the Store interface, with two
// backends:
//   - memory: in-process storage for development, tests and the CLI
//   - mongo: MongoDB-backed storage shared by several server instances
//
// # Usage
//
//	// Development
//	s := store.NewMemoryStore(0)
//
//	// Production
//	s, err := store.NewMongoStore(ctx, store.MongoConfig{URI: uri})
//
//	run := store.NewRun(points, threshold, res)
//	if err := s.Put(ctx, run); err != nil {
//	    return err
//	}
//	got, err := s.Get(ctx, run.ID) // nil, nil when unknown
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/cyclecut/pkg/fvs"
	"github.com/matzehuels/cyclecut/pkg/geom"
)

// Run is one completed solve.
type Run struct {
	ID         string        `json:"id"`
	CreatedAt  time.Time     `json:"created_at"`
	Threshold  float64       `json:"threshold"`
	PointCount int           `json:"point_count"`
	PointsHash string        `json:"points_hash,omitempty"`
	Options    fvs.Options   `json:"options"`
	Solution   geom.PointSet `json:"solution"`
	Indices    []int         `json:"indices"`
	Stats      fvs.Stats     `json:"stats"`
	Valid      bool          `json:"valid"`
	Cached     bool          `json:"cached"`
}

// NewRun creates a run record with a fresh ID for a solver result.
func NewRun(points []geom.Point, threshold float64, opts fvs.Options, res *fvs.Result) *Run {
	return &Run{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Threshold:  threshold,
		PointCount: len(points),
		Options:    opts,
		Solution:   res.Solution,
		Indices:    res.Indices,
		Stats:      res.Stats,
	}
}

// ValidID reports whether id has the form of a run ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Store is the interface for run storage backends.
type Store interface {
	// Get retrieves a run by ID.
	// Returns nil, nil if the run doesn't exist.
	Get(ctx context.Context, id string) (*Run, error)

	// Put stores a run, replacing any run with the same ID.
	Put(ctx context.Context, run *Run) error

	// List returns up to limit runs, newest first. A limit of zero or less
	// means DefaultListLimit.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Close releases the backend.
	Close(ctx context.Context) error
}

// Limits.
const (
	DefaultListLimit = 20
	MaxListLimit     = 500
)

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
