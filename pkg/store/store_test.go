package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cyclecut/pkg/fvs"
	"github.com/matzehuels/cyclecut/pkg/geom"
)

func sampleRun(t *testing.T) *Run {
	t.Helper()
	points := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0.5, 0.8)}
	res := &fvs.Result{
		Solution: geom.PointSet{geom.Pt(0, 0)},
		Indices:  []int{0},
		Stats:    fvs.Stats{Points: 3, Edges: 3, GreedySize: 1, FinalSize: 1, Seed: 42, Duration: 1500 * time.Millisecond},
	}
	return NewRun(points, 2, fvs.Options{Strategy: fvs.StrategyImpact, Seed: 42}, res)
}

func TestNewRun(t *testing.T) {
	run := sampleRun(t)
	assert.True(t, ValidID(run.ID))
	assert.Equal(t, 3, run.PointCount)
	assert.Equal(t, 2.0, run.Threshold)
	assert.False(t, run.CreatedAt.IsZero())
	assert.NotEqual(t, run.ID, sampleRun(t).ID)
}

func TestValidID(t *testing.T) {
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("../etc/passwd"))
	assert.True(t, ValidID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close(ctx)

	got, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	run := sampleRun(t)
	require.NoError(t, s.Put(ctx, run))

	got, err = s.Get(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, run.Indices, got.Indices)

	got.Threshold = 99
	again, _ := s.Get(ctx, run.ID)
	assert.Equal(t, 2.0, again.Threshold, "callers must not alias stored runs")
}

func TestMemoryStoreListAndEviction(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(3)

	var ids []string
	for i := 0; i < 5; i++ {
		run := sampleRun(t)
		run.ID = fmt.Sprintf("run-%d", i)
		ids = append(ids, run.ID)
		require.NoError(t, s.Put(ctx, run))
	}

	runs, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-4", runs[0].ID)
	assert.Equal(t, "run-2", runs[2].ID)

	gone, _ := s.Get(ctx, ids[0])
	assert.Nil(t, gone, "oldest run should be evicted")

	runs, err = s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-4", runs[0].ID)
}

func TestMemoryStoreReplace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)
	run := sampleRun(t)
	require.NoError(t, s.Put(ctx, run))
	run.Valid = true
	require.NoError(t, s.Put(ctx, run))

	runs, _ := s.List(ctx, 10)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Valid)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, clampLimit(0))
	assert.Equal(t, DefaultListLimit, clampLimit(-3))
	assert.Equal(t, 7, clampLimit(7))
	assert.Equal(t, MaxListLimit, clampLimit(MaxListLimit+1))
}

func TestMongoDocMapping(t *testing.T) {
	run := sampleRun(t)
	run.Valid = true
	run.PointsHash = "abc"

	back := fromDoc(toDoc(run))
	assert.Equal(t, run.ID, back.ID)
	assert.Equal(t, run.Solution, back.Solution)
	assert.Equal(t, run.Indices, back.Indices)
	assert.Equal(t, run.Stats.FinalSize, back.Stats.FinalSize)
	assert.Equal(t, run.Stats.Duration, back.Stats.Duration)
	assert.Equal(t, fvs.StrategyImpact, back.Options.Strategy)
	assert.Equal(t, int64(42), back.Stats.Seed)
	assert.True(t, back.Valid)
}
