package fvs

import (
	"context"
	"math/rand"
	"testing"
)

func TestAnnealShrinksOversizedSolution(t *testing.T) {
	in := newInstance(triangle(0, 0), 2)

	best, st, err := in.anneal(context.Background(), []int{0, 1, 2}, DefaultSchedule(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if len(best) != 1 {
		t.Errorf("best = %v, want a single vertex", best)
	}
	if !in.valid(best) {
		t.Error("best leaves a cycle")
	}
	if st.iterations == 0 || st.iterations > DefaultIterations {
		t.Errorf("iterations = %d, want 1..%d", st.iterations, DefaultIterations)
	}
}

func TestAnnealNeverWorsens(t *testing.T) {
	points := randomInstance(12, 80, 100)
	in := newInstance(points, 20)
	start := in.construct(StrategyImpact)

	best, _, err := in.anneal(context.Background(), start, DefaultSchedule(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	if len(best) > len(start) {
		t.Errorf("anneal returned %d vertices from a start of %d", len(best), len(start))
	}
	if !in.valid(best) {
		t.Error("best leaves a cycle")
	}
}

func TestAnnealStopsAtMinTemperature(t *testing.T) {
	in := newInstance(triangle(0, 0), 2)
	sched := Schedule{Temperature: 2, CoolingRate: 0.5, MinTemperature: 1, Iterations: 300}

	_, st, err := in.anneal(context.Background(), []int{0}, sched, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	// 2 > 1 runs once, then 1 is not above the floor.
	if st.iterations != 1 {
		t.Errorf("iterations = %d, want 1", st.iterations)
	}
}

func TestAnnealCancelled(t *testing.T) {
	in := newInstance(triangle(0, 0), 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	best, _, err := in.anneal(ctx, []int{0, 1}, DefaultSchedule(), rand.New(rand.NewSource(1)))
	if err == nil {
		t.Fatal("expected a context error")
	}
	if len(best) != 2 {
		t.Errorf("best = %v, want the start set", best)
	}
}
