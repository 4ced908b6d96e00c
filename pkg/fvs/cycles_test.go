package fvs

import (
	"math/rand"
	"testing"

	"github.com/matzehuels/cyclecut/pkg/geom"
)

func TestHasCycle(t *testing.T) {
	tests := []struct {
		name      string
		points    []geom.Point
		threshold float64
		want      bool
	}{
		{"empty", nil, 5, false},
		{"single point", []geom.Point{geom.Pt(0, 0)}, 5, false},
		{"two points", []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0)}, 5, false},
		{"triangle", triangle(0, 0), 2, true},
		{"triangle below side length", triangle(0, 0), 0.5, false},
		{"path", []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0), geom.Pt(3, 0)}, 1.5, false},
		{"square", unitSquare(), 1.1, true},
		{"square at exact side length", unitSquare(), 1, false},
		{"two coincident points", []geom.Point{geom.Pt(1, 1), geom.Pt(1, 1)}, 1, false},
		{"three coincident points", []geom.Point{geom.Pt(1, 1), geom.Pt(1, 1), geom.Pt(1, 1)}, 1, true},
		{"coincident pair plus shared neighbor", []geom.Point{geom.Pt(1, 1), geom.Pt(1, 1), geom.Pt(1.5, 1)}, 1, true},
		{"zero threshold", triangle(0, 0), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCycle(tt.points, tt.threshold); got != tt.want {
				t.Errorf("HasCycle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInstanceHasCycleMatchesOracle(t *testing.T) {
	points := randomInstance(11, 60, 100)
	rng := rand.New(rand.NewSource(5))

	for _, threshold := range []float64{8, 15, 25} {
		in := newInstance(points, threshold)
		for trial := 0; trial < 50; trial++ {
			removed := make([]bool, len(points))
			var remaining []geom.Point
			for i, p := range points {
				if rng.Intn(3) == 0 {
					removed[i] = true
					continue
				}
				remaining = append(remaining, p)
			}

			want := HasCycle(remaining, threshold)
			if got := in.hasCycle(removed); got != want {
				t.Fatalf("threshold %v trial %d: instance.hasCycle = %v, HasCycle = %v", threshold, trial, got, want)
			}
			if core := in.core(removed); (len(core) > 0) != want {
				t.Fatalf("threshold %v trial %d: core size %d disagrees with cycle = %v", threshold, trial, len(core), want)
			}
		}
	}
}

func TestCoreOfBowtie(t *testing.T) {
	in := newInstance(bowtie(), 1.2)
	removed := make([]bool, 5)

	core := in.core(removed)
	if len(core) != 5 {
		t.Fatalf("core = %v, want all 5 vertices", core)
	}

	removed[0] = true
	if core := in.core(removed); len(core) != 0 {
		t.Errorf("core without the shared vertex = %v, want empty", core)
	}

	removed[0], removed[3] = false, true
	got := in.core(removed)
	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("core = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("core = %v, want %v", got, want)
		}
	}
}

func TestUnionFind(t *testing.T) {
	uf := newUnionFind(4)
	if !uf.union(0, 1) || !uf.union(2, 3) {
		t.Fatal("first unions should succeed")
	}
	if uf.find(0) != uf.find(1) {
		t.Error("0 and 1 should share a root")
	}
	if uf.find(1) == uf.find(2) {
		t.Error("1 and 2 should be in different sets")
	}
	if !uf.union(1, 3) {
		t.Error("joining two sets should succeed")
	}
	if uf.union(0, 2) {
		t.Error("union within one set should report a cycle")
	}

	uf.reset(2)
	if uf.find(0) == uf.find(1) {
		t.Error("reset should restore singletons")
	}
}
