package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/cyclecut/pkg/fvs"
)

func TestSolveModelUpdate(t *testing.T) {
	var m tea.Model = NewSolveModel(100)

	m, _ = m.Update(progressMsg(fvs.Event{Phase: fvs.PhaseGreedy, Size: 20, Best: 20}))
	m, _ = m.Update(progressMsg(fvs.Event{Phase: fvs.PhaseLocalSearch, Size: 15, Best: 15}))
	m, _ = m.Update(progressMsg(fvs.Event{Phase: fvs.PhaseLocalSearch, Round: 1, Size: 12, Best: 12}))

	sm := m.(SolveModel)
	if sm.Greedy != 20 {
		t.Errorf("Greedy = %d, want 20", sm.Greedy)
	}
	if len(sm.History) != 1 || sm.History[0] != 12 {
		t.Errorf("History = %v, want [12]", sm.History)
	}

	view := sm.View()
	for _, want := range []string{"Solving 100 points", "local_search", "12"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	m, cmd := m.Update(solveDoneMsg{})
	if !m.(SolveModel).Done {
		t.Error("model should be done")
	}
	if cmd == nil {
		t.Error("done should quit the program")
	}
}

func TestSolveModelQuit(t *testing.T) {
	m, cmd := NewSolveModel(3).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.(SolveModel).Quit {
		t.Error("q should mark the model as quit")
	}
	if cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline([]int{5, 5, 5}, 10); got != "▁▁▁" {
		t.Errorf("flat sparkline = %q", got)
	}
	if got := sparkline([]int{1, 8}, 10); got != "▁█" {
		t.Errorf("sparkline = %q", got)
	}
	if got := []rune(sparkline([]int{1, 2, 3, 4, 5}, 3)); len(got) != 3 {
		t.Errorf("sparkline kept %d values, want 3", len(got))
	}
}
