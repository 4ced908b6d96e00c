package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cyclecut/pkg/fvs"
	"github.com/matzehuels/cyclecut/pkg/geom"
	"github.com/matzehuels/cyclecut/pkg/pipeline"
)

// TUI styles
var (
	tuiLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	tuiValueStyle = lipgloss.NewStyle().Foreground(colorWhite)
	tuiBestStyle  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	tuiHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// =============================================================================
// SolveModel - Live solver progress
// =============================================================================

type (
	progressMsg  fvs.Event
	solveDoneMsg struct{}
	tickMsg      time.Time
)

// SolveModel is the bubbletea model showing solver progress.
type SolveModel struct {
	Points  int
	Last    fvs.Event
	Greedy  int
	History []int // solution size after each annealing round
	Frame   int
	Done    bool
	Quit    bool
	started time.Time
}

// NewSolveModel creates a model for a solve over n points.
func NewSolveModel(n int) SolveModel {
	return SolveModel{Points: n, Greedy: -1, started: time.Now()}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m SolveModel) Init() tea.Cmd {
	return tick()
}

func (m SolveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Quit = true
			return m, tea.Quit
		}
	case progressMsg:
		e := fvs.Event(msg)
		m.Last = e
		switch e.Phase {
		case fvs.PhaseGreedy:
			m.Greedy = e.Size
		case fvs.PhaseLocalSearch:
			if e.Round > 0 {
				m.History = append(m.History, e.Size)
			}
		}
	case solveDoneMsg:
		m.Done = true
		return m, tea.Quit
	case tickMsg:
		m.Frame++
		if m.Done {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m SolveModel) View() string {
	var b strings.Builder

	frame := spinnerFrames[m.Frame%len(spinnerFrames)]
	if m.Done {
		frame = iconSuccess
	}
	b.WriteString(styleIconSpinner.Render(frame) + " " + StyleTitle.Render(fmt.Sprintf("Solving %d points", m.Points)))
	b.WriteString("\n\n")

	phase := string(m.Last.Phase)
	if phase == "" {
		phase = "starting"
	}
	row := func(label, value string) {
		b.WriteString("  " + tuiLabelStyle.Render(label) + tuiValueStyle.Render(value) + "\n")
	}
	row("phase", phase)
	row("round", fmt.Sprintf("%d", m.Last.Round))
	if m.Greedy >= 0 {
		row("greedy", fmt.Sprintf("%d", m.Greedy))
	}
	row("current", fmt.Sprintf("%d", m.Last.Size))
	b.WriteString("  " + tuiLabelStyle.Render("best") + tuiBestStyle.Render(fmt.Sprintf("%d", m.Last.Best)) + "\n")
	row("checks", fmt.Sprintf("%d", m.Last.CycleChecks))
	row("elapsed", time.Since(m.started).Round(100*time.Millisecond).String())

	if len(m.History) > 0 {
		b.WriteString("\n  " + StyleDim.Render(sparkline(m.History, 40)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(tuiHelpStyle.Render("  q stop and keep best"))
	b.WriteString("\n")
	return b.String()
}

// sparkline draws values as block characters, keeping the last width values.
func sparkline(values []int, width int) string {
	if len(values) > width {
		values = values[len(values)-width:]
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	blocks := []rune("▁▂▃▄▅▆▇█")
	var b strings.Builder
	for _, v := range values {
		i := 0
		if hi > lo {
			i = (v - lo) * (len(blocks) - 1) / (hi - lo)
		}
		b.WriteRune(blocks[i])
	}
	return b.String()
}

// solveOutcome carries the pipeline result out of the solving goroutine.
type solveOutcome struct {
	result *pipeline.Result
	err    error
}

// runSolveTUI runs the pipeline while a bubbletea program shows progress.
// Quitting the program cancels the solve, which then returns its best
// solution so far.
func runSolveTUI(ctx context.Context, runner *pipeline.Runner, points []geom.Point, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSolveModel(len(points)), tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	opts.Progress = func(e fvs.Event) { p.Send(progressMsg(e)) }

	outc := make(chan solveOutcome, 1)
	go func() {
		res, err := runner.Execute(ctx, points, opts)
		outc <- solveOutcome{res, err}
		p.Send(solveDoneMsg{})
	}()

	_, runErr := p.Run()
	killed := ctx.Err() != nil
	cancel()
	out := <-outc
	if out.err == nil && runErr != nil && !killed {
		return out.result, runErr
	}
	return out.result, out.err
}
