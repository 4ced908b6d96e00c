package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cerrors "github.com/matzehuels/cyclecut/pkg/errors"
	cyio "github.com/matzehuels/cyclecut/pkg/io"
)

// execute runs the CLI with args in an isolated environment and returns
// what commands wrote to c.Out.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Out = &out
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(envRedisURL, "")
	t.Setenv(envMongoURI, "")
	return t.TempDir()
}

func TestGenerateSolveVerifyRender(t *testing.T) {
	dir := isolate(t)
	points := filepath.Join(dir, "pts.txt")
	solution := filepath.Join(dir, "sol.json")

	if _, err := execute(t, "generate", "-n", "60", "--size", "100", "--seed", "3", "-o", points); err != nil {
		t.Fatalf("generate: %v", err)
	}
	inst, err := cyio.ImportInstance(points)
	if err != nil {
		t.Fatalf("read generated points: %v", err)
	}
	if len(inst.Points) != 60 {
		t.Fatalf("generated %d points, want 60", len(inst.Points))
	}

	if _, err := execute(t, "solve", points, "-t", "20", "-o", solution, "-f", "dot"); err != nil {
		t.Fatalf("solve: %v", err)
	}
	sol, err := cyio.ImportSolution(solution)
	if err != nil {
		t.Fatalf("read solution: %v", err)
	}
	if sol.Threshold != 20 {
		t.Errorf("solution threshold = %v, want 20", sol.Threshold)
	}
	if _, err := os.Stat(filepath.Join(dir, "pts.dot")); err != nil {
		t.Errorf("dot drawing not written: %v", err)
	}

	// Threshold comes from the solution file.
	if _, err := execute(t, "verify", points, solution); err != nil {
		t.Errorf("verify: %v", err)
	}

	base := filepath.Join(dir, "drawing")
	if _, err := execute(t, "render", points, solution, "-f", "dot,json", "-o", base); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{".dot", ".json"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("render output %s missing: %v", ext, err)
		}
	}
}

func TestSolveCachesAcrossRuns(t *testing.T) {
	dir := isolate(t)
	points := writeFile(t, dir, "square.txt", "0 0\n1 0\n1 1\n0 1\n")

	for i := range 2 {
		out := filepath.Join(dir, "sol.json")
		if _, err := execute(t, "solve", points, "-t", "1.1", "-o", out); err != nil {
			t.Fatalf("solve #%d: %v", i, err)
		}
		sol, err := cyio.ImportSolution(out)
		if err != nil {
			t.Fatal(err)
		}
		if len(sol.Points) != 1 {
			t.Errorf("solve #%d removed %d points, want 1", i, len(sol.Points))
		}
	}

	dir, _ = cacheDir()
	entries, _ := filepath.Glob(filepath.Join(dir, "??", "*.json"))
	if len(entries) == 0 {
		t.Error("expected cache entries after solving")
	}

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ = filepath.Glob(filepath.Join(dir, "??", "*.json"))
	if len(entries) != 0 {
		t.Errorf("%d cache entries left after clear", len(entries))
	}
}

func TestSolveRequiresThreshold(t *testing.T) {
	dir := isolate(t)
	points := writeFile(t, dir, "pts.txt", "0 0\n1 0\n")

	_, err := execute(t, "solve", points)
	if !cerrors.Is(err, cerrors.ErrCodeInvalidThreshold) {
		t.Errorf("solve without threshold: err = %v, want INVALID_THRESHOLD", err)
	}
}

func TestSolveThresholdFromJSON(t *testing.T) {
	dir := isolate(t)
	points := writeFile(t, dir, "tri.json", `{"threshold": 1.1, "points": [{"x":0,"y":0},{"x":1,"y":0},{"x":0.5,"y":0.8}]}`)
	out := filepath.Join(dir, "sol.txt")

	if _, err := execute(t, "solve", points, "-o", out, "--no-cache"); err != nil {
		t.Fatalf("solve: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 1 {
		t.Errorf("text solution has %d lines, want 1:\n%s", lines, data)
	}
}

func TestVerifyRejects(t *testing.T) {
	dir := isolate(t)
	points := writeFile(t, dir, "tri.txt", "0 0\n1 0\n0.5 0.8\n")
	empty := writeFile(t, dir, "empty.json", `{"solution": []}`)
	stranger := writeFile(t, dir, "stranger.json", `{"solution": [{"x": 5, "y": 5}]}`)

	if _, err := execute(t, "verify", points, empty, "-t", "1.1"); err == nil {
		t.Error("empty set should not break the triangle")
	}
	if _, err := execute(t, "verify", points, stranger, "-t", "1.1"); err == nil {
		t.Error("a point outside the input should fail")
	}
	if _, err := execute(t, "verify", points, empty, "-t", "0.5"); err != nil {
		t.Errorf("no edges below 0.5, empty set should pass: %v", err)
	}
}

func TestBench(t *testing.T) {
	dir := isolate(t)
	points := writeFile(t, dir, "square.txt", "0 0\n1 0\n1 1\n0 1\n")

	if _, err := execute(t, "bench", points, "-t", "1.1", "-n", "3", "--skip-annealing"); err != nil {
		t.Fatalf("bench: %v", err)
	}
	if _, err := execute(t, "bench", points, "-t", "1.1", "-n", "0"); !cerrors.Is(err, cerrors.ErrCodeInvalidOptions) {
		t.Errorf("bench -n 0: err = %v, want INVALID_OPTIONS", err)
	}
}

func TestCachePath(t *testing.T) {
	isolate(t)
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	want, _ := cacheDir()
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestConfigFlag(t *testing.T) {
	dir := isolate(t)
	cfg := writeFile(t, dir, "cfg.toml", "[cache]\ndir = \""+filepath.ToSlash(filepath.Join(dir, "c"))+"\"\n")

	out, err := execute(t, "--config", cfg, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != filepath.ToSlash(filepath.Join(dir, "c")) {
		t.Errorf("cache path = %q", out)
	}

	bad := writeFile(t, dir, "bad.toml", "[nope]\nx = 1\n")
	if _, err := execute(t, "--config", bad, "cache", "path"); err == nil {
		t.Error("unknown config table should fail")
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, "cyclecut") {
			t.Errorf("completion %s does not mention the program", shell)
		}
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should fail")
	}
}
