package nodelink

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/cyclecut/pkg/geom"
)

func triangle() []geom.Point {
	return []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0.5, math.Sqrt(3)/2)}
}

func TestToDOT_Basic(t *testing.T) {
	points := triangle()
	dot := ToDOT(points, []geom.Point{points[0]}, 2, Options{})

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`p0 [pos="0.0000,0.0000!", fillcolor="` + colorRemoved + `"]`,
		`p1 [pos="8.0000,0.0000!", fillcolor="white"]`,
		`p0 -- p1 [style=dashed`,
		`p0 -- p2 [style=dashed`,
		"p1 -- p2;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "p1 -- p0") {
		t.Error("edges should be listed once")
	}
}

func TestToDOT_Width(t *testing.T) {
	points := []geom.Point{geom.Pt(10, 10), geom.Pt(12, 11)}
	dot := ToDOT(points, nil, 1, Options{Width: 4})

	if !strings.Contains(dot, `p1 [pos="4.0000,2.0000!"`) {
		t.Errorf("expected p1 scaled to 4 inches wide:\n%s", dot)
	}
	if strings.Contains(dot, " -- ") {
		t.Error("points farther apart than the threshold should not be joined")
	}
}

func TestToDOT_Options(t *testing.T) {
	points := triangle()

	dot := ToDOT(points, nil, 2, Options{Labels: true, HideEdges: true})
	if !strings.Contains(dot, `xlabel="2"`) {
		t.Error("Labels should add xlabels")
	}
	if strings.Contains(dot, " -- ") {
		t.Error("HideEdges should drop edges")
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(nil, nil, 1, Options{})
	if !strings.HasPrefix(dot, "graph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("unexpected output for empty input:\n%s", dot)
	}
}

func TestToDOT_Duplicates(t *testing.T) {
	p := geom.Pt(1, 1)
	dot := ToDOT([]geom.Point{p, p, p}, []geom.Point{p}, 1, Options{})
	if got := strings.Count(dot, colorRemoved); got != 3 {
		t.Errorf("every copy of a removed point should be red, got %d", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if !strings.Contains(out, "<g/>") {
		t.Error("body should be preserved")
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("SVG without a viewBox should be unchanged")
	}
}

func TestRenderDOTFormat(t *testing.T) {
	out, err := Render(context.Background(), "graph G {}\n", "dot", 1)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "graph G {}\n" {
		t.Errorf("Render(dot) = %q", out)
	}
	if _, err := Render(context.Background(), "graph G {}\n", "gif", 1); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
