package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cyclecut/pkg/geom"
	"github.com/matzehuels/cyclecut/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Width is the drawing size in inches along the wider side of the
	// bounding box. Zero means DefaultWidth.
	Width float64

	// Labels prints the input position of every point next to it.
	Labels bool

	// HideEdges draws the points only.
	HideEdges bool
}

// DefaultWidth is the default drawing width in inches.
const DefaultWidth = 8.0

// Colors used in the drawing.
const (
	colorRemoved = "#d1495b"
	colorKept    = "white"
	colorEdge    = "#333333"
	colorCut     = "#bbbbbb"
)

// ToDOT converts a point set and its feedback vertex set to Graphviz DOT.
// Points of fvs are matched by value, so every copy of a removed point is
// drawn as removed. The result can be rendered with [RenderSVG],
// [RenderPDF] or [RenderPNG].
func ToDOT(points, fvs []geom.Point, threshold float64, opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	bound := geom.PointSet(points).Bound()
	span := max(bound.Max.X()-bound.Min.X(), bound.Max.Y()-bound.Min.Y())
	scale := 1.0
	if span > 0 {
		scale = width / span
	}

	removed := make(map[geom.Point]bool, len(fvs))
	for _, p := range fvs {
		removed[p] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, width=0.12, label=\"\", color=\"" + colorEdge + "\"];\n")
	buf.WriteString("  edge [color=\"" + colorEdge + "\"];\n")
	buf.WriteString("\n")

	for i, p := range points {
		x := (p.X - bound.Min.X()) * scale
		y := (p.Y - bound.Min.Y()) * scale
		attrs := []string{fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(x), fmtFloat(y))}
		if removed[p] {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", colorRemoved))
		} else {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", colorKept))
		}
		if opts.Labels {
			attrs = append(attrs, fmt.Sprintf("xlabel=%q", strconv.Itoa(i)), "fontsize=8")
		}
		fmt.Fprintf(&buf, "  p%d [%s];\n", i, strings.Join(attrs, ", "))
	}

	if !opts.HideEdges {
		buf.WriteString("\n")
		for i, nbrs := range geom.NewIndex(points).NeighborLists(threshold) {
			for _, j := range nbrs {
				if j < i {
					continue
				}
				if removed[points[i]] || removed[points[j]] {
					fmt.Fprintf(&buf, "  p%d -- p%d [style=dashed, color=%q];\n", i, j, colorCut)
				} else {
					fmt.Fprintf(&buf, "  p%d -- p%d;\n", i, j)
				}
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// RenderSVG lays out a DOT graph with neato and renders it to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag with one that has an origin
// viewBox and matching pixel size, so browsers scale the drawing cleanly.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion. A scale of 2.0
// produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// Render produces the drawing in the given format (dot, svg, png or pdf).
func Render(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	switch format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		return RenderSVG(ctx, dot)
	case render.FormatPNG:
		return RenderPNG(ctx, dot, scale)
	case render.FormatPDF:
		return RenderPDF(ctx, dot)
	}
	return nil, fmt.Errorf("unsupported format %q (must be one of: %s)", format, strings.Join(render.Formats, ", "))
}
