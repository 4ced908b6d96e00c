// Package nodelink draws a point set and its feedback vertex set as a
// node-link diagram.
//
// # Overview
//
// Every point becomes a small circle pinned at its coordinates, and every
// pair of points closer than the threshold is joined by a line. Points in
// the feedback vertex set are filled red and the edges they touch are
// dashed, so what is left in black is the remaining forest.
//
// # Usage
//
//	dot := nodelink.ToDOT(points, fvs, threshold, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # Layout
//
// The DOT source asks for the neato engine with pinned node positions
// (pos="x,y!"), so Graphviz draws the points where they are instead of
// computing its own layout. Coordinates are scaled so that the wider side
// of the bounding box spans Options.Width inches.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
