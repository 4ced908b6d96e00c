// Package render converts rendered drawings between output formats.
//
// Drawings are produced as SVG by the [nodelink] subpackage. [ToPDF] and
// [ToPNG] convert that SVG with the external rsvg-convert tool (from
// librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [nodelink]: github.com/matzehuels/cyclecut/pkg/render/nodelink
package render
