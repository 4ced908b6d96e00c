package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/cyclecut/pkg/fvs"
	"github.com/matzehuels/cyclecut/pkg/geom"
	cyio "github.com/matzehuels/cyclecut/pkg/io"
	"github.com/matzehuels/cyclecut/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats. The DOT
// source is built once and shared by every drawing format.
func Render(ctx context.Context, points []geom.Point, res *fvs.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	for _, format := range opts.Formats {
		if format == FormatJSON {
			var buf bytes.Buffer
			if err := cyio.WriteSolution(cyio.NewSolution(res, opts.Threshold), &buf, cyio.FormatJSON); err != nil {
				return nil, fmt.Errorf("render %s: %w", format, err)
			}
			artifacts[format] = buf.Bytes()
			continue
		}

		if dot == "" {
			dot = nodelink.ToDOT(points, res.Solution, opts.Threshold, opts.NodelinkOptions())
		}
		data, err := nodelink.Render(ctx, dot, format, opts.Scale)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
