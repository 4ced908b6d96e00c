package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	cerrors "github.com/matzehuels/cyclecut/pkg/errors"
	cyio "github.com/matzehuels/cyclecut/pkg/io"
)

// stdinPath reads points from standard input.
const stdinPath = "-"

// loadInstance reads a point file (or stdin for "-") and checks its points.
func loadInstance(path string) (*cyio.Instance, error) {
	var (
		inst *cyio.Instance
		err  error
	)
	if path == stdinPath {
		inst, err = cyio.ReadInstance(os.Stdin, cyio.FormatText)
	} else {
		if err := cerrors.ValidatePath(path); err != nil {
			return nil, err
		}
		inst, err = cyio.ImportInstance(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := cyio.ValidatePoints(inst.Points); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return inst, nil
}

// requireThreshold is the error for an instance without a threshold.
func requireThreshold() error {
	return cerrors.New(cerrors.ErrCodeInvalidThreshold, "no threshold: pass --threshold or set it in the input file")
}

// basePath strips the extension from path; stdin maps to "points".
func basePath(path string) string {
	if path == stdinPath || path == "" {
		return "points"
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// artifactWriteParams groups the inputs of writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // input file, used to derive output names
	output    string // explicit output path or base path
	cacheHit  bool
}

// artifactPaths decides where each format goes. A single format with an
// explicit output uses it as is; otherwise the output (or the input) is a
// base path and each format gets its own extension.
func artifactPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(input)
	if output != "" {
		base = basePath(output)
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// writeArtifacts writes rendered outputs to disk and lists them.
func writeArtifacts(p artifactWriteParams) error {
	paths := artifactPaths(p.formats, p.input, p.output)
	formats := slices.Clone(p.formats)
	slices.Sort(formats)

	for _, format := range formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("missing %s output", format)
		}
		if err := os.WriteFile(paths[format], data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}

	status := styleComputed.Render(iconFresh)
	if p.cacheHit {
		status = styleCached.Render(iconCached)
	}
	printSuccess("Rendered %s %s", strings.Join(formats, ", "), status)
	for _, format := range formats {
		printFile(paths[format])
	}
	return nil
}
