package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/cyclecut/pkg/errors"
	"github.com/matzehuels/cyclecut/pkg/geom"
)

// WriteInstance encodes inst to w. The text format drops the threshold.
func WriteInstance(inst *Instance, w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, inst)
	case FormatText:
		return writeText(w, inst.Points)
	}
	return errors.ValidateFormat(format, FormatText, FormatJSON)
}

// ExportInstance writes inst to a file at path, choosing the format from the
// extension.
func ExportInstance(inst *Instance, path string) error {
	return export(path, func(w io.Writer) error {
		return WriteInstance(inst, w, FormatFromPath(path))
	})
}

// WriteSolution encodes sol to w. The text format writes the solution points
// only; JSON also carries indices, threshold and statistics.
func WriteSolution(sol *Solution, w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, sol)
	case FormatText:
		return writeText(w, sol.Points)
	}
	return errors.ValidateFormat(format, FormatText, FormatJSON)
}

// ExportSolution writes sol to a file at path, choosing the format from the
// extension.
func ExportSolution(sol *Solution, path string) error {
	return export(path, func(w io.Writer) error {
		return WriteSolution(sol, w, FormatFromPath(path))
	})
}

func export(path string, write func(io.Writer) error) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func writeText(w io.Writer, points []geom.Point) error {
	var buf []byte
	for _, p := range points {
		buf = strconv.AppendFloat(buf, p.X, 'g', -1, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, p.Y, 'g', -1, 64)
		buf = append(buf, '\n')
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
