package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/cyclecut/pkg/errors"
	"github.com/matzehuels/cyclecut/pkg/geom"
)

// ReadInstance decodes a point set from r in the given format.
//
// The text format carries no threshold, so the returned Threshold is zero.
// ReadInstance returns an INVALID_FORMAT error for malformed input and an
// INVALID_INPUT error for non-finite coordinates or too many points. It does
// not close r.
func ReadInstance(r io.Reader, format string) (*Instance, error) {
	var inst Instance
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&inst); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode points")
		}
		if err := errors.ValidateThreshold(inst.Threshold); err != nil {
			return nil, err
		}
	case FormatText:
		points, err := readText(r)
		if err != nil {
			return nil, err
		}
		inst.Points = points
	default:
		return nil, errors.ValidateFormat(format, FormatText, FormatJSON)
	}
	if inst.Points == nil {
		inst.Points = geom.PointSet{}
	}
	if err := ValidatePoints(inst.Points); err != nil {
		return nil, err
	}
	return &inst, nil
}

// ImportInstance reads the point file at path, choosing the format from its
// extension.
func ImportInstance(path string) (*Instance, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	inst, err := ReadInstance(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

// ReadSolution decodes a feedback vertex set from r in the given format.
// A JSON document may list its points under "solution" or, for files written
// as instances, under "points".
func ReadSolution(r io.Reader, format string) (*Solution, error) {
	var sol Solution
	switch format {
	case FormatJSON:
		var doc struct {
			Solution
			Points geom.PointSet `json:"points"`
		}
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode solution")
		}
		sol = doc.Solution
		if sol.Points == nil {
			sol.Points = doc.Points
		}
	case FormatText:
		points, err := readText(r)
		if err != nil {
			return nil, err
		}
		sol.Points = points
	default:
		return nil, errors.ValidateFormat(format, FormatText, FormatJSON)
	}
	if sol.Points == nil {
		sol.Points = geom.PointSet{}
	}
	if err := ValidatePoints(sol.Points); err != nil {
		return nil, err
	}
	return &sol, nil
}

// ImportSolution reads the solution file at path, choosing the format from
// its extension.
func ImportSolution(path string) (*Solution, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sol, err := ReadSolution(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sol, nil
}

func open(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func readText(r io.Reader) (geom.PointSet, error) {
	points := geom.PointSet{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(text, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t' || c == ';'
		})
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: want 2 coordinates, got %d", line, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d: bad x coordinate", line)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d: bad y coordinate", line)
		}
		points = append(points, geom.Pt(x, y))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return points, nil
}
