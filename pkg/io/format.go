package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/cyclecut/pkg/errors"
	"github.com/matzehuels/cyclecut/pkg/fvs"
	"github.com/matzehuels/cyclecut/pkg/geom"
)

// Supported file formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Instance is a point set with an optional edge threshold. A zero Threshold
// means the file did not carry one.
type Instance struct {
	Threshold float64       `json:"threshold,omitempty"`
	Points    geom.PointSet `json:"points"`
}

// Solution is a feedback vertex set as written to disk.
type Solution struct {
	Threshold float64       `json:"threshold,omitempty"`
	Points    geom.PointSet `json:"solution"`
	Indices   []int         `json:"indices,omitempty"`
	Stats     *fvs.Stats    `json:"stats,omitempty"`
}

// NewSolution converts a solver result for writing.
func NewSolution(res *fvs.Result, threshold float64) *Solution {
	stats := res.Stats
	return &Solution{
		Threshold: threshold,
		Points:    res.Solution,
		Indices:   res.Indices,
		Stats:     &stats,
	}
}

// FormatFromPath returns FormatJSON for ".json" files and FormatText
// otherwise.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatText
}

// ValidatePoints checks coordinate finiteness and the point count limit.
func ValidatePoints(points []geom.Point) error {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return errors.ValidateCoordinates(xs, ys)
}
