package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxPoints bounds the size of a single instance accepted from untrusted
// input. Every cycle check is quadratic in the worst case.
const MaxPoints = 20000

// ValidateThreshold checks that an edge threshold is a finite number.
//
// Zero and negative thresholds are accepted: they describe a graph without
// edges, whose feedback vertex set is empty.
func ValidateThreshold(t float64) error {
	if math.IsNaN(t) {
		return New(ErrCodeInvalidThreshold, "threshold is not a number")
	}
	if math.IsInf(t, 0) {
		return New(ErrCodeInvalidThreshold, "threshold must be finite")
	}
	return nil
}

// ValidateCoordinates checks a point list given as raw coordinate pairs.
//
// Validation rules:
//   - At most MaxPoints points
//   - Every coordinate must be finite (no NaN or ±Inf)
func ValidateCoordinates(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return New(ErrCodeInvalidInput, "coordinate length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	if len(xs) > MaxPoints {
		return New(ErrCodeInvalidInput, "too many points: %d (max %d)", len(xs), MaxPoints)
	}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsInf(xs[i], 0) || math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			return New(ErrCodeInvalidInput, "point %d has a non-finite coordinate", i)
		}
	}
	return nil
}

// ValidatePath validates a file path given on the command line or through a
// config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateFormat checks that format is one of allowed (case-sensitive).
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(allowed, ", "))
}
