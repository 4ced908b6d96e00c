// Package io reads and writes point sets and feedback vertex sets.
//
// # Formats
//
// Two formats are supported. The text format holds one point per line, with
// the two coordinates separated by whitespace or a comma. Blank lines and
// everything after a '#' are ignored:
//
//	# station coordinates
//	12 40
//	13.5, 41
//
// The JSON format is an object with an optional threshold and a points array:
//
//	{
//	  "threshold": 55,
//	  "points": [{"x": 12, "y": 40}, {"x": 13.5, "y": 41}]
//	}
//
// Solutions use the same two formats. A JSON solution carries the solution
// points under "solution", the input positions under "indices" and, when the
// solution came from the solver, its statistics under "stats". A text
// solution is simply the list of removed points.
//
// # Import
//
// [ImportInstance] and [ImportSolution] pick the format from the file
// extension (".json" is JSON, anything else is text). [ReadInstance] and
// [ReadSolution] take an explicit format and any io.Reader.
//
// Every reader validates its input: coordinates must be finite and an
// instance may hold at most [errors.MaxPoints] points. Failures are
// *errors.Error values with code INVALID_INPUT or INVALID_FORMAT.
//
// # Export
//
// [WriteInstance] and [WriteSolution] write to an io.Writer; [ExportInstance]
// and [ExportSolution] create a file and choose the format from its
// extension. JSON output is indented and round-trips through the readers.
//
// [errors.MaxPoints]: github.com/matzehuels/cyclecut/pkg/errors.MaxPoints
package io
