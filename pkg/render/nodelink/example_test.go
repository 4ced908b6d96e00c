package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cyclecut/pkg/geom"
	"github.com/matzehuels/cyclecut/pkg/render/nodelink"
)

func ExampleToDOT() {
	// A unit square is a 4-cycle at threshold 1.1; removing one corner
	// leaves a path.
	square := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}
	dot := nodelink.ToDOT(square, square[:1], 1.1, nodelink.Options{})

	fmt.Println(strings.Count(dot, " -- "), strings.Count(dot, "dashed"))
	// Output: 4 2
}
