package pathfind

import (
	"math"

	"github.com/vanderheijden86/pathlab/pkg/grid"
)

// Manhattan returns |Δrow| + |Δcol| between a and b, or +Inf when either is
// nil. It is admissible and consistent on 4-directional unit-cost grids.
func Manhattan(a, b *grid.Node) float64 {
	if a == nil || b == nil {
		return math.Inf(1)
	}
	return float64(abs(a.Row-b.Row) + abs(a.Col-b.Col))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
