package pathfind

import (
	"context"

	"github.com/vanderheijden86/pathlab/pkg/grid"
)

// AStar is Dijkstra keyed on f = distance + Manhattan(node, end). With an
// admissible heuristic the first extraction of p.End carries a shortest
// path.
func AStar(ctx context.Context, p Params, opts ...Option) (Result, error) {
	s, err := newSearch(ctx, AlgoAStar, p, opts)
	if err != nil {
		return Result{Algorithm: AlgoAStar}, err
	}
	end := s.p.End
	return s.run(func() error {
		return s.bestFirst(NewScoreHeap(), func(n *grid.Node) {
			n.F = n.Distance + Manhattan(n, end)
		})
	})
}
