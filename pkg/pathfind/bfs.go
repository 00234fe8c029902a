package pathfind

import (
	"context"

	"github.com/vanderheijden86/pathlab/pkg/grid"
)

// BFS runs breadth-first search from p.Start until p.End is dequeued or the
// frontier empties. Nodes are marked visited when discovered, so each one is
// enqueued at most once and revealed in FIFO order.
//
// Search state is expected to be reset (see grid.Grid.ResetSearch); Run does
// that for you.
func BFS(ctx context.Context, p Params, opts ...Option) (Result, error) {
	s, err := newSearch(ctx, AlgoBFS, p, opts)
	if err != nil {
		return Result{Algorithm: AlgoBFS}, err
	}
	return s.run(s.bfs)
}

func (s *search) bfs() error {
	start, end := s.p.Start, s.p.End

	start.Distance = 0
	start.Visited = true
	queue := []*grid.Node{start}

	for len(queue) > 0 {
		if s.cancelled() {
			return nil
		}
		current := queue[0]
		queue[0] = nil
		queue = queue[1:]
		if current == nil || current.Wall {
			continue
		}
		if s.exhausted() {
			break
		}

		if err := s.settle(current); err != nil {
			return err
		}
		if s.cancelled() {
			return nil
		}
		if current == end {
			break
		}

		for _, nb := range s.p.Neighbors(current) {
			if nb == nil || nb.Visited || nb.Wall {
				continue
			}
			nb.Visited = true
			nb.Distance = current.Distance + 1
			nb.Prev = current
			queue = append(queue, nb)
		}
	}
	return nil
}
