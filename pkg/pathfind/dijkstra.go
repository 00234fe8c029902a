package pathfind

import (
	"context"

	"github.com/vanderheijden86/pathlab/pkg/grid"
)

// Dijkstra settles nodes in order of accumulated distance until p.End is
// extracted or the heap empties. Relaxed neighbors are re-inserted rather
// than decreased in place; stale entries are skipped when extracted.
func Dijkstra(ctx context.Context, p Params, opts ...Option) (Result, error) {
	s, err := newSearch(ctx, AlgoDijkstra, p, opts)
	if err != nil {
		return Result{Algorithm: AlgoDijkstra}, err
	}
	return s.run(func() error {
		return s.bestFirst(NewDistanceHeap(), func(*grid.Node) {})
	})
}

// bestFirst is the shared Dijkstra/A* loop. score updates any derived key
// after a node's distance changes and before it is inserted.
func (s *search) bestFirst(open *Heap[*grid.Node], score func(*grid.Node)) error {
	start, end := s.p.Start, s.p.End

	start.Distance = 0
	score(start)
	open.Insert(start)

	for !open.IsEmpty() {
		if s.cancelled() {
			return nil
		}
		current, _ := open.ExtractMin()
		if current == nil || current.Wall || current.Visited {
			continue
		}
		if s.exhausted() {
			break
		}

		current.Visited = true
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
			if nb == nil || nb.Wall || nb.Visited {
				continue
			}
			tentative := current.Distance + 1
			if tentative < nb.Distance {
				nb.Distance = tentative
				nb.Prev = current
				score(nb)
				open.Insert(nb)
			}
		}
	}
	return nil
}
