package pathfind

import (
	"context"

	"github.com/vanderheijden86/pathlab/pkg/grid"
)

// DFS runs a recursive depth-first walk from p.Start. Each node is revealed
// before its children, and the neighbor order is shuffled before every
// expansion so that repeated runs draw different shapes. Use WithRand or
// WithSeed to make the order reproducible.
//
// The walk stops as soon as p.End is reached; the path is the recursion
// chain that led there, not necessarily a shortest one.
func DFS(ctx context.Context, p Params, opts ...Option) (Result, error) {
	s, err := newSearch(ctx, AlgoDFS, p, opts)
	if err != nil {
		return Result{Algorithm: AlgoDFS}, err
	}
	return s.run(func() error {
		s.p.Start.Distance = 0
		_, err := s.dfs(s.p.Start)
		return err
	})
}

// dfs reports whether the end node was reached below n.
func (s *search) dfs(n *grid.Node) (bool, error) {
	if s.cancelled() {
		return false, nil
	}
	if n == nil || n.Wall || n.Visited {
		return false, nil
	}
	if s.exhausted() {
		return false, nil
	}

	n.Visited = true
	if err := s.settle(n); err != nil {
		return false, err
	}
	if s.cancelled() {
		return false, nil
	}
	if n == s.p.End {
		return true, nil
	}

	neighbors := append([]*grid.Node(nil), s.p.Neighbors(n)...)
	s.opts.rng.Shuffle(len(neighbors), func(i, j int) {
		neighbors[i], neighbors[j] = neighbors[j], neighbors[i]
	})

	for _, nb := range neighbors {
		if s.cancelled() {
			return false, nil
		}
		if nb == nil || nb.Visited || nb.Wall {
			continue
		}
		nb.Prev = n
		nb.Distance = n.Distance + 1
		found, err := s.dfs(nb)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}
