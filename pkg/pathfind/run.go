package pathfind

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Algorithm identifies a search strategy.
type Algorithm string

const (
	AlgoBFS      Algorithm = "bfs"
	AlgoDFS      Algorithm = "dfs"
	AlgoDijkstra Algorithm = "dijkstra"
	AlgoAStar    Algorithm = "astar"
)

// Algorithms lists every strategy in menu order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgoBFS, AlgoDFS, AlgoDijkstra, AlgoAStar}
}

// Label is the display name of a.
func (a Algorithm) Label() string {
	switch a {
	case AlgoBFS:
		return "BFS"
	case AlgoDFS:
		return "DFS"
	case AlgoDijkstra:
		return "Dijkstra"
	case AlgoAStar:
		return "A*"
	default:
		return strings.ToUpper(string(a))
	}
}

// Next returns the algorithm after a in menu order, wrapping around.
func (a Algorithm) Next() Algorithm {
	all := Algorithms()
	for i, x := range all {
		if x == a {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Valid reports whether a names a known strategy.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgoBFS, AlgoDFS, AlgoDijkstra, AlgoAStar:
		return true
	}
	return false
}

// Guarantees reports whether a always yields a shortest path.
func (a Algorithm) Guarantees() bool {
	return a != AlgoDFS
}

// ParseAlgorithm resolves an identifier, accepting a few common spellings.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bfs", "breadth-first":
		return AlgoBFS, nil
	case "dfs", "depth-first":
		return AlgoDFS, nil
	case "dijkstra":
		return AlgoDijkstra, nil
	case "astar", "a*", "a-star":
		return AlgoAStar, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Run resets the grid's search state and dispatches to the algorithm.
func Run(ctx context.Context, algo Algorithm, p Params, opts ...Option) (Result, error) {
	var fn func(context.Context, Params, ...Option) (Result, error)
	switch algo {
	case AlgoBFS:
		fn = BFS
	case AlgoDFS:
		fn = DFS
	case AlgoDijkstra:
		fn = Dijkstra
	case AlgoAStar:
		fn = AStar
	default:
		return Result{Algorithm: algo}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
	if err := p.validate(algo); err != nil {
		return Result{Algorithm: algo}, err
	}
	p.Grid.ResetSearch()
	return fn(ctx, p, opts...)
}

// Pace suspends for d or until ctx is done, whichever comes first. Animate
// callbacks use it for their timed reveal.
func Pace(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
