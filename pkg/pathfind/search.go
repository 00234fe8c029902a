package pathfind

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/vanderheijden86/pathlab/pkg/grid"
	"github.com/vanderheijden86/pathlab/pkg/metrics"

	"go.uber.org/zap"
)

// search carries the state shared by one run of any algorithm.
type search struct {
	ctx   context.Context
	p     Params
	algo  Algorithm
	opts  options
	log   *zap.Logger
	limit int
	res   Result

	warned map[error]bool
}

func newSearch(ctx context.Context, algo Algorithm, p Params, opts []Option) (*search, error) {
	if err := p.validate(algo); err != nil {
		return nil, err
	}
	if p.Neighbors == nil {
		p.Neighbors = p.Grid.Neighbors
	}
	if p.Animate == nil {
		p.Animate = func(context.Context, *grid.Node, State, time.Duration) error { return nil }
	}
	o := buildOptions(opts)
	return &search{
		ctx:    ctx,
		p:      p,
		algo:   algo,
		opts:   o,
		log:    o.logger.With(zap.String("algorithm", algo.Label())),
		limit:  p.Grid.Rows() * p.Grid.Cols(),
		res:    Result{Algorithm: algo},
		warned: make(map[error]bool, 2),
	}, nil
}

func (p Params) validate(algo Algorithm) error {
	if p.Grid == nil || p.Start == nil || p.End == nil {
		return fmt.Errorf("%s: %w", algo.Label(), ErrMissingParameter)
	}
	return nil
}

// run executes the search loop, then reconstructs and animates the path
// unless the loop failed or was cancelled.
func (s *search) run(loop func() error) (Result, error) {
	defer metrics.Timer(metrics.SearchTiming(string(s.algo)))()
	began := time.Now()
	s.log.Debug("search started",
		zap.Stringer("start", s.p.Start.Coord),
		zap.Stringer("end", s.p.End.Coord),
		zap.Duration("delay", s.p.Delay))

	err := loop()
	if err == nil && !s.res.Cancelled {
		err = s.tracePath()
	}
	s.res.Elapsed = time.Since(began)

	switch {
	case err != nil:
		s.log.Debug("search failed", zap.Error(err))
	case s.res.Cancelled:
		metrics.CancelledRuns.Inc()
		s.log.Debug("search cancelled", zap.Int("settled", s.res.Settled))
	default:
		s.log.Debug("search finished",
			zap.Bool("found", s.res.Found),
			zap.Int("settled", s.res.Settled),
			zap.Int("path", len(s.res.Path)),
			zap.Duration("elapsed", s.res.Elapsed))
	}
	return s.res, err
}

// cancelled polls the context and records cancellation on the result.
func (s *search) cancelled() bool {
	if s.ctx.Err() != nil {
		s.res.Cancelled = true
		return true
	}
	return false
}

// exhausted reports whether another node may be settled, warning once when
// the iteration bound is hit.
func (s *search) exhausted() bool {
	if s.res.Settled < s.limit {
		return false
	}
	s.warn(ErrIterationBound)
	return true
}

func (s *search) warn(err error) {
	if s.warned[err] {
		return
	}
	s.warned[err] = true
	s.res.Warnings = append(s.res.Warnings, err)
	metrics.BoundsExceeded.Inc()
	s.log.Warn(err.Error(), zap.Int("limit", s.limit))
}

func (s *search) endpoint(n *grid.Node) bool {
	return n == s.p.Start || n == s.p.End || n.Start || n.End
}

// settle counts n and reveals it as visited unless it is an endpoint.
func (s *search) settle(n *grid.Node) error {
	s.res.Settled++
	if s.endpoint(n) {
		return nil
	}
	s.res.Visited = append(s.res.Visited, n.Coord)
	metrics.VisitedFrames.Inc()
	if err := s.p.Animate(s.ctx, n, StateVisited, s.p.Delay); err != nil {
		return fmt.Errorf("%s: animate %s: %w", s.algo.Label(), n.Coord, err)
	}
	return nil
}

// tracePath rebuilds the path from the predecessor chain and reveals every
// step except the end node.
func (s *search) tracePath() error {
	path, found, err := reconstructPath(s.p.Start, s.p.End, s.limit)
	if err != nil {
		s.warn(err)
	}
	s.res.Found = found
	s.res.Path = coords(path)

	for _, n := range path {
		if s.cancelled() {
			return nil
		}
		if n == s.p.End || n.End {
			continue
		}
		metrics.PathFrames.Inc()
		if err := s.p.Animate(s.ctx, n, StatePath, s.p.Delay); err != nil {
			return fmt.Errorf("%s: animate %s: %w", s.algo.Label(), n.Coord, err)
		}
	}
	return nil
}

// reconstructPath walks Prev links back from end. It returns the nodes after
// start up to and including end, and whether the chain reached start. A
// chain that ends before start yields no path. A chain longer than limit is
// truncated and reported with ErrPathBound.
func reconstructPath(start, end *grid.Node, limit int) ([]*grid.Node, bool, error) {
	var path []*grid.Node
	n := end
	for steps := 0; n != nil && n != start; steps++ {
		if steps >= limit {
			slices.Reverse(path)
			return path, false, ErrPathBound
		}
		path = append(path, n)
		n = n.Prev
	}
	if n != start {
		return nil, false, nil
	}
	slices.Reverse(path)
	return path, true, nil
}

func coords(nodes []*grid.Node) []grid.Coord {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]grid.Coord, len(nodes))
	for i, n := range nodes {
		out[i] = n.Coord
	}
	return out
}
