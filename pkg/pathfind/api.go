package pathfind

import (
	"context"
	"math/rand"
	"time"

	"github.com/vanderheijden86/pathlab/pkg/debug"
	"github.com/vanderheijden86/pathlab/pkg/grid"

	"go.uber.org/zap"
)

// State tags an animation frame.
type State int

const (
	StateVisited State = iota + 1
	StatePath
)

func (s State) String() string {
	switch s {
	case StateVisited:
		return "visited"
	case StatePath:
		return "path"
	default:
		return "unknown"
	}
}

// NeighborFunc returns the in-bounds grid-adjacent nodes of n.
type NeighborFunc func(n *grid.Node) []*grid.Node

// AnimateFunc reveals n in the given state and suspends for roughly delay.
// It should return promptly once ctx is done. A non-nil error aborts the run.
type AnimateFunc func(ctx context.Context, n *grid.Node, state State, delay time.Duration) error

// Params are the inputs shared by every algorithm.
type Params struct {
	Grid      *grid.Grid
	Start     *grid.Node
	End       *grid.Node
	Neighbors NeighborFunc // defaults to Grid.Neighbors
	Animate   AnimateFunc  // defaults to a no-op
	Delay     time.Duration
}

// Result describes what a run did.
type Result struct {
	Algorithm Algorithm     `json:"algorithm"`
	Visited   []grid.Coord  `json:"visited"`         // order of visited frames
	Path      []grid.Coord  `json:"path"`            // start-exclusive, end-inclusive
	Settled   int           `json:"settled"`         // nodes settled, endpoints included
	Found     bool          `json:"found"`           // predecessor chain reaches start
	Cancelled bool          `json:"cancelled"`       // ctx was done before completion
	Warnings  []error       `json:"-"`               // ErrIterationBound, ErrPathBound
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// PathLength returns the number of unit steps from start to end, or -1 when
// no path was found.
func (r Result) PathLength() int {
	if !r.Found {
		return -1
	}
	return len(r.Path)
}

type options struct {
	logger *zap.Logger
	rng    *rand.Rand
}

// Option configures a run.
type Option func(*options)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRand sets the source used by DFS to shuffle neighbors.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithSeed is WithRand with a fresh source seeded by seed.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = debug.Logger()
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}
