package pathfind

import (
	"context"
	"fmt"
	"sync"
)

// RunState is the lifecycle of a Runner.
type RunState int

const (
	Idle RunState = iota
	Running
	Stopping
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Outcome is delivered once per run on the channel returned by Start.
type Outcome struct {
	Result Result
	Err    error
}

// Runner runs at most one search at a time on its own goroutine.
type Runner struct {
	opts []Option

	mu     sync.Mutex
	state  RunState
	cancel context.CancelFunc
}

// NewRunner returns an idle runner. opts are applied to every run.
func NewRunner(opts ...Option) *Runner {
	return &Runner{opts: opts}
}

// Start validates the request and launches the search. Validation errors
// (unknown algorithm, missing parameters) are returned synchronously and no
// run is started. The returned channel receives exactly one Outcome after
// the search goroutine has unwound, and is then closed.
func (r *Runner) Start(parent context.Context, algo Algorithm, p Params) (<-chan Outcome, error) {
	if !algo.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
	if err := p.validate(algo); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Idle {
		return nil, ErrBusy
	}

	ctx, cancel := context.WithCancel(parent)
	r.state = Running
	r.cancel = cancel

	done := make(chan Outcome, 1)
	go func() {
		res, err := Run(ctx, algo, p, r.opts...)
		cancel()

		r.mu.Lock()
		r.state = Idle
		r.cancel = nil
		r.mu.Unlock()

		done <- Outcome{Result: res, Err: err}
		close(done)
	}()
	return done, nil
}

// Stop asks the active run to cancel. It reports whether a run was active.
// The run is not finished until its Outcome arrives.
func (r *Runner) Stop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Running {
		return false
	}
	r.state = Stopping
	r.cancel()
	return true
}

// State returns the current lifecycle state.
func (r *Runner) State() RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Busy reports whether a run is active or unwinding.
func (r *Runner) Busy() bool {
	return r.State() != Idle
}
