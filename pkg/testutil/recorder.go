package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/vanderheijden86/pathlab/pkg/grid"
	"github.com/vanderheijden86/pathlab/pkg/pathfind"
)

// Frame is one recorded animation callback.
type Frame struct {
	Coord grid.Coord
	State pathfind.State
	Delay time.Duration
}

// Recorder is a pathfind.AnimateFunc that remembers every frame. It never
// sleeps. Safe for use from the search goroutine while a test reads it.
type Recorder struct {
	mu     sync.Mutex
	frames []Frame

	// OnFrame, when set, runs after each frame is recorded. Returning an
	// error aborts the search.
	OnFrame func(ctx context.Context, f Frame, count int) error
}

// Animate records the frame.
func (r *Recorder) Animate(ctx context.Context, n *grid.Node, state pathfind.State, delay time.Duration) error {
	f := Frame{Coord: n.Coord, State: state, Delay: delay}
	r.mu.Lock()
	r.frames = append(r.frames, f)
	count := len(r.frames)
	hook := r.OnFrame
	r.mu.Unlock()
	if hook != nil {
		return hook(ctx, f, count)
	}
	return nil
}

// Frames returns a copy of every recorded frame.
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}

// Coords returns the coordinates of frames in the given state, in order.
func (r *Recorder) Coords(state pathfind.State) []grid.Coord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []grid.Coord
	for _, f := range r.frames {
		if f.State == state {
			out = append(out, f.Coord)
		}
	}
	return out
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// CancelAfter returns a Recorder that calls cancel once n frames have been
// recorded.
func CancelAfter(n int, cancel context.CancelFunc) *Recorder {
	return &Recorder{
		OnFrame: func(_ context.Context, _ Frame, count int) error {
			if count == n {
				cancel()
			}
			return nil
		},
	}
}
