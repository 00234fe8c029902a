package ui

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vanderheijden86/pathlab/pkg/grid"
	"github.com/vanderheijden86/pathlab/pkg/pathfind"
	"github.com/vanderheijden86/pathlab/pkg/watcher"

	tea "github.com/charmbracelet/bubbletea"
)

// FileChangedMsg is sent when the config file changes on disk.
type FileChangedMsg struct{}

// frameMsg carries one animation frame from a running search.
type frameMsg struct {
	session int
	coord   grid.Coord
	state   pathfind.State
}

// runDoneMsg is sent once a search goroutine has unwound.
type runDoneMsg struct {
	session int
	outcome pathfind.Outcome
}

// WatchFileCmd blocks until the watched file changes.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

type frame struct {
	coord grid.Coord
	state pathfind.State
}

// session connects one search run to the UI. The search goroutine hands each
// frame over an unbuffered channel, so it never runs ahead of what the UI has
// drawn, and every frame is delivered before the outcome.
type session struct {
	id     int
	frames chan frame
	done   <-chan pathfind.Outcome
	delay  *atomic.Int64 // nanoseconds; shared with the model so speed changes apply mid-run
}

func newSession(id int, delay *atomic.Int64) *session {
	return &session{
		id:     id,
		frames: make(chan frame),
		delay:  delay,
	}
}

// animate is the run's pathfind.AnimateFunc. The delay argument is ignored in
// favor of the live speed setting.
func (s *session) animate(ctx context.Context, n *grid.Node, state pathfind.State, _ time.Duration) error {
	select {
	case s.frames <- frame{coord: n.Coord, state: state}:
	case <-ctx.Done():
		return nil
	}
	pathfind.Pace(ctx, time.Duration(s.delay.Load()))
	return nil
}

// wait returns a command that delivers the next frame or the final outcome.
func (s *session) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-s.frames:
			return frameMsg{session: s.id, coord: f.coord, state: f.state}
		case out := <-s.done:
			return runDoneMsg{session: s.id, outcome: out}
		}
	}
}
