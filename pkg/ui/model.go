// Package ui is the interactive grid explorer: a Bubble Tea model that lets
// the user draw walls, place endpoints and watch a search animate.
package ui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/vanderheijden86/pathlab/pkg/analysis"
	"github.com/vanderheijden86/pathlab/pkg/config"
	"github.com/vanderheijden86/pathlab/pkg/debug"
	"github.com/vanderheijden86/pathlab/pkg/grid"
	"github.com/vanderheijden86/pathlab/pkg/pathfind"
	"github.com/vanderheijden86/pathlab/pkg/watcher"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// speedStep is how far +/- move the speed setting.
const speedStep = 10

// Options configure NewModel.
type Options struct {
	Config     config.Config
	ConfigPath string           // reloaded on FileChangedMsg
	Watcher    *watcher.Watcher // optional; watches ConfigPath
	Grid       *grid.Grid       // optional; built from Config.Grid when nil
	Seed       int64            // maze and DFS seed; 0 = time-seeded
	Renderer   *lipgloss.Renderer
}

// Model is the grid explorer.
type Model struct {
	cfg        config.Config
	configPath string
	watcher    *watcher.Watcher

	theme    Theme
	keys     KeyMap
	help     help.Model
	helpView viewport.Model
	showHelp bool

	grid   *grid.Grid
	marks  []cellKind // visited/path overlay, indexed like the grid
	cursor grid.Coord

	algo   pathfind.Algorithm
	speed  int
	delay  *atomic.Int64
	runner *pathfind.Runner
	sess   *session
	nextID int
	last   *pathfind.Result

	visited int
	traced  int

	cache  *analysis.Cache
	report analysis.Report
	rng    *rand.Rand

	width  int
	height int

	statusMsg     string
	statusIsError bool

	writeClipboard func(string) error
}

// NewModel builds a model from opts.
func NewModel(opts Options) Model {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		debug.Log("ui: invalid config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	g := opts.Grid
	if g == nil {
		g = grid.MustNew(cfg.Grid.Rows, cfg.Grid.Cols)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Maze.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	delay := new(atomic.Int64)
	delay.Store(int64(cfg.Delay()))

	m := Model{
		cfg:            cfg,
		configPath:     opts.ConfigPath,
		watcher:        opts.Watcher,
		theme:          DefaultTheme(r),
		keys:           DefaultKeyMap(),
		help:           help.New(),
		helpView:       viewport.New(80, 20),
		grid:           g,
		marks:          make([]cellKind, g.Cells()),
		cursor:         g.Start().Coord,
		algo:           cfg.AlgorithmID(),
		speed:          cfg.Speed,
		delay:          delay,
		runner:         pathfind.NewRunner(pathfind.WithLogger(debug.Logger()), pathfind.WithSeed(seed)),
		cache:          analysis.NewCache(analysis.DefaultCacheTTL),
		rng:            rand.New(rand.NewSource(seed)),
		writeClipboard: clipboard.WriteAll,
	}
	m.refreshReport()
	return m
}

// Init starts the config watch, if any.
func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return WatchFileCmd(m.watcher)
	}
	return nil
}

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.helpView.Width = msg.Width
		m.helpView.Height = max(1, msg.Height-2)
		if m.showHelp {
			m.helpView.SetContent(renderHelp(m.keys, m.width))
		}
		return m, nil

	case frameMsg:
		if m.sess == nil || msg.session != m.sess.id {
			return m, nil
		}
		m.applyFrame(msg)
		return m, m.sess.wait()

	case runDoneMsg:
		if m.sess == nil || msg.session != m.sess.id {
			return m, nil
		}
		m.finishRun(msg.outcome)
		return m, nil

	case FileChangedMsg:
		m.reloadConfig()
		if m.watcher != nil {
			return m, WatchFileCmd(m.watcher)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Stop), msg.String() == "q":
			m.showHelp = false
			return m, nil
		case msg.String() == "ctrl+c":
			return m.quit()
		}
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}

	if m.running() {
		for _, b := range m.keys.editing() {
			if key.Matches(msg, b) {
				m.setStatus("Grid is locked while a search runs (esc to stop)", false)
				return m, nil
			}
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.helpView.SetContent(renderHelp(m.keys, m.width))
		m.helpView.GotoTop()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)

	case key.Matches(msg, m.keys.Run):
		return m, m.startRun()
	case key.Matches(msg, m.keys.Stop):
		if m.running() && m.runner.Stop() {
			m.setStatus("Stopping…", false)
		}

	case key.Matches(msg, m.keys.ToggleWall):
		if m.grid.ToggleWall(m.cursor) {
			m.edited()
		}
	case key.Matches(msg, m.keys.PlaceStart):
		if m.grid.SetStart(m.cursor) {
			m.edited()
		} else {
			m.setStatus("Start cannot share a cell with the end", true)
		}
	case key.Matches(msg, m.keys.PlaceEnd):
		if m.grid.SetEnd(m.cursor) {
			m.edited()
		} else {
			m.setStatus("End cannot share a cell with the start", true)
		}
	case key.Matches(msg, m.keys.Maze):
		m.grid.GenerateMaze(m.rng, m.cfg.Maze.Density)
		m.edited()
		m.setStatus(fmt.Sprintf("Maze generated (%d walls)", m.grid.WallCount()), false)
	case key.Matches(msg, m.keys.Clear):
		m.grid.ClearWalls()
		m.edited()
		m.setStatus("Grid cleared", false)
	case key.Matches(msg, m.keys.ResetPath):
		m.resetMarks()
		m.setStatus("Path cleared", false)
	case key.Matches(msg, m.keys.GridSize):
		m.cycleGridSize()

	case key.Matches(msg, m.keys.NextAlgo):
		m.selectAlgorithm(m.algo.Next())
	case key.Matches(msg, m.keys.Algo1):
		m.selectAlgorithm(pathfind.AlgoBFS)
	case key.Matches(msg, m.keys.Algo2):
		m.selectAlgorithm(pathfind.AlgoDFS)
	case key.Matches(msg, m.keys.Algo3):
		m.selectAlgorithm(pathfind.AlgoDijkstra)
	case key.Matches(msg, m.keys.Algo4):
		m.selectAlgorithm(pathfind.AlgoAStar)

	case key.Matches(msg, m.keys.Faster):
		m.setSpeed(m.speed + speedStep)
	case key.Matches(msg, m.keys.Slower):
		m.setSpeed(m.speed - speedStep)

	case key.Matches(msg, m.keys.CopyPath):
		m.copyPath()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.runner.Stop()
	return m, tea.Quit
}

func (m *Model) running() bool {
	return m.sess != nil
}

// startRun launches the selected algorithm on the runner's goroutine and
// returns the command that pumps its frames.
func (m *Model) startRun() tea.Cmd {
	if m.running() {
		return nil
	}
	m.resetMarks()

	m.nextID++
	s := newSession(m.nextID, m.delay)
	done, err := m.runner.Start(context.Background(), m.algo, pathfind.Params{
		Grid:    m.grid,
		Start:   m.grid.Start(),
		End:     m.grid.End(),
		Animate: s.animate,
		Delay:   time.Duration(m.delay.Load()),
	})
	if err != nil {
		m.setStatus(fmt.Sprintf("Cannot start %s: %v", m.algo.Label(), err), true)
		return nil
	}
	s.done = done
	m.sess = s
	m.setStatus(fmt.Sprintf("%s running…", m.algo.Label()), false)
	return s.wait()
}

func (m *Model) applyFrame(f frameMsg) {
	if !m.grid.InBounds(f.coord) {
		return
	}
	idx := m.grid.Index(f.coord)
	switch f.state {
	case pathfind.StateVisited:
		m.marks[idx] = cellVisited
		m.visited++
	case pathfind.StatePath:
		m.marks[idx] = cellPath
		m.traced++
	}
}

func (m *Model) finishRun(out pathfind.Outcome) {
	m.sess = nil
	if out.Err != nil {
		m.setStatus(fmt.Sprintf("%s failed: %v", m.algo.Label(), out.Err), true)
		return
	}
	res := out.Result
	m.last = &res

	label := res.Algorithm.Label()
	var text string
	switch {
	case res.Cancelled:
		text = fmt.Sprintf("%s stopped after %d visited", label, len(res.Visited))
	case res.Found:
		text = fmt.Sprintf("%s found a path of %d in %s (%d visited)",
			label, res.PathLength(), res.Elapsed.Round(time.Millisecond), len(res.Visited))
	default:
		text = fmt.Sprintf("%s: no path (%d visited)", label, len(res.Visited))
	}
	for _, w := range res.Warnings {
		switch {
		case errors.Is(w, pathfind.ErrIterationBound):
			text += "; iteration bound hit"
		case errors.Is(w, pathfind.ErrPathBound):
			text += "; path truncated"
		}
	}
	m.setStatus(text, len(res.Warnings) > 0)
}

// edited records a grid change: stale overlays go and the analysis is redone.
func (m *Model) edited() {
	m.resetMarks()
	m.refreshReport()
}

func (m *Model) resetMarks() {
	clear(m.marks)
	m.visited, m.traced = 0, 0
	m.last = nil
	m.grid.ResetSearch()
}

func (m *Model) refreshReport() {
	m.report = m.cache.AnalyzeCached(m.grid)
}

func (m *Model) moveCursor(dr, dc int) {
	m.cursor.Row = clamp(m.cursor.Row+dr, 0, m.grid.Rows()-1)
	m.cursor.Col = clamp(m.cursor.Col+dc, 0, m.grid.Cols()-1)
}

func (m *Model) cycleGridSize() {
	p := config.NextPreset(m.grid.Rows(), m.grid.Cols())
	g, err := m.grid.Resize(p.Rows, p.Cols)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.grid = g
	m.marks = make([]cellKind, g.Cells())
	m.moveCursor(0, 0)
	m.edited()
	m.setStatus("Grid size "+p.String(), false)
}

func (m *Model) selectAlgorithm(a pathfind.Algorithm) {
	m.algo = a
	m.setStatus("Algorithm: "+a.Label(), false)
}

func (m *Model) setSpeed(speed int) {
	m.speed = config.ClampSpeed(speed)
	m.delay.Store(int64(config.SpeedDelay(m.speed)))
	m.setStatus(fmt.Sprintf("Speed %d (%s per step)", m.speed, config.SpeedDelay(m.speed)), false)
}

func (m *Model) copyPath() {
	if m.last == nil || !m.last.Found {
		m.setStatus("No path to copy", true)
		return
	}
	if err := m.writeClipboard(formatPath(m.grid.Start().Coord, m.last.Path)); err != nil {
		m.setStatus("Clipboard error: "+err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied path (%d steps)", m.last.PathLength()), false)
}

// reloadConfig applies the settings that can change on a live session. The
// grid size applies on the next g press; the algorithm only while idle.
func (m *Model) reloadConfig() {
	if m.configPath == "" {
		return
	}
	cfg, err := config.LoadFrom(m.configPath)
	if err != nil {
		m.setStatus("Config reload failed: "+err.Error(), true)
		return
	}
	m.cfg = cfg
	m.speed = cfg.Speed
	m.delay.Store(int64(cfg.Delay()))
	if !m.running() {
		m.algo = cfg.AlgorithmID()
	}
	debug.Log("ui: config reloaded from %s", m.configPath)
	m.setStatus("Config reloaded", false)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.statusMsg = text
	m.statusIsError = isErr
}

// Grid returns the grid being edited.
func (m Model) Grid() *grid.Grid { return m.grid }

// Algorithm returns the selected algorithm.
func (m Model) Algorithm() pathfind.Algorithm { return m.algo }

// Speed returns the current speed setting.
func (m Model) Speed() int { return m.speed }

// Running reports whether a search is in progress.
func (m Model) Running() bool { return m.sess != nil }

// LastResult returns the outcome of the most recent completed run, if any.
func (m Model) LastResult() (pathfind.Result, bool) {
	if m.last == nil {
		return pathfind.Result{}, false
	}
	return *m.last, true
}

// Status returns the status bar text and whether it reports an error.
func (m Model) Status() (string, bool) { return m.statusMsg, m.statusIsError }
