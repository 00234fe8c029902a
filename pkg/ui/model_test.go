package ui

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vanderheijden86/pathlab/pkg/config"
	"github.com/vanderheijden86/pathlab/pkg/grid"
	"github.com/vanderheijden86/pathlab/pkg/pathfind"
	"github.com/vanderheijden86/pathlab/pkg/testutil"
	"github.com/vanderheijden86/pathlab/pkg/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func newTestModel(t *testing.T, g *grid.Grid) Model {
	t.Helper()
	m := NewModel(Options{
		Config:   config.DefaultConfig(),
		Grid:     g,
		Seed:     1,
		Renderer: lipgloss.NewRenderer(io.Discard),
	})
	m.delay.Store(0)
	m.writeClipboard = func(string) error { return nil }
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

// drain pumps a run's commands until its outcome has been applied.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for cmd != nil {
		if time.Now().After(deadline) {
			t.Fatal("run did not finish")
		}
		msg := cmd()
		next, nextCmd := m.Update(msg)
		m = next.(Model)
		if _, ok := msg.(runDoneMsg); ok {
			return m
		}
		cmd = nextCmd
	}
	return m
}

func countMarks(m Model, k cellKind) int {
	n := 0
	for _, mk := range m.marks {
		if mk == k {
			n++
		}
	}
	return n
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(Options{Config: config.DefaultConfig(), Renderer: lipgloss.NewRenderer(io.Discard)})
	if m.Grid().Rows() != 20 || m.Grid().Cols() != 50 {
		t.Fatalf("grid = %dx%d, want 20x50", m.Grid().Rows(), m.Grid().Cols())
	}
	if m.Algorithm() != pathfind.AlgoBFS {
		t.Errorf("algorithm = %s, want bfs", m.Algorithm())
	}
	if m.cursor != m.Grid().Start().Coord {
		t.Errorf("cursor = %v, want start %v", m.cursor, m.Grid().Start().Coord)
	}
	if m.Running() {
		t.Error("new model should be idle")
	}
	if m.report.Optimal != m.Grid().End().Col-m.Grid().Start().Col {
		t.Errorf("optimal = %d", m.report.Optimal)
	}
	if m.Init() != nil {
		t.Error("Init without a watcher should return nil")
	}
}

func TestNewModel_InvalidConfigFallsBack(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Algorithm = "nope"
	m := NewModel(Options{Config: cfg, Renderer: lipgloss.NewRenderer(io.Discard)})
	if m.Algorithm() != pathfind.AlgoBFS {
		t.Errorf("algorithm = %s, want bfs fallback", m.Algorithm())
	}
}

func TestRun_AnimatesToCompletion(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Open(5, 5))

	m, cmd := press(t, m, "enter")
	if !m.Running() {
		t.Fatal("enter should start a run")
	}
	if cmd == nil {
		t.Fatal("enter should return the frame pump")
	}
	m = drain(t, m, cmd)

	if m.Running() {
		t.Fatal("run should be finished")
	}
	res, ok := m.LastResult()
	if !ok || !res.Found {
		t.Fatalf("LastResult = %+v, %v", res, ok)
	}
	if res.PathLength() != 8 {
		t.Errorf("path length = %d, want 8", res.PathLength())
	}
	if m.visited != len(res.Visited) {
		t.Errorf("visited frames applied = %d, result has %d", m.visited, len(res.Visited))
	}
	// The end cell is part of the path but never animated.
	if got := countMarks(m, cellPath); got != 7 {
		t.Errorf("path marks = %d, want 7", got)
	}
	if status, isErr := m.Status(); isErr || !strings.Contains(status, "path of 8") {
		t.Errorf("status = %q (err=%v)", status, isErr)
	}
}

func TestRun_NoPath(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Enclosed(5, 5))
	m, cmd := press(t, m, "enter")
	m = drain(t, m, cmd)

	res, ok := m.LastResult()
	if !ok || res.Found {
		t.Fatalf("expected a completed run without a path, got %+v", res)
	}
	if status, _ := m.Status(); !strings.Contains(status, "no path") {
		t.Errorf("status = %q", status)
	}
	if m.statsLine() == "" || !strings.Contains(m.statsLine(), "optimal none") {
		t.Errorf("stats = %q", m.statsLine())
	}
}

func TestRun_EditingLockedAndStop(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Open(6, 6))
	m, cmd := press(t, m, "enter")

	walls := m.Grid().WallCount()
	m, _ = press(t, m, "right", " ", "a", "m", "c", "g")
	if m.Grid().WallCount() != walls {
		t.Error("wall toggled while running")
	}
	if m.Algorithm() != pathfind.AlgoBFS {
		t.Error("algorithm changed while running")
	}
	if m.Grid().Rows() != 6 {
		t.Error("grid resized while running")
	}
	if m.cursor != (grid.Coord{Row: 0, Col: 1}) {
		t.Errorf("cursor should still move while running, got %v", m.cursor)
	}
	if status, _ := m.Status(); !strings.Contains(status, "locked") {
		t.Errorf("status = %q", status)
	}

	// Speed stays adjustable mid-run.
	m, _ = press(t, m, "-")
	if m.Speed() != config.DefaultConfig().Speed-speedStep {
		t.Errorf("speed = %d", m.Speed())
	}
	m.delay.Store(0)

	m, _ = press(t, m, "esc")
	m = drain(t, m, cmd)

	res, ok := m.LastResult()
	if !ok || !res.Cancelled {
		t.Fatalf("expected a cancelled result, got %+v", res)
	}
	if status, _ := m.Status(); !strings.Contains(status, "stopped") {
		t.Errorf("status = %q", status)
	}

	// Editing works again once idle.
	m, _ = press(t, m, " ")
	if m.Grid().WallCount() != walls+1 {
		t.Error("wall toggle should work after the run")
	}
}

func TestRun_SecondEnterIgnored(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Open(4, 4))
	m, cmd := press(t, m, "enter")
	id := m.sess.id
	m, second := press(t, m, "enter")
	if second != nil || m.sess.id != id {
		t.Fatal("enter during a run should not start another")
	}
	m = drain(t, m, cmd)
	if _, ok := m.LastResult(); !ok {
		t.Fatal("first run should complete")
	}
}

func TestStaleMessagesIgnored(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Open(4, 4))
	next, _ := m.Update(frameMsg{session: 42, coord: grid.Coord{Row: 1, Col: 1}, state: pathfind.StateVisited})
	m = next.(Model)
	if m.visited != 0 || countMarks(m, cellVisited) != 0 {
		t.Fatal("frame without an active session should be dropped")
	}
	next, _ = m.Update(runDoneMsg{session: 42})
	m = next.(Model)
	if _, ok := m.LastResult(); ok {
		t.Fatal("outcome without an active session should be dropped")
	}
}

func TestCursorMovementClamps(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Open(3, 3))
	m, _ = press(t, m, "up", "left", "k", "h")
	if m.cursor != (grid.Coord{}) {
		t.Fatalf("cursor = %v, want 0,0", m.cursor)
	}
	m, _ = press(t, m, "down", "j", "j", "right", "l", "l")
	if m.cursor != (grid.Coord{Row: 2, Col: 2}) {
		t.Fatalf("cursor = %v, want 2,2", m.cursor)
	}
}

func TestEditKeys(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Open(3, 4))

	m, _ = press(t, m, "right", " ")
	if !m.Grid().Node(0, 1).Wall {
		t.Fatal("space should toggle a wall")
	}
	m, _ = press(t, m, " ")
	if m.Grid().Node(0, 1).Wall {
		t.Fatal("second space should clear the wall")
	}

	m, _ = press(t, m, "down", "s")
	if m.Grid().Start().Coord != (grid.Coord{Row: 1, Col: 1}) {
		t.Errorf("start = %v", m.Grid().Start().Coord)
	}
	m, _ = press(t, m, "e")
	if _, isErr := m.Status(); !isErr {
		t.Error("placing end on start should be refused")
	}
	m, _ = press(t, m, "right", "e")
	if m.Grid().End().Coord != (grid.Coord{Row: 1, Col: 2}) {
		t.Errorf("end = %v", m.Grid().End().Coord)
	}
	if m.report.Optimal != 1 {
		t.Errorf("analysis not refreshed after edit: optimal = %d", m.report.Optimal)
	}
}

func TestMazeAndClear(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Open(12, 12))
	m, _ = press(t, m, "m")
	if m.Grid().WallCount() == 0 {
		t.Fatal("maze should add walls")
	}
	if m.Grid().Start().Wall || m.Grid().End().Wall {
		t.Fatal("maze must keep endpoints open")
	}
	if m.report.Walls != m.Grid().WallCount() {
		t.Errorf("report walls = %d, grid has %d", m.report.Walls, m.Grid().WallCount())
	}
	m, _ = press(t, m, "c")
	if m.Grid().WallCount() != 0 {
		t.Fatal("clear should remove every wall")
	}
}

func TestResetPath(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Open(4, 4))
	m, cmd := press(t, m, "enter")
	m = drain(t, m, cmd)
	if countMarks(m, cellVisited) == 0 {
		t.Fatal("expected visited marks after a run")
	}
	m, _ = press(t, m, "r")
	if countMarks(m, cellVisited)+countMarks(m, cellPath) != 0 {
		t.Fatal("reset should clear every mark")
	}
	if _, ok := m.LastResult(); ok {
		t.Fatal("reset should forget the last result")
	}
	if m.Grid().End().Prev != nil {
		t.Fatal("reset should clear search state on the grid")
	}
}

func TestAlgorithmKeys(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Open(3, 3))
	cases := []struct {
		key  string
		want pathfind.Algorithm
	}{
		{"4", pathfind.AlgoAStar},
		{"a", pathfind.AlgoBFS},
		{"a", pathfind.AlgoDFS},
		{"3", pathfind.AlgoDijkstra},
		{"2", pathfind.AlgoDFS},
		{"1", pathfind.AlgoBFS},
	}
	for _, tc := range cases {
		m, _ = press(t, m, tc.key)
		if m.Algorithm() != tc.want {
			t.Fatalf("after %q algorithm = %s, want %s", tc.key, m.Algorithm(), tc.want)
		}
	}
}

func TestSpeedKeys(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Open(3, 3))
	m, _ = press(t, m, "+", "+", "+")
	if m.Speed() != config.MaxSpeed {
		t.Fatalf("speed = %d, want clamp at %d", m.Speed(), config.MaxSpeed)
	}
	if got := time.Duration(m.delay.Load()); got != config.SpeedDelay(config.MaxSpeed) {
		t.Errorf("delay = %s", got)
	}
	for range 20 {
		m, _ = press(t, m, "-")
	}
	if m.Speed() != config.MinSpeed {
		t.Fatalf("speed = %d, want clamp at %d", m.Speed(), config.MinSpeed)
	}
}

func TestGridSizeCycles(t *testing.T) {
	m := NewModel(Options{Config: config.DefaultConfig(), Renderer: lipgloss.NewRenderer(io.Discard)})
	m, _ = press(t, m, "g")
	want := config.NextPreset(20, 50)
	if m.Grid().Rows() != want.Rows || m.Grid().Cols() != want.Cols {
		t.Fatalf("grid = %dx%d, want %s", m.Grid().Rows(), m.Grid().Cols(), want)
	}
	if len(m.marks) != m.Grid().Cells() {
		t.Fatalf("marks = %d, cells = %d", len(m.marks), m.Grid().Cells())
	}
	if !m.Grid().InBounds(m.cursor) {
		t.Fatalf("cursor %v out of bounds", m.cursor)
	}
}

func TestCopyPath(t *testing.T) {
	m := newTestModel(t, grid.MustParse("S.E"))
	var copied string
	m.writeClipboard = func(s string) error {
		copied = s
		return nil
	}

	m, _ = press(t, m, "y")
	if _, isErr := m.Status(); !isErr || copied != "" {
		t.Fatal("copy before any run should fail")
	}

	m, cmd := press(t, m, "enter")
	m = drain(t, m, cmd)
	m, _ = press(t, m, "y")
	if copied != "0,0 0,1 0,2" {
		t.Fatalf("copied %q", copied)
	}

	m.writeClipboard = func(string) error { return errors.New("no clipboard") }
	m, _ = press(t, m, "y")
	if status, isErr := m.Status(); !isErr || !strings.Contains(status, "no clipboard") {
		t.Errorf("status = %q", status)
	}
}

func TestConfigReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.DefaultConfig()
	cfg.Algorithm = "astar"
	cfg.Speed = 50
	cfg.UI.ShowHelp = false
	if err := config.SaveTo(cfg, path); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, testutil.NewDefault().Open(3, 3))
	m.configPath = path
	next, _ := m.Update(FileChangedMsg{})
	m = next.(Model)

	if m.Algorithm() != pathfind.AlgoAStar || m.Speed() != 50 {
		t.Fatalf("reload: algorithm %s speed %d", m.Algorithm(), m.Speed())
	}
	if time.Duration(m.delay.Load()) != config.SpeedDelay(50) {
		t.Errorf("delay not updated")
	}
	if m.cfg.UI.ShowHelp {
		t.Error("show_help not applied")
	}

	if err := os.WriteFile(path, []byte("speed: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	next, _ = m.Update(FileChangedMsg{})
	m = next.(Model)
	if _, isErr := m.Status(); !isErr {
		t.Error("bad config should report an error")
	}
	if m.Algorithm() != pathfind.AlgoAStar {
		t.Error("bad config should leave settings alone")
	}
}

func TestWatchFileCmdDetectsChange(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "config.yaml")
	_ = os.WriteFile(file, []byte("speed: 10"), 0o644)

	w, err := watcher.NewWatcher(file,
		watcher.WithForcePoll(true),
		watcher.WithPollInterval(20*time.Millisecond),
		watcher.WithDebounceDuration(10*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("start watcher: %v", err)
	}
	defer w.Stop()

	go func() {
		time.Sleep(40 * time.Millisecond)
		_ = os.WriteFile(file, []byte("speed: 20"), 0o644)
	}()

	msg := WatchFileCmd(w)()
	if _, ok := msg.(FileChangedMsg); !ok {
		t.Fatalf("expected FileChangedMsg, got %T", msg)
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Open(3, 3))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	m, _ = press(t, m, "?")
	if !m.showHelp {
		t.Fatal("? should open help")
	}
	if !strings.Contains(m.View(), "pathlab") {
		t.Error("help view should show the help document")
	}
	// Editing keys are swallowed by the overlay.
	m, _ = press(t, m, " ")
	if m.Grid().WallCount() != 0 {
		t.Error("overlay should not pass keys to the grid")
	}
	m, _ = press(t, m, "?")
	if m.showHelp {
		t.Fatal("? should close help")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Open(5, 5))
	m, _ = press(t, m, "enter")
	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}
	if m.runner.State() == pathfind.Running {
		t.Fatal("quit should stop the active run")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Open(4, 6))
	m, _ = press(t, m, "4")
	out := m.View()
	for _, want := range []string{"pathlab", "A*", "speed", "visited 0", "walls 0", "regions 1", "optimal 8"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "S") || !strings.Contains(out, "E") {
		t.Error("view should draw the endpoints")
	}
}

func TestWindowKeepsCursorVisible(t *testing.T) {
	m := newTestModel(t, testutil.NewDefault().Open(30, 70))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 42, Height: 20})
	m = next.(Model)
	m.cursor = grid.Coord{Row: 29, Col: 69}

	row0, col0, rows, cols := m.window()
	if cols != 20 {
		t.Errorf("visible cols = %d, want 20", cols)
	}
	if m.cursor.Row < row0 || m.cursor.Row >= row0+rows || m.cursor.Col < col0 || m.cursor.Col >= col0+cols {
		t.Fatalf("cursor %v outside window %d,%d %dx%d", m.cursor, row0, col0, rows, cols)
	}
}

func TestHelpers(t *testing.T) {
	if got := formatPath(grid.Coord{}, []grid.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 1}}); got != "0,0 0,1 1,1" {
		t.Errorf("formatPath = %q", got)
	}
	if got := truncateRunesHelper("abcdef", 4, "…"); got != "abc…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncateRunesHelper("abc", 4, "…"); got != "abc" {
		t.Errorf("truncate short = %q", got)
	}
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q", got)
	}
	if clamp(5, 0, 3) != 3 || clamp(-1, 0, 3) != 0 {
		t.Error("clamp")
	}
}

func TestKeyMapHelp(t *testing.T) {
	k := DefaultKeyMap()
	if len(k.ShortHelp()) == 0 || len(k.FullHelp()) == 0 {
		t.Fatal("help bindings empty")
	}
	md := helpMarkdown(k)
	for _, want := range []string{"space", "enter", "BFS", "A\\*"} {
		if !strings.Contains(md, want) {
			t.Errorf("help markdown missing %q", want)
		}
	}
}
