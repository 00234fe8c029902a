package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the grid explorer's key bindings. It implements help.KeyMap.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	ToggleWall key.Binding
	PlaceStart key.Binding
	PlaceEnd   key.Binding

	Run  key.Binding
	Stop key.Binding

	NextAlgo key.Binding
	Algo1    key.Binding
	Algo2    key.Binding
	Algo3    key.Binding
	Algo4    key.Binding

	Faster key.Binding
	Slower key.Binding

	Maze      key.Binding
	Clear     key.Binding
	ResetPath key.Binding
	GridSize  key.Binding
	CopyPath  key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),

		ToggleWall: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "wall")),
		PlaceStart: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		PlaceEnd:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end")),

		Run:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Stop: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop")),

		NextAlgo: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "algorithm")),
		Algo1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "BFS")),
		Algo2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "DFS")),
		Algo3:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "Dijkstra")),
		Algo4:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "A*")),

		Faster: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),

		Maze:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "maze")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		ResetPath: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset path")),
		GridSize:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid size")),
		CopyPath:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Stop, k.ToggleWall, k.NextAlgo, k.Maze, k.Clear, k.Help, k.Quit}
}

// FullHelp groups every binding by column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.ToggleWall, k.PlaceStart, k.PlaceEnd, k.Maze, k.Clear},
		{k.Run, k.Stop, k.ResetPath, k.CopyPath},
		{k.NextAlgo, k.Algo1, k.Algo2, k.Algo3, k.Algo4},
		{k.Faster, k.Slower, k.GridSize, k.Help, k.Quit},
	}
}

// editing reports the bindings that change the grid and so are refused
// while a search runs.
func (k KeyMap) editing() []key.Binding {
	return []key.Binding{
		k.ToggleWall, k.PlaceStart, k.PlaceEnd,
		k.NextAlgo, k.Algo1, k.Algo2, k.Algo3, k.Algo4,
		k.Maze, k.Clear, k.ResetPath, k.GridSize,
	}
}
