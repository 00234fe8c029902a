package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
)

// helpMarkdown builds the help overlay document from the live key map so
// the two cannot drift apart.
func helpMarkdown(k KeyMap) string {
	var sb strings.Builder
	sb.WriteString("# pathlab\n\n")
	sb.WriteString("Draw walls, place the start and end, then watch a search spread ")
	sb.WriteString("across the grid. Visited cells light up as they are settled; the ")
	sb.WriteString("path is traced once the search finishes.\n\n")

	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Move", []key.Binding{k.Up, k.Down, k.Left, k.Right}},
		{"Edit", []key.Binding{k.ToggleWall, k.PlaceStart, k.PlaceEnd, k.Maze, k.Clear, k.GridSize}},
		{"Search", []key.Binding{k.Run, k.Stop, k.ResetPath, k.CopyPath}},
		{"Algorithm", []key.Binding{k.NextAlgo, k.Algo1, k.Algo2, k.Algo3, k.Algo4, k.Faster, k.Slower}},
		{"Other", []key.Binding{k.Help, k.Quit}},
	}
	for _, s := range sections {
		fmt.Fprintf(&sb, "## %s\n\n| Key | Action |\n|---|---|\n", s.title)
		for _, b := range s.bindings {
			h := b.Help()
			fmt.Fprintf(&sb, "| `%s` | %s |\n", h.Key, h.Desc)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Algorithms\n\n")
	sb.WriteString("- **BFS** explores in rings and always finds a shortest path.\n")
	sb.WriteString("- **DFS** dives down one branch at a time; its path is rarely the shortest.\n")
	sb.WriteString("- **Dijkstra** settles cells by distance; on this grid it behaves like BFS.\n")
	sb.WriteString("- **A\\*** adds a Manhattan estimate to the distance and visits fewer cells.\n\n")
	sb.WriteString("Editing is locked while a search runs. Press `esc` to stop it.\n")
	return sb.String()
}

// renderHelp renders the help document for the given width. It falls back to
// the raw markdown if glamour fails.
func renderHelp(k KeyMap, width int) string {
	md := helpMarkdown(k)
	wrap := max(40, min(width-4, 100))
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
