package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// cellKind is what a grid cell shows on screen.
type cellKind int

const (
	cellOpen cellKind = iota
	cellWall
	cellVisited
	cellPath
	cellStart
	cellEnd
	numCellKinds
)

// cellWidth is the number of terminal columns per grid cell.
const cellWidth = 2

// Theme holds every style the grid explorer draws with.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary lipgloss.AdaptiveColor
	Subtext lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Danger  lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor

	Header    lipgloss.Style
	Badge     lipgloss.Style
	Status    lipgloss.Style
	StatusErr lipgloss.Style
	MutedText lipgloss.Style
	Frame     lipgloss.Style

	// cells and cursorCells are pre-rendered per kind, since the grid view
	// draws thousands of cells per frame.
	cells       [numCellKinds]string
	cursorCells [numCellKinds]string
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary: lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Subtext: lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},
		Muted:   lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Danger:  lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
		Success: lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
	}

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)
	t.Badge = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.Status = r.NewStyle().Foreground(t.Subtext)
	t.StatusErr = r.NewStyle().Foreground(t.Danger).Bold(true)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.Frame = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted)

	bg := map[cellKind]lipgloss.AdaptiveColor{
		cellOpen:    {Light: "#FFFFFF", Dark: "#282A36"},
		cellWall:    {Light: "#333A45", Dark: "#6272A4"},
		cellVisited: {Light: "#AFD8F8", Dark: "#2E5E7E"},
		cellPath:    {Light: "#FFE082", Dark: "#F1FA8C"},
		cellStart:   {Light: "#43A047", Dark: "#50FA7B"},
		cellEnd:     {Light: "#E53935", Dark: "#FF5555"},
	}
	glyph := map[cellKind]string{
		cellOpen:    "  ",
		cellWall:    "██",
		cellVisited: "··",
		cellPath:    "◆◆",
		cellStart:   "S ",
		cellEnd:     "E ",
	}
	ink := lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#282A36"}
	for k := cellKind(0); k < numCellKinds; k++ {
		var style lipgloss.Style
		switch {
		case k == cellOpen:
			style = r.NewStyle()
		case k == cellWall || TermProfile < colorprofile.ANSI256:
			style = r.NewStyle().Foreground(bg[k])
		default:
			style = r.NewStyle().
				Background(bg[k]).
				Foreground(ink).
				Bold(k == cellStart || k == cellEnd)
		}
		t.cells[k] = style.Render(glyph[k])
		t.cursorCells[k] = style.Reverse(true).Render(cursorGlyph(glyph[k]))
	}
	return t
}

func cursorGlyph(g string) string {
	if g == "  " {
		return "[]"
	}
	return g
}

// Cell returns the pre-rendered string for a cell.
func (t Theme) Cell(k cellKind, cursor bool) string {
	if cursor {
		return t.cursorCells[k]
	}
	return t.cells[k]
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
