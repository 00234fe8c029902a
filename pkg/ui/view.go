package ui

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/pathlab/pkg/grid"
	"github.com/vanderheijden86/pathlab/pkg/metrics"

	"github.com/charmbracelet/lipgloss"
)

// chromeRows is the height taken by everything except the grid body:
// header, status bar and the frame's top and bottom border.
const chromeRows = 4

// View renders the explorer.
func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	if m.showHelp {
		return m.helpView.View()
	}

	parts := []string{
		m.renderHeader(),
		m.theme.Frame.Render(m.renderGrid()),
		m.renderStatus(),
	}
	if m.cfg.UI.ShowHelp {
		parts = append(parts, m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	title := m.theme.Header.Render("pathlab")
	algo := m.theme.Badge.Render(m.algo.Label())
	info := m.theme.MutedText.Render(fmt.Sprintf("speed %d  %dx%d", m.speed, m.grid.Rows(), m.grid.Cols()))
	state := ""
	if m.running() {
		state = m.theme.Badge.Render("● running")
	}
	return strings.TrimRight(strings.Join([]string{title, algo, info, state}, " "), " ")
}

// window returns the first row and column drawn and how many of each fit,
// keeping the cursor in view when the grid is larger than the terminal.
func (m Model) window() (row0, col0, rows, cols int) {
	rows, cols = m.grid.Rows(), m.grid.Cols()
	if m.width > 0 {
		cols = clamp((m.width-2)/cellWidth, 1, cols)
	}
	if m.height > 0 {
		reserved := chromeRows
		if m.cfg.UI.ShowHelp {
			reserved++
		}
		rows = clamp(m.height-reserved, 1, rows)
	}
	row0 = clamp(m.cursor.Row-rows/2, 0, m.grid.Rows()-rows)
	col0 = clamp(m.cursor.Col-cols/2, 0, m.grid.Cols()-cols)
	return row0, col0, rows, cols
}

func (m Model) renderGrid() string {
	row0, col0, rows, cols := m.window()
	var sb strings.Builder
	sb.Grow(rows * (cols*cellWidth + 1))
	for r := row0; r < row0+rows; r++ {
		if r > row0 {
			sb.WriteByte('\n')
		}
		for c := col0; c < col0+cols; c++ {
			at := grid.Coord{Row: r, Col: c}
			sb.WriteString(m.theme.Cell(m.kindAt(at), at == m.cursor))
		}
	}
	return sb.String()
}

// kindAt resolves what a cell shows. Walls and endpoints come from the grid;
// visited and path marks come from the frames received so far.
func (m Model) kindAt(c grid.Coord) cellKind {
	n := m.grid.At(c)
	switch {
	case n == nil:
		return cellOpen
	case n.Start:
		return cellStart
	case n.End:
		return cellEnd
	case n.Wall:
		return cellWall
	default:
		return m.marks[m.grid.Index(c)]
	}
}

func (m Model) renderStatus() string {
	stats := m.statsLine()
	width := m.width
	if width <= 0 {
		width = lipgloss.Width(stats) + 40
	}

	msgStyle := m.theme.Status
	if m.statusIsError {
		msgStyle = m.theme.StatusErr
	}
	room := width - lipgloss.Width(stats) - 2
	if room < 8 {
		return m.theme.MutedText.Render(truncateRunesHelper(stats, width, "…"))
	}
	left := msgStyle.Render(padRight(truncateRunesHelper(m.statusMsg, room, "…"), room))
	return left + "  " + m.theme.MutedText.Render(stats)
}

func (m Model) statsLine() string {
	path := "-"
	if m.last != nil && m.last.Found {
		path = fmt.Sprint(m.last.PathLength())
	} else if m.traced > 0 {
		path = fmt.Sprint(m.traced)
	}
	optimal := "none"
	if m.report.Optimal >= 0 {
		optimal = fmt.Sprint(m.report.Optimal)
	}
	return fmt.Sprintf("visited %d  path %s  optimal %s  walls %d  regions %d",
		m.visited, path, optimal, m.report.Walls, m.report.Regions)
}
