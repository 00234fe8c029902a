package ui

import (
	"strings"

	"github.com/vanderheijden86/pathlab/pkg/grid"

	"github.com/mattn/go-runewidth"
)

// truncateRunesHelper truncates a string to max visual width (cells), adding suffix if needed.
func truncateRunesHelper(s string, maxWidth int, suffix string) string {
	if maxWidth <= 0 {
		return ""
	}

	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s
	}

	suffixWidth := runewidth.StringWidth(suffix)
	if suffixWidth > maxWidth {
		return runewidth.Truncate(suffix, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth-suffixWidth, "") + suffix
}

// padRight pads s with spaces to the given visual width.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// formatPath renders a path as space-separated "row,col" pairs, start first.
func formatPath(start grid.Coord, path []grid.Coord) string {
	var sb strings.Builder
	sb.WriteString(start.String())
	for _, c := range path {
		sb.WriteByte(' ')
		sb.WriteString(c.String())
	}
	return sb.String()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
