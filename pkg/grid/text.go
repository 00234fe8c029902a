package grid

import (
	"fmt"
	"strings"
)

// Cell glyphs used by Parse and String.
const (
	GlyphOpen  = '.'
	GlyphWall  = '#'
	GlyphStart = 'S'
	GlyphEnd   = 'E'
)

// Parse builds a grid from rows of glyphs. Every row must have the same
// width. Missing S or E markers leave the default endpoint in place.
func Parse(lines ...string) (*Grid, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("parse grid: no rows")
	}
	cols := len(lines[0])
	for i, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("parse grid: row %d has width %d, want %d", i, len(line), cols)
		}
	}
	g, err := New(len(lines), cols)
	if err != nil {
		return nil, fmt.Errorf("parse grid: %w", err)
	}

	var start, end *Coord
	for r, line := range lines {
		for c, ch := range line {
			pos := Coord{Row: r, Col: c}
			switch ch {
			case GlyphOpen:
			case GlyphWall:
				g.At(pos).Wall = true
			case GlyphStart:
				start = &pos
			case GlyphEnd:
				end = &pos
			default:
				return nil, fmt.Errorf("parse grid: unexpected %q at %s", ch, pos)
			}
		}
	}

	// Clear the default endpoints so S/E can land on each other's defaults.
	g.start.Start = false
	g.end.End = false
	g.start, g.end = nil, nil
	if start != nil {
		g.SetStart(*start)
	}
	if end != nil {
		g.SetEnd(*end)
	}
	if g.start == nil {
		g.SetStart(firstOpen(g, g.DefaultStart()))
	}
	if g.end == nil {
		g.SetEnd(firstOpen(g, g.DefaultEnd()))
	}
	return g, nil
}

// MustParse is Parse for test fixtures.
func MustParse(lines ...string) *Grid {
	g, err := Parse(lines...)
	if err != nil {
		panic(err)
	}
	return g
}

// String renders the grid with the Parse glyphs.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.Cells() + g.rows)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			sb.WriteByte(glyph(g.Node(r, c)))
		}
		if r < g.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func glyph(n *Node) byte {
	switch {
	case n.Start:
		return GlyphStart
	case n.End:
		return GlyphEnd
	case n.Wall:
		return GlyphWall
	default:
		return GlyphOpen
	}
}

// firstOpen returns want if it is free of endpoints, otherwise the first cell
// in row-major order that is.
func firstOpen(g *Grid, want Coord) Coord {
	if n := g.At(want); n != nil && !n.Start && !n.End {
		return want
	}
	for i := range g.nodes {
		n := &g.nodes[i]
		if !n.Start && !n.End {
			return n.Coord
		}
	}
	return want
}
