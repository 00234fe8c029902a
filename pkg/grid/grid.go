// Package grid holds the 2-D cell model that the search algorithms run over.
//
// A Grid owns every Node in a single row-major slice. Nodes are addressed by
// coordinate and handed out as pointers into that arena, so predecessor links
// written by a search always refer back into the same grid.
package grid

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultMazeDensity is the wall probability used by GenerateMaze when the
// caller passes a non-positive density.
const DefaultMazeDensity = 0.25

// Coord is a (row, col) grid position.
type Coord struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// Node is a single grid cell.
//
// Wall, Start and End are owned by the editor; Visited, Distance, F and Prev
// are per-run search state and are reset by Grid.ResetSearch.
type Node struct {
	Coord

	Wall  bool
	Start bool
	End   bool

	Visited  bool
	Distance float64 // +Inf when unreached
	F        float64 // A* score, +Inf when unset
	Prev     *Node
}

// Grid is a rows x cols arena of nodes.
type Grid struct {
	rows  int
	cols  int
	nodes []Node
	start *Node
	end   *Node
}

// New creates a grid with start and end placed at their default positions.
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", rows, cols)
	}
	if rows*cols < 2 {
		return nil, fmt.Errorf("grid %dx%d too small for start and end", rows, cols)
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		nodes: make([]Node, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			n := &g.nodes[r*cols+c]
			n.Coord = Coord{Row: r, Col: c}
			n.Distance = math.Inf(1)
			n.F = math.Inf(1)
		}
	}
	g.placeDefaults()
	return g, nil
}

// MustNew is New for fixed sizes known to be valid.
func MustNew(rows, cols int) *Grid {
	g, err := New(rows, cols)
	if err != nil {
		panic(err)
	}
	return g
}

// Resize returns a fresh grid of the new size. Walls are not carried over.
func (g *Grid) Resize(rows, cols int) (*Grid, error) {
	return New(rows, cols)
}

func (g *Grid) Rows() int  { return g.rows }
func (g *Grid) Cols() int  { return g.cols }
func (g *Grid) Cells() int { return g.rows * g.cols }

// Start returns the current start node, or nil.
func (g *Grid) Start() *Node { return g.start }

// End returns the current end node, or nil.
func (g *Grid) End() *Node { return g.end }

// DefaultStart is the start position used on creation and after ClearWalls.
func (g *Grid) DefaultStart() Coord {
	return Coord{Row: g.rows / 2, Col: g.cols / 4}
}

// DefaultEnd is the end position used on creation and after ClearWalls.
func (g *Grid) DefaultEnd() Coord {
	return Coord{Row: g.rows / 2, Col: g.cols * 3 / 4}
}

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns the node at c, or nil when c is out of range.
func (g *Grid) At(c Coord) *Node {
	if !g.InBounds(c) {
		return nil
	}
	return &g.nodes[c.Row*g.cols+c.Col]
}

// Node returns the node at (row, col), or nil when out of range.
func (g *Grid) Node(row, col int) *Node {
	return g.At(Coord{Row: row, Col: col})
}

// Nodes calls fn for every node in row-major order.
func (g *Grid) Nodes(fn func(n *Node)) {
	for i := range g.nodes {
		fn(&g.nodes[i])
	}
}

// Index returns the arena index of c. c must be in bounds.
func (g *Grid) Index(c Coord) int {
	return c.Row*g.cols + c.Col
}

var directions = [4]Coord{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Neighbors returns the in-bounds 4-directional neighbors of n in the fixed
// order up, down, left, right. Walls are included; callers filter them.
func (g *Grid) Neighbors(n *Node) []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, 4)
	for _, d := range directions {
		if nb := g.At(Coord{Row: n.Row + d.Row, Col: n.Col + d.Col}); nb != nil {
			out = append(out, nb)
		}
	}
	return out
}

// SetStart moves the start flag to c. The target stops being a wall. Placing
// start on the end node is refused.
func (g *Grid) SetStart(c Coord) bool {
	n := g.At(c)
	if n == nil || n.End {
		return false
	}
	if g.start != nil {
		g.start.Start = false
	}
	n.Start = true
	n.Wall = false
	g.start = n
	return true
}

// SetEnd moves the end flag to c. The target stops being a wall. Placing end
// on the start node is refused.
func (g *Grid) SetEnd(c Coord) bool {
	n := g.At(c)
	if n == nil || n.Start {
		return false
	}
	if g.end != nil {
		g.end.End = false
	}
	n.End = true
	n.Wall = false
	g.end = n
	return true
}

// ToggleWall flips the wall flag at c. Start and end cells are left alone.
func (g *Grid) ToggleWall(c Coord) bool {
	n := g.At(c)
	if n == nil || n.Start || n.End {
		return false
	}
	n.Wall = !n.Wall
	return true
}

// SetWall sets the wall flag at c. Start and end cells are left alone.
func (g *Grid) SetWall(c Coord, wall bool) bool {
	n := g.At(c)
	if n == nil || n.Start || n.End {
		return false
	}
	n.Wall = wall
	return true
}

// ResetSearch restores all per-run search state.
func (g *Grid) ResetSearch() {
	for i := range g.nodes {
		n := &g.nodes[i]
		n.Visited = false
		n.Distance = math.Inf(1)
		n.F = math.Inf(1)
		n.Prev = nil
	}
}

// ClearWalls removes every wall, resets search state and re-seats start and
// end at their defaults.
func (g *Grid) ClearWalls() {
	for i := range g.nodes {
		g.nodes[i].Wall = false
	}
	g.ResetSearch()
	g.placeDefaults()
}

// GenerateMaze clears the grid and turns each non-endpoint cell into a wall
// with probability density.
func (g *Grid) GenerateMaze(rng *rand.Rand, density float64) {
	if density <= 0 {
		density = DefaultMazeDensity
	}
	if density > 1 {
		density = 1
	}
	g.ClearWalls()
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.Start || n.End {
			continue
		}
		if rng.Float64() < density {
			n.Wall = true
		}
	}
}

// WallCount returns the number of wall cells.
func (g *Grid) WallCount() int {
	count := 0
	for i := range g.nodes {
		if g.nodes[i].Wall {
			count++
		}
	}
	return count
}

func (g *Grid) placeDefaults() {
	if g.start != nil {
		g.start.Start = false
		g.start = nil
	}
	if g.end != nil {
		g.end.End = false
		g.end = nil
	}
	s, e := g.DefaultStart(), g.DefaultEnd()
	if s == e {
		// 1xN or tiny grids: fall back to opposite corners
		s = Coord{}
		e = Coord{Row: g.rows - 1, Col: g.cols - 1}
	}
	g.SetStart(s)
	g.SetEnd(e)
}
