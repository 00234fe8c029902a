// Package analysis inspects a grid's layout independently of any search
// run: how many cells are open, whether the end can be reached from the
// start, the optimal path length, how many disconnected open regions there
// are, and which open cells are choke points.
//
// The open cells are lifted into a gonum undirected graph so the answers
// come from a separate implementation than the animated searches. Tests use
// the report as an oracle for the search engine.
package analysis

import (
	"math"
	"sort"

	"github.com/vanderheijden86/pathlab/pkg/grid"
	"github.com/vanderheijden86/pathlab/pkg/metrics"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Report summarizes a grid layout.
type Report struct {
	Rows  int `json:"rows"`
	Cols  int `json:"cols"`
	Open  int `json:"open"`
	Walls int `json:"walls"`

	Start grid.Coord `json:"start"`
	End   grid.Coord `json:"end"`

	// Reachable reports whether end is connected to start through open cells.
	Reachable bool `json:"reachable"`
	// Optimal is the shortest number of unit steps from start to end, or -1.
	Optimal int `json:"optimal"`
	// Regions counts the connected components of open cells.
	Regions int `json:"regions"`
	// ChokePoints are open cells whose removal splits their region, in
	// row-major order.
	ChokePoints []grid.Coord `json:"choke_points,omitempty"`

	Hash string `json:"hash"`
}

// Analyzer builds a gonum view of a grid's open cells.
type Analyzer struct {
	g *grid.Grid
	u *simple.UndirectedGraph
}

// NewAnalyzer snapshots the walls of g. Later edits to g are not seen.
func NewAnalyzer(g *grid.Grid) *Analyzer {
	u := simple.NewUndirectedGraph()
	g.Nodes(func(n *grid.Node) {
		if !n.Wall {
			u.AddNode(simple.Node(g.Index(n.Coord)))
		}
	})
	g.Nodes(func(n *grid.Node) {
		if n.Wall {
			return
		}
		from := u.Node(int64(g.Index(n.Coord)))
		// Right and down cover every undirected edge once.
		for _, d := range [2]grid.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 0}} {
			nb := g.At(grid.Coord{Row: n.Row + d.Row, Col: n.Col + d.Col})
			if nb == nil || nb.Wall {
				continue
			}
			u.SetEdge(u.NewEdge(from, u.Node(int64(g.Index(nb.Coord)))))
		}
	})
	return &Analyzer{g: g, u: u}
}

// Analyze computes the full report.
func (a *Analyzer) Analyze() Report {
	defer metrics.Timer(metrics.GridAnalysis)()

	r := Report{
		Rows:    a.g.Rows(),
		Cols:    a.g.Cols(),
		Open:    a.u.Nodes().Len(),
		Walls:   a.g.WallCount(),
		Optimal: -1,
		Regions: len(topo.ConnectedComponents(a.u)),
		Hash:    ComputeGridHash(a.g),
	}
	start, end := a.g.Start(), a.g.End()
	if start != nil {
		r.Start = start.Coord
	}
	if end != nil {
		r.End = end.Coord
	}
	r.Optimal = a.ShortestPathLength()
	r.Reachable = r.Optimal >= 0

	r.ChokePoints = a.ChokePoints()
	return r
}

// ShortestPathLength returns the optimal number of steps from start to end,
// or -1 when end is unreachable or either endpoint is missing.
func (a *Analyzer) ShortestPathLength() int {
	start, end := a.g.Start(), a.g.End()
	if start == nil || end == nil || start.Wall || end.Wall {
		return -1
	}
	sid, eid := int64(a.g.Index(start.Coord)), int64(a.g.Index(end.Coord))
	if sid == eid {
		return 0
	}
	shortest := path.DijkstraFrom(a.u.Node(sid), a.u)
	_, weight := shortest.To(eid)
	if math.IsInf(weight, 1) {
		return -1
	}
	return int(weight)
}

// Reachable returns every open cell connected to c, c included, in
// row-major order. A wall or out-of-range c yields nil.
func (a *Analyzer) Reachable(c grid.Coord) []grid.Coord {
	if !a.g.InBounds(c) {
		return nil
	}
	id := int64(a.g.Index(c))
	for _, comp := range topo.ConnectedComponents(a.u) {
		for _, n := range comp {
			if n.ID() != id {
				continue
			}
			out := make([]grid.Coord, 0, len(comp))
			for _, m := range comp {
				out = append(out, a.coord(m.ID()))
			}
			sort.Slice(out, func(i, j int) bool {
				return a.g.Index(out[i]) < a.g.Index(out[j])
			})
			return out
		}
	}
	return nil
}

func (a *Analyzer) coord(id int64) grid.Coord {
	cols := int64(a.g.Cols())
	return grid.Coord{Row: int(id / cols), Col: int(id % cols)}
}

// Analyze is NewAnalyzer(g).Analyze().
func Analyze(g *grid.Grid) Report {
	return NewAnalyzer(g).Analyze()
}

// ChokePoints returns the cut cells of the open-cell graph in row-major
// order. Low-link values are tracked per cell index with an explicit stack,
// so large open grids do not recurse once per cell.
func (a *Analyzer) ChokePoints() []grid.Coord {
	n := a.g.Cells()
	disc := make([]int, n) // 0 = not reached
	low := make([]int, n)
	parent := make([]int, n)
	cut := make([]bool, n)

	type step struct {
		cell     int
		next     []int
		children int
	}
	var clock int
	enter := func(c, from int) step {
		clock++
		disc[c], low[c], parent[c] = clock, clock, from
		return step{cell: c, next: a.openNeighbors(c)}
	}

	for root := range n {
		if disc[root] != 0 || a.u.Node(int64(root)) == nil {
			continue
		}
		stack := []step{enter(root, -1)}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if len(top.next) > 0 {
				nb := top.next[0]
				top.next = top.next[1:]
				switch {
				case disc[nb] == 0:
					top.children++
					stack = append(stack, enter(nb, top.cell))
				case nb != parent[top.cell]:
					low[top.cell] = min(low[top.cell], disc[nb])
				}
				continue
			}

			done := *top
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				cut[done.cell] = done.children > 1
				continue
			}
			up := stack[len(stack)-1].cell
			low[up] = min(low[up], low[done.cell])
			if parent[up] != -1 && low[done.cell] >= disc[up] {
				cut[up] = true
			}
		}
	}

	var out []grid.Coord
	for i, isCut := range cut {
		if isCut {
			out = append(out, a.coord(int64(i)))
		}
	}
	return out
}

// openNeighbors lists the open cells adjacent to cell in the snapshot.
func (a *Analyzer) openNeighbors(cell int) []int {
	it := a.u.From(int64(cell))
	out := make([]int, 0, it.Len())
	for it.Next() {
		out = append(out, int(it.Node().ID()))
	}
	return out
}
