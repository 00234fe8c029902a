package grid

import (
	"math"
	"math/rand"
	"testing"
)

func TestNew_DefaultEndpoints(t *testing.T) {
	g, err := New(20, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.Start() == nil || g.Start().Coord != (Coord{Row: 10, Col: 12}) {
		t.Errorf("expected start at 10,12, got %v", g.Start())
	}
	if g.End() == nil || g.End().Coord != (Coord{Row: 10, Col: 37}) {
		t.Errorf("expected end at 10,37, got %v", g.End())
	}
	if g.Cells() != 1000 {
		t.Errorf("expected 1000 cells, got %d", g.Cells())
	}
}

func TestNew_InvalidSize(t *testing.T) {
	for _, tc := range []struct{ rows, cols int }{{0, 5}, {5, 0}, {-1, 3}, {1, 1}} {
		if _, err := New(tc.rows, tc.cols); err == nil {
			t.Errorf("expected error for %dx%d", tc.rows, tc.cols)
		}
	}
}

func TestNew_TinyGridUsesCorners(t *testing.T) {
	g := MustNew(1, 2)
	if g.Start().Coord == g.End().Coord {
		t.Fatal("start and end must differ")
	}
}

func TestNeighbors_OrderAndBounds(t *testing.T) {
	g := MustNew(3, 3)

	got := g.Neighbors(g.Node(1, 1))
	want := []Coord{{0, 1}, {2, 1}, {1, 0}, {1, 2}}
	if len(got) != len(want) {
		t.Fatalf("expected %d neighbors, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Coord != want[i] {
			t.Errorf("neighbor %d: expected %v, got %v", i, want[i], got[i].Coord)
		}
	}

	corner := g.Neighbors(g.Node(0, 0))
	if len(corner) != 2 {
		t.Errorf("expected 2 neighbors for corner, got %d", len(corner))
	}
	if g.Neighbors(nil) != nil {
		t.Error("expected nil neighbors for nil node")
	}
}

func TestSetStartEnd_Exclusive(t *testing.T) {
	g := MustNew(5, 5)
	old := g.Start()

	g.SetWall(Coord{Row: 0, Col: 0}, true)
	if !g.SetStart(Coord{Row: 0, Col: 0}) {
		t.Fatal("SetStart refused a free cell")
	}
	if old.Start {
		t.Error("old start still flagged")
	}
	if n := g.Node(0, 0); !n.Start || n.Wall {
		t.Errorf("new start should be start and not wall: %+v", n)
	}
	if g.SetStart(g.End().Coord) {
		t.Error("SetStart should refuse the end cell")
	}
	if g.SetEnd(g.Start().Coord) {
		t.Error("SetEnd should refuse the start cell")
	}

	starts, ends := 0, 0
	g.Nodes(func(n *Node) {
		if n.Start {
			starts++
		}
		if n.End {
			ends++
		}
	})
	if starts != 1 || ends != 1 {
		t.Errorf("expected one start and one end, got %d/%d", starts, ends)
	}
}

func TestToggleWall_SkipsEndpoints(t *testing.T) {
	g := MustNew(5, 5)
	if g.ToggleWall(g.Start().Coord) {
		t.Error("toggled wall on start")
	}
	if g.ToggleWall(Coord{Row: 9, Col: 9}) {
		t.Error("toggled wall out of bounds")
	}
	c := Coord{Row: 0, Col: 0}
	g.ToggleWall(c)
	if !g.At(c).Wall {
		t.Error("expected wall after toggle")
	}
	g.ToggleWall(c)
	if g.At(c).Wall {
		t.Error("expected open cell after second toggle")
	}
}

func TestResetSearch(t *testing.T) {
	g := MustNew(3, 3)
	n := g.Node(1, 1)
	n.Visited = true
	n.Distance = 2
	n.F = 4
	n.Prev = g.Node(0, 0)

	g.ResetSearch()
	if n.Visited || n.Prev != nil || !math.IsInf(n.Distance, 1) || !math.IsInf(n.F, 1) {
		t.Errorf("search state not reset: %+v", n)
	}
}

func TestGenerateMaze_KeepsEndpointsOpen(t *testing.T) {
	g := MustNew(20, 50)
	g.GenerateMaze(rand.New(rand.NewSource(7)), 0.9)

	if g.Start().Wall || g.End().Wall {
		t.Error("maze walled an endpoint")
	}
	walls := g.WallCount()
	if walls == 0 || walls >= g.Cells()-1 {
		t.Errorf("unexpected wall count %d", walls)
	}

	g.ClearWalls()
	if g.WallCount() != 0 {
		t.Errorf("expected no walls after clear, got %d", g.WallCount())
	}
	if g.Start().Coord != g.DefaultStart() {
		t.Errorf("expected start re-seated at default, got %v", g.Start().Coord)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	rows := []string{
		"S..#",
		".#..",
		"...E",
	}
	g, err := Parse(rows...)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.Start().Coord != (Coord{0, 0}) || g.End().Coord != (Coord{2, 3}) {
		t.Fatalf("unexpected endpoints %v %v", g.Start().Coord, g.End().Coord)
	}
	want := "S..#\n.#..\n...E"
	if got := g.String(); got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse(); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := Parse("S..", ".."); err == nil {
		t.Error("expected error for ragged rows")
	}
	if _, err := Parse("S.x", "..E"); err == nil {
		t.Error("expected error for unknown glyph")
	}
}
