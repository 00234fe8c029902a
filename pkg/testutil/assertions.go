package testutil

import (
	"github.com/vanderheijden86/pathlab/pkg/grid"
	"github.com/vanderheijden86/pathlab/pkg/pathfind"
)

// TB is the part of testing.TB the assertions use. *testing.T and
// *rapid.T both satisfy it.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
}

// AssertPathValid verifies that path is a chain of unit steps from start to
// end that never enters a wall. path excludes start and includes end.
func AssertPathValid(t TB, g *grid.Grid, path []grid.Coord) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("expected a non-empty path")
	}
	if last := path[len(path)-1]; last != g.End().Coord {
		t.Errorf("path ends at %s, want end %s", last, g.End().Coord)
	}
	prev := g.Start().Coord
	for i, c := range path {
		if !g.InBounds(c) {
			t.Fatalf("path[%d] = %s out of bounds", i, c)
		}
		if g.At(c).Wall {
			t.Errorf("path[%d] = %s is a wall", i, c)
		}
		if manhattan(prev, c) != 1 {
			t.Errorf("path[%d] = %s is not adjacent to %s", i, c, prev)
		}
		prev = c
	}
}

// AssertVisitedUnique verifies that no coordinate was revealed as visited
// twice and that the endpoints were never revealed.
func AssertVisitedUnique(t TB, g *grid.Grid, visited []grid.Coord) {
	t.Helper()
	seen := make(map[grid.Coord]bool, len(visited))
	for _, c := range visited {
		if seen[c] {
			t.Errorf("visited %s more than once", c)
		}
		seen[c] = true
		if c == g.Start().Coord || c == g.End().Coord {
			t.Errorf("endpoint %s revealed as visited", c)
		}
	}
}

// AssertFrameOrder verifies that every path frame comes after the last
// visited frame, and that path frames match the result path minus the end.
func AssertFrameOrder(t TB, frames []Frame, res pathfind.Result) {
	t.Helper()
	lastVisited, firstPath := -1, len(frames)
	var pathCoords []grid.Coord
	for i, f := range frames {
		switch f.State {
		case pathfind.StateVisited:
			lastVisited = i
		case pathfind.StatePath:
			if i < firstPath {
				firstPath = i
			}
			pathCoords = append(pathCoords, f.Coord)
		}
	}
	if lastVisited > firstPath {
		t.Errorf("visited frame %d after path frame %d", lastVisited, firstPath)
	}
	want := res.Path
	if len(want) > 0 {
		want = want[:len(want)-1]
	}
	if len(pathCoords) != len(want) {
		t.Fatalf("path frames = %d, want %d", len(pathCoords), len(want))
	}
	for i := range want {
		if pathCoords[i] != want[i] {
			t.Errorf("path frame %d = %s, want %s", i, pathCoords[i], want[i])
		}
	}
}

func manhattan(a, b grid.Coord) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
