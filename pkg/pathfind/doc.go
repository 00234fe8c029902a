// Package pathfind implements the search-and-animate engine behind pathlab.
//
// Four strategies share one contract:
//
//   - BFS: FIFO frontier, nodes marked visited on discovery.
//   - DFS: recursive pre-order walk with shuffled neighbor order.
//   - Dijkstra: min-heap on accumulated distance with lazy deletion.
//   - AStar: min-heap on distance plus Manhattan heuristic.
//
// Every algorithm mutates the per-node search state of a grid.Grid in place
// and reports progress through an AnimateFunc. The callback is the only
// suspension point: it performs the visual side effect and sleeps for the
// requested delay (see Pace). Cancellation is cooperative and carried by the
// context.Context; a cancelled run returns a Result with Cancelled set and a
// nil error.
//
// Runner serializes runs for interactive front ends: at most one search is
// active at a time, and Stop cancels it.
package pathfind
