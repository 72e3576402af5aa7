// Package search computes routes across a gridgraph.GridGraph with one of
// three interchangeable algorithms.
//
// Overview:
//
//   - BreadthFirstSearch: FIFO flood that ignores terrain cost. It explores
//     the whole passable region around the goal before answering.
//   - Dijkstra: cheapest-first expansion on terrain cost (Grass 1, Bush 2,
//     Tree 4); stops as soon as the start cell is taken from the frontier.
//   - AStar: Dijkstra with priority cost + Manhattan distance to the start.
//     The heuristic never overestimates (every step costs at least 1), so
//     A* returns routes of the same total cost as Dijkstra.
//
// Direction:
//
// All three algorithms are seeded at the goal and grow towards the start.
// Each reached cell records the neighbour one step closer to the goal, so
// the resulting pointer map answers "where do I step next" from any cell
// the search touched (Route.NextStep), while the forward route is read off
// by walking those pointers from the start.
//
// Edge policy:
//
//   - Walls are never entered. The engine does not check whether start or
//     goal are Walls; callers must not ask for that.
//   - start == goal yields a found route with zero steps.
//   - An unreachable goal is a normal outcome (Route.Found == false), logged
//     at debug level, never an error.
//   - Ties are broken deterministically: neighbour order is fixed (up,
//     right, down, left) and the priority queue is FIFO among equals.
//
// Complexity (N = W×H cells):
//
//   - BFS:          O(N) time, O(N) memory.
//   - Dijkstra, A*: O(N log N) time, O(N) memory (lazy decrease-key may
//     queue a cell up to four times).
//
// Errors (sentinel):
//
//   - ErrNilGraph:          NewEngine with a nil graph.
//   - ErrNilCell:           FindPath with an unset start or goal.
//   - gridgraph.ErrUnknownCell (wrapped): an endpoint from another graph.
//   - ErrUnknownAlgorithm:  an Algorithm outside the enum.
//
// Example usage:
//
//	eng, _ := search.NewEngine(g)
//	route, err := eng.FindPath(start, goal, search.AStar)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if route.Unreachable() {
//	    // leave the display as it is
//	}
//
// Thread safety: FindPath reads terrain without locking. Serialise painting
// and searching.
package search
