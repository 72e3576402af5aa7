// Package sandbox is the interactive owner of a grid: it holds the start
// and goal, applies terrain painting, and recomputes the route through a
// search.Engine whenever something changes or the selector picks another
// algorithm.
//
// The results are exposed as an Overlay keyed by gridgraph.CellID. Route
// cells are MarkPath, endpoints MarkStart and MarkGoal with the labels
// "START" and "END". Dijkstra and A* also label every costed cell with its
// cost towards the goal. Front ends (tui, render) read the overlay; the
// search never does.
//
// A unit can be spawned on the start and stepped along the route, one cell
// per StepUnit call.
package sandbox
