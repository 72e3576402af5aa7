package search

import (
	"strings"

	"github.com/katalvlaran/tilepath/gridgraph"
)

// Route is the outcome of one FindPath call.
//
// When Found is true, Steps holds the cells to walk in order, starting with
// the cell after Start and ending with Goal (empty when Start == Goal).
// When Found is false the goal is unreachable and Steps is nil.
type Route struct {
	Algorithm Algorithm
	Start     *gridgraph.Cell
	Goal      *gridgraph.Cell
	Found     bool
	Steps     []*gridgraph.Cell

	// Cost is the sum of the terrain costs of Steps (BFS routes included).
	Cost int
	// Expanded counts the cells taken from the frontier during the search.
	Expanded int

	tree *searchTree
}

// Unreachable reports whether the search could not connect start and goal.
func (r *Route) Unreachable() bool { return !r.Found }

// Len returns the number of steps.
func (r *Route) Len() int { return len(r.Steps) }

// NextStep returns the neighbour one step closer to the goal from c, as
// recorded by the search. Because searches run from the goal outward, this
// answers for every cell the search reached, not only those on the route.
func (r *Route) NextStep(c *gridgraph.Cell) (*gridgraph.Cell, bool) {
	if r.tree == nil {
		return nil, false
	}
	n, ok := r.tree.next[c]
	return n, ok
}

// CostTo returns the cost recorded for c during the search: the
// accumulated terrain cost towards the goal for Dijkstra and A*, the step
// depth from the goal for BFS. The goal itself reports 0.
func (r *Route) CostTo(c *gridgraph.Cell) (int, bool) {
	if r.tree == nil {
		return 0, false
	}
	v, ok := r.tree.cost[c]
	return v, ok
}

// Contains reports whether c is one of the route's steps.
func (r *Route) Contains(c *gridgraph.Cell) bool {
	for _, s := range r.Steps {
		if s == c {
			return true
		}
	}
	return false
}

// String formats the route as "(2,1) (3,1)", or "unreachable".
func (r *Route) String() string {
	if !r.Found {
		return "unreachable"
	}
	parts := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// searchTree is the per-search state shared by all algorithms: the
// back-pointers towards the goal and the cost recorded per cell.
type searchTree struct {
	next     map[*gridgraph.Cell]*gridgraph.Cell
	cost     map[*gridgraph.Cell]int
	expanded int
}

func newSearchTree(size int) *searchTree {
	return &searchTree{
		next: make(map[*gridgraph.Cell]*gridgraph.Cell, size),
		cost: make(map[*gridgraph.Cell]int, size),
	}
}

// walk follows back-pointers from start until goal and collects every cell
// after start. It reports false if a pointer is missing or the walk runs
// longer than the pointer map could allow.
func (t *searchTree) walk(start, goal *gridgraph.Cell) ([]*gridgraph.Cell, bool) {
	steps := make([]*gridgraph.Cell, 0)
	for cur := start; cur != goal; {
		nxt, ok := t.next[cur]
		if !ok || len(steps) >= len(t.next) {
			return nil, false
		}
		steps = append(steps, nxt)
		cur = nxt
	}
	return steps, true
}
