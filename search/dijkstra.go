package search

import (
	"fmt"

	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/pqueue"
)

// priorityFunc maps a relaxed cell and its accumulated cost to the priority
// it is queued with. Dijkstra uses the cost itself; A* adds the heuristic.
type priorityFunc func(c *gridgraph.Cell, cost int) int

// frontierItem is one queued relaxation. cost is the accumulated cost at
// the time of queuing, used to recognise stale entries.
type frontierItem struct {
	cell *gridgraph.Cell
	cost int
}

// runner holds the mutable state for one Dijkstra or A* execution.
type runner struct {
	g        *gridgraph.GridGraph
	start    *gridgraph.Cell
	priority priorityFunc
	onExpand func(*gridgraph.Cell)
	frontier *pqueue.Queue[frontierItem]
	tree     *searchTree
}

// cheapestFirst runs the shared Dijkstra/A* loop from goal until start is
// taken from the frontier or the frontier empties.
func (e *Engine) cheapestFirst(start, goal *gridgraph.Cell, priority priorityFunc) (*searchTree, error) {
	r := &runner{
		g:        e.g,
		start:    start,
		priority: priority,
		onExpand: e.opts.OnExpand,
		frontier: pqueue.New[frontierItem](pqueue.WithCapacity(e.g.Len())),
		tree:     newSearchTree(e.g.Len()),
	}
	r.init(goal)
	return r.tree, r.process()
}

// init records a zero cost for goal and queues it with priority 0.
func (r *runner) init(goal *gridgraph.Cell) {
	r.tree.cost[goal] = 0
	r.frontier.Enqueue(frontierItem{cell: goal, cost: 0}, 0)
}

// process is the main loop. Entries whose cost was improved after they were
// queued are skipped when popped ("lazy decrease-key").
func (r *runner) process() error {
	for r.frontier.Count() > 0 {
		item, err := r.frontier.Dequeue()
		if err != nil {
			return fmt.Errorf("search: frontier: %w", err)
		}
		if item.cost > r.tree.cost[item.cell] {
			continue
		}
		r.tree.expanded++
		r.onExpand(item.cell)
		if item.cell == r.start {
			break
		}
		if err := r.relax(item.cell); err != nil {
			return err
		}
	}
	return nil
}

// relax tries to improve every passable neighbour of cur. The cost of a
// step is the terrain cost of the cell being entered.
func (r *runner) relax(cur *gridgraph.Cell) error {
	neighbors, err := r.g.Neighbors(cur)
	if err != nil {
		return fmt.Errorf("search: neighbors of %s: %w", cur, err)
	}
	base := r.tree.cost[cur]
	for _, nbr := range neighbors {
		if !nbr.Passable() {
			continue
		}
		newCost := base + nbr.Cost()
		if old, seen := r.tree.cost[nbr]; seen && newCost >= old {
			continue
		}
		r.tree.cost[nbr] = newCost
		r.tree.next[nbr] = cur
		r.frontier.Enqueue(frontierItem{cell: nbr, cost: newCost}, r.priority(nbr, newCost))
	}
	return nil
}
