package search

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/katalvlaran/tilepath/gridgraph"
)

// walker encapsulates mutable BFS state.
type walker struct {
	g        *gridgraph.GridGraph
	onExpand func(*gridgraph.Cell)
	frontier *queue.Queue[*gridgraph.Cell]
	visited  mapset.Set[*gridgraph.Cell] // processed cells
	queued   mapset.Set[*gridgraph.Cell] // cells ever put on the frontier
	tree     *searchTree
}

// breadthFirst floods the passable region around goal in FIFO order,
// ignoring terrain cost. It does not stop when start is found: the whole
// region is explored and the depth of each cell recorded as its cost.
func (e *Engine) breadthFirst(goal *gridgraph.Cell) (*searchTree, error) {
	w := &walker{
		g:        e.g,
		onExpand: e.opts.OnExpand,
		frontier: queue.New[*gridgraph.Cell](),
		visited:  mapset.New[*gridgraph.Cell](),
		queued:   mapset.New[*gridgraph.Cell](),
		tree:     newSearchTree(e.g.Len()),
	}
	w.enqueue(goal, nil)
	return w.tree, w.loop()
}

// enqueue puts c on the frontier and records the cell it leads to.
func (w *walker) enqueue(c, toward *gridgraph.Cell) {
	w.frontier.Enqueue(c)
	w.queued.Put(c)
	if toward == nil {
		w.tree.cost[c] = 0
		return
	}
	w.tree.next[c] = toward
	w.tree.cost[c] = w.tree.cost[toward] + 1
}

// loop processes the frontier until it is empty.
func (w *walker) loop() error {
	for !w.frontier.Empty() {
		cur := w.frontier.Dequeue()
		w.tree.expanded++
		w.onExpand(cur)

		neighbors, err := w.g.Neighbors(cur)
		if err != nil {
			return fmt.Errorf("search: bfs neighbors of %s: %w", cur, err)
		}
		for _, nbr := range neighbors {
			if w.visited.Has(nbr) || w.queued.Has(nbr) {
				continue
			}
			if !nbr.Passable() {
				continue
			}
			w.enqueue(nbr, cur)
		}
		w.visited.Put(cur)
	}
	return nil
}
