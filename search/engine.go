package search

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/tilepath/gridgraph"
)

// Engine runs path searches over one grid graph. The graph is fixed at
// construction; its terrain may change between calls.
// An Engine is not safe for concurrent use while terrain is being painted.
type Engine struct {
	g    *gridgraph.GridGraph
	opts Options
}

// NewEngine binds an engine to g, applying any number of functional Options.
// Returns ErrNilGraph if g is nil.
func NewEngine(g *gridgraph.GridGraph, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{g: g, opts: o}, nil
}

// Graph returns the graph the engine searches.
func (e *Engine) Graph() *gridgraph.GridGraph { return e.g }

// FindPath computes a route from start to goal with the given algorithm.
//
// Every algorithm searches backwards: the frontier is seeded with goal and
// each reached cell records the neighbour one step closer to goal. The
// forward route is then read off by following those pointers from start.
//
// Returns ErrNilCell if start or goal is nil, a wrapped
// gridgraph.ErrUnknownCell if either belongs to another graph, and
// ErrUnknownAlgorithm for an invalid alg. An unreachable goal is a normal
// result with Found == false. Callers must not pass a Wall as start or goal.
func (e *Engine) FindPath(start, goal *gridgraph.Cell, alg Algorithm) (*Route, error) {
	if start == nil || goal == nil {
		return nil, ErrNilCell
	}
	if !e.g.Contains(start) || !e.g.Contains(goal) {
		return nil, fmt.Errorf("search: endpoints %s→%s: %w", start, goal, gridgraph.ErrUnknownCell)
	}

	var (
		tree *searchTree
		err  error
	)
	switch alg {
	case BreadthFirstSearch:
		tree, err = e.breadthFirst(goal)
	case Dijkstra:
		tree, err = e.cheapestFirst(start, goal, func(_ *gridgraph.Cell, cost int) int {
			return cost
		})
	case AStar:
		tree, err = e.cheapestFirst(start, goal, func(c *gridgraph.Cell, cost int) int {
			return cost + manhattan(c, start)
		})
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(alg))
	}
	if err != nil {
		return nil, err
	}

	r := &Route{
		Algorithm: alg,
		Start:     start,
		Goal:      goal,
		Expanded:  tree.expanded,
		tree:      tree,
	}
	if _, reached := tree.cost[start]; reached {
		if steps, ok := tree.walk(start, goal); ok {
			r.Found = true
			r.Steps = steps
			for _, s := range steps {
				r.Cost += s.Cost()
			}
		}
	}

	if !r.Found {
		e.opts.Logger.Debug("goal unreachable",
			slog.String("algorithm", alg.String()),
			slog.String("start", start.String()),
			slog.String("goal", goal.String()),
			slog.Int("expanded", tree.expanded),
		)
	}
	return r, nil
}

// manhattan is the A* heuristic: |a.x-b.x| + |a.y-b.y|.
func manhattan(a, b *gridgraph.Cell) int {
	return abs(a.X()-b.X()) + abs(a.Y()-b.Y())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
