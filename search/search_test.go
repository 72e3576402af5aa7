package search_test

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/search"
)

// mustGrid builds a grid from map rows (rows[0] is y=1).
func mustGrid(t *testing.T, rows ...string) *gridgraph.GridGraph {
	t.Helper()
	g, err := gridgraph.FromRows(rows...)
	require.NoError(t, err)
	return g
}

// cellAt returns the cell at 1-based (x,y).
func cellAt(t *testing.T, g *gridgraph.GridGraph, x, y int) *gridgraph.Cell {
	t.Helper()
	c, err := g.Cell(x, y)
	require.NoError(t, err)
	return c
}

// coords renders route steps as [x,y] pairs for readable assertions.
func coords(steps []*gridgraph.Cell) [][2]int {
	out := make([][2]int, len(steps))
	for i, c := range steps {
		out[i] = [2]int{c.X(), c.Y()}
	}
	return out
}

// minForwardCost is a brute-force reference: repeated relaxation of the
// cost of entering each cell, starting from start.
func minForwardCost(g *gridgraph.GridGraph, start, goal *gridgraph.Cell) (int, bool) {
	const inf = int(^uint(0) >> 1)
	dist := make(map[*gridgraph.Cell]int, g.Len())
	for _, c := range g.Cells() {
		dist[c] = inf
	}
	dist[start] = 0
	for changed := true; changed; {
		changed = false
		for _, c := range g.Cells() {
			if dist[c] == inf {
				continue
			}
			nbrs, _ := g.Neighbors(c)
			for _, n := range nbrs {
				if !n.Passable() {
					continue
				}
				if d := dist[c] + n.Cost(); d < dist[n] {
					dist[n] = d
					changed = true
				}
			}
		}
	}
	return dist[goal], dist[goal] != inf
}

// adjacent reports whether b is among a's neighbours.
func adjacent(g *gridgraph.GridGraph, a, b *gridgraph.Cell) bool {
	nbrs, err := g.Neighbors(a)
	if err != nil {
		return false
	}
	for _, n := range nbrs {
		if n == b {
			return true
		}
	}
	return false
}

func newEngine(t *testing.T, g *gridgraph.GridGraph, opts ...search.Option) *search.Engine {
	t.Helper()
	eng, err := search.NewEngine(g, opts...)
	require.NoError(t, err)
	return eng
}

//----------------------------------------------------------------------------//
// Concrete scenarios
//----------------------------------------------------------------------------//

// TestFindPath_Line covers the 3×1 all-grass corridor.
func TestFindPath_Line(t *testing.T) {
	g := mustGrid(t, "...")
	eng := newEngine(t, g)
	start, goal := cellAt(t, g, 1, 1), cellAt(t, g, 3, 1)

	for _, alg := range search.Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			r, err := eng.FindPath(start, goal, alg)
			require.NoError(t, err)
			require.True(t, r.Found)
			assert.Equal(t, [][2]int{{2, 1}, {3, 1}}, coords(r.Steps))
			assert.Equal(t, 2, r.Cost)
			assert.Equal(t, alg, r.Algorithm)
			assert.Same(t, start, r.Start)
			assert.Same(t, goal, r.Goal)
		})
	}
}

// TestFindPath_LineBlocked covers the 3×1 corridor with a wall in the middle.
func TestFindPath_LineBlocked(t *testing.T) {
	g := mustGrid(t, ".#.")
	eng := newEngine(t, g)
	start, goal := cellAt(t, g, 1, 1), cellAt(t, g, 3, 1)

	for _, alg := range search.Algorithms() {
		r, err := eng.FindPath(start, goal, alg)
		require.NoError(t, err, alg.String())
		assert.False(t, r.Found, alg.String())
		assert.True(t, r.Unreachable(), alg.String())
		assert.Nil(t, r.Steps, alg.String())
		assert.Equal(t, "unreachable", r.String())
	}
}

// TestFindPath_TreeDetour checks that cost-aware searches walk around a tree.
func TestFindPath_TreeDetour(t *testing.T) {
	g := mustGrid(t,
		"...",
		".T.",
		"...",
	)
	eng := newEngine(t, g)
	start, goal := cellAt(t, g, 1, 1), cellAt(t, g, 3, 3)
	tree := cellAt(t, g, 2, 2)

	want, ok := minForwardCost(g, start, goal)
	require.True(t, ok)
	require.Equal(t, 4, want)

	for _, alg := range []search.Algorithm{search.Dijkstra, search.AStar} {
		r, err := eng.FindPath(start, goal, alg)
		require.NoError(t, err)
		require.True(t, r.Found)
		assert.Equal(t, want, r.Cost, alg.String())
		assert.False(t, r.Contains(tree), "%s routed through the tree", alg)
		assert.Equal(t, [][2]int{{2, 1}, {3, 1}, {3, 2}, {3, 3}}, coords(r.Steps), alg.String())
	}
}

// TestFindPath_BFSIgnoresCost shows BFS taking the short way through a tree
// while Dijkstra and A* pay one more step to avoid it.
func TestFindPath_BFSIgnoresCost(t *testing.T) {
	g := mustGrid(t,
		".T.",
		"...",
	)
	eng := newEngine(t, g)
	start, goal := cellAt(t, g, 1, 1), cellAt(t, g, 3, 1)

	bfs, err := eng.FindPath(start, goal, search.BreadthFirstSearch)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{2, 1}, {3, 1}}, coords(bfs.Steps))
	assert.Equal(t, 5, bfs.Cost)

	for _, alg := range []search.Algorithm{search.Dijkstra, search.AStar} {
		r, err := eng.FindPath(start, goal, alg)
		require.NoError(t, err)
		assert.Equal(t, [][2]int{{1, 2}, {2, 2}, {3, 2}, {3, 1}}, coords(r.Steps), alg.String())
		assert.Equal(t, 4, r.Cost, alg.String())
	}
}

// TestFindPath_StartIsGoal ensures the reconstruction loop ends immediately.
func TestFindPath_StartIsGoal(t *testing.T) {
	g := mustGrid(t, "..", "b.")
	eng := newEngine(t, g)
	c := cellAt(t, g, 1, 2)

	for _, alg := range search.Algorithms() {
		r, err := eng.FindPath(c, c, alg)
		require.NoError(t, err)
		assert.True(t, r.Found, alg.String())
		assert.Empty(t, r.Steps, alg.String())
		assert.Equal(t, 0, r.Len())
		assert.Equal(t, 0, r.Cost)
	}
}

// TestFindPath_WalledInStart surrounds a grass start with walls.
func TestFindPath_WalledInStart(t *testing.T) {
	g := mustGrid(t,
		"..#..",
		".#.#.",
		"..#..",
	)
	eng := newEngine(t, g)
	start := cellAt(t, g, 3, 2)
	for _, goal := range []*gridgraph.Cell{cellAt(t, g, 1, 1), cellAt(t, g, 5, 3)} {
		for _, alg := range search.Algorithms() {
			r, err := eng.FindPath(start, goal, alg)
			require.NoError(t, err)
			assert.False(t, r.Found, "%s to %s", alg, goal)
		}
	}
}

//----------------------------------------------------------------------------//
// Search behaviour
//----------------------------------------------------------------------------//

// TestFindPath_EarlyExit compares how much each algorithm explores on a
// corridor where start sits next to goal.
func TestFindPath_EarlyExit(t *testing.T) {
	g := mustGrid(t, "..........")
	start, goal := cellAt(t, g, 4, 1), cellAt(t, g, 5, 1)

	want := map[search.Algorithm]int{
		search.BreadthFirstSearch: 10, // exhaustive
		search.Dijkstra:           3,
		search.AStar:              2,
	}
	for alg, expanded := range want {
		var hooked int
		eng := newEngine(t, g, search.WithOnExpand(func(*gridgraph.Cell) { hooked++ }))
		r, err := eng.FindPath(start, goal, alg)
		require.NoError(t, err)
		assert.Equal(t, expanded, r.Expanded, alg.String())
		assert.Equal(t, expanded, hooked, alg.String())
		assert.Equal(t, [][2]int{{5, 1}}, coords(r.Steps))
	}
}

// TestRoute_NextStepAndCost inspects the back-pointer map and recorded costs.
func TestRoute_NextStepAndCost(t *testing.T) {
	g := mustGrid(t, ".b.")
	eng := newEngine(t, g)
	c1, c2, c3 := cellAt(t, g, 1, 1), cellAt(t, g, 2, 1), cellAt(t, g, 3, 1)

	r, err := eng.FindPath(c1, c3, search.Dijkstra)
	require.NoError(t, err)
	n, ok := r.NextStep(c1)
	require.True(t, ok)
	assert.Same(t, c2, n)
	n, ok = r.NextStep(c2)
	require.True(t, ok)
	assert.Same(t, c3, n)
	_, ok = r.NextStep(c3)
	assert.False(t, ok, "goal has no next step")

	for c, want := range map[*gridgraph.Cell]int{c3: 0, c2: 2, c1: 3} {
		got, ok := r.CostTo(c)
		require.True(t, ok)
		assert.Equal(t, want, got, c.String())
	}
	assert.Equal(t, 3, r.Cost) // enter bush (2) then goal (1)

	bfs, err := eng.FindPath(c1, c3, search.BreadthFirstSearch)
	require.NoError(t, err)
	depth, ok := bfs.CostTo(c1)
	require.True(t, ok)
	assert.Equal(t, 2, depth)
}

// TestFindPath_Deterministic repeats searches and expects identical routes.
func TestFindPath_Deterministic(t *testing.T) {
	g := mustGrid(t,
		"......",
		"......",
		"......",
		"......",
	)
	eng := newEngine(t, g)
	start, goal := cellAt(t, g, 1, 1), cellAt(t, g, 6, 4)
	for _, alg := range search.Algorithms() {
		first, err := eng.FindPath(start, goal, alg)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := eng.FindPath(start, goal, alg)
			require.NoError(t, err)
			assert.Equal(t, coords(first.Steps), coords(again.Steps), alg.String())
		}
	}
}

// TestFindPath_TerrainChangeBetweenSearches verifies nothing is cached.
func TestFindPath_TerrainChangeBetweenSearches(t *testing.T) {
	g := mustGrid(t, "...", "...")
	eng := newEngine(t, g)
	start, goal := cellAt(t, g, 1, 1), cellAt(t, g, 3, 1)

	r, err := eng.FindPath(start, goal, search.AStar)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	require.NoError(t, g.SetTerrain(2, 1, gridgraph.Wall))
	r, err = eng.FindPath(start, goal, search.AStar)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Len())

	require.NoError(t, g.SetTerrain(2, 2, gridgraph.Wall))
	r, err = eng.FindPath(start, goal, search.AStar)
	require.NoError(t, err)
	assert.False(t, r.Found)
}

//----------------------------------------------------------------------------//
// Properties over random grids
//----------------------------------------------------------------------------//

// TestFindPath_RandomGridProperties checks, on seeded random maps, that
// routes are contiguous, avoid walls, end at the goal, agree on
// reachability, and that Dijkstra and A* match the brute-force minimum.
func TestFindPath_RandomGridProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	terrains := []gridgraph.Terrain{gridgraph.Grass, gridgraph.Grass, gridgraph.Bush, gridgraph.Tree, gridgraph.Wall}

	for round := 0; round < 60; round++ {
		w, h := 1+rng.Intn(8), 1+rng.Intn(8)
		g, err := gridgraph.Build(w, h, func(x, y int) *gridgraph.Cell {
			return gridgraph.NewCell(x, y, terrains[rng.Intn(len(terrains))])
		})
		require.NoError(t, err)

		var open []*gridgraph.Cell
		for _, c := range g.Cells() {
			if c.Passable() {
				open = append(open, c)
			}
		}
		if len(open) == 0 {
			continue
		}
		start := open[rng.Intn(len(open))]
		goal := open[rng.Intn(len(open))]
		eng := newEngine(t, g)
		wantCost, reachable := minForwardCost(g, start, goal)
		require.Equal(t, reachable, g.SameRegion(start, goal))

		routes := map[search.Algorithm]*search.Route{}
		for _, alg := range search.Algorithms() {
			r, err := eng.FindPath(start, goal, alg)
			require.NoError(t, err)
			routes[alg] = r
			require.Equal(t, reachable, r.Found, "round %d %s %s→%s\n%v", round, alg, start, goal, g.Rows())
			if !r.Found {
				continue
			}
			prev := start
			for _, s := range r.Steps {
				assert.True(t, adjacent(g, prev, s), "round %d %s: %s→%s not adjacent", round, alg, prev, s)
				assert.True(t, s.Passable(), "round %d %s: stepped on wall %s", round, alg, s)
				prev = s
			}
			assert.Same(t, goal, prev, "round %d %s: route does not end at goal", round, alg)
		}
		if reachable {
			assert.Equal(t, wantCost, routes[search.Dijkstra].Cost, "round %d dijkstra", round)
			assert.Equal(t, wantCost, routes[search.AStar].Cost, "round %d astar", round)
			assert.LessOrEqual(t, routes[search.AStar].Expanded, routes[search.BreadthFirstSearch].Expanded)
		}
	}
}

// TestFindPath_UniformGrassSameLength compares route lengths on open grids.
func TestFindPath_UniformGrassSameLength(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for round := 0; round < 30; round++ {
		g, err := gridgraph.Build(2+rng.Intn(7), 2+rng.Intn(7), nil)
		require.NoError(t, err)
		cells := g.Cells()
		start, goal := cells[rng.Intn(len(cells))], cells[rng.Intn(len(cells))]
		if start == goal {
			continue
		}
		eng := newEngine(t, g)
		manhattan := abs(start.X()-goal.X()) + abs(start.Y()-goal.Y())
		for _, alg := range search.Algorithms() {
			r, err := eng.FindPath(start, goal, alg)
			require.NoError(t, err)
			assert.Equal(t, manhattan, r.Len(), "round %d %s", round, alg)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

//----------------------------------------------------------------------------//
// Errors and options
//----------------------------------------------------------------------------//

func TestNewEngine_NilGraph(t *testing.T) {
	eng, err := search.NewEngine(nil)
	assert.Nil(t, eng)
	assert.ErrorIs(t, err, search.ErrNilGraph)
}

func TestFindPath_Errors(t *testing.T) {
	g := mustGrid(t, "..")
	other := mustGrid(t, "..")
	eng := newEngine(t, g)
	a := cellAt(t, g, 1, 1)

	_, err := eng.FindPath(nil, a, search.BreadthFirstSearch)
	assert.ErrorIs(t, err, search.ErrNilCell)
	_, err = eng.FindPath(a, nil, search.Dijkstra)
	assert.ErrorIs(t, err, search.ErrNilCell)

	_, err = eng.FindPath(a, cellAt(t, other, 2, 1), search.AStar)
	assert.ErrorIs(t, err, gridgraph.ErrUnknownCell)

	_, err = eng.FindPath(a, a, search.Algorithm(7))
	assert.ErrorIs(t, err, search.ErrUnknownAlgorithm)
}

// TestFindPath_LogsUnreachable checks the debug diagnostic.
func TestFindPath_LogsUnreachable(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := mustGrid(t, ".#.")
	eng := newEngine(t, g, search.WithLogger(logger))

	r, err := eng.FindPath(cellAt(t, g, 1, 1), cellAt(t, g, 3, 1), search.Dijkstra)
	require.NoError(t, err)
	require.False(t, r.Found)
	assert.Contains(t, buf.String(), "goal unreachable")
	assert.Contains(t, buf.String(), "algorithm=dijkstra")
}

func TestAlgorithm_Parse(t *testing.T) {
	cases := map[string]search.Algorithm{
		"bfs":                  search.BreadthFirstSearch,
		"Breadth-First Search": search.BreadthFirstSearch,
		"0":                    search.BreadthFirstSearch,
		"DIJKSTRA":             search.Dijkstra,
		"1":                    search.Dijkstra,
		" a* ":                 search.AStar,
		"astar":                search.AStar,
		"2":                    search.AStar,
	}
	for in, want := range cases {
		got, err := search.ParseAlgorithm(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "3", "-1", "greedy"} {
		_, err := search.ParseAlgorithm(in)
		assert.ErrorIs(t, err, search.ErrUnknownAlgorithm, in)
	}

	var a search.Algorithm
	require.NoError(t, a.UnmarshalText([]byte("astar")))
	assert.Equal(t, search.AStar, a)
	text, err := search.Dijkstra.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "dijkstra", string(text))
	_, err = search.Algorithm(5).MarshalText()
	assert.ErrorIs(t, err, search.ErrUnknownAlgorithm)
}

func TestAlgorithm_Next(t *testing.T) {
	assert.Equal(t, search.Dijkstra, search.BreadthFirstSearch.Next())
	assert.Equal(t, search.AStar, search.Dijkstra.Next())
	assert.Equal(t, search.BreadthFirstSearch, search.AStar.Next())
	assert.Equal(t, search.BreadthFirstSearch, search.Algorithm(-3).Next())
	assert.Equal(t, "A*", search.AStar.Title())
	assert.Equal(t, "algorithm(9)", search.Algorithm(9).String())
}
