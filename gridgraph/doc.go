// Package gridgraph treats a rectangular grid of terrain cells as a graph
// with fixed 4-directional adjacency, the substrate for the search package.
//
// What:
//
//   - Cell holds immutable 1-based coordinates, a stable CellID and a mutable
//     Terrain (Grass, Bush, Tree, Wall) that determines the traversal cost.
//   - GridGraph owns W×H cells indexed [x][y] and precomputes, once, the
//     in-bounds orthogonal neighbours of every cell (up, right, down, left).
//   - Regions identifies contiguous areas of passable cells.
//
// Terrain costs:
//
//	Grass 1   Bush 2   Tree 4   Wall impassable
//
// Adjacency is symmetric and independent of terrain: a Wall still lists its
// neighbours. Only searches refuse to step onto it.
//
// Complexity:
//
//   - Build:     O(W×H) time and memory.
//   - Neighbors: O(1).
//   - Regions:   O(W×H×4), Memory: O(W×H).
//
// Errors:
//
//   - ErrInvalidDimensions: width or height ≤ 0, or unparseable input.
//   - ErrUnknownCell: a nil cell or one created by another graph.
//   - ErrOutOfBounds: coordinates outside 1..W × 1..H.
//   - ErrFactoryCell: the CellFactory returned nil, a misplaced cell or one
//     owned by another graph. A failed Build claims none of the cells.
//   - ErrNonRectangular, ErrUnknownTerrain: malformed map rows.
//
// Concurrency: adjacency is immutable after Build and safe for concurrent
// readers. Terrain is not synchronised; callers serialise painting and
// searching.
package gridgraph
