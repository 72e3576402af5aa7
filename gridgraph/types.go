// Package gridgraph defines core types, terrain classes, and sentinel errors
// for the gridgraph subpackage of github.com/katalvlaran/tilepath.
package gridgraph

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrInvalidDimensions indicates a non-positive or unparseable width/height.
	ErrInvalidDimensions = errors.New("gridgraph: width and height must be positive integers")
	// ErrUnknownCell indicates a cell that does not belong to the queried graph.
	ErrUnknownCell = errors.New("gridgraph: cell does not belong to this graph")
	// ErrOutOfBounds indicates a coordinate pair outside the grid.
	ErrOutOfBounds = errors.New("gridgraph: coordinates out of bounds")
	// ErrFactoryCell indicates the cell factory returned nil or a misplaced cell.
	ErrFactoryCell = errors.New("gridgraph: cell factory returned an invalid cell")
	// ErrNonRectangular indicates map rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrUnknownTerrain indicates a terrain name or map rune outside the closed set.
	ErrUnknownTerrain = errors.New("gridgraph: unknown terrain")
)

// Terrain classifies a cell. The set is closed: Grass, Bush, Tree, Wall.
type Terrain int

const (
	// Grass is open ground, cost 1.
	Grass Terrain = iota
	// Bush slows movement, cost 2.
	Bush
	// Tree slows movement further, cost 4.
	Tree
	// Wall cannot be entered.
	Wall
)

// terrainInfo is the fixed lookup table behind Cost, Rune and String.
var terrainInfo = [...]struct {
	name string
	sym  rune
	cost int
}{
	Grass: {"grass", '.', 1},
	Bush:  {"bush", 'b', 2},
	Tree:  {"tree", 'T', 4},
	Wall:  {"wall", '#', 0},
}

// Terrains returns every terrain class in declaration order.
func Terrains() []Terrain {
	return []Terrain{Grass, Bush, Tree, Wall}
}

// Valid reports whether t is one of the four terrain classes.
func (t Terrain) Valid() bool {
	return t >= Grass && t <= Wall
}

// Cost returns the traversal cost of entering a cell of this terrain.
// Wall reports 0, but Wall is never used as a weight: see Passable.
func (t Terrain) Cost() int {
	if !t.Valid() {
		return 0
	}
	return terrainInfo[t].cost
}

// Passable reports whether a search may step onto this terrain.
func (t Terrain) Passable() bool {
	return t.Valid() && t != Wall
}

// Rune returns the single-character map form of t.
func (t Terrain) Rune() rune {
	if !t.Valid() {
		return '?'
	}
	return terrainInfo[t].sym
}

// String returns the lower-case name of t.
func (t Terrain) String() string {
	if !t.Valid() {
		return fmt.Sprintf("terrain(%d)", int(t))
	}
	return terrainInfo[t].name
}

// ParseTerrain accepts a terrain name ("grass", "Bush", ...) or its map rune.
func ParseTerrain(s string) (Terrain, error) {
	s = strings.TrimSpace(s)
	for _, t := range Terrains() {
		if strings.EqualFold(s, terrainInfo[t].name) || s == string(terrainInfo[t].sym) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTerrain, s)
}

// TerrainFromRune maps a map rune ('.', 'b', 'T', '#') to its terrain.
func TerrainFromRune(r rune) (Terrain, error) {
	for _, t := range Terrains() {
		if terrainInfo[t].sym == r {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: rune %q", ErrUnknownTerrain, r)
}

// CellID is the dense, construction-order identifier of a cell.
// Presentation layers key their per-cell state by CellID.
type CellID int

// Cell is one grid position. Coordinates are 1-based and fixed at
// construction; only the terrain may change afterwards.
// A cell is identified by its pointer: searches never compare coordinates.
type Cell struct {
	id      CellID
	x, y    int
	terrain Terrain
	owner   *GridGraph
}

// NewCell creates a detached cell at 1-based (x, y). It becomes part of a
// graph when returned from the CellFactory passed to Build.
func NewCell(x, y int, t Terrain) *Cell {
	return &Cell{id: -1, x: x, y: y, terrain: t}
}

// ID returns the cell's identifier within its graph (-1 while detached).
func (c *Cell) ID() CellID { return c.id }

// X returns the 1-based column.
func (c *Cell) X() int { return c.x }

// Y returns the 1-based row.
func (c *Cell) Y() int { return c.y }

// Terrain returns the current terrain class.
func (c *Cell) Terrain() Terrain { return c.terrain }

// SetTerrain changes the terrain class. Adjacency is unaffected.
func (c *Cell) SetTerrain(t Terrain) { c.terrain = t }

// Cost returns the traversal cost derived from the terrain.
func (c *Cell) Cost() int { return c.terrain.Cost() }

// Passable reports whether the cell may be stepped onto.
func (c *Cell) Passable() bool { return c.terrain.Passable() }

// String formats the cell as "(x,y)".
func (c *Cell) String() string {
	if c == nil {
		return "(nil)"
	}
	return fmt.Sprintf("(%d,%d)", c.x, c.y)
}

// CellFactory creates the cell placed at 1-based (x, y). The returned cell
// must report exactly those coordinates.
type CellFactory func(x, y int) *Cell

// GridGraph is a W×H grid of cells with fixed 4-directional adjacency.
// cells is indexed [x][y] with 0-based indices; adjacency is precomputed
// once in Build and never changes, terrain does.
type GridGraph struct {
	width, height int
	cells         [][]*Cell
	order         []*Cell   // cells by CellID
	adjacency     [][]*Cell // neighbours by CellID
}

// neighborOffsets lists the orthogonal directions in neighbour order:
// up (y+1), right (x+1), down (y-1), left (x-1).
var neighborOffsets = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
