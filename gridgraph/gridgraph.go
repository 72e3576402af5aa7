package gridgraph

import (
	"fmt"
	"strconv"
	"strings"
)

// Build allocates a width×height grid through factory and precomputes the
// adjacency of every cell. A nil factory produces Grass cells.
// Returns ErrInvalidDimensions if width or height is not positive, and
// ErrFactoryCell if the factory returns nil, a cell at other coordinates, or
// a cell already owned by a graph. A failed Build claims no cells.
// Complexity: O(W×H) time and memory.
func Build(width, height int, factory CellFactory) (*GridGraph, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %d×%d", ErrInvalidDimensions, width, height)
	}
	if factory == nil {
		factory = func(x, y int) *Cell { return NewCell(x, y, Grass) }
	}

	gg := &GridGraph{
		width:     width,
		height:    height,
		cells:     make([][]*Cell, width),
		order:     make([]*Cell, 0, width*height),
		adjacency: make([][]*Cell, width*height),
	}
	// Cells are claimed only once every factory result has been accepted,
	// so a failed Build leaves them free for another graph.
	for x := 0; x < width; x++ {
		gg.cells[x] = make([]*Cell, height)
		for y := 0; y < height; y++ {
			c := factory(x+1, y+1)
			if c == nil {
				return nil, fmt.Errorf("%w: nil cell at (%d,%d)", ErrFactoryCell, x+1, y+1)
			}
			if c.x != x+1 || c.y != y+1 {
				return nil, fmt.Errorf("%w: asked for (%d,%d), got %s", ErrFactoryCell, x+1, y+1, c)
			}
			if c.owner != nil {
				return nil, fmt.Errorf("%w: cell %s already belongs to a graph", ErrFactoryCell, c)
			}
			gg.cells[x][y] = c
			gg.order = append(gg.order, c)
		}
	}
	for i, c := range gg.order {
		c.id = CellID(i)
		c.owner = gg
	}

	for _, c := range gg.order {
		nbrs := make([]*Cell, 0, len(neighborOffsets))
		x0, y0 := c.x-1, c.y-1
		for _, d := range neighborOffsets {
			nx, ny := x0+d[0], y0+d[1]
			if nx < 0 || nx >= width || ny < 0 || ny >= height {
				continue
			}
			nbrs = append(nbrs, gg.cells[nx][ny])
		}
		gg.adjacency[c.id] = nbrs
	}

	return gg, nil
}

// ParseDimensions converts user-entered width and height text into positive
// integers. Empty, non-numeric and non-positive values yield
// ErrInvalidDimensions.
func ParseDimensions(width, height string) (int, int, error) {
	w, err := parseDimension("width", width)
	if err != nil {
		return 0, 0, err
	}
	h, err := parseDimension("height", height)
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

func parseDimension(name, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: %s is empty", ErrInvalidDimensions, name)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidDimensions, name, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s %d", ErrInvalidDimensions, name, n)
	}
	return n, nil
}

// FromRows builds a grid from its map form: one string per row, one rune per
// cell ('.' Grass, 'b' Bush, 'T' Tree, '#' Wall). rows[0] is y=1.
func FromRows(rows ...string) (*GridGraph, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty map", ErrInvalidDimensions)
	}
	grid := make([][]rune, len(rows))
	for i, row := range rows {
		grid[i] = []rune(row)
		if len(grid[i]) != len(grid[0]) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, i+1, len(grid[i]), len(grid[0]))
		}
	}

	var parseErr error
	gg, err := Build(len(grid[0]), len(grid), func(x, y int) *Cell {
		t, err := TerrainFromRune(grid[y-1][x-1])
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("at (%d,%d): %w", x, y, err)
		}
		return NewCell(x, y, t)
	})
	if err != nil {
		return nil, err
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return gg, nil
}

// Rows returns the map form of the current terrain; the inverse of FromRows.
func (gg *GridGraph) Rows() []string {
	rows := make([]string, gg.height)
	var sb strings.Builder
	for y := 0; y < gg.height; y++ {
		sb.Reset()
		for x := 0; x < gg.width; x++ {
			sb.WriteRune(gg.cells[x][y].terrain.Rune())
		}
		rows[y] = sb.String()
	}
	return rows
}

// Width returns the number of columns.
func (gg *GridGraph) Width() int { return gg.width }

// Height returns the number of rows.
func (gg *GridGraph) Height() int { return gg.height }

// Len returns the number of cells, W×H.
func (gg *GridGraph) Len() int { return len(gg.order) }

// InBounds reports whether 1-based (x,y) lies within the grid.
// Complexity: O(1).
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 1 && x <= gg.width && y >= 1 && y <= gg.height
}

// Cell returns the cell at 1-based (x,y), or ErrOutOfBounds.
func (gg *GridGraph) Cell(x, y int) (*Cell, error) {
	if !gg.InBounds(x, y) {
		return nil, fmt.Errorf("%w: (%d,%d) in %d×%d grid", ErrOutOfBounds, x, y, gg.width, gg.height)
	}
	return gg.cells[x-1][y-1], nil
}

// Cells returns every cell ordered by CellID. The slice is a copy.
func (gg *GridGraph) Cells() []*Cell {
	out := make([]*Cell, len(gg.order))
	copy(out, gg.order)
	return out
}

// Contains reports whether c was created by this graph.
func (gg *GridGraph) Contains(c *Cell) bool {
	return c != nil && c.owner == gg
}

// Neighbors returns the precomputed in-bounds orthogonal neighbours of c in
// the fixed order up, right, down, left. Walls are included: adjacency does
// not depend on terrain. The returned slice must not be modified.
// Returns ErrUnknownCell for nil or foreign cells.
// Complexity: O(1).
func (gg *GridGraph) Neighbors(c *Cell) ([]*Cell, error) {
	if !gg.Contains(c) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCell, c)
	}
	return gg.adjacency[c.id], nil
}

// SetTerrain changes the terrain of the cell at 1-based (x,y).
func (gg *GridGraph) SetTerrain(x, y int, t Terrain) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownTerrain, int(t))
	}
	c, err := gg.Cell(x, y)
	if err != nil {
		return err
	}
	c.SetTerrain(t)
	return nil
}
