package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/render"
	"github.com/katalvlaran/tilepath/sandbox"
)

// Draw paints the grid with y=1 on the bottom row, followed by two status
// lines, and shows the result.
func (a *App) Draw() {
	a.screen.Clear()
	g := a.sb.Grid()
	ov := a.sb.Overlay()
	unit, hasUnit := a.sb.Unit()

	var last *gridgraph.Cell
	shown := make(map[*gridgraph.Cell]bool, a.revealed)
	for _, c := range a.replay[:a.revealed] {
		shown[c] = true
		last = c
	}

	for _, c := range g.Cells() {
		col, row := screenPos(g, c)
		style := tcell.StyleDefault.
			Background(tcell.FromImageColor(render.CellColor(c, ov.Mark(c.ID())))).
			Foreground(tcell.ColorBlack)
		if shown[c] {
			style = style.Foreground(tcell.ColorWhite).Bold(true)
		}
		if c.X() == a.cx && c.Y() == a.cy {
			style = style.Reverse(true)
		}
		ch := cellRune(c, ov.Mark(c.ID()))
		switch {
		case hasUnit && c == unit:
			ch = '@'
		case c == last && ov.Mark(c.ID()) != sandbox.MarkStart && ov.Mark(c.ID()) != sandbox.MarkGoal:
			ch = '*'
		}
		a.screen.SetContent(col, row, ch, nil, style)
		a.screen.SetContent(col+1, row, ' ', nil, style)
	}

	a.putLine(g.Height(), a.statusLine())
	a.putLine(g.Height()+1, a.cursorLine())
	a.screen.Show()
}

// screenPos maps a cell to its terminal column and row.
func screenPos(g *gridgraph.GridGraph, c *gridgraph.Cell) (int, int) {
	return (c.X() - 1) * cellColumns, g.Height() - c.Y()
}

// cellRune is the character drawn for a cell: S and G for the endpoints,
// the terrain rune otherwise.
func cellRune(c *gridgraph.Cell, m sandbox.Mark) rune {
	switch m {
	case sandbox.MarkStart:
		return 'S'
	case sandbox.MarkGoal:
		return 'G'
	default:
		return c.Terrain().Rune()
	}
}

// statusLine shows the pending message, the replay progress, or the
// algorithm and route summary with the unit's walk.
func (a *App) statusLine() string {
	alg := a.sb.Algorithm().Title()
	if a.message != "" {
		return fmt.Sprintf("[%s] %s", alg, a.message)
	}
	if a.replay != nil {
		return fmt.Sprintf("[%s] replay: %d/%d expanded", alg, a.revealed, len(a.replay))
	}
	r := a.sb.Route()
	switch {
	case r == nil:
		return fmt.Sprintf("[%s] set start (s) and goal (g)", alg)
	case !r.Found && a.sb.Disconnected():
		return fmt.Sprintf("[%s] goal is not currently reachable: start and goal are in separate regions (%d)",
			alg, a.sb.Regions())
	case !r.Found:
		return fmt.Sprintf("[%s] goal is not currently reachable", alg)
	}
	line := fmt.Sprintf("[%s] route: %d steps, cost %d, expanded %d", alg, r.Len(), r.Cost, r.Expanded)
	if _, ok := a.sb.Unit(); ok {
		line += fmt.Sprintf(", unit %d moves %s", a.sb.UnitMoves(), seconds(a.sb.UnitElapsed()))
	}
	return line
}

// cursorLine describes the cell under the cursor.
func (a *App) cursorLine() string {
	c, err := a.sb.Grid().Cell(a.cx, a.cy)
	if err != nil {
		return ""
	}
	line := fmt.Sprintf("%s %s", c, c.Terrain())
	if label := a.sb.Overlay().Label(c.ID()); label != "" {
		line += " [" + label + "]"
	}
	return line
}

func (a *App) putLine(row int, s string) {
	col := 0
	for _, r := range s {
		a.screen.SetContent(col, row, r, nil, tcell.StyleDefault)
		col++
	}
}
