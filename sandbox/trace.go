package sandbox

import "github.com/katalvlaran/tilepath/gridgraph"

// Trace records the cells a search expands, in expansion order. Hand
// Record to search.WithOnExpand and the same Trace to WithTrace; the
// sandbox then clears it before every search so it always holds the
// last one.
type Trace struct {
	cells []*gridgraph.Cell
}

// NewTrace returns an empty Trace.
func NewTrace() *Trace { return &Trace{} }

// Record appends c.
func (t *Trace) Record(c *gridgraph.Cell) { t.cells = append(t.cells, c) }

// Len returns the number of recorded expansions.
func (t *Trace) Len() int { return len(t.cells) }

// Cells returns a copy of the recorded cells.
func (t *Trace) Cells() []*gridgraph.Cell {
	return append([]*gridgraph.Cell(nil), t.cells...)
}

func (t *Trace) reset() { t.cells = t.cells[:0] }
