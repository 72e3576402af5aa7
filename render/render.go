package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/sandbox"
)

// Palette colours. Marks replace the terrain colour of a cell.
var (
	GrassColor = color.RGBA{R: 124, G: 200, B: 92, A: 255}
	BushColor  = color.RGBA{R: 86, G: 140, B: 60, A: 255}
	TreeColor  = color.RGBA{R: 34, G: 84, B: 38, A: 255}
	WallColor  = color.RGBA{R: 64, G: 64, B: 64, A: 255}

	PathColor  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	StartColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	GoalColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	UnitColor  = color.RGBA{R: 30, G: 90, B: 255, A: 255}

	gridColor  = color.RGBA{R: 0, G: 0, B: 0, A: 96}
	labelColor = color.Black
)

// Option configures a snapshot.
type Option func(*Options)

// Options controls the snapshot geometry and decorations.
type Options struct {
	// CellSize is the side of one cell in pixels.
	CellSize int
	// Labels draws the overlay labels (costs, START/END, coordinates).
	Labels bool
	// GridLines outlines every cell.
	GridLines bool
}

// DefaultOptions returns 32px cells with labels and grid lines.
func DefaultOptions() Options {
	return Options{CellSize: 32, Labels: true, GridLines: true}
}

// WithCellSize sets the cell side in pixels. Values below 1 are ignored.
func WithCellSize(px int) Option {
	return func(o *Options) {
		if px > 0 {
			o.CellSize = px
		}
	}
}

// WithLabels toggles overlay labels.
func WithLabels(on bool) Option {
	return func(o *Options) { o.Labels = on }
}

// WithGridLines toggles cell outlines.
func WithGridLines(on bool) Option {
	return func(o *Options) { o.GridLines = on }
}

// TerrainColor returns the fill colour of t.
func TerrainColor(t gridgraph.Terrain) color.Color {
	switch t {
	case gridgraph.Bush:
		return BushColor
	case gridgraph.Tree:
		return TreeColor
	case gridgraph.Wall:
		return WallColor
	default:
		return GrassColor
	}
}

// CellColor returns the colour a cell is drawn with: its mark colour when
// marked, its terrain colour otherwise.
func CellColor(c *gridgraph.Cell, m sandbox.Mark) color.Color {
	switch m {
	case sandbox.MarkPath:
		return PathColor
	case sandbox.MarkStart:
		return StartColor
	case sandbox.MarkGoal:
		return GoalColor
	default:
		return TerrainColor(c.Terrain())
	}
}

// Snapshot draws the sandbox grid with y=1 as the bottom row.
func Snapshot(s *sandbox.Sandbox, opts ...Option) image.Image {
	return draw(s, opts).Image()
}

// EncodePNG writes a snapshot as PNG to w.
func EncodePNG(s *sandbox.Sandbox, w io.Writer, opts ...Option) error {
	if err := draw(s, opts).EncodePNG(w); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// SavePNG writes a snapshot as PNG to path.
func SavePNG(s *sandbox.Sandbox, path string, opts ...Option) error {
	if err := draw(s, opts).SavePNG(path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

func draw(s *sandbox.Sandbox, opts []Option) *gg.Context {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	g := s.Grid()
	cs := float64(o.CellSize)
	dc := gg.NewContext(g.Width()*o.CellSize, g.Height()*o.CellSize)
	dc.SetColor(color.White)
	dc.Clear()

	ov := s.Overlay()
	for _, c := range g.Cells() {
		x, y := origin(g, c, cs)
		dc.DrawRectangle(x, y, cs, cs)
		dc.SetColor(CellColor(c, ov.Mark(c.ID())))
		dc.Fill()
	}

	if unit, ok := s.Unit(); ok {
		x, y := origin(g, unit, cs)
		dc.DrawCircle(x+cs/2, y+cs/2, cs/3)
		dc.SetColor(UnitColor)
		dc.Fill()
	}

	if o.GridLines {
		dc.SetColor(gridColor)
		dc.SetLineWidth(1)
		for _, c := range g.Cells() {
			x, y := origin(g, c, cs)
			dc.DrawRectangle(x+0.5, y+0.5, cs-1, cs-1)
			dc.Stroke()
		}
	}

	if o.Labels {
		dc.SetColor(labelColor)
		for _, c := range g.Cells() {
			label := ov.Label(c.ID())
			if label == "" {
				continue
			}
			x, y := origin(g, c, cs)
			dc.DrawStringAnchored(label, x+cs/2, y+cs/2, 0.5, 0.5)
		}
	}
	return dc
}

// origin returns the top-left pixel of c. Row y=1 is drawn at the bottom.
func origin(g *gridgraph.GridGraph, c *gridgraph.Cell, cs float64) (float64, float64) {
	return float64(c.X()-1) * cs, float64(g.Height()-c.Y()) * cs
}
