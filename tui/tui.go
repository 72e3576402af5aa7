package tui

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/render"
	"github.com/katalvlaran/tilepath/sandbox"
)

// cellColumns is how many terminal columns one grid cell takes.
const cellColumns = 2

// Option configures an App.
type Option func(*Options)

// Options holds the App settings.
type Options struct {
	Logger *slog.Logger
	// SnapshotPath is where the p key writes a PNG.
	SnapshotPath string
	// Tick is the unit walking interval.
	Tick time.Duration
	// Render is passed to render.SavePNG on export.
	Render []render.Option
}

// DefaultOptions returns a discarding logger, tilepath.png and 250ms ticks.
func DefaultOptions() Options {
	return Options{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		SnapshotPath: "tilepath.png",
		Tick:         250 * time.Millisecond,
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithSnapshotPath sets the PNG export path.
func WithSnapshotPath(path string) Option {
	return func(o *Options) {
		if path != "" {
			o.SnapshotPath = path
		}
	}
}

// WithTick sets the unit walking interval.
func WithTick(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.Tick = d
		}
	}
}

// WithRenderOptions forwards options to the PNG export.
func WithRenderOptions(opts ...render.Option) Option {
	return func(o *Options) { o.Render = append(o.Render, opts...) }
}

// App is the terminal front end of a sandbox. The screen must be
// initialised by the caller.
type App struct {
	screen  tcell.Screen
	sb      *sandbox.Sandbox
	opts    Options
	log     *slog.Logger
	cx, cy  int    // cursor, 1-based grid coordinates
	message string // shown on the status line until the next key

	// replay holds the expansion order being revealed, one cell per tick;
	// revealed counts the cells shown so far.
	replay   []*gridgraph.Cell
	revealed int
}

// New returns an App with the cursor on (1,1).
func New(screen tcell.Screen, sb *sandbox.Sandbox, opts ...Option) *App {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &App{screen: screen, sb: sb, opts: o, log: o.Logger, cx: 1, cy: 1}
}

// Cursor returns the cursor position.
func (a *App) Cursor() (int, int) { return a.cx, a.cy }

// Message returns the current status message.
func (a *App) Message() string { return a.message }

// Replaying reports whether an expansion replay is in progress.
func (a *App) Replaying() bool { return a.replay != nil }

// Run draws and handles events until the user quits or the screen is
// finalised. A ticker posts interrupt events that walk the unit.
func (a *App) Run() error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(a.opts.Tick)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	a.Draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !a.HandleEvent(ev) {
			return nil
		}
		a.Draw()
	}
}

// HandleEvent applies one event and reports whether the app should keep
// running.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventInterrupt:
		a.tick()
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	a.message = ""
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.move(0, 1)
	case tcell.KeyDown:
		a.move(0, -1)
	case tcell.KeyLeft:
		a.move(-1, 0)
	case tcell.KeyRight:
		a.move(1, 0)
	case tcell.KeyEnter:
		a.report(a.sb.SpawnUnit())
	case tcell.KeyRune:
		a.handleRune(ev.Rune())
	}
	return true
}

func (a *App) handleRune(r rune) {
	switch r {
	case 's':
		a.edited(a.sb.SetStart(a.cx, a.cy))
	case 'g':
		a.edited(a.sb.SetGoal(a.cx, a.cy))
	case '1', 'q':
		a.edited(a.sb.Paint(a.cx, a.cy, gridgraph.Grass))
	case '2', 'w':
		a.edited(a.sb.Paint(a.cx, a.cy, gridgraph.Bush))
	case '3', 'e':
		a.edited(a.sb.Paint(a.cx, a.cy, gridgraph.Tree))
	case '4', 'r':
		a.edited(a.sb.Paint(a.cx, a.cy, gridgraph.Wall))
	case 'v':
		a.startReplay()
	case 'a':
		a.stopReplay()
		if err := a.sb.Selector().Cycle(); err != nil {
			a.report(err)
			return
		}
		a.message = "algorithm: " + a.sb.Algorithm().Title()
	case 'c', ' ':
		if a.sb.ToggleCoordinates() {
			a.message = "block coordinates on"
		} else {
			a.message = "block coordinates off"
		}
	case 'p':
		a.export()
	}
}

func (a *App) move(dx, dy int) {
	g := a.sb.Grid()
	if g.InBounds(a.cx+dx, a.cy+dy) {
		a.cx += dx
		a.cy += dy
	}
}

func (a *App) report(err error) {
	if err != nil {
		a.message = err.Error()
	}
}

// edited reports the result of a change to the grid or endpoints. Any
// replay in progress shows a search that no longer exists, so it stops.
func (a *App) edited(err error) {
	a.stopReplay()
	a.report(err)
}

func (a *App) startReplay() {
	cells := a.sb.Expansion()
	if len(cells) == 0 {
		a.stopReplay()
		a.message = "nothing to replay"
		return
	}
	a.replay, a.revealed = cells, 0
}

func (a *App) stopReplay() {
	a.replay, a.revealed = nil, 0
}

func (a *App) export() {
	if err := render.SavePNG(a.sb, a.opts.SnapshotPath, a.opts.Render...); err != nil {
		a.log.Error("snapshot failed", slog.Any("error", err))
		a.message = err.Error()
		return
	}
	a.log.Info("snapshot saved", slog.String("path", a.opts.SnapshotPath))
	a.message = "saved " + a.opts.SnapshotPath
}

// tick advances the unit and the replay, announcing when either ends.
func (a *App) tick() {
	if _, moved := a.sb.StepUnit(); moved && a.sb.UnitArrived() {
		a.message = fmt.Sprintf("unit arrived after %d moves in %s",
			a.sb.UnitMoves(), seconds(a.sb.UnitElapsed()))
	}
	if a.replay == nil {
		return
	}
	a.revealed++
	if a.revealed >= len(a.replay) {
		a.message = fmt.Sprintf("replay done: %d cells expanded", len(a.replay))
		a.stopReplay()
	}
}

// seconds formats d with one decimal, e.g. "1.2s".
func seconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
