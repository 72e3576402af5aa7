package sandbox

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/tilepath/gridgraph"
)

var (
	// ErrNilDependency is returned by New when the grid, engine or selector
	// is missing, or when the engine searches a different grid.
	ErrNilDependency = errors.New("sandbox: grid, engine and selector are required")

	// ErrWallStart is returned by SetStart for a Wall cell.
	ErrWallStart = errors.New("sandbox: can't start on a Wall")

	// ErrWallGoal is returned by SetGoal for a Wall cell.
	ErrWallGoal = errors.New("sandbox: can't end on a Wall")

	// ErrWallEndpoint matches both ErrWallStart and ErrWallGoal via errors.Is.
	ErrWallEndpoint = errors.New("sandbox: endpoint on a Wall")

	// ErrNoRoute is returned by SpawnUnit when there is no route to walk.
	ErrNoRoute = errors.New("sandbox: no route to walk")
)

// wallError ties a specific wall message to ErrWallEndpoint.
type wallError struct{ err error }

func (e wallError) Error() string        { return e.err.Error() }
func (e wallError) Is(target error) bool { return target == ErrWallEndpoint || target == e.err }

// Mark is the presentation state of a cell.
type Mark int

const (
	// MarkNone is an ordinary cell.
	MarkNone Mark = iota
	// MarkPath is a cell on the current route.
	MarkPath
	// MarkStart is the start endpoint.
	MarkStart
	// MarkGoal is the goal endpoint.
	MarkGoal
)

// String returns "none", "path", "start" or "goal".
func (m Mark) String() string {
	switch m {
	case MarkPath:
		return "path"
	case MarkStart:
		return "start"
	case MarkGoal:
		return "goal"
	default:
		return "none"
	}
}

// Label texts written on the endpoints.
const (
	StartLabel = "START"
	GoalLabel  = "END"
)

// Overlay is the display facet of the grid: a mark and a text label per
// cell, indexed by gridgraph.CellID. Searches never read it.
type Overlay struct {
	marks  []Mark
	labels []string
}

func newOverlay(n int) *Overlay {
	return &Overlay{marks: make([]Mark, n), labels: make([]string, n)}
}

// Mark returns the mark of cell id, MarkNone when id is out of range.
func (o *Overlay) Mark(id gridgraph.CellID) Mark {
	if int(id) < 0 || int(id) >= len(o.marks) {
		return MarkNone
	}
	return o.marks[id]
}

// Label returns the label of cell id, "" when id is out of range.
func (o *Overlay) Label(id gridgraph.CellID) string {
	if int(id) < 0 || int(id) >= len(o.labels) {
		return ""
	}
	return o.labels[id]
}

func (o *Overlay) reset() {
	for i := range o.marks {
		o.marks[i] = MarkNone
		o.labels[i] = ""
	}
}

func (o *Overlay) set(c *gridgraph.Cell, m Mark, label string) {
	o.marks[c.ID()] = m
	o.labels[c.ID()] = label
}

func (o *Overlay) setLabel(c *gridgraph.Cell, label string) {
	o.labels[c.ID()] = label
}

// Option configures a Sandbox.
type Option func(*Options)

// Options holds the sandbox logger, the clock timing the unit's walk and
// an optional expansion trace.
type Options struct {
	Logger *slog.Logger
	Clock  func() time.Time
	Trace  *Trace
}

// DefaultOptions returns Options with a discarding logger, the wall clock
// and no trace.
func DefaultOptions() Options {
	return Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:  time.Now,
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

// WithClock sets the clock used to time the unit's walk. A nil clock is
// ignored.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Clock = now
		}
	}
}

// WithTrace attaches a trace that the engine feeds through
// search.WithOnExpand. The sandbox clears it before each search.
func WithTrace(t *Trace) Option {
	return func(o *Options) { o.Trace = t }
}
