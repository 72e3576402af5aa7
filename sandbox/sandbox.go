package sandbox

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/zyedidia/generic/queue"

	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/search"
	"github.com/katalvlaran/tilepath/selector"
)

// Sandbox owns the interactive state around a grid: the endpoints, the
// painted terrain, the last computed route and its overlay, and the unit
// walking that route. It recomputes whenever any of them change, including
// when the selector switches algorithm.
//
// A Sandbox is not safe for concurrent use.
type Sandbox struct {
	g       *gridgraph.GridGraph
	engine  *search.Engine
	sel     *selector.Selector
	log     *slog.Logger
	clock   func() time.Time
	trace   *Trace
	overlay *Overlay

	start, goal  *gridgraph.Cell
	route        *search.Route
	disconnected bool
	regions      int
	coords       bool
	unit         *unit
}

// unit walks the steps of a route one cell at a time. arrived stays zero
// until the path is exhausted.
type unit struct {
	pos     *gridgraph.Cell
	path    *queue.Queue[*gridgraph.Cell]
	moves   int
	spawned time.Time
	arrived time.Time
}

// New wires a sandbox to g, an engine searching g and the algorithm
// selector. The sandbox subscribes to sel so that a new selection
// recomputes the route.
func New(g *gridgraph.GridGraph, engine *search.Engine, sel *selector.Selector, opts ...Option) (*Sandbox, error) {
	if g == nil || engine == nil || sel == nil {
		return nil, ErrNilDependency
	}
	if engine.Graph() != g {
		return nil, fmt.Errorf("%w: engine searches another grid", ErrNilDependency)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Sandbox{
		g:       g,
		engine:  engine,
		sel:     sel,
		log:     o.Logger,
		clock:   o.Clock,
		trace:   o.Trace,
		overlay: newOverlay(g.Len()),
	}
	sel.Subscribe(func(a search.Algorithm) {
		s.log.Debug("algorithm changed", slog.String("algorithm", a.String()))
		s.refresh()
	})
	return s, nil
}

// Grid returns the grid being edited.
func (s *Sandbox) Grid() *gridgraph.GridGraph { return s.g }

// Overlay returns the display marks and labels.
func (s *Sandbox) Overlay() *Overlay { return s.overlay }

// Route returns the last computed route, nil until both endpoints are set.
func (s *Sandbox) Route() *search.Route { return s.route }

// Start returns the start cell, nil if unset.
func (s *Sandbox) Start() *gridgraph.Cell { return s.start }

// Goal returns the goal cell, nil if unset.
func (s *Sandbox) Goal() *gridgraph.Cell { return s.goal }

// Algorithm returns the selector's current algorithm.
func (s *Sandbox) Algorithm() search.Algorithm { return s.sel.Current() }

// Selector returns the algorithm selector the sandbox follows.
func (s *Sandbox) Selector() *selector.Selector { return s.sel }

// Disconnected reports whether the last search failed because the start and
// goal lie in different regions of passable cells.
func (s *Sandbox) Disconnected() bool { return s.disconnected }

// Regions returns how many separate passable regions the grid had at the
// last unreachable search, 0 otherwise.
func (s *Sandbox) Regions() int { return s.regions }

// Expansion returns the cells the last search expanded, in order. It is
// empty unless the sandbox was built WithTrace.
func (s *Sandbox) Expansion() []*gridgraph.Cell {
	if s.trace == nil {
		return nil
	}
	return s.trace.Cells()
}

// Coordinates reports whether coordinate labels are shown.
func (s *Sandbox) Coordinates() bool { return s.coords }

// SetStart moves the start to (x,y) and recomputes.
// Returns ErrWallStart (matching ErrWallEndpoint) for a Wall cell and
// gridgraph.ErrOutOfBounds outside the grid; neither changes any state.
func (s *Sandbox) SetStart(x, y int) error {
	c, err := s.endpoint(x, y, ErrWallStart)
	if err != nil {
		return err
	}
	s.start = c
	_, err = s.Recompute()
	return err
}

// SetGoal moves the goal to (x,y) and recomputes.
// Returns ErrWallGoal (matching ErrWallEndpoint) for a Wall cell and
// gridgraph.ErrOutOfBounds outside the grid; neither changes any state.
func (s *Sandbox) SetGoal(x, y int) error {
	c, err := s.endpoint(x, y, ErrWallGoal)
	if err != nil {
		return err
	}
	s.goal = c
	_, err = s.Recompute()
	return err
}

func (s *Sandbox) endpoint(x, y int, wallErr error) (*gridgraph.Cell, error) {
	c, err := s.g.Cell(x, y)
	if err != nil {
		return nil, err
	}
	if !c.Passable() {
		s.log.Info(wallErr.Error(), slog.String("cell", c.String()))
		return nil, wallError{err: wallErr}
	}
	return c, nil
}

// Paint sets the terrain at (x,y) and recomputes. Painting a Wall over the
// start or goal clears that endpoint.
func (s *Sandbox) Paint(x, y int, t gridgraph.Terrain) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", gridgraph.ErrUnknownTerrain, int(t))
	}
	c, err := s.g.Cell(x, y)
	if err != nil {
		return err
	}
	c.SetTerrain(t)
	if !t.Passable() {
		if c == s.start {
			s.start = nil
		}
		if c == s.goal {
			s.goal = nil
		}
	}
	_, err = s.Recompute()
	return err
}

// Recompute clears the overlay, marks the endpoints and, when both are
// set, searches with the selected algorithm. The cost-aware searches label
// every cell they costed, whether or not the goal was reached, and a found
// route is marked cell by cell. An unreachable goal is logged together
// with whether the endpoints sit in separate regions.
func (s *Sandbox) Recompute() (*search.Route, error) {
	s.overlay.reset()
	s.route = nil
	s.disconnected = false
	s.regions = 0
	if s.trace != nil {
		s.trace.reset()
	}

	if s.start != nil && s.goal != nil {
		alg := s.sel.Current()
		route, err := s.engine.FindPath(s.start, s.goal, alg)
		if err != nil {
			return nil, fmt.Errorf("sandbox: recompute: %w", err)
		}
		s.route = route
		s.labelCosts(route)
		if route.Found {
			for _, c := range route.Steps {
				s.overlay.marks[c.ID()] = MarkPath
			}
		} else {
			s.disconnected = !s.g.SameRegion(s.start, s.goal)
			if s.disconnected {
				s.regions = len(s.g.Regions())
			}
			s.log.Info("goal is not currently reachable",
				slog.String("algorithm", alg.String()),
				slog.String("start", s.start.String()),
				slog.String("goal", s.goal.String()),
				slog.Bool("disconnected", s.disconnected),
				slog.Int("regions", s.regions),
			)
		}
	}

	if s.start != nil {
		s.overlay.set(s.start, MarkStart, StartLabel)
	}
	if s.goal != nil {
		s.overlay.set(s.goal, MarkGoal, GoalLabel)
	}
	if s.coords {
		s.labelCoordinates()
	}
	return s.route, nil
}

func (s *Sandbox) labelCosts(route *search.Route) {
	if route.Algorithm == search.BreadthFirstSearch {
		return
	}
	for _, c := range s.g.Cells() {
		if cost, ok := route.CostTo(c); ok {
			s.overlay.setLabel(c, strconv.Itoa(cost))
		}
	}
}

func (s *Sandbox) labelCoordinates() {
	for _, c := range s.g.Cells() {
		s.overlay.setLabel(c, strconv.Itoa(c.X())+","+strconv.Itoa(c.Y()))
	}
}

// refresh recomputes and logs failures; used where no caller can take
// the error.
func (s *Sandbox) refresh() {
	if _, err := s.Recompute(); err != nil {
		s.log.Error("recompute failed", slog.Any("error", err))
	}
}

// ToggleCoordinates switches "x,y" labels on every cell on or off and
// reports the new state.
func (s *Sandbox) ToggleCoordinates() bool {
	s.coords = !s.coords
	if s.coords {
		s.log.Info("block coordinates on")
	} else {
		s.log.Info("block coordinates off")
	}
	s.refresh()
	return s.coords
}

// SpawnUnit places the unit on the start cell, loads the current route for
// it to walk and starts its timer. Calling it again restarts the walk and
// the timer. Returns ErrNoRoute when no route has been found.
func (s *Sandbox) SpawnUnit() error {
	if s.route == nil || !s.route.Found {
		return ErrNoRoute
	}
	path := queue.New[*gridgraph.Cell]()
	for _, c := range s.route.Steps {
		path.Enqueue(c)
	}
	now := s.clock()
	s.unit = &unit{pos: s.start, path: path, spawned: now}
	if path.Empty() {
		s.unit.arrived = now
	}
	s.log.Debug("unit spawned", slog.String("at", s.start.String()), slog.Int("steps", s.route.Len()))
	return nil
}

// StepUnit moves the unit one cell along its route. It returns the unit's
// position and whether it moved.
func (s *Sandbox) StepUnit() (*gridgraph.Cell, bool) {
	if s.unit == nil {
		return nil, false
	}
	if s.unit.path.Empty() {
		return s.unit.pos, false
	}
	s.unit.pos = s.unit.path.Dequeue()
	s.unit.moves++
	if s.unit.path.Empty() {
		s.unit.arrived = s.clock()
		s.log.Debug("unit arrived",
			slog.Int("moves", s.unit.moves),
			slog.Duration("elapsed", s.unit.arrived.Sub(s.unit.spawned)),
		)
	}
	return s.unit.pos, true
}

// Unit returns the unit's cell and whether a unit has been spawned.
func (s *Sandbox) Unit() (*gridgraph.Cell, bool) {
	if s.unit == nil {
		return nil, false
	}
	return s.unit.pos, true
}

// UnitMoves returns how many cells the unit has walked since it spawned.
func (s *Sandbox) UnitMoves() int {
	if s.unit == nil {
		return 0
	}
	return s.unit.moves
}

// UnitArrived reports whether the unit has walked its whole route.
func (s *Sandbox) UnitArrived() bool {
	return s.unit != nil && s.unit.path.Empty()
}

// UnitElapsed returns how long the unit has been walking: frozen at the
// moment it arrived, or running until then. It is 0 with no unit.
func (s *Sandbox) UnitElapsed() time.Duration {
	switch {
	case s.unit == nil:
		return 0
	case !s.unit.arrived.IsZero():
		return s.unit.arrived.Sub(s.unit.spawned)
	default:
		return s.clock().Sub(s.unit.spawned)
	}
}
