// Package search provides the algorithm enum, tunable options and error
// definitions for path search over a gridgraph.GridGraph.
package search

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/katalvlaran/tilepath/gridgraph"
)

// Sentinel errors for search execution. Unreachable goals are not errors:
// they are reported through Route.Found.
var (
	// ErrNilGraph is returned if a nil graph pointer is passed to NewEngine.
	ErrNilGraph = errors.New("search: graph is nil")

	// ErrNilCell is returned when start or goal is unset.
	ErrNilCell = errors.New("search: start and goal must be set")

	// ErrUnknownAlgorithm is returned for an Algorithm outside the enum.
	ErrUnknownAlgorithm = errors.New("search: unknown algorithm")
)

// Algorithm selects the search strategy used by Engine.FindPath.
// The numeric values are stable: they are persisted as preferences.
type Algorithm int

const (
	// BreadthFirstSearch ignores terrain cost; every passable step costs one.
	BreadthFirstSearch Algorithm = iota
	// Dijkstra minimises total terrain cost.
	Dijkstra
	// AStar minimises total terrain cost, guided by Manhattan distance.
	AStar
)

var algorithmNames = [...]string{
	BreadthFirstSearch: "bfs",
	Dijkstra:           "dijkstra",
	AStar:              "astar",
}

var algorithmTitles = [...]string{
	BreadthFirstSearch: "Breadth-First Search",
	Dijkstra:           "Dijkstra",
	AStar:              "A*",
}

// Algorithms returns every algorithm in enum order.
func Algorithms() []Algorithm {
	return []Algorithm{BreadthFirstSearch, Dijkstra, AStar}
}

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	return a >= BreadthFirstSearch && a <= AStar
}

// String returns the short name: "bfs", "dijkstra" or "astar".
func (a Algorithm) String() string {
	if !a.Valid() {
		return "algorithm(" + strconv.Itoa(int(a)) + ")"
	}
	return algorithmNames[a]
}

// Title returns the display name, e.g. "Breadth-First Search".
func (a Algorithm) Title() string {
	if !a.Valid() {
		return a.String()
	}
	return algorithmTitles[a]
}

// Next returns the following algorithm, wrapping after the last one.
func (a Algorithm) Next() Algorithm {
	if !a.Valid() {
		return BreadthFirstSearch
	}
	return (a + 1) % Algorithm(len(algorithmNames))
}

// ParseAlgorithm accepts a short name, a display name, the aliases
// "breadth-first", "a*" and "a-star", or the numeric value.
func ParseAlgorithm(s string) (Algorithm, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "bfs", "breadth-first", "breadth-first search", "breadth-first-search":
		return BreadthFirstSearch, nil
	case "dijkstra":
		return Dijkstra, nil
	case "astar", "a*", "a-star":
		return AStar, nil
	}
	if n, err := strconv.Atoi(key); err == nil && Algorithm(n).Valid() {
		return Algorithm(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Option configures an Engine via functional arguments.
type Option func(*Options)

// Options holds the logger and hooks used by an Engine.
type Options struct {
	// Logger receives diagnostics such as unreachable goals (debug level).
	Logger *slog.Logger

	// OnExpand is called for every cell taken from the frontier, in
	// processing order. Visualisers use it to animate a search.
	OnExpand func(c *gridgraph.Cell)
}

// DefaultOptions returns Options with a discarding logger and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnExpand: func(*gridgraph.Cell) {},
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

// WithOnExpand registers a callback run for each expanded cell.
func WithOnExpand(fn func(c *gridgraph.Cell)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}
