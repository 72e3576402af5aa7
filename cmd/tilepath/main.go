// Command tilepath is an interactive grid pathfinding sandbox.
//
// Usage:
//
//	tilepath [-config file.yaml] [-size 20x12 | -map ROW ...] [-algorithm astar]
//	         [-start x,y] [-goal x,y] [-headless] [-snapshot out.png]
//
// Without -headless it opens a terminal UI; see package tui for the keys.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/tilepath/config"
	"github.com/katalvlaran/tilepath/prefs"
	"github.com/katalvlaran/tilepath/render"
	"github.com/katalvlaran/tilepath/sandbox"
	"github.com/katalvlaran/tilepath/search"
	"github.com/katalvlaran/tilepath/selector"
	"github.com/katalvlaran/tilepath/tui"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "tilepath:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.FromArgs("tilepath", args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	logOut := stderr
	if !cfg.Headless {
		logOut = io.Discard
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	level, _ := cfg.Level() // validated by FromArgs
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	sb, err := buildSandbox(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.Headless {
		return headless(cfg, sb, stdout)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	app := tui.New(screen, sb,
		tui.WithLogger(logger),
		tui.WithSnapshotPath(cfg.SnapshotPath),
		tui.WithTick(cfg.Tick),
		tui.WithRenderOptions(render.WithCellSize(cfg.CellSize)),
	)
	return app.Run()
}

// buildSandbox wires grid, engine, preferences, selector and sandbox, and
// applies the configured algorithm and endpoints.
func buildSandbox(cfg config.Config, logger *slog.Logger) (*sandbox.Sandbox, error) {
	g, err := cfg.Grid()
	if err != nil {
		return nil, err
	}
	trace := sandbox.NewTrace()
	eng, err := search.NewEngine(g, search.WithLogger(logger), search.WithOnExpand(trace.Record))
	if err != nil {
		return nil, err
	}

	var store selector.Store = prefs.NewMemoryStore()
	if cfg.PrefsPath != "" {
		if store, err = prefs.NewFileStore(cfg.PrefsPath); err != nil {
			return nil, err
		}
	}
	sel, err := selector.New(store, selector.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if cfg.Algorithm != "" {
		alg, err := search.ParseAlgorithm(cfg.Algorithm)
		if err != nil {
			return nil, err
		}
		if err := sel.SetCurrent(alg); err != nil {
			logger.Warn("algorithm not persisted", slog.Any("error", err))
		}
	}

	sb, err := sandbox.New(g, eng, sel, sandbox.WithLogger(logger), sandbox.WithTrace(trace))
	if err != nil {
		return nil, err
	}
	if cfg.Start != "" {
		x, y, _ := config.ParsePoint(cfg.Start)
		if err := sb.SetStart(x, y); err != nil {
			return nil, fmt.Errorf("start %s: %w", cfg.Start, err)
		}
	}
	if cfg.Goal != "" {
		x, y, _ := config.ParsePoint(cfg.Goal)
		if err := sb.SetGoal(x, y); err != nil {
			return nil, fmt.Errorf("goal %s: %w", cfg.Goal, err)
		}
	}
	return sb, nil
}

// headless prints the route summary and writes the snapshot.
func headless(cfg config.Config, sb *sandbox.Sandbox, w io.Writer) error {
	r := sb.Route()
	if r == nil {
		return errors.New("headless mode needs -start and -goal")
	}
	fmt.Fprintf(w, "algorithm: %s\n", r.Algorithm.Title())
	fmt.Fprintf(w, "route: %s\n", r)
	switch {
	case r.Found:
		fmt.Fprintf(w, "steps: %d cost: %d expanded: %d\n", r.Len(), r.Cost, r.Expanded)
	case sb.Disconnected():
		fmt.Fprintf(w, "start and goal are in separate regions (%d)\n", sb.Regions())
	}
	if cfg.SnapshotPath != "" {
		if err := render.SavePNG(sb, cfg.SnapshotPath, render.WithCellSize(cfg.CellSize)); err != nil {
			return err
		}
		fmt.Fprintf(w, "snapshot: %s\n", cfg.SnapshotPath)
	}
	return nil
}
