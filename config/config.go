package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tilepath/gridgraph"
	"github.com/katalvlaran/tilepath/search"
)

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrInvalidPoint is returned by ParsePoint for anything but "x,y".
	ErrInvalidPoint = errors.New("config: point must be \"x,y\"")
)

// Config is the runtime configuration of the tilepath binary.
type Config struct {
	// Width and Height size a blank Grass grid. Ignored when Map is set,
	// except that non-zero values must then agree with the map.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Map is the grid in rune form, first row is y=1.
	Map []string `yaml:"map"`

	// Algorithm, when set, overrides the persisted selection at startup.
	Algorithm string `yaml:"algorithm"`
	// Start and Goal are optional "x,y" endpoints set at startup.
	Start string `yaml:"start"`
	Goal  string `yaml:"goal"`

	PrefsPath    string        `yaml:"prefs_path"`
	LogLevel     string        `yaml:"log_level"`
	LogFile      string        `yaml:"log_file"`
	CellSize     int           `yaml:"cell_size"`
	SnapshotPath string        `yaml:"snapshot_path"`
	Tick         time.Duration `yaml:"tick"`

	// Headless prints the route and writes the snapshot instead of
	// starting the terminal UI.
	Headless bool `yaml:"headless"`
}

// Default returns a 10×10 grass grid configuration.
func Default() Config {
	return Config{
		Width:        10,
		Height:       10,
		PrefsPath:    ".tilepath-prefs.yaml",
		LogLevel:     "info",
		CellSize:     32,
		SnapshotPath: "tilepath.png",
		Tick:         250 * time.Millisecond,
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg.Width, cfg.Height = 0, 0
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	explicit := cfg.Width != 0 || cfg.Height != 0
	if def := Default(); len(cfg.Map) == 0 {
		if cfg.Width == 0 {
			cfg.Width = def.Width
		}
		if cfg.Height == 0 {
			cfg.Height = def.Height
		}
	}
	cfg.fitMap(explicit)
	return cfg, nil
}

// fitMap copies the map size into Width and Height unless they were given
// explicitly.
func (c *Config) fitMap(explicit bool) {
	if len(c.Map) == 0 || explicit {
		return
	}
	c.Width, c.Height = utf8.RuneCountInString(c.Map[0]), len(c.Map)
}

// BindFlags registers a flag for every field on fs, defaulting to the
// current values of c.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.Func("size", "grid size as WxH, e.g. 12x8", func(s string) error {
		w, h, ok := strings.Cut(strings.ToLower(s), "x")
		if !ok {
			return fmt.Errorf("%w: %q", gridgraph.ErrInvalidDimensions, s)
		}
		width, height, err := gridgraph.ParseDimensions(w, h)
		if err != nil {
			return err
		}
		c.Width, c.Height = width, height
		return nil
	})
	fs.Func("map", "append one map row (first row is y=1); repeatable", func(s string) error {
		c.Map = append(c.Map, s)
		return nil
	})
	fs.StringVar(&c.Algorithm, "algorithm", c.Algorithm, "search algorithm: bfs, dijkstra or astar")
	fs.StringVar(&c.Start, "start", c.Start, "start cell as x,y")
	fs.StringVar(&c.Goal, "goal", c.Goal, "goal cell as x,y")
	fs.StringVar(&c.PrefsPath, "prefs", c.PrefsPath, "preferences file")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file (the terminal UI discards them otherwise)")
	fs.IntVar(&c.CellSize, "cell-size", c.CellSize, "snapshot cell size in pixels")
	fs.StringVar(&c.SnapshotPath, "snapshot", c.SnapshotPath, "PNG snapshot path")
	fs.DurationVar(&c.Tick, "tick", c.Tick, "unit walking interval")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "print the route and save a snapshot, no terminal UI")
}

// Validate checks every field and returns an ErrInvalidConfig-wrapped
// error describing the first problem.
func (c Config) Validate() error {
	if len(c.Map) > 0 {
		w, h := utf8.RuneCountInString(c.Map[0]), len(c.Map)
		if (c.Width != 0 && c.Width != w) || (c.Height != 0 && c.Height != h) {
			return fmt.Errorf("%w: map is %d×%d but width×height is %d×%d", ErrInvalidConfig, w, h, c.Width, c.Height)
		}
	} else if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %w: %d×%d", ErrInvalidConfig, gridgraph.ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.Algorithm != "" {
		if _, err := search.ParseAlgorithm(c.Algorithm); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	for _, p := range []string{c.Start, c.Goal} {
		if p == "" {
			continue
		}
		if _, _, err := ParsePoint(p); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell size %d", ErrInvalidConfig, c.CellSize)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("%w: tick %s", ErrInvalidConfig, c.Tick)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Grid builds the configured grid: from Map when present, otherwise a
// blank Width×Height grass grid.
func (c Config) Grid() (*gridgraph.GridGraph, error) {
	if len(c.Map) > 0 {
		return gridgraph.FromRows(c.Map...)
	}
	return gridgraph.Build(c.Width, c.Height, nil)
}

// ParsePoint parses "x,y" into 1-based coordinates.
func ParsePoint(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPoint, s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPoint, s)
	}
	return x, y, nil
}

// FromArgs builds the configuration from command-line arguments. A
// -config file is loaded first; flags given on the command line override
// its values. The result is validated.
func FromArgs(name string, args []string, output io.Writer) (Config, error) {
	var path string
	first := flag.NewFlagSet(name, flag.ContinueOnError)
	first.SetOutput(output)
	first.StringVar(&path, "config", "", "YAML configuration file")
	scratch := Default()
	scratch.BindFlags(first)
	if err := first.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return Config{}, err
		}
	}
	// Flags win over the file: parse again on top of the loaded values.
	final := flag.NewFlagSet(name, flag.ContinueOnError)
	final.SetOutput(io.Discard)
	final.String("config", path, "")
	set := setFlags(first)
	if set["map"] {
		cfg.Map = nil
	}
	cfg.BindFlags(final)
	if err := final.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.fitMap(set["width"] || set["height"] || set["size"])
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setFlags returns the names of the flags given on the command line.
// Command-line -map rows replace the file's map rather than extend it.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
