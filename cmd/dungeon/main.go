// dungeon generates, inspects and benchmarks BSP dungeons. Build:
//
//	go build -o dungeon ./cmd/dungeon
//
// Usage:
//
//	./dungeon generate --width 96 --height 64 --seed 7 --png map.png
//	./dungeon view --seed 7
//	./dungeon bench --runs 5 --sizes 128,256
//	./dungeon history --size 256
//	./dungeon serve --addr :2222
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gdamore/tcell/v2"
	"github.com/mitchellh/go-homedir"

	"bsp-dungeon/internal/analyze"
	"bsp-dungeon/internal/bench"
	"bsp-dungeon/internal/gamemap"
	"bsp-dungeon/internal/generate"
	"bsp-dungeon/internal/render"
	"bsp-dungeon/internal/ssh"
)

const desc = `Generates dungeon floor plans by binary space partitioning.

The area is split into a tree of regions, every terminal region gets a room,
sibling rooms are joined by L-shaped halls and the walls are drawn with box
glyphs.`

// defaultSize is used when neither a flag nor the config file sets a size.
const defaultSize = 80

type generateCmd struct {
	Width    int    `short:"W" help:"grid width, in lines of the dump (default 80)"`
	Height   int    `short:"H" help:"grid height, in cells per line (default 80)"`
	Seed     int64  `short:"s" help:"random seed; 0 picks one from the clock"`
	Config   string `short:"c" help:"YAML generator config file"`
	Treasure int    `short:"t" help:"treasure markers to place"`

	Out    string `short:"o" default:"-" help:"text dump path, - for stdout"`
	PNG    string `help:"also write a PNG image to this path"`
	CellPx int    `default:"4" help:"PNG pixels per cell"`
	Thumb  int    `help:"scale the PNG down to this width in px"`
	Theme  string `default:"stone" help:"PNG colors: chalk, ember, frost or stone"`
	Stats  bool   `help:"print a connectivity report"`
}

type viewCmd struct {
	Width    int    `short:"W" help:"grid width (default 80)"`
	Height   int    `short:"H" help:"grid height (default 80)"`
	Seed     int64  `short:"s" help:"random seed; 0 picks one from the clock"`
	Config   string `short:"c" help:"YAML generator config file"`
	Treasure int    `short:"t" default:"3" help:"treasure markers to place"`
	Theme    string `default:"stone" help:"colors: chalk, ember, frost or stone"`
}

type benchCmd struct {
	Sizes  []int  `default:"128,256,512,1024,2048,4096" help:"square grid sizes, in order"`
	Runs   int    `short:"n" default:"10" help:"generations per size"`
	Seed   int64  `short:"s" help:"first seed; run i uses seed+i. 0 seeds from the clock"`
	DB     string `help:"results database (default $XDG_DATA_HOME/bsp-dungeon/bench.sqlite)"`
	NoSave bool   `help:"do not record results"`
}

type historyCmd struct {
	Size  int    `help:"only this grid size"`
	Limit int    `default:"20" help:"number of batches to show"`
	DB    string `help:"results database (default $XDG_DATA_HOME/bsp-dungeon/bench.sqlite)"`
}

type serveCmd struct {
	Addr        string `default:":2222" help:"listen address"`
	HostKey     string `default:"server_host_key" help:"PEM host key, created if absent"`
	Width       int    `short:"W" default:"256" help:"default grid width"`
	Height      int    `short:"H" default:"256" help:"default grid height"`
	Seed        int64  `short:"s" help:"seed every session the same; 0 gives each its own"`
	Config      string `short:"c" help:"YAML generator config file"`
	Treasure    int    `short:"t" default:"3" help:"treasure markers to place"`
	Theme       string `default:"stone" help:"colors: chalk, ember, frost or stone"`
	MaxSessions int    `default:"16" help:"concurrent viewers"`
}

type cli struct {
	Verbose bool `short:"v" help:"debug logging"`

	Generate generateCmd `cmd:"" help:"generate one dungeon and dump it"`
	View     viewCmd     `cmd:"" help:"generate one dungeon and browse it in the terminal"`
	Bench    benchCmd    `cmd:"" help:"time repeated generation at increasing sizes"`
	History  historyCmd  `cmd:"" help:"show recorded benchmark results"`
	Serve    serveCmd    `cmd:"" help:"serve a fresh dungeon to every SSH client"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("dungeon"),
		kong.Description(desc),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch ctx.Command() {
	case "generate":
		err = c.Generate.run(stdout, stderr, logger)
	case "view":
		err = c.View.run(logger)
	case "bench":
		err = c.Bench.run(stdout, logger)
	case "history":
		err = c.History.run(stdout)
	case "serve":
		err = c.Serve.run(logger)
	default:
		err = fmt.Errorf("unknown command %q", ctx.Command())
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// buildConfig loads path (if any) and applies the non-zero flag values.
func buildConfig(path string, width, height int, seed int64, treasure int) (generate.Config, error) {
	cfg := generate.DefaultConfig(0, 0, 0)
	if path != "" {
		var err error
		if cfg, err = generate.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if width > 0 {
		cfg.Width = width
	}
	if height > 0 {
		cfg.Height = height
	}
	if cfg.Width == 0 {
		cfg.Width = defaultSize
	}
	if cfg.Height == 0 {
		cfg.Height = defaultSize
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if treasure > 0 {
		cfg.Treasure = treasure
	}
	return cfg, nil
}

func (g *generateCmd) run(stdout, stderr io.Writer, logger *slog.Logger) error {
	cfg, err := buildConfig(g.Config, g.Width, g.Height, g.Seed, g.Treasure)
	if err != nil {
		return err
	}
	theme, err := render.LookupTheme(g.Theme)
	if err != nil {
		return err
	}
	start := time.Now()
	d, err := generate.Generate(cfg)
	if err != nil {
		return err
	}
	logger.Debug("generated", "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"seed", d.Seed, "rooms", len(d.Rooms()), "elapsed", time.Since(start))

	report := stdout
	if g.Out == "-" {
		if err := d.Grid.WriteText(stdout); err != nil {
			return err
		}
		report = stderr
	} else {
		path, err := homedir.Expand(g.Out)
		if err != nil {
			return err
		}
		if err := gamemap.WriteFile(path, d.Grid); err != nil {
			return err
		}
		logger.Info("wrote dump", "path", path, "seed", d.Seed)
	}

	if g.PNG != "" {
		path, err := homedir.Expand(g.PNG)
		if err != nil {
			return err
		}
		if err := render.WriteThemedPNG(path, d.Grid, theme, g.CellPx, g.Thumb); err != nil {
			return err
		}
		logger.Info("wrote image", "path", path)
	}

	if g.Stats {
		r := analyze.Summarize(d)
		fmt.Fprintf(report, "seed=%d %s\n", d.Seed, r)
		m := d.Markers
		fmt.Fprintf(report, "start=%d,%d exit=%d,%d treasure=%d\n",
			m.Start.X, m.Start.Y, m.Exit.X, m.Exit.Y, len(m.Treasure))
		if !r.Connected() {
			logger.Warn("dungeon has unreachable rooms", "count", r.Unreachable)
		}
	}
	return nil
}

func (v *viewCmd) run(logger *slog.Logger) error {
	cfg, err := buildConfig(v.Config, v.Width, v.Height, v.Seed, v.Treasure)
	if err != nil {
		return err
	}
	theme, err := render.LookupTheme(v.Theme)
	if err != nil {
		return err
	}
	d, err := generate.Generate(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	viewer := render.NewViewer(screen, d.Grid)
	viewer.Theme = theme
	viewer.SetMarkers(d.Markers)
	viewer.Status = fmt.Sprintf("seed %d", d.Seed)
	viewer.Run()
	logger.Debug("viewer closed", "seed", d.Seed)
	return nil
}

func (b *benchCmd) run(stdout io.Writer, logger *slog.Logger) error {
	opts := bench.Options{Sizes: b.Sizes, Runs: b.Runs, Seed: b.Seed}
	report, err := bench.StressTest(opts, logger)
	if err != nil {
		return err
	}
	if err := report.WriteTable(stdout); err != nil {
		return err
	}
	if b.NoSave {
		return nil
	}
	// A failed save loses history, not results.
	store, err := openStore(b.DB)
	if err != nil {
		logger.Warn("results not saved", "error", err)
		return nil
	}
	defer store.Close()
	if err := store.Save(report); err != nil {
		logger.Warn("results not saved", "error", err)
	}
	return nil
}

func (h *historyCmd) run(stdout io.Writer) error {
	store, err := openStore(h.DB)
	if err != nil {
		return err
	}
	defer store.Close()
	entries, err := store.History(h.Size, h.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "no recorded runs")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(stdout, "%s seed=%d %s\n", e.Started.Format(time.DateTime), e.Seed, e.Stats)
	}
	return nil
}

func (s *serveCmd) run(logger *slog.Logger) error {
	cfg, err := buildConfig(s.Config, s.Width, s.Height, s.Seed, s.Treasure)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	theme, err := render.LookupTheme(s.Theme)
	if err != nil {
		return err
	}
	srv := &ssh.Server{
		Addr:        s.Addr,
		HostKeyPath: s.HostKey,
		Config:      cfg,
		Theme:       theme,
		MaxSessions: s.MaxSessions,
		Logger:      logger,
	}
	return srv.ListenAndServe()
}

func openStore(path string) (*bench.Store, error) {
	if path == "" {
		var err error
		if path, err = bench.DefaultStorePath(); err != nil {
			return nil, fmt.Errorf("locate results database: %w", err)
		}
	}
	return bench.OpenStore(path)
}
