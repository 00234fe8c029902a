package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	"github.com/vanderheijden86/pathlab/pkg/config"
	"github.com/vanderheijden86/pathlab/pkg/debug"
	"github.com/vanderheijden86/pathlab/pkg/grid"
	"github.com/vanderheijden86/pathlab/pkg/pathfind"
	"github.com/vanderheijden86/pathlab/pkg/ui"
	"github.com/vanderheijden86/pathlab/pkg/version"
	"github.com/vanderheijden86/pathlab/pkg/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// options are the parsed command line.
type options struct {
	algo       string
	rows       int
	cols       int
	speed      int
	configPath string
	maze       float64
	seed       int64
	pick       bool
	headless   bool
	trace      bool
	json       bool
	snapshot   string
	noHooks    bool
	hooksDir   string // directory of the config file
	cpuProfile string
	version    bool
	help       bool

	set map[string]bool // flags given explicitly
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the exit, returning the process status.
func run(args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.help {
		fmt.Fprintln(stdout, "Usage: pathlab [options]")
		fmt.Fprintln(stdout, "\nAnimated grid path search: BFS, DFS, Dijkstra and A*.")
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}

	if opts.version {
		fmt.Fprintf(stdout, "pathlab %s\n", version.Version)
		return 0
	}

	// CPU profiling support
	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			fmt.Fprintf(stderr, "Could not create CPU profile: %v\n", err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(stderr, "Could not start CPU profile: %v\n", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}
	defer debug.Sync()

	cfg, cfgPath, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	opts.hooksDir = filepath.Dir(cfgPath)

	interactive := !opts.headless && !opts.json && !opts.trace && opts.snapshot == "" && isTerminal(stdout)

	if opts.pick {
		if err := pickSettings(&cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	g, err := buildGrid(cfg, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !interactive {
		if err := runHeadless(ctx, stdout, g, cfg, opts); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	stop()

	m := ui.NewModel(ui.Options{
		Config:     cfg,
		ConfigPath: cfgPath,
		Watcher:    startWatcher(cfgPath),
		Grid:       g,
		Seed:       opts.seed,
	})
	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(stderr, "Error running pathlab: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var o options
	fs := flag.NewFlagSet("pathlab", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := config.DefaultConfig()
	fs.StringVar(&o.algo, "algo", def.Algorithm, "Search algorithm: bfs, dfs, dijkstra, astar")
	fs.IntVar(&o.rows, "rows", def.Grid.Rows, "Grid rows")
	fs.IntVar(&o.cols, "cols", def.Grid.Cols, "Grid columns")
	fs.IntVar(&o.speed, "speed", def.Speed, "Animation speed 1-100 (headless runs are unpaced unless set)")
	fs.StringVar(&o.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/pathlab/config.yaml)")
	fs.Float64Var(&o.maze, "maze", 0, "Generate a random maze with this wall density (0 disables)")
	fs.Int64Var(&o.seed, "seed", 0, "Seed for maze generation and DFS neighbor order (0 = random)")
	fs.BoolVar(&o.pick, "pick", false, "Choose algorithm, grid size and speed interactively")
	fs.BoolVar(&o.headless, "headless", false, "Run one search without the TUI and print a summary")
	fs.BoolVar(&o.trace, "trace", false, "Headless: print every animation frame")
	fs.BoolVar(&o.json, "json", false, "Headless: print the run report as JSON")
	fs.StringVar(&o.snapshot, "snapshot", "", "Headless: write the final grid to PATH (.png or .svg)")
	fs.BoolVar(&o.noHooks, "no-hooks", false, "Skip export hooks from hooks.yaml")
	fs.StringVar(&o.cpuProfile, "cpu-profile", "", "Write CPU profile to file")
	fs.BoolVar(&o.version, "version", false, "Show version")
	fs.BoolVar(&o.help, "help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return o, fs, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected argument %q\n", fs.Arg(0))
		return o, fs, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, fs, nil
}

// loadConfig reads the config file and applies flag overrides. A missing
// file yields the defaults.
func loadConfig(o options) (config.Config, string, error) {
	path := o.configPath
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return cfg, path, err
	}

	if o.set["algo"] {
		cfg.Algorithm = o.algo
	}
	if o.set["rows"] {
		cfg.Grid.Rows = o.rows
	}
	if o.set["cols"] {
		cfg.Grid.Cols = o.cols
	}
	if o.set["speed"] {
		cfg.Speed = o.speed
	}
	if o.maze > 0 {
		cfg.Maze.Density = o.maze
	}
	if o.set["seed"] {
		cfg.Maze.Seed = o.seed
	}
	if err := cfg.Validate(); err != nil {
		return cfg, path, err
	}
	return cfg, path, nil
}

// buildGrid makes the start-up grid, with a maze when -maze was given.
func buildGrid(cfg config.Config, o options) (*grid.Grid, error) {
	g, err := grid.New(cfg.Grid.Rows, cfg.Grid.Cols)
	if err != nil {
		return nil, err
	}
	if o.maze > 0 {
		seed := cfg.Maze.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.GenerateMaze(rand.New(rand.NewSource(seed)), cfg.Maze.Density)
	}
	return g, nil
}

// startWatcher watches the config file for live reload. Failure is not
// fatal; the session just runs without reload.
func startWatcher(path string) *watcher.Watcher {
	w, err := watcher.NewWatcher(path)
	if err != nil {
		debug.Log("config watcher: %v", err)
		return nil
	}
	if err := w.Start(); err != nil {
		debug.Log("config watcher: %v", err)
		return nil
	}
	return w
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// headlessDelay is the frame pause for a headless run: none unless -speed
// was given explicitly.
func headlessDelay(cfg config.Config, o options) time.Duration {
	if o.set["speed"] {
		return cfg.Delay()
	}
	return 0
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set PATHLAB_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("PATHLAB_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}

// algorithmOrDefault resolves cfg's algorithm after Validate.
func algorithmOrDefault(cfg config.Config) pathfind.Algorithm {
	if a := cfg.AlgorithmID(); a.Valid() {
		return a
	}
	return pathfind.AlgoBFS
}
