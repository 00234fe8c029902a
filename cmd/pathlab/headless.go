package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/pathlab/pkg/analysis"
	"github.com/vanderheijden86/pathlab/pkg/config"
	"github.com/vanderheijden86/pathlab/pkg/debug"
	"github.com/vanderheijden86/pathlab/pkg/export"
	"github.com/vanderheijden86/pathlab/pkg/grid"
	"github.com/vanderheijden86/pathlab/pkg/hooks"
	"github.com/vanderheijden86/pathlab/pkg/pathfind"

	"golang.org/x/sync/errgroup"
)

type traceFrame struct {
	coord grid.Coord
	state pathfind.State
}

// runHeadless runs one search on g without the TUI. The search and the frame
// printer run as an errgroup pair joined by an unbuffered channel, mirroring
// the interactive frame hand-off.
func runHeadless(ctx context.Context, out io.Writer, g *grid.Grid, cfg config.Config, o options) error {
	algo := algorithmOrDefault(cfg)
	frames := make(chan traceFrame)

	eg, egCtx := errgroup.WithContext(ctx)

	var res pathfind.Result
	eg.Go(func() error {
		defer close(frames)
		var err error
		res, err = pathfind.Run(egCtx, algo, pathfind.Params{
			Grid:  g,
			Start: g.Start(),
			End:   g.End(),
			Delay: headlessDelay(cfg, o),
			Animate: func(ctx context.Context, n *grid.Node, st pathfind.State, d time.Duration) error {
				select {
				case frames <- traceFrame{coord: n.Coord, state: st}:
				case <-ctx.Done():
					return nil
				}
				pathfind.Pace(ctx, d)
				return nil
			},
		}, pathfind.WithSeed(seedOrNow(cfg.Maze.Seed)))
		return err
	})

	eg.Go(func() error {
		n := 0
		for f := range frames {
			n++
			if !o.trace {
				continue
			}
			if _, err := fmt.Fprintf(out, "%d %s %s\n", n, f.state, f.coord); err != nil {
				return err
			}
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}

	rep := analysis.Analyze(g)
	if o.snapshot != "" {
		if err := exportSnapshot(ctx, g, res, rep, cfg, o); err != nil {
			return err
		}
	}

	if o.json {
		return export.WriteReport(out, export.NewRunReport(g, res, &rep))
	}
	return printSummary(out, g, res, rep)
}

// exportSnapshot writes the snapshot, running the configured export hooks
// around it.
func exportSnapshot(ctx context.Context, g *grid.Grid, res pathfind.Result, rep analysis.Report, cfg config.Config, o options) error {
	path := o.snapshot
	if !filepath.IsAbs(path) && cfg.Export.Dir != "" {
		path = filepath.Join(cfg.Export.Dir, path)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = "svg"
	}
	runner, err := hooks.RunHooks(o.hooksDir, hooks.ExportContext{
		ExportPath:   path,
		ExportFormat: format,
		Algorithm:    string(res.Algorithm),
		Found:        res.Found,
		PathLength:   res.PathLength(),
		Visited:      len(res.Visited),
		Timestamp:    time.Now(),
	}, o.noHooks)
	if err != nil {
		return fmt.Errorf("hooks: %w", err)
	}
	if runner != nil {
		if err := runner.RunPreExport(ctx); err != nil {
			return err
		}
	}

	if err := export.SaveSnapshot(export.SnapshotOptions{
		Path:   path,
		Grid:   g,
		Result: &res,
		Report: &rep,
	}); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	if runner != nil {
		err := runner.RunPostExport(ctx)
		debug.Log("%s", runner.Summary())
		if err != nil {
			return err
		}
	}
	return nil
}

func printSummary(out io.Writer, g *grid.Grid, res pathfind.Result, rep analysis.Report) error {
	outcome := "no path"
	switch {
	case res.Cancelled:
		outcome = "cancelled"
	case res.Found:
		outcome = fmt.Sprintf("path %d", res.PathLength())
	}
	optimal := "unreachable"
	if rep.Optimal >= 0 {
		optimal = fmt.Sprint(rep.Optimal)
	}
	_, err := fmt.Fprintf(out, "%s  %dx%d  walls %d  start %s  end %s\n%s  visited %d  settled %d  optimal %s  %s\n",
		res.Algorithm.Label(), g.Rows(), g.Cols(), g.WallCount(), g.Start().Coord, g.End().Coord,
		outcome, len(res.Visited), res.Settled, optimal, res.Elapsed.Round(time.Microsecond))
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		if _, err := fmt.Fprintf(out, "warning: %v\n", w); err != nil {
			return err
		}
	}
	return nil
}

func seedOrNow(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
