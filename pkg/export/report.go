package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vanderheijden86/pathlab/pkg/analysis"
	"github.com/vanderheijden86/pathlab/pkg/grid"
	"github.com/vanderheijden86/pathlab/pkg/metrics"
	"github.com/vanderheijden86/pathlab/pkg/pathfind"

	json "github.com/goccy/go-json"
)

// RunReport is the machine-readable summary of one search run.
type RunReport struct {
	GeneratedAt time.Time `json:"generated_at"`
	Algorithm   string    `json:"algorithm"`
	Rows        int       `json:"rows"`
	Cols        int       `json:"cols"`
	Walls       int       `json:"walls"`

	Start grid.Coord `json:"start"`
	End   grid.Coord `json:"end"`

	Found      bool     `json:"found"`
	Cancelled  bool     `json:"cancelled"`
	PathLength int      `json:"path_length"`
	Settled    int      `json:"settled"`
	Visited    int      `json:"visited"`
	ElapsedMS  float64  `json:"elapsed_ms"`
	Warnings   []string `json:"warnings,omitempty"`

	Path []grid.Coord `json:"path,omitempty"`

	// Optimal is the shortest possible path length, or -1 when unreachable.
	Optimal  int              `json:"optimal"`
	Analysis *analysis.Report `json:"analysis,omitempty"`

	Timings []metrics.TimingStats `json:"timings,omitempty"`
}

// NewRunReport summarizes res on g. rep may be nil, in which case the grid
// is analyzed here.
func NewRunReport(g *grid.Grid, res pathfind.Result, rep *analysis.Report) RunReport {
	if rep == nil {
		r := analysis.Analyze(g)
		rep = &r
	}
	out := RunReport{
		GeneratedAt: time.Now().UTC(),
		Algorithm:   string(res.Algorithm),
		Rows:        g.Rows(),
		Cols:        g.Cols(),
		Walls:       g.WallCount(),
		Found:       res.Found,
		Cancelled:   res.Cancelled,
		PathLength:  res.PathLength(),
		Settled:     res.Settled,
		Visited:     len(res.Visited),
		ElapsedMS:   float64(res.Elapsed.Microseconds()) / 1000,
		Path:        res.Path,
		Optimal:     rep.Optimal,
		Analysis:    rep,
	}
	if s := g.Start(); s != nil {
		out.Start = s.Coord
	}
	if e := g.End(); e != nil {
		out.End = e.Coord
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, w.Error())
	}
	if metrics.Enabled() {
		out.Timings = metrics.AllTimingStats()
	}
	return out
}

// WriteReport encodes r as indented JSON.
func WriteReport(w io.Writer, r RunReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// SaveReport writes r to path, creating parent directories.
func SaveReport(path string, r RunReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteReport(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
