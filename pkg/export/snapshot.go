// Package export writes the outcome of a search run to disk: PNG and SVG
// pictures of the final grid, and a JSON run report.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/pathlab/pkg/analysis"
	"github.com/vanderheijden86/pathlab/pkg/grid"
	"github.com/vanderheijden86/pathlab/pkg/metrics"
	"github.com/vanderheijden86/pathlab/pkg/pathfind"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
)

// SnapshotOptions controls snapshot export.
type SnapshotOptions struct {
	Path     string           // Output path; format inferred from extension when Format empty
	Format   string           // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title    string           // Optional title rendered in the header
	CellSize int              // Pixels per cell (default 16)
	Grid     *grid.Grid       // Grid whose walls and endpoints are drawn
	Result   *pathfind.Result // Optional run whose visited cells and path are drawn
	Report   *analysis.Report // Optional layout analysis shown in the header
}

// SaveSnapshot renders the grid, with the run's marks, as SVG or PNG.
func SaveSnapshot(opts SnapshotOptions) error {
	if opts.Grid == nil {
		return fmt.Errorf("no grid to export")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch ext := strings.ToLower(filepath.Ext(opts.Path)); ext {
		case "":
			format = "svg"
			if opts.Path != "" {
				opts.Path += ".svg"
			}
		default:
			format = strings.TrimPrefix(ext, ".")
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	defer metrics.Timer(metrics.SnapshotRender)()
	l := buildLayout(opts)

	if format == "png" {
		return renderPNG(opts.Path, l)
	}
	f, err := os.Create(opts.Path)
	if err != nil {
		return err
	}
	renderSVG(f, l)
	return f.Close()
}

// RenderSVG writes the SVG snapshot to w.
func RenderSVG(w io.Writer, opts SnapshotOptions) error {
	if opts.Grid == nil {
		return fmt.Errorf("no grid to export")
	}
	renderSVG(w, buildLayout(opts))
	return nil
}

// --- layout ----------------------------------------------------------------

type cellKind int

const (
	cellOpen cellKind = iota
	cellWall
	cellVisited
	cellPath
	cellStart
	cellEnd
)

type layout struct {
	rows, cols int
	cell       int
	header     int
	width      int
	height     int
	kinds      []cellKind
	lines      []string
}

const (
	padding      = 16
	headerLine   = 18
	headerMargin = 12
)

func buildLayout(opts SnapshotOptions) layout {
	g := opts.Grid
	cell := opts.CellSize
	if cell <= 0 {
		cell = 16
	}

	kinds := make([]cellKind, g.Cells())
	g.Nodes(func(n *grid.Node) {
		if n.Wall {
			kinds[g.Index(n.Coord)] = cellWall
		}
	})
	if opts.Result != nil {
		for _, c := range opts.Result.Visited {
			if g.InBounds(c) {
				kinds[g.Index(c)] = cellVisited
			}
		}
		for _, c := range opts.Result.Path {
			if g.InBounds(c) {
				kinds[g.Index(c)] = cellPath
			}
		}
	}
	if s := g.Start(); s != nil {
		kinds[g.Index(s.Coord)] = cellStart
	}
	if e := g.End(); e != nil {
		kinds[g.Index(e.Coord)] = cellEnd
	}

	lines := headerLines(opts)
	header := len(lines)*headerLine + headerMargin
	return layout{
		rows:   g.Rows(),
		cols:   g.Cols(),
		cell:   cell,
		header: header,
		width:  max(g.Cols()*cell+2*padding, 320),
		height: g.Rows()*cell + header + 2*padding,
		kinds:  kinds,
		lines:  lines,
	}
}

func headerLines(opts SnapshotOptions) []string {
	title := opts.Title
	if title == "" {
		title = "pathlab"
	}
	lines := []string{title}
	if r := opts.Result; r != nil {
		status := "no path"
		switch {
		case r.Cancelled:
			status = "cancelled"
		case r.Found:
			status = fmt.Sprintf("path %d", r.PathLength())
		}
		lines = append(lines, fmt.Sprintf("%s  visited %d  %s", r.Algorithm.Label(), len(r.Visited), status))
	}
	if rep := opts.Report; rep != nil {
		optimal := "unreachable"
		if rep.Reachable {
			optimal = fmt.Sprintf("optimal %d", rep.Optimal)
		}
		lines = append(lines, fmt.Sprintf("%dx%d  walls %d  regions %d  %s",
			rep.Rows, rep.Cols, rep.Walls, rep.Regions, optimal))
	}
	return lines
}

func (l layout) origin(r, c int) (int, int) {
	return padding + c*l.cell, padding + l.header + r*l.cell
}

// --- colors ----------------------------------------------------------------

var (
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorOpen     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorWall     = color.RGBA{0x33, 0x3a, 0x45, 0xff}
	colorVisited  = color.RGBA{0xaf, 0xd8, 0xf8, 0xff}
	colorPath     = color.RGBA{0xff, 0xe0, 0x82, 0xff}
	colorStart    = color.RGBA{0x43, 0xa0, 0x47, 0xff}
	colorEnd      = color.RGBA{0xe5, 0x39, 0x35, 0xff}
	colorGridLine = color.RGBA{0xdd, 0xe1, 0xe6, 0xff}
	colorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}
)

func kindColor(k cellKind) color.RGBA {
	switch k {
	case cellWall:
		return colorWall
	case cellVisited:
		return colorVisited
	case cellPath:
		return colorPath
	case cellStart:
		return colorStart
	case cellEnd:
		return colorEnd
	default:
		return colorOpen
	}
}

// --- renderers -------------------------------------------------------------

func renderPNG(path string, l layout) error {
	dc := gg.NewContext(l.width, l.height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetFontFace(basicfont.Face7x13)
	for i, line := range l.lines {
		dc.SetColor(colorSubtle)
		if i == 0 {
			dc.SetColor(colorText)
		}
		dc.DrawStringAnchored(line, padding, float64(padding+i*headerLine+headerLine/2), 0, 0.5)
	}

	cs := float64(l.cell)
	dc.SetLineWidth(1)
	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			x, y := l.origin(r, c)
			dc.DrawRectangle(float64(x), float64(y), cs, cs)
			dc.SetColor(kindColor(l.kinds[r*l.cols+c]))
			dc.FillPreserve()
			dc.SetColor(colorGridLine)
			dc.Stroke()
		}
	}
	return dc.SavePNG(path)
}

func renderSVG(w io.Writer, l layout) {
	canvas := svg.New(w)
	canvas.Start(l.width, l.height)
	canvas.Rect(0, 0, l.width, l.height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	for i, line := range l.lines {
		style := fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle))
		if i == 0 {
			style = fmt.Sprintf("fill:%s;font-size:15px;font-family:monospace;font-weight:bold", css(colorText))
		}
		canvas.Text(padding, padding+i*headerLine+headerLine-4, line, style)
	}

	stroke := css(colorGridLine)
	canvas.Gid("cells")
	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			x, y := l.origin(r, c)
			canvas.Rect(x, y, l.cell, l.cell,
				fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(kindColor(l.kinds[r*l.cols+c])), stroke))
		}
	}
	canvas.Gend()
	canvas.End()
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
