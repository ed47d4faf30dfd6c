package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/bioproclab/fmex/internal/engine"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var dashPatterns = map[string][]vg.Length{
	"-":  nil,
	"--": {vg.Points(6), vg.Points(3)},
	":":  {vg.Points(1), vg.Points(2)},
	"-.": {vg.Points(6), vg.Points(2), vg.Points(1), vg.Points(2)},
}

var palette = map[Color]color.Color{
	ColorBlue:  color.RGBA{B: 255, A: 255},
	ColorRed:   color.RGBA{R: 200, A: 255},
	ColorGreen: color.RGBA{G: 150, A: 255},
}

// PlotRenderer accumulates rendered runs into one panel-grid PNG. The grid
// persists across renders so successive runs overlay with the advancing
// dash pattern, and is rebuilt whenever the layout changes.
type PlotRenderer struct {
	OutDir   string
	FileName string
	Width    vg.Length
	Height   vg.Length

	layout Layout
	grid   [][]*plot.Plot
}

func NewPlotRenderer(outDir string) *PlotRenderer {
	return &PlotRenderer{
		OutDir:   outDir,
		FileName: "diagrams.png",
		Width:    8 * vg.Inch,
		Height:   10 * vg.Inch,
	}
}

func layoutEqual(a, b Layout) bool {
	if a.Title != b.Title || a.Rows != b.Rows || a.Cols != b.Cols || len(a.Panels) != len(b.Panels) {
		return false
	}
	for i := range a.Panels {
		if a.Panels[i] != b.Panels[i] {
			return false
		}
	}
	return true
}

func (r *PlotRenderer) rebuild(layout Layout) {
	r.layout = layout
	r.grid = make([][]*plot.Plot, layout.Rows)
	for row := 0; row < layout.Rows; row++ {
		r.grid[row] = make([]*plot.Plot, layout.Cols)
		for col := 0; col < layout.Cols; col++ {
			idx := row*layout.Cols + col
			if idx >= len(layout.Panels) {
				continue
			}
			p := plot.New()
			if idx == 0 {
				p.Title.Text = layout.Title
			}
			p.Y.Label.Text = layout.Panels[idx].YLabel
			p.X.Label.Text = layout.Panels[idx].XLabel
			r.grid[row][col] = p
		}
	}
}

// Render replays the actions onto the grid and rewrites the output file.
func (r *PlotRenderer) Render(layout Layout, actions []Action, pattern int, res *engine.Result) error {
	if r.grid == nil || !layoutEqual(r.layout, layout) {
		r.rebuild(layout)
	}

	dashes := dashPatterns[LinePatterns[pattern%len(LinePatterns)]]
	for _, a := range actions {
		if a.Panel < 0 || a.Panel >= layout.Rows*layout.Cols {
			return fmt.Errorf("diagram: action panel %d outside %dx%d grid", a.Panel, layout.Rows, layout.Cols)
		}
		p := r.grid[a.Panel/layout.Cols][a.Panel%layout.Cols]
		if p == nil {
			return fmt.Errorf("diagram: action targets undefined panel %d", a.Panel)
		}
		ys, err := a.Series.Eval(res)
		if err != nil {
			return err
		}
		if len(ys) != len(res.Time) {
			return fmt.Errorf("diagram: series %s length %d does not match time vector %d", a.Series.Label(), len(ys), len(res.Time))
		}
		xys := make(plotter.XYs, len(ys))
		for i := range ys {
			xys[i].X = res.Time[i]
			xys[i].Y = ys[i]
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.LineStyle.Color = paletteColor(a.Color)
		line.LineStyle.Dashes = dashes
		if a.Style == StyleStep {
			line.StepStyle = plotter.PostStep
		}
		p.Add(line)
		if a.YMin != nil {
			p.Y.Min = *a.YMin
		}
		if a.YMax != nil {
			p.Y.Max = *a.YMax
		}
	}

	return r.write()
}

func paletteColor(c Color) color.Color {
	if col, ok := palette[c]; ok {
		return col
	}
	return palette[ColorBlue]
}

func (r *PlotRenderer) write() error {
	if err := os.MkdirAll(r.OutDir, 0755); err != nil {
		return err
	}
	img := vgimg.New(r.Width, r.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: r.layout.Rows,
		Cols: r.layout.Cols,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align(r.grid, tiles, dc)
	for row := range r.grid {
		for col, p := range r.grid[row] {
			if p != nil {
				p.Draw(canvases[row][col])
			}
		}
	}

	f, err := os.Create(filepath.Join(r.OutDir, r.FileName))
	if err != nil {
		return err
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return err
	}
	return nil
}
