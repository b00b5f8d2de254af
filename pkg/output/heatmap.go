package output

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ccollicutt/slotmap/pkg/corpus"
)

// Heatmap defaults.
const (
	DefaultHeatmapTitle  = "Student Presence Heatmap"
	DefaultHeatmapWidth  = 18 * vg.Inch
	DefaultHeatmapHeight = 20 * vg.Inch

	heatmapPalette = "RdYlGn"
	heatmapColors  = 11
)

// HeatmapOptions controls heatmap rendering.
type HeatmapOptions struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

// HeatmapExporter renders the grid as an annotated heatmap image. The
// image format follows the file extension (png, svg, pdf, ...).
type HeatmapExporter struct {
	opts HeatmapOptions
}

// NewHeatmapExporter creates a HeatmapExporter, filling unset options
// with the defaults.
func NewHeatmapExporter(opts HeatmapOptions) *HeatmapExporter {
	if opts.Title == "" {
		opts.Title = DefaultHeatmapTitle
	}
	if opts.Width <= 0 {
		opts.Width = DefaultHeatmapWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeatmapHeight
	}
	return &HeatmapExporter{opts: opts}
}

// Name returns the export kind.
func (e *HeatmapExporter) Name() string {
	return "heatmap"
}

// Export draws the report grid and saves it to path.
func (e *HeatmapExporter) Export(_ context.Context, report *Report, path string) error {
	if report.Grid == nil {
		return errors.New("heatmap: report has no grid")
	}

	p, err := e.plot(report.Grid)
	if err != nil {
		return err
	}

	if err := p.Save(e.opts.Width, e.opts.Height, path); err != nil {
		return fmt.Errorf("saving heatmap %s: %w", path, err)
	}
	return nil
}

// reversedPalette is a fixed list of colours, lowest value first.
type reversedPalette []color.Color

func (p reversedPalette) Colors() []color.Color { return p }

// heatmapColorsLowFirst returns the brewer palette flipped so that empty
// cells are green and crowded cells are red.
func heatmapColorsLowFirst() (reversedPalette, error) {
	pal, err := brewer.GetPalette(brewer.TypeAny, heatmapPalette, heatmapColors)
	if err != nil {
		return nil, err
	}
	cs := append([]color.Color(nil), pal.Colors()...)
	slices.Reverse(cs)
	return reversedPalette(cs), nil
}

func (e *HeatmapExporter) plot(g *corpus.Grid) (*plot.Plot, error) {
	pal, err := heatmapColorsLowFirst()
	if err != nil {
		return nil, fmt.Errorf("heatmap palette: %w", err)
	}

	data := gridXYZ{grid: g, rows: g.Rows()}

	hm := plotter.NewHeatMap(data, pal)
	if hm.Max == hm.Min {
		hm.Max = hm.Min + 1
	}

	labels, err := data.labels()
	if err != nil {
		return nil, fmt.Errorf("heatmap labels: %w", err)
	}

	p := plot.New()
	p.Title.Text = e.opts.Title
	p.X.Label.Text = "Day of the Week"
	p.Y.Label.Text = "Time Block"
	p.Add(hm, labels)

	days := g.Days()
	dayNames := make([]string, len(days))
	for i, d := range days {
		dayNames[i] = string(d)
	}
	p.NominalX(dayNames...)

	// The first slot is drawn at the top.
	slots := g.Slots()
	slotNames := make([]string, len(slots))
	for i, s := range slots {
		slotNames[len(slots)-1-i] = string(s)
	}
	p.NominalY(slotNames...)

	return p, nil
}

// gridXYZ adapts a Grid to plotter.GridXYZ with the first slot on the
// top row.
type gridXYZ struct {
	grid *corpus.Grid
	rows [][]int
}

func (d gridXYZ) Dims() (c, r int) {
	return len(d.grid.Days()), len(d.rows)
}

func (d gridXYZ) Z(c, r int) float64 {
	return float64(d.rows[len(d.rows)-1-r][c])
}

func (d gridXYZ) X(c int) float64 {
	return float64(c)
}

func (d gridXYZ) Y(r int) float64 {
	return float64(r)
}

func (d gridXYZ) labels() (*plotter.Labels, error) {
	cols, rows := d.Dims()

	xys := make(plotter.XYs, 0, cols*rows)
	text := make([]string, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			xys = append(xys, plotter.XY{X: d.X(c), Y: d.Y(r)})
			text = append(text, strconv.Itoa(int(d.Z(c, r))))
		}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	return labels, nil
}
