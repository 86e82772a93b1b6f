// Package charts renders the fixed set of PNG figures for the cleaned
// patient table. Every figure is gated on its source columns being present;
// a missing column skips that figure without error.
package charts

import (
	"context"
	"log/slog"
	"os"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"hospitalcli/internal/config"
	"hospitalcli/internal/dataprocessing"
	"hospitalcli/internal/dataset"
	"hospitalcli/internal/errors"
)

// geoColumns is the preference order for the geography chart.
var geoColumns = []string{"state", "state_name", "stateid"}

const (
	histogramBins = 20
	topGeoCount   = 10

	ageFigure         = "age_distribution.png"
	genderFigure      = "gender_distribution.png"
	geoFigure         = "top_states.png"
	membershipFigure  = "membership_status.png"
	correlationFigure = "correlation_heatmap.png"
)

// Renderer writes chart images into the configured figures directory.
type Renderer struct {
	logger *slog.Logger
	paths  *config.Paths
}

// NewRenderer creates a chart renderer.
func NewRenderer(logger *slog.Logger, paths *config.Paths) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger, paths: paths}
}

// RenderAll renders every applicable figure and returns the written paths.
// Figures whose columns are absent are skipped silently; a failed write is
// an error.
func (r *Renderer) RenderAll(ctx context.Context, t *dataset.Table) ([]string, error) {
	steps := []func(*dataset.Table) (string, bool, error){
		r.ageHistogram,
		r.genderBars,
		r.topGeography,
		r.membershipPie,
		r.correlationHeatmap,
	}

	var written []string
	for _, step := range steps {
		path, rendered, err := step(t)
		if err != nil {
			return written, err
		}
		if rendered {
			written = append(written, path)
		}
	}

	r.logger.InfoContext(ctx, "rendered figures",
		slog.Int("count", len(written)),
		slog.String("dir", r.paths.FiguresDir))

	return written, nil
}

func (r *Renderer) ageHistogram(t *dataset.Table) (string, bool, error) {
	idx, ok := t.ColumnIndex("age")
	if !ok {
		r.logger.Debug("no age column, skipping age histogram")
		return "", false, nil
	}
	var ages plotter.Values
	for i := 0; i < t.NumRows(); i++ {
		if f, okF := t.Cell(i, idx).AsFloat(); okF {
			ages = append(ages, f)
		}
	}
	if len(ages) == 0 {
		return "", false, nil
	}

	p := plot.New()
	p.Title.Text = "Age Distribution"
	p.X.Label.Text = "Age"
	p.Y.Label.Text = "Count"

	hist, err := plotter.NewHist(ages, histogramBins)
	if err != nil {
		return "", false, errors.NewStorageError("failed to build age histogram", err)
	}
	p.Add(hist)

	path := r.paths.FigurePath(ageFigure)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", false, errors.NewStorageError("failed to save age histogram", err)
	}
	return path, true, nil
}

func (r *Renderer) genderBars(t *dataset.Table) (string, bool, error) {
	col, ok := dataprocessing.FindColumn(t, dataprocessing.GenderColumns)
	if !ok {
		r.logger.Debug("no gender column, skipping gender chart")
		return "", false, nil
	}
	labels, counts := countValues(t, col)
	if len(labels) == 0 {
		return "", false, nil
	}

	p := plot.New()
	p.Title.Text = "Gender Distribution"
	p.X.Label.Text = "Gender"
	p.Y.Label.Text = "Count"

	bars, err := plotter.NewBarChart(plotter.Values(counts), vg.Points(30))
	if err != nil {
		return "", false, errors.NewStorageError("failed to build gender chart", err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	path := r.paths.FigurePath(genderFigure)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", false, errors.NewStorageError("failed to save gender chart", err)
	}
	return path, true, nil
}

func (r *Renderer) topGeography(t *dataset.Table) (string, bool, error) {
	col, ok := dataprocessing.FindColumn(t, geoColumns)
	if !ok {
		r.logger.Debug("no geography column, skipping state chart")
		return "", false, nil
	}
	labels, counts := countValues(t, col)
	if len(labels) == 0 {
		return "", false, nil
	}
	if len(labels) > topGeoCount {
		labels = labels[:topGeoCount]
		counts = counts[:topGeoCount]
	}
	// Ascending order reads bottom-up on a horizontal chart.
	reverse(labels, counts)

	p := plot.New()
	p.Title.Text = "Top 10 States by Patient Count"
	p.X.Label.Text = "Patients"
	p.Y.Label.Text = "State"

	bars, err := plotter.NewBarChart(plotter.Values(counts), vg.Points(15))
	if err != nil {
		return "", false, errors.NewStorageError("failed to build state chart", err)
	}
	bars.Horizontal = true
	p.Add(bars)
	p.NominalY(labels...)

	path := r.paths.FigurePath(geoFigure)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", false, errors.NewStorageError("failed to save state chart", err)
	}
	return path, true, nil
}

func (r *Renderer) membershipPie(t *dataset.Table) (string, bool, error) {
	if !t.Has("membership_status") {
		r.logger.Debug("no membership status column, skipping pie chart")
		return "", false, nil
	}
	labels, counts := countValues(t, "membership_status")
	if len(labels) == 0 {
		return "", false, nil
	}

	values := make([]chart.Value, len(labels))
	for i := range labels {
		values[i] = chart.Value{Label: labels[i], Value: counts[i]}
	}
	pie := chart.PieChart{
		Title:  "Membership Status",
		Width:  512,
		Height: 512,
		Values: values,
	}

	path := r.paths.FigurePath(membershipFigure)
	f, err := os.Create(path)
	if err != nil {
		return "", false, errors.NewStorageError("failed to create pie chart file", err)
	}
	defer f.Close()
	if err := pie.Render(chart.PNG, f); err != nil {
		return "", false, errors.NewStorageError("failed to render membership pie chart", err)
	}
	return path, true, nil
}

func (r *Renderer) correlationHeatmap(t *dataset.Table) (string, bool, error) {
	names, matrix := correlationMatrix(t)
	if len(names) < 2 {
		r.logger.Debug("fewer than two numeric columns, skipping heatmap")
		return "", false, nil
	}

	p := plot.New()
	p.Title.Text = "Correlation Heatmap (Numeric Columns)"

	hm := plotter.NewHeatMap(corrGrid{names: names, cells: matrix}, heatPalette())
	p.Add(hm)

	ticks := make([]plot.Tick, len(names))
	for i, name := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	path := r.paths.FigurePath(correlationFigure)
	if err := p.Save(6*vg.Inch, 5*vg.Inch, path); err != nil {
		return "", false, errors.NewStorageError("failed to save correlation heatmap", err)
	}
	return path, true, nil
}

// countValues tallies the values of a column, labelling nulls "Unknown".
// The result is sorted by count descending, first appearance breaking ties.
func countValues(t *dataset.Table, col string) ([]string, []float64) {
	idx, ok := t.ColumnIndex(col)
	if !ok {
		return nil, nil
	}

	var order []string
	counts := make(map[string]float64)
	for i := 0; i < t.NumRows(); i++ {
		cell := t.Cell(i, idx)
		label := "Unknown"
		if !cell.IsNull() {
			label = cell.Format()
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	rank := make(map[string]int, len(order))
	for i, label := range order {
		rank[label] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return rank[order[i]] < rank[order[j]]
	})

	values := make([]float64, len(order))
	for i, label := range order {
		values[i] = counts[label]
	}
	return order, values
}

func reverse(labels []string, counts []float64) {
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
		counts[i], counts[j] = counts[j], counts[i]
	}
}
