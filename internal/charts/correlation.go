package charts

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"

	"hospitalcli/internal/dataset"
)

// correlationMatrix computes pairwise Pearson correlations over the numeric
// columns, using only rows where both cells are non-null. Pairs with fewer
// than two complete rows correlate as 0.
func correlationMatrix(t *dataset.Table) ([]string, [][]float64) {
	var names []string
	var indices []int
	for _, col := range t.Columns() {
		if col.Kind == dataset.KindFloat || col.Kind == dataset.KindInt {
			idx, _ := t.ColumnIndex(col.Name)
			names = append(names, col.Name)
			indices = append(indices, idx)
		}
	}
	if len(names) < 2 {
		return names, nil
	}

	n := len(names)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c := pairwiseCorrelation(t, indices[i], indices[j])
			matrix[i][j] = c
			matrix[j][i] = c
		}
	}
	return names, matrix
}

func pairwiseCorrelation(t *dataset.Table, a, b int) float64 {
	var xs, ys []float64
	for r := 0; r < t.NumRows(); r++ {
		x, okX := t.Cell(r, a).AsFloat()
		y, okY := t.Cell(r, b).AsFloat()
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return 0
	}
	c := stat.Correlation(xs, ys, nil)
	if math.IsNaN(c) {
		return 0
	}
	return c
}

// corrGrid adapts a correlation matrix to the heat map plotter.
type corrGrid struct {
	names []string
	cells [][]float64
}

func (g corrGrid) Dims() (c, r int)   { return len(g.names), len(g.names) }
func (g corrGrid) Z(c, r int) float64 { return g.cells[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

func heatPalette() palette.Palette {
	return moreland.SmoothBlueRed().Palette(256)
}
