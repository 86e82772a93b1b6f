package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"hospitalcli/internal/dataset"
)

// Summarizer computes the descriptive summaries written alongside the
// cleaned data: per-column missing-value counts and standard descriptive
// statistics over the numeric columns.
type Summarizer struct {
	logger       *slog.Logger
	pctPrecision int
}

// SummarizerConfig holds configuration options for the Summarizer.
type SummarizerConfig struct {
	PctPrecision int // Decimal places for missing-value proportions
}

// DefaultSummarizerConfig returns the configuration used by the pipeline.
func DefaultSummarizerConfig() SummarizerConfig {
	return SummarizerConfig{PctPrecision: 4}
}

// NewSummarizer creates a new summarizer with the given configuration.
func NewSummarizer(logger *slog.Logger, config SummarizerConfig) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if config.PctPrecision <= 0 {
		config.PctPrecision = 4
	}
	return &Summarizer{
		logger:       logger,
		pctPrecision: config.PctPrecision,
	}
}

// MissingSummary reports the null count and proportion for one column.
type MissingSummary struct {
	Column       string
	MissingCount int
	MissingPct   float64
}

// NumericSummary holds descriptive statistics for one numeric column.
// Std and the quantiles are NaN when too few values exist, matching the
// behavior of empty aggregations.
type NumericSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// MissingValues computes the missing-value summary over every column in
// table order.
func (s *Summarizer) MissingValues(ctx context.Context, t *dataset.Table) []MissingSummary {
	total := t.NumRows()
	scale := math.Pow(10, float64(s.pctPrecision))

	out := make([]MissingSummary, 0, t.NumCols())
	for _, col := range t.Columns() {
		idx, _ := t.ColumnIndex(col.Name)
		missing := 0
		for r := 0; r < total; r++ {
			if t.Cell(r, idx).IsNull() {
				missing++
			}
		}
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(missing)/float64(total)*scale) / scale
		}
		out = append(out, MissingSummary{
			Column:       col.Name,
			MissingCount: missing,
			MissingPct:   pct,
		})
	}

	s.logger.InfoContext(ctx, "computed missing-value summary",
		slog.Int("columns", len(out)),
		slog.Int("rows", total))

	return out
}

// Describe computes count, mean, sample standard deviation, min, quartiles
// and max for every numeric column. The result is empty when the table has
// no numeric columns.
func (s *Summarizer) Describe(ctx context.Context, t *dataset.Table) []NumericSummary {
	out := make([]NumericSummary, 0)
	for _, col := range t.Columns() {
		if col.Kind != dataset.KindFloat && col.Kind != dataset.KindInt {
			continue
		}
		idx, _ := t.ColumnIndex(col.Name)
		values := make([]float64, 0, t.NumRows())
		for r := 0; r < t.NumRows(); r++ {
			if f, ok := t.Cell(r, idx).AsFloat(); ok {
				values = append(values, f)
			}
		}
		out = append(out, describeColumn(col.Name, values))
	}

	s.logger.InfoContext(ctx, "computed numeric summary",
		slog.Int("numeric_columns", len(out)))

	return out
}

// describeColumn computes the descriptive statistics for one column's
// non-null values.
func describeColumn(name string, values []float64) NumericSummary {
	summary := NumericSummary{
		Column: name,
		Count:  len(values),
		Mean:   math.NaN(),
		Std:    math.NaN(),
		Min:    math.NaN(),
		Q25:    math.NaN(),
		Median: math.NaN(),
		Q75:    math.NaN(),
		Max:    math.NaN(),
	}
	if len(values) == 0 {
		return summary
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	summary.Mean = stat.Mean(sorted, nil)
	summary.Min = sorted[0]
	summary.Max = sorted[len(sorted)-1]
	summary.Q25 = stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	summary.Median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	summary.Q75 = stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	if len(sorted) > 1 {
		summary.Std = stat.StdDev(sorted, nil)
	}

	return summary
}
