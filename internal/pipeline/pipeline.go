// Package pipeline wires the cleaning stages into a single sequential run:
// load, normalize, derive, deduplicate, summarize, chart and export.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"hospitalcli/internal/charts"
	"hospitalcli/internal/config"
	"hospitalcli/internal/dataprocessing"
	"hospitalcli/internal/exporter"
)

// Pipeline runs the end-to-end cleaning of one patient export.
type Pipeline struct {
	logger     *slog.Logger
	paths      *config.Paths
	summarizer *dataprocessing.Summarizer
	renderer   *charts.Renderer
	excel      *exporter.ExcelWriter
	csv        *exporter.CSVWriter
}

// Result reports what a run produced.
type Result struct {
	Rows        int
	Columns     int
	Removed     int
	OutputPaths []string
}

// New creates a pipeline over the given paths.
func New(logger *slog.Logger, paths *config.Paths) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:     logger,
		paths:      paths,
		summarizer: dataprocessing.NewSummarizer(logger, dataprocessing.DefaultSummarizerConfig()),
		renderer:   charts.NewRenderer(logger, paths),
		excel:      exporter.NewExcelWriter(logger),
		csv:        exporter.NewCSVWriter(logger),
	}
}

// Run executes every stage in order and returns the written output paths.
// Only input read and output write failures abort the run; cell-level
// problems have already been coerced to null by the stages themselves.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	logger := p.logger.With(slog.String("run_id", uuid.NewString()))

	table, err := dataprocessing.LoadWorkbook(p.paths.InputFile, logger)
	if err != nil {
		return nil, err
	}

	dataprocessing.NormalizeHeaders(table)
	dataprocessing.CleanText(table)
	dataprocessing.CoerceNumericColumns(table, logger)
	dataprocessing.ParseDateColumns(table, logger)

	dataprocessing.NormalizeGender(table, logger)
	dataprocessing.ProcessAge(table, logger)
	dataprocessing.DeriveFullName(table, logger)
	dataprocessing.DeriveMembership(table, logger)

	dedup := dataprocessing.Deduplicate(table, logger)
	dataprocessing.FillMissingText(table, logger)

	missing := p.summarizer.MissingValues(ctx, table)
	numeric := p.summarizer.Describe(ctx, table)

	if err := p.paths.EnsureDirectories(); err != nil {
		return nil, err
	}

	figures, err := p.renderer.RenderAll(ctx, table)
	if err != nil {
		return nil, err
	}

	if err := p.excel.WriteWorkbook(ctx, p.paths.WorkbookFile, table, missing, numeric); err != nil {
		return nil, err
	}
	if err := p.csv.WriteMissingSummary(p.paths.SummaryFile, missing); err != nil {
		return nil, err
	}

	result := &Result{
		Rows:        table.NumRows(),
		Columns:     table.NumCols(),
		Removed:     dedup.Removed,
		OutputPaths: append([]string{p.paths.WorkbookFile, p.paths.SummaryFile}, figures...),
	}

	logger.Info("pipeline complete",
		slog.Int("rows", result.Rows),
		slog.Int("columns", result.Columns),
		slog.Int("duplicates_removed", result.Removed),
		slog.Int("outputs", len(result.OutputPaths)))

	return result, nil
}
