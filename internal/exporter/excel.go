package exporter

import (
	"context"
	"log/slog"
	"math"

	"github.com/xuri/excelize/v2"

	"hospitalcli/internal/dataprocessing"
	"hospitalcli/internal/dataset"
	"hospitalcli/internal/errors"
)

// Sheet names in the cleaned workbook.
const (
	cleanedSheet = "cleaned_data"
	missingSheet = "missing_summary"
	numericSheet = "numeric_summary"
)

// ExcelWriter writes the cleaned workbook: the cleaned table plus the
// missing-value and numeric summaries as separate sheets.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates a new workbook writer.
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// WriteWorkbook writes the cleaned table and summaries to path. The numeric
// summary sheet is only added when there are numeric columns.
func (w *ExcelWriter) WriteWorkbook(
	ctx context.Context,
	path string,
	t *dataset.Table,
	missing []dataprocessing.MissingSummary,
	numeric []dataprocessing.NumericSummary,
) error {
	w.logger.InfoContext(ctx, "writing cleaned workbook",
		slog.String("path", path),
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.NumCols()))

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), cleanedSheet)
	if err := w.writeCleanedSheet(f, t); err != nil {
		return err
	}
	if err := w.writeMissingSheet(f, missing); err != nil {
		return err
	}
	if len(numeric) > 0 {
		if err := w.writeNumericSheet(f, numeric); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save cleaned workbook", err).
			WithContext("path", path)
	}
	return nil
}

func (w *ExcelWriter) writeCleanedSheet(f *excelize.File, t *dataset.Table) error {
	for c, name := range t.ColumnNames() {
		if err := setCell(f, cleanedSheet, c, 0, name); err != nil {
			return err
		}
	}
	for r := 0; r < t.NumRows(); r++ {
		for c := 0; c < t.NumCols(); c++ {
			if err := setValueCell(f, cleanedSheet, c, r+1, t.Cell(r, c)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *ExcelWriter) writeMissingSheet(f *excelize.File, missing []dataprocessing.MissingSummary) error {
	if _, err := f.NewSheet(missingSheet); err != nil {
		return errors.NewStorageError("failed to add missing summary sheet", err)
	}
	header := []interface{}{"column", "missing_count", "missing_pct"}
	for c, v := range header {
		if err := setCell(f, missingSheet, c, 0, v); err != nil {
			return err
		}
	}
	for r, row := range missing {
		cells := []interface{}{row.Column, row.MissingCount, row.MissingPct}
		for c, v := range cells {
			if err := setCell(f, missingSheet, c, r+1, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *ExcelWriter) writeNumericSheet(f *excelize.File, numeric []dataprocessing.NumericSummary) error {
	if _, err := f.NewSheet(numericSheet); err != nil {
		return errors.NewStorageError("failed to add numeric summary sheet", err)
	}
	header := []interface{}{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	for c, v := range header {
		if err := setCell(f, numericSheet, c, 0, v); err != nil {
			return err
		}
	}
	for r, row := range numeric {
		cells := []interface{}{
			row.Column, row.Count,
			row.Mean, row.Std, row.Min, row.Q25, row.Median, row.Q75, row.Max,
		}
		for c, v := range cells {
			if fv, ok := v.(float64); ok && math.IsNaN(fv) {
				continue // NaN stats export as empty cells
			}
			if err := setCell(f, numericSheet, c, r+1, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// setValueCell writes one table cell, keeping its type in the workbook.
// Null cells stay empty.
func setValueCell(f *excelize.File, sheet string, col, row int, v dataset.Value) error {
	if v.IsNull() {
		return nil
	}
	if s, ok := v.AsString(); ok {
		return setCell(f, sheet, col, row, s)
	}
	if n, ok := v.AsInt(); ok {
		return setCell(f, sheet, col, row, n)
	}
	if fl, ok := v.AsFloat(); ok {
		return setCell(f, sheet, col, row, fl)
	}
	if t, ok := v.AsTime(); ok {
		return setCell(f, sheet, col, row, t.Format("2006-01-02"))
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return errors.NewStorageError("failed to compute cell coordinates", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return errors.NewStorageError("failed to set workbook cell", err)
	}
	return nil
}
