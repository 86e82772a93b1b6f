package dataprocessing

import (
	"log/slog"

	"github.com/xuri/excelize/v2"

	"hospitalcli/internal/dataset"
	"hospitalcli/internal/errors"
)

// LoadWorkbook reads the first sheet of the input workbook into a table of
// string cells. The first row is treated as the header row; ragged data rows
// are padded with nulls to the header width.
func LoadWorkbook(path string, logger *slog.Logger) (*dataset.Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open input workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("input workbook has no sheets", nil).
			WithContext("path", path)
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, errors.NewParsingError("failed to read input sheet", err).
			WithContext("sheet", sheetName)
	}
	if len(rows) == 0 {
		return nil, errors.NewParsingError("input sheet has no header row", nil).
			WithContext("sheet", sheetName)
	}

	header := rows[0]
	table := dataset.New(header)
	for _, row := range rows[1:] {
		cells := make([]dataset.Value, len(header))
		for i := range cells {
			if i < len(row) {
				cells[i] = dataset.String(row[i])
			} else {
				cells[i] = dataset.Null()
			}
		}
		table.AppendRow(cells)
	}

	logger.Info("loaded input workbook",
		slog.String("path", path),
		slog.String("sheet", sheetName),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumCols()))

	return table, nil
}
