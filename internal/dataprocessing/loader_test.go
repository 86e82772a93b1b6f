package dataprocessing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "hospitalcli/internal/errors"
)

// writeWorkbook builds a single-sheet workbook from a header and rows.
func writeWorkbook(t *testing.T, path string, header []string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for c, name := range header {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, name))
	}
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	require.NoError(t, f.SaveAs(path))
}

func TestLoadWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")
	writeWorkbook(t, path,
		[]string{"Patient ID", "Age", "Sex"},
		[][]interface{}{
			{"1", "30", "m"},
			{"2", nil, "f"},
		})

	tbl, err := LoadWorkbook(path, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Patient ID", "Age", "Sex"}, tbl.ColumnNames())
	assert.Equal(t, 2, tbl.NumRows())

	v, _ := tbl.Cell(0, 0).AsString()
	assert.Equal(t, "1", v)
	v, _ = tbl.Cell(1, 2).AsString()
	assert.Equal(t, "f", v)
}

func TestLoadWorkbook_MissingFileIsFatal(t *testing.T) {
	_, err := LoadWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"), nil)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
}

func TestLoadWorkbook_ReadsFirstSheetOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multi.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "name"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Asha"))
	_, err := f.NewSheet("Second")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Second", "A1", "other"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := LoadWorkbook(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, tbl.ColumnNames())
	assert.Equal(t, 1, tbl.NumRows())
}
