package dataprocessing

import (
	"log/slog"
	"strings"

	"hospitalcli/internal/dataset"
)

// protectedNameParts mark identifier- and code-like columns that must never
// have values synthesized for them.
var protectedNameParts = []string{"id", "guid", "code"}

// FillMissingText replaces remaining nulls with "Unknown" in every
// string-kind column except identifier- and code-like ones. The age band
// is also left alone: a null band mirrors a null age. Returns the number
// of cells filled.
func FillMissingText(t *dataset.Table, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}

	filled := 0
	for _, col := range t.Columns() {
		if col.Kind != dataset.KindString || col.Name == ageBandColumn || isProtectedColumn(col.Name) {
			continue
		}
		t.Transform(col.Name, func(v dataset.Value) dataset.Value {
			if v.IsNull() {
				filled++
				return dataset.String(unknownLabel)
			}
			return v
		})
	}

	logger.Info("filled missing text values", slog.Int("cells", filled))
	return filled
}

func isProtectedColumn(name string) bool {
	for _, part := range protectedNameParts {
		if strings.Contains(name, part) {
			return true
		}
	}
	return false
}
