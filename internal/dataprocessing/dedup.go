package dataprocessing

import (
	"log/slog"
	"strings"

	"hospitalcli/internal/dataset"
)

// IdentifierColumns is the preference order for unique-record keys.
var IdentifierColumns = []string{"patientid", "patient_id", "guid", "patientguid"}

// fallbackKeyColumns form the composite dedup key when no identifier column
// exists. Only the ones present in the table participate, in this order.
var fallbackKeyColumns = []string{"fullname", "mobile", "mobileno", "phone", "age", "sex", "gender"}

// DedupPolicy names the key selection strategy that was applied.
type DedupPolicy string

const (
	DedupByIdentifier DedupPolicy = "identifier"
	DedupByComposite  DedupPolicy = "composite"
	DedupByFullRow    DedupPolicy = "full_row"
)

// DedupResult reports what Deduplicate did.
type DedupResult struct {
	Policy     DedupPolicy
	KeyColumns []string
	Removed    int
}

// Deduplicate removes duplicate rows keeping the first occurrence in
// original order. Key priority: the first present identifier column, then
// the composite of present fallback columns, then whole-row equality. Null
// cells compare equal to null cells.
func Deduplicate(t *dataset.Table, logger *slog.Logger) DedupResult {
	if logger == nil {
		logger = slog.Default()
	}

	result := DedupResult{}
	var keyIdx []int

	if name, ok := FindColumn(t, IdentifierColumns); ok {
		idx, _ := t.ColumnIndex(name)
		keyIdx = []int{idx}
		result.Policy = DedupByIdentifier
		result.KeyColumns = []string{name}
	} else {
		for _, name := range fallbackKeyColumns {
			if idx, ok := t.ColumnIndex(name); ok {
				keyIdx = append(keyIdx, idx)
				result.KeyColumns = append(result.KeyColumns, name)
			}
		}
		if len(keyIdx) > 0 {
			result.Policy = DedupByComposite
		} else {
			for i := 0; i < t.NumCols(); i++ {
				keyIdx = append(keyIdx, i)
			}
			result.Policy = DedupByFullRow
			result.KeyColumns = t.ColumnNames()
		}
	}

	seen := make(map[string]struct{}, t.NumRows())
	keep := make([]bool, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		parts := make([]string, len(keyIdx))
		for j, idx := range keyIdx {
			parts[j] = t.Cell(i, idx).Key()
		}
		key := strings.Join(parts, "\x1f")
		if _, dup := seen[key]; dup {
			result.Removed++
			continue
		}
		seen[key] = struct{}{}
		keep[i] = true
	}
	t.Filter(keep)

	logger.Info("deduplicated rows",
		slog.String("policy", string(result.Policy)),
		slog.Any("key_columns", result.KeyColumns),
		slog.Int("removed", result.Removed),
		slog.Int("remaining", t.NumRows()))

	return result
}
