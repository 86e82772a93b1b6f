package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	"hospitalcli/internal/dataset"
)

// numericIdentifierColumns are coerced to numeric after header
// normalization. Unparsable cells become null.
var numericIdentifierColumns = []string{
	"age", "pincode", "zipcode", "daywisesno",
	"tahsilid", "blockid", "stateid", "cityid", "districtid",
}

// dateIndicators mark a column as date-bearing when its normalized name
// contains any of them.
var dateIndicators = []string{"date", "dob", "created", "updated", "registration"}

// dateLayouts are tried in order when parsing date-bearing columns.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
	"Jan 2 2006",
	"1/2/06 15:04",
}

// NormalizeName converts a raw column header into a canonical lowercase,
// underscore-separated identifier. Punctuation is dropped and whitespace
// runs collapse to a single underscore. The function is idempotent.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(strings.Join(strings.Fields(b.String()), "_"))
}

// NormalizeHeaders renames every column with NormalizeName.
func NormalizeHeaders(t *dataset.Table) {
	t.RenameColumns(NormalizeName)
}

// CleanText trims every cell of every string-kind column and nulls out
// empty strings and the literals "nan" and "None".
func CleanText(t *dataset.Table) {
	for _, col := range t.Columns() {
		if col.Kind != dataset.KindString {
			continue
		}
		t.Transform(col.Name, func(v dataset.Value) dataset.Value {
			s, ok := v.AsString()
			if !ok {
				return v
			}
			s = strings.TrimSpace(s)
			if s == "" || s == "nan" || s == "None" {
				return dataset.Null()
			}
			return dataset.String(s)
		})
	}
}

// CoerceNumericColumns converts the well-known numeric columns to float
// cells, nulling anything that does not parse.
func CoerceNumericColumns(t *dataset.Table, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, name := range numericIdentifierColumns {
		if !t.Has(name) {
			continue
		}
		t.Transform(name, coerceNumeric)
		t.SetColumnKind(name, dataset.KindFloat)
		logger.Debug("coerced column to numeric", slog.String("column", name))
	}
}

// ParseDateColumns converts date-bearing columns to time cells, nulling
// anything no layout accepts.
func ParseDateColumns(t *dataset.Table, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, col := range t.Columns() {
		if !isDateColumn(col.Name) {
			continue
		}
		t.Transform(col.Name, parseDate)
		t.SetColumnKind(col.Name, dataset.KindTime)
		logger.Debug("parsed column as dates", slog.String("column", col.Name))
	}
}

// coerceNumeric converts a cell to a float, stripping thousands separators
// first. Cells that are already numeric pass through; failures become null.
func coerceNumeric(v dataset.Value) dataset.Value {
	if v.IsNull() {
		return v
	}
	if f, ok := v.AsFloat(); ok {
		return dataset.Float(f)
	}
	s, ok := v.AsString()
	if !ok {
		return dataset.Null()
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return dataset.Null()
	}
	return dataset.Float(f)
}

func parseDate(v dataset.Value) dataset.Value {
	if v.IsNull() {
		return v
	}
	if t, ok := v.AsTime(); ok {
		return dataset.Time(t)
	}
	s, ok := v.AsString()
	if !ok {
		return dataset.Null()
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dataset.Time(t)
		}
	}
	return dataset.Null()
}

func isDateColumn(name string) bool {
	for _, indicator := range dateIndicators {
		if strings.Contains(name, indicator) {
			return true
		}
	}
	return false
}

// FindColumn returns the first of the candidate names present in the table.
func FindColumn(t *dataset.Table, candidates []string) (string, bool) {
	for _, name := range candidates {
		if t.Has(name) {
			return name, true
		}
	}
	return "", false
}
