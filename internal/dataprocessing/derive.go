package dataprocessing

import (
	"log/slog"
	"strings"

	"hospitalcli/internal/dataset"
)

// GenderColumns is the preference order for locating the gender-bearing
// column.
var GenderColumns = []string{"sex", "gender"}

var genderSynonyms = map[string]string{
	"m": "M", "male": "M",
	"f": "F", "female": "F",
	"o": "O", "other": "O", "others": "O",
}

const (
	ageColumn        = "age"
	ageBandColumn    = "age_band"
	fullNameColumn   = "fullname"
	statusColumn     = "membership_status"
	primaryFlagCol   = "ismembershipactive"
	secondaryFlagCol = "ismembershiptakendirectly"

	unknownLabel = "Unknown"

	minAge = 0
	maxAge = 120
)

// NormalizeGender canonicalizes the first present gender column to
// {M, F, O, Unknown}. Nulls and unrecognized values become Unknown. Returns
// the column used; absence of any candidate skips the step entirely.
func NormalizeGender(t *dataset.Table, logger *slog.Logger) (string, bool) {
	if logger == nil {
		logger = slog.Default()
	}
	col, ok := FindColumn(t, GenderColumns)
	if !ok {
		logger.Debug("no gender column present, skipping normalization")
		return "", false
	}

	t.Transform(col, func(v dataset.Value) dataset.Value {
		s, ok := v.AsString()
		if !ok {
			return dataset.String(unknownLabel)
		}
		if mapped, ok := genderSynonyms[strings.ToLower(strings.TrimSpace(s))]; ok {
			return dataset.String(mapped)
		}
		return dataset.String(unknownLabel)
	})
	t.SetColumnKind(col, dataset.KindString)

	logger.Info("normalized gender column", slog.String("column", col))
	return col, true
}

// ProcessAge coerces the age column to numeric, nulls out-of-range values
// and derives the age_band column. Band boundaries are right-inclusive with
// the first band closed on the left, so 0 lands in "0-12".
func ProcessAge(t *dataset.Table, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.Default()
	}
	if !t.Has(ageColumn) {
		logger.Debug("no age column present, skipping age processing")
		return false
	}

	t.Transform(ageColumn, func(v dataset.Value) dataset.Value {
		v = coerceNumeric(v)
		if f, ok := v.AsFloat(); ok && (f < minAge || f > maxAge) {
			return dataset.Null()
		}
		return v
	})
	t.SetColumnKind(ageColumn, dataset.KindFloat)

	bands := make([]dataset.Value, t.NumRows())
	for i := range bands {
		cell, _ := t.CellByName(i, ageColumn)
		if f, ok := cell.AsFloat(); ok {
			bands[i] = dataset.String(ageBand(f))
		} else {
			bands[i] = dataset.Null()
		}
	}
	if err := t.AddColumn(ageBandColumn, dataset.KindString, bands); err != nil {
		logger.Warn("could not add age band column", slog.String("error", err.Error()))
		return false
	}

	logger.Info("processed age column", slog.Int("rows", t.NumRows()))
	return true
}

// ageBand buckets an in-range age into its fixed band label.
func ageBand(age float64) string {
	switch {
	case age <= 12:
		return "0-12"
	case age <= 18:
		return "13-18"
	case age <= 30:
		return "19-30"
	case age <= 45:
		return "31-45"
	case age <= 60:
		return "46-60"
	case age <= 75:
		return "61-75"
	default:
		return "76+"
	}
}

// DeriveFullName ensures a fullname column when first/last name parts exist.
// An existing fullname column is only whitespace-trimmed. When neither a
// combined nor a first-name column exists the table is left untouched.
func DeriveFullName(t *dataset.Table, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.Default()
	}

	if t.Has(fullNameColumn) {
		t.Transform(fullNameColumn, func(v dataset.Value) dataset.Value {
			if s, ok := v.AsString(); ok {
				return dataset.String(strings.TrimSpace(s))
			}
			return v
		})
		logger.Debug("trimmed existing fullname column")
		return true
	}

	firstCol, ok := FindColumn(t, []string{"firstname", "first_name"})
	if !ok {
		logger.Debug("no name columns present, skipping fullname derivation")
		return false
	}
	lastCol, _ := FindColumn(t, []string{"lastname", "last_name"})

	part := func(row int, col string) string {
		if col == "" {
			return ""
		}
		cell, _ := t.CellByName(row, col)
		s, _ := cell.AsString()
		return s
	}

	values := make([]dataset.Value, t.NumRows())
	for i := range values {
		full := strings.Join(strings.Fields(part(i, firstCol)+" "+part(i, lastCol)), " ")
		if full == "" {
			values[i] = dataset.Null()
		} else {
			values[i] = dataset.String(full)
		}
	}
	if err := t.AddColumn(fullNameColumn, dataset.KindString, values); err != nil {
		logger.Warn("could not add fullname column", slog.String("error", err.Error()))
		return false
	}

	logger.Info("derived fullname column",
		slog.String("first_column", firstCol),
		slog.String("last_column", lastCol))
	return true
}

// DeriveMembership coerces the membership flag columns to 0/1 integers and
// derives membership_status from the primary flag when it exists.
func DeriveMembership(t *dataset.Table, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.Default()
	}

	for _, name := range []string{primaryFlagCol, secondaryFlagCol} {
		if !t.Has(name) {
			continue
		}
		t.Transform(name, func(v dataset.Value) dataset.Value {
			if f, ok := coerceNumeric(v).AsFloat(); ok {
				return dataset.Int(int64(f))
			}
			return dataset.Int(0)
		})
		t.SetColumnKind(name, dataset.KindInt)
	}

	if !t.Has(primaryFlagCol) {
		logger.Debug("no primary membership flag, skipping status derivation")
		return false
	}

	values := make([]dataset.Value, t.NumRows())
	for i := range values {
		cell, _ := t.CellByName(i, primaryFlagCol)
		if n, ok := cell.AsInt(); ok && n == 1 {
			values[i] = dataset.String("Active")
		} else {
			values[i] = dataset.String("Inactive")
		}
	}
	if err := t.AddColumn(statusColumn, dataset.KindString, values); err != nil {
		logger.Warn("could not add membership status column", slog.String("error", err.Error()))
		return false
	}

	logger.Info("derived membership status column")
	return true
}
