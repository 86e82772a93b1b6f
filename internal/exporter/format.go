package exporter

import (
	"math"
	"strconv"
)

// formatFloat formats a float64 for CSV output. NaN renders as the empty
// string, the way empty aggregations export.
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatPct formats a missing-value proportion with fixed precision so that
// 0.25 exports as 0.2500.
func formatPct(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// formatInt formats an int for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}
