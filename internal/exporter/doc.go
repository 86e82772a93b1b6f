// Package exporter writes the cleaned table and its summaries to disk: a
// multi-sheet xlsx workbook and a standalone CSV missing-value summary.
package exporter
