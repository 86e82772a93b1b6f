// Package dataprocessing implements the cleaning pipeline for the raw
// patient export: header normalization, tolerant type coercion, derived
// categorical fields, keep-first deduplication and descriptive summaries.
//
// The raw export has no fixed schema. Every step probes the table for the
// columns it needs and silently skips when they are absent; individual cell
// values that fail to parse become null rather than aborting the run.
package dataprocessing
