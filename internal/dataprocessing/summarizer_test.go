package dataprocessing

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospitalcli/internal/dataset"
)

func TestSummarizer_MissingValues(t *testing.T) {
	tbl := dataset.New([]string{"a", "b"})
	tbl.AppendRow([]dataset.Value{dataset.String("x"), dataset.Null()})
	tbl.AppendRow([]dataset.Value{dataset.Null(), dataset.Null()})
	tbl.AppendRow([]dataset.Value{dataset.String("y"), dataset.String("z")})

	s := NewSummarizer(nil, DefaultSummarizerConfig())
	summary := s.MissingValues(context.Background(), tbl)

	require.Len(t, summary, 2)

	assert.Equal(t, "a", summary[0].Column)
	assert.Equal(t, 1, summary[0].MissingCount)
	assert.Equal(t, 0.3333, summary[0].MissingPct)

	assert.Equal(t, "b", summary[1].Column)
	assert.Equal(t, 2, summary[1].MissingCount)
	assert.Equal(t, 0.6667, summary[1].MissingPct)

	// missing + non-null == total for every column.
	for _, col := range summary {
		assert.LessOrEqual(t, col.MissingCount, tbl.NumRows())
	}
}

func TestSummarizer_MissingValuesEmptyTable(t *testing.T) {
	tbl := dataset.New([]string{"a"})
	s := NewSummarizer(nil, DefaultSummarizerConfig())
	summary := s.MissingValues(context.Background(), tbl)

	require.Len(t, summary, 1)
	assert.Equal(t, 0, summary[0].MissingCount)
	assert.Equal(t, 0.0, summary[0].MissingPct)
}

func TestSummarizer_Describe(t *testing.T) {
	tbl := dataset.New([]string{"age", "name"})
	tbl.SetColumnKind("age", dataset.KindFloat)
	for _, f := range []float64{10, 20, 30, 40} {
		tbl.AppendRow([]dataset.Value{dataset.Float(f), dataset.String("x")})
	}
	tbl.AppendRow([]dataset.Value{dataset.Null(), dataset.String("y")})

	s := NewSummarizer(nil, DefaultSummarizerConfig())
	summary := s.Describe(context.Background(), tbl)

	require.Len(t, summary, 1)
	got := summary[0]

	assert.Equal(t, "age", got.Column)
	assert.Equal(t, 4, got.Count)
	assert.InDelta(t, 25, got.Mean, 1e-9)
	assert.InDelta(t, 12.909944487358056, got.Std, 1e-9)
	assert.InDelta(t, 10, got.Min, 1e-9)
	assert.InDelta(t, 17.5, got.Q25, 1e-9)
	assert.InDelta(t, 25, got.Median, 1e-9)
	assert.InDelta(t, 32.5, got.Q75, 1e-9)
	assert.InDelta(t, 40, got.Max, 1e-9)
}

func TestSummarizer_DescribeIntColumns(t *testing.T) {
	tbl := dataset.New([]string{"ismembershipactive"})
	tbl.SetColumnKind("ismembershipactive", dataset.KindInt)
	for _, n := range []int64{1, 0, 1} {
		tbl.AppendRow([]dataset.Value{dataset.Int(n)})
	}

	s := NewSummarizer(nil, DefaultSummarizerConfig())
	summary := s.Describe(context.Background(), tbl)

	require.Len(t, summary, 1)
	assert.Equal(t, 3, summary[0].Count)
	assert.InDelta(t, 2.0/3.0, summary[0].Mean, 1e-9)
}

func TestSummarizer_DescribeNoNumericColumns(t *testing.T) {
	tbl := dataset.New([]string{"name"})
	tbl.AppendRow([]dataset.Value{dataset.String("x")})

	s := NewSummarizer(nil, DefaultSummarizerConfig())
	assert.Empty(t, s.Describe(context.Background(), tbl))
}

func TestDescribeColumn_DegenerateCounts(t *testing.T) {
	empty := describeColumn("a", nil)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, math.IsNaN(empty.Mean))
	assert.True(t, math.IsNaN(empty.Std))

	single := describeColumn("a", []float64{7})
	assert.Equal(t, 1, single.Count)
	assert.Equal(t, 7.0, single.Mean)
	assert.Equal(t, 7.0, single.Min)
	assert.Equal(t, 7.0, single.Max)
	assert.True(t, math.IsNaN(single.Std), "sample std undefined for one value")
}
