package charts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospitalcli/internal/config"
	"hospitalcli/internal/dataset"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	dir := t.TempDir()
	p := &config.Paths{
		OutputDir:  dir,
		FiguresDir: filepath.Join(dir, "figs"),
	}
	require.NoError(t, p.EnsureDirectories())
	return p
}

func fullTable() *dataset.Table {
	tbl := dataset.New([]string{"age", "sex", "state", "membership_status", "pincode"})
	tbl.SetColumnKind("age", dataset.KindFloat)
	tbl.SetColumnKind("pincode", dataset.KindFloat)

	rows := []struct {
		age     float64
		sex     string
		state   string
		status  string
		pincode float64
	}{
		{25, "M", "Maharashtra", "Active", 411001},
		{34, "F", "Maharashtra", "Inactive", 411002},
		{47, "F", "Karnataka", "Active", 560001},
		{61, "M", "Kerala", "Inactive", 682001},
		{18, "O", "Karnataka", "Active", 560002},
	}
	for _, r := range rows {
		tbl.AppendRow([]dataset.Value{
			dataset.Float(r.age),
			dataset.String(r.sex),
			dataset.String(r.state),
			dataset.String(r.status),
			dataset.Float(r.pincode),
		})
	}
	return tbl
}

func TestRenderAll_AllColumnsPresent(t *testing.T) {
	paths := testPaths(t)
	r := NewRenderer(nil, paths)

	written, err := r.RenderAll(context.Background(), fullTable())
	require.NoError(t, err)

	expected := []string{
		paths.FigurePath("age_distribution.png"),
		paths.FigurePath("gender_distribution.png"),
		paths.FigurePath("top_states.png"),
		paths.FigurePath("membership_status.png"),
		paths.FigurePath("correlation_heatmap.png"),
	}
	assert.Equal(t, expected, written)

	for _, path := range expected {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Greater(t, info.Size(), int64(0), path)
	}
}

func TestRenderAll_SkipsAbsentColumns(t *testing.T) {
	paths := testPaths(t)
	r := NewRenderer(nil, paths)

	tbl := dataset.New([]string{"age", "pincode"})
	tbl.SetColumnKind("age", dataset.KindFloat)
	tbl.SetColumnKind("pincode", dataset.KindFloat)
	tbl.AppendRow([]dataset.Value{dataset.Float(25), dataset.Float(411001)})
	tbl.AppendRow([]dataset.Value{dataset.Float(40), dataset.Float(411002)})
	tbl.AppendRow([]dataset.Value{dataset.Float(55), dataset.Float(560001)})

	written, err := r.RenderAll(context.Background(), tbl)
	require.NoError(t, err)

	assert.Equal(t, []string{
		paths.FigurePath("age_distribution.png"),
		paths.FigurePath("correlation_heatmap.png"),
	}, written)

	_, err = os.Stat(paths.FigurePath("gender_distribution.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(paths.FigurePath("membership_status.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestRenderAll_EmptyTableRendersNothing(t *testing.T) {
	paths := testPaths(t)
	r := NewRenderer(nil, paths)

	tbl := dataset.New([]string{"notes"})
	written, err := r.RenderAll(context.Background(), tbl)
	require.NoError(t, err)
	assert.Empty(t, written)
}

func TestCountValues(t *testing.T) {
	tbl := dataset.New([]string{"sex"})
	for _, s := range []string{"M", "F", "F", "M", "F"} {
		tbl.AppendRow([]dataset.Value{dataset.String(s)})
	}
	tbl.AppendRow([]dataset.Value{dataset.Null()})

	labels, counts := countValues(tbl, "sex")
	assert.Equal(t, []string{"F", "M", "Unknown"}, labels)
	assert.Equal(t, []float64{3, 2, 1}, counts)
}

func TestCorrelationMatrix(t *testing.T) {
	tbl := dataset.New([]string{"a", "b", "name"})
	tbl.SetColumnKind("a", dataset.KindFloat)
	tbl.SetColumnKind("b", dataset.KindFloat)
	for i := 0; i < 4; i++ {
		f := float64(i)
		tbl.AppendRow([]dataset.Value{dataset.Float(f), dataset.Float(2 * f), dataset.String("x")})
	}

	names, matrix := correlationMatrix(tbl)
	require.Equal(t, []string{"a", "b"}, names)
	assert.InDelta(t, 1, matrix[0][1], 1e-9)
	assert.InDelta(t, 1, matrix[1][0], 1e-9)
	assert.Equal(t, 1.0, matrix[0][0])
}

func TestCorrelationMatrix_RequiresTwoNumericColumns(t *testing.T) {
	tbl := dataset.New([]string{"a", "name"})
	tbl.SetColumnKind("a", dataset.KindFloat)
	names, matrix := correlationMatrix(tbl)
	assert.Len(t, names, 1)
	assert.Nil(t, matrix)
}
