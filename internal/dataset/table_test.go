package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Accessors(t *testing.T) {
	tests := []struct {
		name   string
		value  Value
		isNull bool
		format string
	}{
		{name: "null", value: Null(), isNull: true, format: ""},
		{name: "string", value: String("abc"), format: "abc"},
		{name: "float", value: Float(12.5), format: "12.5"},
		{name: "int", value: Int(7), format: "7"},
		{name: "time", value: Time(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), format: "2024-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isNull, tt.value.IsNull())
			assert.Equal(t, tt.format, tt.value.Format())
		})
	}
}

func TestValue_AsFloatConvertsInts(t *testing.T) {
	f, ok := Int(42).AsFloat()
	require.True(t, ok)
	assert.Equal(t, 42.0, f)

	_, ok = String("42").AsFloat()
	assert.False(t, ok)
}

func TestValue_KeyTreatsNullsEqual(t *testing.T) {
	assert.Equal(t, Null().Key(), Null().Key())
	assert.NotEqual(t, String("").Key(), Null().Key())
	assert.NotEqual(t, String("1").Key(), Float(1).Key())
}

func TestTable_AppendRowPadsShortRows(t *testing.T) {
	tbl := New([]string{"a", "b", "c"})
	tbl.AppendRow([]Value{String("x")})

	require.Equal(t, 1, tbl.NumRows())
	assert.False(t, tbl.Cell(0, 0).IsNull())
	assert.True(t, tbl.Cell(0, 1).IsNull())
	assert.True(t, tbl.Cell(0, 2).IsNull())
}

func TestTable_RenameColumnsRebuildsIndex(t *testing.T) {
	tbl := New([]string{"Patient ID", "Age"})
	tbl.RenameColumns(func(s string) string {
		if s == "Patient ID" {
			return "patient_id"
		}
		return "age"
	})

	assert.True(t, tbl.Has("patient_id"))
	assert.True(t, tbl.Has("age"))
	assert.False(t, tbl.Has("Patient ID"))
}

func TestTable_AddColumn(t *testing.T) {
	tbl := New([]string{"a"})
	tbl.AppendRow([]Value{String("1")})
	tbl.AppendRow([]Value{String("2")})

	require.NoError(t, tbl.AddColumn("b", KindInt, []Value{Int(1), Int(2)}))
	assert.Equal(t, 2, tbl.NumCols())

	v, ok := tbl.CellByName(1, "b")
	require.True(t, ok)
	n, ok := v.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(2), n)

	assert.Error(t, tbl.AddColumn("b", KindInt, []Value{Int(0), Int(0)}))
	assert.Error(t, tbl.AddColumn("c", KindInt, []Value{Int(0)}))
}

func TestTable_FilterKeepsOrder(t *testing.T) {
	tbl := New([]string{"a"})
	for _, s := range []string{"1", "2", "3", "4"} {
		tbl.AppendRow([]Value{String(s)})
	}
	tbl.Filter([]bool{true, false, true, false})

	require.Equal(t, 2, tbl.NumRows())
	v, _ := tbl.Cell(0, 0).AsString()
	assert.Equal(t, "1", v)
	v, _ = tbl.Cell(1, 0).AsString()
	assert.Equal(t, "3", v)
}

func TestTable_TransformMissingColumn(t *testing.T) {
	tbl := New([]string{"a"})
	assert.False(t, tbl.Transform("missing", func(v Value) Value { return v }))
}
