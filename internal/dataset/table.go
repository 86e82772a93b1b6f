package dataset

import (
	"fmt"
)

// Column describes one column of a Table.
type Column struct {
	Name string
	Kind Kind
}

// Table is an in-memory table with a runtime-discovered column set.
// Columns keep their original order; rows keep their original order until
// filtered. There is no fixed schema: callers probe for optional columns by
// name before acting on them.
type Table struct {
	cols  []Column
	index map[string]int
	rows  [][]Value
}

// New creates an empty table with the given column names, all string-kind.
func New(names []string) *Table {
	t := &Table{
		cols:  make([]Column, 0, len(names)),
		index: make(map[string]int, len(names)),
	}
	for _, name := range names {
		t.cols = append(t.cols, Column{Name: name, Kind: KindString})
	}
	t.rebuildIndex()
	return t
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns a copy of the column descriptors in table order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.cols))
	copy(out, t.cols)
	return out
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Has reports whether a column with the given name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// ColumnKind returns the kind of the named column.
func (t *Table) ColumnKind(name string) (Kind, bool) {
	i, ok := t.index[name]
	if !ok {
		return KindString, false
	}
	return t.cols[i].Kind, true
}

// SetColumnKind updates the declared kind of the named column. It is the
// caller's responsibility that the cells match.
func (t *Table) SetColumnKind(name string, k Kind) bool {
	i, ok := t.index[name]
	if !ok {
		return false
	}
	t.cols[i].Kind = k
	return true
}

// RenameColumns applies fn to every column name. When two renamed columns
// collide, lookups resolve to the first occurrence.
func (t *Table) RenameColumns(fn func(string) string) {
	for i := range t.cols {
		t.cols[i].Name = fn(t.cols[i].Name)
	}
	t.rebuildIndex()
}

// AppendRow adds a row. Short rows are padded with nulls; long rows are
// truncated to the column count.
func (t *Table) AppendRow(row []Value) {
	r := make([]Value, len(t.cols))
	for i := range r {
		if i < len(row) {
			r[i] = row[i]
		} else {
			r[i] = Null()
		}
	}
	t.rows = append(t.rows, r)
}

// Cell returns the cell at the given row and column position.
func (t *Table) Cell(row, col int) Value {
	return t.rows[row][col]
}

// CellByName returns the cell at the given row in the named column.
func (t *Table) CellByName(row int, name string) (Value, bool) {
	i, ok := t.index[name]
	if !ok {
		return Null(), false
	}
	return t.rows[row][i], true
}

// SetCell replaces the cell at the given row and column position.
func (t *Table) SetCell(row, col int, v Value) {
	t.rows[row][col] = v
}

// Transform applies fn to every cell of the named column in place. Returns
// false when the column does not exist.
func (t *Table) Transform(name string, fn func(Value) Value) bool {
	i, ok := t.index[name]
	if !ok {
		return false
	}
	for r := range t.rows {
		t.rows[r][i] = fn(t.rows[r][i])
	}
	return true
}

// AddColumn appends a derived column. The value count must match the row
// count exactly.
func (t *Table) AddColumn(name string, kind Kind, values []Value) error {
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %s: %d values for %d rows", name, len(values), len(t.rows))
	}
	if t.Has(name) {
		return fmt.Errorf("column %s already exists", name)
	}
	t.cols = append(t.cols, Column{Name: name, Kind: kind})
	t.index[name] = len(t.cols) - 1
	for r := range t.rows {
		t.rows[r] = append(t.rows[r], values[r])
	}
	return nil
}

// Filter keeps only the rows whose keep flag is true, preserving order.
func (t *Table) Filter(keep []bool) {
	if len(keep) != len(t.rows) {
		return
	}
	out := t.rows[:0]
	for i, row := range t.rows {
		if keep[i] {
			out = append(out, row)
		}
	}
	t.rows = out
}

// Row returns the raw cells of a row in column order.
func (t *Table) Row(i int) []Value {
	return t.rows[i]
}

func (t *Table) rebuildIndex() {
	t.index = make(map[string]int, len(t.cols))
	for i, c := range t.cols {
		if _, seen := t.index[c.Name]; !seen {
			t.index[c.Name] = i
		}
	}
}
