package dataset

import "fmt"

// Table is the reference Tabular implementation. The first column added
// fixes the row count; every later column must match it. Column order is
// preserved for deterministic enumeration.
type Table struct {
	name    string
	rows    int
	sized   bool
	order   []string
	types   map[string]ColumnType
	numeric map[string][]float64
	strs    map[string][]string
}

// NewTable creates an empty named table.
func NewTable(name string) *Table {
	return &Table{
		name:    name,
		types:   make(map[string]ColumnType),
		numeric: make(map[string][]float64),
		strs:    make(map[string][]string),
	}
}

func (t *Table) Name() string { return t.name }
func (t *Table) Kind() Kind   { return KindTabular }

// RowCount returns the fixed row count (0 for an empty table).
func (t *Table) RowCount() int { return t.rows }

// ColumnNames returns the column names in insertion order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.types[name]
	return ok
}

func (t *Table) ColumnType(name string) (ColumnType, bool) {
	ct, ok := t.types[name]
	return ct, ok
}

// AddNumericColumn appends a numeric column. The first column added fixes
// the table's row count.
func (t *Table) AddNumericColumn(name string, values []float64) error {
	if err := t.admit(name, len(values)); err != nil {
		return err
	}
	col := make([]float64, len(values))
	copy(col, values)
	t.numeric[name] = col
	t.types[name] = ColumnNumeric
	t.order = append(t.order, name)
	return nil
}

// AddStringColumn appends a string column. The first column added fixes
// the table's row count.
func (t *Table) AddStringColumn(name string, values []string) error {
	if err := t.admit(name, len(values)); err != nil {
		return err
	}
	col := make([]string, len(values))
	copy(col, values)
	t.strs[name] = col
	t.types[name] = ColumnString
	t.order = append(t.order, name)
	return nil
}

// NumericColumn returns a copy of the named numeric column's values.
func (t *Table) NumericColumn(name string) ([]float64, error) {
	ct, ok := t.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in table %q", ErrColumnNotFound, name, t.name)
	}
	if ct != ColumnNumeric {
		return nil, fmt.Errorf("%w: column %q is %s, not numeric", ErrColumnType, name, ct)
	}
	out := make([]float64, len(t.numeric[name]))
	copy(out, t.numeric[name])
	return out, nil
}

// StringColumn returns a copy of the named string column's values.
func (t *Table) StringColumn(name string) ([]string, error) {
	ct, ok := t.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in table %q", ErrColumnNotFound, name, t.name)
	}
	if ct != ColumnString {
		return nil, fmt.Errorf("%w: column %q is %s, not string", ErrColumnType, name, ct)
	}
	out := make([]string, len(t.strs[name]))
	copy(out, t.strs[name])
	return out, nil
}

func (t *Table) admit(name string, length int) error {
	if _, ok := t.types[name]; ok {
		return fmt.Errorf("%w: %q in table %q", ErrDuplicateColumn, name, t.name)
	}
	if !t.sized {
		t.rows = length
		t.sized = true
		return nil
	}
	if length != t.rows {
		return fmt.Errorf("%w: column %q has %d values, table %q has %d rows",
			ErrRowCountMismatch, name, length, t.name, t.rows)
	}
	return nil
}
