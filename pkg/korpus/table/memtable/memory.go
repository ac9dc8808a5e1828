package memtable

import (
	"fmt"
	"sync"
)

// Table is an in-memory implementation of table.Table for tests, examples,
// and small corpora assembled in process.
type Table struct {
	mu   sync.RWMutex
	cols []string
	data map[string][]string
	rows int
}

// New creates an empty table with the given column names. Column order is
// preserved as registered; duplicate names are collapsed to the first.
func New(columns ...string) *Table {
	t := &Table{data: make(map[string][]string, len(columns))}
	for _, col := range columns {
		if col == "" {
			continue
		}
		if _, ok := t.data[col]; ok {
			continue
		}
		t.cols = append(t.cols, col)
		t.data[col] = nil
	}
	return t
}

// Append adds one row. Registered columns missing from the row get an empty
// value; keys outside the registered columns are ignored.
func (t *Table) Append(row map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, col := range t.cols {
		t.data[col] = append(t.data[col], row[col])
	}
	t.rows++
}

// Len returns the number of rows.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows
}

// Columns implements table.Table.
func (t *Table) Columns() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// Column implements table.Table. Values are copied out so later Appends do
// not alias into the caller's slice.
func (t *Table) Column(name string) ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	values, ok := t.data[name]
	if !ok {
		return nil, fmt.Errorf("memtable: no column %q", name)
	}
	out := make([]string, len(values))
	copy(out, values)
	return out, nil
}
