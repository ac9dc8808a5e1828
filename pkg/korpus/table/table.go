package table

// Table is the row-oriented collaborator that supplies text data for corpus
// construction. Implementations expose named columns of row values in a
// stable row order; the corpus reads exactly one text column and never
// writes back.
//
// Lifetime is owned by the caller: implementations holding external
// resources (see the sqlite package) provide their own Close.
type Table interface {
	// Columns lists the column names available on the table.
	Columns() []string

	// Column returns the values of the named column, one per row, in row
	// order. The error is reserved for I/O-backed implementations; absence
	// of the column is detected by callers via Columns.
	Column(name string) ([]string, error)
}

// HasColumn reports whether the table exposes the named column.
func HasColumn(t Table, name string) bool {
	for _, col := range t.Columns() {
		if col == name {
			return true
		}
	}
	return false
}
