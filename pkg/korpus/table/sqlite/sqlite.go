package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Table is a read view over one SQLite table, implementing table.Table.
// Rows are served in rowid order so repeated reads see a stable document
// order. Column performs a query per call; use ColumnContext where
// cancellation matters.
type Table struct {
	db   *sql.DB
	name string
	cols []string
}

// Open opens a read view over an existing table in the database at path.
// WAL mode is enabled for better concurrency with writers.
func Open(ctx context.Context, path, tableName string) (*Table, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	cols, err := tableColumns(ctx, db, tableName)
	if err != nil {
		db.Close()
		return nil, err
	}
	if len(cols) == 0 {
		db.Close()
		return nil, fmt.Errorf("sqlite: no such table %q in %s", tableName, path)
	}

	return &Table{db: db, name: tableName, cols: cols}, nil
}

// Close closes the database connection.
func (t *Table) Close() error {
	return t.db.Close()
}

// Columns implements table.Table.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// Column implements table.Table.
func (t *Table) Column(name string) ([]string, error) {
	return t.ColumnContext(context.Background(), name)
}

// ColumnContext returns the values of the named column in rowid order.
// NULL values come back as empty strings.
func (t *Table) ColumnContext(ctx context.Context, name string) ([]string, error) {
	found := false
	for _, col := range t.cols {
		if col == name {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("sqlite: no column %q in table %q", name, t.name)
	}

	stmt := fmt.Sprintf(
		"SELECT CAST(IFNULL(%s, '') AS TEXT) FROM %s ORDER BY rowid",
		quoteIdent(name), quoteIdent(t.name),
	)
	rows, err := t.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("read column %q: %w", name, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Count returns the number of rows in the table.
func (t *Table) Count(ctx context.Context) (int64, error) {
	var n int64
	stmt := "SELECT COUNT(*) FROM " + quoteIdent(t.name)
	if err := t.db.QueryRowContext(ctx, stmt).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Article is one row written by the corpus-builder tools. Abstract holds the
// text the corpus later whitespace-splits into tokens.
type Article struct {
	URL         string
	Title       string
	Abstract    string
	PublishedAt string
	Source      string
	Category    string
}

// Writer appends article rows into a corpus table, creating the table on
// first use. Rows are keyed by URL so re-running a downloader updates in
// place instead of duplicating documents.
type Writer struct {
	db   *sql.DB
	name string
}

// NewWriter opens the database at path and ensures the named article table
// exists.
func NewWriter(ctx context.Context, path, tableName string) (*Writer, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	schema := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url TEXT UNIQUE NOT NULL,
	title TEXT,
	abstract TEXT,
	published_at TEXT,
	source TEXT,
	category TEXT
);
`, quoteIdent(tableName))

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Writer{db: db, name: tableName}, nil
}

// Close closes the database connection.
func (w *Writer) Close() error {
	return w.db.Close()
}

// Upsert inserts or updates one article, keyed by URL.
func (w *Writer) Upsert(ctx context.Context, a Article) error {
	if strings.TrimSpace(a.URL) == "" {
		return fmt.Errorf("sqlite: article URL is required")
	}

	stmt := fmt.Sprintf(`
INSERT INTO %s (url, title, abstract, published_at, source, category)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(url) DO UPDATE SET
	title=excluded.title,
	abstract=excluded.abstract,
	published_at=excluded.published_at,
	source=excluded.source,
	category=excluded.category;
`, quoteIdent(w.name))

	_, err := w.db.ExecContext(ctx, stmt,
		a.URL, a.Title, a.Abstract, a.PublishedAt, a.Source, a.Category)
	return err
}

func tableColumns(ctx context.Context, db *sql.DB, tableName string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT name FROM pragma_table_info(?) ORDER BY cid", tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
