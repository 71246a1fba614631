package dataset

import (
	"fmt"
	"strings"

	"tabchart/domain/datareadiness/ingestion"
	"tabchart/internal/errors"
)

// Table is an in-memory, read-only set of named columns. Sources build it
// once; charts only read from it.
type Table struct {
	Name    string
	headers []string
	columns map[string][]ingestion.Value
	kinds   map[string]ingestion.ColumnKind
}

// NewTable creates an empty table
func NewTable(name string) *Table {
	return &Table{
		Name:    name,
		columns: make(map[string][]ingestion.Value),
		kinds:   make(map[string]ingestion.ColumnKind),
	}
}

// AddColumn appends a column. Adding a name twice replaces its values but
// keeps its original position.
func (t *Table) AddColumn(name string, values []ingestion.Value, kind ingestion.ColumnKind) {
	if _, exists := t.columns[name]; !exists {
		t.headers = append(t.headers, name)
	}
	t.columns[name] = values
	t.kinds[name] = kind
}

// Columns returns the column names in source order
func (t *Table) Columns() []string {
	out := make([]string, len(t.headers))
	copy(out, t.headers)
	return out
}

// Values returns the cells of a column
func (t *Table) Values(column string) ([]ingestion.Value, error) {
	values, ok := t.columns[column]
	if !ok {
		return nil, errors.MissingColumn(column)
	}
	return values, nil
}

// Kind reports the column kind; unknown columns are categorical
func (t *Table) Kind(column string) ingestion.ColumnKind {
	if kind, ok := t.kinds[column]; ok {
		return kind
	}
	return ingestion.ColumnCategorical
}

// RowCount returns the length of the longest column
func (t *Table) RowCount() int {
	n := 0
	for _, values := range t.columns {
		if len(values) > n {
			n = len(values)
		}
	}
	return n
}

// NormalizeHeaders cleans a header row the way spreadsheet users expect:
// names are trimmed, blank names become "Unnamed: <index>" and repeated
// names get ".1", ".2", ... suffixes.
func NormalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int)
	for i, h := range raw {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		headers[i] = name
	}
	return headers
}
