package ports

import (
	"tabchart/domain/datareadiness/ingestion"
)

// TableSourcePort gives read-only access to a loaded table of named columns
type TableSourcePort interface {
	// Columns returns the column names in source order
	Columns() []string
	// Values returns the typed cells of a column; an unknown column is a
	// MISSING_COLUMN error
	Values(column string) ([]ingestion.Value, error)
	// Kind reports whether a column holds categorical or date/time values
	Kind(column string) ingestion.ColumnKind
}
