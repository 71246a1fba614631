package postgres

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"tabchart/adapters/datareadiness/coercer"
	"tabchart/domain/datareadiness/ingestion"
	"tabchart/domain/dataset"
	"tabchart/internal/errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// temporalTypes are the database type names whose columns hold dates or times
var temporalTypes = map[string]bool{
	"DATE":        true,
	"TIME":        true,
	"TIMETZ":      true,
	"TIMESTAMP":   true,
	"TIMESTAMPTZ": true,
	"INTERVAL":    true,
}

// TableRepository loads whole tables as chart sources
type TableRepository struct {
	db      *sqlx.DB
	coercer *coercer.TypeCoercer
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *sqlx.DB) *TableRepository {
	return &TableRepository{
		db:      db,
		coercer: coercer.NewTypeCoercer(coercer.DefaultCoercionConfig()),
	}
}

// Connect opens a Postgres connection for dsn
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, errors.IOError("failed to connect to database", err)
	}
	return db, nil
}

// LoadTable reads every row of name. NULL is a missing value and columns
// of date/time database types are temporal.
func (r *TableRepository) LoadTable(ctx context.Context, name string) (*dataset.Table, error) {
	start := time.Now()
	query := "SELECT * FROM " + quoteTable(name)

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to query table %s", name), err)
	}
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, errors.IOError("failed to read column types", err)
	}

	raw := make([][]string, len(columnTypes))
	missing := make([][]bool, len(columnTypes))
	for rows.Next() {
		cells, err := rows.SliceScan()
		if err != nil {
			return nil, errors.IOError("failed to scan row", err)
		}
		for i, cell := range cells {
			raw[i] = append(raw[i], cellText(cell))
			missing[i] = append(missing[i], cell == nil)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.IOError("failed to iterate rows", err)
	}

	rawHeaders := make([]string, len(columnTypes))
	for i, ct := range columnTypes {
		rawHeaders[i] = ct.Name()
	}
	headers := dataset.NormalizeHeaders(rawHeaders)

	table := dataset.NewTable(name)
	for i, ct := range columnTypes {
		values := make([]ingestion.Value, len(raw[i]))
		for j, text := range raw[i] {
			if missing[i][j] {
				values[j] = ingestion.NewMissingValue()
				continue
			}
			values[j] = r.coercer.CoerceValue(text)
		}
		kind := ingestion.ColumnCategorical
		if temporalTypes[strings.ToUpper(ct.DatabaseTypeName())] {
			kind = ingestion.ColumnTemporal
		}
		table.AddColumn(headers[i], values, kind)
	}

	log.Printf("[TableRepository] Loaded %s in %.2fms (%d columns, %d rows)",
		name, float64(time.Since(start).Nanoseconds())/1e6, len(headers), table.RowCount())
	return table, nil
}

// quoteTable quotes a possibly schema-qualified table name
func quoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// cellText renders a scanned cell the way it would appear in a sheet
func cellText(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format("2006-01-02")
		}
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", v)
	}
}
