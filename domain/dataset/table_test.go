package dataset

import (
	"testing"

	"tabchart/domain/datareadiness/ingestion"
	"tabchart/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeaders(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{"clean", []string{"Region", "Plan"}, []string{"Region", "Plan"}},
		{"trimmed", []string{" Region "}, []string{"Region"}},
		{"blank", []string{"Region", "", " "}, []string{"Region", "Unnamed: 1", "Unnamed: 2"}},
		{"duplicates", []string{"A", "B", "A", "A"}, []string{"A", "B", "A.1", "A.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeaders(tt.raw))
		})
	}
}

func TestTable(t *testing.T) {
	table := NewTable("test")
	table.AddColumn("When", []ingestion.Value{ingestion.NewMissingValue()}, ingestion.ColumnTemporal)
	table.AddColumn("Plan", []ingestion.Value{ingestion.NewStringValue("gold"), ingestion.NewStringValue("free")}, ingestion.ColumnCategorical)

	assert.Equal(t, []string{"When", "Plan"}, table.Columns())
	assert.Equal(t, ingestion.ColumnTemporal, table.Kind("When"))
	assert.Equal(t, ingestion.ColumnCategorical, table.Kind("Plan"))
	assert.Equal(t, 2, table.RowCount())

	values, err := table.Values("Plan")
	require.NoError(t, err)
	assert.Len(t, values, 2)

	_, err = table.Values("Nope")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeMissingColumn))
}
