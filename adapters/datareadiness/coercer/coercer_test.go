package coercer

import (
	"testing"

	"tabchart/domain/datareadiness/ingestion"
)

func TestCoerceValue(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		name      string
		raw       string
		wantType  ingestion.ValueType
		wantLabel string
	}{
		{"plain text", "Tokyo", ingestion.ValueTypeString, "Tokyo"},
		{"padded text keeps case", "  North ", ingestion.ValueTypeString, "North"},
		{"integer", "42", ingestion.ValueTypeNumeric, "42"},
		{"thousands", "1,200", ingestion.ValueTypeNumeric, "1,200"},
		{"boolean", "TRUE", ingestion.ValueTypeBoolean, "TRUE"},
		{"iso date", "2024-03-01", ingestion.ValueTypeTimestamp, "2024-03-01"},
		{"datetime", "2024-03-01 12:30:00", ingestion.ValueTypeTimestamp, "2024-03-01 12:30:00"},
		{"empty", "", ingestion.ValueTypeMissing, ""},
		{"blank", "   ", ingestion.ValueTypeMissing, ""},
		{"nan token", "NaN", ingestion.ValueTypeMissing, ""},
		{"year alone is numeric", "2024", ingestion.ValueTypeNumeric, "2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := c.CoerceValue(tt.raw)
			if v.Type != tt.wantType {
				t.Errorf("Expected type %s, got %s for %q", tt.wantType, v.Type, tt.raw)
			}
			if v.Label() != tt.wantLabel {
				t.Errorf("Expected label %q, got %q", tt.wantLabel, v.Label())
			}
			if (tt.wantType == ingestion.ValueTypeMissing) != v.IsMissing {
				t.Errorf("IsMissing = %v for %q", v.IsMissing, tt.raw)
			}
		})
	}
}

func TestAnalyzeTypeDistribution(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		name string
		raw  []string
		want ingestion.ColumnKind
	}{
		{"dates with blanks", []string{"2024-01-01", "", "2024-01-03"}, ingestion.ColumnTemporal},
		{"mixed dates and text", []string{"2024-01-01", "soon"}, ingestion.ColumnCategorical},
		{"all missing", []string{"", ""}, ingestion.ColumnCategorical},
		{"categories", []string{"A", "B", "A"}, ingestion.ColumnCategorical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := c.AnalyzeTypeDistribution(c.CoerceColumn(tt.raw))
			if analysis.RecommendedKind != tt.want {
				t.Errorf("Expected %s, got %s (%+v)", tt.want, analysis.RecommendedKind, analysis)
			}
			if analysis.TotalCount != len(tt.raw) {
				t.Errorf("TotalCount = %d, want %d", analysis.TotalCount, len(tt.raw))
			}
		})
	}
}
