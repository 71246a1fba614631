package coercer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"tabchart/domain/datareadiness/ingestion"
)

// TypeCoercer handles deterministic type coercion of raw cell text
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion thresholds and rules
type CoercionConfig struct {
	TimestampThreshold float64 `json:"timestamp_threshold"` // % of non-missing values that must parse as timestamps
	MissingTokens      []string `json:"missing_tokens"`      // cell texts treated as missing
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		TimestampThreshold: 1.0,
		MissingTokens:      []string{"", "NaN", "nan", "NULL", "null", "N/A", "n/a", "#N/A", "NA", "<NA>"},
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"1/2/06 15:04",
	"01-02-06",
	"2006/01/02",
	"2006/1/2",
	"2006/1/2 15:04:05",
	"02-Jan-2006",
	"15:04:05",
}

// CoerceValue deterministically converts raw cell text to a typed Value.
// The raw text, trimmed, is kept as the value's label.
func (c *TypeCoercer) CoerceValue(raw string) ingestion.Value {
	strVal := strings.TrimSpace(raw)
	if c.IsMissing(strVal) {
		return ingestion.NewMissingValue()
	}

	// Try numeric first (most restrictive)
	if n, ok := c.tryParseNumeric(strVal); ok {
		return ingestion.NewNumericValue(strVal, n)
	}

	if b, ok := c.tryParseBoolean(strVal); ok {
		return ingestion.NewBooleanValue(strVal, b)
	}

	if ts, ok := c.tryParseTimestamp(strVal); ok {
		return ingestion.NewTimestampValue(strVal, ts)
	}

	return ingestion.NewStringValue(strVal)
}

// CoerceColumn coerces every cell of a column
func (c *TypeCoercer) CoerceColumn(raw []string) []ingestion.Value {
	values := make([]ingestion.Value, len(raw))
	for i, cell := range raw {
		values[i] = c.CoerceValue(cell)
	}
	return values
}

// IsMissing reports whether trimmed cell text counts as a missing value
func (c *TypeCoercer) IsMissing(strVal string) bool {
	for _, token := range c.config.MissingTokens {
		if strVal == token {
			return true
		}
	}
	return false
}

// AnalyzeTypeDistribution analyzes coerced values to determine the column type
func (c *TypeCoercer) AnalyzeTypeDistribution(values []ingestion.Value) TypeAnalysis {
	analysis := TypeAnalysis{
		TotalCount: len(values),
	}

	for _, v := range values {
		if v.IsMissing {
			continue
		}
		analysis.ValidCount++
		switch v.Type {
		case ingestion.ValueTypeNumeric:
			analysis.NumericCount++
		case ingestion.ValueTypeBoolean:
			analysis.BooleanCount++
		case ingestion.ValueTypeTimestamp:
			analysis.TimestampCount++
		}
	}

	if analysis.ValidCount > 0 {
		analysis.TimestampRatio = float64(analysis.TimestampCount) / float64(analysis.ValidCount)
	}
	analysis.RecommendedKind = ingestion.ColumnCategorical
	if analysis.ValidCount > 0 && analysis.TimestampRatio >= c.config.TimestampThreshold {
		analysis.RecommendedKind = ingestion.ColumnTemporal
	}

	return analysis
}

// tryParseNumeric parses plain numbers, with or without thousands separators
func (c *TypeCoercer) tryParseNumeric(strVal string) (float64, bool) {
	cleanVal := strings.ReplaceAll(strVal, ",", "")
	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// tryParseBoolean accepts the spellings spreadsheets and databases emit
func (c *TypeCoercer) tryParseBoolean(strVal string) (bool, bool) {
	switch strings.ToLower(strVal) {
	case "true", "yes", "on":
		return true, true
	case "false", "no", "off":
		return false, true
	}
	return false, false
}

// tryParseTimestamp attempts to parse as timestamp with multiple formats
func (c *TypeCoercer) tryParseTimestamp(strVal string) (time.Time, bool) {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, strVal); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TypeAnalysis contains the results of type distribution analysis
type TypeAnalysis struct {
	TotalCount      int                  `json:"total_count"`
	ValidCount      int                  `json:"valid_count"`
	NumericCount    int                  `json:"numeric_count"`
	BooleanCount    int                  `json:"boolean_count"`
	TimestampCount  int                  `json:"timestamp_count"`
	TimestampRatio  float64              `json:"timestamp_ratio"`
	RecommendedKind ingestion.ColumnKind `json:"recommended_kind"`
}
