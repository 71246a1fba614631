package ingestion

import (
	"time"
)

// Value represents one typed cell of a tabular source. Raw keeps the text
// exactly as the source displayed it; categories are grouped on Raw.
type Value struct {
	Type         ValueType  `json:"type"`
	Raw          string     `json:"raw"`
	NumericVal   *float64   `json:"numeric_val,omitempty"`
	BooleanVal   *bool      `json:"boolean_val,omitempty"`
	TimestampVal *time.Time `json:"timestamp_val,omitempty"`
	IsMissing    bool       `json:"is_missing"`
}

// ValueType defines the storage type for values
type ValueType string

const (
	ValueTypeString    ValueType = "string"
	ValueTypeNumeric   ValueType = "numeric"
	ValueTypeBoolean   ValueType = "boolean"
	ValueTypeTimestamp ValueType = "timestamp"
	ValueTypeMissing   ValueType = "missing"
)

// ColumnKind classifies a whole column
type ColumnKind string

const (
	ColumnCategorical ColumnKind = "categorical"
	ColumnTemporal    ColumnKind = "temporal"
)

// NewStringValue creates a string value; an empty string is missing
func NewStringValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Type: ValueTypeString, Raw: s}
}

// NewNumericValue creates a numeric value
func NewNumericValue(raw string, n float64) Value {
	return Value{Type: ValueTypeNumeric, Raw: raw, NumericVal: &n}
}

// NewBooleanValue creates a boolean value
func NewBooleanValue(raw string, b bool) Value {
	return Value{Type: ValueTypeBoolean, Raw: raw, BooleanVal: &b}
}

// NewTimestampValue creates a timestamp value
func NewTimestampValue(raw string, t time.Time) Value {
	return Value{Type: ValueTypeTimestamp, Raw: raw, TimestampVal: &t}
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing, IsMissing: true}
}

// Label returns the category label of the value
func (v Value) Label() string {
	return v.Raw
}

// IsTimestamp returns true if the value represents a valid timestamp
func (v Value) IsTimestamp() bool {
	return v.Type == ValueTypeTimestamp && v.TimestampVal != nil
}

// IsNumeric returns true if the value represents a valid number
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeNumeric && v.NumericVal != nil
}
