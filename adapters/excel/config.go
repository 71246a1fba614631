package excel

import (
	"tabchart/adapters/datareadiness/coercer"
)

// ReaderConfig holds configuration for a spreadsheet data source
type ReaderConfig struct {
	FilePath       string                 `json:"file_path"`
	Sheet          string                 `json:"sheet"` // empty: first sheet
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
	MaxStyleSample int                    `json:"max_style_sample"` // cells inspected per column for date styles
}

// DefaultReaderConfig returns sensible defaults for spreadsheet processing
func DefaultReaderConfig(filePath string) ReaderConfig {
	return ReaderConfig{
		FilePath:       filePath,
		CoercionConfig: coercer.DefaultCoercionConfig(),
		MaxStyleSample: 500,
	}
}
