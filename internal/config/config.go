package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"tabchart/domain/chart"
	"tabchart/internal/errors"
)

// Config represents the complete job configuration. It is built once in
// main and passed explicitly to the job and renderers.
type Config struct {
	Source SourceConfig
	Chart  ChartConfig
	Output OutputConfig
	Run    RunConfig
}

// SourceConfig selects the tabular input
type SourceConfig struct {
	Input string // .xlsx, .csv or postgres:// DSN
	Sheet string // xlsx only; empty means first sheet
	Table string // postgres only
}

// ChartConfig holds what gets drawn
type ChartConfig struct {
	Column string
	Title  string
	Auto   bool
	Graph  chart.Kind

	// HideThreshold is the minimum percentage for a pie wedge to get an
	// outer callout. ShowThreshold is the minimum percentage for the
	// inline percentage text. They are independent.
	HideThreshold float64
	ShowThreshold float64
}

// OutputConfig controls the written image files
type OutputConfig struct {
	Dir      string
	Format   string
	DPI      int
	FontPath string
}

// RunConfig holds execution settings
type RunConfig struct {
	Workers int
}

var supportedFormats = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"tiff": true,
	"svg":  true,
	"pdf":  true,
}

// Load builds a configuration from TABCHART_* environment variables with
// the documented defaults. Command-line flags are applied on top by the
// caller before Validate.
func Load() *Config {
	return &Config{
		Source: SourceConfig{
			Input: getEnvOrDefault("TABCHART_INPUT", "data.xlsx"),
			Sheet: getEnvOrDefault("TABCHART_SHEET", ""),
			Table: getEnvOrDefault("TABCHART_TABLE", ""),
		},
		Chart: ChartConfig{
			Column:        getEnvOrDefault("TABCHART_COLUMN", ""),
			Title:         getEnvOrDefault("TABCHART_TITLE", ""),
			Auto:          getEnvBoolOrDefault("TABCHART_AUTO", false),
			Graph:         chart.Kind(getEnvOrDefault("TABCHART_GRAPH", string(chart.KindBarH))),
			HideThreshold: getEnvFloatOrDefault("TABCHART_HIDE_THRESHOLD", 1.0),
			ShowThreshold: getEnvFloatOrDefault("TABCHART_SHOW_THRESHOLD", 1.0),
		},
		Output: OutputConfig{
			Dir:      getEnvOrDefault("TABCHART_OUT_DIR", "."),
			Format:   getEnvOrDefault("TABCHART_FORMAT", "png"),
			DPI:      getEnvIntOrDefault("TABCHART_DPI", 300),
			FontPath: getEnvOrDefault("TABCHART_FONT", ""),
		},
		Run: RunConfig{
			Workers: getEnvIntOrDefault("TABCHART_WORKERS", 1),
		},
	}
}

// Validate checks the configuration before any work starts. Every failure
// is a CONFIG_INVALID error.
func (c *Config) Validate() error {
	if c.Chart.Column == "" && !c.Chart.Auto {
		return errors.ConfigInvalid("either --column or --auto is required")
	}
	if _, err := chart.ParseKind(string(c.Chart.Graph)); err != nil {
		return errors.Wrap(errors.ConfigInvalid(err.Error()), "invalid graph kind")
	}
	if c.Source.Input == "" {
		return errors.ConfigInvalid("input is required")
	}
	if c.IsPostgres() && c.Source.Table == "" {
		return errors.ConfigInvalid("--table is required for postgres input")
	}
	c.Output.Format = strings.ToLower(strings.TrimPrefix(c.Output.Format, "."))
	if !supportedFormats[c.Output.Format] {
		return errors.ConfigInvalid(fmt.Sprintf("unsupported output format %q", c.Output.Format))
	}
	if c.Output.DPI <= 0 {
		return errors.ConfigInvalid("dpi must be positive")
	}
	if c.Run.Workers < 1 {
		c.Run.Workers = 1
	}
	return nil
}

// IsPostgres reports whether the input names a Postgres database
func (c *Config) IsPostgres() bool {
	in := c.Source.Input
	return strings.HasPrefix(in, "postgres://") || strings.HasPrefix(in, "postgresql://")
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
