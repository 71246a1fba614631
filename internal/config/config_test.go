package config

import (
	"testing"

	"tabchart/domain/chart"
	"tabchart/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "data.xlsx", cfg.Source.Input)
	assert.Equal(t, chart.KindBarH, cfg.Chart.Graph)
	assert.Equal(t, 1.0, cfg.Chart.HideThreshold)
	assert.Equal(t, 1.0, cfg.Chart.ShowThreshold)
	assert.Equal(t, "png", cfg.Output.Format)
	assert.Equal(t, 300, cfg.Output.DPI)
	assert.Equal(t, 1, cfg.Run.Workers)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TABCHART_GRAPH", "pie")
	t.Setenv("TABCHART_HIDE_THRESHOLD", "2.5")
	t.Setenv("TABCHART_SHOW_THRESHOLD", "5")
	t.Setenv("TABCHART_AUTO", "true")
	t.Setenv("TABCHART_DPI", "not-a-number")

	cfg := Load()

	assert.Equal(t, chart.KindPie, cfg.Chart.Graph)
	assert.Equal(t, 2.5, cfg.Chart.HideThreshold)
	assert.Equal(t, 5.0, cfg.Chart.ShowThreshold)
	assert.True(t, cfg.Chart.Auto)
	assert.Equal(t, 300, cfg.Output.DPI, "unparsable values fall back to the default")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"neither column nor auto", func(c *Config) {}, true},
		{"column only", func(c *Config) { c.Chart.Column = "Region" }, false},
		{"auto only", func(c *Config) { c.Chart.Auto = true }, false},
		{"bad graph", func(c *Config) { c.Chart.Auto = true; c.Chart.Graph = "donut" }, true},
		{"bad format", func(c *Config) { c.Chart.Auto = true; c.Output.Format = "bmp" }, true},
		{"dotted format", func(c *Config) { c.Chart.Auto = true; c.Output.Format = ".SVG" }, false},
		{"postgres without table", func(c *Config) {
			c.Chart.Auto = true
			c.Source.Input = "postgres://localhost/db"
		}, true},
		{"zero dpi", func(c *Config) { c.Chart.Auto = true; c.Output.DPI = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid), "got %v", err)
		})
	}
}

func TestValidateNormalizes(t *testing.T) {
	cfg := Load()
	cfg.Chart.Auto = true
	cfg.Output.Format = ".SVG"
	cfg.Run.Workers = 0

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "svg", cfg.Output.Format)
	assert.Equal(t, 1, cfg.Run.Workers)
}
