package app

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tabchart/domain/chart"
	"tabchart/domain/datareadiness/ingestion"
	"tabchart/domain/dataset"
	"tabchart/domain/run"
	"tabchart/internal/config"
	"tabchart/internal/errors"
	"tabchart/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringColumn(raw ...string) []ingestion.Value {
	values := make([]ingestion.Value, len(raw))
	for i, s := range raw {
		values[i] = ingestion.NewStringValue(s)
	}
	return values
}

func surveyTable() *dataset.Table {
	visited := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	dates := make([]ingestion.Value, 6)
	for i := range dates {
		d := visited.AddDate(0, 0, i)
		dates[i] = ingestion.NewTimestampValue(d.Format("2006-01-02"), d)
	}

	table := dataset.NewTable("Sheet1")
	table.AddColumn("Visited", dates, ingestion.ColumnTemporal)
	table.AddColumn("Region", stringColumn("A", "A", "A", "B", "B", "C"), ingestion.ColumnCategorical)
	table.AddColumn("Comment", stringColumn("", "", "", "", "", ""), ingestion.ColumnCategorical)
	table.AddColumn("Plan", stringColumn("pro", "basic", "basic", "", "pro", "basic"), ingestion.ColumnCategorical)
	return table
}

func jobConfig(t *testing.T, mutate func(*config.Config)) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Source: config.SourceConfig{Input: "survey.xlsx"},
		Chart: config.ChartConfig{
			Graph:         chart.KindPie,
			HideThreshold: 1,
			ShowThreshold: 1,
		},
		Output: config.OutputConfig{Dir: t.TempDir(), Format: "png", DPI: 72},
		Run:    config.RunConfig{Workers: 1},
	}
	if mutate != nil {
		mutate(cfg)
	}
	return cfg
}

func runJob(t *testing.T, cfg *config.Config, factory *testkit.RecordingFactory) (*run.Report, string, error) {
	t.Helper()
	var out bytes.Buffer
	job := NewChartJob(cfg, surveyTable(), NewPieRenderer(factory, cfg.Chart.ShowThreshold, cfg.Chart.HideThreshold), &out)
	report, err := job.Run(context.Background())
	return report, out.String(), err
}

func TestChartJobSingleColumn(t *testing.T) {
	cfg := jobConfig(t, func(c *config.Config) {
		c.Chart.Column = "Region"
		c.Chart.Title = "Where: North/South"
	})
	factory := &testkit.RecordingFactory{}

	report, out, err := runJob(t, cfg, factory)
	require.NoError(t, err)

	want := filepath.Join(cfg.Output.Dir, "Where_ North_South.png")
	assert.Equal(t, "wrote: "+want+"\n", out)
	assert.FileExists(t, want)
	assert.Equal(t, 0, report.ExitCode())
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, run.StatusWritten, report.Outcomes[0].Status)

	surface, err := factory.ByTitle("Where: North/South")
	require.NoError(t, err)
	assert.Len(t, surface.Wedges, 3)
}

func TestChartJobTitleDefaultsToColumn(t *testing.T) {
	cfg := jobConfig(t, func(c *config.Config) { c.Chart.Column = "Plan" })

	_, _, err := runJob(t, cfg, &testkit.RecordingFactory{})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(cfg.Output.Dir, "Plan.png"))
}

func TestChartJobEmptyColumnIsSkipped(t *testing.T) {
	cfg := jobConfig(t, func(c *config.Config) { c.Chart.Column = "Comment" })

	report, out, err := runJob(t, cfg, &testkit.RecordingFactory{})
	require.NoError(t, err)

	assert.Equal(t, "skipped (no data): Comment\n", out)
	assert.Equal(t, 0, report.ExitCode())
	assert.NoFileExists(t, filepath.Join(cfg.Output.Dir, "Comment.png"))
}

func TestChartJobMissingColumnIsFatal(t *testing.T) {
	cfg := jobConfig(t, func(c *config.Config) { c.Chart.Column = "Nope" })

	_, out, err := runJob(t, cfg, &testkit.RecordingFactory{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeMissingColumn))
	assert.Empty(t, out)
}

func TestChartJobAutoSkipsTemporalColumns(t *testing.T) {
	cfg := jobConfig(t, func(c *config.Config) {
		c.Chart.Auto = true
		c.Chart.Column = "ignored"
		c.Chart.Title = "ignored"
	})
	factory := &testkit.RecordingFactory{}

	report, out, err := runJob(t, cfg, factory)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"wrote: " + filepath.Join(cfg.Output.Dir, "Region.png"),
		"skipped (no data): Comment",
		"wrote: " + filepath.Join(cfg.Output.Dir, "Plan.png"),
	}, lines)
	assert.Equal(t, 2, report.Written())
	assert.Equal(t, 1, report.Skipped())

	entries, err := os.ReadDir(cfg.Output.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	_, err = factory.ByTitle("Visited")
	assert.Error(t, err)
}

func TestChartJobFailureIsolation(t *testing.T) {
	diskFull := stderrors.New("disk full")

	tests := []struct {
		name     string
		failing  map[string]error
		wantExit int
		written  int
		failed   int
	}{
		{"one failure", map[string]error{"Region": diskFull}, 0, 1, 1},
		{"every chart fails", map[string]error{"Region": diskFull, "Plan": diskFull}, 1, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := jobConfig(t, func(c *config.Config) { c.Chart.Auto = true })
			factory := &testkit.RecordingFactory{FailSave: tt.failing}

			report, out, err := runJob(t, cfg, factory)
			require.NoError(t, err)

			assert.Equal(t, tt.wantExit, report.ExitCode())
			assert.Equal(t, tt.written, report.Written())
			assert.Equal(t, tt.failed, report.Failed())
			assert.Contains(t, out, "skipped (no data): Comment")
			assert.Contains(t, out, "failed: Region")

			for _, o := range report.Outcomes {
				if o.Status == run.StatusFailed {
					assert.True(t, errors.HasCode(o.Err, errors.CodeIOError))
				}
			}
		})
	}
}

func TestChartJobParallelKeepsColumnOrder(t *testing.T) {
	table := dataset.NewTable("wide")
	var want []string
	for i := 0; i < 12; i++ {
		name := string(rune('A' + i))
		table.AddColumn(name, stringColumn("x", "y", "y"), ingestion.ColumnCategorical)
		want = append(want, name)
	}

	cfg := jobConfig(t, func(c *config.Config) {
		c.Chart.Auto = true
		c.Chart.Graph = chart.KindBarH
		c.Run.Workers = 4
	})
	factory := &testkit.RecordingFactory{}
	var out bytes.Buffer

	report, err := NewChartJob(cfg, table, NewBarRenderer(factory), &out).Run(context.Background())
	require.NoError(t, err)

	var got []string
	for _, o := range report.Outcomes {
		got = append(got, o.Column)
		assert.Equal(t, run.StatusWritten, o.Status)
	}
	assert.Equal(t, want, got)
	assert.Len(t, factory.Surfaces, 12)
	assert.True(t, strings.HasPrefix(out.String(), "wrote: "+filepath.Join(cfg.Output.Dir, "A.png")))
}

func TestChartJobCancelled(t *testing.T) {
	for _, workers := range []int{1, 3} {
		cfg := jobConfig(t, func(c *config.Config) {
			c.Chart.Auto = true
			c.Run.Workers = workers
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out bytes.Buffer
		report, err := NewChartJob(cfg, surveyTable(), NewBarRenderer(&testkit.RecordingFactory{}), &out).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, report.Outcomes)
	}
}
