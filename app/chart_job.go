package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tabchart/domain/chart"
	"tabchart/domain/datareadiness/ingestion"
	"tabchart/domain/run"
	"tabchart/internal/config"
	"tabchart/internal/errors"
	"tabchart/ports"

	"golang.org/x/sync/semaphore"
)

// ChartJob turns columns of a table into chart files, one per column.
// Each column is charted in isolation: a column without data is skipped
// and a failed render does not stop the others.
type ChartJob struct {
	config   *config.Config
	source   ports.TableSourcePort
	renderer ports.ChartRendererPort
	out      io.Writer
}

// NewChartJob creates a chart job. Diagnostics for each column are
// written to out.
func NewChartJob(cfg *config.Config, source ports.TableSourcePort, renderer ports.ChartRendererPort, out io.Writer) *ChartJob {
	return &ChartJob{
		config:   cfg,
		source:   source,
		renderer: renderer,
		out:      out,
	}
}

type target struct {
	column string
	title  string
}

// Run charts the configured columns. The returned error is fatal for the
// whole job (missing column, unusable output directory, cancellation);
// per-column problems are only recorded in the report.
func (j *ChartJob) Run(ctx context.Context) (*run.Report, error) {
	report := run.NewReport(j.config.Source.Input)
	log.Printf("[ChartJob] Run %s started (graph=%s auto=%t workers=%d)",
		report.RunID, j.config.Chart.Graph, j.config.Chart.Auto, j.config.Run.Workers)

	targets, err := j.targets()
	if err != nil {
		return report, err
	}

	if err := os.MkdirAll(j.config.Output.Dir, 0o755); err != nil {
		return report, errors.IOError("failed to create output directory "+j.config.Output.Dir, err)
	}

	var scheduled int
	outcomes := make([]run.ColumnOutcome, len(targets))
	if j.config.Run.Workers <= 1 {
		for i, t := range targets {
			if err = ctx.Err(); err != nil {
				break
			}
			outcomes[i] = j.chartColumn(t)
			j.announce(outcomes[i])
			scheduled++
		}
	} else {
		scheduled, err = j.runParallel(ctx, targets, outcomes)
		for _, o := range outcomes[:scheduled] {
			j.announce(o)
		}
	}

	report.Outcomes = outcomes[:scheduled]
	log.Printf("[ChartJob] %s", report.Summary())
	return report, err
}

// runParallel charts up to Workers columns at once. Outcomes are stored
// by index so that the report keeps column order.
func (j *ChartJob) runParallel(ctx context.Context, targets []target, outcomes []run.ColumnOutcome) (int, error) {
	sem := semaphore.NewWeighted(int64(j.config.Run.Workers))
	var wg sync.WaitGroup

	scheduled := 0
	var err error
	for i, t := range targets {
		if err = sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(i int, t target) {
			defer wg.Done()
			defer sem.Release(1)
			outcomes[i] = j.chartColumn(t)
		}(i, t)
		scheduled++
	}

	wg.Wait()
	return scheduled, err
}

// targets resolves which columns to chart and their titles
func (j *ChartJob) targets() ([]target, error) {
	if j.config.Chart.Auto {
		var targets []target
		for _, col := range j.source.Columns() {
			if j.source.Kind(col) == ingestion.ColumnTemporal {
				log.Printf("[ChartJob] Skipping date/time column %q", col)
				continue
			}
			targets = append(targets, target{column: col, title: col})
		}
		return targets, nil
	}

	col := j.config.Chart.Column
	if col == "" {
		return nil, errors.ConfigInvalid("a column is required unless auto mode is enabled")
	}
	if !j.hasColumn(col) {
		return nil, errors.MissingColumn(col)
	}

	title := j.config.Chart.Title
	if title == "" {
		title = col
	}
	return []target{{column: col, title: title}}, nil
}

func (j *ChartJob) hasColumn(name string) bool {
	for _, col := range j.source.Columns() {
		if col == name {
			return true
		}
	}
	return false
}

func (j *ChartJob) chartColumn(t target) run.ColumnOutcome {
	start := time.Now()
	outcome := run.ColumnOutcome{Column: t.column, Title: t.title}

	fail := func(err error) run.ColumnOutcome {
		if errors.HasCode(err, errors.CodeEmptyColumn) {
			outcome.Status = run.StatusSkipped
		} else {
			outcome.Status = run.StatusFailed
			log.Printf("[ChartJob] Column %q failed: %v", t.column, err)
		}
		outcome.Err = err
		return outcome
	}

	values, err := j.source.Values(t.column)
	if err != nil {
		return fail(err)
	}

	table, err := chart.Aggregate(t.column, values)
	if err != nil {
		return fail(err)
	}

	surface, err := j.renderer.Render(table, t.title)
	if err != nil {
		return fail(err)
	}

	path := filepath.Join(j.config.Output.Dir, SafeFilename(t.title)+"."+j.config.Output.Format)
	if err := surface.Save(path); err != nil {
		if !errors.IsAppError(err) {
			err = errors.IOError("failed to save "+path, err)
		}
		return fail(err)
	}

	outcome.Status = run.StatusWritten
	outcome.File = path
	log.Printf("[ChartJob] Column %q charted in %.2fms (%d categories)",
		t.column, float64(time.Since(start).Nanoseconds())/1e6, table.Len())
	return outcome
}

func (j *ChartJob) announce(o run.ColumnOutcome) {
	switch o.Status {
	case run.StatusWritten:
		fmt.Fprintf(j.out, "wrote: %s\n", o.File)
	case run.StatusSkipped:
		fmt.Fprintf(j.out, "skipped (no data): %s\n", o.Column)
	case run.StatusFailed:
		fmt.Fprintf(j.out, "failed: %s: %v\n", o.Column, o.Err)
	}
}
