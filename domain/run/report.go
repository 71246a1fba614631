package run

import (
	"fmt"
	"time"

	"tabchart/domain/core"
)

// Status is the result of charting one column
type Status string

const (
	StatusWritten Status = "written"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// ColumnOutcome records what happened to one requested column
type ColumnOutcome struct {
	Column string `json:"column"`
	Title  string `json:"title"`
	File   string `json:"file,omitempty"`
	Status Status `json:"status"`
	Err    error  `json:"-"`
}

// Report collects the outcomes of a run in column order
type Report struct {
	RunID     core.RunID      `json:"run_id"`
	Input     string          `json:"input"`
	StartedAt time.Time       `json:"started_at"`
	Outcomes  []ColumnOutcome `json:"outcomes"`
}

// NewReport starts an empty report for input
func NewReport(input string) *Report {
	return &Report{
		RunID:     core.NewRunID(),
		Input:     input,
		StartedAt: time.Now(),
	}
}

// Written returns the number of charts saved
func (r *Report) Written() int { return r.count(StatusWritten) }

// Skipped returns the number of columns without data
func (r *Report) Skipped() int { return r.count(StatusSkipped) }

// Failed returns the number of columns whose chart could not be produced
func (r *Report) Failed() int { return r.count(StatusFailed) }

func (r *Report) count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// ExitCode is 1 when at least one column failed and nothing was written.
// Skipped columns never affect it.
func (r *Report) ExitCode() int {
	if r.Failed() > 0 && r.Written() == 0 {
		return 1
	}
	return 0
}

// Summary is a one-line account of the run
func (r *Report) Summary() string {
	return fmt.Sprintf("run %s: %d written, %d skipped, %d failed in %s",
		r.RunID, r.Written(), r.Skipped(), r.Failed(), time.Since(r.StartedAt).Round(time.Millisecond))
}
