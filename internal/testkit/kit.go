// Package testkit provides fixtures shared by the package tests: workbook
// and CSV writers, a deterministic survey generator and a recording
// drawing surface.
package testkit

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tabchart/domain/chart"
	"tabchart/ports"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook saves headers and rows to dir/name as an xlsx workbook.
// time.Time cells get a date number format, "" and nil cells stay empty.
func WriteWorkbook(dir, name, sheet string, headers []string, rows [][]interface{}) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "" && sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return "", err
		}
	} else {
		sheet = "Sheet1"
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 22})
	if err != nil {
		return "", err
	}

	for c, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return "", err
		}
	}

	for r, row := range rows {
		for c, v := range row {
			if v == nil || v == "" {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return "", err
			}
			if _, ok := v.(time.Time); ok {
				if err := f.SetCellStyle(sheet, cell, cell, dateStyle); err != nil {
					return "", err
				}
			}
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

// WriteCSV saves rows to dir/name
func WriteCSV(dir, name string, rows [][]string) (string, error) {
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return path, nil
}

// RecordingSurface remembers every drawing call. Save writes a small
// placeholder file so callers can check what was written.
type RecordingSurface struct {
	Spec    ports.CanvasSpec
	Wedges  []chart.Wedge
	Bars    []chart.Bar
	AxisMax float64
	Texts   []chart.TextMark
	Lines   [][2]chart.Point
	SavedTo []string
	SaveErr error
}

func (s *RecordingSurface) DrawWedges(wedges []chart.Wedge) {
	s.Wedges = append(s.Wedges, wedges...)
}

func (s *RecordingSurface) DrawBars(bars []chart.Bar, axisMax float64) {
	s.Bars = append(s.Bars, bars...)
	s.AxisMax = axisMax
}

func (s *RecordingSurface) PlaceText(mark chart.TextMark) {
	s.Texts = append(s.Texts, mark)
}

func (s *RecordingSurface) DrawLine(from, to chart.Point) {
	s.Lines = append(s.Lines, [2]chart.Point{from, to})
}

func (s *RecordingSurface) Save(path string) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	if err := os.WriteFile(path, []byte(s.Spec.Title), 0o644); err != nil {
		return err
	}
	s.SavedTo = append(s.SavedTo, path)
	return nil
}

// TextsContaining returns the marks whose text equals s
func (s *RecordingSurface) TextsContaining(text string) []chart.TextMark {
	var out []chart.TextMark
	for _, m := range s.Texts {
		if m.Text == text {
			out = append(out, m)
		}
	}
	return out
}

// RecordingFactory hands out RecordingSurfaces. FailSave makes the
// surface for the given title fail on Save.
type RecordingFactory struct {
	mu       sync.Mutex
	Surfaces []*RecordingSurface
	FailSave map[string]error
}

func (f *RecordingFactory) NewSurface(spec ports.CanvasSpec) (ports.SurfacePort, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := &RecordingSurface{Spec: spec}
	if err, ok := f.FailSave[spec.Title]; ok {
		s.SaveErr = err
	}
	f.Surfaces = append(f.Surfaces, s)
	return s, nil
}

// ByTitle returns the surface created for title
func (f *RecordingFactory) ByTitle(title string) (*RecordingSurface, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.Surfaces {
		if s.Spec.Title == title {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no surface titled %q", title)
}
