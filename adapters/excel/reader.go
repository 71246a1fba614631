package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tabchart/adapters/datareadiness/coercer"
	"tabchart/domain/datareadiness/ingestion"
	"tabchart/domain/dataset"
	"tabchart/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	config   ReaderConfig
	fileType string // "xlsx" or "csv"
	coercer  *coercer.TypeCoercer
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ReaderConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		config:   config,
		fileType: fileType,
		coercer:  coercer.NewTypeCoercer(config.CoercionConfig),
	}
}

// ReadTable reads the whole file into a typed table
func (r *DataReader) ReadTable() (*dataset.Table, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.config.FilePath)

	if _, err := os.Stat(r.config.FilePath); err != nil {
		return nil, errors.IOError(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.config.FilePath), err)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	default:
		return r.readExcelData()
	}
}

// readExcelData reads one worksheet. Columns whose every non-empty cell is
// date formatted are marked temporal.
func (r *DataReader) readExcelData() (*dataset.Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, errors.IOError("failed to open Excel file", err)
	}
	defer f.Close()
	log.Printf("[DataReader] Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.IOError("workbook has no sheets", nil)
		}
		sheet = sheets[0]
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("sheet %q has no header row", sheet))
	}

	headers := dataset.NormalizeHeaders(headerRow(rows))
	table := dataset.NewTable(sheet)
	for col, header := range headers {
		raw := columnCells(rows[1:], col)
		kind := ingestion.ColumnCategorical
		if r.isDateColumn(f, sheet, col, raw) {
			kind = ingestion.ColumnTemporal
		}
		table.AddColumn(header, r.coercer.CoerceColumn(raw), kind)
	}

	log.Printf("[DataReader] XLSX file processed (%d columns, %d rows)", len(headers), len(rows)-1)
	return table, nil
}

// readCSVData reads CSV data. Without cell styles, a column is temporal
// when all of its non-missing values parse as timestamps.
func (r *DataReader) readCSVData() (*dataset.Table, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, errors.IOError("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.IOError("failed to read CSV file", err)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, errors.InvalidInput("CSV file has no header row")
	}

	headers := dataset.NormalizeHeaders(headerRow(rows))
	table := dataset.NewTable(filepath.Base(r.config.FilePath))
	for col, header := range headers {
		values := r.coercer.CoerceColumn(columnCells(rows[1:], col))
		analysis := r.coercer.AnalyzeTypeDistribution(values)
		table.AddColumn(header, values, analysis.RecommendedKind)
	}

	log.Printf("[DataReader] CSV file processed (%d columns, %d rows)", len(headers), len(rows)-1)
	return table, nil
}

// headerRow pads the first row to the widest row so that data columns
// without a header still get one
func headerRow(rows [][]string) []string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	header := make([]string, width)
	copy(header, rows[0])
	return header
}

// columnCells extracts one column from ragged rows, padding with ""
func columnCells(rows [][]string, col int) []string {
	cells := make([]string, len(rows))
	for i, row := range rows {
		if col < len(row) {
			cells[i] = row[col]
		}
	}
	return cells
}

// isDateColumn samples the non-empty cells of a column and checks their
// cell type and number format.
func (r *DataReader) isDateColumn(f *excelize.File, sheet string, col int, raw []string) bool {
	var filled []int
	for i, cell := range raw {
		if !r.coercer.IsMissing(strings.TrimSpace(cell)) {
			filled = append(filled, i)
		}
	}
	if len(filled) == 0 {
		return false
	}

	for _, idx := range getStratifiedSample(len(filled), r.config.MaxStyleSample) {
		rowIdx := filled[idx]
		// +2: row 1 is the header and Excel is 1-indexed
		cellRef, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
		if err != nil {
			return false
		}
		if !isDateCell(f, sheet, cellRef) {
			return false
		}
	}
	return true
}

func isDateCell(f *excelize.File, sheet, cellRef string) bool {
	if cellType, err := f.GetCellType(sheet, cellRef); err == nil && cellType == excelize.CellTypeDate {
		return true
	}
	styleID, err := f.GetCellStyle(sheet, cellRef)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return false
	}
	return isDateStyle(style)
}

// getStratifiedSample returns evenly distributed indices in [0, total)
func getStratifiedSample(total, sampleSize int) []int {
	if sampleSize <= 0 || sampleSize >= total {
		indices := make([]int, total)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}

	indices := make([]int, 0, sampleSize)
	step := float64(total) / float64(sampleSize)
	last := -1
	for i := 0; i < sampleSize; i++ {
		idx := int(math.Round(float64(i) * step))
		if idx >= total {
			idx = total - 1
		}
		if idx != last {
			indices = append(indices, idx)
			last = idx
		}
	}
	return indices
}
