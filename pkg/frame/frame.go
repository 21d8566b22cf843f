// Package frame holds a small column-labelled table used as the payload for
// worksheet writes and as the result of worksheet reads.
package frame

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Frame is an ordered table: a header row of column names plus data rows.
// Rows are not required to be rectangular; short rows are padded with empty
// strings when converted to cell values.
type Frame struct {
	Columns []string
	Rows    [][]interface{}
}

// New builds a Frame from column names and data rows.
func New(columns []string, rows [][]interface{}) *Frame {
	return &Frame{Columns: columns, Rows: rows}
}

// FromValues builds a Frame from a raw value grid, treating the first row as
// the header. An empty grid yields an empty Frame.
func FromValues(values [][]interface{}) *Frame {
	if len(values) == 0 {
		return &Frame{}
	}
	cols := make([]string, len(values[0]))
	for i, v := range values[0] {
		cols[i] = fmt.Sprint(v)
	}
	return &Frame{Columns: cols, Rows: values[1:]}
}

// NumRows returns the number of data rows (excluding the header).
func (f *Frame) NumRows() int { return len(f.Rows) }

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.Columns) }

// Values returns the frame as a cell-value grid. With includeHeader the
// column names form the first row. Short data rows are padded to the column
// count with empty strings.
func (f *Frame) Values(includeHeader bool) [][]interface{} {
	out := make([][]interface{}, 0, len(f.Rows)+1)
	if includeHeader {
		header := make([]interface{}, len(f.Columns))
		for i, c := range f.Columns {
			header[i] = c
		}
		out = append(out, header)
	}
	for _, row := range f.Rows {
		r := make([]interface{}, len(f.Columns))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		out = append(out, r)
	}
	return out
}

// ReadCSV loads a CSV file as a Frame, first row as header.
func ReadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return &Frame{}, nil
	}

	rows := make([][]interface{}, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]interface{}, len(rec))
		for i, cell := range rec {
			row[i] = cell
		}
		rows = append(rows, row)
	}
	return &Frame{Columns: records[0], Rows: rows}, nil
}

// ReadXLSX loads a worksheet from an Excel workbook as a Frame, first row as
// header. An empty sheet name selects the workbook's first sheet.
func ReadXLSX(path, sheet string) (*Frame, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer wb.Close()

	if sheet == "" {
		sheet = wb.GetSheetName(0)
	}
	records, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(records) == 0 {
		return &Frame{}, nil
	}

	rows := make([][]interface{}, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]interface{}, len(rec))
		for i, cell := range rec {
			row[i] = cell
		}
		rows = append(rows, row)
	}
	return &Frame{Columns: records[0], Rows: rows}, nil
}
