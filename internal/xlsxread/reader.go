package xlsxread

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook wraps an open xlsx file for sheet-oriented reads.
type Workbook struct {
	file *excelize.File
	path string
}

// Open opens an xlsx workbook for reading.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{file: f, path: path}, nil
}

// Path returns the path the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// HasSheet reports whether the workbook contains a sheet with the given name.
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// Rows reads all rows of a sheet as strings. Trailing empty cells are
// trimmed per row, so rows may come back with different widths.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

// Close releases all resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}
