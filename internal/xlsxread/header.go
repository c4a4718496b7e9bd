package xlsxread

import (
	"fmt"
	"strings"
)

// SchemaError reports a sheet whose layout cannot be resolved against the
// required columns.
type SchemaError struct {
	Sheet   string
	Missing []string
	Detail  string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("sheet %s missing required columns: %s",
			e.Sheet, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("sheet %s: %s", e.Sheet, e.Detail)
}

// Table is a sheet resolved into a header and data rows. SourceRow holds the
// 1-based workbook row each data row came from, for diagnostics.
type Table struct {
	Columns   []string
	Rows      [][]string
	SourceRow []int
}

// ColumnIndex returns the position of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// ResolveTable turns raw sheet rows into a Table. If the first row carries
// every required column it is used as the header and the remaining rows are
// data. Otherwise the fallback header is applied positionally and every row
// is data. Rows narrower than the header are padded with empty cells; a row
// wider than the header is a SchemaError.
func ResolveTable(sheet string, rows [][]string, fallback, required []string) (*Table, error) {
	if len(rows) == 0 {
		return nil, &SchemaError{Sheet: sheet, Missing: required}
	}

	first := trimRow(rows[0])
	var t *Table
	if len(missingColumns(first, required)) == 0 {
		t = &Table{Columns: first}
		for i, row := range rows[1:] {
			t.Rows = append(t.Rows, row)
			t.SourceRow = append(t.SourceRow, i+2)
		}
	} else {
		if len(fallback) == 0 {
			return nil, &SchemaError{Sheet: sheet, Missing: missingColumns(first, required)}
		}
		header := trimRow(fallback)
		if missing := missingColumns(header, required); len(missing) > 0 {
			return nil, &SchemaError{Sheet: sheet, Missing: missing}
		}
		t = &Table{Columns: header}
		for i, row := range rows {
			t.Rows = append(t.Rows, row)
			t.SourceRow = append(t.SourceRow, i+1)
		}
	}

	width := len(t.Columns)
	for i, row := range t.Rows {
		if len(row) > width {
			return nil, &SchemaError{
				Sheet: sheet,
				Detail: fmt.Sprintf("row %d has %d cells, header has %d columns",
					t.SourceRow[i], len(row), width),
			}
		}
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			t.Rows[i] = padded
		}
	}
	return t, nil
}

func trimRow(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func missingColumns(header, required []string) []string {
	present := make(map[string]bool, len(header))
	for _, c := range header {
		present[c] = true
	}
	var missing []string
	for _, c := range required {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}
