package lookup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/healthforce/claimprep/internal/xlsxread"
)

const (
	categorySheet   = "Codice"
	colCategoryExam = "Codice Esame SAP"
	colCategoryID   = "ID prestazioni"
)

// CategoryEntry maps one exam code to a reimbursement category.
type CategoryEntry struct {
	ExamCode   string
	CategoryID int
}

// CategoryTable holds the exam-to-category rows in workbook order. An exam
// code may appear under more than one category; all of its entries are kept.
type CategoryTable struct {
	entries []CategoryEntry
	byCode  map[string][]CategoryEntry
}

// NewCategoryTable indexes the given entries, collapsing exact duplicates
// and preserving order.
func NewCategoryTable(entries []CategoryEntry) *CategoryTable {
	t := &CategoryTable{byCode: make(map[string][]CategoryEntry)}
	seen := make(map[CategoryEntry]bool)
	for _, entry := range entries {
		if entry.ExamCode == "" || seen[entry] {
			continue
		}
		seen[entry] = true
		t.entries = append(t.entries, entry)
		t.byCode[entry.ExamCode] = append(t.byCode[entry.ExamCode], entry)
	}
	return t
}

// LoadCategoryTable reads the exam/category mapping from the Codice sheet.
func LoadCategoryTable(path string) (*CategoryTable, error) {
	wb, err := xlsxread.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Sheet: categorySheet, Err: err}
	}
	defer wb.Close()

	rows, err := wb.Rows(categorySheet)
	if err != nil {
		return nil, &LoadError{Source: path, Sheet: categorySheet, Err: err}
	}
	tab, err := xlsxread.ResolveTable(categorySheet, rows, nil,
		[]string{colCategoryExam, colCategoryID})
	if err != nil {
		return nil, &LoadError{Source: path, Sheet: categorySheet, Err: err}
	}

	codeIdx, _ := tab.ColumnIndex(colCategoryExam)
	idIdx, _ := tab.ColumnIndex(colCategoryID)

	var entries []CategoryEntry
	for _, row := range tab.Rows {
		code := strings.TrimSpace(row[codeIdx])
		if code == "" {
			continue
		}
		entries = append(entries, CategoryEntry{
			ExamCode:   code,
			CategoryID: parseCategoryID(row[idIdx]),
		})
	}

	t := NewCategoryTable(entries)
	if t.Len() == 0 {
		return nil, &LoadError{Source: path, Sheet: categorySheet, Err: fmt.Errorf("no usable rows")}
	}
	return t, nil
}

// Lookup returns every category entry recorded for an exam code.
func (t *CategoryTable) Lookup(code string) []CategoryEntry {
	return t.byCode[code]
}

// Len returns the number of distinct exam/category pairs.
func (t *CategoryTable) Len() int {
	return len(t.entries)
}

// parseCategoryID accepts both integer and float-formatted cells. Anything
// unparseable maps to 0, which no category label resolves.
func parseCategoryID(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
