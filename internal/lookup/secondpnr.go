package lookup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/healthforce/claimprep/internal/xlsxread"
)

const (
	sheetOSR   = "OSR"
	sheetSRT   = "SRT"
	colService = "Prestazione"
)

// InstituteSheets names the workbook sheet carrying the double-authorization
// service list for each institute.
var InstituteSheets = map[int]string{
	1: sheetOSR,
	8: sheetSRT,
}

// SecondPNRSets holds, per institute, the services that need a second
// authorization code.
type SecondPNRSets struct {
	byInstitute map[int]map[string]bool
}

// NewSecondPNRSets indexes per-institute service lists.
func NewSecondPNRSets(services map[int][]string) *SecondPNRSets {
	s := &SecondPNRSets{byInstitute: make(map[int]map[string]bool, len(services))}
	for inst, codes := range services {
		set := make(map[string]bool, len(codes))
		for _, code := range codes {
			if code != "" {
				set[code] = true
			}
		}
		s.byInstitute[inst] = set
	}
	return s
}

// LoadSecondPNRSets reads the per-institute service lists. Every sheet named
// in InstituteSheets must be present and non-empty.
func LoadSecondPNRSets(path string) (*SecondPNRSets, error) {
	wb, err := xlsxread.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer wb.Close()

	insts := make([]int, 0, len(InstituteSheets))
	for inst := range InstituteSheets {
		insts = append(insts, inst)
	}
	sort.Ints(insts)

	services := make(map[int][]string, len(insts))
	for _, inst := range insts {
		sheet := InstituteSheets[inst]
		rows, err := wb.Rows(sheet)
		if err != nil {
			return nil, &LoadError{Source: path, Sheet: sheet, Err: err}
		}
		tab, err := xlsxread.ResolveTable(sheet, rows, nil, []string{colService})
		if err != nil {
			return nil, &LoadError{Source: path, Sheet: sheet, Err: err}
		}
		idx, _ := tab.ColumnIndex(colService)

		var codes []string
		for _, row := range tab.Rows {
			code := strings.TrimSpace(row[idx])
			if code == "" {
				continue
			}
			codes = append(codes, code)
		}
		if len(codes) == 0 {
			return nil, &LoadError{Source: path, Sheet: sheet, Err: fmt.Errorf("no services listed")}
		}
		services[inst] = codes
	}
	return NewSecondPNRSets(services), nil
}

// Requires reports whether a service at an institute needs a second code.
func (s *SecondPNRSets) Requires(institute int, examCode string) bool {
	return s.byInstitute[institute][examCode]
}

// Len returns the number of services listed for an institute.
func (s *SecondPNRSets) Len(institute int) int {
	return len(s.byInstitute[institute])
}

// Institutes returns the institute ids that carry a service list, ascending.
func (s *SecondPNRSets) Institutes() []int {
	out := make([]int, 0, len(s.byInstitute))
	for inst := range s.byInstitute {
		out = append(out, inst)
	}
	sort.Ints(out)
	return out
}
