package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date formats seen in scheduling exports. Day-first forms come ahead of
// ISO because the data originates from an Italian scheduler.
var cellDateFormats = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
	"02/01/06",
}

// excelEpoch is day zero of the 1900 date system used by xlsx files.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseCellDate parses a spreadsheet cell into a date. Handles the common
// formatted strings plus raw serial numbers, which is how date cells
// without a date style come out of a workbook. Returns nil when the cell
// is empty or unparseable.
func ParseCellDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range cellDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	if serial, err := strconv.Atoi(s); err == nil && serial > 0 && serial < 100000 {
		t := excelEpoch.AddDate(0, 0, serial)
		return &t
	}
	return nil
}

// expiryPattern matches date-like tokens in notes: day and month with an
// optional year, separated by any mix of . / -.
var expiryPattern = regexp.MustCompile(`\b\d{1,2}[./-]\d{1,2}(?:[./-]\d{2,4})?\b`)

// DateTokens returns every date-like token found in notes, in order of
// appearance. Callers decide which matches to use.
func DateTokens(notes string) []string {
	matches := expiryPattern.FindAllString(notes, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

// ParseDayFirst interprets a token from DateTokens as a calendar date
// with the day before the month. When the day-first reading is not a real
// date the swapped reading is tried; staff sometimes write month first.
// A token without a year gets the year of now; two-digit years follow the
// usual 69/68 century split. Returns nil when no reading works.
func ParseDayFirst(token string, now time.Time) *time.Time {
	parts := splitDateToken(token)
	if parts == nil {
		return nil
	}

	day, month := parts[0], parts[1]
	year := now.Year()
	if len(parts) == 3 {
		year = normalizeYear(parts[2])
	}

	if t, ok := makeDate(year, month, day); ok {
		return &t
	}
	if t, ok := makeDate(year, day, month); ok {
		return &t
	}
	return nil
}

// splitDateToken splits a token into 2 or 3 numeric parts, nil when the
// token is not shaped like a date.
func splitDateToken(token string) []int {
	fields := strings.FieldsFunc(token, func(r rune) bool {
		return r == '.' || r == '/' || r == '-'
	})
	if len(fields) < 2 || len(fields) > 3 {
		return nil
	}
	parts := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil
		}
		parts[i] = n
	}
	return parts
}

// makeDate builds a validated date; ok is false when the components do
// not name a real calendar day.
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func normalizeYear(y int) int {
	switch {
	case y >= 100:
		return y
	case y <= 68:
		return 2000 + y
	default:
		return 1900 + y
	}
}
