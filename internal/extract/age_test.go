package extract

import (
	"testing"
	"time"
)

func TestAge(t *testing.T) {
	now := date(2024, time.June, 15)

	tests := []struct {
		name  string
		birth *time.Time
		want  int
	}{
		{"birthday_today", ptr(date(2006, time.June, 15)), 18},
		{"birthday_tomorrow", ptr(date(2006, time.June, 16)), 17},
		{"birthday_yesterday", ptr(date(2006, time.June, 14)), 18},
		{"later_in_year", ptr(date(2000, time.December, 1)), 23},
		{"earlier_in_year", ptr(date(2000, time.January, 1)), 24},
		{"newborn", ptr(date(2024, time.June, 1)), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Age(tt.birth, now)
			if got == nil {
				t.Fatalf("Age returned nil, want %d", tt.want)
			}
			if *got != tt.want {
				t.Errorf("got %d, want %d", *got, tt.want)
			}
		})
	}
}

func TestAge_NilBirth(t *testing.T) {
	if got := Age(nil, time.Now()); got != nil {
		t.Errorf("got %v, want nil", *got)
	}
}

func TestAge_LeapDayBirth(t *testing.T) {
	birth := ptr(date(2008, time.February, 29))

	if got := Age(birth, date(2026, time.February, 28)); got == nil || *got != 17 {
		t.Errorf("day before anniversary: got %v, want 17", got)
	}
	if got := Age(birth, date(2026, time.March, 1)); got == nil || *got != 18 {
		t.Errorf("day after anniversary: got %v, want 18", got)
	}
}
