package extract

import "time"

// Age returns whole calendar years between birth and now, nil when birth
// is nil. The birthday itself counts: turning 18 on the reference date
// yields 18.
func Age(birth *time.Time, now time.Time) *int {
	if birth == nil {
		return nil
	}
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return &years
}
