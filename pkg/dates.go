package pkg

import "time"

// DayKey returns the canonical "YYYY-MM-DD" key for the calendar day
// of t on the device's clock. The timestamp is converted to the local
// timezone first: sessions decoded from the backend carry a UTC
// offset, and without the conversion a workout finished just past
// local midnight would land on the previous day's key.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}

// StartOfWeek returns the most recent Monday at local midnight,
// relative to t. Monday-based offset: (weekday + 6) mod 7.
func StartOfWeek(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	mondayBased := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -mondayBased)
}

// AddDays shifts t by n calendar days, month and year rollover included.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
