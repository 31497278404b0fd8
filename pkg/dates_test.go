package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKey(t *testing.T) {
	ts := time.Date(2024, 3, 7, 23, 59, 59, 0, time.Local)
	assert.Equal(t, "2024-03-07", DayKey(ts))
	assert.Equal(t, "2024-03-08", DayKey(ts.Add(time.Second)))
	assert.Equal(t, "2024-01-02", DayKey(time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)))
}

func TestDayKey_NormalizesLocation(t *testing.T) {
	// same instant, different renderings, one local day
	ts := time.Date(2024, 3, 8, 0, 20, 0, 0, time.FixedZone("UTC+2", 2*60*60))
	assert.Equal(t, DayKey(ts.In(time.Local)), DayKey(ts))
	assert.Equal(t, DayKey(ts), DayKey(ts.UTC()))
}

func TestStartOfWeek(t *testing.T) {
	// 2024-03-07 is a Thursday
	thursday := time.Date(2024, 3, 7, 15, 30, 0, 0, time.Local)
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	assert.Equal(t, monday, StartOfWeek(thursday))

	// a Monday maps to its own midnight
	assert.Equal(t, monday, StartOfWeek(monday.Add(5*time.Hour)))
	assert.Equal(t, monday, StartOfWeek(monday))

	// Sunday belongs to the week started on the previous Monday
	sunday := time.Date(2024, 3, 10, 23, 0, 0, 0, time.Local)
	assert.Equal(t, monday, StartOfWeek(sunday))
}

func TestAddDays_Rollover(t *testing.T) {
	endOfMonth := time.Date(2024, 1, 31, 12, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2024, 2, 1, 12, 0, 0, 0, time.Local), AddDays(endOfMonth, 1))

	newYear := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.Local), AddDays(newYear, -1))
}
