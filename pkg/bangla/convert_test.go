package bangla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestToBanglaDate_PohelaBoishakh(t *testing.T) {
	result := ToBanglaDate(date(2026, time.April, 14))

	assert.Equal(t, 1, result.Day)
	assert.Equal(t, 0, result.MonthIndex)
	assert.Equal(t, 1433, result.Year)
	assert.Equal(t, "Boishakh", result.Month())
}

func TestToBanglaDate_DayBeforeNewYearIsPreviousYear(t *testing.T) {
	before := ToBanglaDate(date(2026, time.April, 13))
	after := ToBanglaDate(date(2026, time.April, 14))

	assert.Equal(t, 1432, before.Year)
	assert.Equal(t, 1433, after.Year)
	// April 13 is the last day of Chaitra.
	assert.Equal(t, 11, before.MonthIndex)
	assert.Equal(t, 30, before.Day)
}

func TestToBanglaDate_MonthBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		gregorian time.Time
		expected  BanglaDate
	}{
		{"last day of Boishakh", date(2025, time.May, 14), BanglaDate{Day: 31, MonthIndex: 0, Year: 1432}},
		{"first day of Jyaistha", date(2025, time.May, 15), BanglaDate{Day: 1, MonthIndex: 1, Year: 1432}},
		{"first day of Kartik after the 31-day months", date(2025, time.October, 16), BanglaDate{Day: 1, MonthIndex: 6, Year: 1432}},
		{"new year's eve of the Gregorian year", date(2025, time.December, 31), BanglaDate{Day: 17, MonthIndex: 8, Year: 1432}},
		{"january falls in the previous Bangla year", date(2026, time.January, 1), BanglaDate{Day: 18, MonthIndex: 8, Year: 1432}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToBanglaDate(tt.gregorian))
		})
	}
}

func TestToBanglaDate_IsDeterministic(t *testing.T) {
	d := date(2026, time.August, 9)
	assert.Equal(t, ToBanglaDate(d), ToBanglaDate(d))
}

func TestToBanglaDate_IgnoresTimeOfDay(t *testing.T) {
	midnight := date(2026, time.April, 14)
	evening := time.Date(2026, time.April, 14, 23, 45, 0, 0, time.UTC)

	assert.Equal(t, ToBanglaDate(midnight), ToBanglaDate(evening))
}

func TestToBanglaDate_EveryOffsetMapsToExactlyOneDay(t *testing.T) {
	// Walk a full non-leap Bangla year day by day; each date must advance by
	// exactly one day within the table and cover every (month, day) pair once.
	seen := make(map[[2]int]bool)
	start := date(2025, time.April, 14)
	for offset := 0; offset < 365; offset++ {
		result := ToBanglaDate(start.AddDate(0, 0, offset))
		key := [2]int{result.MonthIndex, result.Day}
		assert.False(t, seen[key], "offset %d produced duplicate %v", offset, key)
		seen[key] = true
		assert.Equal(t, 1432, result.Year)
	}
	assert.Len(t, seen, 365)
}

func TestToBanglaDate_LeapDayOverflowClampsToChaitra(t *testing.T) {
	// The span 2027-04-14..2028-04-13 contains 2028-02-29, so April 13 sits
	// at offset 365 which the fixed table cannot place.
	result := ToBanglaDate(date(2028, time.April, 13))

	assert.Equal(t, 1434, result.Year)
	assert.Equal(t, 11, result.MonthIndex)
	assert.Equal(t, 30, result.Day)
}
