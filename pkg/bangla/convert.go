package bangla

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// epochMonth and epochDay mark Pohela Boishakh on the Gregorian calendar.
const (
	epochMonth = time.April
	epochDay   = 14
)

// ToBanglaDate converts a Gregorian date to the corresponding Bangla date.
// The Bangla year starts on April 14: dates on or after it belong to
// Gregorian year - 593, earlier dates to Gregorian year - 594 counted from
// the previous year's April 14. Only the local calendar date matters; the
// time of day and timezone offset of t are ignored.
func ToBanglaDate(t time.Time) BanglaDate {
	year, month, day := t.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	bYear := year - 593
	daysPassed := daysBetween(time.Date(year, epochMonth, epochDay, 0, 0, 0, 0, time.UTC), date)
	if daysPassed < 0 {
		bYear = year - 594
		daysPassed = daysBetween(time.Date(year-1, epochMonth, epochDay, 0, 0, 0, 0, time.UTC), date)
	}

	remaining := daysPassed
	for i, length := range monthLengths {
		if remaining < length {
			return BanglaDate{Day: remaining + 1, MonthIndex: i, Year: bYear}
		}
		remaining -= length
	}

	// A Gregorian leap day pushes the span to 366 days, one more than the
	// fixed table holds. Clamp to the last day of Chaitra.
	log.Warnf("bangla date overflow: %s is %d days past the epoch", date.Format("2006-01-02"), daysPassed)
	return BanglaDate{Day: monthLengths[11], MonthIndex: 11, Year: bYear}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
