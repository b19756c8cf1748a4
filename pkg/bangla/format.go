package bangla

import (
	"fmt"
	"strings"
	"time"
)

var bengaliDigits = map[rune]rune{
	'0': '০', '1': '১', '2': '২', '3': '৩', '4': '৪',
	'5': '৫', '6': '৬', '7': '৭', '8': '৮', '9': '৯',
}

// ToBengaliDigits maps every ASCII digit in value to its Bengali-script
// equivalent. Non-digit runes pass through unchanged, so formatted strings
// like "05/04/2026" keep their separators.
func ToBengaliDigits[T int | string](value T) string {
	s := fmt.Sprint(value)
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		if bn, ok := bengaliDigits[r]; ok {
			b.WriteRune(bn)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// timestampLayouts are the accepted forms of event timestamps: full RFC3339
// with offset, and the offset-less local form the feed sometimes carries.
var timestampLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

// FormatBengaliTime renders a timestamp as "{period} {hour}:{minute}" in
// Bengali script, e.g. "সকাল ৯:০৫". The six day periods are half-open,
// left-inclusive hour intervals; hours 20-23 and 0-3 fall into রাত. Empty or
// unparseable input yields an empty string.
func FormatBengaliTime(iso string) string {
	if iso == "" {
		return ""
	}
	var parsed time.Time
	var err error
	for _, layout := range timestampLayouts {
		parsed, err = time.Parse(layout, iso)
		if err == nil {
			break
		}
	}
	if err != nil {
		return ""
	}

	hours := parsed.Hour()
	minutes := parsed.Minute()

	var period string
	switch {
	case hours >= 4 && hours < 6:
		period = "ভোর"
	case hours >= 6 && hours < 12:
		period = "সকাল"
	case hours >= 12 && hours < 15:
		period = "দুপুর"
	case hours >= 15 && hours < 18:
		period = "বিকেল"
	case hours >= 18 && hours < 20:
		period = "সন্ধ্যা"
	default:
		period = "রাত"
	}

	displayHours := hours % 12
	if displayHours == 0 {
		displayHours = 12
	}

	return fmt.Sprintf("%s %s:%s", period,
		ToBengaliDigits(displayHours),
		ToBengaliDigits(fmt.Sprintf("%02d", minutes)))
}

// FormatGregorianBN renders a Gregorian date as "D Month YYYY" with the
// Bengali month name, e.g. "১৪ এপ্রিল ২০২৬".
func FormatGregorianBN(t time.Time) string {
	return ToBengaliDigits(t.Day()) + " " + GregorianMonthsBN[int(t.Month())-1] + " " + ToBengaliDigits(t.Year())
}
