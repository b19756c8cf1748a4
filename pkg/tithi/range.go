package tithi

import "time"

// DateFormat is the wire format of Event.Date. Fixed-width and zero-padded,
// so lexicographic comparison orders dates chronologically.
const DateFormat = "2006-01-02"

// MonthWindow returns the inclusive Gregorian date boundaries of a span of
// whole months: the first day of (year, month) through the last day of the
// month monthSpan-1 months later.
func MonthWindow(year int, month time.Month, monthSpan int) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Day zero of the following month is the span's last day.
	end = time.Date(year, month+time.Month(monthSpan), 0, 0, 0, 0, 0, time.UTC)
	return start, end
}

// ResolveRange filters pool down to events observed within the inclusive
// window of monthSpan whole months starting at (year, month). An empty
// result is not an error. Ordering of the pool is preserved; sorting is the
// caller's concern.
func ResolveRange(year int, month time.Month, monthSpan int, pool []Event) []Event {
	start, end := MonthWindow(year, month, monthSpan)
	startStr := start.Format(DateFormat)
	endStr := end.Format(DateFormat)

	matched := make([]Event, 0, len(pool))
	for _, event := range pool {
		if event.Date >= startStr && event.Date <= endStr {
			matched = append(matched, event)
		}
	}
	return matched
}
