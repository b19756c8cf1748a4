package tithi

import "strings"

// Category is an upcoming-list filter. CategoryAll disables filtering.
type Category string

const (
	CategoryAll      Category = "All"
	CategoryPurnima  Category = "Purnima"
	CategoryAmavasya Category = "Amavasya"
	CategoryEkadashi Category = "Ekadashi"
	CategoryFestival Category = "Festival"
)

// legacyLabel is the localized tithi label a category also matches. Older
// feed entries carry the Bengali label in BanglaDate.Tithi instead of a
// populated Event.Type, so both fields have to be checked.
type legacyLabel struct {
	label    string
	contains bool // match as substring instead of whole label
}

var legacyLabels = map[Category]legacyLabel{
	CategoryPurnima:  {label: "পূর্ণিমা"},
	CategoryAmavasya: {label: "অমাবস্যা"},
	// Ekadashi labels are qualified ("শয়ন একাদশী" etc.), so substring match.
	CategoryEkadashi: {label: "একাদশী", contains: true},
}

// Matches reports whether the event belongs to the category, either by its
// free-text type or by its localized tithi label.
func (c Category) Matches(event Event) bool {
	if c == CategoryAll {
		return true
	}

	var typeStr string
	if event.Details != nil {
		typeStr = string(event.Details.Type)
	}
	if strings.Contains(typeStr, string(c)) {
		return true
	}

	alias, ok := legacyLabels[c]
	if !ok || event.BanglaDate == nil {
		return false
	}
	if alias.contains {
		return strings.Contains(event.BanglaDate.Tithi, alias.label)
	}
	return event.BanglaDate.Tithi == alias.label
}

// FilterByCategory retains the events matching the category; CategoryAll
// matches everything. The result is always a fresh slice.
func FilterByCategory(events []Event, category Category) []Event {
	matched := make([]Event, 0, len(events))
	for _, event := range events {
		if category.Matches(event) {
			matched = append(matched, event)
		}
	}
	return matched
}
