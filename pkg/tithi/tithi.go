package tithi

// EventType categorizes a lunar day or observance. The feed populates it as
// free text, so matching goes through FilterByCategory rather than equality.
type EventType string

const (
	TypePurnima   EventType = "Purnima"
	TypeAmavasya  EventType = "Amavasya"
	TypePratipada EventType = "Pratipada"
	TypeEkadashi  EventType = "Ekadashi"
	TypeFestival  EventType = "Festival"
	TypeRitual    EventType = "Ritual"
	TypeNormal    EventType = "Normal"
	TypeOther     EventType = "Other"
)

// EventDetails is the named observance attached to a calendar day.
type EventDetails struct {
	Name          string    `json:"name"`
	BanglaName    string    `json:"banglaName"`
	Type          EventType `json:"type"`
	Description   string    `json:"description"`
	StartDateTime string    `json:"startDateTime"`
	EndDateTime   string    `json:"endDateTime"`
}

// BanglaDateInfo is the feed's own rendering of the Bangla date, carried
// through untouched. Tithi holds the localized lunar-day label that
// FilterByCategory falls back to when Event.Type is not populated.
type BanglaDateInfo struct {
	Month     string `json:"month"`
	Paksha    string `json:"paksha"`
	Tithi     string `json:"tithi"`
	TithiType string `json:"tithiType"`
}

// SunData carries sunrise/sunset strings; opaque to the engine.
type SunData struct {
	Sunrise     string `json:"sunrise"`
	Sunset      string `json:"sunset"`
	DayLength   string `json:"dayLength"`
	NightLength string `json:"nightLength"`
	Reference   string `json:"reference"`
}

// Weekday is the localized day-of-week pair from the feed.
type Weekday struct {
	En string `json:"en"`
	Bn string `json:"bn"`
}

// Event is a single dated almanac entry. Date is the Gregorian observation
// day in YYYY-MM-DD form and the primary chronological key.
type Event struct {
	Date       string          `json:"date"`
	Weekday    Weekday         `json:"weekday"`
	BanglaDate *BanglaDateInfo `json:"banglaDate,omitempty"`
	Details    *EventDetails   `json:"event,omitempty"`
	Sun        *SunData        `json:"sun,omitempty"`
}

// fallbackAdvice is shown when an event carries no description.
const fallbackAdvice = "এই তিথি সম্পর্কে কোনো বিস্তারিত তথ্য পাওয়া যায়নি।"

// Identity is the deduplication key: the date plus the observance name when
// one exists. Two fetches of the same logical event always produce the same
// identity, so a later fetch overwrites the earlier record on merge.
func (e Event) Identity() string {
	if e.Details != nil {
		return e.Date + e.Details.Name
	}
	return e.Date
}

// StartDateTime returns the observance start timestamp, or "" for entries
// without a named observance. Used as the chronological tie-breaker.
func (e Event) StartDateTime() string {
	if e.Details == nil {
		return ""
	}
	return e.Details.StartDateTime
}

// Description returns the observance description, falling back to a fixed
// Bengali message when the feed carries none.
func (e Event) Description() string {
	if e.Details != nil && e.Details.Description != "" {
		return e.Details.Description
	}
	return fallbackAdvice
}
