package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	log "github.com/sirupsen/logrus"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/bangla"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/tithi"
)

// ICSFetcher subscribes to an iCalendar feed of observances. Each VEVENT
// becomes one almanac event; the observation day is the DTSTART calendar
// date and the CATEGORIES property maps onto the event type.
type ICSFetcher struct {
	url    string
	client *http.Client
}

func NewICSFetcher(url string) *ICSFetcher {
	return &ICSFetcher{url: url, client: newHTTPClient()}
}

func (f *ICSFetcher) Fetch(ctx context.Context, year int, month time.Month, monthCount int) ([]tithi.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ics feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ics feed returned status %s", resp.Status)
	}

	cal, err := ical.ParseCalendar(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ics feed: %w", err)
	}

	pool := make([]tithi.Event, 0, len(cal.Events()))
	for _, vevent := range cal.Events() {
		event, err := toEvent(vevent)
		if err != nil {
			// Skip the broken VEVENT but keep the rest of the feed.
			log.Warnf("skipping ics event: %v", err)
			continue
		}
		pool = append(pool, event)
	}

	events := tithi.ResolveRange(year, month, monthCount, pool)
	log.Debugf("ics feed returned %d events, %d in requested window", len(pool), len(events))
	return events, nil
}

func toEvent(vevent *ical.VEvent) (tithi.Event, error) {
	start, err := vevent.GetStartAt()
	if err != nil {
		return tithi.Event{}, fmt.Errorf("missing or invalid DTSTART: %w", err)
	}

	details := &tithi.EventDetails{
		Type:          tithi.TypeNormal,
		StartDateTime: start.Format(time.RFC3339),
	}
	if p := vevent.GetProperty(ical.ComponentPropertySummary); p != nil {
		details.Name = p.Value
	}
	if details.Name == "" {
		return tithi.Event{}, fmt.Errorf("missing SUMMARY")
	}
	if p := vevent.GetProperty(ical.ComponentPropertyDescription); p != nil {
		details.Description = p.Value
	}
	if p := vevent.GetProperty(ical.ComponentPropertyCategories); p != nil {
		details.Type = toEventType(p.Value)
	}
	if end, err := vevent.GetEndAt(); err == nil {
		details.EndDateTime = end.Format(time.RFC3339)
	}

	date := start.Format(tithi.DateFormat)
	return tithi.Event{
		Date: date,
		Weekday: tithi.Weekday{
			En: start.Weekday().String(),
			Bn: bengaliWeekday(start.Weekday()),
		},
		Details: details,
	}, nil
}

var knownTypes = []tithi.EventType{
	tithi.TypePurnima, tithi.TypeAmavasya, tithi.TypePratipada, tithi.TypeEkadashi,
	tithi.TypeFestival, tithi.TypeRitual, tithi.TypeNormal, tithi.TypeOther,
}

func toEventType(category string) tithi.EventType {
	category = strings.TrimSpace(category)
	if category == "" {
		return tithi.TypeNormal
	}
	for _, known := range knownTypes {
		if strings.EqualFold(category, string(known)) {
			return known
		}
	}
	return tithi.TypeOther
}

func bengaliWeekday(day time.Weekday) string {
	return bangla.WeekdaysBN[int(day)] + "বার"
}
