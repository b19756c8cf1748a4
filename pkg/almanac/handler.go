package almanac

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/smartlinemanapp/bangla-tithi-main/internal/rest"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/bangla"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/tithi"
)

// EventDTO decorates a cached event with the display strings the UI renders:
// the computed Bangla date and Bengali-script timestamps.
type EventDTO struct {
	Date           string                `json:"date"`
	DateBN         string                `json:"dateBn"`
	Weekday        tithi.Weekday         `json:"weekday"`
	BanglaDate     string                `json:"banglaDate"`
	BanglaDateInfo *tithi.BanglaDateInfo `json:"banglaDateInfo,omitempty"`
	Event          *EventDetailsDTO      `json:"event,omitempty"`
	Sun            *tithi.SunData        `json:"sun,omitempty"`
}

type EventDetailsDTO struct {
	Name        string `json:"name"`
	BanglaName  string `json:"banglaName"`
	Type        string `json:"type"`
	Description string `json:"description"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	StartTimeBN string `json:"startTimeBn,omitempty"`
	EndTimeBN   string `json:"endTimeBn,omitempty"`
}

type UpcomingPageDTO struct {
	Events     []EventDTO `json:"events"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
	TotalCount int        `json:"totalCount"`
}

type BanglaDateDTO struct {
	Day        int    `json:"day"`
	MonthIndex int    `json:"monthIndex"`
	Month      string `json:"month"`
	MonthBN    string `json:"monthBn"`
	Year       int    `json:"year"`
	Display    string `json:"display"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetMonth serves the events of a month span: ?year=2026&month=1&months=3.
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeBadRequest(w, "Invalid year", "year must be an integer")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeBadRequest(w, "Invalid month", "month must be an integer between 1 and 12")
		return
	}
	months := 1
	if raw := r.URL.Query().Get("months"); raw != "" {
		months, err = strconv.Atoi(raw)
		if err != nil || months < 1 {
			writeBadRequest(w, "Invalid months", "months must be a positive integer")
			return
		}
	}

	events, err := h.service.Month(r.Context(), year, time.Month(month), months)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]EventDTO, 0, len(events))
	for _, event := range events {
		response = append(response, eventToDTO(event))
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetToday serves today's entry; 404 when the snapshot has none.
func (h *Handler) GetToday(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	event, err := h.service.Today(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if event == nil {
		http.Error(w, "No entry for today", http.StatusNotFound)
		return
	}
	if err := json.NewEncoder(w).Encode(eventToDTO(*event)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetUpcoming serves a batch of the upcoming list: ?filter=Purnima&page=0.
func (h *Handler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Listing upcoming events")

	category := tithi.CategoryAll
	if raw := r.URL.Query().Get("filter"); raw != "" {
		category = tithi.Category(raw)
	}
	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		var err error
		page, err = strconv.Atoi(raw)
		if err != nil || page < 0 {
			writeBadRequest(w, "Invalid page", "page must be a non-negative integer")
			return
		}
	}

	result, err := h.service.Upcoming(r.Context(), category, page)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := UpcomingPageDTO{
		Events:     make([]EventDTO, 0, len(result.Events)),
		Page:       result.Page,
		TotalPages: result.TotalPages,
		TotalCount: result.TotalCount,
	}
	for _, event := range result.Events {
		response.Events = append(response.Events, eventToDTO(event))
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetBanglaDate converts a Gregorian date: ?date=2026-04-14.
func (h *Handler) GetBanglaDate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	date, err := time.Parse(tithi.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		writeBadRequest(w, "Invalid date", "date must be in YYYY-MM-DD format")
		return
	}

	banglaDate := bangla.ToBanglaDate(date)
	response := BanglaDateDTO{
		Day:        banglaDate.Day,
		MonthIndex: banglaDate.MonthIndex,
		Month:      banglaDate.Month(),
		MonthBN:    banglaDate.MonthBN(),
		Year:       banglaDate.Year,
		Display:    banglaDate.String(),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func eventToDTO(event tithi.Event) EventDTO {
	dto := EventDTO{
		Date:           event.Date,
		DateBN:         bangla.ToBengaliDigits(event.Date),
		Weekday:        event.Weekday,
		BanglaDateInfo: event.BanglaDate,
		Sun:            event.Sun,
	}
	if parsed, err := time.Parse(tithi.DateFormat, event.Date); err == nil {
		dto.BanglaDate = bangla.ToBanglaDate(parsed).String()
	}
	if event.Details != nil {
		dto.Event = &EventDetailsDTO{
			Name:        event.Details.Name,
			BanglaName:  event.Details.BanglaName,
			Type:        string(event.Details.Type),
			Description: event.Description(),
			StartTime:   event.Details.StartDateTime,
			EndTime:     event.Details.EndDateTime,
			StartTimeBN: bangla.FormatBengaliTime(event.Details.StartDateTime),
			EndTimeBN:   bangla.FormatBengaliTime(event.Details.EndDateTime),
		}
	}
	return dto
}

func writeBadRequest(w http.ResponseWriter, message, details string) {
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
