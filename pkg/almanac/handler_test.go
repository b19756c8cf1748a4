package almanac

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlinemanapp/bangla-tithi-main/pkg/tithi"
)

func setupHandlerTest(t *testing.T, now time.Time, pool []tithi.Event) *Handler {
	t.Helper()
	return NewHandler(newTestService(t, now, pool))
}

func TestGetMonth(t *testing.T) {
	now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	handler := setupHandlerTest(t, now, []tithi.Event{
		{
			Date:    "2026-01-03",
			Weekday: tithi.Weekday{En: "Saturday", Bn: "শনি"},
			Details: &tithi.EventDetails{
				Name:          "Paush Purnima",
				Type:          tithi.TypePurnima,
				StartDateTime: "2026-01-03T04:44:00+06:00",
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tithi?year=2026&month=1&months=1", nil)
	w := httptest.NewRecorder()
	handler.GetMonth(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response []EventDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, "2026-01-03", response[0].Date)
	assert.Equal(t, "২০২৬-০১-০৩", response[0].DateBN)
	// January 3rd 2026 is Poush 20, 1432.
	assert.Equal(t, "২০ পৌষ ১৪৩২", response[0].BanglaDate)
	require.NotNil(t, response[0].Event)
	assert.Equal(t, "ভোর ৪:৪৪", response[0].Event.StartTimeBN)
}

func TestGetMonth_InvalidParams(t *testing.T) {
	handler := setupHandlerTest(t, time.Now(), nil)

	tests := []struct {
		name string
		url  string
	}{
		{"missing year", "/api/tithi?month=1"},
		{"month out of range", "/api/tithi?year=2026&month=13"},
		{"negative span", "/api/tithi?year=2026&month=1&months=-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			handler.GetMonth(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetToday_NotFound(t *testing.T) {
	now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	handler := setupHandlerTest(t, now, []tithi.Event{{Date: "2026-01-11"}})

	req := httptest.NewRequest(http.MethodGet, "/api/tithi/today", nil)
	w := httptest.NewRecorder()
	handler.GetToday(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUpcoming_FilterAndPagination(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	handler := setupHandlerTest(t, now, []tithi.Event{
		named("2026-01-03", "Purnima", tithi.TypePurnima),
		named("2026-01-10", "Ekadashi", tithi.TypeEkadashi),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tithi/upcoming?filter=Purnima&page=0", nil)
	w := httptest.NewRecorder()
	handler.GetUpcoming(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response UpcomingPageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Events, 1)
	assert.Equal(t, "Purnima", response.Events[0].Event.Name)
	assert.Equal(t, 1, response.TotalCount)
	assert.Equal(t, 1, response.TotalPages)
}

func TestGetBanglaDate(t *testing.T) {
	handler := setupHandlerTest(t, time.Now(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/bangla-date?date=2026-04-14", nil)
	w := httptest.NewRecorder()
	handler.GetBanglaDate(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response BanglaDateDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Day)
	assert.Equal(t, 0, response.MonthIndex)
	assert.Equal(t, "Boishakh", response.Month)
	assert.Equal(t, 1433, response.Year)
	assert.Equal(t, "১ বৈশাখ ১৪৩৩", response.Display)
}

func TestGetBanglaDate_InvalidDate(t *testing.T) {
	handler := setupHandlerTest(t, time.Now(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/bangla-date?date=14-04-2026", nil)
	w := httptest.NewRecorder()
	handler.GetBanglaDate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
