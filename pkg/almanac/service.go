package almanac

import (
	"context"
	"fmt"
	"time"

	"github.com/smartlinemanapp/bangla-tithi-main/internal/utils"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/cache"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/tithi"
)

// upcomingPageSize is the batch size of the upcoming list.
const upcomingPageSize = 5

// UpcomingPage is one batch of the upcoming-events list.
type UpcomingPage struct {
	Events     []tithi.Event
	Page       int
	TotalPages int
	TotalCount int
}

// Service is the read side of the almanac: month views, today's entry and
// the paginated upcoming list, all served from the cached snapshot.
type Service struct {
	store cache.Store
	clock utils.Clock
}

func NewService(store cache.Store) *Service {
	return &Service{store: store, clock: &utils.SystemClock{}}
}

// Month returns the snapshot's events within a span of whole months.
func (s *Service) Month(ctx context.Context, year int, month time.Month, monthSpan int) ([]tithi.Event, error) {
	pool, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached events: %w", err)
	}
	return tithi.ResolveRange(year, month, monthSpan, pool), nil
}

// Today returns today's entry, or nil when the snapshot has none.
func (s *Service) Today(ctx context.Context) (*tithi.Event, error) {
	pool, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached events: %w", err)
	}
	todayStr := s.clock.Now().Format(tithi.DateFormat)
	for _, event := range pool {
		if event.Date == todayStr {
			return &event, nil
		}
	}
	return nil, nil
}

// Upcoming lists named events strictly after today, filtered by category and
// paginated in batches of five. Page is zero-based; a page past the end
// yields an empty batch.
func (s *Service) Upcoming(ctx context.Context, category tithi.Category, page int) (UpcomingPage, error) {
	pool, err := s.store.Load(ctx)
	if err != nil {
		return UpcomingPage{}, fmt.Errorf("failed to load cached events: %w", err)
	}

	todayStr := s.clock.Now().Format(tithi.DateFormat)
	upcoming := make([]tithi.Event, 0, len(pool))
	for _, event := range pool {
		if event.Date > todayStr && event.Details != nil {
			upcoming = append(upcoming, event)
		}
	}
	upcoming = tithi.FilterByCategory(upcoming, category)

	count := len(upcoming)
	pages := (count + upcomingPageSize - 1) / upcomingPageSize

	if page < 0 {
		page = 0
	}
	from := page * upcomingPageSize
	if from > count {
		from = count
	}
	to := from + upcomingPageSize
	if to > count {
		to = count
	}

	return UpcomingPage{
		Events:     upcoming[from:to],
		Page:       page,
		TotalPages: pages,
		TotalCount: count,
	}, nil
}
