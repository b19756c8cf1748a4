package refresh

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/smartlinemanapp/bangla-tithi-main/internal/utils"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/cache"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/feed"
)

// DefaultMonthsAhead is the span of whole months a refresh fetches, starting
// at the current month.
const DefaultMonthsAhead = 6

// Service keeps the cached snapshot fresh: it checks staleness, fetches the
// upcoming window from the feed and merges the batch into the store.
type Service interface {
	Refresh(ctx context.Context) (int, error)
	RefreshIfStale(ctx context.Context) (bool, error)
}

type ServiceImpl struct {
	store       cache.Store
	fetcher     feed.Fetcher
	clock       utils.Clock
	monthsAhead int
	group       singleflight.Group
}

func NewService(store cache.Store, fetcher feed.Fetcher) *ServiceImpl {
	return &ServiceImpl{
		store:       store,
		fetcher:     fetcher,
		clock:       &utils.SystemClock{},
		monthsAhead: DefaultMonthsAhead,
	}
}

// WithMonthsAhead overrides the fetch window span. Values below 1 are ignored.
func (s *ServiceImpl) WithMonthsAhead(months int) *ServiceImpl {
	if months > 0 {
		s.monthsAhead = months
	}
	return s
}

// Refresh fetches the upcoming window and merges it into the store.
// Concurrent calls collapse into a single fetch; every caller gets that
// fetch's outcome. Returns the number of fetched events.
func (s *ServiceImpl) Refresh(ctx context.Context) (int, error) {
	count, err, _ := s.group.Do("refresh", func() (interface{}, error) {
		now := s.clock.Now()
		events, err := s.fetcher.Fetch(ctx, now.Year(), now.Month(), s.monthsAhead)
		if err != nil {
			return 0, fmt.Errorf("failed to fetch events: %w", err)
		}
		if len(events) == 0 {
			// An empty window is valid; keep the cached snapshot untouched.
			log.Info("feed returned no events for the upcoming window")
			return 0, nil
		}
		if err := s.store.Merge(ctx, events); err != nil {
			return 0, fmt.Errorf("failed to merge fetched events: %w", err)
		}
		log.Infof("merged %d events from feed", len(events))
		return len(events), nil
	})
	if err != nil {
		return 0, err
	}
	return count.(int), nil
}

// RefreshIfStale refreshes only when the snapshot is older than the
// staleness threshold. Returns whether a refresh ran.
func (s *ServiceImpl) RefreshIfStale(ctx context.Context) (bool, error) {
	if !s.store.IsStale(ctx) {
		log.Debug("cache is fresh, skipping refresh")
		return false, nil
	}
	if _, err := s.Refresh(ctx); err != nil {
		return false, err
	}
	return true, nil
}
