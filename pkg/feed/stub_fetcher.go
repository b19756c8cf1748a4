package feed

import (
	"context"
	"time"

	"github.com/smartlinemanapp/bangla-tithi-main/pkg/tithi"
)

// StubFetcher serves a fixed pool, windowed like the real fetchers do.
type StubFetcher struct {
	Pool  []tithi.Event
	Err   error
	Calls int
}

func (s *StubFetcher) Fetch(ctx context.Context, year int, month time.Month, monthCount int) ([]tithi.Event, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return tithi.ResolveRange(year, month, monthCount, s.Pool), nil
}
