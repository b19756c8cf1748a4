package refresh

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler runs RefreshIfStale on a cron schedule so the snapshot is
// refreshed in the background instead of on the read path.
type Scheduler struct {
	service Service
	cron    *cron.Cron
}

func NewScheduler(service Service) *Scheduler {
	return &Scheduler{service: service, cron: cron.New()}
}

// Start registers the schedule (standard 5-field cron spec) and launches the
// background runner.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		refreshed, err := s.service.RefreshIfStale(context.Background())
		if err != nil {
			log.Errorf("scheduled refresh failed: %v", err)
			return
		}
		if refreshed {
			log.Info("scheduled refresh completed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	log.Infof("refresh scheduler started with schedule %q", schedule)
	return nil
}

// Stop halts the runner; the context is done once in-flight jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
