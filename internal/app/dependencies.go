package app

import (
	"database/sql"

	log "github.com/sirupsen/logrus"

	"github.com/smartlinemanapp/bangla-tithi-main/internal/config"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/almanac"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/cache"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/feed"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/refresh"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	CacheRepository cache.Repository
	CacheStore      cache.Store

	Fetcher feed.Fetcher

	RefreshService   refresh.Service
	RefreshScheduler *refresh.Scheduler
	RefreshHandler   *refresh.Handler

	AlmanacService *almanac.Service
	AlmanacHandler *almanac.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.CacheRepository = cache.NewRepository(db)
	deps.CacheStore = cache.NewStore(deps.CacheRepository)

	deps.Fetcher = buildFetcher(cfg.Feed)

	deps.RefreshService = refresh.NewService(deps.CacheStore, deps.Fetcher).
		WithMonthsAhead(cfg.Sync.MonthsAhead)
	deps.RefreshScheduler = refresh.NewScheduler(deps.RefreshService)
	deps.RefreshHandler = refresh.NewHandler(deps.RefreshService, deps.CacheStore)

	deps.AlmanacService = almanac.NewService(deps.CacheStore)
	deps.AlmanacHandler = almanac.NewHandler(deps.AlmanacService)

	return deps
}

func buildFetcher(cfg config.Feed) feed.Fetcher {
	switch cfg.Format {
	case "ics":
		return feed.NewICSFetcher(cfg.URL)
	case "json":
		return feed.NewJSONFetcher(cfg.URL)
	default:
		log.Warnf("unknown feed format %q, falling back to json", cfg.Format)
		return feed.NewJSONFetcher(cfg.URL)
	}
}
