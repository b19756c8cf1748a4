package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/smartlinemanapp/bangla-tithi-main/internal/config"
	"github.com/smartlinemanapp/bangla-tithi-main/internal/database"
	"github.com/smartlinemanapp/bangla-tithi-main/internal/rest"
)

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// DB + migrations
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	// db will be closed when server shuts down; defer not possible here, leave to process exit.
	if err := database.Migrate(cfg.Database); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(db, cfg)

	// Drop snapshots written under older schema versions before serving.
	if err := deps.CacheStore.PurgeLegacy(context.Background()); err != nil {
		return nil, err
	}

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	// Frontend
	if cfg.Frontend.Enabled {
		frontend := rest.NewFrontendHandler("frontend", "index.html")
		r.PathPrefix("/").Handler(frontend)
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":8181",
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv}, nil
}

// Run starts the background refresh and the HTTP server, and blocks.
func (a *Application) Run() error {
	if err := a.deps.RefreshScheduler.Start(a.cfg.Sync.Schedule); err != nil {
		return err
	}

	// Catch up immediately if the snapshot is already stale; reads stay
	// available on the cached snapshot while this runs.
	go func() {
		if _, err := a.deps.RefreshService.RefreshIfStale(context.Background()); err != nil {
			log.Errorf("startup refresh failed: %v", err)
		}
	}()

	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}
