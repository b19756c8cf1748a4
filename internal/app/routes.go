package app

import (
	"github.com/gorilla/mux"

	"github.com/smartlinemanapp/bangla-tithi-main/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Almanac reads
	r.HandleFunc("/api/tithi", deps.AlmanacHandler.GetMonth).Methods("GET")
	r.HandleFunc("/api/tithi/today", deps.AlmanacHandler.GetToday).Methods("GET")
	r.HandleFunc("/api/tithi/upcoming", deps.AlmanacHandler.GetUpcoming).Methods("GET")

	// Bangla calendar conversion
	r.HandleFunc("/api/bangla-date", deps.AlmanacHandler.GetBanglaDate).Methods("GET")

	// Feed sync
	r.HandleFunc("/api/sync", deps.RefreshHandler.ForceSync).Methods("POST")
	r.HandleFunc("/api/sync/status", deps.RefreshHandler.Status).Methods("GET")
}
