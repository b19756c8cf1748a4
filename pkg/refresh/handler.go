package refresh

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/smartlinemanapp/bangla-tithi-main/pkg/cache"
)

type StatusDTO struct {
	Stale        bool   `json:"stale"`
	LastSyncedAt string `json:"lastSyncedAt,omitempty"`
}

type SyncResultDTO struct {
	Fetched int `json:"fetched"`
}

type Handler struct {
	service Service
	store   cache.Store
}

func NewHandler(service Service, store cache.Store) *Handler {
	return &Handler{service: service, store: store}
}

// ForceSync triggers a refresh regardless of staleness.
func (h *Handler) ForceSync(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Forcing feed sync")

	fetched, err := h.service.Refresh(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if err := json.NewEncoder(w).Encode(SyncResultDTO{Fetched: fetched}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Status reports whether the snapshot is stale and when it last synced.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := StatusDTO{Stale: h.store.IsStale(r.Context())}
	if syncedAt, ok := h.store.LastSyncedAt(r.Context()); ok {
		status.LastSyncedAt = syncedAt.UTC().Format(time.RFC3339)
	}

	if err := json.NewEncoder(w).Encode(status); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
