package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/smartlinemanapp/bangla-tithi-main/internal/utils"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/tithi"
)

const (
	// cacheKeyPrefix groups every versioned snapshot key; the sweep in
	// PurgeLegacy removes any key under it that is not snapshotKey.
	cacheKeyPrefix = "tithi_cache_"
	schemaVersion  = "v5"
	snapshotKey    = cacheKeyPrefix + schemaVersion
	lastSyncKey    = "tithi_last_sync"

	// DefaultCapacity bounds the snapshot; the oldest entries by date are
	// evicted beyond it.
	DefaultCapacity = 500

	// DefaultStaleAfter is how long a snapshot stays fresh after a merge.
	DefaultStaleAfter = 7 * 24 * time.Hour
)

// Store owns the durable set of locally known events. All mutation goes
// through Merge as a full read-modify-write, so a partially written snapshot
// can never hold a half-updated identity.
type Store interface {
	Load(ctx context.Context) ([]tithi.Event, error)
	Merge(ctx context.Context, newEvents []tithi.Event) error
	IsStale(ctx context.Context) bool
	LastSyncedAt(ctx context.Context) (time.Time, bool)
	PurgeLegacy(ctx context.Context) error
}

type StoreImpl struct {
	repo       Repository
	clock      utils.Clock
	capacity   int
	staleAfter time.Duration

	mu     sync.Mutex
	events []tithi.Event // in-memory snapshot, survives persistence failures
	loaded bool
}

func NewStore(repo Repository) *StoreImpl {
	return &StoreImpl{
		repo:       repo,
		clock:      &utils.SystemClock{},
		capacity:   DefaultCapacity,
		staleAfter: DefaultStaleAfter,
	}
}

// Load returns an independent copy of the current snapshot; mutating the
// result never writes through to cached state. A missing or corrupt persisted
// payload is treated as an empty collection; a warning is the only side
// effect.
func (s *StoreImpl) Load(ctx context.Context) ([]tithi.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	snapshot := make([]tithi.Event, len(s.events))
	for i, event := range s.events {
		snapshot[i] = cloneEvent(event)
	}
	return snapshot, nil
}

func cloneEvent(e tithi.Event) tithi.Event {
	if e.Details != nil {
		details := *e.Details
		e.Details = &details
	}
	if e.BanglaDate != nil {
		info := *e.BanglaDate
		e.BanglaDate = &info
	}
	if e.Sun != nil {
		sun := *e.Sun
		e.Sun = &sun
	}
	return e
}

// ensureLoaded reads the persisted snapshot once. Callers must hold s.mu.
func (s *StoreImpl) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	payload, found, err := s.repo.Get(ctx, snapshotKey)
	if err != nil {
		return fmt.Errorf("failed to read cache snapshot: %w", err)
	}
	if found {
		var events []tithi.Event
		if err := json.Unmarshal([]byte(payload), &events); err != nil {
			log.Warnf("corrupt cache snapshot under %s, starting empty: %v", snapshotKey, err)
			events = nil
		}
		s.events = events
	}
	s.loaded = true
	return nil
}

// Merge folds newEvents into the snapshot: deduplicate by identity with the
// new batch winning ties, sort chronologically, evict the oldest entries
// beyond capacity and persist. A persistence failure is logged and does not
// fail the merge; the in-memory snapshot already holds the result.
func (s *StoreImpl) Merge(ctx context.Context, newEvents []tithi.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	merged := mergeEvents(s.events, newEvents, s.capacity)
	s.events = merged

	payload, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to encode cache snapshot: %w", err)
	}
	if err := s.repo.Set(ctx, snapshotKey, string(payload)); err != nil {
		log.Errorf("failed to persist cache snapshot, keeping in-memory state: %v", err)
		return nil
	}
	syncedAt := strconv.FormatInt(s.clock.Now().UnixMilli(), 10)
	if err := s.repo.Set(ctx, lastSyncKey, syncedAt); err != nil {
		log.Errorf("failed to persist last sync timestamp: %v", err)
	}
	return nil
}

// mergeEvents implements the merge pipeline on plain slices. Entries without
// a date are dropped; appending newEvents last makes them win identity ties.
func mergeEvents(existing, newEvents []tithi.Event, capacity int) []tithi.Event {
	byIdentity := make(map[string]tithi.Event, len(existing)+len(newEvents))
	for _, event := range existing {
		if event.Date == "" {
			continue
		}
		byIdentity[event.Identity()] = event
	}
	for _, event := range newEvents {
		if event.Date == "" {
			continue
		}
		byIdentity[event.Identity()] = event
	}

	merged := make([]tithi.Event, 0, len(byIdentity))
	for _, event := range byIdentity {
		merged = append(merged, event)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Date != merged[j].Date {
			return merged[i].Date < merged[j].Date
		}
		if merged[i].StartDateTime() != merged[j].StartDateTime() {
			return merged[i].StartDateTime() < merged[j].StartDateTime()
		}
		// Identity breaks the remaining ties so the persisted order never
		// depends on map iteration.
		return merged[i].Identity() < merged[j].Identity()
	})

	if len(merged) > capacity {
		merged = merged[len(merged)-capacity:]
	}
	return merged
}

// IsStale reports whether the snapshot needs a refresh: no merge has ever
// completed, or the last one is older than the staleness threshold. Pure
// predicate, no side effects.
func (s *StoreImpl) IsStale(ctx context.Context) bool {
	syncedAt, ok := s.LastSyncedAt(ctx)
	if !ok {
		return true
	}
	return s.clock.Now().Sub(syncedAt) > s.staleAfter
}

// LastSyncedAt returns the time of the last successful merge. The second
// return value is false when no sync has happened or the stored timestamp
// cannot be read.
func (s *StoreImpl) LastSyncedAt(ctx context.Context) (time.Time, bool) {
	value, found, err := s.repo.Get(ctx, lastSyncKey)
	if err != nil {
		log.Warnf("failed to read last sync timestamp: %v", err)
		return time.Time{}, false
	}
	if !found {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Warnf("corrupt last sync timestamp %q: %v", value, err)
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

// PurgeLegacy removes snapshots persisted under older schema versions so a
// schema change never attempts to decode an incompatible payload. Dropped,
// not migrated. The sweep also forgets the sync timestamp when any legacy
// key existed, forcing a refresh.
func (s *StoreImpl) PurgeLegacy(ctx context.Context) error {
	keys, err := s.repo.Keys(ctx, cacheKeyPrefix)
	if err != nil {
		return fmt.Errorf("failed to enumerate cache keys: %w", err)
	}
	purged := 0
	for _, key := range keys {
		if key == snapshotKey {
			continue
		}
		if err := s.repo.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to remove legacy cache key %s: %w", key, err)
		}
		log.Infof("cleaned up legacy cache key: %s", key)
		purged++
	}
	if purged > 0 {
		if err := s.repo.Remove(ctx, lastSyncKey); err != nil {
			return fmt.Errorf("failed to reset last sync timestamp: %w", err)
		}
	}
	return nil
}
