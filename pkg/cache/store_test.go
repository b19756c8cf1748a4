package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlinemanapp/bangla-tithi-main/internal/utils"
	"github.com/smartlinemanapp/bangla-tithi-main/pkg/tithi"
)

func newTestStore(repo Repository, clock utils.Clock) *StoreImpl {
	return &StoreImpl{
		repo:       repo,
		clock:      clock,
		capacity:   DefaultCapacity,
		staleAfter: DefaultStaleAfter,
	}
}

func namedEvent(date, name, description string) tithi.Event {
	return tithi.Event{
		Date:    date,
		Details: &tithi.EventDetails{Name: name, Description: description},
	}
}

func TestLoad_EmptyStore(t *testing.T) {
	store := newTestStore(NewStubRepository(), &utils.MockClock{FixedNow: time.Now()})

	events, err := store.Load(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, events)
}

func TestLoad_CorruptPayloadIsTreatedAsEmpty(t *testing.T) {
	repo := NewStubRepository()
	repo.Entries[snapshotKey] = "{not json"
	store := newTestStore(repo, &utils.MockClock{FixedNow: time.Now()})

	events, err := store.Load(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, events)
}

func TestMerge_SortsByDateThenStartTime(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(NewStubRepository(), &utils.MockClock{FixedNow: time.Now()})

	batch := []tithi.Event{
		{Date: "2026-03-03", Details: &tithi.EventDetails{Name: "b", StartDateTime: "2026-03-03T18:00:00+06:00"}},
		{Date: "2026-01-01"},
		{Date: "2026-03-03", Details: &tithi.EventDetails{Name: "a", StartDateTime: "2026-03-03T04:00:00+06:00"}},
	}
	require.NoError(t, store.Merge(ctx, batch))

	events, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "2026-01-01", events[0].Date)
	assert.Equal(t, "a", events[1].Details.Name)
	assert.Equal(t, "b", events[2].Details.Name)
}

func TestMerge_SameDateOrderIsDeterministic(t *testing.T) {
	ctx := context.Background()
	// Same date, no start timestamps: only the identity can order these.
	batch := []tithi.Event{
		namedEvent("2026-01-03", "d", ""),
		namedEvent("2026-01-03", "b", ""),
		namedEvent("2026-01-03", "a", ""),
		namedEvent("2026-01-03", "c", ""),
	}

	for i := 0; i < 50; i++ {
		store := newTestStore(NewStubRepository(), &utils.MockClock{FixedNow: time.Now()})
		require.NoError(t, store.Merge(ctx, batch))

		events, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, events, 4)
		names := make([]string, 0, len(events))
		for _, event := range events {
			names = append(names, event.Details.Name)
		}
		assert.Equal(t, []string{"a", "b", "c", "d"}, names)
	}
}

func TestLoad_ReturnsIndependentCopies(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(NewStubRepository(), &utils.MockClock{FixedNow: time.Now()})
	require.NoError(t, store.Merge(ctx, []tithi.Event{namedEvent("2026-01-03", "Purnima", "full moon")}))

	events, err := store.Load(ctx)
	require.NoError(t, err)
	events[0].Details.Description = "scribbled over"

	reloaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "full moon", reloaded[0].Details.Description)
}

func TestMerge_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(NewStubRepository(), &utils.MockClock{FixedNow: time.Now()})

	batch := []tithi.Event{
		namedEvent("2026-01-03", "Purnima", "full moon"),
		namedEvent("2026-01-18", "Amavasya", "new moon"),
	}
	require.NoError(t, store.Merge(ctx, batch))
	once, err := store.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Merge(ctx, batch))
	twice, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestMerge_NewBatchWinsIdentityTies(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(NewStubRepository(), &utils.MockClock{FixedNow: time.Now()})

	require.NoError(t, store.Merge(ctx, []tithi.Event{namedEvent("2026-01-03", "Purnima", "stale text")}))
	require.NoError(t, store.Merge(ctx, []tithi.Event{namedEvent("2026-01-03", "Purnima", "fresh text")}))

	events, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "fresh text", events[0].Details.Description)
}

func TestMerge_SameDateDifferentNamesAreDistinct(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(NewStubRepository(), &utils.MockClock{FixedNow: time.Now()})

	require.NoError(t, store.Merge(ctx, []tithi.Event{
		namedEvent("2026-01-03", "Purnima", ""),
		namedEvent("2026-01-03", "Satyanarayan Puja", ""),
	}))

	events, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestMerge_EvictsOldestBeyondCapacity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(NewStubRepository(), &utils.MockClock{FixedNow: time.Now()})

	batch := make([]tithi.Event, 0, 600)
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 600; i++ {
		batch = append(batch, tithi.Event{Date: start.AddDate(0, 0, i).Format(tithi.DateFormat)})
	}
	require.NoError(t, store.Merge(ctx, batch))

	events, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, events, DefaultCapacity)
	// The 100 oldest dates are gone; the newest survive in order.
	assert.Equal(t, batch[100].Date, events[0].Date)
	assert.Equal(t, batch[599].Date, events[len(events)-1].Date)
}

func TestMerge_DropsEntriesWithoutDate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(NewStubRepository(), &utils.MockClock{FixedNow: time.Now()})

	require.NoError(t, store.Merge(ctx, []tithi.Event{{Date: ""}, {Date: "2026-01-01"}}))

	events, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestMerge_PersistenceFailureKeepsInMemoryResult(t *testing.T) {
	ctx := context.Background()
	repo := NewStubRepository()
	repo.FailWrites = true
	store := newTestStore(repo, &utils.MockClock{FixedNow: time.Now()})

	err := store.Merge(ctx, []tithi.Event{namedEvent("2026-01-03", "Purnima", "")})
	assert.NoError(t, err)

	events, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	// Nothing reached the repository, so the store still counts as unsynced.
	assert.True(t, store.IsStale(ctx))
}

func TestIsStale(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	clock := &utils.MockClock{FixedNow: now}
	store := newTestStore(NewStubRepository(), clock)

	t.Run("true before any merge", func(t *testing.T) {
		assert.True(t, store.IsStale(ctx))
	})

	t.Run("false right after a merge", func(t *testing.T) {
		require.NoError(t, store.Merge(ctx, []tithi.Event{{Date: "2026-02-03"}}))
		assert.False(t, store.IsStale(ctx))
	})

	t.Run("still fresh just inside the threshold", func(t *testing.T) {
		clock.SetNow(now.Add(DefaultStaleAfter))
		assert.False(t, store.IsStale(ctx))
	})

	t.Run("true once the threshold is exceeded", func(t *testing.T) {
		clock.SetNow(now.Add(DefaultStaleAfter + time.Minute))
		assert.True(t, store.IsStale(ctx))
	})
}

func TestLastSyncedAt(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(NewStubRepository(), &utils.MockClock{FixedNow: now})

	_, ok := store.LastSyncedAt(ctx)
	assert.False(t, ok)

	require.NoError(t, store.Merge(ctx, []tithi.Event{{Date: "2026-02-03"}}))

	syncedAt, ok := store.LastSyncedAt(ctx)
	assert.True(t, ok)
	assert.Equal(t, now.UnixMilli(), syncedAt.UnixMilli())
}

func TestPurgeLegacy(t *testing.T) {
	ctx := context.Background()
	repo := NewStubRepository()
	repo.Entries[cacheKeyPrefix+"v3"] = "[]"
	repo.Entries[cacheKeyPrefix+"v4"] = "[]"
	repo.Entries[snapshotKey] = `[{"date":"2026-01-03"}]`
	repo.Entries[lastSyncKey] = "1738000000000"
	store := newTestStore(repo, &utils.MockClock{FixedNow: time.Now()})

	require.NoError(t, store.PurgeLegacy(ctx))

	_, v3 := repo.Entries[cacheKeyPrefix+"v3"]
	_, v4 := repo.Entries[cacheKeyPrefix+"v4"]
	_, current := repo.Entries[snapshotKey]
	assert.False(t, v3)
	assert.False(t, v4)
	assert.True(t, current)

	// Wiping legacy data also resets the sync timestamp, so the next
	// staleness check forces a refresh.
	assert.True(t, store.IsStale(ctx))

	events, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestPurgeLegacy_NoLegacyKeysKeepsSyncTimestamp(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	repo := NewStubRepository()
	store := newTestStore(repo, &utils.MockClock{FixedNow: now})
	require.NoError(t, store.Merge(ctx, []tithi.Event{{Date: "2026-02-03"}}))

	require.NoError(t, store.PurgeLegacy(ctx))

	assert.False(t, store.IsStale(ctx))
}
