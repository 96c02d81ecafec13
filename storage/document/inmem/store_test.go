package inmem

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/bug"
)

func TestStore_concurrentReads(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	bugs := NewBugRepository(store)
	features := NewFeatureRepository(store)
	events := NewEventRepository(store)
	quizzes := NewQuizRepository(store)

	// Hammer read paths against regions that were never written so the
	// lazy region setup cannot sneak in behind the read lock.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(4)
		go func() {
			defer wg.Done()
			_, err := bugs.FilterBugs(ctx, "us", core.Filter{})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := features.FilterFeatures(ctx, "dubai", core.Filter{})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := events.FilterEvents(ctx, "us", core.Filter{})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := quizzes.FilterQuizzes(ctx, "dubai", core.Filter{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Reads alone must not materialize region buckets.
	store.mu.RLock()
	assert.Empty(t, store.regions)
	store.mu.RUnlock()
}

func TestStore_readsSeePriorWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewBugRepository(store)

	created, err := repo.CreateBug(ctx, "us", bug.Bug{Title: "Crash on launch", Region: "us"})
	require.NoError(t, err)

	got, err := repo.GetBugByID(ctx, "us", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crash on launch", got.Title)

	_, err = repo.GetBugByID(ctx, "dubai", created.ID)
	assert.Equal(t, bug.ErrNotFound, err)
}
