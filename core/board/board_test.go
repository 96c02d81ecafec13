package board

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akr1040317/hiveUniDash/core/feature"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

// fakeUpdater fails on demand and can block mid-write to stage races.
type fakeUpdater struct {
	mu      sync.Mutex
	fail    error
	block   chan struct{}
	applied []string
}

func (u *fakeUpdater) UpdateItemStatus(_ context.Context, _, id, status string) error {
	if u.block != nil {
		<-u.block
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.fail != nil {
		return u.fail
	}
	u.applied = append(u.applied, id+":"+status)
	return nil
}

func (u *fakeUpdater) UpdateItemField(_ context.Context, _, id, field string, _ interface{}) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.fail != nil {
		return u.fail
	}
	u.applied = append(u.applied, id+":"+field)
	return nil
}

func newTestBoard(updater Updater) *Board {
	b := New("us", feature.Statuses, updater, nopLogger{})
	b.Load([]Item{
		{ID: "f1", Title: "Export word lists", Status: feature.StatusBacklog},
		{ID: "f2", Title: "Dark mode", Status: feature.StatusPlanning},
	})
	return b
}

func TestBoard_Move(t *testing.T) {
	updater := &fakeUpdater{}
	b := newTestBoard(updater)

	require.NoError(t, b.Move(context.Background(), "f1", feature.StatusInDevelopment))

	it, ok := b.Item("f1")
	require.True(t, ok)
	assert.Equal(t, feature.StatusInDevelopment, it.Status)
	assert.Equal(t, []string{"f1:in_development"}, updater.applied)
}

func TestBoard_Move_revertsOnFailure(t *testing.T) {
	updater := &fakeUpdater{fail: errors.New("write failed")}
	b := newTestBoard(updater)

	err := b.Move(context.Background(), "f1", feature.StatusCompleted)
	require.Error(t, err)

	it, _ := b.Item("f1")
	assert.Equal(t, feature.StatusBacklog, it.Status, "failed move must snap back")
}

func TestBoard_Move_skipsRevertWhenSuperseded(t *testing.T) {
	updater := &fakeUpdater{fail: errors.New("write failed"), block: make(chan struct{})}
	b := newTestBoard(updater)

	done := make(chan error, 1)
	go func() {
		done <- b.Move(context.Background(), "f1", feature.StatusPlanning)
	}()

	// second move lands while the first write is still in flight
	b.mu.Lock()
	b.items["f1"].item.Status = feature.StatusTesting
	b.items["f1"].version++
	b.mu.Unlock()

	close(updater.block)
	require.Error(t, <-done)

	it, _ := b.Item("f1")
	assert.Equal(t, feature.StatusTesting, it.Status, "stale failure must not clobber the newer move")
}

func TestBoard_Move_validation(t *testing.T) {
	b := newTestBoard(&fakeUpdater{})
	assert.Error(t, b.Move(context.Background(), "f1", "shipped"))
	assert.Error(t, b.Move(context.Background(), "nope", feature.StatusTesting))
}

func TestBoard_Move_sameColumnIsNoop(t *testing.T) {
	updater := &fakeUpdater{}
	b := newTestBoard(updater)

	require.NoError(t, b.Move(context.Background(), "f1", feature.StatusBacklog))
	assert.Empty(t, updater.applied)
}

func TestBoard_EditField_revertsOnFailure(t *testing.T) {
	updater := &fakeUpdater{}
	b := newTestBoard(updater)

	require.NoError(t, b.EditField(context.Background(), "f1", "assignee", "arastogi@hivespelling.com"))
	it, _ := b.Item("f1")
	assert.Equal(t, "arastogi@hivespelling.com", it.Fields["assignee"])

	updater.fail = errors.New("write failed")
	require.Error(t, b.EditField(context.Background(), "f1", "assignee", "someone@else.com"))
	it, _ = b.Item("f1")
	assert.Equal(t, "arastogi@hivespelling.com", it.Fields["assignee"])
}

func TestBoard_Load_normalizesUnknownStatus(t *testing.T) {
	b := New("us", feature.Statuses, &fakeUpdater{}, nopLogger{})
	b.Load([]Item{{ID: "f1", Status: "weird"}})

	cols := b.Columns()
	require.Len(t, cols[feature.StatusBacklog], 1)
	assert.Equal(t, "f1", cols[feature.StatusBacklog][0].ID)
}

func TestBoard_Columns(t *testing.T) {
	b := newTestBoard(&fakeUpdater{})
	cols := b.Columns()

	assert.Len(t, cols, len(feature.Statuses))
	assert.Len(t, cols[feature.StatusBacklog], 1)
	assert.Len(t, cols[feature.StatusPlanning], 1)
	assert.Empty(t, cols[feature.StatusCompleted])
}

func TestBoard_concurrentMoves(t *testing.T) {
	updater := &fakeUpdater{}
	b := newTestBoard(updater)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		status := feature.Statuses[i%len(feature.Statuses)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = b.Move(context.Background(), "f2", status)
		}()
	}
	wg.Wait()

	it, ok := b.Item("f2")
	require.True(t, ok)
	assert.Contains(t, feature.Statuses, it.Status)
}
