package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsongrid/backend/internal/models"
)

func newTestStore(ttl time.Duration) *SessionStore {
	return NewSessionStore(NewParserService(), models.ModeJSON, ttl, time.Minute)
}

func TestSessionStoreLifecycle(t *testing.T) {
	store := newTestStore(time.Minute)

	session := store.Create(`[{"a":1}]`, "")
	require.NotEmpty(t, session.ID)
	assert.Equal(t, 1, store.Count())

	got, err := store.Get(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)

	state := got.State()
	assert.Equal(t, models.ModeJSON, state.Mode)
	assert.False(t, state.Result.Failed())
	assert.Len(t, state.VisibleRows, 1)

	require.NoError(t, store.Delete(session.ID))
	assert.Equal(t, 0, store.Count())

	_, err = store.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(session.ID), ErrSessionNotFound)
}

func TestSessionStoreExpiresIdleSessions(t *testing.T) {
	store := newTestStore(20 * time.Millisecond)
	session := store.Create("", models.ModeLog)

	time.Sleep(60 * time.Millisecond)

	_, err := store.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionInputAndModeChanges(t *testing.T) {
	store := newTestStore(time.Minute)
	session := store.Create("", "")

	initial := session.Result()
	require.True(t, initial.Failed())
	assert.Equal(t, models.ErrorEmptyInput, initial.Error.Kind)

	ex, ok := FindExample("IIS log (W3SVC)")
	require.True(t, ok)

	result := session.SetInputText(ex.Value)
	require.True(t, result.Failed())
	assert.Equal(t, models.ErrorModeMismatch, result.Error.Kind)

	result = session.SetMode(models.ModeLog)
	require.False(t, result.Failed())
	assert.Len(t, result.Rows, 3)

	state := session.State()
	assert.Equal(t, models.ModeLog, state.Mode)
	assert.Equal(t, ex.Value, state.Text)
	assert.False(t, state.Grouped)
}

func TestSessionGroupState(t *testing.T) {
	store := newTestStore(time.Minute)
	session := store.Create(groupedInput, models.ModeJSON)

	state := session.State()
	assert.True(t, state.Grouped)
	assert.Len(t, state.VisibleRows, 5)

	assert.True(t, session.ToggleGroup(1))
	state = session.State()
	assert.Equal(t, []int{1}, state.Collapsed)
	assert.Equal(t, []int{0, 3, 4}, rowIDs(state.VisibleRows))
	assert.Len(t, state.Result.Rows, 5)

	session.CollapseGroup(2)
	assert.Equal(t, []int{0, 3}, rowIDs(session.State().VisibleRows))

	session.ExpandGroup(1)
	assert.False(t, session.ToggleGroup(2))
	assert.Empty(t, session.State().Collapsed)
	assert.Len(t, session.State().VisibleRows, 5)
}

func TestSessionConcurrentUpdates(t *testing.T) {
	store := newTestStore(time.Minute)
	session := store.Create(groupedInput, models.ModeJSON)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				session.SetInputText(groupedInput)
			} else {
				session.ToggleGroup(1)
			}
			_ = session.State()
		}(i)
	}
	wg.Wait()

	state := session.State()
	assert.False(t, state.Result.Failed())
	assert.Len(t, state.Result.Rows, 5)
}
