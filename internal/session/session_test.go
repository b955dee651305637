package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/model"
)

// fakeSettings is an in-memory SettingRepository.
type fakeSettings struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: make(map[string]string)}
}

func (f *fakeSettings) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.values[key]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return value, nil
}

func (f *fakeSettings) Put(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func TestSnapshotBeforeHydrationIsLoading(t *testing.T) {
	store := NewStore(newFakeSettings())

	snap := store.Snapshot()
	assert.True(t, snap.IsLoading())
	assert.Nil(t, snap.CurrentUser)
	assert.False(t, store.Ready())
}

func TestHydrateWithNoPersistedState(t *testing.T) {
	store := NewStore(newFakeSettings())
	store.Hydrate()

	snap := store.Snapshot()
	assert.False(t, snap.IsLoading())
	assert.Nil(t, snap.CurrentUser)
	assert.Equal(t, DefaultModel, snap.GeminiModel)
}

func TestHydrateRestoresPersistedState(t *testing.T) {
	settings := newFakeSettings()
	settings.values[StorageKey] = `{"currentUser":{"id":3,"name":"Minh"},"geminiToken":"tok","geminiModel":"gemini-2.5-pro","aiPrompt":"be strict"}`

	store := NewStore(settings)
	store.Hydrate()

	snap := store.Snapshot()
	require.NotNil(t, snap.CurrentUser)
	assert.Equal(t, uint(3), snap.CurrentUser.ID)
	assert.Equal(t, "tok", snap.GeminiToken)
	assert.Equal(t, "gemini-2.5-pro", snap.GeminiModel)
	assert.Equal(t, "be strict", snap.AIPrompt)
}

func TestHydrateUnreadableBlobFallsBackToDefaults(t *testing.T) {
	settings := newFakeSettings()
	settings.values[StorageKey] = "{corrupted"

	store := NewStore(settings)
	store.Hydrate()

	snap := store.Snapshot()
	assert.False(t, snap.IsLoading())
	assert.Equal(t, DefaultModel, snap.GeminiModel)
}

func TestHydrateReadErrorStillReachesReady(t *testing.T) {
	settings := newFakeSettings()
	settings.getErr = errors.New("disk unhappy")

	store := NewStore(settings)
	store.Hydrate()

	assert.True(t, store.Ready())
}

func TestHydrateRunsOnce(t *testing.T) {
	settings := newFakeSettings()
	settings.values[StorageKey] = `{"geminiToken":"first"}`

	store := NewStore(settings)
	store.Hydrate()

	settings.mu.Lock()
	settings.values[StorageKey] = `{"geminiToken":"second"}`
	settings.mu.Unlock()

	store.Hydrate()
	assert.Equal(t, "first", store.Snapshot().GeminiToken)
}

func TestMutationsWriteThrough(t *testing.T) {
	settings := newFakeSettings()
	store := NewStore(settings)
	store.Hydrate()

	store.SetGeminiToken("tok")
	store.SetGeminiModel("gemini-2.5-pro")
	store.SetAIPrompt("focus on grammar")
	store.Flush()

	// A second store hydrated from the same blob sees the mutations.
	restored := NewStore(settings)
	restored.Hydrate()
	snap := restored.Snapshot()
	assert.Equal(t, "tok", snap.GeminiToken)
	assert.Equal(t, "gemini-2.5-pro", snap.GeminiModel)
	assert.Equal(t, "focus on grammar", snap.AIPrompt)
}

func TestLogoutClearsOnlyCurrentUser(t *testing.T) {
	store := NewStore(newFakeSettings())
	store.Hydrate()

	store.SetCurrentUser(&model.User{ID: 1, Name: "An"})
	store.SetGeminiToken("tok")
	store.Logout()
	store.Flush()

	snap := store.Snapshot()
	assert.Nil(t, snap.CurrentUser)
	assert.Equal(t, "tok", snap.GeminiToken)
}

func TestSetGeminiModelEmptyRestoresDefault(t *testing.T) {
	store := NewStore(newFakeSettings())
	store.Hydrate()

	store.SetGeminiModel("gemini-2.5-pro")
	store.SetGeminiModel("")
	store.Flush()

	assert.Equal(t, DefaultModel, store.Snapshot().GeminiModel)
}
