// Package session holds the process-wide "who is using this client and how
// should AI calls be configured" state. The in-memory state is authoritative
// for the running process; every mutation is written through to the settings
// blob store asynchronously, and the blob is read back exactly once at
// startup (hydration).
package session

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/repository"
)

// StorageKey is the blob store key the session state persists under.
const StorageKey = "app-state"

// DefaultModel is used until the user picks another one in settings.
const DefaultModel = "gemini-2.5-flash"

// Phase is the hydration lifecycle. CurrentUser may only be trusted as a
// terminal value (a real user, or explicitly nobody) in PhaseReady: before
// that, "no user" means "unknown", and no redirect decision may be based on
// it.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseHydrating
	PhaseReady
)

// State is the session content. CurrentUser caches the user's fields so the
// view layer does not need a store read on every frame; the User record in
// the entity store stays the source of truth for the account itself.
type State struct {
	CurrentUser *model.User `json:"currentUser,omitempty"`
	GeminiToken string      `json:"geminiToken,omitempty"`
	GeminiModel string      `json:"geminiModel"`
	AIPrompt    string      `json:"aiPrompt,omitempty"`
}

// Snapshot is a consistent read of state plus lifecycle phase.
type Snapshot struct {
	State
	Phase Phase
}

// IsLoading reports whether hydration is still pending.
func (s Snapshot) IsLoading() bool { return s.Phase != PhaseReady }

// Store is the session/settings singleton. It is explicitly constructed and
// injected (never ambient), so tests can build isolated instances.
type Store struct {
	settings repository.SettingRepository

	mu    sync.RWMutex
	state State
	phase Phase
	seq   uint64

	hydrateOnce sync.Once

	persistMu     sync.Mutex
	persistedSeq  uint64
	pendingWrites sync.WaitGroup
}

func NewStore(settings repository.SettingRepository) *Store {
	return &Store{
		settings: settings,
		state:    State{GeminiModel: DefaultModel},
		phase:    PhaseUninitialized,
	}
}

// Hydrate loads the persisted blob and merges it into memory. It runs its
// body exactly once; later calls are no-ops. A read failure degrades to
// defaults: the user can always re-enter settings, so hydration never
// surfaces a blocking error.
func (s *Store) Hydrate() {
	s.hydrateOnce.Do(func() {
		s.mu.Lock()
		s.phase = PhaseHydrating
		s.mu.Unlock()

		blob, err := s.settings.Get(StorageKey)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.phase = PhaseReady

		if err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				log.Warn().Err(&apperr.HydrationError{Err: err}).Msg("Falling back to default session state")
			}
			return
		}

		var persisted State
		if err := json.Unmarshal([]byte(blob), &persisted); err != nil {
			log.Warn().Err(&apperr.HydrationError{Err: err}).Msg("Persisted session state unreadable, using defaults")
			return
		}
		if persisted.GeminiModel == "" {
			persisted.GeminiModel = DefaultModel
		}
		s.state = persisted
	})
}

// Snapshot returns a consistent copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{State: s.state, Phase: s.phase}
}

// Ready reports whether hydration has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase == PhaseReady
}

func (s *Store) SetCurrentUser(user *model.User) {
	s.mutate(func(st *State) { st.CurrentUser = user })
}

// Logout clears the active user. The underlying User record and the AI
// settings are untouched.
func (s *Store) Logout() {
	s.mutate(func(st *State) { st.CurrentUser = nil })
}

func (s *Store) SetGeminiToken(token string) {
	s.mutate(func(st *State) { st.GeminiToken = token })
}

func (s *Store) SetGeminiModel(modelName string) {
	if modelName == "" {
		modelName = DefaultModel
	}
	s.mutate(func(st *State) { st.GeminiModel = modelName })
}

func (s *Store) SetAIPrompt(prompt string) {
	s.mutate(func(st *State) { st.AIPrompt = prompt })
}

// mutate applies the in-memory change synchronously, then schedules the
// write-through. Callers of the setters must not assume persistence has
// completed when the setter returns.
func (s *Store) mutate(apply func(*State)) {
	s.mu.Lock()
	apply(&s.state)
	s.seq++
	seq := s.seq
	blob, err := json.Marshal(s.state)
	s.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Msg("Failed to serialize session state, skipping write-through")
		return
	}

	s.pendingWrites.Add(1)
	go func() {
		defer s.pendingWrites.Done()
		s.persistMu.Lock()
		defer s.persistMu.Unlock()
		// A later mutation already persisted a newer blob; writing this one
		// would roll the stored state backwards.
		if seq <= s.persistedSeq {
			return
		}
		if err := s.settings.Put(StorageKey, string(blob)); err != nil {
			log.Error().Err(err).Msg("Session write-through failed")
			return
		}
		s.persistedSeq = seq
	}()
}

// Flush waits for scheduled write-throughs to finish. Intended for tests and
// shutdown.
func (s *Store) Flush() {
	s.pendingWrites.Wait()
}
