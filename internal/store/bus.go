// Package store provides the live-query notification bus. Repositories
// publish to it strictly after a successful commit, so a subscriber that
// re-resolves its query on notification always observes fully committed state.
package store

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Collection names used as bus topics.
const (
	CollectionUsers      = "users"
	CollectionAttempts   = "attempts"
	CollectionQuestions  = "questions"
	CollectionVocabulary = "vocabulary"
)

// Event identifies what changed. Key is an optional query scope such as
// "user:5"; collection-level subscribers receive every event for the
// collection regardless of key.
type Event struct {
	Collection string
	Key        string
}

// Subscription is a live-query handle. C delivers change events; Close must
// be called on teardown so the bus does not leak channels. A slow consumer
// never blocks a publisher: the channel is buffered and coalesces by
// dropping, which is safe because subscribers re-resolve their whole query on
// any event.
type Subscription struct {
	C chan Event

	id         string
	collection string
	key        string
	bus        *Bus
	closeOnce  sync.Once
}

// Close unsubscribes and releases the channel. Safe to call more than once.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.bus.remove(s)
		close(s.C)
	})
}

// Bus fans out post-commit change notifications to live-query subscribers.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]map[string]*Subscription // collection -> id -> sub
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[string]*Subscription)}
}

// Subscribe registers a live query against a collection. key narrows the
// scope: a subscriber with key "user:5" only hears events published with that
// key, while an empty key hears all events for the collection.
func (b *Bus) Subscribe(collection, key string) *Subscription {
	sub := &Subscription{
		C:          make(chan Event, 16),
		id:         uuid.NewString(),
		collection: collection,
		key:        key,
		bus:        b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[collection] == nil {
		b.subs[collection] = make(map[string]*Subscription)
	}
	b.subs[collection][sub.id] = sub
	return sub
}

// Publish notifies subscribers of a committed write. Call only after the
// storage transaction has completed; publishing first would let a live query
// observe a partially-committed write.
func (b *Bus) Publish(collection string, keys ...string) {
	ev := Event{Collection: collection}
	if len(keys) > 0 {
		ev.Key = keys[0]
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs[collection] {
		if sub.key != "" && sub.key != ev.Key {
			continue
		}
		select {
		case sub.C <- ev:
		default:
			// Buffer full: the subscriber already has a pending wake-up and
			// will re-resolve its query anyway.
			log.Debug().Str("collection", collection).Str("key", ev.Key).Msg("live-query event coalesced")
		}
	}
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m := b.subs[sub.collection]; m != nil {
		delete(m, sub.id)
		if len(m) == 0 {
			delete(b.subs, sub.collection)
		}
	}
}

// UserKey builds the per-user query scope key used by the attempt and
// vocabulary collections.
func UserKey(userID uint) string {
	return "user:" + strconv.FormatUint(uint64(userID), 10)
}
