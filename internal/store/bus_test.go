package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev := <-sub.C:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestCollectionSubscriberReceivesEveryKey(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(CollectionAttempts, "")
	defer sub.Close()

	bus.Publish(CollectionAttempts, UserKey(1))
	bus.Publish(CollectionAttempts, UserKey(2))
	bus.Publish(CollectionAttempts)

	assert.Equal(t, Event{Collection: CollectionAttempts, Key: "user:1"}, receive(t, sub))
	assert.Equal(t, Event{Collection: CollectionAttempts, Key: "user:2"}, receive(t, sub))
	assert.Equal(t, Event{Collection: CollectionAttempts}, receive(t, sub))
}

func TestKeyedSubscriberOnlyHearsItsScope(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(CollectionVocabulary, UserKey(7))
	defer sub.Close()

	bus.Publish(CollectionVocabulary, UserKey(8))
	bus.Publish(CollectionVocabulary, UserKey(7))

	ev := receive(t, sub)
	assert.Equal(t, "user:7", ev.Key)

	select {
	case extra := <-sub.C:
		t.Fatalf("unexpected extra event %+v", extra)
	default:
	}
}

func TestSubscriberDoesNotHearOtherCollections(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(CollectionQuestions, "")
	defer sub.Close()

	bus.Publish(CollectionUsers)

	select {
	case ev := <-sub.C:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCloseUnsubscribesAndIsIdempotent(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(CollectionUsers, "")

	sub.Close()
	sub.Close()

	// Publishing after close must not panic or deliver.
	bus.Publish(CollectionUsers)

	_, open := <-sub.C
	assert.False(t, open)
}

func TestSlowConsumerNeverBlocksPublish(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(CollectionAttempts, "")
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		// Far more events than the channel buffer holds; extras coalesce.
		for i := 0; i < 100; i++ {
			bus.Publish(CollectionAttempts)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow consumer")
	}

	// At least one wake-up must have been delivered.
	require.NotEmpty(t, sub.C)
}

func TestUserKey(t *testing.T) {
	assert.Equal(t, "user:42", UserKey(42))
}
