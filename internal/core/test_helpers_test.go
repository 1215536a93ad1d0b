package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"daychat/internal/log"
	"daychat/internal/store"
	"daychat/internal/store/sqlite"
)

func newTestHub(t *testing.T, st store.MessageStore) *Hub {
	t.Helper()

	hub := NewHub(st, log.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatalf("event channel closed while waiting for kind %v", kind)
			}
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("expected event kind %v not received", kind)
		}
	}
}

func mustNoEvent(t *testing.T, ch <-chan *Event) {
	t.Helper()

	select {
	case ev, ok := <-ch:
		if ok {
			t.Fatalf("expected no event, got %+v", ev)
		}
	case <-time.After(150 * time.Millisecond):
	}
}

// failingStore rejects every append. Reads and purges are unused here.
type failingStore struct{}

func (failingStore) Append(context.Context, string, string, string) (*store.Message, error) {
	return nil, errors.New("disk on fire")
}

func (failingStore) ListByRoom(context.Context, string) ([]*store.Message, error) {
	return nil, errors.New("disk on fire")
}

func (failingStore) PurgeAll(context.Context) (int64, error) {
	return 0, errors.New("disk on fire")
}

func (failingStore) Close() error { return nil }
