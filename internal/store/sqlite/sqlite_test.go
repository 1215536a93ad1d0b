package sqlite

import (
	"context"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndListByRoom(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Append(ctx, "lobby", "alice", "hi")
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected store-assigned id")
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("expected store-assigned timestamp")
	}

	second, err := s.Append(ctx, "lobby", "bob", "hello")
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := s.Append(ctx, "other", "carol", "hey"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	messages, err := s.ListByRoom(ctx, "lobby")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages in lobby, got %d", len(messages))
	}
	if messages[0].ID != first.ID || messages[1].ID != second.ID {
		t.Fatalf("messages out of order: %d then %d", messages[0].ID, messages[1].ID)
	}
	if messages[0].User != "alice" || messages[0].Text != "hi" {
		t.Fatalf("unexpected first message: %+v", messages[0])
	}
}

func TestListByRoomEmpty(t *testing.T) {
	s := newTestStore(t)

	messages, err := s.ListByRoom(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(messages))
	}
}

func TestPurgeAllThenAppend(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rooms := []string{"lobby", "lobby", "other"}
	for i, room := range rooms {
		if _, err := s.Append(ctx, room, "alice", "msg"); err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	count, err := s.PurgeAll(ctx)
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 purged rows, got %d", count)
	}

	for _, room := range []string{"lobby", "other"} {
		messages, err := s.ListByRoom(ctx, room)
		if err != nil {
			t.Fatalf("list %s failed: %v", room, err)
		}
		if len(messages) != 0 {
			t.Fatalf("expected %s empty after purge, got %d messages", room, len(messages))
		}
	}

	// Appends keep working after a purge.
	msg, err := s.Append(ctx, "lobby", "bob", "fresh start")
	if err != nil {
		t.Fatalf("append after purge failed: %v", err)
	}
	messages, err := s.ListByRoom(ctx, "lobby")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(messages) != 1 || messages[0].ID != msg.ID {
		t.Fatalf("unexpected messages after purge: %+v", messages)
	}
}
