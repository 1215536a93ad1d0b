package store

import (
	"context"
	"time"
)

// Message is a persisted chat message. Messages are immutable once
// written; they are removed only by the daily purge.
type Message struct {
	ID        int64
	Room      string
	User      string
	Text      string
	CreatedAt time.Time
}

// MessageStore is the durable message log. The relay appends and the
// history endpoint reads; validation of room/user/text happens before
// these calls, the store trusts its inputs.
type MessageStore interface {
	// Append persists a message with a store-assigned id and creation
	// timestamp and returns the full persisted record.
	Append(ctx context.Context, room, user, text string) (*Message, error)

	// ListByRoom returns all messages for a room, oldest first.
	ListByRoom(ctx context.Context, room string) ([]*Message, error)

	// PurgeAll deletes every message across all rooms and reports how
	// many rows were removed. Irreversible.
	PurgeAll(ctx context.Context) (int64, error)

	// Close closes the underlying database connection.
	Close() error
}
