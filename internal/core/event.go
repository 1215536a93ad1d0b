package core

// EventKind is a notification the hub emits to clients.
type EventKind int

const (
	// EventRoomMessage carries a persisted chat message to room members.
	EventRoomMessage EventKind = iota
	// EventUserJoined notifies a room that a user joined it.
	EventUserJoined
)

// Event is sent to clients to describe what happened in the system.
// Errors are never part of it: validation and persistence failures stay
// on the server side, logged for operators only.
type Event struct {
	Kind    EventKind
	Room    string
	User    string
	Message Message
}
