package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin associates the connection with a room under a display name.
	CommandJoin CommandKind = iota
	// CommandChat sends a chat message to the connection's current room.
	CommandChat
)

// Command represents an action requested by a client.
type Command struct {
	Kind     CommandKind
	Username string
	Room     string
	Text     string
}
