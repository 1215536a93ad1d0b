package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin = "join"
	InboundTypeMsg  = "msg"

	OutboundTypeEvent = "event"

	EventNameMessage    = "message"
	EventNameUserJoined = "user_joined"
)

// JoinData requests to join a room under a display name.
type JoinData struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// MsgData is a chat message from the client. Text is raw and untrimmed.
type MsgData struct {
	Text string `json:"text"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// EventMessage is a persisted chat message fanned out to a room.
// Every member receives it, the original sender included.
type EventMessage struct {
	ID   int64  `json:"id"`
	Room string `json:"room"`
	User string `json:"user"`
	Text string `json:"text"`
	TS   int64  `json:"ts"`
}

// EventUserJoined notifies a room that a user joined it.
type EventUserJoined struct {
	Room string `json:"room"`
	User string `json:"user"`
}
