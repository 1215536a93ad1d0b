package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"daychat/internal/store"
)

type envelope struct {
	client *Client
	cmd    *Command
}

type persistJob struct {
	room string
	user string
	text string
}

// Hub is the relay core. A single goroutine (Run) owns the client set
// and the session registry, so per-connection state never needs locks.
// Persistence runs on a separate worker and results re-enter the loop,
// which means joins and disconnects can interleave with an in-flight
// append; the broadcast target set is computed at broadcast time, after
// the message is durably stored.
type Hub struct {
	store store.MessageStore // nil when running without persistence
	log   *zerolog.Logger

	registry *Registry
	clients  map[string]*Client

	register   chan *Client
	unregister chan *Client
	commands   chan envelope
	persistQ   chan persistJob
	persisted  chan *store.Message

	done chan struct{}
}

// NewHub constructs a hub. st may be nil: chat messages are then dropped
// with a logged persistence error while joins and fan-out wiring keep
// working.
func NewHub(st store.MessageStore, logger *zerolog.Logger) *Hub {
	return &Hub{
		store:      st,
		log:        logger,
		registry:   NewRegistry(),
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan envelope),
		persistQ:   make(chan persistJob, 256),
		persisted:  make(chan *store.Message, 256),
		done:       make(chan struct{}),
	}
}

// RegisterClient adds a connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// UnregisterClient removes a connection and its session. The client's
// Events channel is closed; no further events are delivered.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Dispatch hands a client command to the hub loop.
func (h *Hub) Dispatch(c *Client, cmd *Command) {
	select {
	case h.commands <- envelope{client: c, cmd: cmd}:
	case <-h.done:
	}
}

// Run executes the hub loop until ctx is cancelled. Call in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	go h.persistLoop(ctx)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.clients[c.ID] = c
			h.log.Debug().Str("conn_id", c.ID).Int("clients", len(h.clients)).Msg("client registered")
		case c := <-h.unregister:
			h.dropClient(c)
		case env := <-h.commands:
			h.handleCommand(env.client, env.cmd)
		case msg := <-h.persisted:
			h.broadcastMessage(msg)
		}
	}
}

func (h *Hub) handleCommand(c *Client, cmd *Command) {
	if _, ok := h.clients[c.ID]; !ok {
		// Disconnected while the command was in flight.
		return
	}

	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(c, cmd)
	case CommandChat:
		h.handleChat(c, cmd)
	}
}

func (h *Hub) handleJoin(c *Client, cmd *Command) {
	if !h.registry.Join(c.ID, cmd.Username, cmd.Room) {
		h.log.Debug().Str("conn_id", c.ID).Msg("join rejected: missing username or room")
		return
	}

	h.log.Info().Str("user", cmd.Username).Str("room", cmd.Room).Msg("user joined room")
	h.broadcast(cmd.Room, &Event{
		Kind: EventUserJoined,
		Room: cmd.Room,
		User: cmd.Username,
	})
}

func (h *Hub) handleChat(c *Client, cmd *Command) {
	sess, ok := h.registry.Get(c.ID)
	if !ok {
		h.log.Debug().Str("conn_id", c.ID).Msg("chat dropped: no session")
		return
	}

	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		h.log.Debug().Str("conn_id", c.ID).Msg("chat dropped: empty text")
		return
	}

	// Snapshot of the session; a later re-join or disconnect on this
	// connection must not affect the message being persisted.
	job := persistJob{room: sess.Room, user: sess.Username, text: text}

	select {
	case h.persistQ <- job:
	default:
		h.log.Error().Str("room", job.room).Msg("persist queue full, message dropped")
	}
}

// persistLoop appends queued messages one at a time, so broadcast order
// always matches persistence order.
func (h *Hub) persistLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-h.persistQ:
			if h.store == nil {
				h.log.Error().Str("room", job.room).Msg("message lost: no store configured")
				continue
			}
			msg, err := h.store.Append(ctx, job.room, job.user, job.text)
			if err != nil {
				// The sender is never told; the message is simply
				// absent from the room's timeline.
				h.log.Error().Err(err).Str("room", job.room).Msg("failed to persist message")
				continue
			}
			select {
			case h.persisted <- msg:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (h *Hub) broadcastMessage(msg *store.Message) {
	h.broadcast(msg.Room, &Event{
		Kind: EventRoomMessage,
		Room: msg.Room,
		User: msg.User,
		Message: Message{
			ID:        msg.ID,
			Room:      msg.Room,
			From:      msg.User,
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt,
		},
	})
}

// broadcast fans an event out to every connection currently joined to
// the room, the sender included.
func (h *Hub) broadcast(room string, ev *Event) {
	for _, id := range h.registry.Targets(room) {
		client, ok := h.clients[id]
		if !ok {
			continue
		}
		select {
		case client.Events <- ev:
		default:
			// Drop if slow consumer.
		}
	}
}

func (h *Hub) dropClient(c *Client) {
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	h.registry.Leave(c.ID)
	delete(h.clients, c.ID)
	close(c.Events)
	h.log.Debug().Str("conn_id", c.ID).Int("clients", len(h.clients)).Msg("client unregistered")
}

func (h *Hub) shutdown() {
	for id, client := range h.clients {
		h.registry.Leave(id)
		delete(h.clients, id)
		close(client.Events)
	}
}
