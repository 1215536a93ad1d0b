package core

// Session is the live association between a connection and the
// (username, room) it most recently joined.
type Session struct {
	Username string
	Room     string
}

// Registry maps connection ids to their sessions and answers the
// broadcast target set for a room. It is not safe for concurrent use:
// the hub goroutine is its only caller, which is why no locking exists.
type Registry struct {
	sessions map[string]Session
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]Session),
	}
}

// Join records a session for the connection, replacing any prior one.
// Last join wins; there is no leave-room operation short of disconnect.
// Returns false without side effects when username or room is empty.
func (r *Registry) Join(connID, username, room string) bool {
	if username == "" || room == "" {
		return false
	}
	r.sessions[connID] = Session{Username: username, Room: room}
	return true
}

// Get returns the session for a connection, if any.
func (r *Registry) Get(connID string) (Session, bool) {
	sess, ok := r.sessions[connID]
	return sess, ok
}

// Leave removes the connection's session. Called on disconnect.
func (r *Registry) Leave(connID string) {
	delete(r.sessions, connID)
}

// Targets returns the ids of every connection currently joined to the
// room. Computed fresh on each call, never cached.
func (r *Registry) Targets(room string) []string {
	var ids []string
	for id, sess := range r.sessions {
		if sess.Room == room {
			ids = append(ids, id)
		}
	}
	return ids
}
