package core

// Client is a live connection as seen by the hub. The hub closes Events
// when the client is unregistered; nothing is delivered after that.
type Client struct {
	ID     string
	Events chan *Event
}

// NewClient constructs a client with a buffered event channel.
func NewClient(id string) *Client {
	return &Client{
		ID:     id,
		Events: make(chan *Event, 16),
	}
}
