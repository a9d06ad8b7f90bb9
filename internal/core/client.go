package core

// Client is a connected chat participant as seen by the hub.
type Client struct {
	ID       string
	Username string
	Events   chan *Event
}

// NewClient constructs a client with an initialized event channel.
func NewClient(id, username string) *Client {
	return &Client{
		ID:       id,
		Username: username,
		Events:   make(chan *Event, 16),
	}
}

// send queues an event for the client, dropping it if the consumer is slow.
func (c *Client) send(event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
