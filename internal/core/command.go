package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandSendMessage persists a message and delivers it to its parties.
	CommandSendMessage CommandKind = iota
	// CommandGetMessages requests sorted history for a conversation.
	CommandGetMessages
	// CommandListConversations requests the client's partner list.
	CommandListConversations
)

// Command represents an action requested by a client.
type Command struct {
	Kind    CommandKind
	Client  *Client
	Message Message
	UserA   string // CommandGetMessages
	UserB   string
}
