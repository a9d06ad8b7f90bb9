package core

// EventKind is a notification the hub emits to clients.
type EventKind int

const (
	// EventUserStatus notifies clients that a user went online or offline.
	EventUserStatus EventKind = iota
	// EventRoster delivers the full list of active users.
	EventRoster
	// EventMessage delivers a chat message to its two parties.
	EventMessage
	// EventHistory delivers sorted conversation history to a requester.
	EventHistory
	// EventConversations delivers a user's conversation partner list.
	EventConversations
	// EventError notifies a client about a domain error.
	EventError
)

// UserStatus values carried on EventUserStatus.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	User     string   // EventUserStatus: whose status changed
	Status   string   // EventUserStatus: online or offline
	Roster   []string // EventRoster: active usernames, sorted
	Message  Message  // EventMessage
	ChatKey  string   // EventHistory: which conversation
	Messages []Message
	Partners []string // EventConversations
	Error    *RelayError
}
