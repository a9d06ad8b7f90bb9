package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeSendMessage       = "send_message"
	InboundTypeGetMessages       = "get_messages"
	InboundTypeListConversations = "list_conversations"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventUserStatus    = "user_status"
	EventUsers         = "users"
	EventMessage       = "message"
	EventMessages      = "messages"
	EventConversations = "conversations"
)

// SendMessageData is a chat message from the client. ID is assigned by the
// server and ignored if supplied.
type SendMessageData struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type,omitempty"`
}

// GetMessagesData requests history between two users.
type GetMessagesData struct {
	User1 string `json:"user1"`
	User2 string `json:"user2"`
}

// ListConversationsData requests a user's conversation partners.
type ListConversationsData struct {
	Username string `json:"username"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// UserStatus announces a presence change.
type UserStatus struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

// ChatMessage is a message as delivered to clients.
type ChatMessage struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type,omitempty"`
}

// MessageHistory carries sorted history for one conversation.
type MessageHistory struct {
	ChatKey  string        `json:"chatKey"`
	Messages []ChatMessage `json:"messages"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
