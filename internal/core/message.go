package core

// MessageType is the content kind of a chat message.
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
)

// Message is the domain model for a relayed chat message.
// ID is assigned by the server at receipt. Timestamp is supplied by the
// sending client and is trusted only for display ordering.
type Message struct {
	ID        string      `json:"id"`
	Sender    string      `json:"sender"`
	Recipient string      `json:"recipient"`
	Content   string      `json:"content"`
	Timestamp string      `json:"timestamp"`
	Type      MessageType `json:"type,omitempty"`
}

// ChatKey returns the canonical conversation key for the message's pair.
func (m Message) ChatKey() string {
	return ChatKey(m.Sender, m.Recipient)
}
