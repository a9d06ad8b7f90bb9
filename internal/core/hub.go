package core

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/josuesanchez96/umessenger/internal/store"
)

// Hub owns the session registry and serializes every mutation of it.
// Register, unregister and inbound commands all flow through Run's loop,
// so handlers never need a lock around shared state.
type Hub struct {
	store store.Store
	log   *zerolog.Logger

	maxContentBytes int

	sessions   map[string]*Client
	register   chan *Client
	unregister chan *Client
	commands   chan *Command
}

// NewHub creates a hub backed by the given store.
// maxContentBytes caps message content size; zero disables the cap.
func NewHub(st store.Store, logger *zerolog.Logger, maxContentBytes int) *Hub {
	return &Hub{
		store:           st,
		log:             logger,
		maxContentBytes: maxContentBytes,
		sessions:        make(map[string]*Client),
		register:        make(chan *Client),
		unregister:      make(chan *Client),
		commands:        make(chan *Command, 32),
	}
}

// RegisterClient hands a connected client to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient removes a client on disconnect.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Dispatch queues a client command for processing.
func (h *Hub) Dispatch(cmd *Command) {
	h.commands <- cmd
}

// Run processes registry mutations and commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.handleRegister(ctx, c)
		case c := <-h.unregister:
			h.handleUnregister(ctx, c)
		case cmd := <-h.commands:
			h.handleCommand(ctx, cmd)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handleRegister(ctx context.Context, c *Client) {
	if prev, ok := h.sessions[c.Username]; ok && prev != c {
		// A second connection with the same name takes over the session.
		h.log.Warn().Str("username", c.Username).Msg("session overwritten by new connection")
	}
	h.sessions[c.Username] = c

	if err := h.store.AddActive(ctx, c.Username); err != nil {
		h.log.Error().Err(err).Str("username", c.Username).Msg("presence join failed")
	}

	h.log.Info().Str("username", c.Username).Str("client_id", c.ID).Msg("user connected")

	h.broadcast(&Event{Kind: EventUserStatus, User: c.Username, Status: StatusOnline})
	h.broadcastRoster(ctx)
}

func (h *Hub) handleUnregister(ctx context.Context, c *Client) {
	if h.sessions[c.Username] != c {
		// A newer connection has taken over this username; nothing to do.
		return
	}
	delete(h.sessions, c.Username)

	// Failure here is only logged: presence may desync until the user
	// reconnects and disconnects cleanly.
	if err := h.store.RemoveActive(ctx, c.Username); err != nil {
		h.log.Error().Err(err).Str("username", c.Username).Msg("presence leave failed")
	}

	h.log.Info().Str("username", c.Username).Str("client_id", c.ID).Msg("user disconnected")

	h.broadcast(&Event{Kind: EventUserStatus, User: c.Username, Status: StatusOffline})
	h.broadcastRoster(ctx)
}

func (h *Hub) handleCommand(ctx context.Context, cmd *Command) {
	switch cmd.Kind {
	case CommandSendMessage:
		h.handleSendMessage(ctx, cmd)
	case CommandGetMessages:
		h.handleGetMessages(ctx, cmd)
	case CommandListConversations:
		h.handleListConversations(ctx, cmd)
	}
}

func (h *Hub) handleSendMessage(ctx context.Context, cmd *Command) {
	msg := cmd.Message
	if msg.Sender == "" || msg.Recipient == "" {
		cmd.Client.send(&Event{Kind: EventError, Error: relayError(ErrCodeBadRequest, "sender and recipient are required")})
		return
	}
	if h.maxContentBytes > 0 && len(msg.Content) > h.maxContentBytes {
		cmd.Client.send(&Event{Kind: EventError, Error: relayError(ErrCodeMessageTooLarge, "message content exceeds server limit")})
		return
	}
	if msg.Type == "" {
		msg.Type = MessageTypeText
	}
	msg.ID = newMessageID()

	record, err := json.Marshal(msg)
	if err != nil {
		cmd.Client.send(&Event{Kind: EventError, Error: relayError(ErrCodeBadRequest, "message not serializable")})
		return
	}

	key := msg.ChatKey()
	if err := h.store.AppendMessage(ctx, key, record); err != nil {
		h.log.Error().Err(err).Str("chat_key", key).Msg("append message failed")
		cmd.Client.send(&Event{Kind: EventError, Error: relayError(ErrCodeStoreUnavailable, "message not stored")})
		return
	}
	h.indexPartners(ctx, msg.Sender, msg.Recipient)

	// Addressed delivery: only the two parties see the message. Persistence
	// above happens whether or not the recipient is connected.
	ev := &Event{Kind: EventMessage, Message: msg}
	if c, ok := h.sessions[msg.Sender]; ok {
		c.send(ev)
	}
	if msg.Recipient != msg.Sender {
		if c, ok := h.sessions[msg.Recipient]; ok {
			c.send(ev)
		}
	}
}

func (h *Hub) handleGetMessages(ctx context.Context, cmd *Command) {
	key := ChatKey(cmd.UserA, cmd.UserB)

	records, err := h.store.ListMessages(ctx, key)
	if err != nil {
		h.log.Error().Err(err).Str("chat_key", key).Msg("read history failed")
		cmd.Client.send(&Event{Kind: EventError, Error: relayError(ErrCodeStoreUnavailable, "history unavailable")})
		return
	}

	messages := make([]Message, 0, len(records))
	for _, record := range records {
		var msg Message
		if err := json.Unmarshal(record, &msg); err != nil {
			// Corrupt record: skip it and keep serving the rest.
			h.log.Warn().Err(err).Str("code", ErrCodeRecordCorrupt).Str("chat_key", key).Msg("skipping corrupt record")
			continue
		}
		messages = append(messages, msg)
	}

	// Logs are head-inserted, so storage order is newest first. Client
	// timestamps are untrusted input; the stable sort keeps stored order
	// among equal timestamps.
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp < messages[j].Timestamp
	})

	cmd.Client.send(&Event{Kind: EventHistory, ChatKey: key, Messages: messages})
}

func (h *Hub) handleListConversations(ctx context.Context, cmd *Command) {
	partners, err := h.store.ListPartners(ctx, cmd.Client.Username)
	if err != nil {
		h.log.Error().Err(err).Str("username", cmd.Client.Username).Msg("list conversations failed")
		cmd.Client.send(&Event{Kind: EventError, Error: relayError(ErrCodeStoreUnavailable, "conversations unavailable")})
		return
	}
	sort.Strings(partners)
	cmd.Client.send(&Event{Kind: EventConversations, Partners: partners})
}

// indexPartners maintains the per-user partner index that backs
// list_conversations, replacing a full key-space scan.
func (h *Hub) indexPartners(ctx context.Context, sender, recipient string) {
	if sender == recipient {
		return
	}
	if err := h.store.AddPartner(ctx, sender, recipient); err != nil {
		h.log.Error().Err(err).Str("username", sender).Msg("partner index update failed")
	}
	if err := h.store.AddPartner(ctx, recipient, sender); err != nil {
		h.log.Error().Err(err).Str("username", recipient).Msg("partner index update failed")
	}
}

func (h *Hub) broadcast(ev *Event) {
	for _, c := range h.sessions {
		c.send(ev)
	}
}

func (h *Hub) broadcastRoster(ctx context.Context) {
	active, err := h.store.ListActive(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("list active users failed")
		return
	}
	sort.Strings(active)
	h.broadcast(&Event{Kind: EventRoster, Roster: active})
}

// newMessageID returns a sortable, collision-resistant message identifier.
func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
