package core

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/josuesanchez96/umessenger/internal/store/memory"
)

func TestHubConnectBroadcastsPresenceAndRoster(t *testing.T) {
	hub := startTestHub(t)

	alice := NewClient("a", "alice")
	hub.RegisterClient(alice)

	statusEv := mustEvent(t, alice.Events, EventUserStatus)
	if statusEv.User != "alice" || statusEv.Status != StatusOnline {
		t.Fatalf("unexpected status event: %+v", statusEv)
	}

	rosterEv := mustEvent(t, alice.Events, EventRoster)
	if len(rosterEv.Roster) != 1 || rosterEv.Roster[0] != "alice" {
		t.Fatalf("unexpected roster: %v", rosterEv.Roster)
	}

	bob := NewClient("b", "bob")
	hub.RegisterClient(bob)

	// Presence changes go to every connected client, not just peers.
	statusEv = mustEvent(t, alice.Events, EventUserStatus)
	if statusEv.User != "bob" || statusEv.Status != StatusOnline {
		t.Fatalf("unexpected status event: %+v", statusEv)
	}
	rosterEv = mustEvent(t, alice.Events, EventRoster)
	if len(rosterEv.Roster) != 2 || rosterEv.Roster[0] != "alice" || rosterEv.Roster[1] != "bob" {
		t.Fatalf("unexpected roster: %v", rosterEv.Roster)
	}
}

func TestHubDisconnectBroadcastsOfflineAndRoster(t *testing.T) {
	hub := startTestHub(t)

	alice := NewClient("a", "alice")
	bob := NewClient("b", "bob")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)
	mustEvent(t, bob.Events, EventRoster)

	hub.UnregisterClient(alice)

	statusEv := mustEvent(t, bob.Events, EventUserStatus)
	if statusEv.User != "alice" || statusEv.Status != StatusOffline {
		t.Fatalf("unexpected status event: %+v", statusEv)
	}
	rosterEv := mustEvent(t, bob.Events, EventRoster)
	for _, u := range rosterEv.Roster {
		if u == "alice" {
			t.Fatalf("roster still contains alice: %v", rosterEv.Roster)
		}
	}
}

func TestHubSendAndHistoryRoundTrip(t *testing.T) {
	hub := startTestHub(t)

	alice := NewClient("a", "alice")
	bob := NewClient("b", "bob")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	hub.Dispatch(&Command{
		Kind:   CommandSendMessage,
		Client: alice,
		Message: Message{
			Sender:    "alice",
			Recipient: "bob",
			Content:   "hi",
			Timestamp: "2026-01-02T10:00:00.000Z",
		},
	})

	msgEv := mustEvent(t, bob.Events, EventMessage)
	if msgEv.Message.Content != "hi" || msgEv.Message.Sender != "alice" {
		t.Fatalf("unexpected message event: %+v", msgEv)
	}
	if msgEv.Message.ID == "" {
		t.Fatal("message id not assigned")
	}

	hub.Dispatch(&Command{Kind: CommandGetMessages, Client: bob, UserA: "alice", UserB: "bob"})
	histEv := mustEvent(t, bob.Events, EventHistory)
	if histEv.ChatKey != ChatKey("alice", "bob") {
		t.Fatalf("unexpected chat key: %s", histEv.ChatKey)
	}
	if len(histEv.Messages) != 1 || histEv.Messages[0].Content != "hi" {
		t.Fatalf("unexpected history: %+v", histEv.Messages)
	}

	hub.Dispatch(&Command{
		Kind:   CommandSendMessage,
		Client: bob,
		Message: Message{
			Sender:    "bob",
			Recipient: "alice",
			Content:   "hey",
			Timestamp: "2026-01-02T10:00:01.000Z",
		},
	})
	mustEvent(t, alice.Events, EventMessage)

	// History is re-sorted ascending by timestamp; storage order is newest first.
	hub.Dispatch(&Command{Kind: CommandGetMessages, Client: alice, UserA: "alice", UserB: "bob"})
	histEv = mustEvent(t, alice.Events, EventHistory)
	if len(histEv.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(histEv.Messages))
	}
	if histEv.Messages[0].Content != "hi" || histEv.Messages[1].Content != "hey" {
		t.Fatalf("history out of order: %+v", histEv.Messages)
	}
	if histEv.Messages[0].Timestamp > histEv.Messages[1].Timestamp {
		t.Fatal("history not sorted by timestamp")
	}
	if histEv.Messages[0].ID == histEv.Messages[1].ID {
		t.Fatalf("duplicate message ids: %s", histEv.Messages[0].ID)
	}
}

func TestHubAddressedDelivery(t *testing.T) {
	hub := startTestHub(t)

	alice := NewClient("a", "alice")
	bob := NewClient("b", "bob")
	carol := NewClient("c", "carol")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)
	hub.RegisterClient(carol)

	hub.Dispatch(&Command{
		Kind:   CommandSendMessage,
		Client: alice,
		Message: Message{
			Sender:    "alice",
			Recipient: "bob",
			Content:   "private",
			Timestamp: "2026-01-02T10:00:00.000Z",
		},
	})

	// Sender and recipient see the message; a third party does not.
	mustEvent(t, alice.Events, EventMessage)
	mustEvent(t, bob.Events, EventMessage)
	noEvent(t, carol.Events, EventMessage)
}

func TestHubConversations(t *testing.T) {
	hub := startTestHub(t)

	alice := NewClient("a", "alice")
	bob := NewClient("b", "bob")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	hub.Dispatch(&Command{
		Kind:   CommandSendMessage,
		Client: alice,
		Message: Message{
			Sender:    "alice",
			Recipient: "bob",
			Content:   "hi",
			Timestamp: "2026-01-02T10:00:00.000Z",
		},
	})
	mustEvent(t, bob.Events, EventMessage)

	hub.Dispatch(&Command{Kind: CommandListConversations, Client: alice})
	convEv := mustEvent(t, alice.Events, EventConversations)
	if len(convEv.Partners) != 1 || convEv.Partners[0] != "bob" {
		t.Fatalf("unexpected partners for alice: %v", convEv.Partners)
	}

	hub.Dispatch(&Command{Kind: CommandListConversations, Client: bob})
	convEv = mustEvent(t, bob.Events, EventConversations)
	if len(convEv.Partners) != 1 || convEv.Partners[0] != "alice" {
		t.Fatalf("unexpected partners for bob: %v", convEv.Partners)
	}
}

func TestHubSelfConversationExcluded(t *testing.T) {
	hub := startTestHub(t)

	alice := NewClient("a", "alice")
	hub.RegisterClient(alice)

	hub.Dispatch(&Command{
		Kind:   CommandSendMessage,
		Client: alice,
		Message: Message{
			Sender:    "alice",
			Recipient: "alice",
			Content:   "note to self",
			Timestamp: "2026-01-02T10:00:00.000Z",
		},
	})
	mustEvent(t, alice.Events, EventMessage)

	hub.Dispatch(&Command{Kind: CommandListConversations, Client: alice})
	convEv := mustEvent(t, alice.Events, EventConversations)
	if len(convEv.Partners) != 0 {
		t.Fatalf("self conversation should be excluded, got %v", convEv.Partners)
	}
}

func TestHubOversizedContentRejected(t *testing.T) {
	hub := startTestHub(t)

	alice := NewClient("a", "alice")
	hub.RegisterClient(alice)

	big := make([]byte, 2048)
	for i := range big {
		big[i] = 'x'
	}
	hub.Dispatch(&Command{
		Kind:   CommandSendMessage,
		Client: alice,
		Message: Message{
			Sender:    "alice",
			Recipient: "bob",
			Content:   string(big),
			Timestamp: "2026-01-02T10:00:00.000Z",
		},
	})

	ev := mustEvent(t, alice.Events, EventError)
	if ev.Error == nil || ev.Error.Code != ErrCodeMessageTooLarge {
		t.Fatalf("expected message_too_large error, got %+v", ev)
	}

	// Nothing was persisted.
	hub.Dispatch(&Command{Kind: CommandGetMessages, Client: alice, UserA: "alice", UserB: "bob"})
	histEv := mustEvent(t, alice.Events, EventHistory)
	if len(histEv.Messages) != 0 {
		t.Fatalf("rejected message was stored: %+v", histEv.Messages)
	}
}

func TestHubHistorySkipsCorruptRecords(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := memory.New()
	logger := zerolog.Nop()
	hub := NewHub(st, &logger, 0)
	go hub.Run(ctx)

	key := ChatKey("alice", "bob")
	if err := st.AppendMessage(ctx, key, []byte(`{"id":"1","sender":"alice","recipient":"bob","content":"ok","timestamp":"t1"}`)); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	if err := st.AppendMessage(ctx, key, []byte(`{not json`)); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	alice := NewClient("a", "alice")
	hub.RegisterClient(alice)

	hub.Dispatch(&Command{Kind: CommandGetMessages, Client: alice, UserA: "bob", UserB: "alice"})
	histEv := mustEvent(t, alice.Events, EventHistory)
	if len(histEv.Messages) != 1 || histEv.Messages[0].Content != "ok" {
		t.Fatalf("expected corrupt record skipped, got %+v", histEv.Messages)
	}
}

func TestHubDuplicateUsernameOverwritesSession(t *testing.T) {
	hub := startTestHub(t)

	first := NewClient("a1", "alice")
	second := NewClient("a2", "alice")
	bob := NewClient("b", "bob")
	hub.RegisterClient(first)
	hub.RegisterClient(second)
	hub.RegisterClient(bob)
	mustEvent(t, bob.Events, EventRoster) // drain bob's own join events

	// Messages for alice now reach only the newer connection.
	hub.Dispatch(&Command{
		Kind:   CommandSendMessage,
		Client: bob,
		Message: Message{
			Sender:    "bob",
			Recipient: "alice",
			Content:   "hello",
			Timestamp: "2026-01-02T10:00:00.000Z",
		},
	})
	mustEvent(t, second.Events, EventMessage)
	noEvent(t, first.Events, EventMessage)

	// The stale connection going away must not tear down the live session.
	hub.UnregisterClient(first)
	noEvent(t, bob.Events, EventUserStatus)

	hub.Dispatch(&Command{
		Kind:   CommandSendMessage,
		Client: bob,
		Message: Message{
			Sender:    "bob",
			Recipient: "alice",
			Content:   "still there?",
			Timestamp: "2026-01-02T10:00:01.000Z",
		},
	})
	ev := mustEvent(t, second.Events, EventMessage)
	if ev.Message.Content != "still there?" {
		t.Fatalf("unexpected message: %+v", ev.Message)
	}
}
