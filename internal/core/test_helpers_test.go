package core

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/josuesanchez96/umessenger/internal/store/memory"
)

func startTestHub(t *testing.T) *Hub {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := zerolog.Nop()
	hub := NewHub(memory.New(), &logger, 1024)
	go hub.Run(ctx)
	return hub
}

// mustEvent waits for the next event of the given kind, skipping others.
func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("expected event kind %v not received", kind)
			return nil
		}
	}
}

// noEvent asserts that no event of the given kind arrives within the window.
func noEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	timeout := time.After(200 * time.Millisecond)
	for {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event: %+v", ev)
			}
		case <-timeout:
			return
		}
	}
}
