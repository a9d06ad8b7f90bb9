package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/josuesanchez96/umessenger/internal/config"
	"github.com/josuesanchez96/umessenger/internal/core"
	"github.com/josuesanchez96/umessenger/internal/proto"
	"github.com/josuesanchez96/umessenger/internal/store/memory"
)

func startTestServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	st := memory.New()
	logger := zerolog.Nop()
	hub := core.NewHub(st, &logger, 1024)
	go hub.Run(ctx)

	server := NewServer(hub, st, config.Default(), &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, st
}

func dialWS(t *testing.T, ctx context.Context, ts *httptest.Server, username string) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	if username != "" {
		wsURL += "?username=" + username
	}

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", username, err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

// readEvent reads outbound frames until one matches the named event.
func readEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) json.RawMessage {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		var outbound struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			t.Fatalf("read outbound: %v", err)
		}
		if outbound.Type == proto.OutboundTypeEvent && outbound.Event == event {
			return outbound.Data
		}
	}
	t.Fatalf("event %q not received", event)
	return nil
}

func sendInbound(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s payload: %v", typ, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
		t.Fatalf("send %s: %v", typ, err)
	}
}
