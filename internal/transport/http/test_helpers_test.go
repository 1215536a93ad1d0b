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

	"daychat/internal/config"
	"daychat/internal/core"
	"daychat/internal/log"
	"daychat/internal/proto"
	"daychat/internal/store"
	"daychat/internal/store/sqlite"
)

func startTestServer(t *testing.T, st store.MessageStore) *httptest.Server {
	t.Helper()

	hub := core.NewHub(st, log.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	cfg := config.Default()
	cfg.Addr = ":0"
	cfg.ReadHeaderTimeout = time.Second

	server := NewServer(hub, st, &cfg, log.Nop())
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts
}

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func dialWS(ctx context.Context, t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	return conn
}

func sendJoin(ctx context.Context, t *testing.T, conn *websocket.Conn, username, room string) {
	t.Helper()

	payload, _ := json.Marshal(proto.JoinData{Username: username, Room: room})
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeJoin, Data: payload}); err != nil {
		t.Fatalf("send join: %v", err)
	}
}

func sendMsg(ctx context.Context, t *testing.T, conn *websocket.Conn, text string) {
	t.Helper()

	payload, _ := json.Marshal(proto.MsgData{Text: text})
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeMsg, Data: payload}); err != nil {
		t.Fatalf("send msg: %v", err)
	}
}

type outboundFrame struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// waitForUserJoined discards frames until the join notification for the
// given user arrives. Used to order actions across connections.
func waitForUserJoined(ctx context.Context, t *testing.T, conn *websocket.Conn, user string) {
	t.Helper()

	for {
		var frame outboundFrame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			t.Fatalf("read outbound: %v", err)
		}
		if frame.Event != proto.EventNameUserJoined {
			continue
		}
		var event proto.EventUserJoined
		if err := json.Unmarshal(frame.Data, &event); err != nil {
			t.Fatalf("unmarshal event data: %v", err)
		}
		if event.User == user {
			return
		}
	}
}

// readMessageEvent discards frames until a chat message event arrives.
func readMessageEvent(ctx context.Context, t *testing.T, conn *websocket.Conn) proto.EventMessage {
	t.Helper()

	for {
		var frame outboundFrame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			t.Fatalf("read outbound: %v", err)
		}
		if frame.Event != proto.EventNameMessage {
			continue
		}
		var event proto.EventMessage
		if err := json.Unmarshal(frame.Data, &event); err != nil {
			t.Fatalf("unmarshal event data: %v", err)
		}
		return event
	}
}
