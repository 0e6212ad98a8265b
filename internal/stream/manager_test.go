package stream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type staticTokens struct{ token string }

func (s staticTokens) Token() string { return s.token }

func TestBackoffDelay(t *testing.T) {
	base := time.Second
	want := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
	}
	for i, expected := range want {
		attempt := i + 1
		if got := backoffDelay(base, attempt); got != expected {
			t.Errorf("backoffDelay(attempt=%d) = %s, want %s", attempt, got, expected)
		}
	}
}

func TestReconnectCeiling(t *testing.T) {
	// Nothing listens on this port, so every dial fails fast.
	mgr := NewManager(Config{
		URL:              "ws://127.0.0.1:1",
		HandshakeTimeout: 100 * time.Millisecond,
		ReconnectBase:    20 * time.Millisecond,
		MaxReconnects:    5,
	}, staticTokens{}, nil)
	defer mgr.Disconnect()

	if err := mgr.Connect(); err == nil {
		t.Fatal("expected initial connect to fail")
	}

	deadline := time.After(10 * time.Second)
	for !mgr.Dormant() {
		select {
		case <-deadline:
			t.Fatalf("never went dormant; attempts=%d state=%s", mgr.Attempts(), mgr.State())
		case <-time.After(5 * time.Millisecond):
		}
	}

	if got := mgr.Attempts(); got != 5 {
		t.Errorf("attempts at dormancy = %d, want 5", got)
	}
	if got := mgr.State(); got != Reconnecting {
		t.Errorf("state at dormancy = %s, want reconnecting", got)
	}

	// A manual connect restarts the schedule from attempt 1.
	_ = mgr.Connect()
	if mgr.Dormant() {
		t.Error("manual connect should clear dormancy")
	}
	if got := mgr.Attempts(); got != 1 {
		t.Errorf("attempts after manual connect = %d, want 1", got)
	}
}

func TestDisconnectCancelsPendingRetry(t *testing.T) {
	mgr := NewManager(Config{
		URL:              "ws://127.0.0.1:1",
		HandshakeTimeout: 100 * time.Millisecond,
		ReconnectBase:    50 * time.Millisecond,
		MaxReconnects:    5,
	}, staticTokens{}, nil)

	_ = mgr.Connect()
	if got := mgr.Attempts(); got != 1 {
		t.Fatalf("attempts after failed connect = %d, want 1", got)
	}

	mgr.Disconnect()
	if got := mgr.State(); got != Disconnected {
		t.Errorf("state after disconnect = %s, want disconnected", got)
	}

	// The armed timer must not fire a new attempt.
	time.Sleep(150 * time.Millisecond)
	if got := mgr.Attempts(); got != 0 {
		t.Errorf("attempts after disconnect = %d, want 0", got)
	}
	if got := mgr.State(); got != Disconnected {
		t.Errorf("state after timer window = %s, want disconnected", got)
	}
}

// wsTestServer upgrades one connection, records inbound frames, and lets the
// test push frames back to the client.
type wsTestServer struct {
	srv *httptest.Server

	mu     sync.Mutex
	conn   *websocket.Conn
	frames []Envelope
}

func newWSTestServer(t *testing.T) *wsTestServer {
	t.Helper()
	ws := &wsTestServer{}
	upgrader := websocket.Upgrader{}
	ws.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ws.mu.Lock()
		ws.conn = conn
		ws.mu.Unlock()
		for {
			var env Envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			ws.mu.Lock()
			ws.frames = append(ws.frames, env)
			ws.mu.Unlock()
		}
	}))
	t.Cleanup(ws.srv.Close)
	return ws
}

func (ws *wsTestServer) url() string {
	return "ws" + strings.TrimPrefix(ws.srv.URL, "http")
}

func (ws *wsTestServer) recorded() []Envelope {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	out := make([]Envelope, len(ws.frames))
	copy(out, ws.frames)
	return out
}

func (ws *wsTestServer) push(t *testing.T, v any) {
	t.Helper()
	ws.mu.Lock()
	conn := ws.conn
	ws.mu.Unlock()
	if err := conn.WriteJSON(v); err != nil {
		t.Fatalf("push failed: %v", err)
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal(msg)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestConnectAuthenticatesAndSubscribes(t *testing.T) {
	server := newWSTestServer(t)

	var mu sync.Mutex
	var received [][]byte
	dispatch := func(raw []byte) {
		mu.Lock()
		received = append(received, raw)
		mu.Unlock()
	}

	mgr := NewManager(Config{URL: server.url()}, staticTokens{token: "tok-123"}, dispatch)
	defer mgr.Disconnect()

	if err := mgr.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if got := mgr.State(); got != Connected {
		t.Fatalf("state = %s, want connected", got)
	}

	waitFor(t, 2*time.Second, func() bool {
		return len(server.recorded()) >= 3
	}, "server never saw the handshake frames")

	frames := server.recorded()
	if frames[0].Event != "auth" {
		t.Errorf("first frame = %q, want auth", frames[0].Event)
	}
	var auth authPayload
	if err := json.Unmarshal(frames[0].Data, &auth); err != nil || auth.Token != "tok-123" {
		t.Errorf("auth payload = %s (err %v), want token tok-123", frames[0].Data, err)
	}
	for i, channel := range []string{"odds", "matches"} {
		frame := frames[i+1]
		if frame.Event != "subscribe" {
			t.Errorf("frame %d = %q, want subscribe", i+1, frame.Event)
		}
		var name string
		if err := json.Unmarshal(frame.Data, &name); err != nil || name != channel {
			t.Errorf("subscribe payload %d = %s, want %q", i+1, frame.Data, channel)
		}
	}

	// Server pushes are handed to dispatch in order.
	server.push(t, map[string]any{"event": "balance_update", "data": map[string]any{"balance": 250.5}})
	waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, "pushed frame never reached dispatch")

	// Per-match subscriptions go out on the live channel.
	if err := mgr.SubscribeMatch(77); err != nil {
		t.Fatalf("subscribe match failed: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool {
		return len(server.recorded()) >= 4
	}, "subscribe_match frame never arrived")
	last := server.recorded()[3]
	if last.Event != "subscribe_match" {
		t.Errorf("frame = %q, want subscribe_match", last.Event)
	}

	mgr.Disconnect()
	if got := mgr.State(); got != Disconnected {
		t.Errorf("state after disconnect = %s, want disconnected", got)
	}
	if err := mgr.SubscribeMatch(78); err != ErrNotConnected {
		t.Errorf("emit while disconnected = %v, want ErrNotConnected", err)
	}
}
