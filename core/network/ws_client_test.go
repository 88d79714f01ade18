package network

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
)

var testUpgrader = ws.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// fakeCasino upgrades the connection, performs the server side of the
// handshake and then hands the connection to fn.
func fakeCasino(t *testing.T, apiKey, tableID string, fn func(conn *ws.Conn)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		var auth Frame
		if err := conn.ReadJSON(&auth); err != nil {
			t.Errorf("read auth: %v", err)
			return
		}
		var creds map[string]string
		json.Unmarshal(auth.Data, &creds)
		if auth.Event != "auth" || creds["api_key"] != apiKey {
			conn.WriteJSON(Frame{Event: "auth_error", Data: json.RawMessage(`"bad key"`)})
			return
		}
		conn.WriteJSON(Frame{Event: "authenticated"})

		if tableID != "" {
			var join Frame
			if err := conn.ReadJSON(&join); err != nil {
				t.Errorf("read join: %v", err)
				return
			}
			var body map[string]string
			json.Unmarshal(join.Data, &body)
			if join.Event != "join_table" || body["table_id"] != tableID {
				t.Errorf("bad join frame: %+v", join)
				return
			}
		}

		if fn != nil {
			fn(conn)
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestWSClientHandshakeAndEvents(t *testing.T) {
	gotEvent := make(chan struct{})

	addr := fakeCasino(t, "sk-test", "bronze-1", func(conn *ws.Conn) {
		conn.WriteJSON(Frame{Event: "hand_start", Data: json.RawMessage(`{"hand_id":"h1"}`)})
		// Hold the connection open until the client saw the event.
		<-gotEvent
	})

	events := make(chan Frame, 4)
	c := NewWSClient(WSClientOptions{
		RemoteAddress: addr,
		APIKey:        "sk-test",
		TableID:       "bronze-1",
		OnEvent: func(event string, data json.RawMessage) {
			events <- Frame{Event: event, Data: data}
		},
	})
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	select {
	case f := <-events:
		if f.Event != "hand_start" {
			t.Fatalf("got %q", f.Event)
		}
		var body map[string]string
		if err := json.Unmarshal(f.Data, &body); err != nil || body["hand_id"] != "h1" {
			t.Fatalf("bad payload %s", string(f.Data))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("event never arrived")
	}
	close(gotEvent)
}

func TestWSClientAuthRejected(t *testing.T) {
	addr := fakeCasino(t, "sk-right", "", nil)

	c := NewWSClient(WSClientOptions{
		RemoteAddress: addr,
		APIKey:        "sk-wrong",
	})
	if err := c.Start(); err == nil {
		c.Close()
		t.Fatal("expected the handshake to fail")
	}
}

func TestWSClientEmit(t *testing.T) {
	received := make(chan Frame, 1)
	done := make(chan struct{})

	addr := fakeCasino(t, "sk-test", "", func(conn *ws.Conn) {
		var f Frame
		if err := conn.ReadJSON(&f); err != nil {
			t.Errorf("read emitted frame: %v", err)
			return
		}
		received <- f
		<-done
	})

	connected := make(chan struct{}, 1)
	c := NewWSClient(WSClientOptions{
		RemoteAddress: addr,
		APIKey:        "sk-test",
		OnStatus: func(enable bool) {
			if enable {
				connected <- struct{}{}
			}
		},
	})
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	defer close(done)

	waitFor(t, connected, "connect")

	if err := c.Emit("chat", map[string]string{"content": "gg"}); err != nil {
		t.Fatal(err)
	}

	select {
	case f := <-received:
		if f.Event != "chat" {
			t.Fatalf("got %q", f.Event)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server never saw the frame")
	}
}

func TestWSClientEmitBeforeConnect(t *testing.T) {
	c := NewWSClient(WSClientOptions{RemoteAddress: "ws://127.0.0.1:1"})
	if err := c.Emit("chat", nil); err == nil {
		t.Fatal("expected an error before connecting")
	}
}

func TestWSClientStatusOnClose(t *testing.T) {
	hold := make(chan struct{})
	addr := fakeCasino(t, "sk-test", "", func(conn *ws.Conn) {
		<-hold
	})

	status := make(chan bool, 4)
	c := NewWSClient(WSClientOptions{
		RemoteAddress: addr,
		APIKey:        "sk-test",
		OnStatus:      func(enable bool) { status <- enable },
	})
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}

	select {
	case up := <-status:
		if !up {
			t.Fatal("first status should be up")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no up status")
	}

	c.Close()
	close(hold)

	select {
	case up := <-status:
		if up {
			t.Fatal("expected a down status after close")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no down status")
	}
}
