package monitor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type frame struct {
	Level int    `json:"level"`
	State string `json:"state"`
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub()
	go h.Run(ctx)
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return h, srv
}

func dial(t *testing.T, h *Hub, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for h.Viewers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("viewer never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func TestPublishReachesViewer(t *testing.T) {
	h, srv := startHub(t)
	conn := dial(t, h, srv)

	if err := h.Publish("snapshot", frame{Level: 2, State: "playing"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var msg struct {
		Type    string `json:"type"`
		Payload frame  `json:"payload"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	if msg.Type != "snapshot" || msg.Payload.Level != 2 || msg.Payload.State != "playing" {
		t.Errorf("got %+v", msg)
	}
}

func TestPublishWithoutViewers(t *testing.T) {
	h := NewHub()
	// Run is not started: the queue fills and later frames are dropped.
	for i := 0; i < sendBuffer*3; i++ {
		if err := h.Publish("snapshot", frame{Level: i}); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}
	var msg struct {
		Payload frame `json:"payload"`
	}
	if err := json.Unmarshal(h.Latest(), &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Payload.Level != sendBuffer*3-1 {
		t.Errorf("latest level = %d", msg.Payload.Level)
	}
}

func TestPublishRejectsUnencodable(t *testing.T) {
	h := NewHub()
	if err := h.Publish("bad", make(chan int)); err == nil {
		t.Errorf("expected an encoding error")
	}
	if h.Latest() != nil {
		t.Errorf("failed publish should not replace the latest frame")
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	h, srv := startHub(t)

	resp, err := http.Get(srv.URL + "/snapshot")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status before publish = %d", resp.StatusCode)
	}

	h.Publish("snapshot", frame{Level: 3})
	resp, err = http.Get(srv.URL + "/snapshot")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"level":3`) {
		t.Errorf("status %d body %s", resp.StatusCode, body)
	}
}

func TestViewerDisconnect(t *testing.T) {
	h, srv := startHub(t)
	conn := dial(t, h, srv)
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for h.Viewers() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("viewers = %d after disconnect", h.Viewers())
		}
		time.Sleep(5 * time.Millisecond)
	}
}
