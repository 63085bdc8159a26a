// Package monitor streams session snapshots to operator dashboards over
// websockets.
//
// A Hub keeps the set of connected viewers and fans each published frame out
// to them. Viewers are read-only; anything they send is discarded.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer = 16
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Message is the JSON envelope of every frame sent to viewers.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// client is one connected viewer.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the active viewers and broadcasts frames to them.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}

	connected atomic.Int64

	mu     sync.RWMutex
	latest []byte
}

// NewHub creates a hub. Run must be started before viewers connect.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, sendBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run is the hub event loop. It returns when ctx is done, closing every viewer.
// A hub cannot be run twice.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.connected.Add(1)
			slog.Info("monitor_connected", "remote", c.conn.RemoteAddr().String(), "viewers", len(h.clients))

		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
			}

		case frame := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- frame:
				default:
					// Viewer is not keeping up.
					slog.Warn("monitor_viewer_dropped", "remote", c.conn.RemoteAddr().String())
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.connected.Add(-1)
}

// Viewers returns the number of registered viewers.
func (h *Hub) Viewers() int {
	return int(h.connected.Load())
}

// Publish encodes payload in a Message and queues it for every viewer.
// It never blocks: when the queue is full the frame is dropped.
func (h *Hub) Publish(typ string, payload any) error {
	frame, err := json.Marshal(Message{Type: typ, Payload: payload})
	if err != nil {
		return fmt.Errorf("encoding %s frame: %w", typ, err)
	}

	h.mu.Lock()
	h.latest = frame
	h.mu.Unlock()

	select {
	case h.broadcast <- frame:
	default:
		slog.Debug("monitor_frame_dropped", "type", typ)
	}
	return nil
}

// Latest returns the most recently published frame, or nil.
func (h *Hub) Latest() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades the request and registers the connection as a viewer.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("monitor_upgrade_failed", "error", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump drains the connection so close and pong frames are processed.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("monitor_read_error", "error", err)
			}
			return
		}
	}
}

// writePump sends queued frames until the hub closes the send channel.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
