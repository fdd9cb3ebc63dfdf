// Package realtime pushes per-user change notifications to connected
// websocket clients.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/events"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	// sendBuffer is how many frames may wait for a slow connection before
	// it is dropped.
	sendBuffer = 16
)

// PingPeriod is how often Serve pings an idle connection.
var PingPeriod = 25 * time.Second

type client struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
}

func newClient(userID string, conn *websocket.Conn) *client {
	return &client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
}

// close is safe to call from Notify, the writer and Serve.
func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// enqueue reports false when the send buffer is full.
func (c *client) enqueue(msg []byte) bool {
	select {
	case <-c.done:
		return true
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *client) write(messageType int, data []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

// Hub tracks live connections per user. It implements events.Notifier.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
	log     logging.Logger
}

func NewHub(log logging.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		log:     log.With("module", "realtime_hub"),
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.userID]; !ok {
		h.clients[c.userID] = make(map[*client]struct{})
	}
	h.clients[c.userID][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[c.userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.userID)
		}
	}
}

// Subscribers returns the number of live connections for userID.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) snapshot(userID string) []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	set := h.clients[userID]
	out := make([]*client, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// Notify queues c as a JSON text frame for every connection of c.UserID and
// returns without waiting for the writes. A connection that cannot keep up
// is dropped.
func (h *Hub) Notify(ctx context.Context, c events.Change) {
	targets := h.snapshot(c.UserID)
	if len(targets) == 0 {
		return
	}

	msg, err := json.Marshal(c)
	if err != nil {
		h.log.Error(ctx, "marshal change", "error", err)
		return
	}

	for _, cl := range targets {
		if !cl.enqueue(msg) {
			h.log.Warn(ctx, "dropping slow realtime client", "user_id", c.UserID)
			h.unregister(cl)
			cl.close()
		}
	}
}

// Serve registers conn for userID and blocks until the peer goes away or ctx
// is done. Incoming frames are read and discarded.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, userID string) {
	c := newClient(userID, conn)
	h.register(c)
	h.log.Debug(ctx, "realtime client connected", "user_id", userID)

	defer func() {
		h.unregister(c)
		c.close()
		h.log.Debug(ctx, "realtime client disconnected", "user_id", userID)
	}()

	go h.writeLoop(ctx, c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop is the only writer of c.conn.
func (h *Hub) writeLoop(ctx context.Context, c *client) {
	ticker := time.NewTicker(PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ctx.Done():
			c.close()
			return
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				h.log.Warn(ctx, "dropping realtime client", "user_id", c.userID, "error", err)
				c.close()
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}
