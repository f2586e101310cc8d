package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4 * 1024
	sendBuffer     = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Logger interface {
	Info(msg string)
	Error(msg string)
}

// Subscription is a (table, filter) pair. Empty filter fields match
// everything; the notifications table is additionally pinned to the
// connection's own principal regardless of the requested filter.
type Subscription struct {
	Table       string `json:"table"`
	EntityID    string `json:"entity_id,omitempty"`
	RecipientID string `json:"recipient_id,omitempty"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  Logger
}

func NewHub(logger Logger) *Hub {
	return &Hub{clients: make(map[*Client]struct{}), logger: logger}
}

// Publish lets the hub stand in for the Redis feed when no Redis is
// configured; events are delivered to this instance's clients only.
func (h *Hub) Publish(_ context.Context, event Event) error {
	h.Broadcast(event)
	return nil
}

func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if !client.matches(event) {
			continue
		}
		select {
		case client.send <- event:
		default:
			// Slow consumer; drop the event rather than block the feed.
		}
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

// HandleConnection upgrades the request and runs the read/write pumps.
// principalID scopes notification delivery to the connected user.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request, principalID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("websocket upgrade failed: " + err.Error())
		}
		return
	}
	client := &Client{
		hub:         h,
		conn:        conn,
		send:        make(chan Event, sendBuffer),
		principalID: principalID,
	}
	h.register(client)
	go client.writePump()
	client.readPump()
}

type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan Event
	principalID string

	mu   sync.RWMutex
	subs []Subscription
}

type clientMessage struct {
	Action      string `json:"action"`
	Table       string `json:"table"`
	EntityID    string `json:"entity_id,omitempty"`
	RecipientID string `json:"recipient_id,omitempty"`
}

func (c *Client) matches(event Event) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, sub := range c.subs {
		if sub.Table != event.Table {
			continue
		}
		if sub.EntityID != "" && sub.EntityID != event.EntityID {
			continue
		}
		if event.Table == "notifications" && event.RecipientID != c.principalID {
			continue
		}
		if sub.RecipientID != "" && sub.RecipientID != event.RecipientID {
			continue
		}
		return true
	}
	return false
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Action {
		case "subscribe":
			if msg.Table == "" {
				continue
			}
			c.mu.Lock()
			c.subs = append(c.subs, Subscription{Table: msg.Table, EntityID: msg.EntityID, RecipientID: msg.RecipientID})
			c.mu.Unlock()
		case "unsubscribe":
			c.mu.Lock()
			kept := c.subs[:0]
			for _, sub := range c.subs {
				if sub.Table != msg.Table {
					kept = append(kept, sub)
				}
			}
			c.subs = kept
			c.mu.Unlock()
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
