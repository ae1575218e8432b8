package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/tahcohcat/gofigure-interrogation/internal/game"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
)

var upgrader = websocket.Upgrader{
	// origins are enforced by the CORS layer
	CheckOrigin: func(r *http.Request) bool { return true },
}

type message struct {
	sessionID string
	data      []byte
}

// Hub fans session events out to websocket clients. A client may watch a
// single session or all of them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	connected  atomic.Int32
	logger     *logger.Log
}

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		logger:     logger.New(),
	}
}

// Run serves the hub until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.connected.Store(0)
			return

		case client := <-h.register:
			h.clients[client] = true
			h.connected.Store(int32(len(h.clients)))
			h.logger.Debug(fmt.Sprintf("Client connected. Total: %d", len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.connected.Store(int32(len(h.clients)))
				h.logger.Debug(fmt.Sprintf("Client disconnected. Total: %d", len(h.clients)))
			}

		case msg := <-h.broadcast:
			for client := range h.clients {
				if client.sessionID != "" && client.sessionID != msg.sessionID {
					continue
				}
				select {
				case client.send <- msg.data:
				default:
					// slow client
					close(client.send)
					delete(h.clients, client)
					h.connected.Store(int32(len(h.clients)))
				}
			}
		}
	}
}

// Clients is the number of connected clients.
func (h *Hub) Clients() int {
	return int(h.connected.Load())
}

// Publish queues a session event for every interested client. It never
// blocks the game; events are dropped when the queue is full.
func (h *Hub) Publish(ev game.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to encode event")
		return
	}

	select {
	case h.broadcast <- message{sessionID: ev.SessionID, data: data}:
	default:
		h.logger.Warn("Event queue full, dropping " + string(ev.Type))
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.WithError(err).Warn("WebSocket error")
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			c.hub.logger.WithError(err).Warn("WebSocket write error")
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ServeHTTP upgrades the request. ?session=ID limits the feed to one game.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade error")
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: r.URL.Query().Get("session"),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
