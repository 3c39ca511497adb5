package websocket

import (
	"context"
	"sync"

	"github.com/anjiri1684/tutoring_api/models"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Client struct {
	UserID string
	Conn   Conn
}

type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub keeps one live connection per user and pushes notifications to it.
type Hub struct {
	clients    map[string]Conn
	clientsMu  sync.RWMutex
	register   chan *Client
	unregister chan *Client
	broadcast  chan models.Notification
	done       chan struct{}
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[string]Conn),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan models.Notification, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Register and Unregister return immediately once Run has stopped.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish queues n for delivery. When the queue is full the push is dropped;
// the notification itself is already stored.
func (h *Hub) Publish(n models.Notification) {
	select {
	case h.broadcast <- n:
	default:
		h.logger.Warn("notification push dropped", zap.String("notification_id", n.ID), zap.String("user_id", n.UserID))
	}
}

func (h *Hub) Connected(userID string) bool {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// Run serves the hub until ctx ends. It must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.clientsMu.Lock()
			for id, conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, id)
			}
			h.clientsMu.Unlock()
			return
		case client := <-h.register:
			h.logger.Debug("client registered", zap.String("user_id", client.UserID))
			h.clientsMu.Lock()
			h.clients[client.UserID] = client.Conn
			h.clientsMu.Unlock()
		case client := <-h.unregister:
			h.logger.Debug("client unregistered", zap.String("user_id", client.UserID))
			h.clientsMu.Lock()
			if conn, ok := h.clients[client.UserID]; ok && conn == client.Conn {
				delete(h.clients, client.UserID)
			}
			h.clientsMu.Unlock()
		case n := <-h.broadcast:
			h.deliver(n)
		}
	}
}

func (h *Hub) deliver(n models.Notification) {
	h.clientsMu.RLock()
	conn, ok := h.clients[n.UserID]
	h.clientsMu.RUnlock()
	if !ok {
		return
	}
	if err := conn.WriteJSON(Envelope{Type: "notification", Data: n}); err != nil {
		h.logger.Warn("push failed", zap.String("user_id", n.UserID), zap.Error(err))
		_ = conn.Close()
		h.clientsMu.Lock()
		if h.clients[n.UserID] == conn {
			delete(h.clients, n.UserID)
		}
		h.clientsMu.Unlock()
	}
}
