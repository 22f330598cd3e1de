// Package ws pushes leaderboard changes to connected game clients over
// WebSocket. One hub, one board, no subscription routing.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/okian/arrows/internal/domain/board"
	"github.com/okian/arrows/pkg/logger"
	"github.com/okian/arrows/pkg/metrics"
)

// Message types pushed to clients.
const (
	MessageTypeLeaderboardUpdate = "leaderboard_update"
	MessageTypePong              = "pong"
	MessageTypeError             = "error"
)

// Message is the wire envelope for hub pushes.
type Message struct {
	Type      string        `json:"type"`
	Entries   []board.Entry `json:"leaderboard,omitempty"`
	Timestamp int64         `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts board updates.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	logger logger.Logger
}

// NewHub creates a new Hub.
func NewHub(lg logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		logger:     lg,
	}
}

// Run starts the hub's main loop and returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info(ctx, "websocket hub started")
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			h.logger.Info(ctx, "websocket hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			metrics.UpdateWebsocketClients(count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			metrics.UpdateWebsocketClients(count)

		case payload := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Slow consumer; drop this update for it.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastLeaderboard pushes the ranked board to every client. Safe to
// call from any goroutine; drops the update when the hub is saturated.
func (h *Hub) BroadcastLeaderboard(entries []board.Entry) {
	payload, err := json.Marshal(Message{
		Type:      MessageTypeLeaderboardUpdate,
		Entries:   entries,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		h.logger.Warn(context.Background(), "failed to encode board update", logger.Error(err))
		return
	}
	select {
	case h.broadcast <- payload:
	default:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	metrics.UpdateWebsocketClients(0)
}
