package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/okian/arrows/pkg/logger"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The game is served from Telegram's webview; origin varies.
		return true
	},
}

// Client represents one WebSocket connection.
type Client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	logger logger.Logger
}

// clientMessage is the only inbound shape we accept.
type clientMessage struct {
	Type string `json:"type"`
}

// ServeWS upgrades an HTTP request and attaches the client to the hub.
func ServeWS(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Warn(r.Context(), "websocket upgrade failed", logger.Error(err))
			return
		}
		client := &Client{
			id:     uuid.New().String(),
			hub:    hub,
			conn:   conn,
			send:   make(chan []byte, 64),
			logger: hub.logger,
		}
		hub.register <- client
		go client.writePump()
		go client.readPump()
	}
}

// readPump drains inbound frames. The only meaningful client message is
// an application-level ping; unparsable frames get an error reply and
// everything else just keeps the read deadline alive.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug(context.Background(), "websocket read failed", logger.String("client", c.id), logger.Error(err))
			}
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.enqueue(Message{Type: MessageTypeError, Timestamp: time.Now().Unix()})
			continue
		}
		if msg.Type == "ping" {
			c.enqueue(Message{Type: MessageTypePong, Timestamp: time.Now().Unix()})
		}
	}
}

// writePump pushes hub payloads and keepalive pings to the peer.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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

func (c *Client) enqueue(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}
