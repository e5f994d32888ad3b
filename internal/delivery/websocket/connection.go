package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tcg-pocket-engine/internal/logger"
)

// Connection is one upgraded WebSocket client, registered with a Hub
// over its Register/Unregister/Broadcast channels.
type Connection struct {
	ID     string
	Conn   *websocket.Conn
	Send   chan WebSocketMessage
	Hub    *Hub
	player int

	mu     sync.RWMutex
	gameID string
	logger *zap.Logger
}

// NewConnection constructs a Connection with id, wrapping conn.
func NewConnection(id string, conn *websocket.Conn, hub *Hub) *Connection {
	return &Connection{
		ID:     id,
		Conn:   conn,
		Send:   make(chan WebSocketMessage, 256),
		Hub:    hub,
		logger: logger.Get(),
	}
}

// SetGame associates this connection with a game/player so broadcasts
// scoped to that game reach it.
func (c *Connection) SetGame(gameID string, player int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gameID = gameID
	c.player = player
}

// GetGame returns the connection's current game/player association.
func (c *Connection) GetGame() (string, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gameID, c.player
}

// ReadPump pumps messages from the socket to the hub until ctx is
// cancelled or the connection closes.
func (c *Connection) ReadPump(ctx context.Context) {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var msg WebSocketMessage
			if err := c.Conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					c.logger.Error("websocket read error", zap.String("connection_id", c.ID), zap.Error(err))
				}
				return
			}

			select {
			case c.Hub.Broadcast <- HubMessage{Connection: c, Message: msg}:
			default:
				c.logger.Warn("hub broadcast channel full", zap.String("connection_id", c.ID))
				return
			}
		}
	}
}

// WritePump pumps messages from the hub to the socket until ctx is
// cancelled or Send closes.
func (c *Connection) WritePump(ctx context.Context) {
	defer c.Conn.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(msg); err != nil {
				c.logger.Error("websocket write error", zap.String("connection_id", c.ID), zap.Error(err))
				return
			}
		}
	}
}
