package websocket

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tcg-pocket-engine/internal/logger"
	"tcg-pocket-engine/internal/service"
)

// HubMessage is one inbound message paired with the connection it
// arrived on.
type HubMessage struct {
	Connection *Connection
	Message    WebSocketMessage
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans inbound actions out to the engine via GameService and
// broadcasts the resulting StepOutcome/Observation to every connection
// subscribed to that game — the self-play/spectator streaming surface
// component H names.
type Hub struct {
	connections     map[*Connection]bool
	gameConnections map[string]map[*Connection]bool

	Register   chan *Connection
	Unregister chan *Connection
	Broadcast  chan HubMessage

	games *service.GameService

	mu     sync.RWMutex
	logger *zap.Logger
}

// NewHub constructs a Hub that applies actions against games.
func NewHub(games *service.GameService) *Hub {
	return &Hub{
		connections:     make(map[*Connection]bool),
		gameConnections: make(map[string]map[*Connection]bool),
		Register:        make(chan *Connection),
		Unregister:      make(chan *Connection),
		Broadcast:       make(chan HubMessage),
		games:           games,
		logger:          logger.Get(),
	}
}

// Run processes register/unregister/broadcast events until ctx is
// cancelled.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("starting websocket hub")
	for {
		select {
		case <-ctx.Done():
			h.closeAllConnections()
			return
		case conn := <-h.Register:
			h.registerConnection(conn)
		case conn := <-h.Unregister:
			h.unregisterConnection(conn)
		case msg := <-h.Broadcast:
			h.handleMessage(ctx, msg)
		}
	}
}

func (h *Hub) registerConnection(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = true
}

func (h *Hub) unregisterConnection(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.connections[c]; !ok {
		return
	}
	delete(h.connections, c)
	close(c.Send)

	gameID, _ := c.GetGame()
	if gameID == "" {
		return
	}
	if conns, ok := h.gameConnections[gameID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.gameConnections, gameID)
		}
	}
}

func (h *Hub) addToGame(c *Connection, gameID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.gameConnections[gameID] == nil {
		h.gameConnections[gameID] = make(map[*Connection]bool)
	}
	h.gameConnections[gameID][c] = true
}

func (h *Hub) broadcastToGame(gameID string, msg WebSocketMessage) {
	h.mu.RLock()
	conns := h.gameConnections[gameID]
	h.mu.RUnlock()

	for c := range conns {
		select {
		case c.Send <- msg:
		default:
			h.logger.Warn("dropping message to slow connection", zap.String("connection_id", c.ID))
		}
	}
}

func (h *Hub) handleMessage(ctx context.Context, hm HubMessage) {
	switch hm.Message.Type {
	case MessageTypeJoinGame:
		h.handleJoinGame(ctx, hm.Connection, hm.Message)
	case MessageTypeDoAction:
		h.handleDoAction(ctx, hm.Connection, hm.Message)
	default:
		h.sendError(hm.Connection, "unknown message type")
	}
}

func (h *Hub) handleJoinGame(ctx context.Context, c *Connection, msg WebSocketMessage) {
	payload, ok := decodePayload[JoinGamePayload](msg.Payload)
	if !ok {
		h.sendError(c, "malformed join-game payload")
		return
	}

	if _, err := h.games.Get(ctx, payload.GameID); err != nil {
		h.sendError(c, err.Error())
		return
	}

	c.SetGame(payload.GameID, payload.Player)
	h.addToGame(c, payload.GameID)
	h.sendObservation(ctx, c, payload.GameID, payload.Player)
}

func (h *Hub) handleDoAction(ctx context.Context, c *Connection, msg WebSocketMessage) {
	gameID, player := c.GetGame()
	if gameID == "" {
		h.sendError(c, "join a game before sending actions")
		return
	}

	payload, ok := decodePayload[DoActionPayload](msg.Payload)
	if !ok {
		h.sendError(c, "malformed do-action payload")
		return
	}

	outcome, err := h.games.ApplyByIndex(ctx, gameID, payload.Index)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}

	h.broadcastToGame(gameID, WebSocketMessage{
		Type:    MessageTypeStepOutcome,
		GameID:  gameID,
		Payload: toOutcomePayload(outcome),
	})

	h.mu.RLock()
	conns := h.gameConnections[gameID]
	h.mu.RUnlock()
	for conn := range conns {
		_, p := conn.GetGame()
		h.sendObservation(ctx, conn, gameID, p)
	}
}

func (h *Hub) sendObservation(ctx context.Context, c *Connection, gameID string, player int) {
	obs, err := h.games.Observation(ctx, gameID, player)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}
	select {
	case c.Send <- WebSocketMessage{Type: MessageTypeObservation, GameID: gameID, Payload: obs}:
	default:
	}
}

func (h *Hub) sendError(c *Connection, message string) {
	select {
	case c.Send <- WebSocketMessage{Type: MessageTypeError, Payload: ErrorPayload{Message: message}}:
	default:
	}
}

func (h *Hub) closeAllConnections() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.connections {
		close(c.Send)
		c.Conn.Close()
	}
}

// ServeWS upgrades r and registers the resulting Connection with hub.
func ServeWS(ctx context.Context, hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Get().Error("websocket upgrade failed", zap.Error(err))
		return
	}

	c := NewConnection(uuid.NewString(), conn, hub)
	hub.Register <- c

	go c.WritePump(ctx)
	go c.ReadPump(ctx)
}
