package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tcg-pocket-engine/internal/adapter"
	"tcg-pocket-engine/internal/engine/card"
	"tcg-pocket-engine/internal/service"
)

// GameHandler serves the REST surface a self-play driver or RL harness
// talks to: create a game, read its legal actions/mask/observation, and
// apply one action at a time.
type GameHandler struct {
	*BaseHandler
	games *service.GameService
}

// NewGameHandler constructs a GameHandler around games.
func NewGameHandler(games *service.GameService) *GameHandler {
	return &GameHandler{BaseHandler: NewBaseHandler(), games: games}
}

// CreateGame handles POST /api/v1/games.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("malformed create-game request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deck1, err := card.New(req.Deck1)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	deck2, err := card.New(req.Deck2)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	seed := int64(0)
	if req.Seed != nil {
		seed = *req.Seed
	}

	sess, err := h.games.CreateGame(c.Request.Context(), deck1, deck2, seed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, CreateGameResponse{GameID: sess.ID})
}

// LegalActions handles GET /api/v1/games/:gameId/actions.
func (h *GameHandler) LegalActions(c *gin.Context) {
	legal, err := h.games.LegalActions(c.Request.Context(), c.Param("gameId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	indices := make([]int, 0, len(legal))
	for _, a := range legal {
		idx, err := adapter.ActionToIndex(a)
		if err != nil {
			continue
		}
		indices = append(indices, idx)
	}
	c.JSON(http.StatusOK, LegalActionsResponse{Indices: indices})
}

// ActionMask handles GET /api/v1/games/:gameId/action-mask.
func (h *GameHandler) ActionMask(c *gin.Context) {
	mask, err := h.games.ActionMask(c.Request.Context(), c.Param("gameId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ActionMaskResponse{Mask: mask})
}

// PostAction handles POST /api/v1/games/:gameId/actions.
func (h *GameHandler) PostAction(c *gin.Context) {
	var req ActionIndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.games.ApplyByIndex(c.Request.Context(), c.Param("gameId"), req.Index)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	h.logger.Debug("action applied",
		zap.String("game_id", c.Param("gameId")),
		zap.Int("index", req.Index))

	c.JSON(http.StatusOK, toStepOutcomeResponse(outcome))
}

// Observation handles GET /api/v1/games/:gameId/observation?player=0.
func (h *GameHandler) Observation(c *gin.Context) {
	playerIdx := 0
	if raw := c.Query("player"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || (parsed != 0 && parsed != 1) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player must be 0 or 1"})
			return
		}
		playerIdx = parsed
	}

	obs, err := h.games.Observation(c.Request.Context(), c.Param("gameId"), playerIdx)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, obs)
}
