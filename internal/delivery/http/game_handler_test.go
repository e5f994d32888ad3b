package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcg-pocket-engine/internal/engine/card"
	"tcg-pocket-engine/internal/engine/effect"
	"tcg-pocket-engine/internal/repository"
	"tcg-pocket-engine/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	svc := service.NewGameService(repository.NewGameRepository(), effect.NewRegistry())
	return NewRouter(svc)
}

func basicDeckCards() []card.Card {
	cards := make([]card.Card, 0, 20)
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("Basic Mon %d", i)
		for n := 0; n < 2; n++ {
			cards = append(cards, card.Card{
				ID: name, Name: name, Category: card.CategoryPokemon,
				StagePok: card.Basic, HP: 60, RetreatCost: 1,
			})
		}
	}
	return cards
}

func createGame(t *testing.T, r *gin.Engine) string {
	t.Helper()
	body, err := json.Marshal(CreateGameRequest{Deck1: basicDeckCards(), Deck2: basicDeckCards()})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/games", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created CreateGameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.GameID)
	return created.GameID
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateGameThenLegalActionsAndMask(t *testing.T) {
	r := newTestRouter()
	gameID := createGame(t, r)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/games/"+gameID+"/actions", nil)
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var legal LegalActionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &legal))
	assert.NotEmpty(t, legal.Indices)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/games/"+gameID+"/action-mask", nil)
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var mask ActionMaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mask))
	onCount := 0
	for _, on := range mask.Mask {
		if on {
			onCount++
		}
	}
	assert.Equal(t, len(legal.Indices), onCount)
}

func TestPostActionAdvancesSetup(t *testing.T) {
	r := newTestRouter()
	gameID := createGame(t, r)

	body, err := json.Marshal(ActionIndexRequest{Index: 0})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/games/"+gameID+"/actions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var outcome StepOutcomeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.NotEqual(t, "invalid_action", outcome.Kind)
}

func TestObservationDefaultsToPlayerZero(t *testing.T) {
	r := newTestRouter()
	gameID := createGame(t, r)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/games/"+gameID+"/observation", nil)
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestObservationRejectsBadPlayerQuery(t *testing.T) {
	r := newTestRouter()
	gameID := createGame(t, r)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/games/"+gameID+"/observation?player=2", nil)
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLegalActionsUnknownGameNotFound(t *testing.T) {
	r := newTestRouter()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/games/missing/actions", nil)
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
