package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tcg-pocket-engine/internal/service"
)

// NewRouter builds the gin engine exposing the game REST surface: a
// health check, a versioned API group, and permissive dev CORS.
func NewRouter(games *service.GameService) *gin.Engine {
	gameHandler := NewGameHandler(games)
	healthHandler := NewHealthHandler()

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", healthHandler.HealthCheck)

	api := r.Group("/api/v1")
	{
		api.POST("/games", gameHandler.CreateGame)
		api.GET("/games/:gameId/actions", gameHandler.LegalActions)
		api.GET("/games/:gameId/action-mask", gameHandler.ActionMask)
		api.POST("/games/:gameId/actions", gameHandler.PostAction)
		api.GET("/games/:gameId/observation", gameHandler.Observation)
	}

	return r
}
