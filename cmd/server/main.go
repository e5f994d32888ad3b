package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"tcg-pocket-engine/internal/config"
	httpHandler "tcg-pocket-engine/internal/delivery/http"
	"tcg-pocket-engine/internal/delivery/websocket"
	"tcg-pocket-engine/internal/engine/effect"
	"tcg-pocket-engine/internal/logger"
	"tcg-pocket-engine/internal/repository"
	"tcg-pocket-engine/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(&cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The registry is populated by the external authoring tool (spec §6);
	// wiring a real loader for cfg.CardDBPath is out of this engine's
	// scope, so the server starts with an empty registry and relies on
	// cards supplied per-request to carry their own mechanic lists once
	// that loader exists.
	registry := effect.NewRegistry()

	gameRepo := repository.NewGameRepository()
	gameService := service.NewGameService(gameRepo, registry)

	hub := websocket.NewHub(gameService)
	go hub.Run(ctx)

	r := httpHandler.NewRouter(gameService)
	r.GET("/ws", func(c *gin.Context) {
		websocket.ServeWS(ctx, hub, c.Writer, c.Request)
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	logger.Get().Sugar().Infof("tcg-pocket-engine server starting on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed to start: %v", err)
	}
}
