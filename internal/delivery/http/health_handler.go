package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the liveness check.
type HealthHandler struct {
	*BaseHandler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{BaseHandler: NewBaseHandler()}
}

// HealthCheck returns the service's health status.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "tcg-pocket-engine",
	})
}
