package http

import (
	"go.uber.org/zap"

	"tcg-pocket-engine/internal/logger"
)

// BaseHandler provides the logger every handler in this package embeds.
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler constructs a BaseHandler around the package logger.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{logger: logger.Get()}
}
