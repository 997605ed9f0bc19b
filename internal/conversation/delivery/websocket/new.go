package websocket

import (
	"time"

	"github.com/gin-gonic/gin"

	"calendar-assistant/internal/conversation"
	"calendar-assistant/internal/middleware"
	"calendar-assistant/pkg/log"
)

// Handler serves the chat socket.
type Handler interface {
	Serve(c *gin.Context)
}

// Config configures the chat socket.
type Config struct {
	// OriginPatterns are passed to websocket.Accept. Empty means same-origin only.
	OriginPatterns []string
	// IdleTimeout closes sockets that stay silent this long.
	IdleTimeout time.Duration
	// Limiter throttles users. Nil disables throttling.
	Limiter *middleware.Limiter
}

type handler struct {
	l   log.Logger
	uc  conversation.UseCase
	cfg Config
}

func New(l log.Logger, uc conversation.UseCase, cfg Config) Handler {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	return &handler{l: l, uc: uc, cfg: cfg}
}
