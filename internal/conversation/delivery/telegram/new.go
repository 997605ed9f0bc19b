package telegram

import (
	"time"

	"github.com/gin-gonic/gin"

	"calendar-assistant/internal/conversation"
	"calendar-assistant/internal/middleware"
	pkgLog "calendar-assistant/pkg/log"
	pkgTelegram "calendar-assistant/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Config configures the Telegram delivery.
type Config struct {
	// SecretToken, when set, must match the SecretTokenHeader of every update.
	SecretToken string
	// ProcessTimeout bounds the background processing of one update.
	ProcessTimeout time.Duration
	// Limiter throttles users. Nil disables throttling.
	Limiter *middleware.Limiter
}

type handler struct {
	l   pkgLog.Logger
	uc  conversation.UseCase
	bot *pkgTelegram.Bot
	cfg Config
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc conversation.UseCase, bot *pkgTelegram.Bot, cfg Config) Handler {
	if cfg.ProcessTimeout <= 0 {
		cfg.ProcessTimeout = DefaultProcessTimeout
	}
	return &handler{
		l:   l,
		uc:  uc,
		bot: bot,
		cfg: cfg,
	}
}
