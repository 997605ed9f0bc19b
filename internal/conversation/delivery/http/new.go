package http

import (
	"github.com/gin-gonic/gin"

	"calendar-assistant/internal/conversation"
	"calendar-assistant/pkg/log"
)

// Handler is the HTTP delivery of the conversation use case.
type Handler interface {
	ProcessMessage(c *gin.Context)
	GetSession(c *gin.Context)
	ResetSession(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc conversation.UseCase
}

// New creates a new HTTP handler for the conversation domain.
func New(l log.Logger, uc conversation.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
