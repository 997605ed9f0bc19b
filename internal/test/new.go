package test

import (
	"calendar-assistant/internal/conversation"
	"calendar-assistant/internal/intent"
	pkgLog "calendar-assistant/pkg/log"

	"github.com/gin-gonic/gin"
)

// Handler is the interface for the test handler
type Handler interface {
	HandleTestMessage(c *gin.Context)
	HandleResetSession(c *gin.Context)
	HandleHealthCheck(c *gin.Context)
}

// New creates a new test handler
func New(
	l pkgLog.Logger,
	uc conversation.UseCase,
	extractor *intent.Extractor,
	splitter *intent.Splitter,
) Handler {
	return &handler{
		l:         l,
		uc:        uc,
		extractor: extractor,
		splitter:  splitter,
	}
}
