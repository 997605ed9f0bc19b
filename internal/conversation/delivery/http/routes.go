package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps the chat endpoints onto rg. limit guards the message
// endpoint and may be nil.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, limit gin.HandlerFunc) {
	chat := rg.Group("/chat")
	{
		if limit != nil {
			chat.POST("/messages", limit, h.ProcessMessage)
		} else {
			chat.POST("/messages", h.ProcessMessage)
		}
		chat.GET("/sessions/:user_id", h.GetSession)
		chat.DELETE("/sessions/:user_id", h.ResetSession)
	}
}
