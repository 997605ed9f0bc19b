package websocket

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the chat socket at /chat/ws under rg.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	rg.GET("/chat/ws", h.Serve)
}
