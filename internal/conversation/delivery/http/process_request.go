package http

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// processMessageReq binds the chat message body.
func (h *handler) processMessageReq(c *gin.Context) (messageReq, error) {
	var req messageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processSessionReq reads the user id path param.
func (h *handler) processSessionReq(c *gin.Context) (sessionReq, error) {
	req := sessionReq{UserID: strings.TrimSpace(c.Param("user_id"))}
	return req, req.validate()
}
