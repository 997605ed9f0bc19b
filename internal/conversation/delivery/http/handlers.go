package http

import (
	"github.com/gin-gonic/gin"

	"calendar-assistant/pkg/response"
)

// ProcessMessage godoc
// @Summary     Send a chat message
// @Description Runs one user message through the assistant and returns its reply.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body messageReq true "Message"
// @Success     200  {object} messageResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     413  {object} response.Resp "Message too long"
// @Failure     429  {object} response.Resp "Too Many Requests"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/messages [POST]
func (h *handler) ProcessMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processMessageReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ProcessMessage(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "conversation.delivery.http.ProcessMessage: uc.ProcessMessage: %v", err)
		h.fail(c, err)
		return
	}

	response.OK(c, h.newMessageResp(output))
}

// GetSession godoc
// @Summary     Get a conversation session
// @Description Returns the history, pending intent and active context of a user.
// @Tags        Chat
// @Produce     json
// @Param       user_id path string true "User ID"
// @Success     200 {object} sessionResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/sessions/{user_id} [GET]
func (h *handler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSessionReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	sess, err := h.uc.Session(ctx, req.UserID)
	if err != nil {
		h.l.Errorf(ctx, "conversation.delivery.http.GetSession: uc.Session: %v", err)
		h.fail(c, err)
		return
	}

	resp, err := h.newSessionResp(sess)
	if err != nil {
		h.l.Errorf(ctx, "conversation.delivery.http.GetSession: newSessionResp: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, resp)
}

// ResetSession godoc
// @Summary     Reset a conversation session
// @Description Forgets the history, pending intent and active context of a user.
// @Tags        Chat
// @Produce     json
// @Param       user_id path string true "User ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/sessions/{user_id} [DELETE]
func (h *handler) ResetSession(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSessionReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.ResetSession(ctx, req.UserID); err != nil {
		h.l.Errorf(ctx, "conversation.delivery.http.ResetSession: uc.ResetSession: %v", err)
		h.fail(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *handler) fail(c *gin.Context, err error) {
	if mapped := h.mapError(err); mapped != nil {
		response.Error(c, mapped, nil)
		return
	}
	response.InternalError(c, err)
}
