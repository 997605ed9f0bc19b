package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"

	"calendar-assistant/internal/conversation"
	"calendar-assistant/internal/model"
	pkgLog "calendar-assistant/pkg/log"
	"calendar-assistant/pkg/response"
)

var errUserIDRequired = response.NewHTTPError(http.StatusBadRequest, "user_id query parameter is required")

// Serve godoc
// @Summary     Chat over WebSocket
// @Description Upgrades to a WebSocket. Send {"text": "..."} frames, receive one reply frame per message.
// @Tags        Chat
// @Param       user_id query string true "User ID"
// @Success     101 {string} string "Switching Protocols"
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/chat/ws [GET]
func (h *handler) Serve(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		response.Error(c, errUserIDRequired, nil)
		return
	}

	ws, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: h.cfg.OriginPatterns,
	})
	if err != nil {
		h.l.Errorf(c.Request.Context(), "%s: failed to accept: %v", LogPrefix, err)
		return
	}
	defer func() {
		_ = ws.Close(websocket.StatusNormalClosure, "bye")
	}()
	ws.SetReadLimit(readLimit)

	ctx := pkgLog.WithUserID(c.Request.Context(), userID)
	h.l.Infof(ctx, "%s: connected", LogPrefix)
	h.readLoop(ctx, ws, userID)
	h.l.Infof(ctx, "%s: disconnected", LogPrefix)
}

// readLoop handles frames one at a time until the socket closes.
func (h *handler) readLoop(ctx context.Context, ws *websocket.Conn, userID string) {
	for {
		readCtx, cancel := context.WithTimeout(ctx, h.cfg.IdleTimeout)
		_, data, err := ws.Read(readCtx)
		cancel()
		if err != nil {
			if websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				h.l.Warnf(ctx, "%s: read error: %v", LogPrefix, err)
			}
			return
		}

		var in inFrame
		if err := json.Unmarshal(data, &in); err != nil || strings.TrimSpace(in.Text) == "" {
			h.write(ctx, ws, outFrame{Error: errCodeBadFrame})
			continue
		}

		if err := h.cfg.Limiter.Allow(userID); err != nil {
			h.write(ctx, ws, outFrame{Error: errCodeRateLimited})
			continue
		}

		out, err := h.uc.ProcessMessage(ctx, conversation.ProcessMessageInput{
			UserID:  userID,
			Text:    in.Text,
			Channel: model.ChannelWebSocket,
		})
		if err != nil {
			h.l.Errorf(ctx, "%s: uc.ProcessMessage: %v", LogPrefix, err)
			h.write(ctx, ws, outFrame{Error: errCodeFailed})
			continue
		}

		if !h.write(ctx, ws, newOutFrame(out)) {
			return
		}
	}
}

func (h *handler) write(ctx context.Context, ws *websocket.Conn, frame outFrame) bool {
	data, err := json.Marshal(frame)
	if err != nil {
		h.l.Errorf(ctx, "%s: marshal frame: %v", LogPrefix, err)
		return false
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := ws.Write(writeCtx, websocket.MessageText, data); err != nil {
		h.l.Warnf(ctx, "%s: write error: %v", LogPrefix, err)
		return false
	}
	return true
}
