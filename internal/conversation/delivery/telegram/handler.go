package telegram

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"calendar-assistant/internal/conversation"
	"calendar-assistant/internal/model"
	pkgLog "calendar-assistant/pkg/log"
	pkgResponse "calendar-assistant/pkg/response"
	pkgTelegram "calendar-assistant/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It answers 200 right away and processes the message in a background
// goroutine, since an LLM round trip can outlast Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cfg.SecretToken != "" {
		got := c.GetHeader(SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.cfg.SecretToken)) != 1 {
			h.l.Warnf(ctx, "%s: rejected update with bad secret token", LogPrefix)
			pkgResponse.Unauthorized(c)
			return
		}
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "%s: failed to parse update: %v", LogPrefix, err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (edits, channel posts, ...)
	if update.Message == nil || update.Message.Chat == nil || update.Message.From == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	requestID := uuid.NewString()

	go func() {
		bgCtx := pkgLog.WithRequestID(context.Background(), requestID)
		bgCtx, cancel := context.WithTimeout(bgCtx, h.cfg.ProcessTimeout)
		defer cancel()

		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "%s: background processMessage failed: %v", LogPrefix, err)
			reply := MsgFailed
			if errors.Is(err, context.DeadlineExceeded) {
				reply = MsgTimedOut
			}
			// The request ctx may already be gone.
			_ = h.bot.SendMessage(context.Background(), msg.Chat.ID, reply)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return h.bot.SendMessage(ctx, chatID, MsgUnsupported)
	}

	userID := fmt.Sprintf(UserIDFormat, msg.From.ID)
	ctx = pkgLog.WithUserID(ctx, userID)

	switch command(text) {
	case CommandStart:
		return h.bot.SendMessage(ctx, chatID, MsgWelcome)
	case CommandHelp:
		return h.bot.SendMessageWithMode(ctx, chatID, MsgHelp, "Markdown")
	case CommandReset:
		if err := h.uc.ResetSession(ctx, userID); err != nil {
			h.l.Errorf(ctx, "%s: uc.ResetSession: %v", LogPrefix, err)
			return h.bot.SendMessage(ctx, chatID, MsgResetFailed)
		}
		return h.bot.SendMessage(ctx, chatID, MsgReset)
	}

	if err := h.cfg.Limiter.Allow(userID); err != nil {
		h.l.Warnf(ctx, "%s: %v", LogPrefix, err)
		return h.bot.SendMessage(ctx, chatID, MsgRateLimited)
	}

	if err := h.bot.SendChatAction(ctx, chatID, chatActionTyping); err != nil {
		h.l.Warnf(ctx, "%s: failed to send chat action: %v", LogPrefix, err)
	}

	output, err := h.uc.ProcessMessage(ctx, conversation.ProcessMessageInput{
		UserID:  userID,
		Text:    text,
		Channel: model.ChannelTelegram,
	})
	if err != nil {
		return fmt.Errorf("uc.ProcessMessage: %w", err)
	}

	return h.bot.SendMessage(ctx, chatID, output.Response)
}

// command returns the bot command in text, without any @botname suffix.
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd := strings.Fields(text)[0]
	if at := strings.IndexByte(cmd, '@'); at > 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd)
}
