package test

import (
	"fmt"
	"strings"

	"calendar-assistant/internal/conversation"
	"calendar-assistant/internal/intent"
	"calendar-assistant/internal/model"
	pkgLog "calendar-assistant/pkg/log"

	"github.com/gin-gonic/gin"
)

type handler struct {
	l         pkgLog.Logger
	uc        conversation.UseCase
	extractor *intent.Extractor
	splitter  *intent.Splitter
}

// HandleTestMessage shows how a message would be understood without acting on it
// @Summary Dry-run intent extraction
// @Description Runs the splitter and the intent extractor on a message with the user's history. No calendar action is taken and the session is not modified.
// @Tags test
// @Accept json
// @Produce json
// @Param request body TestMessageRequest true "Test message"
// @Success 200 {object} TestMessageResponse
// @Router /test/message [post]
func (h *handler) HandleTestMessage(c *gin.Context) {
	ctx := c.Request.Context()

	var req TestMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = defaultTestUserID
	}

	sess, err := h.uc.Session(ctx, req.UserID)
	if err != nil {
		h.l.Errorf(ctx, "internal.test.HandleTestMessage: uc.Session: %v", err)
		c.JSON(500, gin.H{"error": "Session unavailable", "details": err.Error()})
		return
	}

	resp := TestMessageResponse{
		Success: true,
		Text:    req.Text,
		UserID:  req.UserID,
	}
	for _, t := range sess.RecentTurns(historyTurns) {
		resp.History = append(resp.History, fmt.Sprintf("%s: %s", t.Role, t.Text))
	}

	if subs := h.splitter.Split(ctx, req.Text, sess.Turns); len(subs) >= 2 {
		resp.Outcome = outcomeSplit
		resp.Compound = true
		resp.Intents = toTestIntents(subs)
		c.JSON(200, resp)
		return
	}

	switch o := h.extractor.Extract(ctx, req.Text, intent.Context{History: sess.Turns, Pending: sess.Pending}).(type) {
	case intent.Single:
		resp.Outcome = outcomeSingle
		resp.Intents = toTestIntents([]model.ExtractedIntent{o.Intent})
	case intent.Multiple:
		resp.Outcome = outcomeMultiple
		resp.Compound = true
		resp.Intents = toTestIntents(o.Intents)
	case intent.Fallback:
		resp.Outcome = outcomeFallback
		resp.Reason = o.Reason
		resp.Intents = toTestIntents([]model.ExtractedIntent{o.Intent})
	}

	h.l.Infof(ctx, "internal.test.HandleTestMessage: text=%q outcome=%s intents=%d",
		req.Text, resp.Outcome, len(resp.Intents))

	c.JSON(200, resp)
}

// HandleResetSession resets the conversation session for a test user
// @Summary Reset test user session
// @Description Clear conversation history for a test user
// @Tags test
// @Accept json
// @Produce json
// @Param request body ResetSessionRequest true "Reset session"
// @Success 200 {object} ResetSessionResponse
// @Router /test/reset [post]
func (h *handler) HandleResetSession(c *gin.Context) {
	ctx := c.Request.Context()

	var req ResetSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = defaultTestUserID
	}

	if err := h.uc.ResetSession(ctx, req.UserID); err != nil {
		h.l.Errorf(ctx, "internal.test.HandleResetSession: uc.ResetSession: %v", err)
		c.JSON(500, gin.H{"error": "Reset failed", "details": err.Error()})
		return
	}

	h.l.Infof(ctx, "internal.test.HandleResetSession: Cleared session for user_id=%s", req.UserID)

	c.JSON(200, ResetSessionResponse{
		Success: true,
		Message: fmt.Sprintf("Session cleared for user %s", req.UserID),
		UserID:  req.UserID,
	})
}

// HandleHealthCheck returns the health status of test endpoints
// @Summary Test health check
// @Description Check if test endpoints are available
// @Tags test
// @Produce json
// @Success 200 {object} HealthCheckResponse
// @Router /test/health [get]
func (h *handler) HandleHealthCheck(c *gin.Context) {
	c.JSON(200, HealthCheckResponse{
		Status:  "ok",
		Message: "Test endpoints are available",
	})
}

func toTestIntents(in []model.ExtractedIntent) []TestIntent {
	out := make([]TestIntent, 0, len(in))
	for _, it := range in {
		out = append(out, TestIntent{
			Name:       string(it.Name),
			Confidence: it.Confidence,
			Fields:     it.Fields,
			Message:    it.Message,
		})
	}
	return out
}
