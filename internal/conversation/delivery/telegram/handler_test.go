package telegram_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"calendar-assistant/internal/conversation"
	"calendar-assistant/internal/conversation/delivery/telegram"
	"calendar-assistant/internal/middleware"
	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/log"
	pkgTelegram "calendar-assistant/pkg/telegram"
)

type mockUseCase struct {
	mu      sync.Mutex
	output  conversation.ProcessMessageOutput
	err     error
	inputs  []conversation.ProcessMessageInput
	resetID string
}

func (m *mockUseCase) ProcessMessage(ctx context.Context, input conversation.ProcessMessageInput) (conversation.ProcessMessageOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	return m.output, m.err
}

func (m *mockUseCase) ResetSession(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetID = userID
	return nil
}

func (m *mockUseCase) Session(ctx context.Context, userID string) (model.ConversationSession, error) {
	return model.ConversationSession{UserID: userID}, nil
}

type capture struct {
	mu       sync.Mutex
	messages []string
	actions  []string
}

func (c *capture) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

type testEnv struct {
	engine *gin.Engine
	uc     *mockUseCase
	sent   *capture
}

func newTestEnv(t *testing.T, cfg telegram.Config) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sent := &capture{}
	tgServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		json.NewDecoder(r.Body).Decode(&payload)
		sent.mu.Lock()
		switch {
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			sent.messages = append(sent.messages, payload["text"].(string))
		case strings.HasSuffix(r.URL.Path, "/sendChatAction"):
			sent.actions = append(sent.actions, payload["action"].(string))
		}
		sent.mu.Unlock()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": true}`))
	}))
	t.Cleanup(tgServer.Close)

	bot := pkgTelegram.NewBot("test-token")
	bot.SetAPIURL(tgServer.URL)

	uc := &mockUseCase{}
	engine := gin.New()
	h := telegram.New(log.NewNop(), uc, bot, cfg)
	engine.POST("/webhook/telegram", h.HandleWebhook)

	return &testEnv{engine: engine, uc: uc, sent: sent}
}

func sendWebhook(engine *gin.Engine, text string, header map[string]string) *httptest.ResponseRecorder {
	update := pkgTelegram.Update{
		UpdateID: 1,
		Message: &pkgTelegram.Message{
			MessageID: 1,
			Chat:      &pkgTelegram.Chat{ID: 123},
			From:      &pkgTelegram.User{ID: 456},
			Text:      text,
		},
	}
	body, _ := json.Marshal(update)
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func waitForMessages(c *capture, atLeast int, timeout time.Duration) []string {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) && len(c.snapshot()) < atLeast {
		time.Sleep(10 * time.Millisecond)
	}
	return c.snapshot()
}

func assertContains(t *testing.T, msgs []string, substr string) {
	t.Helper()
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return
		}
	}
	t.Errorf("expected a message containing %q, got: %v", substr, msgs)
}

func TestHandleWebhook_InvalidJSON(t *testing.T) {
	env := newTestEnv(t, telegram.Config{})

	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBufferString("{bad json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHandleWebhook_NonMessageUpdate(t *testing.T) {
	env := newTestEnv(t, telegram.Config{})

	body, _ := json.Marshal(pkgTelegram.Update{UpdateID: 1})
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestHandleWebhook_SecretToken(t *testing.T) {
	env := newTestEnv(t, telegram.Config{SecretToken: "s3cret"})

	if w := sendWebhook(env.engine, "hello", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", w.Code)
	}
	if w := sendWebhook(env.engine, "hello", map[string]string{telegram.SecretTokenHeader: "nope"}); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: expected 401, got %d", w.Code)
	}
	if w := sendWebhook(env.engine, "/start", map[string]string{telegram.SecretTokenHeader: "s3cret"}); w.Code != http.StatusOK {
		t.Errorf("good token: expected 200, got %d", w.Code)
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"/start", "calendar assistant"},
		{"/help@my_bot", "How to use me"},
		{"/reset", "forgot our conversation"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			env := newTestEnv(t, telegram.Config{})
			if w := sendWebhook(env.engine, tt.text, nil); w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			assertContains(t, waitForMessages(env.sent, 1, time.Second), tt.want)
		})
	}
}

func TestResetUsesTelegramUserID(t *testing.T) {
	env := newTestEnv(t, telegram.Config{})
	sendWebhook(env.engine, "/reset", nil)
	waitForMessages(env.sent, 1, time.Second)

	env.uc.mu.Lock()
	defer env.uc.mu.Unlock()
	if env.uc.resetID != "telegram_456" {
		t.Errorf("reset user = %q", env.uc.resetID)
	}
}

func TestProcessMessage_Reply(t *testing.T) {
	env := newTestEnv(t, telegram.Config{})
	env.uc.output = conversation.ProcessMessageOutput{
		Success:  true,
		Intent:   "create_event",
		Kind:     model.KindCalendarAction,
		Response: "Scheduled \"Lunch\" for Tue, Nov 4 at 12:00.",
	}

	sendWebhook(env.engine, "lunch tomorrow at noon", nil)
	msgs := waitForMessages(env.sent, 1, time.Second)
	assertContains(t, msgs, "Scheduled \"Lunch\"")

	env.uc.mu.Lock()
	defer env.uc.mu.Unlock()
	if len(env.uc.inputs) != 1 {
		t.Fatalf("expected one ProcessMessage call, got %d", len(env.uc.inputs))
	}
	in := env.uc.inputs[0]
	if in.UserID != "telegram_456" || in.Channel != model.ChannelTelegram || in.Text != "lunch tomorrow at noon" {
		t.Errorf("unexpected input %+v", in)
	}
}

func TestProcessMessage_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"failure", errors.New("boom"), "Something went wrong"},
		{"timeout", context.DeadlineExceeded, "took too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, telegram.Config{})
			env.uc.err = tt.err
			sendWebhook(env.engine, "anything", nil)
			assertContains(t, waitForMessages(env.sent, 1, time.Second), tt.want)
		})
	}
}

func TestProcessMessage_RateLimited(t *testing.T) {
	limiter := middleware.NewLimiter(1)
	env := newTestEnv(t, telegram.Config{Limiter: limiter})
	env.uc.output = conversation.ProcessMessageOutput{Response: "ok"}

	// Burst of three, then throttled.
	for i := 0; i < 4; i++ {
		sendWebhook(env.engine, "hi", nil)
		waitForMessages(env.sent, i+1, time.Second)
	}
	assertContains(t, env.sent.snapshot(), "too fast")
}
