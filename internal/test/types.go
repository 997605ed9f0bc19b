package test

// TestMessageRequest represents a test message request
type TestMessageRequest struct {
	Text   string `json:"text" binding:"required"`
	UserID string `json:"user_id"`
}

// TestIntent is one intent the pipeline would act on.
type TestIntent struct {
	Name       string         `json:"name"`
	Confidence float64        `json:"confidence"`
	Fields     map[string]any `json:"fields,omitempty"`
	Message    string         `json:"message,omitempty"`
}

// TestMessageResponse represents a test message response
type TestMessageResponse struct {
	Success  bool         `json:"success"`
	Outcome  string       `json:"outcome"`
	Reason   string       `json:"reason,omitempty"`
	Compound bool         `json:"compound"`
	Intents  []TestIntent `json:"intents"`
	Text     string       `json:"text"`
	UserID   string       `json:"user_id"`
	History  []string     `json:"history,omitempty"`
}

// ResetSessionRequest represents a reset session request
type ResetSessionRequest struct {
	UserID string `json:"user_id"`
}

// ResetSessionResponse represents a reset session response
type ResetSessionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// HealthCheckResponse represents a health check response
type HealthCheckResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const (
	defaultTestUserID = "test_user"
	historyTurns      = 6

	outcomeSingle   = "single"
	outcomeMultiple = "multiple"
	outcomeFallback = "fallback"
	outcomeSplit    = "split"
)
