package websocket

import (
	"time"

	"calendar-assistant/internal/conversation"
)

const (
	LogPrefix          = "conversation.delivery.websocket"
	DefaultIdleTimeout = 10 * time.Minute
	readLimit          = 32 << 10
	writeTimeout       = 10 * time.Second
)

const (
	errCodeBadFrame    = "bad_frame"
	errCodeRateLimited = "rate_limited"
	errCodeFailed      = "processing_failed"
)

// inFrame is what clients send.
type inFrame struct {
	Text string `json:"text"`
}

// outFrame is one reply.
type outFrame struct {
	Success    bool    `json:"success"`
	Intent     string  `json:"intent,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Kind       string  `json:"kind,omitempty"`
	Response   string  `json:"response,omitempty"`
	Payload    any     `json:"payload,omitempty"`
	Error      string  `json:"error,omitempty"`
}

func newOutFrame(out conversation.ProcessMessageOutput) outFrame {
	return outFrame{
		Success:    out.Success,
		Intent:     out.Intent,
		Confidence: out.Confidence,
		Kind:       string(out.Kind),
		Response:   out.Response,
		Payload:    out.Payload,
	}
}
