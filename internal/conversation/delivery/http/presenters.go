package http

import (
	"strings"
	"time"

	"github.com/jinzhu/copier"

	"calendar-assistant/internal/conversation"
	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/response"
)

// --- Request DTOs ---

type messageReq struct {
	UserID string `json:"user_id" binding:"required,max=128"`
	Text   string `json:"text"    binding:"required"`
}

func (r messageReq) validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errUserIDRequired
	}
	if strings.TrimSpace(r.Text) == "" {
		return errTextRequired
	}
	return nil
}

func (r messageReq) toInput() conversation.ProcessMessageInput {
	return conversation.ProcessMessageInput{
		UserID:  r.UserID,
		Text:    r.Text,
		Channel: model.ChannelHTTP,
	}
}

type sessionReq struct {
	UserID string
}

func (r sessionReq) validate() error {
	if r.UserID == "" {
		return errUserIDRequired
	}
	return nil
}

// --- Response DTOs ---

type messageResp struct {
	Success    bool    `json:"success"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Kind       string  `json:"kind"`
	Response   string  `json:"response"`
	Payload    any     `json:"payload,omitempty"`
}

func (h *handler) newMessageResp(out conversation.ProcessMessageOutput) messageResp {
	return messageResp{
		Success:    out.Success,
		Intent:     out.Intent,
		Confidence: out.Confidence,
		Kind:       string(out.Kind),
		Response:   out.Response,
		Payload:    out.Payload,
	}
}

type turnResp struct {
	Role      string            `json:"role"`
	Text      string            `json:"text"`
	Timestamp response.DateTime `json:"timestamp"`
}

type pendingResp struct {
	Intent    string            `json:"intent"`
	Missing   []string          `json:"missing"`
	CreatedAt response.DateTime `json:"created_at"`
}

type activeResp struct {
	Type      string            `json:"type"`
	EventID   string            `json:"event_id"`
	CreatedAt response.DateTime `json:"created_at"`
}

type sessionResp struct {
	UserID       string            `json:"user_id"`
	Turns        []turnResp        `json:"turns"`
	Pending      *pendingResp      `json:"pending,omitempty"`
	Active       *activeResp       `json:"active,omitempty"`
	CreatedAt    response.DateTime `json:"created_at"`
	LastActivity response.DateTime `json:"last_activity"`
}

var presenterOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: response.DateTime{},
			Fn: func(src interface{}) (interface{}, error) {
				return response.DateTime(src.(time.Time)), nil
			},
		},
	},
}

func (h *handler) newSessionResp(sess model.ConversationSession) (sessionResp, error) {
	resp := sessionResp{Turns: []turnResp{}}
	if err := copier.CopyWithOption(&resp, &sess, presenterOption); err != nil {
		return sessionResp{}, err
	}
	if sess.Pending == nil {
		resp.Pending = nil
	}
	if sess.Active == nil {
		resp.Active = nil
	}
	return resp, nil
}
