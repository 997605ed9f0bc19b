package continuation

import (
	"context"
	"time"

	"calendar-assistant/internal/dispatcher"
	"calendar-assistant/internal/model"
	pkgLog "calendar-assistant/pkg/log"
)

// Handler short-circuits follow-up edits of the event updated last.
type Handler interface {
	// Handle applies message as a patch to the active event when it looks
	// like one. handled is false when the message must go through the
	// normal pipeline; the active context is cleared in that case.
	Handle(ctx context.Context, message string, sess *model.ConversationSession) (res model.ActionResult, handled bool)
}

// New creates a Handler. A non-positive ttl takes DefaultTTL.
func New(l pkgLog.Logger, d dispatcher.Dispatcher, ttl time.Duration) Handler {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &implHandler{l: l, dispatcher: d, ttl: ttl, now: time.Now}
}
