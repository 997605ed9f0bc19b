package validator

import (
	"context"
	"time"

	"calendar-assistant/internal/model"
	"calendar-assistant/internal/resolver"
	pkgLog "calendar-assistant/pkg/log"
)

// Validator checks an extracted intent before it reaches the dispatcher.
type Validator interface {
	// Validate checks fields and resolves event references. In ModeSingle a
	// clarification stores a PendingIntent on sess; a complete actionable
	// intent clears it.
	Validate(ctx context.Context, extracted model.ExtractedIntent, sess *model.ConversationSession, mode Mode) model.ValidationResult
}

// New creates a Validator.
func New(l pkgLog.Logger, res resolver.Resolver) Validator {
	return &implValidator{
		l:        l,
		resolver: res,
		now:      time.Now,
	}
}
