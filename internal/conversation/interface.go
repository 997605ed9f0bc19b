package conversation

import (
	"context"

	"calendar-assistant/internal/model"
)

// UseCase is the dialogue entry point used by every transport.
type UseCase interface {
	// ProcessMessage handles one user message end to end. Messages of the
	// same user are processed one at a time in arrival order. Compound
	// requests run step by step and are not atomic: steps that succeeded
	// stay applied when a later step fails.
	ProcessMessage(ctx context.Context, input ProcessMessageInput) (ProcessMessageOutput, error)

	// ResetSession forgets the user's history, pending intent and context.
	ResetSession(ctx context.Context, userID string) error

	// Session returns a snapshot of the user's session.
	Session(ctx context.Context, userID string) (model.ConversationSession, error)
}
