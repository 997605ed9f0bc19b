package usecase

import (
	"context"
	"strings"

	"calendar-assistant/internal/conversation"
	"calendar-assistant/internal/model"
)

func (uc *implUseCase) ResetSession(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return conversation.ErrEmptyUserID
	}
	return uc.sessions.Delete(ctx, userID)
}

func (uc *implUseCase) Session(ctx context.Context, userID string) (model.ConversationSession, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return model.ConversationSession{}, conversation.ErrEmptyUserID
	}
	return uc.sessions.GetOrCreate(ctx, userID)
}
