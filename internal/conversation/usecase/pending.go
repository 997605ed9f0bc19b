package usecase

import (
	"context"

	"calendar-assistant/internal/intent"
	"calendar-assistant/internal/model"
)

// resume folds the user's answer into a pending intent. Only a confident
// extraction of the same intent merges its new fields over the collected
// ones. Anything else leaves the pending intent to the validator.
func (uc *implUseCase) resume(ctx context.Context, sess *model.ConversationSession, outcome intent.Outcome) model.ExtractedIntent {
	extracted := intent.Effective(outcome)
	pending := sess.Pending
	if pending == nil {
		return extracted
	}

	single, ok := outcome.(intent.Single)
	if !ok || single.Intent.Name != pending.Intent {
		return extracted
	}
	extracted.Fields = pending.Fields.Merge(single.Intent.Fields)

	uc.l.Infof(ctx, "%s: resumed pending %s", LogPrefixProcess, pending.Intent)
	return extracted
}
