package dispatcher

import (
	"context"
	"fmt"
	"strings"

	"calendar-assistant/internal/model"
)

func (d *implDispatcher) handleHelp(ctx context.Context, v model.ValidationResult, _ []model.Turn) model.ActionResult {
	return model.ActionResult{Success: true, Kind: model.KindChat, Message: MsgHelp}
}

func (d *implDispatcher) handleInformation(ctx context.Context, v model.ValidationResult, _ []model.Turn) model.ActionResult {
	return model.ActionResult{Success: true, Kind: model.KindChat, Message: MsgInformation}
}

func (d *implDispatcher) handleChat(ctx context.Context, v model.ValidationResult, history []model.Turn) model.ActionResult {
	var sb strings.Builder
	for _, t := range lastTurns(history, d.cfg.ContextTurns) {
		role := "User"
		if t.Role == model.RoleAssistant {
			role = "Assistant"
		}
		fmt.Fprintf(&sb, "%s: %s\n", role, t.Text)
	}

	reply, err := d.nlu.GenerateText(ctx, fmt.Sprintf(PromptChat, sb.String(), v.Message))
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			d.l.Warnf(ctx, "%s: failed to generate reply: %v", LogPrefixChat, err)
		}
		reply = MsgChatFallback
	}

	return model.ActionResult{Success: true, Kind: model.KindChat, Message: strings.TrimSpace(reply)}
}
