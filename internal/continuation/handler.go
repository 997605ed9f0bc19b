package continuation

import (
	"context"

	"calendar-assistant/internal/model"
)

func (h *implHandler) Handle(ctx context.Context, message string, sess *model.ConversationSession) (model.ActionResult, bool) {
	active := sess.Active
	if active == nil || active.Type != model.ActiveContextEventUpdate {
		return model.ActionResult{}, false
	}

	if active.Expired(h.now(), h.ttl) {
		h.l.Debugf(ctx, "%s: active context for %s expired", LogPrefix, active.EventID)
		sess.Active = nil
		return model.ActionResult{}, false
	}

	patch, ok := Detect(message)
	if !ok {
		sess.Active = nil
		return model.ActionResult{}, false
	}

	fields := model.UpdateEventFields{}
	switch patch.Kind {
	case PatchAttendees:
		fields.Attendees = patch.Emails
	case PatchLocation:
		fields.Location = patch.Text
	case PatchDescription:
		fields.Description = patch.Text
	}

	res, err := h.dispatcher.Execute(ctx, model.ValidationResult{
		Intent:         model.IntentUpdateEvent,
		Confidence:     1,
		Bound:          fields,
		Message:        message,
		RequiresAction: true,
		Event:          &model.Event{ID: active.EventID},
	}, sess.Turns)
	if err != nil {
		h.l.Errorf(ctx, "%s: failed to patch %s: %v", LogPrefix, active.EventID, err)
	}

	if res.Success {
		h.l.Infof(ctx, "%s: patched %s of %s", LogPrefix, patch.Kind, active.EventID)
		sess.Active = nil
	}
	return res, true
}
