package dispatcher

import (
	"context"
	"errors"
	"fmt"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/model"
)

func (d *implDispatcher) handleCancel(ctx context.Context, v model.ValidationResult, _ []model.Turn) model.ActionResult {
	if v.Event == nil {
		d.l.Errorf(ctx, "%s: cancel reached the dispatcher without a resolved event", LogPrefixCancel)
		return failure(model.KindCalendarAction, MsgEventGone)
	}
	event := *v.Event

	if err := d.cal.DeleteEvent(ctx, event.ID); err != nil {
		d.l.Errorf(ctx, "%s: failed to delete %s: %v", LogPrefixCancel, event.ID, err)
		if errors.Is(err, calendar.ErrEventNotFound) {
			return failure(model.KindCalendarAction, MsgEventGone)
		}
		return failure(model.KindCalendarAction, fmt.Sprintf(MsgCancelFailed, event.Title))
	}

	return model.ActionResult{
		Success: true,
		Kind:    model.KindCalendarAction,
		Message: fmt.Sprintf(MsgCancelled, event.Title, d.when(event.Start)),
		Payload: model.CancelledEvent{EventID: event.ID, Title: event.Title},
	}
}
