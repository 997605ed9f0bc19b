package dispatcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"calendar-assistant/internal/model"
)

func (d *implDispatcher) handleFollowup(ctx context.Context, v model.ValidationResult, _ []model.Turn) model.ActionResult {
	f, _ := v.Bound.(model.FollowupEventFields)

	original, res, ok := d.fetch(ctx, v, LogPrefixFollowup)
	if !ok {
		return res
	}

	days := f.FollowupDays
	if days <= 0 {
		days = d.cfg.FollowupDays
	}
	start := original.Start.AddDate(0, 0, days)

	if f.Time != "" {
		clock, err := d.dm.ParseClock(f.Time)
		if err != nil {
			return failure(model.KindClarification, fmt.Sprintf(MsgBadTime, f.Time))
		}
		start = d.dm.Combine(start, clock)
	}

	duration := original.Duration()
	if f.Duration > 0 {
		duration = time.Duration(f.Duration) * time.Minute
	}
	if duration <= 0 {
		duration = time.Duration(d.cfg.DefaultDurationMinutes) * time.Minute
	}

	title := strings.TrimSpace(f.Title)
	if title == "" {
		title = fmt.Sprintf(FollowupTitleFormat, original.Title)
	}

	event, err := d.schedule(ctx, schedule{
		Title:       title,
		Start:       start,
		Duration:    duration,
		Location:    original.Location,
		Attendees:   original.Attendees,
		Description: fmt.Sprintf(MsgFollowupNote, original.Title, d.when(original.Start)),
	})
	if err != nil {
		d.l.Errorf(ctx, "%s: failed to schedule follow-up of %s: %v", LogPrefixFollowup, original.ID, err)
		return failure(model.KindCalendarAction, MsgCreateFailed)
	}

	return model.ActionResult{
		Success: true,
		Kind:    model.KindCalendarAction,
		Message: fmt.Sprintf(MsgFollowupCreated, event.Title, d.when(event.Start), minutes(event.Duration())),
		Payload: event,
	}
}
