package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/model"
)

func (d *implDispatcher) handleUpdate(ctx context.Context, v model.ValidationResult, _ []model.Turn) model.ActionResult {
	f, _ := v.Bound.(model.UpdateEventFields)

	current, res, ok := d.fetch(ctx, v, LogPrefixUpdate)
	if !ok {
		return res
	}

	opt := calendar.UpdateEventOptions{}
	if f.Title != "" {
		opt.Title = &f.Title
	}
	if f.Location != "" {
		opt.Location = &f.Location
	}

	description := current.Description
	if f.Description != "" {
		description = f.Description
	}
	if len(f.Attendees) > 0 {
		emails, others := d.splitAttendees(f.Attendees)
		if len(emails) > 0 {
			opt.Attendees = mergeAttendees(current.Attendees, emails)
		}
		description = withOtherAttendees(description, others)
	}
	if description != current.Description {
		opt.Description = &description
	}

	if f.Date != "" || f.Time != "" || f.Duration > 0 {
		start, end, fail := d.reschedule(current, f)
		if fail != nil {
			return *fail
		}
		if !start.Equal(current.Start) {
			opt.Start = &start
		}
		if !end.Equal(current.End) {
			opt.End = &end
		}
	}

	if opt.IsEmpty() {
		return failure(model.KindClarification, fmt.Sprintf(MsgUpdateNothing, current.Title))
	}

	updated, err := d.cal.UpdateEvent(ctx, current.ID, opt)
	if err != nil {
		d.l.Errorf(ctx, "%s: failed to update %s: %v", LogPrefixUpdate, current.ID, err)
		if errors.Is(err, calendar.ErrEventNotFound) {
			return failure(model.KindCalendarAction, MsgEventGone)
		}
		return failure(model.KindCalendarAction, fmt.Sprintf(MsgUpdateFailed, current.Title))
	}

	return model.ActionResult{
		Success: true,
		Kind:    model.KindCalendarAction,
		Message: fmt.Sprintf(MsgUpdated, updated.Title, d.when(updated.Start), minutes(updated.Duration())),
		Payload: updated,
	}
}

// reschedule moves current according to f. A new date keeps the time of
// day, a new time keeps the date, and the duration is kept unless f sets one.
func (d *implDispatcher) reschedule(current model.Event, f model.UpdateEventFields) (time.Time, time.Time, *model.ActionResult) {
	day := current.Start
	if f.Date != "" {
		parsed, err := d.dm.Parse(f.Date, d.now())
		if err != nil {
			fail := failure(model.KindClarification, fmt.Sprintf(MsgBadDate, f.Date))
			return time.Time{}, time.Time{}, &fail
		}
		day = parsed
	}

	clock := d.dm.ClockOf(current.Start)
	if f.Time != "" {
		parsed, err := d.dm.ParseClock(f.Time)
		if err != nil {
			fail := failure(model.KindClarification, fmt.Sprintf(MsgBadTime, f.Time))
			return time.Time{}, time.Time{}, &fail
		}
		clock = parsed
	}

	duration := current.Duration()
	if f.Duration > 0 {
		duration = time.Duration(f.Duration) * time.Minute
	}

	start := d.dm.Combine(day, clock)
	return start, start.Add(duration), nil
}

// fetch reloads the resolved event so handlers work on current data.
func (d *implDispatcher) fetch(ctx context.Context, v model.ValidationResult, prefix string) (model.Event, model.ActionResult, bool) {
	if v.Event == nil {
		d.l.Errorf(ctx, "%s: %s reached the dispatcher without a resolved event", prefix, v.Intent)
		return model.Event{}, failure(model.KindCalendarAction, MsgEventGone), false
	}

	event, err := d.cal.GetEvent(ctx, v.Event.ID)
	if err != nil {
		d.l.Errorf(ctx, "%s: failed to get %s: %v", prefix, v.Event.ID, err)
		if errors.Is(err, calendar.ErrEventNotFound) {
			return model.Event{}, failure(model.KindCalendarAction, MsgEventGone), false
		}
		return model.Event{}, failure(model.KindCalendarAction, MsgFetchFailed), false
	}
	return event, model.ActionResult{}, true
}
