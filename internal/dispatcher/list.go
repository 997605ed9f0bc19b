package dispatcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/model"
)

func (d *implDispatcher) handleList(ctx context.Context, v model.ValidationResult, _ []model.Turn) model.ActionResult {
	now := d.now()

	events, err := d.cal.ListEvents(ctx, calendar.WindowAround(now, d.cfg.ListWindow))
	if err != nil {
		d.l.Errorf(ctx, "%s: failed to list events: %v", LogPrefixList, err)
		return failure(model.KindCalendarInfo, MsgListFailed)
	}

	loc := d.dm.Location()
	prompt := fmt.Sprintf(PromptList,
		now.In(loc).Format("Monday 2006-01-02 15:04"),
		loc.String(),
		d.renderEvents(events),
		d.listQuestion(v, now),
	)

	answer, err := d.nlu.GenerateText(ctx, prompt)
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			d.l.Warnf(ctx, "%s: failed to compose answer: %v", LogPrefixList, err)
		}
		answer = d.upcoming(events)
	}

	return model.ActionResult{
		Success: true,
		Kind:    model.KindCalendarInfo,
		Message: strings.TrimSpace(answer),
		Payload: events,
	}
}

// listQuestion rebuilds the question from the extracted query and date, so a
// list step of a compound message does not carry the other requests. The raw
// message is used when nothing was extracted.
func (d *implDispatcher) listQuestion(v model.ValidationResult, now time.Time) string {
	f, _ := v.Bound.(model.ListEventsFields)
	if f.Query == "" && f.Date == "" {
		return v.Message
	}

	question := f.Query
	if question == "" {
		question = QuestionListDefault
	}
	if f.Date != "" {
		day := f.Date
		if t, err := d.dm.Parse(f.Date, now); err == nil {
			day = t.Format(ListDateFormat)
		}
		question = fmt.Sprintf(QuestionListOnDate, question, day)
	}
	return question
}

func (d *implDispatcher) renderEvents(events []model.Event) string {
	if len(events) == 0 {
		return "(no events)"
	}
	var sb strings.Builder
	for _, e := range events {
		fmt.Fprintf(&sb, "- %s: %s (%d min)", d.when(e.Start), e.Title, minutes(e.Duration()))
		if e.Location != "" {
			fmt.Fprintf(&sb, " at %s", e.Location)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// upcoming is the listing used when the NLU answer is unavailable.
func (d *implDispatcher) upcoming(events []model.Event) string {
	now := d.now()
	var next []model.Event
	for _, e := range events {
		if e.End.After(now) {
			next = append(next, e)
		}
		if len(next) == MaxListedEvents {
			break
		}
	}
	if len(next) == 0 {
		return MsgListEmpty
	}
	return fmt.Sprintf(MsgListHeader, d.renderEvents(next))
}
