package dispatcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"calendar-assistant/internal/model"
)

func (d *implDispatcher) Execute(ctx context.Context, v model.ValidationResult, history []model.Turn) (model.ActionResult, error) {
	if !v.RequiresAction {
		return model.ActionResult{
			Success: false,
			Kind:    model.KindClarification,
			Message: v.Clarification,
		}, nil
	}

	h, ok := d.handlers[v.Intent]
	if !ok {
		d.l.DPanicf(ctx, "%s: %v: %q", LogPrefixExecute, ErrUnsupportedIntent, v.Intent)
		return model.ActionResult{
			Success: false,
			Kind:    model.KindChat,
			Message: MsgUnsupported,
		}, fmt.Errorf("%w: %s", ErrUnsupportedIntent, v.Intent)
	}

	return h(ctx, v, history), nil
}

func failure(kind model.ResultKind, msg string) model.ActionResult {
	return model.ActionResult{Success: false, Kind: kind, Message: msg}
}

// splitAttendees separates valid email addresses from plain names.
func (d *implDispatcher) splitAttendees(attendees []string) (emails, others []string) {
	for _, a := range attendees {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if d.validate.Var(a, "email") == nil {
			emails = append(emails, strings.ToLower(a))
			continue
		}
		others = append(others, a)
	}
	return emails, others
}

// withOtherAttendees appends the names that could not be invited.
func withOtherAttendees(description string, others []string) string {
	if len(others) == 0 {
		return description
	}
	note := fmt.Sprintf(MsgOtherAttendees, strings.Join(others, ", "))
	if description == "" {
		return note
	}
	return description + "\n\n" + note
}

func mergeAttendees(existing, added []string) []string {
	seen := make(map[string]bool, len(existing)+len(added))
	out := make([]string, 0, len(existing)+len(added))
	for _, list := range [][]string{existing, added} {
		for _, a := range list {
			key := strings.ToLower(strings.TrimSpace(a))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, a)
		}
	}
	return out
}

func (d *implDispatcher) when(t time.Time) string {
	return t.In(d.dm.Location()).Format(WhenFormat)
}

func minutes(dur time.Duration) int {
	return int(dur / time.Minute)
}

func lastTurns(history []model.Turn, n int) []model.Turn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}
