package dispatcher

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"calendar-assistant/internal/model"
)

var bulletPrefix = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)

func (d *implDispatcher) handlePrepare(ctx context.Context, v model.ValidationResult, _ []model.Turn) model.ActionResult {
	event, res, ok := d.fetch(ctx, v, LogPrefixPrepare)
	if !ok {
		return res
	}

	prompt := fmt.Sprintf(PromptPrepare,
		event.Title,
		d.when(event.Start),
		minutes(event.Duration()),
		orNone(event.Location),
		orNone(strings.Join(event.Attendees, ", ")),
		orNone(event.Description),
	)

	notes := []string{MsgPrepareFallback}
	text, err := d.nlu.GenerateText(ctx, prompt)
	if err != nil {
		d.l.Warnf(ctx, "%s: failed to generate notes for %s: %v", LogPrefixPrepare, event.ID, err)
	} else if parsed := parseBullets(text); len(parsed) > 0 {
		notes = parsed
	}

	lines := make([]string, len(notes))
	for i, n := range notes {
		lines[i] = "- " + n
	}

	return model.ActionResult{
		Success: true,
		Kind:    model.KindCalendarInfo,
		Message: fmt.Sprintf(MsgPrepared, event.Title, d.when(event.Start), strings.Join(lines, "\n")),
		Payload: model.PreparationNotes{Event: event, Notes: notes},
	}
}

// parseBullets keeps at most MaxPreparationNotes non-empty lines with their
// list markers stripped.
func parseBullets(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == MaxPreparationNotes {
			break
		}
	}
	return out
}
