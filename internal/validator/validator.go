package validator

import (
	"context"
	"fmt"
	"strings"

	"calendar-assistant/internal/intent"
	"calendar-assistant/internal/model"
	"calendar-assistant/internal/resolver"
)

func (v *implValidator) Validate(ctx context.Context, extracted model.ExtractedIntent, sess *model.ConversationSession, mode Mode) model.ValidationResult {
	fields := extracted.Fields
	if fields == nil {
		fields = model.FieldSet{}
	}

	res := model.ValidationResult{
		Intent:     extracted.Name,
		Confidence: extracted.Confidence,
		Fields:     fields,
		Bound:      intent.Bind(extracted.Name, fields),
		Message:    extracted.Message,
	}

	if extracted.Name.IsConversational() {
		res.RequiresAction = true
		return res
	}

	if missing := intent.Missing(extracted.Name, fields); len(missing) > 0 {
		res.Missing = missing
		res.Clarification = clarifyMissing(extracted.Name, missing)
		if mode == ModeSingle && sess != nil {
			sess.Pending = &model.PendingIntent{
				Intent:    extracted.Name,
				Fields:    fields.Clone(),
				Missing:   append([]string(nil), missing...),
				CreatedAt: v.now(),
			}
		}
		v.l.Infof(ctx, "%s: %s is missing %s", LogPrefix, extracted.Name, strings.Join(missing, ", "))
		return res
	}

	if mode == ModeSingle && sess != nil {
		sess.Pending = nil
	}

	if !extracted.Name.NeedsEventResolution() {
		res.RequiresAction = true
		return res
	}

	var history []model.Turn
	if sess != nil {
		history = sess.Turns
	}

	identifier := fields.String(model.FieldEventIdentifier)
	resolution := v.resolver.Resolve(ctx, identifier, history)
	switch resolution.Status {
	case resolver.StatusFound:
		res.Event = resolution.Event
		res.RequiresAction = true
	case resolver.StatusAmbiguous:
		res.Clarification = fmt.Sprintf(MsgEventAmbiguous, identifier)
	default:
		res.Clarification = fmt.Sprintf(MsgEventNotFound, identifier)
	}
	return res
}

// clarifyMissing names every missing field and the blocked action.
func clarifyMissing(i model.Intent, missing []string) string {
	labels := make([]string, len(missing))
	for idx, f := range missing {
		labels[idx] = phrase(intent.Label(f))
	}
	return fmt.Sprintf(MsgMissing, joinLabels(labels), intent.ActionLabel(i))
}

// phrase adds an article to noun labels: "date" becomes "the date".
func phrase(label string) string {
	if strings.HasPrefix(label, "which ") || strings.HasPrefix(label, "what ") {
		return label
	}
	return "the " + label
}

func joinLabels(labels []string) string {
	switch len(labels) {
	case 1:
		return labels[0]
	case 2:
		return labels[0] + " and " + labels[1]
	}
	return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1]
}
