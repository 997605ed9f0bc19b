package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"calendar-assistant/internal/model"
)

// FieldSpec lists the field names an intent requires and accepts.
type FieldSpec struct {
	Required []string
	Optional []string
}

var registry = map[model.Intent]FieldSpec{
	model.IntentCreateEvent: {
		Required: []string{model.FieldDate, model.FieldTime},
		Optional: []string{model.FieldTitle, model.FieldDuration, model.FieldLocation, model.FieldAttendees, model.FieldDescription},
	},
	model.IntentUpdateEvent: {
		Required: []string{model.FieldEventIdentifier},
		Optional: []string{model.FieldTitle, model.FieldDate, model.FieldTime, model.FieldDuration, model.FieldLocation, model.FieldAttendees, model.FieldDescription},
	},
	model.IntentCancelEvent: {
		Required: []string{model.FieldEventIdentifier},
	},
	model.IntentPrepareEvent: {
		Required: []string{model.FieldEventIdentifier},
	},
	model.IntentFollowupEvent: {
		Required: []string{model.FieldEventIdentifier},
		Optional: []string{model.FieldFollowupDays, model.FieldTitle, model.FieldTime, model.FieldDuration},
	},
	model.IntentListEvents: {
		Optional: []string{model.FieldQuery, model.FieldDate},
	},
	model.IntentGetInformation: {
		Optional: []string{model.FieldTopic},
	},
	model.IntentHelpRequest: {
		Optional: []string{model.FieldTopic},
	},
	model.IntentGeneralChat: {},
}

var fieldLabels = map[string]string{
	model.FieldTitle:           "title",
	model.FieldDate:            "date",
	model.FieldTime:            "time",
	model.FieldDuration:        "duration",
	model.FieldLocation:        "location",
	model.FieldAttendees:       "attendees",
	model.FieldDescription:     "description",
	model.FieldEventIdentifier: "which event you mean",
	model.FieldFollowupDays:    "number of days until the follow-up",
	model.FieldQuery:           "what to look for",
	model.FieldTopic:           "topic",
}

var actionLabels = map[model.Intent]string{
	model.IntentCreateEvent:    "create the event",
	model.IntentUpdateEvent:    "update the event",
	model.IntentCancelEvent:    "cancel the event",
	model.IntentPrepareEvent:   "prepare notes for the event",
	model.IntentFollowupEvent:  "schedule the follow-up",
	model.IntentListEvents:     "list your events",
	model.IntentGetInformation: "answer",
	model.IntentHelpRequest:    "help",
	model.IntentGeneralChat:    "reply",
}

// Spec returns the field spec of i. Unknown intents require nothing.
func Spec(i model.Intent) FieldSpec {
	return registry[i]
}

// Label returns the human label of a field name.
func Label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return strings.ReplaceAll(field, "_", " ")
}

// ActionLabel describes what intent i does, for clarification messages.
func ActionLabel(i model.Intent) string {
	if l, ok := actionLabels[i]; ok {
		return l
	}
	return "continue"
}

// Missing returns the required fields of i absent from fields, in table order.
func Missing(i model.Intent, fields model.FieldSet) []string {
	var missing []string
	for _, f := range registry[i].Required {
		if !fields.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Accept normalizes raw NLU fields for intent i: keys the intent does not
// know are dropped, strings are trimmed, attendees become []string and
// numeric fields become ints. Values that cannot be coerced are dropped.
func Accept(i model.Intent, raw map[string]any) model.FieldSet {
	spec := registry[i]
	out := model.FieldSet{}
	in := model.FieldSet(raw)

	for _, name := range append(append([]string(nil), spec.Required...), spec.Optional...) {
		if !in.Has(name) {
			continue
		}
		switch name {
		case model.FieldAttendees:
			if list := in.Strings(name); len(list) > 0 {
				out[name] = list
			}
		case model.FieldFollowupDays:
			if n, ok := in.Int(name); ok && n > 0 {
				out[name] = n
			}
		case model.FieldDuration:
			if n, ok := durationMinutes(raw[name]); ok {
				out[name] = n
			}
		default:
			if s := in.String(name); s != "" {
				out[name] = s
			}
		}
	}
	return out
}

var durationPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes)?$`)

// durationMinutes accepts minutes as a number, "90", "1h30m", "45 min" or "2 hours".
func durationMinutes(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, t > 0
	case float64:
		return int(t), t >= 1
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		if n, err := strconv.Atoi(s); err == nil {
			return n, n > 0
		}
		if d, err := time.ParseDuration(s); err == nil && d >= time.Minute {
			return int(d.Minutes()), true
		}
		m := durationPattern.FindStringSubmatch(s)
		if m == nil {
			return 0, false
		}
		f, _ := strconv.ParseFloat(m[1], 64)
		if strings.HasPrefix(m[2], "h") {
			f *= 60
		}
		return int(f), f >= 1
	}
	return 0, false
}

// Bind turns normalized fields into the typed variant of intent i.
func Bind(i model.Intent, f model.FieldSet) model.BoundFields {
	duration, _ := f.Int(model.FieldDuration)

	switch i {
	case model.IntentCreateEvent:
		return model.CreateEventFields{
			Title:       f.String(model.FieldTitle),
			Date:        f.String(model.FieldDate),
			Time:        f.String(model.FieldTime),
			Duration:    duration,
			Location:    f.String(model.FieldLocation),
			Attendees:   f.Strings(model.FieldAttendees),
			Description: f.String(model.FieldDescription),
		}
	case model.IntentUpdateEvent:
		return model.UpdateEventFields{
			EventIdentifier: f.String(model.FieldEventIdentifier),
			Title:           f.String(model.FieldTitle),
			Date:            f.String(model.FieldDate),
			Time:            f.String(model.FieldTime),
			Duration:        duration,
			Location:        f.String(model.FieldLocation),
			Attendees:       f.Strings(model.FieldAttendees),
			Description:     f.String(model.FieldDescription),
		}
	case model.IntentCancelEvent:
		return model.CancelEventFields{EventIdentifier: f.String(model.FieldEventIdentifier)}
	case model.IntentPrepareEvent:
		return model.PrepareEventFields{EventIdentifier: f.String(model.FieldEventIdentifier)}
	case model.IntentFollowupEvent:
		days, _ := f.Int(model.FieldFollowupDays)
		return model.FollowupEventFields{
			EventIdentifier: f.String(model.FieldEventIdentifier),
			FollowupDays:    days,
			Title:           f.String(model.FieldTitle),
			Time:            f.String(model.FieldTime),
			Duration:        duration,
		}
	case model.IntentListEvents:
		return model.ListEventsFields{Query: f.String(model.FieldQuery), Date: f.String(model.FieldDate)}
	case model.IntentGetInformation, model.IntentHelpRequest:
		return model.InfoFields{Topic: f.String(model.FieldTopic)}
	default:
		return model.ChatFields{}
	}
}
