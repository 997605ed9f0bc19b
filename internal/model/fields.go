package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names shared by the NLU payload, the schema registry and the handlers.
const (
	FieldTitle           = "title"
	FieldDate            = "date"
	FieldTime            = "time"
	FieldDuration        = "duration"
	FieldLocation        = "location"
	FieldAttendees       = "attendees"
	FieldDescription     = "description"
	FieldEventIdentifier = "event_identifier"
	FieldFollowupDays    = "followup_days"
	FieldQuery           = "query"
	FieldTopic           = "topic"
)

// FieldSet holds the loosely-typed fields extracted for an intent.
// Values are normalized to string, []string or int before they reach the
// validator.
type FieldSet map[string]any

// Has reports whether key is present with a non-empty value.
func (f FieldSet) Has(key string) bool {
	v, ok := f[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) != ""
	case []string:
		return len(t) > 0
	case []any:
		return len(t) > 0
	}
	return true
}

// String returns the value of key as a trimmed string.
func (f FieldSet) String(key string) string {
	switch t := f[key].(type) {
	case string:
		return strings.TrimSpace(t)
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Strings returns the value of key as a list of non-empty strings.
// A single comma separated string is split.
func (f FieldSet) Strings(key string) []string {
	var raw []string
	switch t := f[key].(type) {
	case []string:
		raw = t
	case []any:
		for _, item := range t {
			if item != nil {
				raw = append(raw, fmt.Sprint(item))
			}
		}
	case string:
		raw = strings.Split(t, ",")
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Int returns the value of key as an int and whether it was usable.
func (f FieldSet) Int(key string) (int, bool) {
	switch t := f[key].(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Clone returns a shallow copy with list values copied.
func (f FieldSet) Clone() FieldSet {
	out := make(FieldSet, len(f))
	for k, v := range f {
		if list, ok := v.([]string); ok {
			cp := make([]string, len(list))
			copy(cp, list)
			v = cp
		}
		out[k] = v
	}
	return out
}

// Merge returns a copy of f overlaid with every present field of other.
func (f FieldSet) Merge(other FieldSet) FieldSet {
	out := f.Clone()
	if out == nil {
		out = FieldSet{}
	}
	overlay := other.Clone()
	for k, v := range overlay {
		if overlay.Has(k) {
			out[k] = v
		}
	}
	return out
}
