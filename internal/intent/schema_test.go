package intent

import (
	"reflect"
	"testing"

	"calendar-assistant/internal/model"
)

func TestRegistryIsExhaustive(t *testing.T) {
	for _, i := range model.AllIntents {
		if _, ok := registry[i]; !ok {
			t.Errorf("intent %s missing from the field table", i)
		}
		if ActionLabel(i) == "continue" {
			t.Errorf("intent %s has no action label", i)
		}
	}

	for _, spec := range registry {
		for _, f := range append(append([]string(nil), spec.Required...), spec.Optional...) {
			if _, ok := fieldLabels[f]; !ok {
				t.Errorf("field %s has no label", f)
			}
		}
	}
}

func TestUnknownIntentRequiresNothing(t *testing.T) {
	if got := Missing(model.Intent("launch_rocket"), model.FieldSet{}); got != nil {
		t.Errorf("expected no missing fields, got %v", got)
	}
}

func TestMissing(t *testing.T) {
	got := Missing(model.IntentCreateEvent, model.FieldSet{model.FieldTitle: "Sync"})
	if !reflect.DeepEqual(got, []string{"date", "time"}) {
		t.Errorf("Missing() = %v, want [date time]", got)
	}

	got = Missing(model.IntentCancelEvent, model.FieldSet{model.FieldEventIdentifier: "  "})
	if !reflect.DeepEqual(got, []string{"event_identifier"}) {
		t.Errorf("blank identifier should count as missing, got %v", got)
	}
}

func TestAccept(t *testing.T) {
	raw := map[string]any{
		"title":         "  Sync  ",
		"date":          "2025-11-03",
		"time":          "14:00",
		"duration":      "1h30m",
		"attendees":     "a@x.com, Bob",
		"followup_days": 3, // not a create_event field
		"mood":          "happy",
		"location":      "",
	}

	got := Accept(model.IntentCreateEvent, raw)
	want := model.FieldSet{
		"title":     "Sync",
		"date":      "2025-11-03",
		"time":      "14:00",
		"duration":  90,
		"attendees": []string{"a@x.com", "Bob"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Accept() = %#v\nwant %#v", got, want)
	}
}

func TestDurationMinutes(t *testing.T) {
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{in: 45, want: 45, ok: true},
		{in: float64(30), want: 30, ok: true},
		{in: "90", want: 90, ok: true},
		{in: "2 hours", want: 120, ok: true},
		{in: "45 min", want: 45, ok: true},
		{in: "1.5h", want: 90, ok: true},
		{in: "a while", ok: false},
		{in: 0, ok: false},
	}

	for _, tt := range tests {
		got, ok := durationMinutes(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("durationMinutes(%v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBind(t *testing.T) {
	fields := model.FieldSet{"event_identifier": "Sync", "followup_days": 3, "time": "10:00"}

	bound, ok := Bind(model.IntentFollowupEvent, fields).(model.FollowupEventFields)
	if !ok {
		t.Fatalf("expected FollowupEventFields, got %T", Bind(model.IntentFollowupEvent, fields))
	}
	if bound.EventIdentifier != "Sync" || bound.FollowupDays != 3 || bound.Time != "10:00" {
		t.Errorf("unexpected binding: %+v", bound)
	}

	if _, ok := Bind(model.IntentHelpRequest, model.FieldSet{}).(model.InfoFields); !ok {
		t.Error("help_request should bind to InfoFields")
	}
	if _, ok := Bind(model.Intent("nope"), nil).(model.ChatFields); !ok {
		t.Error("unknown intents should bind to ChatFields")
	}
}
