package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"calendar-assistant/pkg/response"
)

func TestDateTimeMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"utc", time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC), `"2024-05-01T15:30:00Z"`},
		{"offset kept", time.Date(2024, 5, 1, 15, 30, 0, 0, time.FixedZone("ICT", 7*3600)), `"2024-05-01T15:30:00+07:00"`},
		{"zero", time.Time{}, `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(response.DateTime(tt.in))
			if err != nil {
				t.Fatalf("unexpected error marshaling DateTime: %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("got %s, want %s", b, tt.want)
			}
		})
	}
}

func TestDateTimeUnmarshalJSON(t *testing.T) {
	var got struct {
		At   response.DateTime  `json:"at"`
		Gone *response.DateTime `json:"gone"`
	}
	if err := json.Unmarshal([]byte(`{"at":"2024-05-01T15:30:00+07:00","gone":null}`), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	if !time.Time(got.At).Equal(want) {
		t.Errorf("got %v, want %v", time.Time(got.At), want)
	}
	if got.Gone != nil {
		t.Errorf("null should leave the pointer nil")
	}

	var bad response.DateTime
	if err := json.Unmarshal([]byte(`"yesterday"`), &bad); err == nil {
		t.Error("expected a parse error")
	}
}
