package datemath_test

import (
	"errors"
	"testing"
	"time"

	"calendar-assistant/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("Europe/Berlin")
	if err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}

	_, err = datemath.NewParser("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestParse(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday, May 1, 2024
	startOfBase := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expr    string
		want    time.Time
		wantErr bool
	}{
		{name: "Today", expr: "today", want: startOfBase},
		{name: "Tomorrow", expr: "Tomorrow ", want: startOfBase.AddDate(0, 0, 1)},
		{name: "Yesterday", expr: "yesterday", want: startOfBase.AddDate(0, 0, -1)},
		{name: "ISO date", expr: "2025-11-03", want: time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)},
		{name: "In 3 days", expr: "in 3 days", want: startOfBase.AddDate(0, 0, 3)},
		{name: "In 2 weeks", expr: "in 2 weeks", want: startOfBase.AddDate(0, 0, 14)},
		{name: "In 1 month", expr: "in 1 month", want: startOfBase.AddDate(0, 1, 0)},
		{name: "Invalid duration pattern", expr: "in a few days", want: baseTime, wantErr: true},
		{name: "Next Monday (from Wed)", expr: "next monday", want: startOfBase.AddDate(0, 0, 5)},
		{name: "Next Wednesday (from Wed)", expr: "next wednesday", want: startOfBase.AddDate(0, 0, 7)},
		{name: "Bare weekday today", expr: "wednesday", want: startOfBase},
		{name: "This friday", expr: "this friday", want: startOfBase.AddDate(0, 0, 2)},
		{name: "Unknown expression", expr: "some random day", want: baseTime, wantErr: true},
		{name: "Invalid Next Weekday", expr: "next funday", want: baseTime, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.expr, baseTime)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, datemath.ErrUnrecognizedDate) {
				t.Errorf("Parse() error = %v, want ErrUnrecognizedDate", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")

	tests := []struct {
		expr    string
		want    datemath.Clock
		wantErr bool
	}{
		{expr: "14:00", want: datemath.Clock{Hour: 14}},
		{expr: "9:05", want: datemath.Clock{Hour: 9, Minute: 5}},
		{expr: "2pm", want: datemath.Clock{Hour: 14}},
		{expr: "2:30 pm", want: datemath.Clock{Hour: 14, Minute: 30}},
		{expr: "12am", want: datemath.Clock{Hour: 0}},
		{expr: "12 pm", want: datemath.Clock{Hour: 12}},
		{expr: "noon", want: datemath.Clock{Hour: 12}},
		{expr: "25:00", wantErr: true},
		{expr: "13pm", wantErr: true},
		{expr: "afternoon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := parser.ParseClock(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClock() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseClock() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCombine(t *testing.T) {
	parser, _ := datemath.NewParser("Europe/Berlin")
	day, err := parser.Parse("2025-11-03", time.Now())
	if err != nil {
		t.Fatal(err)
	}

	got := parser.Combine(day, datemath.Clock{Hour: 14})
	if got.Hour() != 14 || got.Day() != 3 || got.Location().String() != "Europe/Berlin" {
		t.Errorf("Combine() got = %v", got)
	}
	if parser.ClockOf(got).String() != "14:00" {
		t.Errorf("ClockOf() got = %v", parser.ClockOf(got))
	}
}

func TestEndOfDay(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)

	got := parser.EndOfDay(base)
	if !got.Equal(want) {
		t.Errorf("EndOfDay() got = %v, want %v", got, want)
	}
}
