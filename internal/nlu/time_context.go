package nlu

import (
	"fmt"
	"time"
)

func loadLocation(timezone string) *time.Location {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// BuildTimeContext creates the temporal context block for structured prompts.
func BuildTimeContext(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	// Monday-Sunday week
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	weekStart := now.AddDate(0, 0, -(weekday - 1))
	weekEnd := weekStart.AddDate(0, 0, 6)

	return fmt.Sprintf(
		TimeContextTemplate,
		now.Format("15:04"),
		now.Weekday().String(),
		loc.String(),
		now.Format(DateFormatISO),
		now.AddDate(0, 0, 1).Format(DateFormatISO),
		weekStart.Format(DateFormatISO),
		weekEnd.Format(DateFormatISO),
	)
}
