package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var (
	inDurationRe = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)
	clock24Re    = regexp.MustCompile(`^(\d{1,2})[:h.](\d{2})$`)
	clock12Re    = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)$`)

	weekdays = map[string]time.Weekday{
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
	}
)

// Parser converts date and clock expressions to absolute time.Time values.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Europe/Berlin"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Parse converts a date expression to the start of that day.
// Accepted forms: ISO dates, "today", "tomorrow", "yesterday",
// "in N days|weeks|months", "next <weekday>" and a bare weekday name.
// The baseTime is used as the reference point (usually time.Now()).
func (p *Parser) Parse(expr string, baseTime time.Time) (time.Time, error) {
	expr = strings.ToLower(strings.TrimSpace(expr))

	switch expr {
	case "today":
		return p.startOfDay(baseTime), nil
	case "tomorrow":
		return p.startOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "yesterday":
		return p.startOfDay(baseTime.AddDate(0, 0, -1)), nil
	}

	if t, err := time.ParseInLocation(isoDate, expr, p.location); err == nil {
		return t, nil
	}

	if strings.HasPrefix(expr, "in ") {
		return p.parseInDuration(expr, baseTime)
	}

	if strings.HasPrefix(expr, "next ") {
		return p.parseNextWeekday(strings.TrimPrefix(expr, "next "), baseTime)
	}

	if _, ok := weekdays[strings.TrimPrefix(expr, "this ")]; ok {
		return p.parseUpcomingWeekday(strings.TrimPrefix(expr, "this "), baseTime), nil
	}

	return baseTime, fmt.Errorf("%w: %q", ErrUnrecognizedDate, expr)
}

// ParseClock parses a time of day such as "14:00", "2pm" or "2:30 pm".
func (p *Parser) ParseClock(expr string) (Clock, error) {
	expr = strings.ToLower(strings.TrimSpace(expr))

	switch expr {
	case "noon", "midday":
		return Clock{Hour: 12}, nil
	case "midnight":
		return Clock{}, nil
	}

	if m := clock24Re.FindStringSubmatch(expr); m != nil {
		h, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if h > 23 || minute > 59 {
			return Clock{}, fmt.Errorf("%w: %q", ErrUnrecognizedTime, expr)
		}
		return Clock{Hour: h, Minute: minute}, nil
	}

	if m := clock12Re.FindStringSubmatch(expr); m != nil {
		h, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if h < 1 || h > 12 || minute > 59 {
			return Clock{}, fmt.Errorf("%w: %q", ErrUnrecognizedTime, expr)
		}
		pm := strings.HasPrefix(m[3], "p")
		switch {
		case pm && h != 12:
			h += 12
		case !pm && h == 12:
			h = 0
		}
		return Clock{Hour: h, Minute: minute}, nil
	}

	return Clock{}, fmt.Errorf("%w: %q", ErrUnrecognizedTime, expr)
}

// Combine places clock on the calendar day of day, in the parser's timezone.
func (p *Parser) Combine(day time.Time, clock Clock) time.Time {
	day = day.In(p.location)
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour, clock.Minute, 0, 0, p.location)
}

// ClockOf returns the time of day of t in the parser's timezone.
func (p *Parser) ClockOf(t time.Time) Clock {
	t = t.In(p.location)
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "in 1 month".
func (p *Parser) parseInDuration(expr string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(expr)
	if len(matches) != 3 {
		return baseTime, fmt.Errorf("%w: invalid duration format %q", ErrUnrecognizedDate, expr)
	}

	amount, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "day"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	default:
		return p.startOfDay(baseTime.AddDate(0, amount, 0)), nil
	}
}

// parseNextWeekday handles "next monday": always strictly after today.
func (p *Parser) parseNextWeekday(dayName string, baseTime time.Time) (time.Time, error) {
	targetWeekday, ok := weekdays[dayName]
	if !ok {
		return baseTime, fmt.Errorf("%w: unknown weekday %q", ErrUnrecognizedDate, dayName)
	}

	daysUntil := int(targetWeekday - baseTime.In(p.location).Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}

	return p.startOfDay(baseTime.AddDate(0, 0, daysUntil)), nil
}

// parseUpcomingWeekday handles "friday" / "this friday": today counts.
func (p *Parser) parseUpcomingWeekday(dayName string, baseTime time.Time) time.Time {
	daysUntil := int(weekdays[dayName] - baseTime.In(p.location).Weekday())
	if daysUntil < 0 {
		daysUntil += 7
	}
	return p.startOfDay(baseTime.AddDate(0, 0, daysUntil))
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// StartOfDay is the exported form of startOfDay.
func (p *Parser) StartOfDay(t time.Time) time.Time {
	return p.startOfDay(t)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
