package continuation

import (
	"regexp"
	"strings"
)

var (
	emailPattern       = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	locationPattern    = regexp.MustCompile(`(?i)(?:\blocation\b|\bwhere\s*[:=])(.*)$`)
	descriptionPattern = regexp.MustCompile(`(?i)\b(?:description|note)\b(.*)$`)
	leadingFiller      = regexp.MustCompile(`(?i)^(?:\s|:|-|=|\b(?:is|to|at|should be|will be|be|of|it)\b)+`)
)

// Detect recognises attendee, location and description follow-ups.
// Questions never set a location or description.
func Detect(message string) (Patch, bool) {
	lower := strings.ToLower(message)

	if strings.Contains(lower, "@") || strings.Contains(lower, "email") {
		if emails := emailPattern.FindAllString(message, -1); len(emails) > 0 {
			return Patch{Kind: PatchAttendees, Emails: emails}, true
		}
	}

	if strings.HasSuffix(strings.TrimSpace(message), "?") {
		return Patch{}, false
	}

	if m := locationPattern.FindStringSubmatch(message); m != nil {
		if text := cleanValue(m[1]); text != "" {
			return Patch{Kind: PatchLocation, Text: text}, true
		}
	}

	if m := descriptionPattern.FindStringSubmatch(message); m != nil {
		if text := cleanValue(m[1]); text != "" {
			return Patch{Kind: PatchDescription, Text: text}, true
		}
	}

	return Patch{}, false
}

func cleanValue(s string) string {
	s = leadingFiller.ReplaceAllString(s, "")
	return strings.Trim(strings.TrimSpace(s), `"'.!?`)
}
