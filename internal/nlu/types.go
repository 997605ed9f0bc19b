package nlu

import (
	"time"

	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/log"
)

// ExtractRequest is a structured extraction call.
type ExtractRequest struct {
	SystemPrompt string
	Message      string
	Turns        []model.Turn
}

// MatchStatus is the verdict of FindMatchingEvent.
type MatchStatus string

const (
	MatchFound    MatchStatus = "match"
	MatchNone     MatchStatus = "none"
	MatchMultiple MatchStatus = "multiple"
)

// MatchResult is the answer to FindMatchingEvent.
type MatchResult struct {
	Status     MatchStatus
	EventID    string
	Confidence float64
	Reasoning  string
}

// matchPayload is the JSON shape the model is asked to produce.
type matchPayload struct {
	Status     string  `json:"status" jsonschema:"enum=match,enum=none,enum=multiple,description=match when exactly one event fits"`
	EventID    string  `json:"event_id,omitempty" jsonschema:"description=id of the matching event copied from the candidate list"`
	Confidence float64 `json:"confidence" jsonschema:"minimum=0,maximum=1"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

type implClient struct {
	llm      Generator
	l        log.Logger
	location *time.Location
	now      func() time.Time
}
