package model

// ExtractedIntent is one intent recognised in a user message.
type ExtractedIntent struct {
	Name       Intent   `json:"name"`
	Confidence float64  `json:"confidence"`
	Fields     FieldSet `json:"fields"`
	Message    string   `json:"message"`
}

// ValidationResult is the outcome of checking an ExtractedIntent.
type ValidationResult struct {
	Intent         Intent
	Confidence     float64
	Fields         FieldSet
	Bound          BoundFields
	Message        string
	RequiresAction bool
	Event          *Event
	Clarification  string
	Missing        []string
}

// ResultKind classifies what an ActionResult carries.
type ResultKind string

const (
	KindClarification  ResultKind = "clarification"
	KindChat           ResultKind = "chat"
	KindCalendarAction ResultKind = "calendar_action"
	KindCalendarInfo   ResultKind = "calendar_info"
)

// ActionResult is the user-facing outcome of one processed intent.
type ActionResult struct {
	Success bool       `json:"success"`
	Kind    ResultKind `json:"kind"`
	Message string     `json:"message"`
	Payload any        `json:"payload,omitempty"`
}

// CancelledEvent is the payload of a successful cancellation.
type CancelledEvent struct {
	EventID string `json:"event_id"`
	Title   string `json:"title,omitempty"`
}

// PreparationNotes is the payload of prepare_event.
type PreparationNotes struct {
	Event Event    `json:"event"`
	Notes []string `json:"notes"`
}

// StepResult is one entry of a MultiStepReport.
type StepResult struct {
	Intent  Intent     `json:"intent"`
	Success bool       `json:"success"`
	Kind    ResultKind `json:"kind"`
	Message string     `json:"message"`
	Payload any        `json:"payload,omitempty"`
}

// MultiStepReport summarises a compound request. Steps run in order and
// earlier successes are never rolled back.
type MultiStepReport struct {
	Steps             []StepResult `json:"steps"`
	TotalIntents      int          `json:"total_intents"`
	SuccessfulIntents int          `json:"successful_intents"`
}
