package conversation

import "calendar-assistant/internal/model"

// IntentMultiStep is reported as the intent of compound messages.
const IntentMultiStep = "multi_step"

// ProcessMessageInput is one inbound message.
type ProcessMessageInput struct {
	UserID  string
	Text    string
	Channel model.Channel
}

// ProcessMessageOutput is the reply to one message. Payload is a
// model.Event, []model.Event, model.CancelledEvent, model.PreparationNotes
// or model.MultiStepReport depending on Intent and Kind.
type ProcessMessageOutput struct {
	Success    bool
	Intent     string
	Confidence float64
	Kind       model.ResultKind
	Response   string
	Payload    any
}
