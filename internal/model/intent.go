package model

// Intent is the action a user message asks for.
type Intent string

const (
	IntentCreateEvent    Intent = "create_event"
	IntentUpdateEvent    Intent = "update_event"
	IntentCancelEvent    Intent = "cancel_event"
	IntentPrepareEvent   Intent = "prepare_event"
	IntentFollowupEvent  Intent = "followup_event"
	IntentListEvents     Intent = "list_events"
	IntentGetInformation Intent = "get_information"
	IntentHelpRequest    Intent = "help_request"
	IntentGeneralChat    Intent = "general_chat"
)

// AllIntents lists every intent the assistant understands, in prompt order.
var AllIntents = []Intent{
	IntentCreateEvent,
	IntentUpdateEvent,
	IntentCancelEvent,
	IntentPrepareEvent,
	IntentFollowupEvent,
	IntentListEvents,
	IntentGetInformation,
	IntentHelpRequest,
	IntentGeneralChat,
}

// IsValid reports whether i is one of AllIntents.
func (i Intent) IsValid() bool {
	for _, known := range AllIntents {
		if i == known {
			return true
		}
	}
	return false
}

// IsConversational reports whether the intent never touches the calendar.
func (i Intent) IsConversational() bool {
	return i == IntentGeneralChat || i == IntentGetInformation || i == IntentHelpRequest
}

// NeedsEventResolution reports whether the intent targets an existing event.
func (i Intent) NeedsEventResolution() bool {
	switch i {
	case IntentUpdateEvent, IntentCancelEvent, IntentPrepareEvent, IntentFollowupEvent:
		return true
	}
	return false
}

func (i Intent) String() string {
	return string(i)
}
