package validator

const LogPrefix = "internal.validator.Validate"

// Clarification templates
const (
	MsgMissing        = "Please tell me %s so I can %s."
	MsgEventNotFound  = "I couldn't find an event matching %q. Could you describe it differently, for example with its title or date?"
	MsgEventAmbiguous = "More than one event matches %q. Could you be more specific, for example with the date or time?"
)
