package intent

// Log prefixes
const (
	LogPrefixExtract = "internal.intent.Extract"
	LogPrefixSplit   = "internal.intent.Split"
)

// Defaults
const (
	DefaultConfidenceThreshold = 0.7
	DefaultContextTurns        = 6
	FallbackConfidence         = 0.5
)

// Fallback reasons
const (
	ReasonCollaboratorError = "extraction call failed"
	ReasonMalformed         = "extraction returned malformed JSON"
	ReasonUnknownIntent     = "extraction returned an unknown intent"
	ReasonLowConfidence     = "extraction confidence below threshold"
)

// PromptExtractSystem is the fixed extraction prompt. The %s verbs take the
// intent table and the JSON schema of the answer.
const PromptExtractSystem = `You turn chat messages into calendar actions for a scheduling assistant.

Intents and their fields (required fields are marked with *):
%s

Rules:
- Pick the single intent that best matches the latest user message; use the conversation for context.
- Only include fields the user actually gave. Never invent dates, times or people.
- Dates as YYYY-MM-DD, times as HH:MM (24h). Durations in minutes.
- attendees is a list of email addresses or names.
- event_identifier is the user's own description of an existing event ("the sync with Anna", "tomorrow's call").
- confidence is how sure you are about the intent, between 0 and 1.
- If the message asks for two or more separate actions, also fill multiple_intents in order.
- Small talk, greetings and anything else are general_chat.

Reply with one JSON object matching this schema:
%s`

// PromptPendingBlock is appended when an intent is waiting for fields.
const PromptPendingBlock = `

The assistant previously asked for missing details of a %s request (missing: %s).
Fields collected so far: %s
If the user is now supplying those details, answer with intent %s and only the new fields.`

// PromptSplitSystem asks whether a message bundles several actions.
const PromptSplitSystem = `You decide whether a chat message to a calendar assistant asks for several independent actions.

Known intents:
%s

Rules:
- compound is true only when there are two or more distinct actions, e.g. "cancel the standup and book lunch with Sam at 1pm".
- A single action with several details ("book a meeting tomorrow at 3 and invite Bob") is NOT compound.
- List intents in the order they should run, each with its own fields.
- When unsure, answer compound false.

Reply with one JSON object matching this schema:
%s`
