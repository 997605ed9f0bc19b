package nlu

// Log prefixes
const (
	LogPrefixExtract = "internal.nlu.ExtractIntent"
	LogPrefixMatch   = "internal.nlu.FindMatchingEvent"
	LogPrefixText    = "internal.nlu.GenerateText"
)

// Generation settings
const (
	ExtractTemperature   = 0.1
	MatchTemperature     = 0.0
	TextTemperature      = 0.7
	ExtractMaxTokens     = 1024
	TextMaxTokens        = 1024
	DateFormatISO        = "2006-01-02"
	CandidateTimeFormat  = "Mon 2006-01-02 15:04"
	CandidateClockFormat = "15:04"
	// CandidateDescriptionLimit caps the notes shown per candidate.
	CandidateDescriptionLimit = 200
)

// TimeContextTemplate is prepended to structured prompts.
const TimeContextTemplate = `[TIME CONTEXT]
- Now: %s (%s), timezone %s
- Today: %s
- Tomorrow: %s
- This week: %s to %s
Always write dates as YYYY-MM-DD and times as HH:MM (24h). Resolve relative dates yourself.`

// PromptMatchSystem asks the model to pick one event out of a candidate list.
const PromptMatchSystem = `You match a user's description of a calendar event to one event from a list.

Rules:
- Only answer with an event_id that appears in the candidate list.
- status "match" when exactly one candidate fits, "none" when nothing fits, "multiple" when several fit equally well.
- confidence is between 0 and 1.
- Use the recent conversation to resolve words like "it" or "that meeting".

Reply with a single JSON object matching this schema:
%s`

// Prompt building blocks
const (
	PromptCandidatesHeader = "Candidate events:\n"
	PromptHistoryHeader    = "Recent conversation:\n"
	PromptQueryHeader      = "User is referring to: %q"
)

// Error messages
const (
	ErrMsgLLMCallFailed = "LLM call failed"
	ErrMsgNotJSON       = "model output contains no JSON object"
)
