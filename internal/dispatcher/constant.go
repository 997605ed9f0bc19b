package dispatcher

import "time"

// Log prefixes
const (
	LogPrefixExecute  = "internal.dispatcher.Execute"
	LogPrefixCreate   = "internal.dispatcher.handleCreate"
	LogPrefixUpdate   = "internal.dispatcher.handleUpdate"
	LogPrefixCancel   = "internal.dispatcher.handleCancel"
	LogPrefixPrepare  = "internal.dispatcher.handlePrepare"
	LogPrefixFollowup = "internal.dispatcher.handleFollowup"
	LogPrefixList     = "internal.dispatcher.handleList"
	LogPrefixChat     = "internal.dispatcher.handleChat"
)

// Defaults
const (
	DefaultDurationMinutes = 60
	DefaultFollowupDays    = 7
	DefaultContextTurns    = 6
	DefaultListWindow      = 365 * 24 * time.Hour
	MaxListedEvents        = 10
	ListDateFormat         = "Monday 2006-01-02"
	QuestionListDefault    = "What is on my calendar"
	QuestionListOnDate     = "%s (on %s)"
	MaxPreparationNotes    = 5
	WhenFormat             = "Mon, Jan 2 at 15:04"
)

// User-facing messages
const (
	MsgUnsupported       = "Sorry, I can't do that yet."
	MsgBadDate           = "I couldn't understand the date %q. Could you give it as YYYY-MM-DD or say something like \"tomorrow\"?"
	MsgBadTime           = "I couldn't understand the time %q. Could you give it like 14:00 or 2pm?"
	MsgCreateFailed      = "Sorry, I couldn't create the event right now. Please try again in a moment."
	MsgCreated           = "Done! %q is scheduled for %s (%d min)."
	MsgCreatedWithGuests = "Done! %q is scheduled for %s (%d min) with %s."
	MsgUpdateNothing     = "What would you like to change about %q?"
	MsgUpdateFailed      = "Sorry, I couldn't update %q right now. Please try again in a moment."
	MsgUpdated           = "Updated %q, now %s (%d min)."
	MsgEventGone         = "That event no longer exists in your calendar."
	MsgCancelFailed      = "Sorry, I couldn't cancel %q right now. Please try again in a moment."
	MsgCancelled         = "Cancelled %q (%s)."
	MsgFetchFailed       = "Sorry, I couldn't reach your calendar right now. Please try again in a moment."
	MsgPrepareFallback   = "Unable to generate preparation notes right now."
	MsgPrepared          = "Here is how to prepare for %q on %s:\n%s"
	MsgFollowupCreated   = "Follow-up %q scheduled for %s (%d min)."
	MsgListFailed        = "Sorry, I couldn't read your calendar right now. Please try again in a moment."
	MsgListEmpty         = "Your calendar has no events in the next few months."
	MsgListHeader        = "Here are your upcoming events:\n%s"
	MsgChatFallback      = "I'm your calendar assistant. I can create, move, cancel and list events, prepare you for meetings and schedule follow-ups. What would you like to do?"
	MsgOtherAttendees    = "Other attendees: %s"
	MsgFollowupNote      = "Follow-up to %q (%s)."
	DefaultTitleFormat   = "Meeting on %s at %s"
	FollowupTitleFormat  = "Follow-up: %s"
)

// MsgHelp answers help_request.
const MsgHelp = `Here is what I can do:
- Create events: "Book a sync with anna@example.com tomorrow at 2pm for 30 minutes"
- Update events: "Move the sync to Friday at 10"
- Cancel events: "Cancel tomorrow's standup"
- Prepare: "Help me prepare for the quarterly review"
- Follow up: "Schedule a follow-up to the client call in 3 days"
- List: "What's on my calendar next week?"
You can ask for several things in one message, like "cancel the standup and book lunch at 1pm".`

// MsgInformation answers get_information.
const MsgInformation = `I'm a scheduling assistant connected to your calendar. I understand plain language dates like "tomorrow", "next friday" or "in 3 days" and times like "14:00" or "2:30 pm". After I update an event you can keep refining it, for example "add bob@example.com" or "location is room 4". Say "help" for examples.`

// PromptPrepare asks for preparation bullet points. The %s verbs take the event details.
const PromptPrepare = `You help someone prepare for a calendar event.

Event: %s
When: %s
Duration: %d minutes
Location: %s
Attendees: %s
Description: %s

Write between 3 and 5 short, concrete preparation points. One point per line, each starting with "- ". No introduction and no closing sentence.`

// PromptList asks for an answer about the user's calendar.
const PromptList = `You are a calendar assistant. Today is %s (timezone %s).

The user's events:
%s

Answer the user's question using only these events. Be brief and friendly. If nothing matches, say so.

Question: %s`

// PromptChat is the free-form chat prompt.
const PromptChat = `You are a friendly calendar assistant chatting with a user. You can create, update, cancel and list events, prepare notes for meetings and schedule follow-ups. Keep answers short. If the user seems to want a calendar action, tell them what details you need.

%sUser: %s
Assistant:`
