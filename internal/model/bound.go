package model

// BoundFields is the typed field set of one intent. Only the variants in
// this file implement it.
type BoundFields interface {
	boundIntent() Intent
}

type CreateEventFields struct {
	Title       string
	Date        string
	Time        string
	Duration    int // minutes, 0 means default
	Location    string
	Attendees   []string
	Description string
}

type UpdateEventFields struct {
	EventIdentifier string
	Title           string
	Date            string
	Time            string
	Duration        int
	Location        string
	Attendees       []string
	Description     string
}

type CancelEventFields struct {
	EventIdentifier string
}

type PrepareEventFields struct {
	EventIdentifier string
}

type FollowupEventFields struct {
	EventIdentifier string
	FollowupDays    int // 0 means default
	Title           string
	Time            string
	Duration        int
}

type ListEventsFields struct {
	Query string
	Date  string
}

// InfoFields serves both get_information and help_request.
type InfoFields struct {
	Topic string
}

type ChatFields struct{}

func (CreateEventFields) boundIntent() Intent   { return IntentCreateEvent }
func (UpdateEventFields) boundIntent() Intent   { return IntentUpdateEvent }
func (CancelEventFields) boundIntent() Intent   { return IntentCancelEvent }
func (PrepareEventFields) boundIntent() Intent  { return IntentPrepareEvent }
func (FollowupEventFields) boundIntent() Intent { return IntentFollowupEvent }
func (ListEventsFields) boundIntent() Intent    { return IntentListEvents }
func (InfoFields) boundIntent() Intent          { return IntentGetInformation }
func (ChatFields) boundIntent() Intent          { return IntentGeneralChat }
