package model

import "time"

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of the conversation history.
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationSession is the per-user dialogue state.
type ConversationSession struct {
	UserID       string         `json:"user_id"`
	Turns        []Turn         `json:"turns"`
	Pending      *PendingIntent `json:"pending,omitempty"`
	Active       *ActiveContext `json:"active,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	LastActivity time.Time      `json:"last_activity"`
}

// AppendTurn adds t and drops the oldest turns beyond limit.
func (s *ConversationSession) AppendTurn(t Turn, limit int) {
	s.Turns = append(s.Turns, t)
	if limit > 0 && len(s.Turns) > limit {
		overflow := len(s.Turns) - limit
		trimmed := make([]Turn, limit)
		copy(trimmed, s.Turns[overflow:])
		s.Turns = trimmed
	}
	if t.Timestamp.After(s.LastActivity) {
		s.LastActivity = t.Timestamp
	}
}

// RecentTurns returns a copy of the last n turns.
func (s *ConversationSession) RecentTurns(n int) []Turn {
	if n <= 0 || len(s.Turns) == 0 {
		return nil
	}
	start := len(s.Turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]Turn, len(s.Turns)-start)
	copy(out, s.Turns[start:])
	return out
}

// PendingIntent is an intent waiting for the user to supply missing fields.
type PendingIntent struct {
	Intent    Intent    `json:"intent"`
	Fields    FieldSet  `json:"fields"`
	Missing   []string  `json:"missing"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the pending intent is older than ttl at now.
func (p *PendingIntent) Expired(now time.Time, ttl time.Duration) bool {
	return p == nil || (ttl > 0 && now.Sub(p.CreatedAt) > ttl)
}

// ActiveContextType names the kind of follow-up an ActiveContext allows.
type ActiveContextType string

const ActiveContextEventUpdate ActiveContextType = "event_update"

// ActiveContext remembers the event most recently updated so short
// follow-ups like "add bob@x.com" can patch it directly.
type ActiveContext struct {
	Type      ActiveContextType `json:"type"`
	EventID   string            `json:"event_id"`
	CreatedAt time.Time         `json:"created_at"`
}

// Expired reports whether the context is older than ttl at now.
func (a *ActiveContext) Expired(now time.Time, ttl time.Duration) bool {
	return a == nil || (ttl > 0 && now.Sub(a.CreatedAt) > ttl)
}

// Clone returns a deep copy of the session.
func (s *ConversationSession) Clone() ConversationSession {
	out := *s
	out.Turns = make([]Turn, len(s.Turns))
	copy(out.Turns, s.Turns)
	if s.Pending != nil {
		p := *s.Pending
		p.Fields = s.Pending.Fields.Clone()
		p.Missing = append([]string(nil), s.Pending.Missing...)
		out.Pending = &p
	}
	if s.Active != nil {
		a := *s.Active
		out.Active = &a
	}
	return out
}
