package session

import (
	"context"
	"time"

	"calendar-assistant/internal/model"
)

// Store keeps one ConversationSession per user.
//
// Acquire serialises work on a single user: while the release func has not
// been called, every other Acquire (and every helper built on it) for the same
// user blocks. Different users never contend beyond a shard mutex.
type Store interface {
	// Acquire returns the live session for userID, creating it if needed.
	// The caller owns the session until release is called and must not keep
	// the pointer afterwards.
	Acquire(ctx context.Context, userID string) (sess *model.ConversationSession, release func(), err error)

	// GetOrCreate returns a deep copy of the session.
	GetOrCreate(ctx context.Context, userID string) (model.ConversationSession, error)

	// AppendTurn records a turn, trimming history to the configured limit.
	// It must not be called while holding Acquire for the same user.
	AppendTurn(ctx context.Context, userID string, role model.Role, text string) error

	// Delete drops the user's history, pending intent and active context.
	Delete(ctx context.Context, userID string) error

	// Sweep removes sessions idle for longer than maxAge and returns how many
	// were removed. Sessions currently held or awaited are never removed.
	Sweep(now time.Time, maxAge time.Duration) int

	// Len returns the number of sessions in memory.
	Len() int
}
