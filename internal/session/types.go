package session

import "time"

// Config configures the in-memory store.
type Config struct {
	HistoryLimit int              // max turns kept per session
	Shards       int              // number of map shards
	Now          func() time.Time // clock, defaults to time.Now
}
