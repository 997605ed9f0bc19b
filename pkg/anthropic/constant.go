package anthropic

import "time"

const (
	DefaultModel     = "claude-3-5-haiku-latest"
	DefaultMaxTokens = 2048
	DefaultTimeout   = 60 * time.Second
)
