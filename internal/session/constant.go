package session

const (
	DefaultHistoryLimit = 20
	DefaultShards       = 32
)

const (
	LogPrefixSweeper = "internal.session.StartSweeper"
)
