package usecase

import "time"

const (
	LogPrefixProcess   = "internal.conversation.usecase.ProcessMessage"
	LogPrefixMultiStep = "internal.conversation.usecase.runSteps"

	DefaultPendingTTL    = 10 * time.Minute
	DefaultMaxMessageLen = 4000
)

// Multi-step report formatting
const (
	MsgStepsHeader = "I handled %d of %d requests:"
	MsgStepDone    = "%d. ✅ %s"
	MsgStepFailed  = "%d. ⚠️ %s"
)
