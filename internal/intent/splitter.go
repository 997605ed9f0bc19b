package intent

import (
	"context"
	"encoding/json"
	"regexp"

	"calendar-assistant/internal/model"
	"calendar-assistant/internal/nlu"
	"calendar-assistant/pkg/log"
)

// compoundPattern matches the connectives a compound request needs.
var compoundPattern = regexp.MustCompile(`(?i)\b(and|then|after that|afterwards|also|plus|as well as)\b|[;,]`)

// Splitter decomposes compound messages with a dedicated NLU call.
type Splitter struct {
	nlu nlu.Client
	l   log.Logger
	cfg Config
}

// NewSplitter creates a Splitter. Zero config values take the defaults.
func NewSplitter(client nlu.Client, l log.Logger, cfg Config) *Splitter {
	return &Splitter{nlu: client, l: l, cfg: cfg.withDefaults()}
}

// MayBeCompound reports whether message contains any connective at all.
func MayBeCompound(message string) bool {
	return compoundPattern.MatchString(message)
}

// Split returns the ordered sub-intents of message, or nil when the message
// should go through the single-intent pipeline. Failures return nil.
func (s *Splitter) Split(ctx context.Context, message string, history []model.Turn) []model.ExtractedIntent {
	if !MayBeCompound(message) {
		return nil
	}

	raw, err := s.nlu.ExtractIntent(ctx, nlu.ExtractRequest{
		SystemPrompt: buildSplitPrompt(),
		Message:      message,
		Turns:        lastTurns(history, s.cfg.ContextTurns),
	})
	if err != nil {
		s.l.Warnf(ctx, "%s: split call failed: %v", LogPrefixSplit, err)
		return nil
	}

	var payload splitPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		s.l.Warnf(ctx, "%s: malformed split answer: %v", LogPrefixSplit, err)
		return nil
	}

	listConfidence := clamp01(payload.Confidence)
	if !payload.Compound || listConfidence < s.cfg.ConfidenceThreshold {
		return nil
	}

	subs := acceptEntries(message, payload.Intents, listConfidence, s.cfg.ConfidenceThreshold)
	if len(subs) < 2 {
		return nil
	}

	s.l.Infof(ctx, "%s: split into %d intents", LogPrefixSplit, len(subs))
	return subs
}
