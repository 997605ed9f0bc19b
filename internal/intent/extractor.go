package intent

import (
	"context"
	"encoding/json"
	"strings"

	"calendar-assistant/internal/model"
	"calendar-assistant/internal/nlu"
	"calendar-assistant/pkg/log"
)

// Extractor turns a message into an Outcome. It never returns an error:
// every collaborator problem becomes a Fallback.
type Extractor struct {
	nlu nlu.Client
	l   log.Logger
	cfg Config
}

// NewExtractor creates an Extractor. Zero config values take the defaults.
func NewExtractor(client nlu.Client, l log.Logger, cfg Config) *Extractor {
	return &Extractor{nlu: client, l: l, cfg: cfg.withDefaults()}
}

func (c Config) withDefaults() Config {
	if c.ConfidenceThreshold <= 0 {
		c.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if c.ContextTurns <= 0 {
		c.ContextTurns = DefaultContextTurns
	}
	return c
}

// Extract classifies message using the last turns of c.History.
func (e *Extractor) Extract(ctx context.Context, message string, c Context) Outcome {
	raw, err := e.nlu.ExtractIntent(ctx, nlu.ExtractRequest{
		SystemPrompt: buildExtractPrompt(c.Pending),
		Message:      message,
		Turns:        lastTurns(c.History, e.cfg.ContextTurns),
	})
	if err != nil {
		e.l.Warnf(ctx, "%s: %s: %v", LogPrefixExtract, ReasonCollaboratorError, err)
		return fallback(message, ReasonCollaboratorError)
	}

	var payload extractionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		e.l.Warnf(ctx, "%s: %s: %v", LogPrefixExtract, ReasonMalformed, err)
		return fallback(message, ReasonMalformed)
	}

	confidence := clamp01(payload.Confidence)
	if confidence >= e.cfg.ConfidenceThreshold {
		if subs := e.acceptAll(message, payload.MultipleIntents, confidence); len(subs) >= 2 {
			e.l.Infof(ctx, "%s: %d intents in one message", LogPrefixExtract, len(subs))
			return Multiple{Intents: subs}
		}
	}

	name := normalizeName(payload.Intent)
	if !name.IsValid() {
		e.l.Warnf(ctx, "%s: %s: %q", LogPrefixExtract, ReasonUnknownIntent, payload.Intent)
		return fallback(message, ReasonUnknownIntent)
	}

	if confidence < e.cfg.ConfidenceThreshold {
		e.l.Infof(ctx, "%s: %s downgraded (confidence %.2f)", LogPrefixExtract, name, confidence)
		return fallback(message, ReasonLowConfidence)
	}

	e.l.Infof(ctx, "%s: classified as %s (confidence %.2f)", LogPrefixExtract, name, confidence)
	return Single{Intent: model.ExtractedIntent{
		Name:       name,
		Confidence: confidence,
		Fields:     Accept(name, payload.Fields),
		Message:    message,
	}}
}

// acceptAll keeps the valid, confident entries of a sub-intent list.
func (e *Extractor) acceptAll(message string, entries []subIntentEntry, listConfidence float64) []model.ExtractedIntent {
	return acceptEntries(message, entries, listConfidence, e.cfg.ConfidenceThreshold)
}

// acceptEntries keeps the valid entries at or above threshold. Entries
// without their own confidence inherit listConfidence.
func acceptEntries(message string, entries []subIntentEntry, listConfidence, threshold float64) []model.ExtractedIntent {
	var out []model.ExtractedIntent
	seen := map[string]bool{}

	for _, entry := range entries {
		name := normalizeName(entry.Intent)
		if !name.IsValid() {
			continue
		}
		confidence := clamp01(listConfidence)
		if entry.Confidence > 0 {
			confidence = clamp01(entry.Confidence)
		}
		if confidence < threshold {
			continue
		}

		fields := Accept(name, entry.Fields)
		key := dedupeKey(name, fields)
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, model.ExtractedIntent{
			Name:       name,
			Confidence: confidence,
			Fields:     fields,
			Message:    message,
		})
	}
	return out
}

func fallback(message, reason string) Fallback {
	return Fallback{
		Intent: model.ExtractedIntent{
			Name:       model.IntentGeneralChat,
			Confidence: FallbackConfidence,
			Fields:     model.FieldSet{},
			Message:    message,
		},
		Reason: reason,
	}
}

func normalizeName(s string) model.Intent {
	return model.Intent(strings.ToLower(strings.TrimSpace(s)))
}

func dedupeKey(name model.Intent, fields model.FieldSet) string {
	b, _ := json.Marshal(fields)
	return string(name) + string(b)
}

func lastTurns(history []model.Turn, n int) []model.Turn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
